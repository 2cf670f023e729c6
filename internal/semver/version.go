// Package semver holds the three-segment release version and the calculator
// that derives the next version from a commit classification.
package semver

import (
	"fmt"
	"strconv"
	"strings"

	gosemver "golang.org/x/mod/semver"
)

// Version is a major.minor.patch release version. Pre-release and build
// metadata are not part of the release model.
type Version struct {
	Major int
	Minor int
	Patch int
}

// Parse reads a canonical "X.Y.Z" string. A leading "v" is accepted and
// dropped so tags and file values can be passed in unchanged.
func Parse(s string) (Version, error) {
	raw := strings.TrimSpace(s)
	normalized := "v" + strings.TrimPrefix(raw, "v")

	if !gosemver.IsValid(normalized) ||
		gosemver.Prerelease(normalized) != "" ||
		gosemver.Build(normalized) != "" ||
		gosemver.Canonical(normalized) != normalized {
		return Version{}, fmt.Errorf("invalid version %q (expected: X.Y.Z)", s)
	}

	parts := strings.Split(strings.TrimPrefix(normalized, "v"), ".")
	nums := make([]int, 3)
	for i, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil {
			return Version{}, fmt.Errorf("invalid version %q: segment %q: %w", s, part, err)
		}
		nums[i] = n
	}

	return Version{Major: nums[0], Minor: nums[1], Patch: nums[2]}, nil
}

// MustParse is like Parse but panics on error. Intended for tests and constants.
func MustParse(s string) Version {
	v, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return v
}

// String returns the canonical "X.Y.Z" form.
func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// Tag returns the version prefixed for use as a git tag name.
func (v Version) Tag(prefix string) string {
	return prefix + v.String()
}

// Compare returns -1, 0 or +1 depending on whether v sorts before, equal to
// or after other.
func (v Version) Compare(other Version) int {
	return gosemver.Compare("v"+v.String(), "v"+other.String())
}

// BumpMajor returns the next major version with minor and patch reset.
func (v Version) BumpMajor() Version {
	return Version{Major: v.Major + 1}
}

// BumpMinor advances minor by n and resets patch.
func (v Version) BumpMinor(n int) Version {
	return Version{Major: v.Major, Minor: v.Minor + n}
}

// BumpPatch advances patch by n.
func (v Version) BumpPatch(n int) Version {
	return Version{Major: v.Major, Minor: v.Minor, Patch: v.Patch + n}
}

// IsTagVersion reports whether name is prefix followed by a valid X.Y.Z
// version. It is used to pick release tags out of a repository.
func IsTagVersion(name, prefix string) bool {
	if !strings.HasPrefix(name, prefix) {
		return false
	}
	_, err := Parse(strings.TrimPrefix(name, prefix))
	return err == nil
}
