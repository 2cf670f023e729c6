package semver

import (
	"github.com/tagsmith/tagsmith/internal/commits"
	"github.com/tagsmith/tagsmith/internal/policy"
)

// Bump describes how the next version was derived.
type Bump struct {
	Current    Version
	Next       Version
	Major      bool
	MinorCount int
	PatchCount int
	MinorBump  int
	PatchBump  int
}

// Changed reports whether Next differs from Current.
func (b Bump) Changed() bool {
	return b.Next != b.Current
}

// Calculate derives the next version from current and the classification.
// It is pure: identical inputs always produce the same Bump.
//
// A major marker yields major+1.0.0. Otherwise every bucketed line of an
// included type adds one to the minor or patch count. A segment moves by one
// for every full interval of commits, so counts below the interval leave it
// unchanged. A minor bump takes precedence and resets patch.
func Calculate(current Version, c commits.Classification, p policy.Policy) (Bump, error) {
	if err := validateIntervals(p); err != nil {
		return Bump{}, err
	}

	b := Bump{Current: current}
	if c.IsMajorChange() {
		b.Major = true
		b.Next = current.BumpMajor()
		return b, nil
	}

	for _, t := range p.IncludedTypes {
		n := c.Count(t)
		if p.IsMinor(t) {
			b.MinorCount += n
		} else {
			b.PatchCount += n
		}
	}

	b.MinorBump = steps(b.MinorCount, p.MinorBumpInterval)
	if b.MinorBump > 0 {
		b.Next = current.BumpMinor(b.MinorBump)
		return b, nil
	}

	b.PatchBump = steps(b.PatchCount, p.PatchBumpInterval)
	b.Next = current.BumpPatch(b.PatchBump)
	return b, nil
}

// NextVersion is Calculate reduced to the resulting version.
func NextVersion(current Version, c commits.Classification, p policy.Policy) (Version, error) {
	b, err := Calculate(current, c, p)
	if err != nil {
		return Version{}, err
	}
	return b.Next, nil
}

func validateIntervals(p policy.Policy) error {
	if p.MinorBumpInterval <= 0 || p.PatchBumpInterval <= 0 {
		return p.Validate()
	}
	return nil
}

// steps returns how many whole intervals of size d fit in n.
func steps(n, d int) int {
	if n <= 0 {
		return 0
	}
	return n / d
}
