// Package policy defines the release policy that drives commit classification,
// version calculation and changelog rendering. A Policy is built once per run
// from configuration and never mutated afterwards.
package policy

import (
	"fmt"
	"strings"
)

// Canonical commit types in their fixed enumeration order.
const (
	TypeFeat     = "feat"
	TypeFix      = "fix"
	TypeBuild    = "build"
	TypeDocs     = "docs"
	TypeCI       = "ci"
	TypePerf     = "perf"
	TypeRefactor = "refactor"
	TypeRevert   = "revert"
	TypeStyle    = "style"
	TypeTest     = "test"
)

// CanonicalTypes returns the known commit type vocabulary in canonical order.
// The order is independent of any configured include order.
func CanonicalTypes() []string {
	return []string{
		TypeFeat, TypeFix, TypeBuild, TypeDocs, TypeCI,
		TypePerf, TypeRefactor, TypeRevert, TypeStyle, TypeTest,
	}
}

// IsCanonicalType reports whether name belongs to the known vocabulary.
func IsCanonicalType(name string) bool {
	for _, t := range CanonicalTypes() {
		if t == name {
			return true
		}
	}
	return false
}

// DefaultLabels returns the section label used for each canonical type when
// the configuration does not override it.
func DefaultLabels() map[string]string {
	return map[string]string{
		TypeFeat:     "### Features",
		TypeFix:      "### Bug Fixes",
		TypeBuild:    "### Build System",
		TypeDocs:     "### Documentation",
		TypeCI:       "### Continuous Integration",
		TypePerf:     "### Performance Improvements",
		TypeRefactor: "### Code Refactoring",
		TypeRevert:   "### Reverts",
		TypeStyle:    "### Styles",
		TypeTest:     "### Tests",
	}
}

// Policy is the immutable set of rules for a single release run.
type Policy struct {
	// MajorReleaseMarker is the commit message that forces a major bump,
	// matched as "* <MajorReleaseMarker>".
	MajorReleaseMarker string
	// IncludedTypes lists the commit types that count toward versioning and
	// output. Its order is the changelog display order.
	IncludedTypes []string
	// MinorTypes and PatchTypes select which segment a type advances.
	MinorTypes []string
	PatchTypes []string
	// MinorBumpInterval is the number of minor-type commits needed to
	// advance the minor segment by one.
	MinorBumpInterval int
	// PatchBumpInterval is the same for the patch segment.
	PatchBumpInterval int
	// StripTypePrefix removes "type: " from rendered bullets.
	StripTypePrefix bool
	// Labels maps a commit type to its changelog section header.
	Labels map[string]string
}

// Default returns the policy used when nothing is configured.
func Default() Policy {
	return Policy{
		MajorReleaseMarker: "feat: major release",
		IncludedTypes:      CanonicalTypes(),
		MinorTypes:         []string{TypeFeat},
		PatchTypes:         []string{TypeFix},
		MinorBumpInterval:  1,
		PatchBumpInterval:  1,
		Labels:             DefaultLabels(),
	}
}

// Includes reports whether commitType is one of the included types.
func (p Policy) Includes(commitType string) bool {
	return contains(p.IncludedTypes, commitType)
}

// IsMinor reports whether a commit of the given type advances the minor
// segment. Types listed in neither set default to minor only for "feat".
func (p Policy) IsMinor(commitType string) bool {
	if contains(p.MinorTypes, commitType) {
		return true
	}
	if contains(p.PatchTypes, commitType) {
		return false
	}
	return commitType == TypeFeat
}

// Label returns the section header for commitType, falling back to the type
// name when no label is configured.
func (p Policy) Label(commitType string) string {
	if label, ok := p.Labels[commitType]; ok && label != "" {
		return label
	}
	return commitType
}

// MarkerPattern is the literal bullet that identifies a major release.
func (p Policy) MarkerPattern() string {
	return "* " + p.MajorReleaseMarker
}

// TypePattern is the literal bullet prefix that identifies commitType.
func TypePattern(commitType string) string {
	return "* " + commitType + ":"
}

// Validate checks the policy for configuration errors. It is called before
// any mutating side effect so a bad policy aborts the run early.
func (p Policy) Validate() error {
	if p.MinorBumpInterval <= 0 {
		return &ConfigError{
			Key:     "minor_bump_interval",
			Message: fmt.Sprintf("must be a positive integer, got %d", p.MinorBumpInterval),
		}
	}
	if p.PatchBumpInterval <= 0 {
		return &ConfigError{
			Key:     "patch_bump_interval",
			Message: fmt.Sprintf("must be a positive integer, got %d", p.PatchBumpInterval),
		}
	}
	if strings.TrimSpace(p.MajorReleaseMarker) == "" {
		return &ConfigError{Key: "major_release_commit_message", Message: "required field is empty"}
	}
	if len(p.IncludedTypes) == 0 {
		return &ConfigError{Key: "include_commit_types", Message: "at least one commit type is required"}
	}
	for _, set := range []struct {
		key   string
		types []string
	}{
		{"include_commit_types", p.IncludedTypes},
		{"minor_commit_types", p.MinorTypes},
		{"patch_commit_types", p.PatchTypes},
	} {
		for _, t := range set.types {
			if !IsCanonicalType(t) {
				return &ConfigError{
					Key:     set.key,
					Message: fmt.Sprintf("unknown commit type %q (valid: %s)", t, strings.Join(CanonicalTypes(), ", ")),
				}
			}
		}
	}
	return nil
}

// ParseList splits a comma-separated type list, trimming blanks and
// dropping empty items.
func ParseList(csv string) []string {
	var out []string
	for _, item := range strings.Split(csv, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
