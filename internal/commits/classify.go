// Package commits classifies changelog bullet lines by conventional-commit
// type and detects the major-release marker.
//
// Input is the bullet text produced by the commit history provider, one
// "* <type>: <description>" line per commit. Lines are matched by literal
// substring containment, never by parsing, so a line whose description
// happens to contain a second "* <type>:" sequence is bucketed under both
// types.
package commits

import (
	"regexp"
	"strings"

	"github.com/tagsmith/tagsmith/internal/policy"
)

// Classification is the frozen result of one classification pass. Both the
// version calculator and the changelog renderer read the same value.
type Classification struct {
	buckets       map[string][]string
	isMajorChange bool
	advisories    []Advisory
}

// Advisory reports a commit type that appeared in the changelog text but is
// not part of the included types. It never aborts a run.
type Advisory struct {
	Type  string
	Count int
	// Example is the first line that carried the type.
	Example string
}

// leadingType captures the type token of a "* type:" bullet, including types
// outside the canonical vocabulary such as "chore".
var leadingType = regexp.MustCompile(`^\*\s+([A-Za-z]+):`)

// Classify buckets every line of text according to p. Bucket order within a
// type follows the order of lines in text.
func Classify(text string, p policy.Policy) Classification {
	c := Classification{buckets: make(map[string][]string)}
	marker := p.MarkerPattern()
	seen := make(map[string]*Advisory)
	var order []string

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimRight(raw, " \t\r")
		if strings.TrimSpace(line) == "" {
			continue
		}

		if strings.Contains(line, marker) {
			c.isMajorChange = true
			continue
		}

		for _, t := range p.IncludedTypes {
			if strings.Contains(line, policy.TypePattern(t)) {
				c.buckets[t] = append(c.buckets[t], line)
			}
		}

		for _, t := range observedTypes(line) {
			if p.Includes(t) {
				continue
			}
			if adv, ok := seen[t]; ok {
				adv.Count++
				continue
			}
			seen[t] = &Advisory{Type: t, Count: 1, Example: line}
			order = append(order, t)
		}
	}

	c.advisories = orderAdvisories(order, seen)
	return c
}

// observedTypes returns every commit type referenced by line: the canonical
// types found anywhere as "* <type>:", plus the leading type token when it
// is outside the vocabulary.
func observedTypes(line string) []string {
	var types []string
	for _, t := range policy.CanonicalTypes() {
		if strings.Contains(line, policy.TypePattern(t)) {
			types = append(types, t)
		}
	}
	if m := leadingType.FindStringSubmatch(line); m != nil {
		t := strings.ToLower(m[1])
		if !policy.IsCanonicalType(t) {
			types = append(types, t)
		}
	}
	return types
}

// orderAdvisories sorts advisories with canonical types first, in canonical
// order, followed by unknown types in order of first appearance.
func orderAdvisories(order []string, seen map[string]*Advisory) []Advisory {
	if len(order) == 0 {
		return nil
	}
	out := make([]Advisory, 0, len(order))
	for _, t := range policy.CanonicalTypes() {
		if adv, ok := seen[t]; ok {
			out = append(out, *adv)
		}
	}
	for _, t := range order {
		if !policy.IsCanonicalType(t) {
			out = append(out, *seen[t])
		}
	}
	return out
}

// IsMajorChange reports whether the major-release marker was seen.
func (c Classification) IsMajorChange() bool {
	return c.isMajorChange
}

// Lines returns a copy of the lines bucketed under commitType.
func (c Classification) Lines(commitType string) []string {
	lines := c.buckets[commitType]
	if len(lines) == 0 {
		return nil
	}
	out := make([]string, len(lines))
	copy(out, lines)
	return out
}

// Count returns the number of lines bucketed under commitType.
func (c Classification) Count(commitType string) int {
	return len(c.buckets[commitType])
}

// Types returns the types with at least one line, in canonical order.
func (c Classification) Types() []string {
	var out []string
	for _, t := range policy.CanonicalTypes() {
		if len(c.buckets[t]) > 0 {
			out = append(out, t)
		}
	}
	return out
}

// Total returns the number of bucket entries across all types. A line that
// matched two types is counted twice.
func (c Classification) Total() int {
	n := 0
	for _, lines := range c.buckets {
		n += len(lines)
	}
	return n
}

// Advisories returns the unconfigured commit types observed in the text.
func (c Classification) Advisories() []Advisory {
	if len(c.advisories) == 0 {
		return nil
	}
	out := make([]Advisory, len(c.advisories))
	copy(out, c.advisories)
	return out
}
