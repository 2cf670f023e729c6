package changelog

import (
	"fmt"
	"io"
	"strings"

	"github.com/tagsmith/tagsmith/internal/commits"
	"github.com/tagsmith/tagsmith/internal/policy"
)

// Render produces the changelog document for a classification. Sections
// follow the policy's included-type order; types without lines are omitted.
//
// The function is idempotent - given the same input, it produces identical output.
func Render(c commits.Classification, p policy.Policy) string {
	var b strings.Builder
	// strings.Builder never returns a write error.
	_ = RenderTo(&b, c, p)
	return b.String()
}

// RenderTo writes the changelog document for a classification to w.
func RenderTo(w io.Writer, c commits.Classification, p policy.Policy) error {
	for _, t := range p.IncludedTypes {
		lines := c.Lines(t)
		if len(lines) == 0 {
			continue
		}
		if err := renderSection(w, p.Label(t), t, lines, p.StripTypePrefix); err != nil {
			return fmt.Errorf("rendering %s section: %w", t, err)
		}
	}
	return nil
}

// renderSection writes a label, its bullets and a blank separator line.
func renderSection(w io.Writer, label, commitType string, lines []string, strip bool) error {
	if _, err := io.WriteString(w, label+"\n"); err != nil {
		return err
	}

	for _, line := range lines {
		if strip {
			line = StripTypePrefix(line, commitType)
		}
		if _, err := io.WriteString(w, line+"\n"); err != nil {
			return err
		}
	}

	_, err := io.WriteString(w, "\n")
	return err
}

// StripTypePrefix turns "* <type>: description" into "* description". Lines
// that do not start with the type's bullet are returned unchanged.
func StripTypePrefix(line, commitType string) string {
	prefix := policy.TypePattern(commitType)
	if !strings.HasPrefix(line, prefix) {
		return line
	}
	return "* " + strings.TrimLeft(strings.TrimPrefix(line, prefix), " ")
}

// Clean trims leading and trailing blank lines and trailing whitespace,
// producing the final changelog artifact.
func Clean(doc string) string {
	lines := strings.Split(doc, "\n")

	start := 0
	for start < len(lines) && strings.TrimSpace(lines[start]) == "" {
		start++
	}
	end := len(lines)
	for end > start && strings.TrimSpace(lines[end-1]) == "" {
		end--
	}

	return strings.TrimRight(strings.Join(lines[start:end], "\n"), " \t\r")
}
