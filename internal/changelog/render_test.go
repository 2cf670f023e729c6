package changelog

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tagsmith/tagsmith/internal/commits"
	"github.com/tagsmith/tagsmith/internal/policy"
)

func TestRender(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		text        string
		included    []string
		strip       bool
		want        string
		notContains []string
	}{
		"sections in configured order": {
			text:     "* feat: add x\n* fix: bug\n* feat: add y\n",
			included: []string{"fix", "feat"},
			want:     "### Bug Fixes\n* fix: bug\n\n### Features\n* feat: add x\n* feat: add y\n\n",
		},
		"empty sections omitted": {
			text:        "* feat: add x\n",
			included:    []string{"feat", "docs", "fix"},
			want:        "### Features\n* feat: add x\n\n",
			notContains: []string{"### Documentation", "### Bug Fixes"},
		},
		"prefix stripped": {
			text:     "* fix: correct overflow\n",
			included: []string{"fix"},
			strip:    true,
			want:     "### Bug Fixes\n* correct overflow\n\n",
		},
		"excluded types not rendered": {
			text:        "* ci: pipeline\n* fix: bug\n",
			included:    []string{"fix"},
			want:        "### Bug Fixes\n* fix: bug\n\n",
			notContains: []string{"pipeline"},
		},
		"major marker not rendered": {
			text:        "* feat: major release\n* feat: add x\n",
			included:    []string{"feat"},
			want:        "### Features\n* feat: add x\n\n",
			notContains: []string{"major release"},
		},
		"nothing to render": {
			text:     "* chore: deps\n",
			included: []string{"feat", "fix"},
			want:     "",
		},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			p := policy.Default()
			p.IncludedTypes = tt.included
			p.StripTypePrefix = tt.strip
			c := commits.Classify(tt.text, p)

			got := Render(c, p)
			assert.Equal(t, tt.want, got)
			for _, s := range tt.notContains {
				assert.NotContains(t, got, s)
			}
		})
	}
}

func TestRender_CustomLabels(t *testing.T) {
	t.Parallel()

	p := policy.Default()
	p.IncludedTypes = []string{"feat", "perf"}
	p.Labels = map[string]string{"feat": "New stuff"}
	c := commits.Classify("* feat: a\n* perf: b\n", p)

	assert.Equal(t, "New stuff\n* feat: a\n\nperf\n* perf: b\n\n", Render(c, p))
}

func TestRender_Idempotent(t *testing.T) {
	t.Parallel()

	p := policy.Default()
	c := commits.Classify("* feat: a\n* fix: b\n* docs: c\n", p)
	assert.Equal(t, Render(c, p), Render(c, p))
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestRenderTo_PropagatesWriteError(t *testing.T) {
	t.Parallel()

	p := policy.Default()
	c := commits.Classify("* feat: a\n", p)

	err := RenderTo(failingWriter{}, c, p)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rendering feat section")
}

func TestStripTypePrefix(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		line string
		typ  string
		want string
	}{
		"leading prefix":       {line: "* fix: correct overflow", typ: "fix", want: "* correct overflow"},
		"no space after colon": {line: "* fix:tight", typ: "fix", want: "* tight"},
		"colon kept in text":   {line: "* feat: scope: detail", typ: "feat", want: "* scope: detail"},
		"type not leading":     {line: "* feat: handle * fix: literal", typ: "fix", want: "* feat: handle * fix: literal"},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, StripTypePrefix(tt.line, tt.typ))
		})
	}
}

func TestClean(t *testing.T) {
	t.Parallel()

	p := policy.Default()
	c := commits.Classify("* feat: a\n* fix: b\n", p)
	cleaned := Clean("\n\n" + Render(c, p) + "  \n")

	assert.Equal(t, "### Features\n* feat: a\n\n### Bug Fixes\n* fix: b", cleaned)
	assert.False(t, strings.HasSuffix(cleaned, "\n"))
	assert.Equal(t, "", Clean("\n \n\t\n"))
}
