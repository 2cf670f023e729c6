package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_IsValid(t *testing.T) {
	t.Parallel()

	require.NoError(t, Default().Validate())
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		modify  func(p *Policy)
		wantKey string
	}{
		"zero minor interval": {
			modify:  func(p *Policy) { p.MinorBumpInterval = 0 },
			wantKey: "minor_bump_interval",
		},
		"negative patch interval": {
			modify:  func(p *Policy) { p.PatchBumpInterval = -1 },
			wantKey: "patch_bump_interval",
		},
		"empty marker": {
			modify:  func(p *Policy) { p.MajorReleaseMarker = "  " },
			wantKey: "major_release_commit_message",
		},
		"no included types": {
			modify:  func(p *Policy) { p.IncludedTypes = nil },
			wantKey: "include_commit_types",
		},
		"unknown included type": {
			modify:  func(p *Policy) { p.IncludedTypes = []string{"feat", "chore"} },
			wantKey: "include_commit_types",
		},
		"unknown minor type": {
			modify:  func(p *Policy) { p.MinorTypes = []string{"feature"} },
			wantKey: "minor_commit_types",
		},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			p := Default()
			tt.modify(&p)
			err := p.Validate()
			require.Error(t, err)
			assert.True(t, IsConfigError(err))

			var ce *ConfigError
			require.ErrorAs(t, err, &ce)
			assert.Equal(t, tt.wantKey, ce.Key)
		})
	}
}

func TestIsMinor(t *testing.T) {
	t.Parallel()

	p := Policy{MinorTypes: []string{"perf"}, PatchTypes: []string{"feat"}}
	assert.True(t, p.IsMinor("perf"))
	assert.False(t, p.IsMinor("feat"), "explicit patch set wins over the feat default")
	assert.False(t, p.IsMinor("docs"))

	empty := Policy{}
	assert.True(t, empty.IsMinor("feat"))
	assert.False(t, empty.IsMinor("fix"))
}

func TestLabel(t *testing.T) {
	t.Parallel()

	p := Policy{Labels: map[string]string{"feat": "Features", "fix": ""}}
	assert.Equal(t, "Features", p.Label("feat"))
	assert.Equal(t, "fix", p.Label("fix"))
	assert.Equal(t, "docs", p.Label("docs"))
}

func TestParseList(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"feat", "fix", "docs"}, ParseList(" feat, fix ,,docs "))
	assert.Nil(t, ParseList(""))
}

func TestCanonicalTypes_Order(t *testing.T) {
	t.Parallel()

	assert.Equal(t,
		[]string{"feat", "fix", "build", "docs", "ci", "perf", "refactor", "revert", "style", "test"},
		CanonicalTypes())
	for _, typ := range CanonicalTypes() {
		assert.Contains(t, DefaultLabels(), typ)
	}
}
