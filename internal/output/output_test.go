package output

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// readStepOutputs parses a step output file in either name=value or
// name<<DELIMITER form.
func readStepOutputs(t *testing.T, path string) map[string]string {
	t.Helper()

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	out := make(map[string]string)
	lines := strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
	for i := 0; i < len(lines); i++ {
		if name, delim, ok := strings.Cut(lines[i], "<<"); ok {
			var body []string
			for i++; i < len(lines) && lines[i] != delim; i++ {
				body = append(body, lines[i])
			}
			require.Less(t, i, len(lines), "unterminated value for %s", name)
			out[name] = strings.Join(body, "\n")
			continue
		}
		name, value, ok := strings.Cut(lines[i], "=")
		require.True(t, ok, "malformed line %q", lines[i])
		out[name] = value
	}
	return out
}

func TestAppendStepOutputs(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		fields []Field
		want   map[string]string
	}{
		"single line": {
			fields: []Field{{Name: "version", Value: "1.2.3"}, {Name: "skipped", Value: "false"}},
			want:   map[string]string{"version": "1.2.3", "skipped": "false"},
		},
		"multi line": {
			fields: []Field{{Name: "changelog", Value: "### Features\n* a\n\n### Bug Fixes\n* b"}},
			want:   map[string]string{"changelog": "### Features\n* a\n\n### Bug Fixes\n* b"},
		},
		"empty value": {
			fields: []Field{{Name: "changelog", Value: ""}},
			want:   map[string]string{"changelog": ""},
		},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			path := filepath.Join(t.TempDir(), "output")
			require.NoError(t, AppendStepOutputs(path, tt.fields))
			assert.Equal(t, tt.want, readStepOutputs(t, path))
		})
	}
}

func TestAppendStepOutputs_KeepsExistingContent(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "output")
	require.NoError(t, os.WriteFile(path, []byte("existing=1\n"), 0o644))
	require.NoError(t, AppendStepOutputs(path, []Field{{Name: "tag", Value: "v1.0.0"}}))

	assert.Equal(t, map[string]string{"existing": "1", "tag": "v1.0.0"}, readStepOutputs(t, path))
}

func TestAppendStepOutputs_UnwritablePath(t *testing.T) {
	t.Parallel()

	err := AppendStepOutputs(filepath.Join(t.TempDir(), "missing", "output"), []Field{{Name: "tag", Value: "v1"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "opening step output file")
}

func TestPrintHelpers(t *testing.T) {
	color.NoColor = true

	var buf bytes.Buffer
	PrintField(&buf, "version", "1.2.3")
	PrintSuccess(&buf, "released")
	PrintNotice(&buf, "dry run")
	PrintRule(&buf, "changelog")

	assert.Equal(t, "version:   1.2.3\n✓ released\n! dry run\n", buf.String())
}
