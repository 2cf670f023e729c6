package cli

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tagsmith/tagsmith/internal/build"
	clierrors "github.com/tagsmith/tagsmith/internal/errors"
	"github.com/tagsmith/tagsmith/internal/git"
	"github.com/tagsmith/tagsmith/internal/policy"
	"github.com/tagsmith/tagsmith/internal/versionstore"
)

// newRepo creates a repository with package.json at 1.0.0 and one commit per message.
func newRepo(t *testing.T, messages ...string) string {
	t.Helper()

	dir := t.TempDir()
	repo, err := gogit.PlainInit(dir, false)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "package.json"), []byte(`{"version":"1.0.0"}`), 0o644))

	worktree, err := repo.Worktree()
	require.NoError(t, err)
	for i, msg := range messages {
		name := filepath.Join(dir, "file.txt")
		require.NoError(t, os.WriteFile(name, []byte{byte('a' + i)}, 0o644))
		require.NoError(t, worktree.AddWithOptions(&gogit.AddOptions{All: true}))
		_, err := worktree.Commit(msg, &gogit.CommitOptions{
			Author: &object.Signature{Name: "Dev", Email: "dev@example.com", When: time.Now()},
		})
		require.NoError(t, err)
	}
	return dir
}

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
			out[name] = strings.Join(body, "\n")
			continue
		}
		name, value, _ := strings.Cut(lines[i], "=")
		out[name] = value
	}
	return out
}

// execute runs the CLI with args and returns stdout, stderr and the exit code.
func execute(t *testing.T, args ...string) (string, string, int) {
	t.Helper()

	cmd := newRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)

	err := cmd.Execute()
	code := reportError(&stderr, err)
	return stdout.String(), stderr.String(), code
}

func TestRootCmd_Structure(t *testing.T) {
	t.Parallel()

	cmd := newRootCmd()
	assert.Equal(t, "tagsmith", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.NotEmpty(t, cmd.Long)
	assert.NotEmpty(t, cmd.Example)

	for _, name := range []string{"config", "env-file", "dir", "debug"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(name), name)
	}

	var names []string
	for _, sub := range cmd.Commands() {
		names = append(names, sub.Name())
	}
	assert.Subset(t, names, []string{"release", "next", "changelog", "init", "version"})
}

func TestNextCmd(t *testing.T) {
	t.Parallel()

	dir := newRepo(t, "feat: a", "fix: b")

	tests := map[string]struct {
		args []string
		want string
	}{
		"from version file": {
			args: []string{"next", "-C", dir, "--version-file", "package.json"},
			want: "1.1.0\n",
		},
		"tag output": {
			args: []string{"next", "-C", dir, "--version-file", "package.json", "--tag", "--tag-prefix", "release-"},
			want: "release-1.1.0\n",
		},
		"literal version and interval": {
			args: []string{"next", "-C", dir, "--version-file", "2.0.0", "--minor-bump-interval", "2"},
			want: "2.0.1\n",
		},
		"no version source": {
			args: []string{"next", "-C", dir},
			want: "0.1.0\n",
		},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			stdout, stderr, code := execute(t, tt.args...)
			require.Equal(t, ExitSuccess, code, stderr)
			assert.Equal(t, tt.want, stdout)
		})
	}
}

func TestChangelogCmd(t *testing.T) {
	t.Parallel()

	dir := newRepo(t, "feat: a", "fix(core): b", "chore: c")

	stdout, stderr, code := execute(t, "changelog", "-C", dir, "--strip-commit-prefix")
	require.Equal(t, ExitSuccess, code, stderr)
	assert.Equal(t, "### Features\n* a\n\n### Bug Fixes\n* b\n", stdout)
	assert.Contains(t, stderr, "chore", "advisory is logged")
}

func TestReleaseCmd_DryRun(t *testing.T) {
	t.Parallel()

	dir := newRepo(t, "feat: a")
	outFile := filepath.Join(t.TempDir(), "github_output")

	stdout, stderr, code := execute(t, "release", "-C", dir,
		"--version-file", "package.json", "--dry-run", "--github-output", outFile)
	require.Equal(t, ExitSuccess, code, stderr)
	assert.Contains(t, stdout, "v1.1.0")
	assert.Contains(t, stdout, "Dry run")

	outputs := readStepOutputs(t, outFile)
	assert.Equal(t, "1.1.0", outputs["version"])
	assert.Equal(t, "v1.1.0", outputs["tag"])
	assert.Equal(t, "false", outputs["skipped"])
	assert.Equal(t, "### Features\n* feat: a", outputs["changelog"])
	assert.Equal(t, outputs["changelog"], outputs["clean_changelog"])

	pkg, err := os.ReadFile(filepath.Join(dir, "package.json"))
	require.NoError(t, err)
	assert.Equal(t, `{"version":"1.0.0"}`, string(pkg))
}

func TestReleaseCmd_Apply(t *testing.T) {
	t.Parallel()

	dir := newRepo(t, "feat: a", "fix: b")

	stdout, stderr, code := execute(t, "release", "-C", dir,
		"--version-file", "package.json", "--git-pull-method", "none", "--git-push=false", "--github-output", "")
	require.Equal(t, ExitSuccess, code, stderr)
	assert.Contains(t, stdout, "Released v1.1.0")

	pkg, err := os.ReadFile(filepath.Join(dir, "package.json"))
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"version\": \"1.1.0\"\n}\n", string(pkg))
	assert.FileExists(t, filepath.Join(dir, "CHANGELOG.md"))

	r, err := git.Open(dir)
	require.NoError(t, err)
	latest, err := r.LatestReleaseTag("v")
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, "v1.1.0", latest.Name)
}

func TestReleaseCmd_SkipOnEmpty(t *testing.T) {
	t.Parallel()

	dir := newRepo(t, "chore: a")
	outFile := filepath.Join(t.TempDir(), "github_output")

	stdout, stderr, code := execute(t, "release", "-C", dir, "--git-pull-method", "none", "--github-output", outFile)
	require.Equal(t, ExitSuccess, code, stderr)
	assert.Contains(t, stdout, "skipped")

	assert.Equal(t, "true", readStepOutputs(t, outFile)["skipped"])
	assert.NoFileExists(t, filepath.Join(dir, "CHANGELOG.md"))
}

func TestReleaseCmd_VersionUnchanged(t *testing.T) {
	t.Parallel()

	dir := newRepo(t, "fix: a")

	stdout, stderr, code := execute(t, "release", "-C", dir, "--version-file", "package.json",
		"--patch-bump-interval", "2", "--git-pull-method", "none", "--github-output", "")
	require.Equal(t, ExitSuccess, code, stderr)
	assert.Contains(t, stdout, "Version stays at 1.0.0, skipped")

	pkg, err := os.ReadFile(filepath.Join(dir, "package.json"))
	require.NoError(t, err)
	assert.Equal(t, `{"version":"1.0.0"}`, string(pkg))
	assert.NoFileExists(t, filepath.Join(dir, "CHANGELOG.md"))
}

func TestReleaseCmd_ExitCodes(t *testing.T) {
	t.Parallel()

	dir := newRepo(t, "feat: a")

	tests := map[string]struct {
		args     []string
		wantCode int
		contains string
	}{
		"zero interval": {
			args:     []string{"release", "-C", dir, "--dry-run", "--patch-bump-interval", "0"},
			wantCode: ExitInvalidArguments,
			contains: "patch_bump_interval",
		},
		"unknown commit type": {
			args:     []string{"next", "-C", dir, "--include-commit-types", "feat,chores"},
			wantCode: ExitInvalidArguments,
			contains: "include_commit_types",
		},
		"unsupported version file": {
			args:     []string{"next", "-C", dir, "--version-file", "VERSION.xml"},
			wantCode: ExitInvalidArguments,
			contains: "unsupported format",
		},
		"missing version path": {
			args:     []string{"next", "-C", dir, "--version-file", "package.json", "--version-path", "tool.version"},
			wantCode: ExitInvalidArguments,
			contains: `segment "tool" not found`,
		},
		"unknown flag": {
			args:     []string{"next", "--bogus"},
			wantCode: ExitInvalidArguments,
			contains: "Argument Error",
		},
		"unexpected argument": {
			args:     []string{"next", "extra"},
			wantCode: ExitInvalidArguments,
			contains: "unexpected argument",
		},
		"not a repository": {
			args:     []string{"next", "-C", t.TempDir()},
			wantCode: ExitFailure,
			contains: "not a git repository",
		},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			_, stderr, code := execute(t, tt.args...)
			assert.Equal(t, tt.wantCode, code)
			assert.Contains(t, stderr, tt.contains)
		})
	}
}

func TestClassify(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		err  error
		want clierrors.ErrorCategory
	}{
		"policy":      {err: &policy.ConfigError{Key: "k", Message: "m"}, want: clierrors.Configuration},
		"type clash":  {err: &versionstore.PathError{Path: []string{"version"}, Expected: versionstore.KindString, Actual: versionstore.KindNumber}, want: clierrors.Persistence},
		"missing":     {err: &versionstore.PathError{Path: []string{"version"}, Missing: true}, want: clierrors.Configuration},
		"side effect": {err: &git.SideEffectError{Step: git.StepPush, Err: errors.New("denied")}, want: clierrors.SideEffect},
		"other":       {err: errors.New("boom"), want: clierrors.Runtime},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, classify(tt.err).Category)
		})
	}
}

func TestVersionCmd_Plain(t *testing.T) {
	t.Parallel()

	stdout, _, code := execute(t, "version", "--plain")
	assert.Equal(t, ExitSuccess, code)
	assert.Equal(t, build.Version+"\n", stdout)
}

func TestInitCmd(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	_, stderr, code := execute(t, "init", "-C", dir)
	require.Equal(t, ExitSuccess, code, stderr)
	assert.FileExists(t, filepath.Join(dir, ".tagsmith.yml"))

	_, stderr, code = execute(t, "init", "-C", dir)
	assert.Equal(t, ExitInvalidArguments, code)
	assert.Contains(t, stderr, "already exists")

	_, _, code = execute(t, "init", "-C", dir, "--force")
	assert.Equal(t, ExitSuccess, code)
}
