package git

import (
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBullet(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		subject string
		want    string
	}{
		"plain type":        {subject: "fix: correct overflow", want: "* fix: correct overflow"},
		"scoped":            {subject: "feat(api): add endpoint", want: "* feat: add endpoint"},
		"breaking":          {subject: "feat(api)!: drop v1", want: "* feat: drop v1"},
		"uppercase type":    {subject: "Fix: typo", want: "* fix: typo"},
		"not conventional":  {subject: "Merge pull request #1", want: "* Merge pull request #1"},
		"surrounding space": {subject: "  docs: readme  ", want: "* docs: readme"},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Bullet(tt.subject))
		})
	}
}

func TestChangelogText_SinceLatestTag(t *testing.T) {
	t.Parallel()

	dir, repo := initRepo(t, "feat: first")
	first := commitFile(t, dir, repo, "fix: old bug")
	_, err := repo.CreateTag("v1.0.0", first, &git.CreateTagOptions{
		Tagger:  &object.Signature{Name: "Test", Email: "test@test.com", When: time.Now()},
		Message: "v1.0.0",
	})
	require.NoError(t, err)

	older := commitFile(t, dir, repo, "feat(ui): new screen")
	_, err = repo.CreateTag("v0.9.0", older, nil)
	require.NoError(t, err)
	commitFile(t, dir, repo, "fix: newer bug\n\nbody text * feat: ignored")

	r, err := Open(dir)
	require.NoError(t, err)

	latest, err := r.LatestReleaseTag("v")
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, "v1.0.0", latest.Name)
	assert.Equal(t, first, latest.Commit)

	text, err := r.ChangelogText("v")
	require.NoError(t, err)
	assert.Equal(t, "* fix: newer bug\n* feat: new screen\n", text)
}

func TestChangelogText_NoTags(t *testing.T) {
	t.Parallel()

	dir, _ := initRepo(t, "feat: a", "fix: b")
	r, err := Open(dir)
	require.NoError(t, err)

	latest, err := r.LatestReleaseTag("v")
	require.NoError(t, err)
	assert.Nil(t, latest)

	text, err := r.ChangelogText("v")
	require.NoError(t, err)
	assert.Equal(t, "* fix: b\n* feat: a\n", text)
}

func TestChangelogText_IgnoresOtherPrefixes(t *testing.T) {
	t.Parallel()

	dir, repo := initRepo(t, "feat: a")
	head, err := repo.Head()
	require.NoError(t, err)
	_, err = repo.CreateTag("release-5.0.0", head.Hash(), nil)
	require.NoError(t, err)
	commitFile(t, dir, repo, "fix: b")

	r, err := Open(dir)
	require.NoError(t, err)

	text, err := r.ChangelogText("v")
	require.NoError(t, err)
	assert.Equal(t, "* fix: b\n* feat: a\n", text)

	text, err = r.ChangelogText("release-")
	require.NoError(t, err)
	assert.Equal(t, "* fix: b\n", text)
}

func TestChangelogText_EmptyRepository(t *testing.T) {
	t.Parallel()

	dir, _ := initRepo(t)
	r, err := Open(dir)
	require.NoError(t, err)

	text, err := r.ChangelogText("v")
	require.NoError(t, err)
	assert.Empty(t, text)
}
