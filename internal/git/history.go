package git

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"

	"github.com/tagsmith/tagsmith/internal/semver"
)

// ReleaseTag is a tag whose name is the tag prefix followed by a version.
type ReleaseTag struct {
	Name    string
	Version semver.Version
	Commit  plumbing.Hash
}

// LatestReleaseTag returns the highest version tag carrying prefix, or nil
// when the repository has no release yet.
func (r *Repository) LatestReleaseTag(prefix string) (*ReleaseTag, error) {
	iter, err := r.repo.Tags()
	if err != nil {
		return nil, fmt.Errorf("listing tags: %w", err)
	}

	var latest *ReleaseTag
	err = iter.ForEach(func(ref *plumbing.Reference) error {
		name := ref.Name().Short()
		if !semver.IsTagVersion(name, prefix) {
			return nil
		}
		v, _ := semver.Parse(strings.TrimPrefix(name, prefix))
		if latest != nil && v.Compare(latest.Version) <= 0 {
			return nil
		}

		commit, err := r.peelToCommit(ref)
		if err != nil {
			return err
		}
		latest = &ReleaseTag{Name: name, Version: v, Commit: commit}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("iterating tags: %w", err)
	}

	if latest != nil {
		logDebug("[git] LatestReleaseTag: %s at %s", latest.Name, latest.Commit)
	}
	return latest, nil
}

// peelToCommit resolves lightweight and annotated tags to their commit.
func (r *Repository) peelToCommit(ref *plumbing.Reference) (plumbing.Hash, error) {
	tag, err := r.repo.TagObject(ref.Hash())
	switch {
	case err == nil:
		c, err := tag.Commit()
		if err != nil {
			return plumbing.ZeroHash, fmt.Errorf("resolving tag %s: %w", ref.Name().Short(), err)
		}
		return c.Hash, nil
	case errors.Is(err, plumbing.ErrObjectNotFound):
		return ref.Hash(), nil
	default:
		return plumbing.ZeroHash, fmt.Errorf("reading tag %s: %w", ref.Name().Short(), err)
	}
}

// scopedType matches a conventional header such as "feat(api)!: text".
var scopedType = regexp.MustCompile(`^([A-Za-z]+)(\([^)]*\))?!?:\s*(.*)$`)

// Bullet formats a commit subject as a changelog line. A conventional scope
// or breaking marker is folded away so the line reads "* type: description".
func Bullet(subject string) string {
	subject = strings.TrimSpace(subject)
	if m := scopedType.FindStringSubmatch(subject); m != nil {
		return "* " + strings.ToLower(m[1]) + ": " + m[3]
	}
	return "* " + subject
}

// ChangelogText returns one bullet per non-merge commit between HEAD and the
// latest release tag, newest first. Without a release tag the whole history
// is used.
func (r *Repository) ChangelogText(tagPrefix string) (string, error) {
	head, err := r.repo.Head()
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("getting HEAD reference: %w", err)
	}

	var stop plumbing.Hash
	latest, err := r.LatestReleaseTag(tagPrefix)
	if err != nil {
		return "", err
	}
	if latest != nil {
		stop = latest.Commit
	}

	iter, err := r.repo.Log(&git.LogOptions{From: head.Hash()})
	if err != nil {
		return "", fmt.Errorf("reading commit log: %w", err)
	}
	defer iter.Close()

	var lines []string
	err = iter.ForEach(func(c *object.Commit) error {
		if c.Hash == stop {
			return storer.ErrStop
		}
		if c.NumParents() > 1 {
			return nil
		}
		subject, _, _ := strings.Cut(c.Message, "\n")
		if strings.TrimSpace(subject) == "" {
			return nil
		}
		lines = append(lines, Bullet(subject))
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("walking commit log: %w", err)
	}

	logDebug("[git] ChangelogText: %d commits since %v", len(lines), latestName(latest))
	if len(lines) == 0 {
		return "", nil
	}
	return strings.Join(lines, "\n") + "\n", nil
}

func latestName(t *ReleaseTag) string {
	if t == nil {
		return "repository root"
	}
	return t.Name
}
