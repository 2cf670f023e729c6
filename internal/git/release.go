package git

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// DefaultNetworkTimeout bounds a single pull or push.
const DefaultNetworkTimeout = 2 * time.Minute

// Identity is the author and tagger used for release commits.
type Identity struct {
	Name  string
	Email string
}

func (id Identity) signature(when time.Time) *object.Signature {
	return &object.Signature{Name: id.Name, Email: id.Email, When: when}
}

// Side effect steps, used to label SideEffectError.
const (
	StepPull   = "pull"
	StepAdd    = "add"
	StepCommit = "commit"
	StepTag    = "tag"
	StepPush   = "push"
)

// SideEffectError reports a failed repository mutation. Earlier steps of the
// same run may already have taken effect; nothing is rolled back.
type SideEffectError struct {
	Step string
	Err  error
}

func (e *SideEffectError) Error() string {
	return fmt.Sprintf("git %s failed: %v", e.Step, e.Err)
}

func (e *SideEffectError) Unwrap() error {
	return e.Err
}

// IsSideEffectError returns true if err is or wraps a SideEffectError.
func IsSideEffectError(err error) bool {
	var se *SideEffectError
	return errors.As(err, &se)
}

// Pull fast-forwards branch from remote. An up-to-date branch is not an error.
func (r *Repository) Pull(ctx context.Context, remote, branch string) error {
	worktree, err := r.repo.Worktree()
	if err != nil {
		return &SideEffectError{Step: StepPull, Err: err}
	}
	auth, err := r.authForRemote(remote)
	if err != nil {
		return &SideEffectError{Step: StepPull, Err: err}
	}

	ctx, cancel := context.WithTimeout(ctx, DefaultNetworkTimeout)
	defer cancel()

	logDebug("[git] pulling %s from %s", branch, remote)
	err = worktree.PullContext(ctx, &git.PullOptions{
		RemoteName:    remote,
		ReferenceName: plumbing.NewBranchReferenceName(branch),
		SingleBranch:  true,
		Auth:          auth,
	})
	if err != nil && !errors.Is(err, git.NoErrAlreadyUpToDate) {
		return &SideEffectError{Step: StepPull, Err: err}
	}
	return nil
}

// AddAll stages every modified, new and deleted file.
func (r *Repository) AddAll() error {
	worktree, err := r.repo.Worktree()
	if err != nil {
		return &SideEffectError{Step: StepAdd, Err: err}
	}
	if err := worktree.AddWithOptions(&git.AddOptions{All: true}); err != nil {
		return &SideEffectError{Step: StepAdd, Err: err}
	}
	logDebug("[git] staged all changes")
	return nil
}

// Commit records the staged changes and returns the new commit hash.
func (r *Repository) Commit(message string, id Identity, when time.Time) (plumbing.Hash, error) {
	worktree, err := r.repo.Worktree()
	if err != nil {
		return plumbing.ZeroHash, &SideEffectError{Step: StepCommit, Err: err}
	}

	hash, err := worktree.Commit(message, &git.CommitOptions{
		Author:            id.signature(when),
		Committer:         id.signature(when),
		AllowEmptyCommits: true,
	})
	if err != nil {
		return plumbing.ZeroHash, &SideEffectError{Step: StepCommit, Err: err}
	}
	logDebug("[git] committed %s", hash)
	return hash, nil
}

// Tag creates an annotated tag on HEAD.
func (r *Repository) Tag(name, message string, id Identity, when time.Time) error {
	head, err := r.repo.Head()
	if err != nil {
		return &SideEffectError{Step: StepTag, Err: err}
	}

	_, err = r.repo.CreateTag(name, head.Hash(), &git.CreateTagOptions{
		Tagger:  id.signature(when),
		Message: message,
	})
	if err != nil {
		return &SideEffectError{Step: StepTag, Err: err}
	}
	logDebug("[git] tagged %s as %s", head.Hash(), name)
	return nil
}

// Push sends branch and, when withTags is set, all tags to remote.
func (r *Repository) Push(ctx context.Context, remote, branch string, withTags bool) error {
	auth, err := r.authForRemote(remote)
	if err != nil {
		return &SideEffectError{Step: StepPush, Err: err}
	}

	ref := plumbing.NewBranchReferenceName(branch)
	specs := []config.RefSpec{config.RefSpec(ref.String() + ":" + ref.String())}
	if withTags {
		specs = append(specs, config.RefSpec("refs/tags/*:refs/tags/*"))
	}

	ctx, cancel := context.WithTimeout(ctx, DefaultNetworkTimeout)
	defer cancel()

	logDebug("[git] pushing %v to %s", specs, remote)
	err = r.repo.PushContext(ctx, &git.PushOptions{
		RemoteName: remote,
		RefSpecs:   specs,
		Auth:       auth,
	})
	if err != nil && !errors.Is(err, git.NoErrAlreadyUpToDate) {
		return &SideEffectError{Step: StepPush, Err: err}
	}
	return nil
}
