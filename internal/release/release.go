// Package release drives one release: it reads the commits since the last
// release tag, classifies them, computes the next version, renders the
// changelog and then, unless running dry, persists the version and records
// the release in git.
//
// Steps run in a fixed order: pull, read history, calculate, write version
// files, write changelog, stage, commit, tag, push. Configuration problems
// are reported before the first mutation. A failure after that point stops
// the run; completed steps are not rolled back.
package release

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/tagsmith/tagsmith/internal/changelog"
	"github.com/tagsmith/tagsmith/internal/commits"
	"github.com/tagsmith/tagsmith/internal/git"
	"github.com/tagsmith/tagsmith/internal/policy"
	"github.com/tagsmith/tagsmith/internal/semver"
	"github.com/tagsmith/tagsmith/internal/versionstore"
)

// Result holds the outputs of a run.
type Result struct {
	// Changelog is the cleaned rendered changelog.
	Changelog string
	// Version is the next version without prefix.
	Version string
	// Tag is the next version with the tag prefix.
	Tag string
	// Skipped is set when nothing is released; SkipReason says why.
	Skipped    bool
	SkipReason SkipReason

	Bump       semver.Bump
	Advisories []commits.Advisory
	// Changes lists the version files considered for update.
	Changes []versionstore.Change
	// Mode is the execution mode the run used.
	Mode Mode
}

// SkipReason explains a skipped run.
type SkipReason string

const (
	// SkipEmptyChangelog is used when SkipOnEmpty is set and no included commit was found.
	SkipEmptyChangelog SkipReason = "empty changelog"
	// SkipVersionUnchanged is used when the commits stay below every bump interval, so
	// the next version equals the current one.
	SkipVersionUnchanged SkipReason = "version unchanged"
)

// Runner executes releases.
type Runner struct {
	log logrus.FieldLogger
	now func() time.Time
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithClock sets the time source for commit, tag and changelog dates.
func WithClock(now func() time.Time) RunnerOption {
	return func(r *Runner) {
		r.now = now
	}
}

// NewRunner creates a Runner logging to log.
func NewRunner(log logrus.FieldLogger, opts ...RunnerOption) *Runner {
	if log == nil {
		l := logrus.New()
		l.SetLevel(logrus.PanicLevel)
		log = l
	}
	r := &Runner{log: log, now: time.Now}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Plan computes the outputs of a release without side effects. It never
// pulls, so the history is the one currently checked out.
func (r *Runner) Plan(opts Options) (*Result, error) {
	repo, err := r.prepare(opts)
	if err != nil {
		return nil, err
	}
	return r.plan(repo, opts)
}

// Run performs a full release according to opts.Mode.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	repo, err := r.prepare(opts)
	if err != nil {
		return nil, err
	}
	log := r.log.WithField("mode", opts.Mode.String())

	branch := opts.Branch
	if branch == "" {
		if branch, err = repo.CurrentBranch(); err != nil {
			return nil, err
		}
	}

	if opts.Mode == Apply && opts.PullMethod != PullNone && branch != "" {
		log.WithFields(logrus.Fields{"remote": opts.remote(), "branch": branch}).Info("pulling latest changes")
		if err := repo.Pull(ctx, opts.remote(), branch); err != nil {
			return nil, err
		}
	}

	res, err := r.plan(repo, opts)
	if err != nil {
		return nil, err
	}
	log = log.WithField("tag", res.Tag)

	if res.Skipped {
		log.WithField("reason", string(res.SkipReason)).Info("nothing to release, skipping")
		return res, nil
	}
	if opts.Mode == DryRun {
		log.WithField("version", res.Version).Info("dry run, nothing written")
		return res, nil
	}

	if err := r.persist(repo, opts, res); err != nil {
		return nil, err
	}
	if err := r.record(ctx, repo, opts, res, branch); err != nil {
		return nil, err
	}
	log.Info("release complete")
	return res, nil
}

// prepare validates opts and opens the repository.
func (r *Runner) prepare(opts Options) (*git.Repository, error) {
	if err := opts.Policy.Validate(); err != nil {
		return nil, err
	}
	if opts.ReleaseCount < 0 {
		return nil, &policy.ConfigError{Key: "release_count", Message: "must not be negative"}
	}
	switch opts.PullMethod {
	case "", PullFastForward, PullNone:
	default:
		return nil, &policy.ConfigError{Key: "git_pull_method", Message: fmt.Sprintf("unsupported value %q", opts.PullMethod)}
	}
	if err := versionstore.ParseLocation(opts.VersionSource, opts.VersionPath).Validate(); err != nil {
		return nil, err
	}

	repo, err := git.Open(opts.Dir)
	if err != nil {
		return nil, err
	}
	return repo.WithToken(opts.Token), nil
}

func (r *Runner) plan(repo *git.Repository, opts Options) (*Result, error) {
	text, err := repo.ChangelogText(opts.TagPrefix)
	if err != nil {
		return nil, err
	}

	c := commits.Classify(text, opts.Policy)
	for _, adv := range c.Advisories() {
		r.log.WithFields(logrus.Fields{
			"type":  adv.Type,
			"count": adv.Count,
			"line":  adv.Example,
		}).Warn("commits of this type are not included in the changelog")
	}

	current, err := r.currentVersion(repo, opts)
	if err != nil {
		return nil, err
	}

	bump, err := semver.Calculate(current, c, opts.Policy)
	if err != nil {
		return nil, err
	}
	r.log.WithFields(logrus.Fields{
		"current": current.String(),
		"next":    bump.Next.String(),
		"major":   bump.Major,
		"minor":   bump.MinorCount,
		"patch":   bump.PatchCount,
	}).Debug("version calculated")

	res := &Result{
		Changelog:  changelog.Clean(changelog.Render(c, opts.Policy)),
		Version:    bump.Next.String(),
		Tag:        bump.Next.Tag(opts.TagPrefix),
		Bump:       bump,
		Advisories: c.Advisories(),
		Mode:       opts.Mode,
	}
	switch {
	case opts.SkipOnEmpty && res.Changelog == "":
		res.Skipped, res.SkipReason = true, SkipEmptyChangelog
	case !bump.Changed():
		res.Skipped, res.SkipReason = true, SkipVersionUnchanged
	}
	return res, nil
}

func (r *Runner) currentVersion(repo *git.Repository, opts Options) (semver.Version, error) {
	loc := versionstore.ParseLocation(opts.VersionSource, opts.VersionPath)
	if loc.IsLiteral() || len(loc.Files) > 0 {
		return versionstore.New(repo.Root()).Current(loc)
	}

	latest, err := repo.LatestReleaseTag(opts.TagPrefix)
	if err != nil {
		return semver.Version{}, err
	}
	if latest == nil {
		return semver.Version{}, nil
	}
	return latest.Version, nil
}

// persist writes the version files and the changelog file.
func (r *Runner) persist(repo *git.Repository, opts Options, res *Result) error {
	loc := versionstore.ParseLocation(opts.VersionSource, opts.VersionPath)
	if !opts.SkipVersionFile && len(loc.Files) > 0 {
		changes, err := versionstore.New(repo.Root()).Update(loc, res.Bump.Next)
		if err != nil {
			return err
		}
		res.Changes = changes
		for _, ch := range changes {
			r.log.WithFields(logrus.Fields{"file": ch.File, "changed": ch.Changed}).Info("version file updated")
		}
	}

	if opts.OutputFile != "" {
		path := opts.OutputFile
		if !filepath.IsAbs(path) {
			path = filepath.Join(repo.Root(), path)
		}
		entry := changelog.Entry(res.Tag, r.now(), res.Changelog)
		if err := changelog.Prepend(path, entry, opts.ReleaseCount); err != nil {
			return err
		}
		r.log.WithField("file", opts.OutputFile).Info("changelog written")
	}
	return nil
}

// record stages, commits, tags and pushes the release.
func (r *Runner) record(ctx context.Context, repo *git.Repository, opts Options, res *Result, branch string) error {
	when := r.now()

	if !opts.SkipCommit {
		if err := repo.AddAll(); err != nil {
			return err
		}
		hash, err := repo.Commit(opts.commitMessage(res.Tag), opts.Identity, when)
		if err != nil {
			return err
		}
		r.log.WithField("commit", hash.String()).Info("release commit created")
	}

	if !opts.SkipTag {
		msg := res.Changelog
		if msg == "" {
			msg = res.Tag
		}
		if err := repo.Tag(res.Tag, msg, opts.Identity, when); err != nil {
			return err
		}
		r.log.Info("release tag created")
	}

	if opts.Push {
		if branch == "" {
			return &git.SideEffectError{Step: git.StepPush, Err: fmt.Errorf("HEAD is detached; set git_branch")}
		}
		if err := repo.Push(ctx, opts.remote(), branch, !opts.SkipTag); err != nil {
			return err
		}
		r.log.WithField("remote", opts.remote()).Info("release pushed")
	}
	return nil
}
