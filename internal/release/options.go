package release

import (
	"strings"

	"github.com/tagsmith/tagsmith/internal/git"
	"github.com/tagsmith/tagsmith/internal/policy"
)

// Mode selects whether a run mutates anything.
type Mode int

const (
	// Apply performs every configured write and git side effect.
	Apply Mode = iota
	// DryRun computes and reports outputs without touching files or git.
	DryRun
)

func (m Mode) String() string {
	if m == DryRun {
		return "dry-run"
	}
	return "apply"
}

// Pull methods accepted in Options.PullMethod.
const (
	PullFastForward = "ff-only"
	PullNone        = "none"
)

// DefaultCommitMessage is used when Options.CommitMessage is empty.
const DefaultCommitMessage = "chore(release): {version}"

// Options configures a single release run.
type Options struct {
	// Dir is any directory inside the repository. Empty means the working directory.
	Dir string
	// Policy decides which commits count and how the version moves.
	Policy policy.Policy
	// Mode is the execution mode.
	Mode Mode

	// TagPrefix is prepended to the version to form the tag, e.g. "v".
	TagPrefix string
	// VersionSource is a literal X.Y.Z version or a comma-separated list of
	// files relative to the repository root. When empty the latest release
	// tag supplies the current version.
	VersionSource string
	// VersionPath is the dot-separated property path inside version files.
	VersionPath string
	SkipVersionFile bool

	// OutputFile receives the rendered changelog. Empty disables it.
	OutputFile string
	// ReleaseCount limits the entries kept in OutputFile; 0 keeps all.
	ReleaseCount int
	// SkipOnEmpty skips the run when no included commit was found.
	SkipOnEmpty bool

	// CommitMessage may contain {version}, replaced by the new tag.
	CommitMessage string
	Identity      git.Identity
	SkipCommit    bool
	SkipTag       bool

	PullMethod string
	// Branch to pull and push. Empty means the checked out branch.
	Branch string
	Remote string
	Push   bool
	// Token authenticates HTTPS remotes.
	Token string
}

func (o Options) commitMessage(tag string) string {
	msg := o.CommitMessage
	if msg == "" {
		msg = DefaultCommitMessage
	}
	return strings.ReplaceAll(msg, "{version}", tag)
}

func (o Options) remote() string {
	if o.Remote == "" {
		return "origin"
	}
	return o.Remote
}
