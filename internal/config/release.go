package config

import (
	"errors"

	"github.com/tagsmith/tagsmith/internal/git"
	"github.com/tagsmith/tagsmith/internal/policy"
	"github.com/tagsmith/tagsmith/internal/release"
)

// IsValidationError returns true if err is or wraps a ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// Policy builds the release policy described by the configuration. An empty
// include list includes every canonical type.
func (c *Configuration) Policy() (policy.Policy, error) {
	p := policy.Default()
	p.MajorReleaseMarker = c.MajorReleaseCommitMessage
	if included := policy.ParseList(c.IncludeCommitTypes); len(included) > 0 {
		p.IncludedTypes = included
	}
	p.MinorTypes = policy.ParseList(c.MinorCommitTypes)
	p.PatchTypes = policy.ParseList(c.PatchCommitTypes)
	p.MinorBumpInterval = c.MinorBumpInterval
	p.PatchBumpInterval = c.PatchBumpInterval
	p.StripTypePrefix = c.StripCommitPrefix
	for t, label := range c.Labels {
		p.Labels[t] = label
	}

	if err := p.Validate(); err != nil {
		return policy.Policy{}, err
	}
	return p, nil
}

// ReleaseOptions builds the options for a release run in dir.
func (c *Configuration) ReleaseOptions(dir string) (release.Options, error) {
	p, err := c.Policy()
	if err != nil {
		return release.Options{}, err
	}

	outputFile := c.OutputFile
	if outputFile == OutputDisabled {
		outputFile = ""
	}
	mode := release.Apply
	if c.DryRun {
		mode = release.DryRun
	}

	return release.Options{
		Dir:             dir,
		Policy:          p,
		Mode:            mode,
		TagPrefix:       c.TagPrefix,
		VersionSource:   c.VersionFile,
		VersionPath:     c.VersionPath,
		SkipVersionFile: c.SkipVersionFile,
		OutputFile:      outputFile,
		ReleaseCount:    c.ReleaseCount,
		SkipOnEmpty:     c.SkipOnEmpty,
		CommitMessage:   c.GitMessage,
		Identity:        git.Identity{Name: c.GitUserName, Email: c.GitUserEmail},
		SkipCommit:      c.SkipCommit,
		SkipTag:         c.SkipTag,
		PullMethod:      c.GitPullMethod,
		Branch:          c.GitBranch,
		Remote:          c.GitRemote,
		Push:            c.GitPush,
		Token:           c.GitHubToken,
	}, nil
}
