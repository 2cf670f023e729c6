package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/tagsmith/tagsmith/internal/config"
)

// configFlag is a command flag that overrides a configuration key when set.
type configFlag struct {
	name    string
	usage   string
	boolean bool
}

// key returns the configuration key bound to the flag.
func (f configFlag) key() string {
	return strings.ReplaceAll(f.name, "-", "_")
}

// policyFlags select commits and shape the version; every command that
// computes a version accepts them.
var policyFlags = []configFlag{
	{name: "tag-prefix", usage: "prefix of release tags"},
	{name: "version-file", usage: "X.Y.Z literal or comma-separated version files"},
	{name: "version-path", usage: "dot-separated version property path inside version files"},
	{name: "include-commit-types", usage: "comma-separated commit types to include"},
	{name: "minor-commit-types", usage: "comma-separated commit types that bump minor"},
	{name: "patch-commit-types", usage: "comma-separated commit types that bump patch"},
	{name: "minor-bump-interval", usage: "minor commits per minor step"},
	{name: "patch-bump-interval", usage: "patch commits per patch step"},
	{name: "major-release-commit-message", usage: "commit message that forces a major release"},
	{name: "strip-commit-prefix", usage: "drop the type prefix from changelog lines", boolean: true},
}

// releaseFlags control what a release writes and records.
var releaseFlags = []configFlag{
	{name: "dry-run", usage: "compute outputs without writing files or touching git", boolean: true},
	{name: "output-file", usage: "changelog file to prepend to, false disables"},
	{name: "release-count", usage: "release entries kept in the changelog file, 0 keeps all"},
	{name: "skip-on-empty", usage: "skip the release when no included commit exists", boolean: true},
	{name: "skip-version-file", usage: "do not update version files", boolean: true},
	{name: "skip-commit", usage: "do not create the release commit", boolean: true},
	{name: "skip-tag", usage: "do not create the release tag", boolean: true},
	{name: "git-push", usage: "push the release commit and tag", boolean: true},
	{name: "git-pull-method", usage: "ff-only or none"},
	{name: "git-branch", usage: "branch to pull and push"},
	{name: "git-remote", usage: "remote to pull from and push to"},
	{name: "git-message", usage: "release commit message, {version} becomes the tag"},
}

func addConfigFlags(cmd *cobra.Command, flags []configFlag) {
	for _, f := range flags {
		if f.boolean {
			cmd.Flags().Bool(f.name, false, f.usage)
		} else {
			cmd.Flags().String(f.name, "", f.usage)
		}
	}
}

// configOverrides returns the keys of the flags the user set explicitly.
func configOverrides(cmd *cobra.Command, flags []configFlag) map[string]any {
	overrides := make(map[string]any)
	for _, f := range flags {
		fl := cmd.Flags().Lookup(f.name)
		if fl != nil && fl.Changed {
			overrides[f.key()] = fl.Value.String()
		}
	}
	return overrides
}

// loadConfig loads configuration for cmd, applying the flags the user set.
func loadConfig(cmd *cobra.Command, ro *rootOptions, flags ...[]configFlag) (*config.Configuration, error) {
	overrides := make(map[string]any)
	for _, set := range flags {
		for k, v := range configOverrides(cmd, set) {
			overrides[k] = v
		}
	}

	return config.LoadWithOptions(config.LoadOptions{
		Dir:        ro.dir,
		ConfigPath: ro.configFile,
		EnvFile:    ro.envFile,
		Overrides:  overrides,
	})
}
