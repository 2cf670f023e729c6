package config

// OutputDisabled as output_file turns off changelog file writing.
const OutputDisabled = "false"

// GetDefaultConfigTemplate returns a fully commented config template
// that helps users understand all available options
func GetDefaultConfigTemplate() string {
	return `# tagsmith configuration
# Every key can also be set as an action input (INPUT_<KEY>) or a flag.

# Git settings
git_message: "chore(release): {version}"   # Release commit message, {version} becomes the tag
git_user_name: tagsmith                     # Author of release commits and tags
git_user_email: tagsmith@users.noreply.github.com
git_pull_method: ff-only                    # ff-only | none
git_branch: ""                              # Branch to pull and push (default: checked out branch)
git_push: true                              # Push the release commit and tag
git_remote: origin

# Versioning
tag_prefix: v                               # Tag is <prefix><version>
version_file: ""                            # X.Y.Z literal or files, e.g. package.json,deploy/chart.yaml
version_path: version                       # Dot-separated path inside version files
major_release_commit_message: "feat: major release"
include_commit_types: ""                    # Empty includes every known type
minor_commit_types: feat
patch_commit_types: fix
minor_bump_interval: 1                      # Minor commits per minor step
patch_bump_interval: 1                      # Patch commits per patch step

# Changelog
strip_commit_prefix: false                  # "* fix: x" renders as "* x"
output_file: CHANGELOG.md                   # false disables
release_count: 0                            # Entries kept in output_file, 0 keeps all
# feat_label: "### Features"                # <type>_label overrides a section header

# Run control
skip_on_empty: true
skip_commit: false
skip_tag: false
skip_version_file: false
dry_run: false
`
}

// GetDefaults returns the default configuration values
func GetDefaults() map[string]interface{} {
	return map[string]interface{}{
		"git_message":                  "chore(release): {version}",
		"git_user_name":                "tagsmith",
		"git_user_email":               "tagsmith@users.noreply.github.com",
		"git_pull_method":              "ff-only",
		"git_branch":                   "",
		"git_push":                     true,
		"git_remote":                   "origin",
		"tag_prefix":                   "v",
		"version_file":                 "",
		"version_path":                 "version",
		"strip_commit_prefix":          false,
		"major_release_commit_message": "feat: major release",
		"include_commit_types":         "",
		"minor_commit_types":           "feat",
		"patch_commit_types":           "fix",
		"minor_bump_interval":          1,
		"patch_bump_interval":          1,
		"output_file":                  "CHANGELOG.md",
		"release_count":                0,
		"skip_on_empty":                true,
		"skip_commit":                  false,
		"skip_tag":                     false,
		"skip_version_file":            false,
		"dry_run":                      false,
	}
}
