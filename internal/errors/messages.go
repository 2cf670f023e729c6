package errors

import (
	"fmt"
	"strings"
)

// Common error messages for the tagsmith CLI.

// ConfigFileNotFound creates an error for an explicitly requested config file that is missing.
func ConfigFileNotFound(path string) *CLIError {
	return NewConfigError(
		fmt.Sprintf("config file not found: %s", path),
		"Check the path passed to --config",
		"Omit --config to use .tagsmith.yml from the repository root",
	)
}

// ConfigParseError creates an error for a config file that cannot be parsed.
func ConfigParseError(path string, err error) *CLIError {
	return WrapWithMessage(err, Configuration,
		fmt.Sprintf("failed to parse %s", path),
		"Check the YAML syntax of the file",
		"Keys use snake_case, e.g. minor_bump_interval",
	)
}

// InvalidInput creates an error for a single invalid configuration key.
func InvalidInput(key, message string) *CLIError {
	return NewConfigError(
		fmt.Sprintf("invalid %s: %s", key, message),
		fmt.Sprintf("Set %s in .tagsmith.yml, the INPUT_%s environment variable or the matching flag", key, strings.ToUpper(key)),
	)
}

// NotARepository creates an error for a working directory outside any git repository.
func NotARepository(err error) *CLIError {
	return WrapWithMessage(err, Runtime,
		"not a git repository",
		"Run tagsmith from inside the repository to release",
		"In CI, make sure the checkout step ran before tagsmith",
	)
}

// VersionFileError creates an error for a version file that cannot be read or updated.
func VersionFileError(err error) *CLIError {
	return Wrap(err, Persistence,
		"Check version_file and version_path",
		"Supported formats: .json, .yaml, .yml, .toml, .gradle, .kts, .py",
	)
}

// GitStepFailed creates an error for a failed git side effect.
func GitStepFailed(err error) *CLIError {
	return Wrap(err, SideEffect,
		"Earlier steps of this run may already have been applied; inspect the working tree and tags",
		"For pushes, check that git_remote is reachable and the token has write access",
	)
}
