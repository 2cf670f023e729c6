package cli

import (
	clierrors "github.com/tagsmith/tagsmith/internal/errors"
)

// Exit codes for the tagsmith CLI
// These codes support programmatic composition and CI/CD integration
const (
	// ExitSuccess indicates a completed or skipped release
	ExitSuccess = 0

	// ExitFailure indicates a runtime, version file or git failure
	ExitFailure = 1

	// ExitInvalidArguments indicates invalid arguments or configuration
	ExitInvalidArguments = 3
)

// exitCode maps a classified error to its exit code.
func exitCode(err *clierrors.CLIError) int {
	switch err.Category {
	case clierrors.Argument, clierrors.Configuration:
		return ExitInvalidArguments
	default:
		return ExitFailure
	}
}
