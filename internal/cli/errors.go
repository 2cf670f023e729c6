package cli

import (
	"errors"

	"github.com/tagsmith/tagsmith/internal/config"
	clierrors "github.com/tagsmith/tagsmith/internal/errors"
	"github.com/tagsmith/tagsmith/internal/git"
	"github.com/tagsmith/tagsmith/internal/policy"
	"github.com/tagsmith/tagsmith/internal/versionstore"
)

// classify maps domain errors onto CLI error categories. Unresolvable version
// paths and unsupported version files are configuration errors; a type
// mismatch inside a version file is a persistence error.
func classify(err error) *clierrors.CLIError {
	if cliErr := clierrors.AsCLIError(err); cliErr != nil {
		return cliErr
	}

	var (
		validationErr *config.ValidationError
		policyErr     *policy.ConfigError
		pathErr       *versionstore.PathError
		sideEffectErr *git.SideEffectError
	)
	switch {
	case errors.As(err, &validationErr):
		if validationErr.Field != "" {
			return clierrors.InvalidInput(validationErr.Field, validationErr.Message)
		}
		return clierrors.Wrap(err, clierrors.Configuration,
			"Check the file named above",
			"Keys use snake_case, e.g. minor_bump_interval",
		)
	case errors.As(err, &policyErr):
		return clierrors.InvalidInput(policyErr.Key, policyErr.Message)
	case versionstore.IsUnsupportedFormat(err):
		e := clierrors.VersionFileError(err)
		e.Category = clierrors.Configuration
		return e
	case errors.As(err, &pathErr):
		e := clierrors.VersionFileError(err)
		if pathErr.Missing || len(pathErr.Path) == 0 {
			e.Category = clierrors.Configuration
		}
		return e
	case errors.As(err, &sideEffectErr):
		return clierrors.GitStepFailed(err)
	case git.IsNotRepository(err):
		return clierrors.NotARepository(err)
	default:
		return clierrors.Wrap(err, clierrors.Runtime)
	}
}
