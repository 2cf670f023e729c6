package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	clierrors "github.com/tagsmith/tagsmith/internal/errors"
	"github.com/tagsmith/tagsmith/internal/output"
	"github.com/tagsmith/tagsmith/internal/release"
)

// noArgs rejects positional arguments with an argument error.
func noArgs(cmd *cobra.Command, args []string) error {
	if len(args) > 0 {
		e := clierrors.NewArgumentError(fmt.Sprintf("unexpected argument %q", args[0]))
		e.Usage = cmd.UseLine()
		return e
	}
	return nil
}

// plan computes the next release for the repository without side effects.
func plan(cmd *cobra.Command, ro *rootOptions) (*release.Result, error) {
	cfg, err := loadConfig(cmd, ro, policyFlags)
	if err != nil {
		return nil, err
	}
	opts, err := cfg.ReleaseOptions(ro.dir)
	if err != nil {
		return nil, err
	}
	return release.NewRunner(ro.logger).Plan(opts)
}

func newNextCmd(ro *rootOptions) *cobra.Command {
	var printTag bool

	cmd := &cobra.Command{
		Use:   "next",
		Short: "Print the next version",
		Long: `Print the version the next release would get, computed from the commits
since the last release tag. Nothing is written.`,
		Example: `  tagsmith next
  tagsmith next --tag
  tagsmith next --minor-bump-interval 5`,
		Args:    noArgs,
		GroupID: GroupRelease,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := plan(cmd, ro)
			if err != nil {
				return err
			}
			if printTag {
				fmt.Fprintln(cmd.OutOrStdout(), res.Tag)
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), res.Version)
			}
			return nil
		},
	}

	addConfigFlags(cmd, policyFlags)
	cmd.Flags().BoolVar(&printTag, "tag", false, "print the tag instead of the bare version")
	return cmd
}

func newChangelogCmd(ro *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "changelog",
		Short: "Print the changelog of the next release",
		Long: `Render the changelog for the commits since the last release tag, grouped
by commit type. Nothing is written.`,
		Example: `  tagsmith changelog
  tagsmith changelog --include-commit-types feat,fix --strip-commit-prefix`,
		Args:    noArgs,
		GroupID: GroupRelease,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := plan(cmd, ro)
			if err != nil {
				return err
			}
			if res.Changelog == "" {
				output.PrintNotice(cmd.ErrOrStderr(), "No releasable commits since the last release")
				return nil
			}
			output.PrintRule(cmd.OutOrStdout(), res.Tag)
			fmt.Fprintln(cmd.OutOrStdout(), res.Changelog)
			return nil
		},
	}

	addConfigFlags(cmd, policyFlags)
	return cmd
}
