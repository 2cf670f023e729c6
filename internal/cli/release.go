package cli

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/tagsmith/tagsmith/internal/output"
	"github.com/tagsmith/tagsmith/internal/release"
)

func newReleaseCmd(ro *rootOptions) *cobra.Command {
	var githubOutput string

	cmd := &cobra.Command{
		Use:   "release",
		Short: "Compute, write and record the next release",
		Long: `Compute the next version from the commits since the last release tag,
update the configured version files and changelog file, then commit, tag and
push the release.

With --dry-run nothing is written and no git command runs; the computed
outputs are still printed and exported.

Outputs (changelog, version, tag, skipped) are appended to the file named by
--github-output, which defaults to $GITHUB_OUTPUT.`,
		Example: `  # Release using .tagsmith.yml
  tagsmith release

  # Bump two files without pushing
  tagsmith release --version-file package.json,chart/Chart.yaml --git-push=false

  # See what would happen
  tagsmith release --dry-run`,
		Args:    noArgs,
		GroupID: GroupRelease,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRelease(cmd, ro, githubOutput)
		},
	}

	addConfigFlags(cmd, policyFlags)
	addConfigFlags(cmd, releaseFlags)
	cmd.Flags().StringVar(&githubOutput, "github-output", os.Getenv("GITHUB_OUTPUT"), "file receiving step outputs")
	return cmd
}

func runRelease(cmd *cobra.Command, ro *rootOptions, githubOutput string) error {
	cfg, err := loadConfig(cmd, ro, policyFlags, releaseFlags)
	if err != nil {
		return err
	}
	opts, err := cfg.ReleaseOptions(ro.dir)
	if err != nil {
		return err
	}

	res, err := release.NewRunner(ro.logger).Run(cmd.Context(), opts)
	if err != nil {
		return err
	}

	printResult(cmd.OutOrStdout(), res)

	if githubOutput != "" {
		if err := output.AppendStepOutputs(githubOutput, stepOutputs(res)); err != nil {
			return err
		}
	}
	return nil
}

// stepOutputs lists the values exported to CI steps.
func stepOutputs(res *release.Result) []output.Field {
	return []output.Field{
		{Name: "changelog", Value: res.Changelog},
		{Name: "clean_changelog", Value: res.Changelog},
		{Name: "version", Value: res.Version},
		{Name: "tag", Value: res.Tag},
		{Name: "skipped", Value: strconv.FormatBool(res.Skipped)},
	}
}

func printResult(out io.Writer, res *release.Result) {
	if res.Skipped {
		if res.SkipReason == release.SkipVersionUnchanged {
			output.PrintNotice(out, fmt.Sprintf("Version stays at %s, skipped", res.Version))
			return
		}
		output.PrintNotice(out, "No releasable commits since the last release, skipped")
		return
	}

	output.PrintField(out, "current", res.Bump.Current.String())
	output.PrintField(out, "version", res.Version)
	output.PrintField(out, "tag", res.Tag)
	for _, ch := range res.Changes {
		state := "unchanged"
		if ch.Changed {
			state = "updated"
		}
		output.PrintField(out, "file", fmt.Sprintf("%s (%s)", ch.File, state))
	}

	if res.Mode == release.DryRun {
		output.PrintNotice(out, "Dry run, nothing was written")
		return
	}
	output.PrintSuccess(out, "Released "+res.Tag)
}
