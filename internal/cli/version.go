package cli

import (
	"fmt"
	"runtime"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/tagsmith/tagsmith/internal/build"
)

func newVersionCmd() *cobra.Command {
	var plain bool

	cmd := &cobra.Command{
		Use:     "version",
		Aliases: []string{"v"},
		Short:   "Display version information (v)",
		Long:    "Display version, commit, build date, and Go version information for tagsmith",
		Example: `  # Show version info
  tagsmith version

  # Plain output (for scripts)
  tagsmith version --plain`,
		Args:    noArgs,
		GroupID: GroupSetup,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			if plain {
				fmt.Fprintln(out, build.Version)
				return
			}

			bold := color.New(color.Bold).SprintFunc()
			dim := color.New(color.Faint).SprintFunc()
			fmt.Fprintln(out, bold(build.Summary()))
			fmt.Fprintln(out, dim(fmt.Sprintf("go: %s, platform: %s/%s", runtime.Version(), runtime.GOOS, runtime.GOARCH)))
		},
	}

	cmd.Flags().BoolVar(&plain, "plain", false, "Plain output without formatting")
	return cmd
}
