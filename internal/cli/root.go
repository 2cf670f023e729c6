// Package cli implements the tagsmith command line interface.
package cli

import (
	"context"
	"io"
	"os"
	"os/signal"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	clierrors "github.com/tagsmith/tagsmith/internal/errors"
	"github.com/tagsmith/tagsmith/internal/git"
)

// Command groups shown in help output.
const (
	GroupRelease = "release"
	GroupSetup   = "setup"
)

// rootOptions holds the persistent flags and the logger shared by subcommands.
type rootOptions struct {
	configFile string
	envFile    string
	dir        string
	debug      bool
	logger     *logrus.Logger
}

func newRootCmd() *cobra.Command {
	ro := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "tagsmith",
		Short: "Version and changelog releases from conventional commits",
		Long: `tagsmith reads the commits since the last release tag, decides the next
semantic version from their conventional-commit types, renders a changelog,
writes the new version into your project files and records the release as a
commit and an annotated tag.

Configuration is read from .tagsmith.yml, INPUT_* environment variables (CI
action inputs), an optional --env-file and command flags, in increasing
order of precedence.`,
		Example: `  # Preview the next version
  tagsmith next

  # Preview the changelog
  tagsmith changelog

  # Release without touching files or git
  tagsmith release --dry-run

  # Release, bumping package.json
  tagsmith release --version-file package.json`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			ro.logger = newLogger(cmd.ErrOrStderr(), ro.debug)
			if ro.debug {
				git.SetDebugLogger(ro.logger.Debugf)
			}
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&ro.configFile, "config", "", "config file (default: .tagsmith.yml in the repository directory)")
	pf.StringVar(&ro.envFile, "env-file", "", "dotenv file with INPUT_* variables")
	pf.StringVarP(&ro.dir, "dir", "C", "", "repository directory (default: current directory)")
	pf.BoolVar(&ro.debug, "debug", false, "enable debug logging")

	cmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		e := clierrors.NewArgumentError(err.Error(), "Run '"+c.CommandPath()+" --help' for the available flags")
		e.Usage = c.UseLine()
		return e
	})

	cmd.AddGroup(
		&cobra.Group{ID: GroupRelease, Title: "Release Commands:"},
		&cobra.Group{ID: GroupSetup, Title: "Setup Commands:"},
	)
	cmd.AddCommand(
		newReleaseCmd(ro),
		newNextCmd(ro),
		newChangelogCmd(ro),
		newInitCmd(ro),
		newVersionCmd(),
	)
	return cmd
}

// newLogger creates the run logger writing to w.
func newLogger(w io.Writer, debug bool) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(w)
	logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	if debug {
		logger.SetLevel(logrus.DebugLevel)
	} else {
		logger.SetLevel(logrus.InfoLevel)
	}
	return logger
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cmd := newRootCmd()
	err := cmd.ExecuteContext(ctx)
	return reportError(cmd.ErrOrStderr(), err)
}

// reportError prints err with remediation hints and returns its exit code.
func reportError(w io.Writer, err error) int {
	if err == nil {
		return ExitSuccess
	}
	cliErr := classify(err)
	clierrors.FprintError(w, cliErr)
	return exitCode(cliErr)
}
