package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/tagsmith/tagsmith/internal/config"
	clierrors "github.com/tagsmith/tagsmith/internal/errors"
	"github.com/tagsmith/tagsmith/internal/output"
)

func newInitCmd(ro *rootOptions) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a commented .tagsmith.yml",
		Long: `Write a .tagsmith.yml listing every option with its default value into the
repository directory.`,
		Example: `  tagsmith init
  tagsmith init --force`,
		Args:    noArgs,
		GroupID: GroupSetup,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := filepath.Join(ro.dir, config.ProjectConfigFile)
			if _, err := os.Stat(path); err == nil && !force {
				return clierrors.NewArgumentError(
					fmt.Sprintf("%s already exists", path),
					"Use --force to overwrite it",
				)
			}
			if err := os.WriteFile(path, []byte(config.GetDefaultConfigTemplate()), 0o644); err != nil {
				return fmt.Errorf("writing %s: %w", path, err)
			}
			output.PrintSuccess(cmd.OutOrStdout(), "Created "+path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config file")
	return cmd
}
