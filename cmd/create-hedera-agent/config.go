// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"

	"create-hedera-agent/internal/config"

	"github.com/spf13/cobra"
)

// newConfigCommand creates the `config` command tree.
// Subcommands that read configuration use the App's ConfigProvider.
func newConfigCommand(app *App, flags *rootFlags) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage create-hedera-agent configuration",
		Long: `Manage create-hedera-agent configuration.

Configuration is stored in:
  - Linux: ~/.config/create-hedera-agent/config.cue
  - macOS: ~/Library/Application Support/create-hedera-agent/config.cue
  - Windows: %APPDATA%\create-hedera-agent\config.cue

Every value can be overridden with HEDERA_AGENT_* environment variables.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration as CUE",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := config.LoadOptions{ConfigFilePath: flags.cfgFile}
			cfg, err := app.Config.Load(cmd.Context(), opts)
			if err != nil {
				return &ExitError{Code: 1, Err: err}
			}

			source, err := config.Locate(opts)
			if err != nil || source == "" {
				source = "defaults"
			}
			fmt.Fprintln(app.stdout, "// source: "+source)
			if cfg.Provisioning.OperatorKey != "" {
				fmt.Fprintln(app.stdout, "// operator key: set (hidden)")
			}
			fmt.Fprint(app.stdout, config.GenerateCUE(cfg))
			return nil
		},
	})

	var (
		force bool
		dir   string
	)
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Create a default configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.WriteDefault(dir, force)
			if errors.Is(err, config.ErrConfigExists) {
				fmt.Fprintln(app.stdout, SubtitleStyle.Render("Configuration already exists at "+path+" (use --force to overwrite)"))
				return nil
			}
			if err != nil {
				return &ExitError{Code: 1, Err: err}
			}
			fmt.Fprintln(app.stdout, SuccessStyle.Render("Wrote "+path))
			return nil
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing configuration file")
	initCmd.Flags().StringVar(&dir, "dir", "", "directory to write config.cue to (default is the platform config directory)")
	cfgCmd.AddCommand(initCmd)

	return cfgCmd
}
