package cli

import (
	"os"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/matzehuels/gradslides/pkg/config"
	"github.com/matzehuels/gradslides/pkg/errors"
)

// configCommand creates the config command with init and show subcommands.
func (c *CLI) configCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Create or print the configuration file",
	}
	cmd.AddCommand(c.configInitCommand())
	cmd.AddCommand(c.configShowCommand())
	return cmd
}

func (c *CLI) configInitCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a configuration file with default values",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(c.ConfigPath); err == nil && !force {
				return errors.New(errors.ErrCodeInvalidInput, "%s already exists (use --force to overwrite)", c.ConfigPath)
			}
			if err := config.Save(c.ConfigPath, config.Default()); err != nil {
				return err
			}
			printSuccess("Created configuration")
			printFile(c.ConfigPath)
			printNextStep("Check the layout", appName+" --test")
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	return cmd
}

func (c *CLI) configShowCommand() *cobra.Command {
	var resolved bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Long: `Print the effective configuration.

Missing keys are shown with their default values. --layout prints the
complete layout after the preset and all overrides are applied, a good
starting point for a custom [[layout.fields]] list.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if !resolved {
				data, err := config.Encode(*cfg)
				if err != nil {
					return err
				}
				_, err = out.Write(data)
				return err
			}
			l, err := cfg.Layout.Resolve()
			if err != nil {
				return err
			}
			return toml.NewEncoder(out).Encode(map[string]any{"layout": l})
		},
	}

	cmd.Flags().BoolVar(&resolved, "layout", false, "print the resolved layout")
	return cmd
}
