package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gitpulsehq/gitpulse/config"
)

// NewCmdConfig creates the config command with subcommands.
func NewCmdConfig() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or manage configuration",
		Long: `Show or manage configuration.

When run without arguments, shows the current merged configuration.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigShow()
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show the config file location",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := config.ConfigPath()
			exists := "missing"
			if _, err := os.Stat(path); err == nil {
				exists = "exists"
			}
			fmt.Printf("%s (%s)\n", path, exists)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "defaults",
		Short: "Show all default values",
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := config.Default().ToYAML()
			if err != nil {
				return err
			}
			fmt.Print(out)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Write the defaults as a starter config file",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := config.ConfigPath()
			if _, err := os.Stat(path); err == nil {
				return fmt.Errorf("config file already exists at %s", path)
			}
			if err := config.Default().Save(); err != nil {
				return err
			}
			fmt.Printf("Created %s\n", path)
			return nil
		},
	})

	return cmd
}

func runConfigShow() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	out, err := cfg.ToYAML()
	if err != nil {
		return err
	}
	fmt.Print(out)
	return nil
}
