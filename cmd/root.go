package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/icmd-sh/icmd/internal/config"
)

// cfg holds the loaded configuration, populated in PersistentPreRunE.
var cfg config.Config

// silentCommands are invoked from shell hooks. They must never print
// errors or exit non-zero, so a broken config file falls back to defaults
// instead of failing the prompt.
var silentCommands = map[string]bool{
	"session": true,
	"fire":    true,
	"capture": true,
}

var rootCmd = &cobra.Command{
	Use:   "icmd",
	Short: "Capture, search and browse your interactive shell history",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			if silentCommands[cmd.Name()] {
				cfg = config.Defaults()
				return nil
			}
			return err
		}
		cfg = c
		return nil
	},
}

// Execute runs the root command. Exits with code 1 on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// GetConfig returns the loaded configuration for use by subcommands.
func GetConfig() config.Config {
	return cfg
}
