package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/icmd-sh/icmd/internal/config"
)

var configReset bool

var configCmd = &cobra.Command{
	Use:   "config [key] [value]",
	Short: "Show or change configuration",
	Long: `With no arguments, print the current configuration. With a key, print
that value. With a key and value, set it.

Keys:
  max_results         search result limit (1-` + strconv.Itoa(config.MaxResultsLimit) + `)
  tui_max_results     browser result limit (1-` + strconv.Itoa(config.TUIMaxResultsLimit) + `)
  shell_history_path  history file used by 'icmd import'`,
	Args: cobra.MaximumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if configReset {
			if err := config.Save(config.Defaults()); err != nil {
				return err
			}
			cmd.Println("configuration reset to defaults")
			return nil
		}

		switch len(args) {
		case 0:
			cmd.Printf("  max_results:         %d\n", cfg.MaxResults)
			cmd.Printf("  tui_max_results:     %d\n", cfg.TUIMaxResults)
			cmd.Printf("  shell_history_path:  %s\n", orUnset(cfg.ShellHistoryPath))
			return nil
		case 1:
			value, err := configValue(cfg, args[0])
			if err != nil {
				return err
			}
			cmd.Println(value)
			return nil
		default:
			if err := setConfigValue(&cfg, args[0], args[1]); err != nil {
				return err
			}
			return config.Save(cfg)
		}
	},
}

func orUnset(s string) string {
	if s == "" {
		return "(auto-detected)"
	}
	return s
}

func configValue(c config.Config, key string) (string, error) {
	switch key {
	case "max_results":
		return strconv.Itoa(c.MaxResults), nil
	case "tui_max_results":
		return strconv.Itoa(c.TUIMaxResults), nil
	case "shell_history_path":
		return c.ShellHistoryPath, nil
	default:
		return "", fmt.Errorf("unknown config key: %s", key)
	}
}

func setConfigValue(c *config.Config, key, value string) error {
	switch key {
	case "max_results":
		n, err := strconv.Atoi(value)
		if err != nil || n < 1 || n > config.MaxResultsLimit {
			return fmt.Errorf("max_results must be an integer between 1 and %d", config.MaxResultsLimit)
		}
		c.MaxResults = n
	case "tui_max_results":
		n, err := strconv.Atoi(value)
		if err != nil || n < 1 || n > config.TUIMaxResultsLimit {
			return fmt.Errorf("tui_max_results must be an integer between 1 and %d", config.TUIMaxResultsLimit)
		}
		c.TUIMaxResults = n
	case "shell_history_path":
		c.ShellHistoryPath = value
	default:
		return fmt.Errorf("unknown config key: %s", key)
	}
	return nil
}

func init() {
	configCmd.Flags().BoolVar(&configReset, "reset", false, "restore default configuration")
	rootCmd.AddCommand(configCmd)
}
