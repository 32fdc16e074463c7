package cmd

import (
	"github.com/spf13/cobra"

	"github.com/icmd-sh/icmd/internal/config"
	"github.com/icmd-sh/icmd/internal/history"
	"github.com/icmd-sh/icmd/internal/hook"
	"github.com/icmd-sh/icmd/internal/paths"
)

var initShell string

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Set up shell integration and the capture database",
	Long: `Create the icmd data directory and history database, write the
integration script for your shell, and register it in your shell rc file.
Safe to run repeatedly.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var adapter hook.Adapter
		var err error
		if initShell != "" {
			adapter, err = hook.ByName(initShell)
		} else {
			adapter, err = hook.Detect()
		}
		if err != nil {
			return err
		}

		// Database first: the hook is useless without somewhere to write.
		dbPath, err := paths.HistoryDB()
		if err != nil {
			return err
		}
		if _, err := history.Open(dbPath); err != nil {
			return err
		}

		if !config.Exists() {
			if err := config.Save(config.Defaults()); err != nil {
				return err
			}
		}

		scriptPath, err := hook.WriteScript(adapter, executablePath())
		if err != nil {
			return err
		}
		rcFile, added, err := hook.InstallRC(adapter.Name(), scriptPath)
		if err != nil {
			return err
		}

		cmd.Printf("  shell:     %s\n", adapter.Name())
		cmd.Printf("  database:  %s\n", dbPath)
		cmd.Printf("  hook:      %s\n", scriptPath)
		if added {
			cmd.Printf("  rc file:   %s (updated)\n", rcFile)
		} else {
			cmd.Printf("  rc file:   %s (already set up)\n", rcFile)
		}
		cmd.Println()
		cmd.Println("  Restart your shell (or source your rc file) to start capturing.")
		return nil
	},
}

func init() {
	initCmd.Flags().StringVar(&initShell, "shell", "", "shell to set up (bash or zsh, default: login shell)")
	rootCmd.AddCommand(initCmd)
}
