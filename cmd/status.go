package cmd

import (
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/icmd-sh/icmd/internal/history"
	"github.com/icmd-sh/icmd/internal/hook"
	"github.com/icmd-sh/icmd/internal/paths"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show capture setup and database status",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, adapter := range hook.Adapters() {
			state := "not installed"
			if hook.Installed(adapter.Name()) {
				state = "installed"
			}
			cmd.Printf("  %s hook:  %s\n", adapter.Name(), state)
		}

		dbPath, err := paths.HistoryDB()
		if err != nil {
			return err
		}
		store, err := history.Open(dbPath)
		if err != nil {
			return err
		}

		count, err := store.Count()
		if err != nil {
			return err
		}
		cmd.Printf("  captured:  %d commands\n", count)

		last, err := store.Last()
		if err != nil {
			return err
		}
		if last != nil {
			cmd.Printf("  last:      %s (%s)\n", last.Command, humanize.Time(last.CreatedAt))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
