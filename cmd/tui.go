package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/x/term"
	"github.com/spf13/cobra"

	"github.com/icmd-sh/icmd/internal/history"
	"github.com/icmd-sh/icmd/internal/paths"
	"github.com/icmd-sh/icmd/internal/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Browse captured commands interactively",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !term.IsTerminal(os.Stdout.Fd()) {
			return fmt.Errorf("tui requires an interactive terminal")
		}

		dbPath, err := paths.HistoryDB()
		if err != nil {
			return err
		}
		store, err := history.Open(dbPath)
		if err != nil {
			return err
		}
		return tui.Run(store, dbPath, cfg.TUIMaxResults)
	},
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}
