package cmd

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/icmd-sh/icmd/internal/history"
	"github.com/icmd-sh/icmd/internal/paths"
	"github.com/icmd-sh/icmd/internal/search"
)

var (
	searchCmdStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("82"))
	searchMetaStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

var searchLimit int

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search captured commands",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dbPath, err := paths.HistoryDB()
		if err != nil {
			return err
		}
		store, err := history.Open(dbPath)
		if err != nil {
			return err
		}

		limit := cfg.MaxResults
		if searchLimit > 0 {
			limit = searchLimit
		}
		results, err := search.Query(store, args[0], limit)
		if err != nil {
			return err
		}
		if len(results) == 0 {
			cmd.Println("no matches")
			return nil
		}

		for _, r := range results {
			cmd.Println("  " + searchCmdStyle.Render(r.Command))
			cmd.Println("    " + searchMetaStyle.Render(r.Directory+"  ·  "+humanize.Time(r.CreatedAt)))
		}
		return nil
	},
}

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 0, "maximum results (default: max_results from config)")
	rootCmd.AddCommand(searchCmd)
}
