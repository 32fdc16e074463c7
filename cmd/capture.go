package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/icmd-sh/icmd/internal/history"
	"github.com/icmd-sh/icmd/internal/logging"
	"github.com/icmd-sh/icmd/internal/paths"
)

// captureCmd is the detached persistence process spawned by the dispatcher.
// It records one command in the history database and exits. All failures go
// to the log file only; by the time it runs there is no terminal to talk to.
var captureCmd = &cobra.Command{
	Use:    "capture <command> <directory>",
	Hidden: true,
	Args:   cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := logging.New()

		dbPath, err := paths.HistoryDB()
		if err != nil {
			logger.Error("capture: resolving database path", zap.Error(err))
			return nil
		}
		store, err := history.Open(dbPath)
		if err != nil {
			logger.Error("capture: opening database", zap.Error(err))
			return nil
		}
		if _, err := store.Insert(args[0], args[1]); err != nil {
			logger.Error("capture: inserting entry",
				zap.String("command", args[0]), zap.Error(err))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(captureCmd)
}
