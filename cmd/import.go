package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/icmd-sh/icmd/internal/histfile"
	"github.com/icmd-sh/icmd/internal/history"
	"github.com/icmd-sh/icmd/internal/paths"
)

var (
	importLimit int
	importFile  string
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import your existing shell history file",
	Long: `Read your shell's history file (bash, zsh or fish format) and load it
into the capture database. Duplicate commands keep only their most recent
occurrence. Timestamps are preserved when the history file has them.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		override := importFile
		if override == "" {
			override = cfg.ShellHistoryPath
		}
		src := histfile.DetectSource(override)

		f, err := os.Open(src.Path)
		if err != nil {
			return fmt.Errorf("opening history file %s: %w", src.Path, err)
		}
		defer f.Close()

		commands, err := src.Parser(f)
		if err != nil {
			return fmt.Errorf("parsing %s: %w", src.Path, err)
		}
		commands = histfile.DedupKeepLast(commands, importLimit)

		dbPath, err := paths.HistoryDB()
		if err != nil {
			return err
		}
		store, err := history.Open(dbPath)
		if err != nil {
			return err
		}

		// Untimestamped entries get synthetic times just before now, spaced
		// one second apart so their file order survives as recency order.
		base := time.Now().Add(-time.Duration(len(commands)) * time.Second)
		imported := 0
		for i, c := range commands {
			at := c.Timestamp
			if at.IsZero() {
				at = base.Add(time.Duration(i) * time.Second)
			}
			if _, err := store.InsertAt(c.Raw, "", at); err != nil {
				return fmt.Errorf("importing %q: %w", c.Raw, err)
			}
			imported++
		}

		cmd.Printf("imported %d commands from %s\n", imported, src.Path)
		return nil
	},
}

func init() {
	importCmd.Flags().IntVar(&importLimit, "limit", 5000, "maximum commands to import")
	importCmd.Flags().StringVar(&importFile, "file", "", "history file to import (default: detected from $SHELL)")
	rootCmd.AddCommand(importCmd)
}
