package cmd

import (
	"bufio"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/icmd-sh/icmd/internal/hook"
	"github.com/icmd-sh/icmd/internal/paths"
)

var (
	uninstallYes   bool
	uninstallPurge bool
)

var uninstallCmd = &cobra.Command{
	Use:   "uninstall",
	Short: "Remove shell integration",
	Long: `Remove the icmd lines from your shell rc files and delete the
integration scripts. Captured history is kept unless --purge is given.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !uninstallYes {
			cmd.Print("Remove icmd shell integration? [y/N] ")
			reader := bufio.NewReader(cmd.InOrStdin())
			answer, _ := reader.ReadString('\n')
			answer = strings.ToLower(strings.TrimSpace(answer))
			if answer != "y" && answer != "yes" {
				cmd.Println("aborted")
				return nil
			}
		}

		for _, adapter := range hook.Adapters() {
			name := adapter.Name()
			rcFile, removed, err := hook.UninstallRC(name)
			if err != nil {
				return err
			}
			if removed {
				cmd.Printf("  removed hook from %s\n", rcFile)
			}
			scriptPath, err := hook.ScriptPath(name)
			if err != nil {
				return err
			}
			if err := os.Remove(scriptPath); err == nil {
				cmd.Printf("  removed %s\n", scriptPath)
			}
		}

		if uninstallPurge {
			dataDir, err := paths.DataDir()
			if err != nil {
				return err
			}
			if err := os.RemoveAll(dataDir); err != nil {
				return err
			}
			cmd.Printf("  removed %s\n", dataDir)
		} else {
			cmd.Println("  captured history kept (use --purge to delete it)")
		}

		cmd.Println()
		cmd.Println("  Open shells keep capturing until restarted.")
		return nil
	},
}

func init() {
	uninstallCmd.Flags().BoolVarP(&uninstallYes, "yes", "y", false, "skip confirmation")
	uninstallCmd.Flags().BoolVar(&uninstallPurge, "purge", false, "also delete captured history and logs")
	rootCmd.AddCommand(uninstallCmd)
}
