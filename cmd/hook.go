package cmd

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/icmd-sh/icmd/internal/hook"
	"github.com/icmd-sh/icmd/internal/logging"
)

// staleSessionAge is how long a session state file may sit untouched before
// a new session sweeps it away.
const staleSessionAge = 48 * time.Hour

var hookCmd = &cobra.Command{
	Use:   "hook [bash|zsh]",
	Short: "Print the shell integration script",
	Long: `Print the integration script for the named shell (or the login shell
when omitted). Typically used via 'icmd init', or directly:

  source <(icmd hook zsh)`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var adapter hook.Adapter
		var err error
		if len(args) == 1 {
			adapter, err = hook.ByName(args[0])
		} else {
			adapter, err = hook.Detect()
		}
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), adapter.Script(executablePath()))
		return nil
	},
}

// hookSessionCmd allocates the per-shell-session dedup scope. It is called
// once when the integration script is sourced and prints the new session ID.
// Errors are swallowed: a failed allocation must not break the shell.
var hookSessionCmd = &cobra.Command{
	Use:    "session",
	Hidden: true,
	Args:   cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := hook.NewStore()
		if err != nil {
			return nil
		}
		hook.PruneStale(store, staleSessionAge)

		sess := hook.NewSession()
		if err := store.Save(sess); err != nil {
			logging.New().Warn("session allocation failed: " + err.Error())
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), sess.ID)
		return nil
	},
}

var fireSession string

// newLauncher is swapped out in tests so firing never spawns processes.
var newLauncher = hook.NewLauncher

// hookFireCmd is the trigger target. The shell calls it synchronously after
// every command with the raw history line; it dedups against the session
// state and hands accepted commands to a detached capture process. It always
// exits 0 and prints nothing.
var hookFireCmd = &cobra.Command{
	Use:    "fire -- <command>",
	Hidden: true,
	Args:   cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := hook.NewStore()
		if err != nil {
			return nil
		}
		d := hook.NewDispatcher(store, newLauncher(), logging.New())
		d.Fire(fireSession, strings.Join(args, " "))
		return nil
	},
}

// executablePath returns the path shell scripts should use to invoke icmd.
func executablePath() string {
	if path, err := os.Executable(); err == nil {
		return path
	}
	if path, err := exec.LookPath("icmd"); err == nil {
		return path
	}
	return "icmd"
}

func init() {
	hookFireCmd.Flags().StringVar(&fireSession, "session", "", "dedup session ID")
	hookCmd.AddCommand(hookSessionCmd)
	hookCmd.AddCommand(hookFireCmd)
	rootCmd.AddCommand(hookCmd)
}
