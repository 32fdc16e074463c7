package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/icmd-sh/icmd/internal/hook"
)

// executeCommand runs a cobra command with the given args and captures combined output.
func executeCommand(root *cobra.Command, args ...string) (output string, err error) {
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	_, err = root.ExecuteC()
	return buf.String(), err
}

func isolateState(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("XDG_DATA_HOME", t.TempDir())
}

func TestHookPrintsScript(t *testing.T) {
	isolateState(t)

	out, err := executeCommand(rootCmd, "hook", "zsh")
	if err != nil {
		t.Fatalf("hook zsh: %v", err)
	}
	if !strings.Contains(out, "precmd_functions") {
		t.Errorf("zsh script missing registration, got:\n%s", out)
	}
	if !strings.Contains(out, "__icmd_capture") {
		t.Errorf("zsh script missing trigger function")
	}
}

func TestHookRejectsUnknownShell(t *testing.T) {
	isolateState(t)

	_, err := executeCommand(rootCmd, "hook", "fish")
	if err == nil {
		t.Fatal("expected error for unsupported shell")
	}
	if !strings.Contains(err.Error(), "unsupported shell") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestHookSessionPrintsID(t *testing.T) {
	isolateState(t)

	out, err := executeCommand(rootCmd, "hook", "session")
	if err != nil {
		t.Fatalf("hook session: %v", err)
	}
	id := strings.TrimSpace(out)
	if id == "" {
		t.Fatal("hook session printed no ID")
	}

	store, err := hook.NewStore()
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	if _, err := store.Load(id); err != nil {
		t.Fatalf("printed session ID has no state on disk: %v", err)
	}
}

type nopLauncher struct{}

func (nopLauncher) Launch(command, dir string) error { return nil }

func TestHookFireNeverFails(t *testing.T) {
	isolateState(t)
	orig := newLauncher
	newLauncher = func() hook.Launcher { return nopLauncher{} }
	defer func() { newLauncher = orig }()

	// Even with no pre-existing session state, fire must exit cleanly.
	out, err := executeCommand(rootCmd, "hook", "fire", "--session", "nope", "--", "echo", "hi")
	if err != nil {
		t.Fatalf("hook fire returned error: %v", err)
	}
	if strings.TrimSpace(out) != "" {
		t.Fatalf("hook fire produced output: %q", out)
	}
}
