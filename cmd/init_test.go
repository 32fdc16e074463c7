package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestInitSetsUpShell(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_DATA_HOME", t.TempDir())

	out, err := executeCommand(rootCmd, "init", "--shell", "bash")
	if err != nil {
		t.Fatalf("init: %v", err)
	}
	if !strings.Contains(out, "Restart your shell") {
		t.Errorf("init output missing restart hint:\n%s", out)
	}

	scriptPath := filepath.Join(home, ".config", "icmd", "icmd.hook.bash")
	if _, err := os.Stat(scriptPath); err != nil {
		t.Fatalf("hook script not written: %v", err)
	}

	rc, err := os.ReadFile(filepath.Join(home, ".bashrc"))
	if err != nil {
		t.Fatalf("reading .bashrc: %v", err)
	}
	if !strings.Contains(string(rc), "icmd.hook.bash") {
		t.Errorf(".bashrc missing source line:\n%s", rc)
	}
	if _, err := os.Stat(filepath.Join(home, ".config", "icmd", "config.json")); err != nil {
		t.Fatalf("default config not written: %v", err)
	}
}

func TestInitIdempotent(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_DATA_HOME", t.TempDir())

	if _, err := executeCommand(rootCmd, "init", "--shell", "zsh"); err != nil {
		t.Fatalf("first init: %v", err)
	}
	out, err := executeCommand(rootCmd, "init", "--shell", "zsh")
	if err != nil {
		t.Fatalf("second init: %v", err)
	}
	if !strings.Contains(out, "already set up") {
		t.Errorf("second init did not report existing setup:\n%s", out)
	}

	rc, err := os.ReadFile(filepath.Join(home, ".zshrc"))
	if err != nil {
		t.Fatalf("reading .zshrc: %v", err)
	}
	if strings.Count(string(rc), "icmd.hook.zsh") != 1 {
		t.Errorf(".zshrc has duplicate source lines:\n%s", rc)
	}
}

func TestUninstallRemovesIntegration(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_DATA_HOME", t.TempDir())

	if _, err := executeCommand(rootCmd, "init", "--shell", "bash"); err != nil {
		t.Fatalf("init: %v", err)
	}
	out, err := executeCommand(rootCmd, "uninstall", "--yes")
	if err != nil {
		t.Fatalf("uninstall: %v", err)
	}
	if !strings.Contains(out, "history kept") {
		t.Errorf("uninstall output missing history note:\n%s", out)
	}

	rc, err := os.ReadFile(filepath.Join(home, ".bashrc"))
	if err != nil {
		t.Fatalf("reading .bashrc: %v", err)
	}
	if strings.Contains(string(rc), "icmd") {
		t.Errorf("icmd lines left in .bashrc:\n%s", rc)
	}
	if _, err := os.Stat(filepath.Join(home, ".config", "icmd", "icmd.hook.bash")); !os.IsNotExist(err) {
		t.Error("hook script not removed")
	}
}
