package cmd

import (
	"strings"
	"testing"
)

func TestConfigShowsDefaults(t *testing.T) {
	isolateState(t)

	out, err := executeCommand(rootCmd, "config")
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	if !strings.Contains(out, "max_results:         10") {
		t.Errorf("defaults not shown:\n%s", out)
	}
}

func TestConfigSetAndGet(t *testing.T) {
	isolateState(t)

	if _, err := executeCommand(rootCmd, "config", "max_results", "25"); err != nil {
		t.Fatalf("config set: %v", err)
	}
	out, err := executeCommand(rootCmd, "config", "max_results")
	if err != nil {
		t.Fatalf("config get: %v", err)
	}
	if strings.TrimSpace(out) != "25" {
		t.Errorf("config get = %q, want 25", strings.TrimSpace(out))
	}
}

func TestConfigRejectsOutOfRange(t *testing.T) {
	isolateState(t)

	if _, err := executeCommand(rootCmd, "config", "max_results", "0"); err == nil {
		t.Error("max_results 0 accepted")
	}
	if _, err := executeCommand(rootCmd, "config", "max_results", "9999"); err == nil {
		t.Error("max_results 9999 accepted")
	}
	if _, err := executeCommand(rootCmd, "config", "tui_max_results", "not-a-number"); err == nil {
		t.Error("non-numeric tui_max_results accepted")
	}
}

func TestConfigRejectsUnknownKey(t *testing.T) {
	isolateState(t)

	_, err := executeCommand(rootCmd, "config", "no_such_key")
	if err == nil || !strings.Contains(err.Error(), "unknown config key") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestConfigReset(t *testing.T) {
	isolateState(t)

	if _, err := executeCommand(rootCmd, "config", "max_results", "42"); err != nil {
		t.Fatalf("config set: %v", err)
	}
	if _, err := executeCommand(rootCmd, "config", "--reset"); err != nil {
		t.Fatalf("config --reset: %v", err)
	}
	configReset = false // flag var persists across executions in-process
	out, err := executeCommand(rootCmd, "config", "max_results")
	if err != nil {
		t.Fatalf("config get: %v", err)
	}
	if strings.TrimSpace(out) != "10" {
		t.Errorf("after reset max_results = %q, want 10", strings.TrimSpace(out))
	}
}
