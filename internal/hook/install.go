package hook

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/icmd-sh/icmd/internal/paths"
)

// rcMarker guards the source block appended to shell rc files, so repeated
// installs never stack up duplicate registrations.
const rcMarker = "# icmd: shell command capture"

// ScriptPath returns the path where the integration script for the named
// shell is written.
func ScriptPath(shellName string) (string, error) {
	dir, err := paths.ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "icmd.hook."+shellName), nil
}

// WriteScript renders the adapter's integration script for binary and writes
// it to the config directory, returning the script path.
func WriteScript(a Adapter, binary string) (string, error) {
	path, err := ScriptPath(a.Name())
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, []byte(a.Script(binary)), 0o644); err != nil {
		return "", fmt.Errorf("writing hook script: %w", err)
	}
	return path, nil
}

// Installed reports whether the integration script for the named shell
// exists on disk.
func Installed(shellName string) bool {
	path, err := ScriptPath(shellName)
	if err != nil {
		return false
	}
	_, err = os.Stat(path)
	return err == nil
}

// RCPath returns the rc file for the named shell.
func RCPath(shellName string) (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, "."+shellName+"rc"), nil
}

// InstallRC appends a marker-guarded source block for scriptPath to the
// shell's rc file. Returns the rc path and whether the block was added
// (false when already present).
func InstallRC(shellName, scriptPath string) (string, bool, error) {
	rcFile, err := RCPath(shellName)
	if err != nil {
		return "", false, err
	}

	content, err := os.ReadFile(rcFile)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return rcFile, false, fmt.Errorf("reading %s: %w", rcFile, err)
	}
	if strings.Contains(string(content), rcMarker) {
		return rcFile, false, nil
	}

	block := fmt.Sprintf("\n%s\nsource %q\n", rcMarker, scriptPath)
	f, err := os.OpenFile(rcFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return rcFile, false, fmt.Errorf("opening %s: %w", rcFile, err)
	}
	defer f.Close()
	if _, err := f.WriteString(block); err != nil {
		return rcFile, false, fmt.Errorf("appending to %s: %w", rcFile, err)
	}
	return rcFile, true, nil
}

// UninstallRC removes the icmd source block from the shell's rc file.
// Returns the rc path and whether anything was removed.
func UninstallRC(shellName string) (string, bool, error) {
	rcFile, err := RCPath(shellName)
	if err != nil {
		return "", false, err
	}

	content, err := os.ReadFile(rcFile)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return rcFile, false, nil
		}
		return rcFile, false, fmt.Errorf("reading %s: %w", rcFile, err)
	}
	if !strings.Contains(string(content), rcMarker) {
		return rcFile, false, nil
	}

	lines := strings.Split(string(content), "\n")
	cleaned := make([]string, 0, len(lines))
	skipSource := false
	for _, line := range lines {
		if strings.Contains(line, rcMarker) {
			skipSource = true
			continue
		}
		if skipSource && strings.HasPrefix(strings.TrimSpace(line), "source ") &&
			strings.Contains(line, "icmd.hook.") {
			skipSource = false
			continue
		}
		skipSource = false
		cleaned = append(cleaned, line)
	}

	if err := os.WriteFile(rcFile, []byte(strings.Join(cleaned, "\n")), 0o644); err != nil {
		return rcFile, false, fmt.Errorf("writing %s: %w", rcFile, err)
	}
	return rcFile, true, nil
}
