package hook

import (
	"fmt"
	"os"
	"os/exec"
	"syscall"
)

// Launcher starts the capture process for a forwarded command event.
type Launcher interface {
	// Launch starts the capture of command in dir and returns without
	// waiting for it. Implementations must not block on the child.
	Launch(command, dir string) error
}

// execLauncher spawns `<binary> capture <command> <dir>` fully detached:
// its own session, no inherited stdio, no handle kept. The child's fate is
// never observed; a missing or failing binary is the caller's to ignore.
type execLauncher struct {
	binary string
}

// NewLauncher returns the production Launcher. The capture binary is the
// running executable when resolvable, otherwise icmd found on PATH.
func NewLauncher() Launcher {
	binary, err := os.Executable()
	if err != nil || binary == "" {
		binary, _ = exec.LookPath("icmd")
	}
	return &execLauncher{binary: binary}
}

func (l *execLauncher) Launch(command, dir string) error {
	if l.binary == "" {
		return fmt.Errorf("capture binary not found")
	}

	cmd := exec.Command(l.binary, "capture", command, dir)
	cmd.Stdin = nil
	cmd.Stdout = nil
	cmd.Stderr = nil
	// New session: the capture process must not join the shell's process
	// group or job control, and must survive shell exit on its own terms.
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start capture: %w", err)
	}
	return cmd.Process.Release()
}
