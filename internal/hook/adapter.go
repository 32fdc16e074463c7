package hook

import (
	"fmt"
	"os"
	"path/filepath"
)

// Adapter renders the shell-native integration for one supported shell
// dialect. Adapters only produce the trigger wiring; deduplication and
// forwarding live in the Dispatcher.
type Adapter interface {
	// Name is the shell dialect: "bash" or "zsh".
	Name() string
	// Detect reports whether this adapter matches the user's login shell.
	Detect() bool
	// Script renders the source-able integration, invoking binary for
	// session allocation and trigger firing.
	Script(binary string) string
}

// Adapters returns all supported shell adapters.
func Adapters() []Adapter {
	return []Adapter{bashAdapter{}, zshAdapter{}}
}

// ByName returns the adapter for the named shell.
func ByName(name string) (Adapter, error) {
	for _, a := range Adapters() {
		if a.Name() == name {
			return a, nil
		}
	}
	return nil, fmt.Errorf("unsupported shell: %s (supported: bash, zsh)", name)
}

// Detect picks the adapter matching $SHELL.
func Detect() (Adapter, error) {
	for _, a := range Adapters() {
		if a.Detect() {
			return a, nil
		}
	}
	return nil, fmt.Errorf("could not detect a supported shell from $SHELL=%q (supported: bash, zsh)", os.Getenv("SHELL"))
}

// loginShell returns the basename of the user's login shell.
func loginShell() string {
	return filepath.Base(os.Getenv("SHELL"))
}
