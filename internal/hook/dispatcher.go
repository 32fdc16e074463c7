// Package hook implements the shell-side command capture pipeline: shell
// adapters that extract the last executed command from bash or zsh, and the
// dispatcher that dedups consecutive repeats and forwards each event to the
// capture process without ever blocking the interactive prompt.
package hook

import (
	"errors"
	"os"
	"strings"

	"go.uber.org/zap"
)

// Dispatcher decides whether a candidate command is forwarded and performs
// the forwarding. It is deliberately failure-proof: nothing it does may
// surface to the interactive user.
type Dispatcher struct {
	store    Store
	launcher Launcher
	logger   *zap.Logger
}

// NewDispatcher creates a Dispatcher. logger may be nil.
func NewDispatcher(store Store, launcher Launcher, logger *zap.Logger) *Dispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Dispatcher{
		store:    store,
		launcher: launcher,
		logger:   logger,
	}
}

// Dispatch evaluates candidate against the session's dedup state and, if it
// passes, forwards the command with the current working directory. Returns
// whether a capture was launched.
//
// Empty (after trimming) and immediately-consecutive-duplicate candidates
// are dropped without touching state. The dedup state is updated before the
// launch is attempted, so a failing or slow capture can never cause the same
// command to be forwarded twice.
func (d *Dispatcher) Dispatch(sess *Session, candidate string) bool {
	command := strings.TrimSpace(candidate)
	if command == "" {
		return false
	}
	if command == sess.LastCommand {
		return false
	}

	sess.LastCommand = command
	if err := d.store.Save(sess); err != nil {
		// State persistence is best-effort: a read-only disk should not
		// cost the user this capture, only dedup across later firings.
		d.logger.Warn("failed to save session state",
			zap.String("session", sess.ID), zap.Error(err))
	}

	// Working directory is read live at dispatch time, not cached upstream.
	dir, err := os.Getwd()
	if err != nil {
		dir = ""
	}

	if err := d.launcher.Launch(command, dir); err != nil {
		d.logger.Warn("failed to launch capture",
			zap.String("session", sess.ID), zap.Error(err))
		return false
	}

	d.logger.Debug("dispatched command",
		zap.String("session", sess.ID), zap.String("command", command))
	return true
}

// Fire handles one trigger firing from a shell adapter: it loads (or creates)
// the session's dedup state and runs Dispatch. It never returns an error;
// the hook path must be invisible on failure.
func (d *Dispatcher) Fire(sessionID, candidate string) {
	sess, err := d.store.Load(sessionID)
	if err != nil {
		if !errors.Is(err, ErrNoSession) {
			d.logger.Warn("failed to load session state",
				zap.String("session", sessionID), zap.Error(err))
		}
		sess = NewSession()
		if sessionID != "" {
			sess.ID = sessionID
		}
	}
	d.Dispatch(sess, candidate)
}
