// Package logging builds the file-backed zap logger used by icmd.
// icmd never logs to stdout or stderr: the hook path runs inside the
// user's prompt cycle and must stay silent, so everything goes to
// <data dir>/icmd.log.
package logging

import (
	"go.uber.org/zap"

	"github.com/icmd-sh/icmd/internal/paths"
)

// New returns a logger writing to the icmd log file. If the log file
// cannot be resolved or opened, a no-op logger is returned: a broken
// log destination must never surface through the capture path.
func New() *zap.Logger {
	logFile, err := paths.LogFile()
	if err != nil {
		return zap.NewNop()
	}

	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{logFile}
	cfg.ErrorOutputPaths = []string{logFile}

	logger, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}
