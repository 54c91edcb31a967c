package util

import (
	"github.com/docfold/docfold/pkg/logging"
)

var logger logging.Logger

// BuildLogger replaces the process logger with one at the given level.
func BuildLogger(level string) {
	logger = logging.NewConsoleLogger(logging.LogLevel(level))
}

// Log returns the process logger.
func Log() logging.Logger {
	if logger == nil {
		logger = logging.NewConsoleLogger(logging.LevelDebug)
	}
	return logger
}
