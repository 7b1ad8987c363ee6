package logger

import (
	"fmt"
	"log/slog"
	"os"
)

// FatalWithLogger logs msg at error level on logger and exits the process
// with status 1. This is the shutdown path main's composition root takes
// when a startup dependency - config, the settings store, the gateway
// listener - fails before the process has anything worth keeping alive.
func FatalWithLogger(logger *slog.Logger, msg string, args ...any) {
	logger.Error(msg, args...)
	os.Exit(1)
}

// Fatal is FatalWithLogger against slog's package default, for call sites
// that run before a *slog.Logger has been constructed.
func Fatal(msg string, args ...any) {
	FatalWithLogger(slog.Default(), msg, args...)
}

// Fatalf formats msg before logging it fatally.
func Fatalf(format string, args ...any) {
	Fatal(fmt.Sprintf(format, args...))
}
