// Package logging provides the free-form progress log used by the CLI
// and driver, plus structured one-off events routed through log/slog.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
)

// logWriter is the destination for Logf output.
var logWriter io.Writer

// SetLogWriter sets the log output destination for Logf.
func SetLogWriter(w io.Writer) {
	logWriter = w
}

// Logf writes a formatted progress message.
func Logf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if logWriter != nil {
		fmt.Fprintln(logWriter, msg)
	} else {
		fmt.Println(msg)
	}
}

// SeedReplaced logs the structured event fired when an invalid or absent
// command-line seed is replaced with a wall-clock-derived one.
func SeedReplaced(logger *slog.Logger, reason string, seed int64) {
	logger.Warn("seed replaced", "reason", reason, "seed", seed)
}

// PoolExhausted logs the fatal event fired when the cell arena cannot be
// reserved at startup.
func PoolExhausted(logger *slog.Logger, requested, capacity int) {
	logger.Error("pool exhausted", "requested", requested, "capacity", capacity)
}

// FloodDivergence logs a drop silently dropped after exhausting its
// plane-raising budget.
func FloodDivergence(logger *slog.Logger, tick int) {
	logger.Debug("flood divergence, drop dropped", "tick", tick)
}

// NewDefaultLogger returns a text-handler slog.Logger writing to stderr,
// matching the destination the CLI uses for its own diagnostics.
func NewDefaultLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, nil))
}
