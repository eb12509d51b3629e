// Package logging provides structured logging for codesync using zerolog.
// Reconciliation diagnostics are replayed through these loggers, so the
// console writer is the default on a terminal and JSON everywhere else.
//
// Example usage:
//
//	ctx = logging.WithRunID(logging.WithLogger(ctx, &logger), runID)
//	logging.FromContext(ctx).Warn().
//	    Str("code", "C123").
//	    Msg("Mismatched displays for code")
package logging

import (
	"os"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var (
	// defaultLogger backs FromContext when the context carries none.
	defaultLogger = NewLoggerFromConfig(nil)

	// Nop logger for discarding output.
	Nop = zerolog.Nop()
)

// Default returns the process-wide logger.
func Default() *zerolog.Logger {
	return &defaultLogger
}

// SetDefault replaces the process-wide logger, including zerolog's global
// log.Logger.
func SetDefault(logger zerolog.Logger) {
	defaultLogger = logger
	log.Logger = logger
}

// stderrIsTerminal reports whether stderr is attached to a terminal.
func stderrIsTerminal() bool {
	fd := os.Stderr.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
