// Package logging provides structured logging for the tns CLI using slog.
//
// Text output goes through [Handler], a compact TTY-aware handler that
// colours levels when the writer is a terminal. JSON output uses the
// standard library handler. [MultiHandler] fans records out to both the
// terminal and an optional --log-file.
//
//	logger := logging.New(logging.Config{Level: slog.LevelInfo})
//	logger.Info("adding platform", "platform", "android")
//
// Workflows pull the logger from the command context with [FromContext];
// tests use [ForTest] so that output only shows up on failure.
package logging
