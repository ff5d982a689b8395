// Package logging assembles structured slog loggers and formatting helpers used
// across subburn.
//
// It owns the console and JSON handlers, level parsing, the rotating file
// sink, and context helpers that tag log lines with the invocation id of a
// node run. NewNop provides a silent logger for tests and for wiring code
// that has no logger to hand.
package logging
