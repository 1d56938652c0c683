// Package logging assembles structured slog loggers and formatting helpers used
// across termplay.
//
// It owns the console/JSON handlers, centralizes level and output plumbing,
// and exposes context-aware helpers so stage code can tag log lines with the
// stage name and the run's correlation ID. Output defaults to stderr: stdout
// belongs to the download tool and to frame playback. The package also
// provides a no-op logger for tests and wiring code that cannot fail.
package logging
