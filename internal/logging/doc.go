// Package logging assembles structured slog loggers and formatting helpers
// used across qbsort components.
//
// It owns the configurable console/JSON handlers, centralizes level and
// output plumbing (stdout plus the qbsort.log mirror), and exposes
// context-aware helpers so hook code can automatically tag log lines with
// run and torrent identifiers. The package also provides a no-op logger for
// tests and wiring code that cannot fail.
//
// Prefer these constructors over hand-rolled slog setup to ensure new
// components emit data with the same shape and routing guarantees as the
// rest of the system.
package logging
