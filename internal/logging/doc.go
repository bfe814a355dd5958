// Package logging assembles the structured slog loggers used across the
// session components.
//
// It owns the compact console handler, the JSON option for machine-readable
// logs, and the shared field keys plus context-aware helpers that tag log
// lines with the active session ID and article number. Prefer these
// constructors over hand-rolled slog setup so every component emits the same
// shape.
package logging
