// Package logging assembles the structured slog loggers used across tunedex.
//
// It owns the console and JSON handlers, centralizes level and output
// plumbing, and exposes a component helper so subsystem code emits log lines
// with a consistent shape. Prefer these constructors over hand-rolled slog
// setup.
package logging
