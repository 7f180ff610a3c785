package logging

import "log/slog"

// FieldComponent tags a log line with the subsystem that produced it. The
// console handler renders it as a message prefix instead of a key=value pair.
const FieldComponent = "component"

// WithComponent returns a logger whose lines carry the given component tag.
func WithComponent(logger *slog.Logger, component string) *slog.Logger {
	if logger == nil {
		return nil
	}
	return logger.With(slog.String(FieldComponent, component))
}

// Error wraps an error for structured logging, tolerating nil.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String("error", "<nil>")
	}
	return slog.Any("error", err)
}
