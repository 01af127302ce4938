package logger

import "vault_reporter/internal/app/port"

// slogAdapter implements port.Logger on top of the package-level logger.
// Attributes passed to NewSlogAdapter or With are added to every record.
type slogAdapter struct {
	args []any
}

// NewSlogAdapter returns a port.Logger backed by the global logger.
func NewSlogAdapter(args ...any) port.Logger {
	return &slogAdapter{args: args}
}

func (a *slogAdapter) Info(msg string, args ...any) {
	current().With(a.args...).Info(msg, args...)
}

func (a *slogAdapter) Debug(msg string, args ...any) {
	current().With(a.args...).Debug(msg, args...)
}

func (a *slogAdapter) Warn(msg string, args ...any) {
	current().With(a.args...).Warn(msg, args...)
}

func (a *slogAdapter) Error(msg string, args ...any) {
	current().With(a.args...).Error(msg, args...)
}

func (a *slogAdapter) With(args ...any) port.Logger {
	merged := make([]any, 0, len(a.args)+len(args))
	merged = append(merged, a.args...)
	merged = append(merged, args...)
	return &slogAdapter{args: merged}
}
