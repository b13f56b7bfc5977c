package logger

// NoOpLogger is a logger that does nothing. Used in tests.
type NoOpLogger struct{}

// NewNoOp creates a new no-op logger instance.
func NewNoOp() Interface {
	return &NoOpLogger{}
}

// Debug logs nothing.
func (l *NoOpLogger) Debug(msg string, fields ...any) {}

// Info logs nothing.
func (l *NoOpLogger) Info(msg string, fields ...any) {}

// Warn logs nothing.
func (l *NoOpLogger) Warn(msg string, fields ...any) {}

// Error logs nothing.
func (l *NoOpLogger) Error(msg string, fields ...any) {}

// Fatal logs nothing and does not exit.
func (l *NoOpLogger) Fatal(msg string, fields ...any) {}

// With returns the same no-op logger.
func (l *NoOpLogger) With(fields ...any) Interface { return l }

// WithError returns the same no-op logger.
func (l *NoOpLogger) WithError(err error) Interface { return l }

// WithComponent returns the same no-op logger.
func (l *NoOpLogger) WithComponent(component string) Interface { return l }

// WithSource returns the same no-op logger.
func (l *NoOpLogger) WithSource(sourceID string) Interface { return l }
