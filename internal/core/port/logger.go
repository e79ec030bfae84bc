package port

// Fields carries structured key/value data into a log record.
type Fields map[string]interface{}

// LoggerPort abstracts the application core from the logging implementation.
type LoggerPort interface {
	Info(msg string, fields Fields)
	Warn(msg string, fields Fields)
	Error(msg string, err error, fields Fields)
	Debug(msg string, fields Fields)

	// WithFields returns a logger with the fields pre-attached, used for
	// carrying context like trace_id or use_case.
	WithFields(fields Fields) LoggerPort
}
