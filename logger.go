package ljson

// Fields carries structured context for a log line.
type Fields map[string]any

// Logger is the leveled logger used by the converter and the store.
// Adapters for zap, logrus and slog live under log/. A nil Logger in Options
// disables logging.
type Logger interface {
	Debug(msg string, f Fields)
	Info(msg string, f Fields)
	Warn(msg string, f Fields)
	Error(msg string, f Fields)
}

type NopLogger struct{}

func (NopLogger) Debug(string, Fields) {}
func (NopLogger) Info(string, Fields)  {}
func (NopLogger) Warn(string, Fields)  {}
func (NopLogger) Error(string, Fields) {}
