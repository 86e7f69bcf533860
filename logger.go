package reqkit

import (
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Logger receives debug output. keysAndValues alternate between string keys
// and arbitrary values.
type Logger interface {
	Debug(msg string, keysAndValues ...any)
	Info(msg string, keysAndValues ...any)
	Warn(msg string, keysAndValues ...any)
	Error(msg string, keysAndValues ...any)
}

// DebugConfig selects which events are logged when debugging is enabled.
type DebugConfig struct {
	Enabled      bool
	LogRequests  bool
	LogErrors    bool
	LogCallbacks bool
	RequestIDGen func() string
}

// DefaultDebugConfig returns a disabled config that logs every category once
// enabled and generates UUIDv4 request IDs.
func DefaultDebugConfig() *DebugConfig {
	return &DebugConfig{
		Enabled:      false,
		LogRequests:  true,
		LogErrors:    true,
		LogCallbacks: true,
		RequestIDGen: uuid.NewString,
	}
}

type zerologLogger struct {
	log zerolog.Logger
}

// NewZerologLogger adapts an existing zerolog.Logger.
func NewZerologLogger(log zerolog.Logger) Logger {
	return &zerologLogger{log: log}
}

// NewSimpleLogger logs human readable lines to stderr at debug level.
func NewSimpleLogger() Logger {
	return newConsoleLogger(os.Stderr)
}

func newConsoleLogger(w io.Writer) Logger {
	out := zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	return NewZerologLogger(zerolog.New(out).Level(zerolog.DebugLevel).With().Timestamp().Str("component", "reqkit").Logger())
}

func (l *zerologLogger) Debug(msg string, keysAndValues ...any) {
	l.log.Debug().Fields(keysAndValues).Msg(msg)
}

func (l *zerologLogger) Info(msg string, keysAndValues ...any) {
	l.log.Info().Fields(keysAndValues).Msg(msg)
}

func (l *zerologLogger) Warn(msg string, keysAndValues ...any) {
	l.log.Warn().Fields(keysAndValues).Msg(msg)
}

func (l *zerologLogger) Error(msg string, keysAndValues ...any) {
	l.log.Error().Fields(keysAndValues).Msg(msg)
}
