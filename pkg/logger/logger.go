// Package logger configures the service-wide zerolog instance.
package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Logger wraps zerolog.Logger
type Logger struct {
	zerolog.Logger
}

// New creates the root logger. Development builds get human-readable
// console output at debug level, everything else JSON at info level.
func New(serviceName string, environment string) *Logger {
	var output io.Writer = os.Stdout
	level := zerolog.InfoLevel

	if environment == "development" {
		output = zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: time.RFC3339,
		}
		level = zerolog.DebugLevel
	}

	logger := zerolog.New(output).
		Level(level).
		With().
		Timestamp().
		Str("service", serviceName).
		Logger()

	return &Logger{Logger: logger}
}

// WithComponent returns a logger with the component name attached
func (l *Logger) WithComponent(component string) *Logger {
	return &Logger{
		Logger: l.Logger.With().Str("component", component).Logger(),
	}
}

// WithOperation returns a logger tagged with the audited method name.
func (l *Logger) WithOperation(method string) *Logger {
	return &Logger{
		Logger: l.Logger.With().Str("operation", method).Logger(),
	}
}

// Output returns a copy of the logger writing to w. Used by tests to
// capture log lines.
func (l *Logger) Output(w io.Writer) *Logger {
	return &Logger{Logger: l.Logger.Output(w)}
}
