package logger

import "codeberg.org/mutker/errbridge/internal/errors"

// Logger defines the interface for logging operations.
type Logger interface {
	Debug() *LogEvent
	Info() *LogEvent
	Warn() *LogEvent
	Error() *LogEvent
	ErrorWithCode(err errors.Error) *LogEvent
}

type packageLogger struct{}

// Get returns a Logger backed by the package-level logger.
func Get() Logger {
	return packageLogger{}
}

func (packageLogger) Debug() *LogEvent { return Debug() }

func (packageLogger) Info() *LogEvent { return Info() }

func (packageLogger) Warn() *LogEvent { return Warn() }

func (packageLogger) Error() *LogEvent { return Error() }

func (packageLogger) ErrorWithCode(err errors.Error) *LogEvent { return ErrorWithCode(err) }
