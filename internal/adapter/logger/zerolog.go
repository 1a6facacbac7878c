package logger

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Zerolog writes structured log messages to stderr via zerolog's console
// writer. It satisfies domain.Logger so the app service stays mockable.
type Zerolog struct {
	log zerolog.Logger
}

// New creates a stderr console logger.
func New() *Zerolog {
	zl := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}).
		With().Timestamp().Logger()
	return &Zerolog{log: zl}
}

// Info logs an informational message with key-value pairs.
func (l *Zerolog) Info(msg string, args ...any) {
	emit(l.log.Info(), msg, args)
}

// Warn logs a warning with key-value pairs.
func (l *Zerolog) Warn(msg string, args ...any) {
	emit(l.log.Warn(), msg, args)
}

// Error logs an error message with key-value pairs.
func (l *Zerolog) Error(msg string, args ...any) {
	emit(l.log.Error(), msg, args)
}

func emit(e *zerolog.Event, msg string, args []any) {
	for i := 0; i+1 < len(args); i += 2 {
		key, ok := args[i].(string)
		if !ok {
			key = fmt.Sprint(args[i])
		}
		e = e.Interface(key, args[i+1])
	}
	e.Msg(msg)
}
