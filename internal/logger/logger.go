// Package logger configures zerolog for CapyDiary binaries.
//
// Logs go to stderr; stdout is reserved for command output.
package logger

import (
	"io"
	"os"
	"sync"

	pkgerrors "github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	zpkgerrors "github.com/rs/zerolog/pkgerrors"
)

type stackTracer interface{ StackTrace() pkgerrors.StackTrace }

var installOnce sync.Once

// installMarshalers makes .Stack() work for plain errors by attaching a
// pkg/errors stack on demand.
func installMarshalers() {
	installOnce.Do(func() {
		zerolog.ErrorStackMarshaler = func(err error) interface{} {
			if _, ok := err.(stackTracer); !ok {
				err = pkgerrors.WithStack(err)
			}
			return zpkgerrors.MarshalStack(err)
		}
	})
}

// New returns a JSON logger on stderr tagged with service.
func New(service string) zerolog.Logger {
	return NewWithWriter(os.Stderr, service)
}

// NewWithWriter is New with an explicit sink.
func NewWithWriter(w io.Writer, service string) zerolog.Logger {
	installMarshalers()
	return zerolog.New(w).With().
		Str("service", service).
		Timestamp().
		Logger()
}

// InitConsole points the global logger at a human-readable writer on w and
// sets the global level.
func InitConsole(w io.Writer, level zerolog.Level) zerolog.Logger {
	installMarshalers()
	zerolog.SetGlobalLevel(level)
	log.Logger = zerolog.New(zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: "2006-01-02 15:04:05",
		NoColor:    true,
	}).With().Timestamp().Logger()
	return log.Logger
}
