// Package logging builds the process logger used by the command line tools.
package logging

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

// New returns a logger at level ("debug", "info", "warn", ...). Unknown
// levels fall back to info. Output is human-friendly console text when
// console is set or the level is debug, JSON otherwise. A nil out writes to
// stderr.
func New(level string, console bool, out io.Writer) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	if out == nil {
		out = os.Stderr
	}

	writer := out
	if console || lvl == zerolog.DebugLevel {
		writer = zerolog.ConsoleWriter{Out: out, TimeFormat: "15:04:05"}
	}

	return zerolog.New(writer).
		Level(lvl).
		With().
		Timestamp().
		Caller().
		Logger()
}
