package main

import (
	"io"
	"time"

	"github.com/rs/zerolog"
)

// newLogger returns a console logger at level. verbose forces debug.
func newLogger(out io.Writer, level string, verbose bool) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	if verbose {
		lvl = zerolog.DebugLevel
	}

	w := zerolog.ConsoleWriter{Out: out, TimeFormat: time.TimeOnly}
	return zerolog.New(w).Level(lvl).With().Timestamp().Logger()
}
