package cliconfig

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

var logger zerolog.Logger

func init() {
	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	logger = zerolog.New(output).With().Timestamp().Logger().Level(zerolog.ErrorLevel)
}

// Logger returns the package logger. The default level is error so a normal
// run stays quiet; verbose mode lowers it to debug.
func Logger() zerolog.Logger {
	return logger
}
