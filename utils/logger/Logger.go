// Package logger configures the console logger shared by the command
// line tools
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/rs/zerolog"
)

// TimeFormat is the timestamp format of log lines
const TimeFormat = "2006-01-02T15:04:05.000Z07:00"

var once sync.Once
var log zerolog.Logger

// New returns a console logger writing to out at the given level
func New(out io.Writer, level zerolog.Level) zerolog.Logger {
	output := zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: TimeFormat,
	}
	return zerolog.New(output).Level(level).With().Timestamp().Logger()
}

func configureLogger(level zerolog.Level) {
	zerolog.TimeFieldFormat = TimeFormat
	log = New(os.Stderr, level)
}

// GetLoggerConfigured returns the shared logger, configuring it at level
// on first use
func GetLoggerConfigured(level zerolog.Level) *zerolog.Logger {
	once.Do(func() {
		configureLogger(level)
	})
	return &log
}

// GetLogger returns the shared logger, configuring it at the info level
// on first use
func GetLogger() *zerolog.Logger {
	return GetLoggerConfigured(zerolog.InfoLevel)
}

// ParseLevel parses a level name such as "debug" or "warn"
func ParseLevel(name string) (zerolog.Level, error) {
	level, err := zerolog.ParseLevel(name)
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("parseLevel: %w", err)
	}
	return level, nil
}
