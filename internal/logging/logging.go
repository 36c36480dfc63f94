// Package logging configures the application-wide logrus logger.
package logging

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// SetupLogging returns a JSON logger writing to stdout at the given level.
// Unknown levels fall back to info.
func SetupLogging(level string) *logrus.Logger {
	return newLogger(os.Stdout, level)
}

func newLogger(out io.Writer, level string) *logrus.Logger {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}

	logger := logrus.Logger{
		Formatter: &logrus.JSONFormatter{
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyLevel: "loglevel",
			},
		},
		Out:      out,
		Level:    lvl,
		Hooks:    make(logrus.LevelHooks),
		ExitFunc: os.Exit,
	}

	return &logger
}

// Discard returns a logger that drops everything. Used by tests.
func Discard() *logrus.Logger {
	return newLogger(io.Discard, "panic")
}
