package logging

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// Setup returns the process logger. It writes text to out (stderr when nil)
// so that stdout carries only the report.
func Setup(out io.Writer, debug bool) *logrus.Logger {
	if out == nil {
		out = os.Stderr
	}
	level := logrus.InfoLevel
	if debug {
		level = logrus.DebugLevel
	}

	return &logrus.Logger{
		Formatter: &logrus.TextFormatter{
			DisableColors:    true,
			FullTimestamp:    true,
			QuoteEmptyFields: true,
		},
		Hooks: make(logrus.LevelHooks),
		Out:   out,
		Level: level,
	}
}

// Discard returns a logger that drops everything.
func Discard() *logrus.Logger {
	logger := logrus.New()
	logger.Out = io.Discard
	logger.Level = logrus.PanicLevel
	return logger
}
