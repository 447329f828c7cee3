package logger

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// EnvLevel names the environment variable that overrides the log level.
const EnvLevel = "N85_DEBUG"

// New returns a logger writing to w. Only warnings and errors are logged
// unless verbose is set or EnvLevel names another level.
func New(w io.Writer, verbose bool) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(w)
	l.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	l.SetLevel(logrus.WarnLevel)
	if verbose {
		l.SetLevel(logrus.DebugLevel)
	}

	if level := os.Getenv(EnvLevel); level != "" {
		switch strings.ToLower(level) {
		case "info":
			l.SetLevel(logrus.InfoLevel)
		case "warn":
			l.SetLevel(logrus.WarnLevel)
		case "error":
			l.SetLevel(logrus.ErrorLevel)
		default:
			l.SetLevel(logrus.DebugLevel)
		}
		l.WithField("level", l.GetLevel()).Debug("Logging enabled.")
	}
	return l
}

// Discard returns a logger that drops everything.
func Discard() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	l.SetLevel(logrus.PanicLevel)
	return l
}
