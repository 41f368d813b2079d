package logger

import (
	"os"

	"github.com/sirupsen/logrus"
)

// NewLogger builds the process-wide logrus logger. JSON output is the
// default; LOG_FORMAT=text switches to the text formatter for local runs.
func NewLogger(logLevel string) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stdout)

	if os.Getenv("LOG_FORMAT") == "text" {
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		l.SetFormatter(&logrus.JSONFormatter{})
	}

	l.SetLevel(getLogLevel(logLevel))
	return l
}

func getLogLevel(level string) logrus.Level {
	switch level {
	case "info":
		return logrus.InfoLevel
	case "warn":
		return logrus.WarnLevel
	case "error":
		return logrus.ErrorLevel
	default:
		return logrus.DebugLevel
	}
}
