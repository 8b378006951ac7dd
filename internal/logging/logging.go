package logging

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// SetupLogging builds the process logger. Unknown levels fall back to info.
func SetupLogging(level, format string) *logrus.Logger {
	var formatter logrus.Formatter = &logrus.JSONFormatter{
		FieldMap: logrus.FieldMap{
			logrus.FieldKeyLevel: "loglevel",
		},
	}
	if strings.EqualFold(format, "text") {
		formatter = &logrus.TextFormatter{FullTimestamp: true}
	}

	logLevel, err := logrus.ParseLevel(level)
	if err != nil {
		logLevel = logrus.InfoLevel
	}

	logger := &logrus.Logger{
		Formatter: formatter,
		Out:       os.Stdout,
		Hooks:     make(logrus.LevelHooks),
		Level:     logLevel,
	}

	return logger
}
