package logger

import (
	"os"

	"github.com/sirupsen/logrus"
)

var log *logrus.Logger

// Init configures the process-wide logger. Release mode emits JSON for log
// collectors; everything else gets human-readable text.
func Init(ginMode string) *logrus.Logger {
	log = logrus.New()
	log.SetOutput(os.Stdout)

	if ginMode == "release" {
		log.SetLevel(logrus.InfoLevel)
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetLevel(logrus.DebugLevel)
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	return log
}

// Get returns the configured logger, initializing a default one if needed.
func Get() *logrus.Logger {
	if log == nil {
		return Init("debug")
	}
	return log
}
