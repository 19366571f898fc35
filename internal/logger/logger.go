// Package logger builds the logrus logger used by the CLI.
package logger

import (
	"io"

	"github.com/sirupsen/logrus"
)

// New returns a text logger writing to out. Unknown levels fall back to info.
func New(level string, out io.Writer) *logrus.Logger {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	log.SetLevel(lvl)
	log.SetOutput(out)
	return log
}
