package logging

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"

	"invex/internal/config"
)

// Setup configures the global logrus logger from cfg. Unknown levels fall back to info.
func Setup(cfg config.LogConfig) {
	SetupWithOutput(cfg, os.Stderr)
}

// SetupWithOutput is Setup with an explicit destination.
func SetupWithOutput(cfg config.LogConfig, out io.Writer) {
	switch strings.ToLower(cfg.Format) {
	case "json":
		logrus.SetFormatter(&logrus.JSONFormatter{
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyTime:  "timestamp",
				logrus.FieldKeyLevel: "level",
				logrus.FieldKeyMsg:   "message",
			},
		})
	default:
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	logrus.SetOutput(out)

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
}
