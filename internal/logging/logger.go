// Package logging configures the process-wide logrus logger.
package logging

import (
	"strings"

	"github.com/sirupsen/logrus"

	"arrurru-functions/internal/config"
)

// Setup applies level and format from cfg to the standard logrus logger.
// An unknown level falls back to info.
func Setup(cfg config.LogConfig) {
	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
	logrus.SetFormatter(NewFormatter(cfg.Format))

	if err != nil && cfg.Level != "" {
		logrus.WithField("level", cfg.Level).Warn("Unknown log level, using info")
	}
}

// NewFormatter returns the formatter for the given format name
func NewFormatter(format string) logrus.Formatter {
	if strings.EqualFold(format, "text") {
		return &logrus.TextFormatter{FullTimestamp: true}
	}
	return &logrus.JSONFormatter{
		FieldMap: logrus.FieldMap{
			logrus.FieldKeyMsg: "message",
		},
	}
}
