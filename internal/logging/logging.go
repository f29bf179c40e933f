package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// New creates a logger writing to path (appending). The returned closer releases the file.
// An empty path discards output, since the terminal belongs to the UI.
func New(path, level string) (*logrus.Logger, io.Closer, error) {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
		DisableColors:   true,
	})
	logger.SetLevel(ParseLevel(level))

	if path == "" {
		logger.SetOutput(io.Discard)
		return logger, io.NopCloser(nil), nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		logger.SetOutput(io.Discard)
		return logger, io.NopCloser(nil), fmt.Errorf("could not open log file: %w", err)
	}
	logger.SetOutput(f)
	return logger, f, nil
}

// ParseLevel maps a config level name to a logrus level, defaulting to info
func ParseLevel(level string) logrus.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return logrus.DebugLevel
	case "info":
		return logrus.InfoLevel
	case "warn", "warning":
		return logrus.WarnLevel
	case "error":
		return logrus.ErrorLevel
	default:
		return logrus.InfoLevel
	}
}

// Discard returns a logger that drops everything
func Discard() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}
