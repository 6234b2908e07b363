package config

import (
	"context"
	"os"
	"strings"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"
)

var Logger = logrus.New()

// Init configures the shared logger from LOG_LEVEL and LOG_FORMAT.
func Init() {
	Logger.SetOutput(os.Stdout)

	level, err := logrus.ParseLevel(strings.TrimSpace(os.Getenv("LOG_LEVEL")))
	if err != nil {
		level = logrus.InfoLevel
	}
	Logger.SetLevel(level)

	format := strings.ToLower(strings.TrimSpace(os.Getenv("LOG_FORMAT")))
	switch {
	case format == "json":
		Logger.SetFormatter(&logrus.JSONFormatter{})
	case format == "text":
		Logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	case isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()):
		Logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	default:
		Logger.SetFormatter(&logrus.JSONFormatter{})
	}
}

func WithContext(ctx context.Context) logrus.FieldLogger {
	entry := logrus.NewEntry(Logger)
	if ctx == nil {
		return entry
	}
	if reqID := middleware.GetReqID(ctx); reqID != "" {
		return entry.WithField("request_id", reqID)
	}
	return entry
}
