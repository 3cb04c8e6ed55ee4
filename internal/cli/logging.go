package cli

import (
	"io"
	"log/slog"
	"strings"

	"github.com/ai8future/lcrm/internal/config"
)

// NewLogger builds the command logger from config values and installs it as
// the slog default. Logs always go to w (stderr) so stdout stays pure JSON.
func NewLogger(w io.Writer, cfg config.LoggingConfig) *slog.Logger {
	level := slog.LevelWarn
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "error":
		level = slog.LevelError
	}
	if cfg.Verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if strings.ToLower(cfg.Format) == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}
