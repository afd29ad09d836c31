package cli

import (
	"io"
	"log/slog"

	"github.com/aretw0/easel/internal/config"
	"github.com/aretw0/easel/internal/logging"
)

// NewLogger builds the application logger from cfg. Debug forces the debug level.
func NewLogger(w io.Writer, cfg config.LogConfig, debug bool) *slog.Logger {
	level := logging.ParseLevel(cfg.Level)
	if debug {
		level = slog.LevelDebug
	}
	return logging.NewWithWriter(w, level, cfg.JSON)
}
