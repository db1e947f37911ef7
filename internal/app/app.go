// Package app wires together configuration, the logger, and the API client
// into a single Deps struct that commands receive at runtime.
package app

import (
	"log/slog"
	"os"

	"github.com/astrandb/vader/internal/config"
	"github.com/astrandb/vader/internal/smhi"
)

// Deps holds all runtime dependencies injected into command Run functions.
type Deps struct {
	Config *config.Config
	Logger *slog.Logger
	Client *smhi.Client
}

// New builds a Deps from resolved config. The logger writes to stderr so
// rendered output on stdout stays pipeable; --debug raises the level.
func New(cfg *config.Config) *Deps {
	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	client := smhi.NewClient(
		cfg.BaseURL,
		cfg.UserAgent,
		cfg.Timeout,
		cfg.Rate,
		logger,
		cfg.Debug,
	)
	return &Deps{
		Config: cfg,
		Logger: logger,
		Client: client,
	}
}
