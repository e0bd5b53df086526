package app

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Logical-Byte/endfield-essence-recognizer/internal/config"
	"github.com/Logical-Byte/endfield-essence-recognizer/internal/logging"
	"github.com/Logical-Byte/endfield-essence-recognizer/internal/ui"
)

// Options configure the host program.
type Options struct {
	ConfigPath string
	PollEvery  int // seconds; zero keeps the configured interval
}

// Run boots the TUI until the user quits or the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if opts.PollEvery > 0 {
		cfg.PollInterval = time.Duration(opts.PollEvery) * time.Second
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat, cfg.LogPath)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	session, err := NewSession(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := session.Close(); err != nil {
			logger.Warn("close session", zap.Error(err))
		}
	}()

	return ui.Run(ctx, ui.Options{
		Context: ctx,
		Polling: session.Polling,
		Static:  session.Static,
		Updates: session.Updates,
		Locale:  session.Locale,
		Logger:  logger.Named("ui"),
		LogPath: cfg.LogPath,
	})
}
