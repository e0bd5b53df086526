package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/Logical-Byte/endfield-essence-recognizer/internal/backend"
	"github.com/Logical-Byte/endfield-essence-recognizer/internal/config"
	"github.com/Logical-Byte/endfield-essence-recognizer/internal/locale"
	"github.com/Logical-Byte/endfield-essence-recognizer/internal/polling"
	"github.com/Logical-Byte/endfield-essence-recognizer/internal/prefs"
	"github.com/Logical-Byte/endfield-essence-recognizer/internal/staticdata"
	"github.com/Logical-Byte/endfield-essence-recognizer/internal/update"
)

// Session owns one instance of every client component. Hosts create one per
// process and Close it on exit.
type Session struct {
	Client  *backend.Client
	Prefs   prefs.Store
	Polling *polling.Controller
	Static  *staticdata.Cache
	Updates *update.Checker
	Locale  *locale.Store

	logger *zap.Logger
}

// NewSession wires the components described by cfg.
func NewSession(ctx context.Context, cfg config.Config, logger *zap.Logger) (*Session, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	client, err := backend.NewClient(cfg.APIBind, backend.WithLogger(logger.Named("backend")))
	if err != nil {
		return nil, fmt.Errorf("init backend client: %w", err)
	}

	store, err := prefs.Open(ctx, prefs.Options{
		Backend:   cfg.StorageBackend,
		Path:      cfg.PrefsPath,
		RedisAddr: cfg.RedisAddr,
		RedisDB:   cfg.RedisDB,
	})
	if err != nil {
		return nil, fmt.Errorf("open prefs: %w", err)
	}

	poller, err := polling.New(ctx, polling.Options{
		Fetcher:  client,
		Prefs:    store,
		Interval: cfg.PollInterval,
		Logger:   logger.Named("polling"),
	})
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("init polling: %w", err)
	}

	fallback, err := locale.ParseCode(cfg.Language)
	if err != nil && cfg.Language != "" {
		logger.Debug("ignore configured language", zap.String("value", cfg.Language), zap.Error(err))
	}

	s := &Session{
		Client:  client,
		Prefs:   store,
		Polling: poller,
		Static:  staticdata.New(client, staticdata.WithLogger(logger.Named("staticdata"))),
		Updates: update.NewChecker(client, cfg.ReleaseURL, update.WithLogger(logger.Named("update"))),
		Locale:  locale.NewStore(ctx, store, fallback, logger.Named("locale")),
		logger:  logger,
	}
	logger.Info("session ready",
		zap.String("api", cfg.APIBind),
		zap.String("storage", cfg.StorageBackend),
		zap.Bool("polling_enabled", poller.Enabled()),
		zap.String("language", string(s.Locale.Current())),
	)
	return s, nil
}

// Close stops polling and releases the preference store.
func (s *Session) Close() error {
	s.Polling.Close()
	if err := s.Prefs.Close(); err != nil {
		return fmt.Errorf("close prefs: %w", err)
	}
	return nil
}
