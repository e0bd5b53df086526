// Package prefs persists small client preferences in a durable key-value store.
// The default backend is a TOML file at ~/.config/eer/prefs.toml.
package prefs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Keys shared with the web client's local storage.
const (
	KeyLanguage       = "app-language"
	KeyPollingEnabled = "scanningStatusPollingEnabled"
)

// Store abstracts durable string key-value state.
// Implementations: TOML file (default), in-memory (tests, ephemeral hosts) or Redis.
type Store interface {
	// Get returns the stored value and whether the key exists.
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Close() error
}

// Backend names accepted by Open.
const (
	BackendFile   = "file"
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

// Options select and configure a Store backend.
type Options struct {
	Backend   string
	Path      string // file backend; empty uses DefaultPath
	RedisAddr string
	RedisDB   int
}

const defaultPrefsPath = "~/.config/eer/prefs.toml"

// DefaultPath returns the default preferences file path.
func DefaultPath() string {
	return defaultPrefsPath
}

// Open builds the Store selected by opts.Backend.
func Open(ctx context.Context, opts Options) (Store, error) {
	switch strings.ToLower(strings.TrimSpace(opts.Backend)) {
	case "", BackendFile:
		return OpenFile(opts.Path)
	case BackendMemory:
		return NewMemoryStore(), nil
	case BackendRedis:
		return OpenRedis(ctx, opts.RedisAddr, opts.RedisDB)
	default:
		return nil, fmt.Errorf("unknown prefs backend %q", opts.Backend)
	}
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultPrefsPath)
	}
	return expandPath(path)
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
