package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	toml "github.com/pelletier/go-toml/v2"

	"github.com/Logical-Byte/endfield-essence-recognizer/internal/update"
)

// Config captures everything the client layer needs to reach the backend and
// persist its preferences.
type Config struct {
	APIBind      string        `env:"EER_API_BIND"`
	ReleaseURL   string        `env:"EER_RELEASE_URL"`
	PollInterval time.Duration `env:"EER_POLL_INTERVAL"`

	// Language seeds the display language when none is stored. It accepts a
	// game code ("EN") or a locale such as "en_US.UTF-8"; empty falls back to
	// $LANG.
	Language string `env:"EER_LANGUAGE"`

	StorageBackend string `env:"EER_STORAGE_BACKEND"`
	PrefsPath      string `env:"EER_PREFS_PATH"`
	RedisAddr      string `env:"EER_REDIS_ADDR"`
	RedisDB        int    `env:"EER_REDIS_DB"`

	LogLevel  string `env:"EER_LOG_LEVEL"`
	LogFormat string `env:"EER_LOG_FORMAT"`
	LogPath   string `env:"EER_LOG_PATH"`
}

const (
	defaultConfigPath     = "~/.config/eer/config.toml"
	defaultAPIBind        = "localhost:325"
	defaultReleaseURL     = update.DefaultReleaseURL
	defaultPollInterval   = time.Second
	defaultStorageBackend = "file"
	defaultPrefsPath      = "~/.config/eer/prefs.toml"
	defaultLogLevel       = "info"
	defaultLogFormat      = "console"
	defaultLogPath        = "~/.local/share/eer/client.log"
)

// Default returns the configuration used when no file or environment
// overrides are present.
func Default() Config {
	return Config{
		APIBind:        defaultAPIBind,
		ReleaseURL:     defaultReleaseURL,
		PollInterval:   defaultPollInterval,
		StorageBackend: defaultStorageBackend,
		PrefsPath:      mustExpand(defaultPrefsPath),
		LogLevel:       defaultLogLevel,
		LogFormat:      defaultLogFormat,
		LogPath:        mustExpand(defaultLogPath),
	}
}

// Load reads the TOML config at path (default ~/.config/eer/config.toml),
// falls back to defaults when it is missing, then applies EER_* environment
// overrides.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	bytes, err := readFile(resolved)
	if err != nil {
		return Config{}, err
	}
	if bytes != nil {
		if err := applyFile(&cfg, bytes); err != nil {
			return Config{}, err
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	cfg.normalize()

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func readFile(path string) ([]byte, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return bytes, nil
}

func applyFile(cfg *Config, bytes []byte) error {
	var raw struct {
		APIBind      string `toml:"api_bind"`
		ReleaseURL   string `toml:"release_url"`
		PollInterval string `toml:"poll_interval"`
		Language     string `toml:"language"`
		Storage      struct {
			Backend   string `toml:"backend"`
			Path      string `toml:"path"`
			RedisAddr string `toml:"redis_addr"`
			RedisDB   int    `toml:"redis_db"`
		} `toml:"storage"`
		Log struct {
			Level  string `toml:"level"`
			Format string `toml:"format"`
			Path   string `toml:"path"`
		} `toml:"log"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}

	setIfPresent(&cfg.APIBind, raw.APIBind)
	setIfPresent(&cfg.ReleaseURL, raw.ReleaseURL)
	if interval := strings.TrimSpace(raw.PollInterval); interval != "" {
		d, err := time.ParseDuration(interval)
		if err != nil {
			return fmt.Errorf("parse config: poll_interval %q: %w", raw.PollInterval, err)
		}
		cfg.PollInterval = d
	}
	setIfPresent(&cfg.Language, raw.Language)
	setIfPresent(&cfg.StorageBackend, raw.Storage.Backend)
	setIfPresent(&cfg.PrefsPath, raw.Storage.Path)
	setIfPresent(&cfg.RedisAddr, raw.Storage.RedisAddr)
	if raw.Storage.RedisDB != 0 {
		cfg.RedisDB = raw.Storage.RedisDB
	}
	setIfPresent(&cfg.LogLevel, raw.Log.Level)
	setIfPresent(&cfg.LogFormat, raw.Log.Format)
	setIfPresent(&cfg.LogPath, raw.Log.Path)
	return nil
}

func setIfPresent(dst *string, value string) {
	if trimmed := strings.TrimSpace(value); trimmed != "" {
		*dst = trimmed
	}
}

func (c *Config) normalize() {
	c.APIBind = strings.TrimSpace(c.APIBind)
	if c.APIBind == "" {
		c.APIBind = defaultAPIBind
	}
	c.ReleaseURL = strings.TrimSpace(c.ReleaseURL)
	if c.ReleaseURL == "" {
		c.ReleaseURL = defaultReleaseURL
	}
	c.Language = strings.TrimSpace(c.Language)
	if c.Language == "" {
		c.Language = strings.TrimSpace(os.Getenv("LANG"))
	}
	c.StorageBackend = strings.ToLower(strings.TrimSpace(c.StorageBackend))
	if c.StorageBackend == "" {
		c.StorageBackend = defaultStorageBackend
	}
	c.PrefsPath = mustExpand(c.PrefsPath)
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	c.LogFormat = strings.ToLower(strings.TrimSpace(c.LogFormat))
	if c.LogPath = strings.TrimSpace(c.LogPath); c.LogPath != "" {
		c.LogPath = mustExpand(c.LogPath)
	}
}

// Validate reports configuration values the client cannot work with.
func (c Config) Validate() error {
	if c.PollInterval <= 0 {
		return fmt.Errorf("poll interval must be positive, got %s", c.PollInterval)
	}
	switch c.StorageBackend {
	case "file", "memory":
	case "redis":
		if strings.TrimSpace(c.RedisAddr) == "" {
			return fmt.Errorf("redis storage requires redis_addr")
		}
	default:
		return fmt.Errorf("unknown storage backend %q", c.StorageBackend)
	}
	switch c.LogFormat {
	case "", "console", "json":
	default:
		return fmt.Errorf("unknown log format %q", c.LogFormat)
	}
	return nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
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
