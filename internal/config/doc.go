// Package config loads the client's settings.
//
// # Resolution Order
//
// Load builds a Config in three layers:
//
//  1. Built-in defaults (see Default)
//  2. The TOML file at the given path, or ~/.config/eer/config.toml
//  3. EER_* environment variables, parsed with caarlos0/env
//
// A missing config file is not an error. Empty or whitespace-only values in
// the file keep the default.
//
// # Default Values
//
//   - API endpoint: localhost:325
//   - Release URL: the published version.json for the recognizer
//   - Poll interval: 1s
//   - Language: $LANG, used only when no language is stored
//   - Preferences: file backend at ~/.config/eer/prefs.toml
//   - Log: info level, console format, ~/.local/share/eer/client.log
//
// # TOML Format
//
//	api_bind = "localhost:325"
//	release_url = "https://example.com/version.json"
//	poll_interval = "1s"
//	language = "EN"         # game code or locale, default $LANG
//
//	[storage]
//	backend = "file"        # file | memory | redis
//	path = "~/.config/eer/prefs.toml"
//	redis_addr = "localhost:6379"
//	redis_db = 0
//
//	[log]
//	level = "info"
//	format = "console"      # console | json
//	path = "~/.local/share/eer/client.log"
//
// # Environment
//
//   - EER_API_BIND, EER_RELEASE_URL, EER_POLL_INTERVAL, EER_LANGUAGE
//   - EER_STORAGE_BACKEND, EER_PREFS_PATH, EER_REDIS_ADDR, EER_REDIS_DB
//   - EER_LOG_LEVEL, EER_LOG_FORMAT, EER_LOG_PATH
//
// Load validates the merged result and returns an error for a non-positive
// poll interval, an unknown storage backend, a redis backend without an
// address, or an unknown log format.
package config
