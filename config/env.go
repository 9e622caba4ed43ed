package config

import (
	"os"
	"time"
)

// LoadFromEnv applies environment overrides with a prefix (e.g.
// PAGEGATE_). The users tree and rights rules only come from files.
func LoadFromEnv(prefix string, base Config) Config {
	get := func(key string) string { return os.Getenv(prefix + key) }

	if value := get("BASE_URL"); value != "" {
		base.BaseURL = value
	}
	if value := get("SESSION_BACKEND"); value != "" {
		base.Session.Backend = value
	}
	if value := get("SESSION_TTL"); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			base.Session.TTL = d
		}
	}
	if value := get("SESSION_DSN"); value != "" {
		base.Session.DSN = value
	}
	if value := get("SESSION_TABLE"); value != "" {
		base.Session.Table = value
	}
	if value := get("SESSION_TIMEOUT"); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			base.Session.Timeout = d
		}
	}
	if value := get("SESSION_ADDRESS"); value != "" {
		base.Session.Address = value
	}
	if value := get("SESSION_PREFIX"); value != "" {
		base.Session.Prefix = value
	}
	if value := get("LOG_LEVEL"); value != "" {
		base.LogLevel = value
	}
	if value := get("LOG_FORMAT"); value != "" {
		base.LogFormat = value
	}

	return base
}
