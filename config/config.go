package config

import (
	"time"

	"github.com/devmarvs/pagegate/credential"
	"github.com/devmarvs/pagegate/rights"
)

// SessionConfig selects and tunes the session backend.
type SessionConfig struct {
	// Backend is one of memory|postgres|redis.
	Backend string        `json:"backend"`
	TTL     time.Duration `json:"ttl"`

	// Postgres settings.
	DSN     string        `json:"dsn"`
	Table   string        `json:"table"`
	Timeout time.Duration `json:"timeout"`

	// Redis settings.
	Address string `json:"address"`
	Prefix  string `json:"prefix"`
}

// Config holds site authorization configuration. Users is the nested
// group tree with bcrypt hashes at its leaves; Rights keeps its
// declaration order, which is part of the access contract.
type Config struct {
	BaseURL string           `json:"base_url"`
	Users   credential.Group `json:"users"`
	Rights  rights.Rules     `json:"rights"`

	Session SessionConfig `json:"session"`

	LogLevel  string `json:"log_level"`
	LogFormat string `json:"log_format"`
}

// Default returns safe defaults. Users and Rights stay empty: an empty
// tree accepts no login and empty rights authorize everything.
func Default() Config {
	return Config{
		BaseURL: "/",
		Session: SessionConfig{
			Backend: "memory",
			TTL:     24 * time.Hour,
			Table:   "",
			Timeout: 2 * time.Second,
		},
		LogLevel:  "info",
		LogFormat: "text",
	}
}
