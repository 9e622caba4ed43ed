package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate validates config values. Rights rules with scopes that do
// not resolve in the users tree are configuration errors and fatal at
// startup, never handled per request.
func Validate(cfg Config) error {
	var issues []string

	switch strings.ToLower(cfg.Session.Backend) {
	case "", "memory", "postgres", "redis":
	default:
		issues = append(issues, "session.backend must be one of memory|postgres|redis")
	}
	if cfg.Session.TTL < 0 {
		issues = append(issues, "session.ttl must be >= 0")
	}
	if cfg.Session.Timeout < 0 {
		issues = append(issues, "session.timeout must be >= 0")
	}
	if strings.EqualFold(cfg.Session.Backend, "postgres") && cfg.Session.DSN == "" {
		issues = append(issues, "session.dsn is required for the postgres backend")
	}

	for i, rule := range cfg.Rights {
		if rule.Scope == "" {
			issues = append(issues, fmt.Sprintf("rights[%d] (%q): scope is empty", i, rule.Path))
			continue
		}
		if _, ok := cfg.Users.Resolve(rule.Scope); !ok {
			issues = append(issues, fmt.Sprintf("rights[%d] (%q): scope %q does not resolve in users", i, rule.Path, rule.Scope))
		}
	}

	if cfg.LogLevel != "" && !validLogLevel(cfg.LogLevel) {
		issues = append(issues, "log_level must be one of debug|info|warn|error")
	}
	if cfg.LogFormat != "" && !validLogFormat(cfg.LogFormat) {
		issues = append(issues, "log_format must be one of text|json")
	}

	if len(issues) > 0 {
		return errors.New(strings.Join(issues, "; "))
	}
	return nil
}

func validLogLevel(level string) bool {
	switch strings.ToLower(level) {
	case "debug", "info", "warn", "error":
		return true
	default:
		return false
	}
}

func validLogFormat(format string) bool {
	switch strings.ToLower(format) {
	case "text", "json":
		return true
	default:
		return false
	}
}
