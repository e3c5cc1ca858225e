// Package config reads server settings from the environment.
package config

import (
	"os"
	"strconv"
)

// Config holds the server settings.
type Config struct {
	// Addr is the listen address, e.g. ":8080".
	Addr string
	// RedisAddr enables the action audit trail when non-empty.
	RedisAddr string
	// LogLevel is a logrus level name ("debug", "info", ...).
	LogLevel string
	// MinPlayers is the seat count at which the table auto-starts.
	MinPlayers int
}

// Load reads the configuration from environment variables, applying
// defaults for anything unset.
func Load() Config {
	cfg := Config{
		Addr:       ":8080",
		RedisAddr:  os.Getenv("REDIS_ADDR"),
		LogLevel:   "info",
		MinPlayers: 2,
	}
	if p := os.Getenv("PORT"); p != "" {
		cfg.Addr = ":" + p
	}
	if a := os.Getenv("ADDR"); a != "" {
		cfg.Addr = a
	}
	if l := os.Getenv("LOG_LEVEL"); l != "" {
		cfg.LogLevel = l
	}
	if m := os.Getenv("MIN_PLAYERS"); m != "" {
		if n, err := strconv.Atoi(m); err == nil && n >= 2 {
			cfg.MinPlayers = n
		}
	}
	return cfg
}
