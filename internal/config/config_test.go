package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("ADDR", "")
	t.Setenv("REDIS_ADDR", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("MIN_PLAYERS", "")

	cfg := Load()
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "", cfg.RedisAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 2, cfg.MinPlayers)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("MIN_PLAYERS", "4")

	cfg := Load()
	assert.Equal(t, ":9000", cfg.Addr)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 4, cfg.MinPlayers)
}

func TestLoadAddrOverridesPort(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("ADDR", "127.0.0.1:7777")

	cfg := Load()
	assert.Equal(t, "127.0.0.1:7777", cfg.Addr)
}

func TestLoadRejectsBadMinPlayers(t *testing.T) {
	t.Setenv("MIN_PLAYERS", "1")
	assert.Equal(t, 2, Load().MinPlayers)

	t.Setenv("MIN_PLAYERS", "banana")
	assert.Equal(t, 2, Load().MinPlayers)
}
