package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, key := range []string{"APP_PORT", "CORS_ORIGINS", "ORDER_SNAPSHOT", "CACHE_TTL_SECONDS", "RATE_LIMIT_PER_MINUTE"} {
		t.Setenv(key, "")
	}
	cfg := LoadConfig()
	assert.Equal(t, "8080", cfg.AppPort)
	assert.True(t, cfg.OrderSnapshot)
	assert.Equal(t, time.Minute, cfg.CacheTTL)
	assert.Equal(t, 30, cfg.RateLimitPerMinute)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORSOrigins)
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("ORDER_SNAPSHOT", "false")
	t.Setenv("CACHE_TTL_SECONDS", "5")
	t.Setenv("RATE_LIMIT_PER_MINUTE", "abc")
	t.Setenv("CORS_ORIGINS", "https://a.example, ,https://b.example")
	cfg := LoadConfig()
	assert.False(t, cfg.OrderSnapshot)
	assert.Equal(t, 5*time.Second, cfg.CacheTTL)
	assert.Equal(t, 30, cfg.RateLimitPerMinute)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
}

func TestDSN(t *testing.T) {
	cfg := &Config{DBUser: "u", DBPassword: "p", DBHost: "db", DBPort: "3306", DBName: "lamps"}
	assert.Equal(t, "u:p@tcp(db:3306)/lamps?parseTime=true", cfg.DSN())
}
