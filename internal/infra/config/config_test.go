package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("CALENDAR_LOCATION", "UTC")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "dev", cfg.Env)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "https://v2.api.noroff.dev", cfg.APIBaseURL)
	assert.Equal(t, BackendMemory, cfg.CacheBackend)
	assert.Equal(t, BackendMemory, cfg.SessionBackend)
	assert.Equal(t, time.Minute, cfg.IntervalCacheTTL)
	assert.Equal(t, time.UTC, cfg.Location)
	assert.Empty(t, cfg.KafkaBrokers)
}

func TestLoad_Overrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HOLIDAZE_API_URL", "http://localhost:9999/")
	t.Setenv("KAFKA_BROKERS", "a:9092, b:9092,")
	t.Setenv("CACHE_BACKEND", "Redis")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("SESSION_BACKEND", "mongo")
	t.Setenv("MONGO_URI", "mongodb://localhost:27017")
	t.Setenv("CALENDAR_LOCATION", "Europe/Oslo")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:9999", cfg.APIBaseURL)
	assert.Equal(t, []string{"a:9092", "b:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, BackendRedis, cfg.CacheBackend)
	assert.Equal(t, 3, cfg.RedisDB)
	assert.Equal(t, "Europe/Oslo", cfg.Location.String())
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"bad duration", map[string]string{"INTERVAL_CACHE_TTL": "soon"}},
		{"bad cache backend", map[string]string{"CACHE_BACKEND": "memcached"}},
		{"mongo without uri", map[string]string{"SESSION_BACKEND": "mongo"}},
		{"bad location", map[string]string{"CALENDAR_LOCATION": "Mars/Olympus"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Chdir(t.TempDir())
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
