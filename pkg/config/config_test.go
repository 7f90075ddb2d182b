package config

import (
	"testing"
	"time"

	"github.com/keystonecrm/planner/pkg/dependencies"
	"github.com/keystonecrm/planner/pkg/observability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestGetEnv tests the getEnv helper function
func TestGetEnv(t *testing.T) {
	t.Setenv("PLANNER_TEST_VAR", "custom")
	assert.Equal(t, "custom", getEnv("PLANNER_TEST_VAR", "default"))
	assert.Equal(t, "default", getEnv("PLANNER_TEST_VAR_NOT_SET", "default"))
}

// TestGetEnvBool tests the getEnvBool helper function
func TestGetEnvBool(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"true", true},
		{"TRUE", true},
		{"1", true},
		{"false", false},
		{"yes", false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			t.Setenv("PLANNER_TEST_BOOL", tt.value)
			assert.Equal(t, tt.want, getEnvBool("PLANNER_TEST_BOOL", !tt.want))
		})
	}

	assert.True(t, getEnvBool("PLANNER_TEST_BOOL_NOT_SET", true))
}

// TestGetEnvInt tests the getEnvInt helper function
func TestGetEnvInt(t *testing.T) {
	t.Setenv("PLANNER_TEST_INT", "42")
	assert.Equal(t, 42, getEnvInt("PLANNER_TEST_INT", 7))

	t.Setenv("PLANNER_TEST_INT", "not-a-number")
	assert.Equal(t, 7, getEnvInt("PLANNER_TEST_INT", 7))
}

// TestGetEnvDuration tests the getEnvDuration helper function
func TestGetEnvDuration(t *testing.T) {
	t.Setenv("PLANNER_TEST_DURATION", "90s")
	assert.Equal(t, 90*time.Second, getEnvDuration("PLANNER_TEST_DURATION", time.Second))

	t.Setenv("PLANNER_TEST_DURATION", "soon")
	assert.Equal(t, time.Second, getEnvDuration("PLANNER_TEST_DURATION", time.Second))
}

// TestGetEnvList tests the getEnvList helper function
func TestGetEnvList(t *testing.T) {
	t.Setenv("PLANNER_TEST_LIST", "https://a.example.com, https://b.example.com,,")
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, getEnvList("PLANNER_TEST_LIST"))
	assert.Nil(t, getEnvList("PLANNER_TEST_LIST_NOT_SET"))
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "9090", cfg.Server.HealthPort)
	assert.Equal(t, 30*time.Second, cfg.Server.ShutdownTimeout)
	assert.Empty(t, cfg.Catalog.Dir)
	assert.False(t, cfg.Catalog.Watch)
	assert.Equal(t, dependencies.KeepOrphans, cfg.Catalog.RemovalPolicy())
	assert.Equal(t, SessionBackendMemory, cfg.Session.Backend)
	assert.Equal(t, 24*time.Hour, cfg.Session.TTL)
	assert.Equal(t, 10000, cfg.Session.CacheSize)
	assert.Equal(t, 600, cfg.RateLimit.PerMinute)
	assert.Equal(t, observability.InfoLevel, cfg.Observability.LogLevel)
	assert.True(t, cfg.Observability.MetricsEnabled)
	assert.False(t, cfg.Observability.OTelEnabled)
	assert.Equal(t, "localhost:4317", cfg.Observability.OTelEndpoint)
}

func TestLoadConfig_FromEnv(t *testing.T) {
	t.Setenv("PLANNER_PORT", "8000")
	t.Setenv("PLANNER_CATALOG_DIR", "/etc/planner")
	t.Setenv("PLANNER_CATALOG_WATCH", "true")
	t.Setenv("PLANNER_CATALOG_RELOAD_SCHEDULE", "@every 10m")
	t.Setenv("PLANNER_CASCADE_REMOVAL", "true")
	t.Setenv("PLANNER_SESSION_BACKEND", "Redis")
	t.Setenv("PLANNER_REDIS_URL", "redis://localhost:6379/2")
	t.Setenv("PLANNER_SESSION_TTL", "2h")
	t.Setenv("PLANNER_LOG_LEVEL", "debug")
	t.Setenv("PLANNER_OTEL_ENABLED", "1")
	t.Setenv("PLANNER_OTEL_ENDPOINT", "otel-collector:4317")
	t.Setenv("PLANNER_OTEL_INSECURE", "false")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8000", cfg.Server.Port)
	assert.Equal(t, "/etc/planner", cfg.Catalog.Dir)
	assert.True(t, cfg.Catalog.Watch)
	assert.Equal(t, "@every 10m", cfg.Catalog.ReloadSchedule)
	assert.Equal(t, dependencies.CascadeRemoval, cfg.Catalog.RemovalPolicy())
	assert.Equal(t, SessionBackendRedis, cfg.Session.Backend)
	assert.Equal(t, "redis://localhost:6379/2", cfg.Session.RedisURL)
	assert.Equal(t, 2*time.Hour, cfg.Session.TTL)
	assert.Equal(t, observability.DebugLevel, cfg.Observability.LogLevel)
	assert.True(t, cfg.Observability.OTelEnabled)
	assert.Equal(t, "otel-collector:4317", cfg.Observability.OTelEndpoint)
	assert.False(t, cfg.Observability.OTelInsecure)
}

func TestLoadConfig_InvalidLogLevel(t *testing.T) {
	t.Setenv("PLANNER_LOG_LEVEL", "chatty")
	_, err := LoadConfig()
	assert.Error(t, err)
}

func validConfig() *Config {
	return &Config{
		Server:  ServerConfig{Port: "8080", HealthPort: "9090"},
		Session: SessionConfig{Backend: SessionBackendMemory, TTL: time.Hour, CacheSize: 100},
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"valid", func(c *Config) {}, ""},
		{"missing port", func(c *Config) { c.Server.Port = "" }, "server port is required"},
		{"missing health port", func(c *Config) { c.Server.HealthPort = "" }, "health port is required"},
		{"same ports", func(c *Config) { c.Server.HealthPort = "8080" }, "must be different"},
		{"watch without dir", func(c *Config) { c.Catalog.Watch = true }, "requires PLANNER_CATALOG_DIR"},
		{"schedule without dir", func(c *Config) { c.Catalog.ReloadSchedule = "@hourly" }, "requires PLANNER_CATALOG_DIR"},
		{"zero cache size", func(c *Config) { c.Session.CacheSize = 0 }, "cache size must be positive"},
		{"redis without url", func(c *Config) { c.Session.Backend = SessionBackendRedis }, "redis URL is required"},
		{"redis with url", func(c *Config) {
			c.Session.Backend = SessionBackendRedis
			c.Session.RedisURL = "redis://localhost:6379"
		}, ""},
		{"unknown backend", func(c *Config) { c.Session.Backend = "postgres" }, "invalid session backend"},
		{"zero ttl", func(c *Config) { c.Session.TTL = 0 }, "session TTL must be positive"},
		{"otel without endpoint", func(c *Config) { c.Observability.OTelEnabled = true }, "OpenTelemetry endpoint is required"},
		{"negative rate limit", func(c *Config) { c.RateLimit.Burst = -1 }, "must not be negative"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
