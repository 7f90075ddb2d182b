package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/keystonecrm/planner/pkg/dependencies"
	"github.com/keystonecrm/planner/pkg/observability"
)

// Session store backends
const (
	SessionBackendMemory = "memory"
	SessionBackendRedis  = "redis"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	Server ServerConfig

	// Catalog configuration
	Catalog CatalogConfig

	// Session configuration
	Session SessionConfig

	// Rate limiting
	RateLimit RateLimitConfig

	// Observability configuration
	Observability ObservabilityConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host            string
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
	CORSOrigins     []string

	// Health/metrics server (separate port for k8s probes)
	HealthPort string
}

// CatalogConfig says where the module and bundle documents come from
type CatalogConfig struct {
	// Dir holds modules.yaml and bundles.yaml. Empty means the built-in catalog.
	Dir string
	// Watch reloads the catalog when the files in Dir change
	Watch bool
	// ReloadSchedule is a cron expression for periodic reloads from Dir
	ReloadSchedule string
	// CascadeRemoval removes dependents when a module is toggled off
	CascadeRemoval bool
}

// SessionConfig holds configuration session storage settings
type SessionConfig struct {
	Backend   string
	TTL       time.Duration
	CacheSize int

	RedisURL      string
	RedisPassword string
	RedisDB       int
	RedisPoolSize int
}

// RateLimitConfig holds per-client request limits. PerMinute 0 disables limiting.
type RateLimitConfig struct {
	PerMinute int
	Burst     int
}

// ObservabilityConfig holds observability settings
type ObservabilityConfig struct {
	// Logging
	LogLevel observability.LogLevel

	// Metrics
	MetricsEnabled bool

	// OpenTelemetry export over OTLP/gRPC
	OTelEnabled  bool
	OTelEndpoint string
	OTelInsecure bool
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	obs, err := loadObservabilityConfig()
	if err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	cfg := &Config{
		Server:        loadServerConfig(),
		Catalog:       loadCatalogConfig(),
		Session:       loadSessionConfig(),
		RateLimit:     loadRateLimitConfig(),
		Observability: obs,
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// loadServerConfig loads server configuration from environment
func loadServerConfig() ServerConfig {
	return ServerConfig{
		Host:            getEnv("PLANNER_HOST", "0.0.0.0"),
		Port:            getEnv("PLANNER_PORT", "8080"),
		ReadTimeout:     getEnvDuration("PLANNER_READ_TIMEOUT", 15*time.Second),
		WriteTimeout:    getEnvDuration("PLANNER_WRITE_TIMEOUT", 15*time.Second),
		IdleTimeout:     getEnvDuration("PLANNER_IDLE_TIMEOUT", 60*time.Second),
		ShutdownTimeout: getEnvDuration("PLANNER_SHUTDOWN_TIMEOUT", 30*time.Second),
		CORSOrigins:     getEnvList("PLANNER_CORS_ORIGINS"),
		HealthPort:      getEnv("PLANNER_HEALTH_PORT", "9090"),
	}
}

// loadCatalogConfig loads catalog configuration from environment
func loadCatalogConfig() CatalogConfig {
	return CatalogConfig{
		Dir:            getEnv("PLANNER_CATALOG_DIR", ""),
		Watch:          getEnvBool("PLANNER_CATALOG_WATCH", false),
		ReloadSchedule: getEnv("PLANNER_CATALOG_RELOAD_SCHEDULE", ""),
		CascadeRemoval: getEnvBool("PLANNER_CASCADE_REMOVAL", false),
	}
}

// loadSessionConfig loads session storage configuration from environment
func loadSessionConfig() SessionConfig {
	return SessionConfig{
		Backend:       strings.ToLower(getEnv("PLANNER_SESSION_BACKEND", SessionBackendMemory)),
		TTL:           getEnvDuration("PLANNER_SESSION_TTL", 24*time.Hour),
		CacheSize:     getEnvInt("PLANNER_SESSION_CACHE_SIZE", 10000),
		RedisURL:      getEnv("PLANNER_REDIS_URL", ""),
		RedisPassword: getEnv("PLANNER_REDIS_PASSWORD", ""),
		RedisDB:       getEnvInt("PLANNER_REDIS_DB", 0),
		RedisPoolSize: getEnvInt("PLANNER_REDIS_POOL_SIZE", 10),
	}
}

// loadRateLimitConfig loads rate limit configuration from environment
func loadRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{
		PerMinute: getEnvInt("PLANNER_RATE_LIMIT_PER_MINUTE", 600),
		Burst:     getEnvInt("PLANNER_RATE_LIMIT_BURST", 60),
	}
}

// loadObservabilityConfig loads observability configuration from environment
func loadObservabilityConfig() (ObservabilityConfig, error) {
	level, err := observability.ParseLogLevel(getEnv("PLANNER_LOG_LEVEL", "info"))
	if err != nil {
		return ObservabilityConfig{}, err
	}
	return ObservabilityConfig{
		LogLevel:       level,
		MetricsEnabled: getEnvBool("PLANNER_METRICS_ENABLED", true),
		OTelEnabled:    getEnvBool("PLANNER_OTEL_ENABLED", false),
		OTelEndpoint:   getEnv("PLANNER_OTEL_ENDPOINT", "localhost:4317"),
		OTelInsecure:   getEnvBool("PLANNER_OTEL_INSECURE", true),
	}, nil
}

// RemovalPolicy returns the toggle-off policy selected by CascadeRemoval
func (c CatalogConfig) RemovalPolicy() dependencies.RemovalPolicy {
	if c.CascadeRemoval {
		return dependencies.CascadeRemoval
	}
	return dependencies.KeepOrphans
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	// Validate server config
	if c.Server.Port == "" {
		return fmt.Errorf("server port is required")
	}
	if c.Server.HealthPort == "" {
		return fmt.Errorf("health port is required")
	}
	if c.Server.Port == c.Server.HealthPort {
		return fmt.Errorf("server port and health port must be different")
	}

	if c.Catalog.Watch && c.Catalog.Dir == "" {
		return fmt.Errorf("catalog watch requires PLANNER_CATALOG_DIR")
	}
	if c.Catalog.ReloadSchedule != "" && c.Catalog.Dir == "" {
		return fmt.Errorf("catalog reload schedule requires PLANNER_CATALOG_DIR")
	}

	// Validate session config based on backend
	switch c.Session.Backend {
	case SessionBackendMemory:
		if c.Session.CacheSize <= 0 {
			return fmt.Errorf("session cache size must be positive")
		}
	case SessionBackendRedis:
		if c.Session.RedisURL == "" {
			return fmt.Errorf("redis URL is required for redis session backend")
		}
	default:
		return fmt.Errorf("invalid session backend: %s (must be memory or redis)", c.Session.Backend)
	}
	if c.Session.TTL <= 0 {
		return fmt.Errorf("session TTL must be positive")
	}

	if c.Observability.OTelEnabled && c.Observability.OTelEndpoint == "" {
		return fmt.Errorf("OpenTelemetry endpoint is required when PLANNER_OTEL_ENABLED is set")
	}

	if c.RateLimit.PerMinute < 0 || c.RateLimit.Burst < 0 {
		return fmt.Errorf("rate limit values must not be negative")
	}

	return nil
}

// getEnv returns an environment variable value or a default
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool returns a boolean environment variable or a default
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return strings.ToLower(value) == "true" || value == "1"
	}
	return defaultValue
}

// getEnvInt returns an integer environment variable or a default
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

// getEnvDuration returns a duration environment variable or a default
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// getEnvList returns a comma-separated environment variable as a list
func getEnvList(key string) []string {
	var out []string
	for _, item := range strings.Split(os.Getenv(key), ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
