// Package config provides application configuration management from environment variables.
//
// # Overview
//
// This package loads and validates the planner server configuration from
// environment variables with defaults for every setting.
//
// # Configuration Structure
//
// Server settings:
//
//	PLANNER_HOST="0.0.0.0"
//	PLANNER_PORT="8080"
//	PLANNER_HEALTH_PORT="9090"
//	PLANNER_READ_TIMEOUT="15s"
//	PLANNER_CORS_ORIGINS="https://app.example.com"
//
// Catalog settings:
//
//	PLANNER_CATALOG_DIR="/etc/planner"   # empty uses the built-in catalog
//	PLANNER_CATALOG_WATCH="true"
//	PLANNER_CATALOG_RELOAD_SCHEDULE="@every 15m"
//	PLANNER_CASCADE_REMOVAL="false"
//
// Session settings:
//
//	PLANNER_SESSION_BACKEND="redis"      # memory, redis
//	PLANNER_SESSION_TTL="24h"
//	PLANNER_REDIS_URL="redis://localhost:6379"
//
// Observability settings:
//
//	PLANNER_LOG_LEVEL="info"  # debug, info, warn, error
//	PLANNER_METRICS_ENABLED="true"
//
// # Usage Example
//
//	cfg, err := config.LoadConfig()
//	if err != nil {
//		log.Fatal(err)
//	}
//	engine, err := planner.LoadFromDir(cfg.Catalog.Dir, planner.WithRemovalPolicy(cfg.Catalog.RemovalPolicy()))
//
// # Related Packages
//
//   - pkg/session: Uses session configuration
//   - pkg/observability: Uses observability configuration
package config
