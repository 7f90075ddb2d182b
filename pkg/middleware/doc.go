// Package middleware provides HTTP rate limiting for the planner API.
//
// # Overview
//
// Requests are keyed by client IP. A single instance uses an in-memory token
// bucket per client; several instances sharing a Redis session store can
// share limits through DistributedRateLimiter instead. Rejected requests get
// a 429 with Retry-After and are counted in planner_http_rate_limited_total.
//
// # Usage Example
//
//	limiter := middleware.NewRateLimiter(middleware.DefaultRateLimitConfig())
//	rl := middleware.NewRateLimitMiddleware(limiter, metrics, logger)
//	router.Use(rl.Handler)
//
// Redis-backed:
//
//	limiter := middleware.NewDistributedRateLimiter(redisClient, cfg, "")
//
// # Related Packages
//
//   - pkg/httputil: Error responses
//   - pkg/observability: Metrics and logging
package middleware
