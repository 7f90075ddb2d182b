// Package observability provides structured logging, Prometheus metrics, health
// checks and graceful shutdown for the planner server.
//
// # Overview
//
// Logging is JSON through log/slog. Metrics cover HTTP traffic, selection
// transitions, session store operations and the catalog in service. Health
// checks report whether a catalog is loaded and whether the Redis session
// store answers.
//
// # Structured Logging
//
// Create logger:
//
//	logger := observability.NewLogger(observability.InfoLevel, os.Stdout)
//	logger.WithField("session_id", id).Info("Session created")
//
// Context-aware logging:
//
//	ctx = observability.WithRequestID(ctx, reqID)
//	observability.FromContext(ctx).WithError(err).Error("Transition failed")
//
// # Prometheus Metrics
//
//	metrics := observability.NewMetrics(registry)
//	router.Use(observability.HTTPMetricsMiddleware(metrics))
//	metrics.RecordTransition("toggle", "custom", out.PriceCents, err)
//
// # Tracing
//
// OpenTelemetry export is off unless enabled. InitOTel installs global OTLP
// tracer and meter providers; TraceHandler opens a server span per request and
// FromContext adds its trace_id and span_id to log entries.
//
//	providers, err := observability.InitOTel(ctx, observability.OTelConfig{
//		Enabled:  true,
//		Endpoint: "otel-collector:4317",
//		Insecure: true,
//	}, logger)
//	handler = observability.TraceHandler(handler, "planner-api")
//	sm.RegisterShutdownFunc(providers.Shutdown)
//
// # Health Checks
//
//	checker := observability.NewHealthChecker(catalogProbe, redisClient)
//	observability.RegisterHealthRoutes(mux, checker)
//
// # Shutdown
//
//	sm := observability.NewShutdownManager(logger, 30*time.Second, apiServer, healthServer)
//	sm.RegisterShutdownFunc(func(ctx context.Context) error { return store.Close() })
//	err := sm.WaitForShutdown(ctx)
//
// # Related Packages
//
//   - pkg/config: Log level, metrics and OpenTelemetry settings
//   - pkg/httputil: Request logging and panic recovery middleware
package observability
