package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/keystonecrm/planner/pkg/api"
	"github.com/keystonecrm/planner/pkg/catalog"
	"github.com/keystonecrm/planner/pkg/config"
	"github.com/keystonecrm/planner/pkg/middleware"
	"github.com/keystonecrm/planner/pkg/observability"
	"github.com/keystonecrm/planner/pkg/planner"
	"github.com/keystonecrm/planner/pkg/session"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"
)

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.Observability.LogLevel, os.Stdout).
		WithField("service", "planner").
		WithField("version", version)

	if err := run(cfg, logger); err != nil {
		logger.WithError(err).Error("Planner exited with error")
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *observability.Logger) error {
	var metrics *observability.Metrics
	registry := prometheus.NewRegistry()
	if cfg.Observability.MetricsEnabled {
		registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		metrics = observability.NewMetrics(registry)
	}

	loadEngine := func() (*planner.Engine, error) {
		opts := []planner.Option{planner.WithRemovalPolicy(cfg.Catalog.RemovalPolicy())}
		if cfg.Catalog.Dir == "" {
			return planner.Default(opts...)
		}
		return planner.LoadFromDir(cfg.Catalog.Dir, opts...)
	}

	engine, err := loadEngine()
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}
	holder := planner.NewHolder(engine)
	if metrics != nil {
		metrics.RecordCatalogLoad(len(engine.ListModules()), len(engine.ListBundles()))
	}
	logger.WithFields(map[string]interface{}{
		"modules": len(engine.ListModules()),
		"bundles": len(engine.ListBundles()),
		"dir":     cfg.Catalog.Dir,
		"policy":  engine.Policy().String(),
	}).Info("Catalog loaded")

	reload := func() error {
		err := holder.Reload(loadEngine)
		if metrics != nil {
			metrics.RecordCatalogReload(err)
			if err == nil {
				if modules, bundles, statErr := holder.Stats(); statErr == nil {
					metrics.RecordCatalogLoad(modules, bundles)
				}
			}
		}
		return err
	}

	store, redisClient, err := newSessionStore(cfg.Session)
	if err != nil {
		return err
	}
	logger.WithField("backend", cfg.Session.Backend).Info("Session store ready")

	sessions := session.NewManager(store, holder.Load, logger)

	apiOpts := []api.Option{
		api.WithLogger(logger),
		api.WithCORSOrigins(cfg.Server.CORSOrigins),
	}
	if metrics != nil {
		apiOpts = append(apiOpts, api.WithMetrics(metrics))
	}
	if limiter := newLimiter(cfg, redisClient); limiter != nil {
		rl := middleware.NewRateLimitMiddleware(limiter, metrics, logger)
		apiOpts = append(apiOpts, api.WithMiddleware(rl.Handler))
	}

	var schedule *catalog.Schedule
	if cfg.Catalog.ReloadSchedule != "" {
		if schedule, err = catalog.NewSchedule(cfg.Catalog.ReloadSchedule, reload, logger); err != nil {
			return err
		}
	}

	providers, err := observability.InitOTel(context.Background(), observability.OTelConfig{
		Enabled:        cfg.Observability.OTelEnabled,
		Endpoint:       cfg.Observability.OTelEndpoint,
		ServiceName:    "planner",
		ServiceVersion: version,
		Insecure:       cfg.Observability.OTelInsecure,
	}, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize OpenTelemetry: %w", err)
	}

	var handler http.Handler = api.NewServer(holder, sessions, apiOpts...)
	if providers != nil {
		handler = observability.TraceHandler(handler, "planner-api")
	}

	apiServer := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, cfg.Server.Port),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	healthMux := http.NewServeMux()
	observability.RegisterHealthRoutes(healthMux, observability.NewHealthChecker(holder.Stats, redisClient).WithVersion(version))
	if cfg.Observability.MetricsEnabled {
		observability.RegisterMetricsEndpoint(healthMux, registry)
	}
	healthServer := &http.Server{
		Addr:              net.JoinHostPort(cfg.Server.Host, cfg.Server.HealthPort),
		Handler:           healthMux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	shutdown := observability.NewShutdownManager(logger, cfg.Server.ShutdownTimeout, apiServer, healthServer)
	shutdown.RegisterShutdownFunc(func(context.Context) error {
		return store.Close()
	})
	shutdown.RegisterShutdownFunc(providers.Shutdown)

	if schedule != nil {
		schedule.Start()
		shutdown.RegisterShutdownFunc(schedule.Stop)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Infof("API server listening on %s", apiServer.Addr)
		return serve(apiServer)
	})
	g.Go(func() error {
		logger.Infof("Health server listening on %s", healthServer.Addr)
		return serve(healthServer)
	})
	if cfg.Catalog.Watch {
		watcher := catalog.NewWatcher(cfg.Catalog.Dir, 0, reload, logger)
		g.Go(func() error {
			return watcher.Run(gctx)
		})
	}
	g.Go(func() error {
		defer cancel()
		return shutdown.WaitForShutdown(gctx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	logger.Info("Planner stopped")
	return nil
}

func serve(srv *http.Server) error {
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server on %s failed: %w", srv.Addr, err)
	}
	return nil
}

// newSessionStore returns the configured store. The Redis client is returned
// for health checks and the distributed rate limiter; it is nil for memory.
func newSessionStore(cfg config.SessionConfig) (session.Store, *redis.Client, error) {
	switch cfg.Backend {
	case config.SessionBackendRedis:
		store, err := session.NewRedisStore(session.RedisConfig{
			URL:      cfg.RedisURL,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			PoolSize: cfg.RedisPoolSize,
			TTL:      cfg.TTL,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect session store: %w", err)
		}
		return store, store.Client(), nil
	default:
		return session.NewMemoryStore(cfg.CacheSize, cfg.TTL), nil, nil
	}
}

func newLimiter(cfg *config.Config, redisClient *redis.Client) middleware.Limiter {
	if cfg.RateLimit.PerMinute == 0 {
		return nil
	}
	rlConfig := middleware.DefaultRateLimitConfig()
	rlConfig.RequestsPerWindow = cfg.RateLimit.PerMinute
	rlConfig.BurstSize = cfg.RateLimit.Burst

	if redisClient != nil {
		return middleware.NewDistributedRateLimiter(redisClient, rlConfig, "")
	}
	return middleware.NewRateLimiter(rlConfig)
}
