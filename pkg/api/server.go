package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/keystonecrm/planner/pkg/dependencies"
	"github.com/keystonecrm/planner/pkg/httputil"
	"github.com/keystonecrm/planner/pkg/observability"
	"github.com/keystonecrm/planner/pkg/planner"
	"github.com/keystonecrm/planner/pkg/session"
)

// maxBodyBytes bounds request bodies; the largest body is a list of module ids
const maxBodyBytes = 1 << 20

// Server represents our API server
type Server struct {
	router   *mux.Router
	engines  *planner.Holder
	sessions *session.Manager
	logger   *observability.Logger
	metrics  *observability.Metrics

	corsOrigins []string
	middlewares []mux.MiddlewareFunc
}

// Option configures a Server
type Option func(*Server)

// WithLogger sets the logger
func WithLogger(logger *observability.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithMetrics records HTTP, transition and session metrics
func WithMetrics(metrics *observability.Metrics) Option {
	return func(s *Server) {
		s.metrics = metrics
	}
}

// WithCORSOrigins allows browser clients from the given origins
func WithCORSOrigins(origins []string) Option {
	return func(s *Server) {
		s.corsOrigins = origins
	}
}

// WithMiddleware adds router middleware, applied after the built-in chain
func WithMiddleware(mw ...mux.MiddlewareFunc) Option {
	return func(s *Server) {
		s.middlewares = append(s.middlewares, mw...)
	}
}

// NewServer creates a new API server over the engine in engines
func NewServer(engines *planner.Holder, sessions *session.Manager, opts ...Option) *Server {
	s := &Server{
		router:   mux.NewRouter(),
		engines:  engines,
		sessions: sessions,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = observability.Discard()
	}

	s.setupMiddleware()
	s.setupRoutes()
	return s
}

func (s *Server) setupMiddleware() {
	s.router.Use(httputil.RequestIDMiddleware)
	s.router.Use(httputil.LoggingMiddleware(s.logger))
	s.router.Use(httputil.RecoveryMiddleware(s.logger))
	if len(s.corsOrigins) > 0 {
		s.router.Use(httputil.CORSMiddleware(s.corsOrigins))
	}
	if s.metrics != nil {
		s.router.Use(observability.HTTPMetricsMiddleware(s.metrics))
	}
	s.router.Use(httputil.ContentTypeMiddleware)
	s.router.Use(httputil.MaxBytesMiddleware(maxBodyBytes))
	for _, mw := range s.middlewares {
		s.router.Use(mw)
	}
}

// setupRoutes configures all the API routes
func (s *Server) setupRoutes() {
	// Catalog routes
	s.router.HandleFunc("/api/v1/modules", s.listModules).Methods("GET")
	s.router.HandleFunc("/api/v1/modules/{id}", s.getModule).Methods("GET")
	s.router.HandleFunc("/api/v1/bundles", s.listBundles).Methods("GET")
	s.router.HandleFunc("/api/v1/bundles/{id}", s.getBundle).Methods("GET")
	s.router.HandleFunc("/api/v1/quote", s.postQuote).Methods("POST")

	// Session routes
	s.router.HandleFunc("/api/v1/sessions", s.createSession).Methods("POST")
	s.router.HandleFunc("/api/v1/sessions/{id}", s.getSession).Methods("GET")
	s.router.HandleFunc("/api/v1/sessions/{id}", s.deleteSession).Methods("DELETE")
	s.router.HandleFunc("/api/v1/sessions/{id}/toggle", s.toggleModule).Methods("POST")
	s.router.HandleFunc("/api/v1/sessions/{id}/bundle", s.selectBundle).Methods("POST")
	s.router.HandleFunc("/api/v1/sessions/{id}/reset", s.resetSession).Methods("POST")
	s.router.HandleFunc("/api/v1/sessions/{id}/events", s.postEvent).Methods("POST")

	// Requirement graph routes
	s.RegisterRoutes(dependencies.NewDependencyHandlers(func() *dependencies.Resolver {
		if e := s.engines.Load(); e != nil {
			return e.Resolver()
		}
		return nil
	}))
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// RouteRegistrar is an interface for types that can register routes
type RouteRegistrar interface {
	RegisterRoutes(router *mux.Router)
}

// RegisterRoutes registers routes from a RouteRegistrar
func (s *Server) RegisterRoutes(registrar RouteRegistrar) {
	registrar.RegisterRoutes(s.router)
}

// engine returns the engine in service, or writes 503 when none is loaded
func (s *Server) engine(w http.ResponseWriter) (*planner.Engine, bool) {
	e := s.engines.Load()
	if e == nil {
		httputil.WriteNoCatalog(w)
		return nil, false
	}
	return e, true
}
