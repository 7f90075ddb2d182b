package observability

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-redis/redis/v8"
)

// CatalogProbe reports the size of the catalog in service. It returns an
// error when no usable catalog is loaded.
type CatalogProbe func() (modules, bundles int, err error)

// HealthChecker serves the liveness and readiness probes
type HealthChecker struct {
	catalog CatalogProbe
	redis   *redis.Client
	version string
}

// NewHealthChecker creates a new health checker. Either dependency may be nil.
func NewHealthChecker(catalog CatalogProbe, redis *redis.Client) *HealthChecker {
	return &HealthChecker{
		catalog: catalog,
		redis:   redis,
	}
}

// WithVersion sets the version reported by Check
func (h *HealthChecker) WithVersion(version string) *HealthChecker {
	h.version = version
	return h
}

// HealthStatus is the readiness report
type HealthStatus struct {
	Status       string                      `json:"status"`
	Timestamp    time.Time                   `json:"timestamp"`
	Version      string                      `json:"version,omitempty"`
	Dependencies map[string]DependencyStatus `json:"dependencies,omitempty"`
}

// DependencyStatus is the result of probing one dependency
type DependencyStatus struct {
	Status    string    `json:"status"`
	Message   string    `json:"message,omitempty"`
	LatencyMS float64   `json:"latency_ms"`
	Timestamp time.Time `json:"timestamp"`
}

const (
	StatusHealthy   = "healthy"
	StatusDegraded  = "degraded"
	StatusUnhealthy = "unhealthy"
)

// Liveness answers 200 while the process is serving
func (h *HealthChecker) Liveness(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":    StatusHealthy,
		"timestamp": time.Now(),
	})
}

// Readiness answers 503 when Check reports unhealthy and 200 otherwise
func (h *HealthChecker) Readiness(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	result := h.Check(ctx)

	code := http.StatusOK
	if result.Status == StatusUnhealthy {
		code = http.StatusServiceUnavailable
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(result)
}

// Check probes the catalog and Redis. A missing or empty catalog makes the
// service unhealthy; an unreachable Redis only degrades it, since catalog and
// quote endpoints keep working without sessions.
func (h *HealthChecker) Check(ctx context.Context) HealthStatus {
	result := HealthStatus{
		Status:       StatusHealthy,
		Timestamp:    time.Now(),
		Version:      h.version,
		Dependencies: make(map[string]DependencyStatus),
	}

	if h.catalog != nil {
		dep := probe(h.catalogMessage)
		result.Dependencies["catalog"] = dep
		if dep.Status == StatusUnhealthy {
			result.Status = StatusUnhealthy
		}
	}

	if h.redis != nil {
		dep := probe(func() (string, error) { return "", h.redis.Ping(ctx).Err() })
		result.Dependencies["redis"] = dep
		if dep.Status == StatusUnhealthy && result.Status == StatusHealthy {
			result.Status = StatusDegraded
		}
	}

	return result
}

func (h *HealthChecker) catalogMessage() (string, error) {
	modules, bundles, err := h.catalog()
	if err != nil {
		return "", err
	}
	if modules == 0 {
		return "", fmt.Errorf("catalog has no modules")
	}
	return fmt.Sprintf("%d modules, %d bundles", modules, bundles), nil
}

// probe times fn and turns its result into a DependencyStatus
func probe(fn func() (string, error)) DependencyStatus {
	start := time.Now()
	msg, err := fn()
	dep := DependencyStatus{
		Status:    StatusHealthy,
		Message:   msg,
		LatencyMS: float64(time.Since(start).Microseconds()) / 1000,
		Timestamp: start,
	}
	if err != nil {
		dep.Status = StatusUnhealthy
		dep.Message = err.Error()
	}
	return dep
}

// RegisterHealthRoutes mounts /health, /health/live and /health/ready
func RegisterHealthRoutes(mux *http.ServeMux, checker *HealthChecker) {
	mux.HandleFunc("/health", checker.Readiness)
	mux.HandleFunc("/health/live", checker.Liveness)
	mux.HandleFunc("/health/ready", checker.Readiness)
}
