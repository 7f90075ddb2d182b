package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the planner's Prometheus collectors
type Metrics struct {
	// HTTP metrics
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	HTTPRequestSize     *prometheus.HistogramVec
	HTTPResponseSize    *prometheus.HistogramVec
	RateLimitedTotal    prometheus.Counter

	// Selection metrics
	TransitionsTotal    *prometheus.CounterVec
	SelectionPriceCents *prometheus.HistogramVec
	SelectionViolations *prometheus.CounterVec
	QuotesTotal         *prometheus.CounterVec

	// Session metrics
	SessionsCreatedTotal     prometheus.Counter
	SessionOperationsTotal   *prometheus.CounterVec
	SessionOperationDuration *prometheus.HistogramVec

	// Catalog metrics
	CatalogModules         prometheus.Gauge
	CatalogBundles         prometheus.Gauge
	CatalogReloadsTotal    *prometheus.CounterVec
	CatalogLoadedTimestamp prometheus.Gauge
}

const namespace = "planner"

// NewMetrics creates the planner metrics and registers them with registry.
// Registering twice with the same registry panics.
func NewMetrics(registry *prometheus.Registry) *Metrics {
	f := promauto.With(registry)
	sizeBuckets := prometheus.ExponentialBuckets(100, 10, 8)

	return &Metrics{
		HTTPRequestsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "http", Name: "requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"method", "path", "status"}),
		HTTPRequestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace, Subsystem: "http", Name: "request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path"}),
		HTTPRequestSize: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace, Subsystem: "http", Name: "request_size_bytes",
			Help:    "HTTP request size in bytes",
			Buckets: sizeBuckets,
		}, []string{"method", "path"}),
		HTTPResponseSize: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace, Subsystem: "http", Name: "response_size_bytes",
			Help:    "HTTP response size in bytes",
			Buckets: sizeBuckets,
		}, []string{"method", "path"}),
		RateLimitedTotal: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "http", Name: "rate_limited_total",
			Help: "Total number of requests rejected by the rate limiter",
		}),

		TransitionsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "selection", Name: "transitions_total",
			Help: "Total number of selection state machine transitions",
		}, []string{"event", "status"}),
		SelectionPriceCents: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace, Subsystem: "selection", Name: "price_cents",
			Help:    "Monthly price of selections after each transition, in cents",
			Buckets: []float64{0, 500, 1000, 2500, 5000, 7500, 10000, 20000},
		}, []string{"mode"}),
		SelectionViolations: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "selection", Name: "violations_total",
			Help: "Total number of validation violations reported",
		}, []string{"kind"}),
		QuotesTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "quotes_total",
			Help: "Total number of stateless quotes",
		}, []string{"mode"}),

		SessionsCreatedTotal: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "sessions_created_total",
			Help: "Total number of configuration sessions created",
		}),
		SessionOperationsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "session", Name: "operations_total",
			Help: "Total number of session store operations",
		}, []string{"operation", "status"}),
		SessionOperationDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace, Subsystem: "session", Name: "operation_duration_seconds",
			Help:    "Session operation duration in seconds",
			Buckets: []float64{.0005, .001, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"operation"}),

		CatalogModules: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Subsystem: "catalog", Name: "modules",
			Help: "Number of modules in the catalog in service",
		}),
		CatalogBundles: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Subsystem: "catalog", Name: "bundles",
			Help: "Number of bundles in the catalog in service",
		}),
		CatalogReloadsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "catalog", Name: "reloads_total",
			Help: "Total number of catalog reload attempts",
		}, []string{"status"}),
		CatalogLoadedTimestamp: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Subsystem: "catalog", Name: "loaded_timestamp_seconds",
			Help: "Unix time the catalog in service was loaded",
		}),
	}
}

func resultLabel(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

// RecordTransition records one state machine transition
func (m *Metrics) RecordTransition(event, mode string, priceCents int64, err error) {
	m.TransitionsTotal.WithLabelValues(event, resultLabel(err)).Inc()
	if err != nil {
		return
	}
	m.SelectionPriceCents.WithLabelValues(mode).Observe(float64(priceCents))
}

// RecordViolations counts violations by kind
func (m *Metrics) RecordViolations(kinds []string) {
	for _, k := range kinds {
		m.SelectionViolations.WithLabelValues(k).Inc()
	}
}

// RecordSessionOperation records the outcome and latency of a session operation
func (m *Metrics) RecordSessionOperation(operation string, start time.Time, err error) {
	m.SessionOperationsTotal.WithLabelValues(operation, resultLabel(err)).Inc()
	m.SessionOperationDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}

// RecordCatalogLoad records a successful catalog (re)load
func (m *Metrics) RecordCatalogLoad(modules, bundles int) {
	m.CatalogModules.Set(float64(modules))
	m.CatalogBundles.Set(float64(bundles))
	m.CatalogLoadedTimestamp.SetToCurrentTime()
}

// RecordCatalogReload records a reload attempt
func (m *Metrics) RecordCatalogReload(err error) {
	m.CatalogReloadsTotal.WithLabelValues(resultLabel(err)).Inc()
}

// sizeRecorder remembers the status code and body size written through it
type sizeRecorder struct {
	http.ResponseWriter
	code int
	size int
}

func (rec *sizeRecorder) WriteHeader(code int) {
	rec.code = code
	rec.ResponseWriter.WriteHeader(code)
}

func (rec *sizeRecorder) Write(b []byte) (int, error) {
	n, err := rec.ResponseWriter.Write(b)
	rec.size += n
	return n, err
}

// routePath labels a request by its route template so ids do not explode
// label cardinality. Requests that matched no route use the raw path.
func routePath(r *http.Request) string {
	if route := mux.CurrentRoute(r); route != nil {
		if tmpl, err := route.GetPathTemplate(); err == nil {
			return tmpl
		}
	}
	return r.URL.Path
}

// HTTPMetricsMiddleware instruments HTTP requests with Prometheus metrics.
// Register it with router.Use so route templates are available.
func HTTPMetricsMiddleware(metrics *Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			path := routePath(r)
			if r.ContentLength > 0 {
				metrics.HTTPRequestSize.WithLabelValues(r.Method, path).Observe(float64(r.ContentLength))
			}

			rec := &sizeRecorder{ResponseWriter: w, code: http.StatusOK}
			next.ServeHTTP(rec, r)

			metrics.HTTPRequestsTotal.WithLabelValues(r.Method, path, strconv.Itoa(rec.code)).Inc()
			metrics.HTTPRequestDuration.WithLabelValues(r.Method, path).Observe(time.Since(start).Seconds())
			metrics.HTTPResponseSize.WithLabelValues(r.Method, path).Observe(float64(rec.size))
		})
	}
}

// RegisterMetricsEndpoint registers the /metrics endpoint
func RegisterMetricsEndpoint(mux *http.ServeMux, registry *prometheus.Registry) {
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
}
