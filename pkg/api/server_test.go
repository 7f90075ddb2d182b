package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/keystonecrm/planner/pkg/catalog"
	"github.com/keystonecrm/planner/pkg/httputil"
	"github.com/keystonecrm/planner/pkg/observability"
	"github.com/keystonecrm/planner/pkg/planner"
	"github.com/keystonecrm/planner/pkg/session"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testServer struct {
	*Server
	metrics *observability.Metrics
	store   *session.MemoryStore
}

func exampleEngine(t *testing.T) *planner.Engine {
	t.Helper()
	e, err := planner.LoadCatalogs(catalog.ModuleConfig{Modules: []catalog.Module{
		{ID: "baseline", Name: "Contacts", Baseline: true},
		{ID: "leads", Name: "Leads", MonthlyPriceCents: 1000, Requires: []string{"baseline"}, Features: []string{"Lead capture forms"}},
		{ID: "pipeline", Name: "Pipeline", MonthlyPriceCents: 1500, Requires: []string{"leads"}, Popular: true},
		{ID: "market", Name: "Marketing", MonthlyPriceCents: 1200, Features: []string{"Email campaigns", "Lead scoring"}},
	}}, catalog.BundleConfig{Bundles: []catalog.Bundle{
		{ID: "starter", Name: "Starter", Modules: []string{"baseline", "leads"}, MonthlyPriceCents: 800},
		{ID: "pro", Name: "Pro", Modules: []string{"baseline", "leads", "pipeline"}, MonthlyPriceCents: 2000},
	}})
	require.NoError(t, err)
	return e
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	holder := planner.NewHolder(exampleEngine(t))
	store := session.NewMemoryStore(100, time.Hour)
	logger := observability.NewLogger(observability.ErrorLevel, &bytes.Buffer{})
	metrics := observability.NewMetrics(prometheus.NewRegistry())

	s := NewServer(holder, session.NewManager(store, holder.Load, logger),
		WithLogger(logger),
		WithMetrics(metrics),
	)
	return &testServer{Server: s, metrics: metrics, store: store}
}

func (s *testServer) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		switch b := body.(type) {
		case string:
			buf.WriteString(b)
		default:
			require.NoError(t, json.NewEncoder(&buf).Encode(b))
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestServer_NotFoundRoute(t *testing.T) {
	s := newTestServer(t)
	rec := s.do(t, http.MethodGet, "/api/v1/nothing", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServer_MethodNotAllowed(t *testing.T) {
	s := newTestServer(t)
	rec := s.do(t, http.MethodPut, "/api/v1/modules", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestServer_RequestID(t *testing.T) {
	s := newTestServer(t)
	rec := s.do(t, http.MethodGet, "/api/v1/modules", nil)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestServer_NoEngine(t *testing.T) {
	holder := &planner.Holder{}
	manager := session.NewManager(session.NewMemoryStore(10, time.Hour), holder.Load, nil)
	s := &testServer{Server: NewServer(holder, manager)}

	tests := []struct {
		method string
		path   string
		body   interface{}
	}{
		{http.MethodGet, "/api/v1/bundles", nil},
		{http.MethodGet, "/api/v1/modules/leads", nil},
		{http.MethodPost, "/api/v1/quote", map[string]interface{}{"module_ids": []string{"leads"}}},
		{http.MethodPost, "/api/v1/closure", map[string]interface{}{"module_ids": []string{"pipeline"}}},
		{http.MethodGet, "/api/v1/graph", nil},
		{http.MethodGet, "/api/v1/modules/leads/requirements", nil},
		{http.MethodGet, "/api/v1/modules/leads/impact", nil},
		{http.MethodPost, "/api/v1/sessions", map[string]interface{}{}},
		{http.MethodGet, "/api/v1/sessions/abc", nil},
		{http.MethodPost, "/api/v1/sessions/abc/toggle", map[string]interface{}{"module_id": "leads"}},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			rec := s.do(t, tt.method, tt.path, tt.body)
			assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

			var resp httputil.ErrorResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
			assert.Equal(t, CodeNoCatalog, resp.Code)
		})
	}
}

func TestServer_DependencyRoutes(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/api/v1/closure", map[string]interface{}{"module_ids": []string{"pipeline"}})
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode[map[string]interface{}](t, rec)
	assert.Equal(t, []interface{}{"baseline", "leads", "pipeline"}, body["module_ids"])

	rec = s.do(t, http.MethodGet, "/api/v1/modules/leads/dependents", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

type pingRegistrar struct{}

func (pingRegistrar) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/v1/ping", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}).Methods("GET")
}

func TestServer_RegisterRoutes(t *testing.T) {
	s := newTestServer(t)
	s.RegisterRoutes(pingRegistrar{})

	rec := s.do(t, http.MethodGet, "/api/v1/ping", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestServer_Middleware(t *testing.T) {
	holder := planner.NewHolder(exampleEngine(t))
	blocked := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTeapot)
		})
	}
	s := NewServer(holder, nil, WithMiddleware(blocked))

	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/modules", nil))
	assert.Equal(t, http.StatusTeapot, rec.Code)
}
