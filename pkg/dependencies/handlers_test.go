package dependencies

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/keystonecrm/planner/pkg/httputil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) *mux.Router {
	t.Helper()
	r := NewResolver(newChainCatalog(t))
	router := mux.NewRouter()
	NewDependencyHandlers(func() *Resolver { return r }).RegisterRoutes(router)
	return router
}

func doRequest(t *testing.T, router http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestDependencyHandlers_Requirements(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodGet, "/api/v1/modules/reports/requirements", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Module       string       `json:"module"`
		Requirements []Dependency `json:"requirements"`
		Count        int          `json:"count"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "reports", resp.Module)
	assert.Equal(t, 2, resp.Count)

	rec = doRequest(t, router, http.MethodGet, "/api/v1/modules/reports/requirements/transitive", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, 4, resp.Count)
	assert.Equal(t, "transitive", resp.Requirements[0].Type)
}

func TestDependencyHandlers_UnknownModule(t *testing.T) {
	router := newTestRouter(t)

	for _, path := range []string{
		"/api/v1/modules/ghost/requirements",
		"/api/v1/modules/ghost/requirements/transitive",
		"/api/v1/modules/ghost/dependents",
		"/api/v1/modules/ghost/impact",
	} {
		rec := doRequest(t, router, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusNotFound, rec.Code, path)
		assert.Equal(t, httputil.ErrorResponse{Error: "module not found: ghost", Code: httputil.CodeUnknownModule}, decodeError(t, rec))
	}
}

func TestDependencyHandlers_NoCatalog(t *testing.T) {
	router := mux.NewRouter()
	NewDependencyHandlers(func() *Resolver { return nil }).RegisterRoutes(router)

	for _, tt := range []struct {
		method, path string
		body         interface{}
	}{
		{http.MethodGet, "/api/v1/modules/leads/requirements", nil},
		{http.MethodGet, "/api/v1/modules/leads/requirements/transitive", nil},
		{http.MethodGet, "/api/v1/modules/leads/dependents", nil},
		{http.MethodGet, "/api/v1/modules/leads/impact", nil},
		{http.MethodPost, "/api/v1/closure", ClosureRequest{ModuleIDs: []string{"leads"}}},
		{http.MethodGet, "/api/v1/graph", nil},
	} {
		rec := doRequest(t, router, tt.method, tt.path, tt.body)
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code, tt.path)
		assert.Equal(t, httputil.CodeNoCatalog, decodeError(t, rec).Code, tt.path)
	}
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) httputil.ErrorResponse {
	t.Helper()
	var resp httputil.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

func TestDependencyHandlers_DependentsAndImpact(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodGet, "/api/v1/modules/leads/dependents", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"count":2`)

	rec = doRequest(t, router, http.MethodGet, "/api/v1/modules/leads/impact", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var impact ImpactAnalysis
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&impact))
	assert.Equal(t, 3, impact.TotalImpact)
}

func TestDependencyHandlers_Closure(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodPost, "/api/v1/closure", ClosureRequest{ModuleIDs: []string{"pipeline"}})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		ModuleIDs []string `json:"module_ids"`
		Count     int      `json:"count"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, []string{"baseline", "leads", "pipeline"}, resp.ModuleIDs)
	assert.Equal(t, 3, resp.Count)

	rec = doRequest(t, router, http.MethodPost, "/api/v1/closure", ClosureRequest{ModuleIDs: []string{"ghost"}})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, httputil.CodeUnknownModule, decodeError(t, rec).Code)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/closure", bytes.NewBufferString("{not json"))
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDependencyHandlers_Graph(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodGet, "/api/v1/graph?selected=qr,market", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var g CytoscapeGraph
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&g))
	assert.Len(t, g.Nodes, 6)

	selected := 0
	for _, n := range g.Nodes {
		if n.Data.Selected {
			selected++
		}
	}
	assert.Equal(t, 3, selected)
}
