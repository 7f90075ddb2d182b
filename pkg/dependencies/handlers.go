package dependencies

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/keystonecrm/planner/pkg/catalog"
	"github.com/keystonecrm/planner/pkg/httputil"
	"github.com/keystonecrm/planner/pkg/observability"
)

// ResolverFunc returns the resolver for the catalog currently in service, or
// nil before a catalog is loaded
type ResolverFunc func() *Resolver

// DependencyHandlers provides HTTP handlers for module requirements
type DependencyHandlers struct {
	resolver ResolverFunc
}

// NewDependencyHandlers creates new dependency handlers
func NewDependencyHandlers(resolver ResolverFunc) *DependencyHandlers {
	return &DependencyHandlers{
		resolver: resolver,
	}
}

// RegisterRoutes registers dependency routes
func (h *DependencyHandlers) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/v1/modules/{id}/requirements", h.getRequirements).Methods("GET")
	router.HandleFunc("/api/v1/modules/{id}/requirements/transitive", h.getTransitiveRequirements).Methods("GET")
	router.HandleFunc("/api/v1/modules/{id}/dependents", h.getDependents).Methods("GET")
	router.HandleFunc("/api/v1/modules/{id}/impact", h.getImpact).Methods("GET")
	router.HandleFunc("/api/v1/closure", h.postClosure).Methods("POST")
	router.HandleFunc("/api/v1/graph", h.getGraph).Methods("GET")
}

// ClosureRequest is the body of POST /api/v1/closure
type ClosureRequest struct {
	ModuleIDs []string `json:"module_ids"`
}

// getRequirements handles GET /api/v1/modules/{id}/requirements
func (h *DependencyHandlers) getRequirements(w http.ResponseWriter, r *http.Request) {
	res, id, ok := h.knownModule(w, r)
	if !ok {
		return
	}

	deps := res.Graph().Requirements(id)
	httputil.WriteSuccess(w, map[string]interface{}{
		"module":       id,
		"requirements": deps,
		"count":        len(deps),
	})
}

// getTransitiveRequirements handles GET /api/v1/modules/{id}/requirements/transitive
func (h *DependencyHandlers) getTransitiveRequirements(w http.ResponseWriter, r *http.Request) {
	res, id, ok := h.knownModule(w, r)
	if !ok {
		return
	}

	reqs, err := res.TransitiveRequirements(id)
	if err != nil {
		writeResolveError(w, r, err)
		return
	}

	deps := make([]Dependency, 0, len(reqs))
	for _, req := range reqs {
		deps = append(deps, Dependency{Module: req, Type: "transitive"})
	}
	httputil.WriteSuccess(w, map[string]interface{}{
		"module":       id,
		"requirements": deps,
		"count":        len(deps),
	})
}

// getDependents handles GET /api/v1/modules/{id}/dependents
func (h *DependencyHandlers) getDependents(w http.ResponseWriter, r *http.Request) {
	res, id, ok := h.knownModule(w, r)
	if !ok {
		return
	}

	dependents := res.Graph().DirectDependents(id)
	httputil.WriteSuccess(w, map[string]interface{}{
		"module":     id,
		"dependents": dependents,
		"count":      len(dependents),
	})
}

// getImpact handles GET /api/v1/modules/{id}/impact
func (h *DependencyHandlers) getImpact(w http.ResponseWriter, r *http.Request) {
	res, id, ok := h.knownModule(w, r)
	if !ok {
		return
	}

	httputil.WriteSuccess(w, res.Graph().GetImpactAnalysis(id))
}

// postClosure handles POST /api/v1/closure
func (h *DependencyHandlers) postClosure(w http.ResponseWriter, r *http.Request) {
	res, ok := h.current(w)
	if !ok {
		return
	}

	var req ClosureRequest
	if !httputil.ParseJSONOrError(w, r, &req) {
		return
	}

	closure, err := res.Closure(req.ModuleIDs)
	if err != nil {
		writeResolveError(w, r, err)
		return
	}

	httputil.WriteSuccess(w, map[string]interface{}{
		"requested":  req.ModuleIDs,
		"module_ids": closure,
		"count":      len(closure),
	})
}

// getGraph handles GET /api/v1/graph
// Query parameters:
//   - selected: comma-separated module ids to mark as selected
func (h *DependencyHandlers) getGraph(w http.ResponseWriter, r *http.Request) {
	res, ok := h.current(w)
	if !ok {
		return
	}
	httputil.WriteSuccess(w, BuildCytoscapeGraph(res, httputil.ParseQueryList(r, "selected")))
}

func (h *DependencyHandlers) current(w http.ResponseWriter) (*Resolver, bool) {
	res := h.resolver()
	if res == nil {
		httputil.WriteNoCatalog(w)
		return nil, false
	}
	return res, true
}

func (h *DependencyHandlers) knownModule(w http.ResponseWriter, r *http.Request) (*Resolver, string, bool) {
	res, ok := h.current(w)
	if !ok {
		return nil, "", false
	}
	id, ok := httputil.ParsePathStringOrError(w, r, "id")
	if !ok {
		return nil, "", false
	}
	if !res.Graph().Has(id) {
		httputil.WriteCodedError(w, http.StatusNotFound, httputil.CodeUnknownModule, "module not found: "+id)
		return nil, "", false
	}
	return res, id, true
}

func writeResolveError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, catalog.ErrUnknownModule) {
		httputil.WriteCodedError(w, http.StatusNotFound, httputil.CodeUnknownModule, err.Error())
		return
	}
	observability.FromContext(r.Context()).
		WithError(err).
		WithField("path", r.URL.Path).
		Error("Requirement lookup failed")
	httputil.WriteInternalError(w)
}
