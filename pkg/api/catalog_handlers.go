package api

import (
	"net/http"
	"strings"

	"github.com/keystonecrm/planner/pkg/catalog"
	"github.com/keystonecrm/planner/pkg/httputil"
	"github.com/keystonecrm/planner/pkg/selection"
)

// listModules handles GET /api/v1/modules
// Query parameters:
//   - popular: true to list only modules flagged popular
//   - feature: case-insensitive substring a module feature must contain
func (s *Server) listModules(w http.ResponseWriter, r *http.Request) {
	popularOnly, err := httputil.ParseQueryBool(r, "popular", false)
	if err != nil {
		httputil.WriteValidationError(w, err.Error())
		return
	}
	feature := strings.ToLower(httputil.ParseQueryString(r, "feature", ""))

	e, ok := s.engine(w)
	if !ok {
		return
	}

	modules := make([]catalog.Module, 0)
	for _, m := range e.ListModules() {
		if popularOnly && !m.Popular {
			continue
		}
		if feature != "" && !hasFeature(m, feature) {
			continue
		}
		modules = append(modules, m)
	}
	httputil.WriteSuccess(w, ListModulesResponse{
		Baseline: e.Catalog().Baseline(),
		Modules:  modules,
		Count:    len(modules),
	})
}

// getModule handles GET /api/v1/modules/{id}
func (s *Server) getModule(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParsePathStringOrError(w, r, "id")
	if !ok {
		return
	}
	e, ok := s.engine(w)
	if !ok {
		return
	}

	m, err := e.Catalog().GetModule(id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	all, err := e.Resolver().TransitiveRequirements(id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httputil.WriteSuccess(w, ModuleView{Module: m, AllRequirements: all})
}

// listBundles handles GET /api/v1/bundles
func (s *Server) listBundles(w http.ResponseWriter, r *http.Request) {
	e, ok := s.engine(w)
	if !ok {
		return
	}

	bundles := e.ListBundles()
	httputil.WriteSuccess(w, ListBundlesResponse{Bundles: bundles, Count: len(bundles)})
}

// getBundle handles GET /api/v1/bundles/{id}
func (s *Server) getBundle(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParsePathStringOrError(w, r, "id")
	if !ok {
		return
	}
	e, ok := s.engine(w)
	if !ok {
		return
	}

	b, err := e.GetBundle(id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httputil.WriteSuccess(w, b)
}

// postQuote handles POST /api/v1/quote. It prices and validates a selection
// without creating a session.
func (s *Server) postQuote(w http.ResponseWriter, r *http.Request) {
	var req QuoteRequest
	if !httputil.ParseJSONOrError(w, r, &req) {
		return
	}
	e, ok := s.engine(w)
	if !ok {
		return
	}

	sel := selection.Selection{ModuleIDs: req.ModuleIDs, Mode: selection.ModeCustom}
	if req.BundleID != "" {
		b, err := e.GetBundle(req.BundleID)
		if err != nil {
			writeError(w, r, err)
			return
		}
		sel = selection.Selection{ModuleIDs: b.Modules, Mode: selection.ModeBundle, BundleID: b.ID}
	} else if req.Resolve {
		ids, err := e.Resolver().Closure(req.ModuleIDs)
		if err != nil {
			writeError(w, r, err)
			return
		}
		sel.ModuleIDs = ids
	}

	out := e.Evaluate(sel)
	if s.metrics != nil {
		s.metrics.QuotesTotal.WithLabelValues(string(out.Selection.Mode)).Inc()
	}
	httputil.WriteSuccess(w, out)
}

func hasFeature(m catalog.Module, needle string) bool {
	for _, f := range m.Features {
		if strings.Contains(strings.ToLower(f), needle) {
			return true
		}
	}
	return false
}
