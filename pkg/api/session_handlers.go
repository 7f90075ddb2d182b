package api

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/keystonecrm/planner/pkg/httputil"
	"github.com/keystonecrm/planner/pkg/observability"
	"github.com/keystonecrm/planner/pkg/selection"
)

// createSession handles POST /api/v1/sessions
func (s *Server) createSession(w http.ResponseWriter, r *http.Request) {
	var req CreateSessionRequest
	if err := httputil.ParseJSON(r, &req); err != nil && !isEmptyBody(err) {
		httputil.WriteValidationError(w, err.Error())
		return
	}

	start := time.Now()
	rec, out, err := s.sessions.Create(r.Context(), req.ModuleIDs, req.BundleID)
	s.recordSession("create", start, err)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if s.metrics != nil {
		s.metrics.SessionsCreatedTotal.Inc()
	}
	httputil.WriteCreated(w, newSessionResponse(rec, out))
}

// getSession handles GET /api/v1/sessions/{id}
func (s *Server) getSession(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParsePathStringOrError(w, r, "id")
	if !ok {
		return
	}

	start := time.Now()
	rec, out, err := s.sessions.Get(r.Context(), id)
	s.recordSession("get", start, err)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httputil.WriteSuccess(w, newSessionResponse(rec, out))
}

// deleteSession handles DELETE /api/v1/sessions/{id}
func (s *Server) deleteSession(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParsePathStringOrError(w, r, "id")
	if !ok {
		return
	}

	start := time.Now()
	err := s.sessions.Delete(r.Context(), id)
	s.recordSession("delete", start, err)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httputil.WriteNoContent(w)
}

// toggleModule handles POST /api/v1/sessions/{id}/toggle
func (s *Server) toggleModule(w http.ResponseWriter, r *http.Request) {
	var req ToggleRequest
	if !httputil.ParseJSONOrError(w, r, &req) || !httputil.RequireNonEmpty(w, req.ModuleID, "module_id") {
		return
	}
	s.apply(w, r, selection.Toggle(req.ModuleID))
}

// selectBundle handles POST /api/v1/sessions/{id}/bundle
func (s *Server) selectBundle(w http.ResponseWriter, r *http.Request) {
	var req SelectBundleRequest
	if !httputil.ParseJSONOrError(w, r, &req) || !httputil.RequireNonEmpty(w, req.BundleID, "bundle_id") {
		return
	}
	s.apply(w, r, selection.SelectBundle(req.BundleID))
}

// resetSession handles POST /api/v1/sessions/{id}/reset
func (s *Server) resetSession(w http.ResponseWriter, r *http.Request) {
	s.apply(w, r, selection.Reset())
}

// postEvent handles POST /api/v1/sessions/{id}/events with a raw event
func (s *Server) postEvent(w http.ResponseWriter, r *http.Request) {
	var e selection.Event
	if !httputil.ParseJSONOrError(w, r, &e) {
		return
	}
	s.apply(w, r, e)
}

func (s *Server) apply(w http.ResponseWriter, r *http.Request, e selection.Event) {
	id, ok := httputil.ParsePathStringOrError(w, r, "id")
	if !ok {
		return
	}

	start := time.Now()
	rec, out, err := s.sessions.Apply(r.Context(), id, e)
	s.recordSession("apply", start, err)
	if s.metrics != nil {
		s.metrics.RecordTransition(string(e.Kind), string(out.Selection.Mode), out.PriceCents, err)
		if err == nil {
			kinds := make([]string, 0, len(out.Validation.Violations))
			for _, v := range out.Validation.Violations {
				kinds = append(kinds, string(v.Kind))
			}
			s.metrics.RecordViolations(kinds)
		}
	}
	if err != nil {
		writeError(w, r, err)
		return
	}

	observability.FromContext(observability.WithSessionID(r.Context(), id)).
		WithField("event", e.Kind).
		Debug("Session updated")
	httputil.WriteSuccess(w, newSessionResponse(rec, out))
}

func (s *Server) recordSession(op string, start time.Time, err error) {
	if s.metrics != nil {
		s.metrics.RecordSessionOperation(op, start, err)
	}
}

// isEmptyBody reports whether a decode error came from an empty request body
func isEmptyBody(err error) bool {
	return errors.Is(err, io.EOF)
}
