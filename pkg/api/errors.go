package api

import (
	"errors"
	"net/http"

	"github.com/keystonecrm/planner/pkg/catalog"
	"github.com/keystonecrm/planner/pkg/httputil"
	"github.com/keystonecrm/planner/pkg/observability"
	"github.com/keystonecrm/planner/pkg/planner"
	"github.com/keystonecrm/planner/pkg/selection"
	"github.com/keystonecrm/planner/pkg/session"
)

// Error codes returned in the "code" field of error responses
const (
	CodeUnknownModule   = httputil.CodeUnknownModule
	CodeUnknownBundle   = "unknown_bundle"
	CodeSessionNotFound = "session_not_found"
	CodeUnknownEvent    = "unknown_event"
	CodeNoCatalog       = httputil.CodeNoCatalog
	CodeInternal        = httputil.CodeInternal
)

// writeError maps domain errors to HTTP responses
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, catalog.ErrUnknownModule):
		httputil.WriteCodedError(w, http.StatusNotFound, CodeUnknownModule, err.Error())
	case errors.Is(err, catalog.ErrUnknownBundle):
		httputil.WriteCodedError(w, http.StatusNotFound, CodeUnknownBundle, err.Error())
	case errors.Is(err, session.ErrSessionNotFound):
		httputil.WriteCodedError(w, http.StatusNotFound, CodeSessionNotFound, err.Error())
	case errors.Is(err, selection.ErrUnknownEvent):
		httputil.WriteCodedError(w, http.StatusBadRequest, CodeUnknownEvent, err.Error())
	case errors.Is(err, planner.ErrNoCatalog):
		httputil.WriteNoCatalog(w)
	default:
		observability.FromContext(r.Context()).
			WithError(err).
			WithField("path", r.URL.Path).
			Error("Request failed")
		httputil.WriteInternalError(w)
	}
}
