package api

import (
	"time"

	"github.com/keystonecrm/planner/pkg/catalog"
	"github.com/keystonecrm/planner/pkg/planner"
	"github.com/keystonecrm/planner/pkg/selection"
	"github.com/keystonecrm/planner/pkg/session"
)

// ModuleView is a module with its full requirement set
type ModuleView struct {
	catalog.Module
	AllRequirements []string `json:"all_requirements"`
}

// ListModulesResponse is the body of GET /api/v1/modules
type ListModulesResponse struct {
	Baseline string           `json:"baseline"`
	Modules  []catalog.Module `json:"modules"`
	Count    int              `json:"count"`
}

// ListBundlesResponse is the body of GET /api/v1/bundles
type ListBundlesResponse struct {
	Bundles []planner.BundleView `json:"bundles"`
	Count   int                  `json:"count"`
}

// QuoteRequest is the body of POST /api/v1/quote. With Resolve set the
// requirements of ModuleIDs are added before pricing.
type QuoteRequest struct {
	ModuleIDs []string `json:"module_ids"`
	BundleID  string   `json:"bundle_id,omitempty"`
	Resolve   bool     `json:"resolve,omitempty"`
}

// CreateSessionRequest is the body of POST /api/v1/sessions. An empty body
// starts at the baseline-only selection.
type CreateSessionRequest struct {
	ModuleIDs []string `json:"module_ids,omitempty"`
	BundleID  string   `json:"bundle_id,omitempty"`
}

// ToggleRequest is the body of POST /api/v1/sessions/{id}/toggle
type ToggleRequest struct {
	ModuleID string `json:"module_id"`
}

// SelectBundleRequest is the body of POST /api/v1/sessions/{id}/bundle
type SelectBundleRequest struct {
	BundleID string `json:"bundle_id"`
}

// SessionResponse is a session together with its current evaluation
type SessionResponse struct {
	ID          string    `json:"id"`
	Transitions int       `json:"transitions"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	selection.Outcome
}

func newSessionResponse(rec *session.Record, out selection.Outcome) SessionResponse {
	return SessionResponse{
		ID:          rec.ID,
		Transitions: rec.Transitions,
		CreatedAt:   rec.CreatedAt,
		UpdatedAt:   rec.UpdatedAt,
		Outcome:     out,
	}
}
