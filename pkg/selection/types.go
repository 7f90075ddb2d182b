package selection

import (
	"github.com/keystonecrm/planner/pkg/pricing"
	"github.com/keystonecrm/planner/pkg/validation"
)

// Mode tells whether a selection follows a bundle or was picked module by module
type Mode string

const (
	ModeCustom Mode = "custom"
	ModeBundle Mode = "bundle"
)

// Selection is a customer's current set of module ids plus its mode
type Selection struct {
	ModuleIDs []string `json:"module_ids"`
	Mode      Mode     `json:"mode"`
	// BundleID is set only in bundle mode
	BundleID string `json:"bundle_id,omitempty"`
}

// Has reports whether id is part of the selection
func (s Selection) Has(id string) bool {
	for _, m := range s.ModuleIDs {
		if m == id {
			return true
		}
	}
	return false
}

func (s Selection) clone() Selection {
	s.ModuleIDs = append([]string(nil), s.ModuleIDs...)
	return s
}

// EventKind names a transition
type EventKind string

const (
	EventToggle       EventKind = "toggle"
	EventSelectBundle EventKind = "select_bundle"
	EventReset        EventKind = "reset"
)

// Event is one input to the state machine
type Event struct {
	Kind EventKind `json:"kind"`
	// ID is the module id for toggle and the bundle id for select_bundle
	ID string `json:"id,omitempty"`
}

// Toggle returns a toggle event for a module
func Toggle(moduleID string) Event {
	return Event{Kind: EventToggle, ID: moduleID}
}

// SelectBundle returns a select_bundle event
func SelectBundle(bundleID string) Event {
	return Event{Kind: EventSelectBundle, ID: bundleID}
}

// Reset returns a reset event
func Reset() Event {
	return Event{Kind: EventReset}
}

// Outcome is what every transition hands back for rendering
type Outcome struct {
	Selection  Selection         `json:"selection"`
	PriceCents int64             `json:"price_cents"`
	Quote      *pricing.Quote    `json:"quote"`
	Validation validation.Result `json:"validation"`
}
