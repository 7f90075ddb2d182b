package selection

import (
	"errors"
	"fmt"

	"github.com/keystonecrm/planner/pkg/catalog"
	"github.com/keystonecrm/planner/pkg/dependencies"
	"github.com/keystonecrm/planner/pkg/pricing"
	"github.com/keystonecrm/planner/pkg/validation"
)

// ErrUnknownEvent is returned for events with an unrecognised kind
var ErrUnknownEvent = errors.New("unknown event")

// Option configures a Machine
type Option func(*Machine)

// WithRemovalPolicy sets what toggling a module off does to its dependents
func WithRemovalPolicy(p dependencies.RemovalPolicy) Option {
	return func(m *Machine) {
		m.policy = p
	}
}

// Machine is the selection reducer. It is immutable and safe for concurrent use.
type Machine struct {
	catalog    *catalog.Catalog
	resolver   *dependencies.Resolver
	validator  *validation.Validator
	calculator *pricing.Calculator
	policy     dependencies.RemovalPolicy
}

// NewMachine creates a state machine over a catalog
func NewMachine(cat *catalog.Catalog, opts ...Option) *Machine {
	m := &Machine{
		catalog:    cat,
		resolver:   dependencies.NewResolver(cat),
		validator:  validation.NewValidator(cat),
		calculator: pricing.NewCalculator(cat),
		policy:     dependencies.KeepOrphans,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Policy returns the removal policy used for toggles
func (m *Machine) Policy() dependencies.RemovalPolicy {
	return m.policy
}

// Initial returns the start-of-session selection: the baseline module alone
func (m *Machine) Initial() (Selection, Outcome) {
	s := Selection{
		ModuleIDs: []string{m.catalog.Baseline()},
		Mode:      ModeCustom,
	}
	return s, m.Evaluate(s)
}

// Seed builds a selection from a previously saved plan. A bundle seed takes the
// bundle's current modules. A custom seed is kept as given, including ids the
// catalog no longer knows, so the Outcome reports what is wrong with it.
func (m *Machine) Seed(ids []string, bundleID string) (Selection, Outcome, error) {
	if bundleID != "" {
		b, err := m.catalog.GetBundle(bundleID)
		if err != nil {
			return Selection{}, Outcome{}, err
		}
		s := Selection{ModuleIDs: b.Modules, Mode: ModeBundle, BundleID: b.ID}
		return s, m.Evaluate(s), nil
	}

	s := Selection{
		ModuleIDs: append(m.catalog.Order(ids), m.catalog.Unknown(ids)...),
		Mode:      ModeCustom,
	}
	return s, m.Evaluate(s), nil
}

// Apply returns the selection that follows s after e, and its Outcome.
// s is never modified.
func (m *Machine) Apply(s Selection, e Event) (Selection, Outcome, error) {
	var (
		next Selection
		err  error
	)
	switch e.Kind {
	case EventToggle:
		next, err = m.toggle(s, e.ID)
	case EventSelectBundle:
		next, err = m.selectBundle(e.ID)
	case EventReset:
		next, _ = m.Initial()
	default:
		err = fmt.Errorf("%w: %q", ErrUnknownEvent, e.Kind)
	}
	if err != nil {
		return s, Outcome{}, err
	}
	return next, m.Evaluate(next), nil
}

func (m *Machine) toggle(s Selection, id string) (Selection, error) {
	if id == m.catalog.Baseline() {
		return Selection{ModuleIDs: s.clone().ModuleIDs, Mode: ModeCustom}, nil
	}

	// Ids the catalog dropped since the selection was saved fall out here.
	current := m.catalog.Order(s.ModuleIDs)

	var (
		ids []string
		err error
	)
	if !m.catalog.Has(id) && s.Has(id) {
		ids, err = m.resolver.Closure(current)
	} else {
		ids, err = m.resolver.Toggle(current, id, m.policy)
	}
	if err != nil {
		return s, err
	}
	return Selection{ModuleIDs: ids, Mode: ModeCustom}, nil
}

func (m *Machine) selectBundle(id string) (Selection, error) {
	b, err := m.catalog.GetBundle(id)
	if err != nil {
		return Selection{}, err
	}
	return Selection{ModuleIDs: b.Modules, Mode: ModeBundle, BundleID: b.ID}, nil
}

// Evaluate computes the price, quote and validation of a selection. A bundle
// the catalog no longer has is priced as a custom selection.
func (m *Machine) Evaluate(s Selection) Outcome {
	s = s.clone()
	quote, err := m.calculator.Quote(s.ModuleIDs, s.BundleID)
	if err != nil {
		quote, _ = m.calculator.Quote(s.ModuleIDs, "")
	}
	return Outcome{
		Selection:  s,
		PriceCents: quote.TotalCents,
		Quote:      quote,
		Validation: m.validator.Validate(s.ModuleIDs),
	}
}
