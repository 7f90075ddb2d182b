package planner

import (
	"fmt"

	"github.com/keystonecrm/planner/pkg/catalog"
	"github.com/keystonecrm/planner/pkg/dependencies"
	"github.com/keystonecrm/planner/pkg/pricing"
	"github.com/keystonecrm/planner/pkg/selection"
	"github.com/keystonecrm/planner/pkg/validation"
)

// BundleView is a bundle with its pricing, for rendering
type BundleView struct {
	catalog.Bundle
	CustomEquivalentCents int64 `json:"custom_equivalent_cents"`
	SavingsCents          int64 `json:"savings_cents"`
}

// Engine is a loaded catalog plus the components that work on it
type Engine struct {
	catalog    *catalog.Catalog
	resolver   *dependencies.Resolver
	validator  *validation.Validator
	calculator *pricing.Calculator
	machine    *selection.Machine
	bundles    []BundleView
	policy     dependencies.RemovalPolicy
}

// Option configures an Engine
type Option func(*Engine)

// WithRemovalPolicy sets the toggle-off policy for every controller the engine creates
func WithRemovalPolicy(p dependencies.RemovalPolicy) Option {
	return func(e *Engine) {
		e.policy = p
	}
}

// LoadCatalogs builds an engine from catalog documents
func LoadCatalogs(modules catalog.ModuleConfig, bundles catalog.BundleConfig, opts ...Option) (*Engine, error) {
	cat, err := catalog.New(modules, bundles)
	if err != nil {
		return nil, err
	}
	return newEngine(cat, opts...)
}

// LoadFromFiles builds an engine from YAML catalog files
func LoadFromFiles(modulesPath, bundlesPath string, opts ...Option) (*Engine, error) {
	cat, err := catalog.LoadFiles(modulesPath, bundlesPath)
	if err != nil {
		return nil, err
	}
	return newEngine(cat, opts...)
}

// LoadFromDir builds an engine from the modules and bundles files in dir
func LoadFromDir(dir string, opts ...Option) (*Engine, error) {
	cat, err := catalog.LoadDir(dir)
	if err != nil {
		return nil, err
	}
	return newEngine(cat, opts...)
}

// Default builds an engine over the built-in catalog
func Default(opts ...Option) (*Engine, error) {
	return LoadCatalogs(catalog.DefaultModuleConfig(), catalog.DefaultBundleConfig(), opts...)
}

func newEngine(cat *catalog.Catalog, opts ...Option) (*Engine, error) {
	e := &Engine{
		catalog:    cat,
		resolver:   dependencies.NewResolver(cat),
		validator:  validation.NewValidator(cat),
		calculator: pricing.NewCalculator(cat),
		policy:     dependencies.KeepOrphans,
	}
	for _, opt := range opts {
		opt(e)
	}

	prices, err := e.calculator.BundlePrices()
	if err != nil {
		return nil, err
	}
	for i, b := range cat.AllBundles() {
		e.bundles = append(e.bundles, BundleView{
			Bundle:                b,
			CustomEquivalentCents: prices[i].CustomEquivalentCents,
			SavingsCents:          prices[i].SavingsCents,
		})
	}

	e.machine = selection.NewMachine(cat, selection.WithRemovalPolicy(e.policy))
	return e, nil
}

// Catalog returns the engine's catalog
func (e *Engine) Catalog() *catalog.Catalog {
	return e.catalog
}

// Resolver returns the dependency resolver
func (e *Engine) Resolver() *dependencies.Resolver {
	return e.resolver
}

// Validator returns the selection validator
func (e *Engine) Validator() *validation.Validator {
	return e.validator
}

// Calculator returns the price calculator
func (e *Engine) Calculator() *pricing.Calculator {
	return e.calculator
}

// Machine returns the selection state machine
func (e *Engine) Machine() *selection.Machine {
	return e.machine
}

// Policy returns the toggle-off policy
func (e *Engine) Policy() dependencies.RemovalPolicy {
	return e.policy
}

// ListModules returns every module in catalog order
func (e *Engine) ListModules() []catalog.Module {
	return e.catalog.AllModules()
}

// ListBundles returns every bundle in catalog order with its savings
func (e *Engine) ListBundles() []BundleView {
	out := make([]BundleView, len(e.bundles))
	for i, b := range e.bundles {
		b.Modules = append([]string(nil), b.Modules...)
		out[i] = b
	}
	return out
}

// GetBundle returns one bundle with its savings
func (e *Engine) GetBundle(id string) (BundleView, error) {
	for _, b := range e.ListBundles() {
		if b.ID == id {
			return b, nil
		}
	}
	return BundleView{}, fmt.Errorf("%w: %q", catalog.ErrUnknownBundle, id)
}

// NewController starts a configuration session at the baseline-only selection
func (e *Engine) NewController() *selection.Controller {
	return selection.NewController(e.machine)
}

// NewSeededController starts a configuration session from a saved plan
func (e *Engine) NewSeededController(ids []string, bundleID string) (*selection.Controller, error) {
	return selection.NewSeededController(e.machine, ids, bundleID)
}

// Evaluate prices and validates an arbitrary selection
func (e *Engine) Evaluate(s selection.Selection) selection.Outcome {
	return e.machine.Evaluate(s)
}
