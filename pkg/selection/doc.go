// Package selection implements the plan configuration state machine.
//
// # Overview
//
// A Selection is either custom (a dependency-closed set of modules) or a
// bundle (the module set of a preset, priced at the bundle rate). Machine is a
// pure reducer: given a selection and an event it returns the next selection
// and its Outcome (price, quote and validation). It holds no mutable state, so
// one Machine can serve any number of sessions concurrently.
//
// Controller wraps a Machine with the current selection for callers that want
// a stateful object. A Controller is not safe for concurrent use.
//
// # Transitions
//
//   - toggle(id): any state to Custom. In bundle mode the bundle's modules are
//     the starting set. Toggling the baseline module is a no-op.
//   - select_bundle(id): any state to Bundle(id) with the bundle's modules.
//   - reset: any state to Custom({baseline}).
//
// # Usage Example
//
//	m := selection.NewMachine(cat, selection.WithRemovalPolicy(dependencies.KeepOrphans))
//	ctrl := selection.NewController(m)
//
//	out, err := ctrl.Toggle("pipeline")
//	fmt.Println(out.Selection.ModuleIDs, out.PriceCents)
//
//	out, err = ctrl.SelectBundle("starter")
//	fmt.Println(out.Quote.SavingsCents)
//
// # Related Packages
//
//   - pkg/dependencies: Closure and toggle semantics
//   - pkg/validation: Violations reported in every Outcome
//   - pkg/pricing: Prices and quotes
//   - pkg/session: Persists selections between requests
package selection
