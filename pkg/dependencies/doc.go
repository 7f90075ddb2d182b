// Package dependencies provides requirement resolution over a module catalog.
//
// # Overview
//
// This package computes dependency-closed module selections, toggles modules
// in and out of a selection, and analyzes which modules depend on which.
//
// # Key Features
//
// Closure: Fixed-point transitive closure that always includes the baseline
// Toggle: Flip one module and re-close, with keep-orphans or cascade removal
// Graph Analysis: Direct/transitive dependents, impact analysis, topological order
// Visualization: Cytoscape.js graph for the module picker
//
// # Usage Example
//
// Resolve a selection:
//
//	resolver := dependencies.NewResolver(cat)
//	ids, err := resolver.Closure([]string{"pipeline"})
//	// ids == [contacts leads pipeline]
//
// Toggle a module off:
//
//	ids, err = resolver.Toggle(ids, "pipeline", dependencies.KeepOrphans)
//	// ids == [contacts leads]
//
// Impact analysis:
//
//	impact := resolver.Graph().GetImpactAnalysis("leads")
//	fmt.Printf("Modules affected: %d\n", impact.TotalImpact)
//
// # Related Packages
//
//   - pkg/catalog: Source of module requirements
//   - pkg/selection: Uses the resolver for toggle transitions
package dependencies
