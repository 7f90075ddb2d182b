// Package validation checks module selections against catalog requirements.
//
// # Overview
//
// Selections produced by the dependency resolver are always valid. This package
// exists for selections arriving from outside the engine, such as a plan saved
// before the catalog changed. Problems are returned as data, never as errors,
// and the caller decides whether to block or surface them.
//
// # Violation Kinds
//
//   - missing_requirement: a selected module requires a module that is not selected
//   - unknown_module: the selection names a module the catalog does not know
//   - missing_baseline: the baseline module is absent
//
// # Usage Example
//
//	validator := validation.NewValidator(cat)
//	result := validator.Validate([]string{"contacts", "pipeline"})
//	for _, v := range result.Violations {
//		fmt.Printf("%s: %s requires %s\n", v.Kind, v.ModuleID, v.MissingRequirement)
//	}
//
// # Related Packages
//
//   - pkg/dependencies: Closure computation that repairs invalid selections
//   - pkg/selection: Runs the validator after every transition
package validation
