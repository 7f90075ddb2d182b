package validation

import (
	"fmt"
	"strings"
)

// Source is the catalog view the validator needs. *catalog.Catalog satisfies it.
type Source interface {
	Baseline() string
	Has(id string) bool
	RequirementsOf(id string) ([]string, error)
	Order(ids []string) []string
	Unknown(ids []string) []string
}

// Kind classifies a violation
type Kind string

const (
	KindMissingRequirement Kind = "missing_requirement"
	KindUnknownModule      Kind = "unknown_module"
	KindMissingBaseline    Kind = "missing_baseline"
)

// Violation is one gap between a selection and the catalog
type Violation struct {
	ModuleID           string `json:"module_id"`
	MissingRequirement string `json:"missing_requirement,omitempty"`
	Kind               Kind   `json:"kind"`
}

func (v Violation) String() string {
	switch v.Kind {
	case KindMissingRequirement:
		return fmt.Sprintf("%s requires %s", v.ModuleID, v.MissingRequirement)
	case KindUnknownModule:
		return fmt.Sprintf("unknown module %s", v.ModuleID)
	case KindMissingBaseline:
		return fmt.Sprintf("baseline module %s is not selected", v.ModuleID)
	default:
		return string(v.Kind)
	}
}

// Result is the outcome of validating a selection
type Result struct {
	Valid      bool        `json:"valid"`
	Violations []Violation `json:"violations"`
}

// MissingRequirements returns only the missing_requirement violations
func (r Result) MissingRequirements() []Violation {
	out := make([]Violation, 0, len(r.Violations))
	for _, v := range r.Violations {
		if v.Kind == KindMissingRequirement {
			out = append(out, v)
		}
	}
	return out
}

// Summary renders the violations on one line
func (r Result) Summary() string {
	if r.Valid {
		return "valid"
	}
	parts := make([]string, 0, len(r.Violations))
	for _, v := range r.Violations {
		parts = append(parts, v.String())
	}
	return strings.Join(parts, "; ")
}

// Validator checks selections against a catalog
type Validator struct {
	src Source
}

// NewValidator creates a validator for a catalog
func NewValidator(src Source) *Validator {
	return &Validator{src: src}
}

// Validate reports every violation in ids. Violations come in catalog order of
// the offending module, then requirement order. Unknown ids are reported last,
// in input order.
func (v *Validator) Validate(ids []string) Result {
	selected := make(map[string]bool, len(ids))
	for _, id := range ids {
		selected[id] = true
	}

	violations := make([]Violation, 0)

	baseline := v.src.Baseline()
	if !selected[baseline] {
		violations = append(violations, Violation{ModuleID: baseline, Kind: KindMissingBaseline})
	}

	for _, id := range v.src.Order(ids) {
		reqs, err := v.src.RequirementsOf(id)
		if err != nil {
			continue
		}
		for _, req := range reqs {
			if !selected[req] {
				violations = append(violations, Violation{
					ModuleID:           id,
					MissingRequirement: req,
					Kind:               KindMissingRequirement,
				})
			}
		}
	}

	for _, id := range v.src.Unknown(ids) {
		violations = append(violations, Violation{ModuleID: id, Kind: KindUnknownModule})
	}

	return Result{
		Valid:      len(violations) == 0,
		Violations: violations,
	}
}
