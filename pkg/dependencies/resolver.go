package dependencies

import (
	"fmt"

	"github.com/keystonecrm/planner/pkg/catalog"
)

// RemovalPolicy decides what toggling a selected module off does to the
// modules that depend on it
type RemovalPolicy int

const (
	// KeepOrphans flips only the toggled module and recomputes the closure.
	// Removing a module that another selected module requires is therefore
	// undone by the closure, and modules left without dependents stay selected.
	KeepOrphans RemovalPolicy = iota
	// CascadeRemoval also removes every selected module that requires the
	// toggled module, directly or transitively.
	CascadeRemoval
)

func (p RemovalPolicy) String() string {
	switch p {
	case CascadeRemoval:
		return "cascade"
	default:
		return "keep-orphans"
	}
}

// ParseRemovalPolicy parses "cascade" or "keep-orphans"
func ParseRemovalPolicy(s string) (RemovalPolicy, error) {
	switch s {
	case "", "keep-orphans":
		return KeepOrphans, nil
	case "cascade":
		return CascadeRemoval, nil
	default:
		return KeepOrphans, fmt.Errorf("invalid removal policy: %s (must be keep-orphans or cascade)", s)
	}
}

// Resolver computes dependency-closed module selections
type Resolver struct {
	src   Source
	graph *Graph
}

// NewResolver creates a resolver for a catalog
func NewResolver(src Source) *Resolver {
	return &Resolver{
		src:   src,
		graph: NewGraph(src),
	}
}

// Graph returns the requirement graph the resolver works on
func (r *Resolver) Graph() *Graph {
	return r.graph
}

// Closure returns the smallest superset of ids that contains the baseline and
// every requirement of every member, in catalog order. It iterates full passes
// until a pass adds nothing, so chains of any depth are resolved.
func (r *Resolver) Closure(ids []string) ([]string, error) {
	result := map[string]bool{r.src.Baseline(): true}
	for _, id := range ids {
		if !r.src.Has(id) {
			return nil, fmt.Errorf("%w: %q", catalog.ErrUnknownModule, id)
		}
		result[id] = true
	}

	for {
		added := false
		for _, id := range keys(result) {
			reqs, err := r.src.RequirementsOf(id)
			if err != nil {
				return nil, err
			}
			for _, req := range reqs {
				if !result[req] {
					result[req] = true
					added = true
				}
			}
		}
		if !added {
			break
		}
	}

	return r.src.Order(keys(result)), nil
}

// Toggle flips membership of id in current and returns the new closure.
// Toggling the baseline returns a copy of current untouched, even when current
// is not closed. What happens to modules that depend on a
// removed module is governed by policy.
func (r *Resolver) Toggle(current []string, id string, policy RemovalPolicy) ([]string, error) {
	if id == r.src.Baseline() {
		return append([]string(nil), current...), nil
	}
	if !r.src.Has(id) {
		return nil, fmt.Errorf("%w: %q", catalog.ErrUnknownModule, id)
	}

	selected := make(map[string]bool, len(current))
	for _, cur := range current {
		selected[cur] = true
	}

	if selected[id] {
		delete(selected, id)
		if policy == CascadeRemoval {
			for _, dep := range r.graph.TransitiveDependents(id) {
				delete(selected, dep)
			}
		}
	} else {
		selected[id] = true
	}

	return r.Closure(keys(selected))
}

// TransitiveRequirements returns every module id requires, directly or
// through other modules, in catalog order. The module itself is not included.
func (r *Resolver) TransitiveRequirements(id string) ([]string, error) {
	if !r.src.Has(id) {
		return nil, fmt.Errorf("%w: %q", catalog.ErrUnknownModule, id)
	}

	visited := map[string]bool{id: true}
	queue := []string{id}
	result := make([]string, 0)
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		reqs, err := r.src.RequirementsOf(cur)
		if err != nil {
			return nil, err
		}
		for _, req := range reqs {
			if visited[req] {
				continue
			}
			visited[req] = true
			result = append(result, req)
			queue = append(queue, req)
		}
	}
	return r.src.Order(result), nil
}

// Dependents returns the members of within that require id, directly or
// transitively, in catalog order
func (r *Resolver) Dependents(id string, within []string) []string {
	member := make(map[string]bool, len(within))
	for _, w := range within {
		member[w] = true
	}

	out := make([]string, 0)
	for _, dep := range r.graph.TransitiveDependents(id) {
		if member[dep] {
			out = append(out, dep)
		}
	}
	return r.src.Order(out)
}

// IsClosed reports whether ids already satisfy every requirement and include the baseline
func (r *Resolver) IsClosed(ids []string) bool {
	closure, err := r.Closure(ids)
	if err != nil {
		return false
	}
	return len(closure) == len(r.src.Order(ids))
}

func keys(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
