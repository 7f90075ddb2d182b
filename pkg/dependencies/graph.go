package dependencies

import (
	"github.com/keystonecrm/planner/pkg/catalog"
)

// Source is the read-only view of a module catalog the resolver works against.
// *catalog.Catalog satisfies it.
type Source interface {
	Baseline() string
	Has(id string) bool
	AllModules() []catalog.Module
	RequirementsOf(id string) ([]string, error)
	Order(ids []string) []string
}

// Dependency is one edge of the requirement graph as reported to callers
type Dependency struct {
	Module string `json:"module"`
	Type   string `json:"type"` // "direct" or "transitive"
}

// Graph is the requirement graph of a catalog with reverse edges precomputed
type Graph struct {
	order      []string
	edges      map[string][]string // module -> modules it requires
	dependents map[string][]string // module -> modules that require it directly
}

// NewGraph builds the requirement graph of src
func NewGraph(src Source) *Graph {
	modules := src.AllModules()
	g := &Graph{
		order:      make([]string, 0, len(modules)),
		edges:      make(map[string][]string, len(modules)),
		dependents: make(map[string][]string, len(modules)),
	}
	for _, m := range modules {
		g.order = append(g.order, m.ID)
		g.edges[m.ID] = m.Requires
		for _, req := range m.Requires {
			g.dependents[req] = append(g.dependents[req], m.ID)
		}
	}
	return g
}

// Has reports whether the graph contains the module
func (g *Graph) Has(id string) bool {
	_, ok := g.edges[id]
	return ok
}

// Requirements returns the direct requirements of a module
func (g *Graph) Requirements(id string) []Dependency {
	deps := make([]Dependency, 0, len(g.edges[id]))
	for _, req := range g.edges[id] {
		deps = append(deps, Dependency{Module: req, Type: "direct"})
	}
	return deps
}

// DirectDependents returns the modules that list id as a requirement
func (g *Graph) DirectDependents(id string) []Dependency {
	deps := make([]Dependency, 0, len(g.dependents[id]))
	for _, dep := range g.dependents[id] {
		deps = append(deps, Dependency{Module: dep, Type: "direct"})
	}
	return deps
}

// TransitiveDependents returns every module that requires id directly or
// through a chain of requirements, in breadth-first order
func (g *Graph) TransitiveDependents(id string) []string {
	visited := map[string]bool{id: true}
	queue := []string{id}
	result := make([]string, 0)

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, dep := range g.dependents[cur] {
			if visited[dep] {
				continue
			}
			visited[dep] = true
			result = append(result, dep)
			queue = append(queue, dep)
		}
	}
	return result
}

// TopologicalOrder returns all modules with every module after the modules it
// requires. Ties keep catalog declaration order.
func (g *Graph) TopologicalOrder() []string {
	visited := make(map[string]bool, len(g.order))
	result := make([]string, 0, len(g.order))

	// Catalogs are checked for cycles at load time, so a plain DFS suffices.
	var visit func(string)
	visit = func(id string) {
		if visited[id] {
			return
		}
		visited[id] = true
		for _, req := range g.edges[id] {
			visit(req)
		}
		result = append(result, id)
	}

	for _, id := range g.order {
		visit(id)
	}
	return result
}

// ImpactAnalysis describes which modules stop being satisfiable without a module
type ImpactAnalysis struct {
	Module               string       `json:"module"`
	DirectDependents     []Dependency `json:"direct_dependents"`
	TransitiveDependents []Dependency `json:"transitive_dependents"`
	TotalImpact          int          `json:"total_impact"`
}

// GetImpactAnalysis returns what would be affected by removing a module
func (g *Graph) GetImpactAnalysis(id string) *ImpactAnalysis {
	direct := g.DirectDependents(id)
	isDirect := make(map[string]bool, len(direct))
	for _, d := range direct {
		isDirect[d.Module] = true
	}

	transitive := make([]Dependency, 0)
	for _, dep := range g.TransitiveDependents(id) {
		if !isDirect[dep] {
			transitive = append(transitive, Dependency{Module: dep, Type: "transitive"})
		}
	}

	return &ImpactAnalysis{
		Module:               id,
		DirectDependents:     direct,
		TransitiveDependents: transitive,
		TotalImpact:          len(direct) + len(transitive),
	}
}
