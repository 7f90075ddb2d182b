package dependencies

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGraph_Requirements(t *testing.T) {
	g := NewGraph(newChainCatalog(t))

	assert.True(t, g.Has("reports"))
	assert.False(t, g.Has("ghost"))

	assert.Equal(t, []Dependency{
		{Module: "pipeline", Type: "direct"},
		{Module: "qr", Type: "direct"},
	}, g.Requirements("reports"))
	assert.Empty(t, g.Requirements("market"))
}

func TestGraph_Dependents(t *testing.T) {
	g := NewGraph(newChainCatalog(t))

	assert.Equal(t, []Dependency{
		{Module: "pipeline", Type: "direct"},
		{Module: "qr", Type: "direct"},
	}, g.DirectDependents("leads"))

	assert.ElementsMatch(t, []string{"pipeline", "qr", "reports"}, g.TransitiveDependents("leads"))
	assert.Empty(t, g.TransitiveDependents("reports"))
	assert.Empty(t, g.TransitiveDependents("market"))
}

func TestGraph_TopologicalOrder(t *testing.T) {
	g := NewGraph(newChainCatalog(t))
	order := g.TopologicalOrder()
	require.Len(t, order, 6)

	pos := make(map[string]int, len(order))
	for i, id := range order {
		pos[id] = i
	}
	for _, id := range order {
		for _, req := range g.edges[id] {
			assert.Less(t, pos[req], pos[id], "%s must come after %s", id, req)
		}
	}
}

func TestGraph_ImpactAnalysis(t *testing.T) {
	g := NewGraph(newChainCatalog(t))

	impact := g.GetImpactAnalysis("leads")
	assert.Equal(t, "leads", impact.Module)
	assert.Len(t, impact.DirectDependents, 2)
	assert.Equal(t, []Dependency{{Module: "reports", Type: "transitive"}}, impact.TransitiveDependents)
	assert.Equal(t, 3, impact.TotalImpact)

	impact = g.GetImpactAnalysis("market")
	assert.Equal(t, 0, impact.TotalImpact)
}

func TestBuildCytoscapeGraph(t *testing.T) {
	r := NewResolver(newChainCatalog(t))
	out := BuildCytoscapeGraph(r, []string{"pipeline"})

	require.Len(t, out.Nodes, 6)
	nodes := make(map[string]CytoscapeNodeData, len(out.Nodes))
	for _, n := range out.Nodes {
		nodes[n.Data.ID] = n.Data
	}

	assert.Equal(t, "baseline", nodes["baseline"].Type)
	assert.True(t, nodes["baseline"].Selected)
	assert.Equal(t, 0, nodes["baseline"].Level)

	assert.Equal(t, "module", nodes["pipeline"].Type)
	assert.True(t, nodes["pipeline"].Selected)
	assert.Equal(t, 2, nodes["pipeline"].Level)

	assert.False(t, nodes["qr"].Selected)
	assert.Equal(t, 3, nodes["reports"].Level)
	assert.Equal(t, 0, nodes["market"].Level)

	// leads, pipeline, qr, reports x2
	assert.Len(t, out.Edges, 5)
	assert.Contains(t, out.Edges, CytoscapeEdge{Data: CytoscapeEdgeData{ID: "reports->qr", Source: "reports", Target: "qr"}})
}
