package dependencies

// CytoscapeNode represents a node in Cytoscape.js format
type CytoscapeNode struct {
	Data CytoscapeNodeData `json:"data"`
}

// CytoscapeNodeData contains node data for Cytoscape.js
type CytoscapeNodeData struct {
	ID       string `json:"id"`
	Type     string `json:"type"` // "baseline" or "module"
	Selected bool   `json:"selected"`
	Level    int    `json:"level"`
}

// CytoscapeEdge represents an edge in Cytoscape.js format
type CytoscapeEdge struct {
	Data CytoscapeEdgeData `json:"data"`
}

// CytoscapeEdgeData contains edge data for Cytoscape.js
type CytoscapeEdgeData struct {
	ID     string `json:"id"`
	Source string `json:"source"`
	Target string `json:"target"`
}

// CytoscapeGraph represents the complete graph in Cytoscape.js format
type CytoscapeGraph struct {
	Nodes []CytoscapeNode `json:"nodes"`
	Edges []CytoscapeEdge `json:"edges"`
}

// BuildCytoscapeGraph renders the requirement graph for the module picker.
// Edges point from a module to the module it requires. Level is the length of
// the longest requirement chain below the module, so the baseline is level 0.
func BuildCytoscapeGraph(r *Resolver, selected []string) *CytoscapeGraph {
	g := r.Graph()
	isSelected := make(map[string]bool, len(selected))
	for _, id := range selected {
		isSelected[id] = true
	}

	level := make(map[string]int, len(g.order))
	out := &CytoscapeGraph{
		Nodes: make([]CytoscapeNode, 0, len(g.order)),
		Edges: make([]CytoscapeEdge, 0),
	}

	for _, id := range g.TopologicalOrder() {
		lvl := 0
		for _, req := range g.edges[id] {
			if level[req]+1 > lvl {
				lvl = level[req] + 1
			}
		}
		level[id] = lvl
	}

	for _, id := range g.order {
		nodeType := "module"
		if id == r.src.Baseline() {
			nodeType = "baseline"
		}
		out.Nodes = append(out.Nodes, CytoscapeNode{Data: CytoscapeNodeData{
			ID:       id,
			Type:     nodeType,
			Selected: isSelected[id] || id == r.src.Baseline(),
			Level:    level[id],
		}})

		for _, req := range g.edges[id] {
			out.Edges = append(out.Edges, CytoscapeEdge{Data: CytoscapeEdgeData{
				ID:     id + "->" + req,
				Source: id,
				Target: req,
			}})
		}
	}
	return out
}
