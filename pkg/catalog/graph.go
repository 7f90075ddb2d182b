package catalog

// findCycle returns the first requirement cycle found, as a path that starts and
// ends with the same module id, or nil when the requirement graph is acyclic.
// Modules are visited in declaration order so the reported path is stable.
func findCycle(order []string, edges map[string][]string) []string {
	visited := make(map[string]bool)
	recStack := make(map[string]bool)
	path := make([]string, 0)

	var cycle []string
	var visit func(string) bool
	visit = func(id string) bool {
		visited[id] = true
		recStack[id] = true
		path = append(path, id)

		for _, dep := range edges[id] {
			if !visited[dep] {
				if visit(dep) {
					return true
				}
			} else if recStack[dep] {
				// Close the loop from the first occurrence of dep
				for i, p := range path {
					if p == dep {
						cycle = append(append([]string(nil), path[i:]...), dep)
						break
					}
				}
				return true
			}
		}

		recStack[id] = false
		path = path[:len(path)-1]
		return false
	}

	for _, id := range order {
		if visited[id] {
			continue
		}
		if visit(id) {
			return cycle
		}
	}
	return nil
}
