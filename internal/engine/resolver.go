package engine

import "sort"

// ResolveOrder produces a linear execution order for a set of named nodes,
// each declaring zero or more prerequisite names. A node is ready once every
// prerequisite is already ordered or present in completed. Ties among
// equally-ready nodes break by ascending identifier, so resolution is
// deterministic across runs.
//
// When no node is ready (a genuine cycle, or a prerequisite naming a node
// outside the set), the resolver does not deadlock: it forces the lowest
// remaining identifier into the order and reports it in forced. Callers must
// surface forced nodes as configuration warnings; the run proceeds in an
// order that violates the declared dependency rather than blocking forever.
func ResolveOrder(deps map[string][]string, completed map[string]struct{}) (order, forced []string) {
	remaining := make(map[string]struct{}, len(deps))
	for id := range deps {
		remaining[id] = struct{}{}
	}
	ordered := make(map[string]struct{}, len(deps))

	for len(remaining) > 0 {
		var ready []string
		for id := range remaining {
			satisfied := true
			for _, dep := range deps[id] {
				if _, ok := ordered[dep]; ok {
					continue
				}
				if _, ok := completed[dep]; ok {
					continue
				}
				satisfied = false
				break
			}
			if satisfied {
				ready = append(ready, id)
			}
		}

		if len(ready) == 0 {
			lowest := ""
			for id := range remaining {
				if lowest == "" || id < lowest {
					lowest = id
				}
			}
			forced = append(forced, lowest)
			ready = []string{lowest}
		}

		sort.Strings(ready)
		for _, id := range ready {
			order = append(order, id)
			ordered[id] = struct{}{}
			delete(remaining, id)
		}
	}

	return order, forced
}
