package graph

// ExtractSubgraph collects the entity with the given root id and everything
// it transitively references, in discovery order. Unknown roots and
// unresolved references are silently skipped, never an error. When rules
// are supplied, each entity is property-filtered before its outgoing
// references are computed, so filtered-out properties cannot contribute
// further reachable entities. A visited set makes traversal cycle-safe:
// every reachable entity appears exactly once.
func ExtractSubgraph(g Graph, rootID string, rules []PropertyRule) Graph {
	result := make(Graph, 0)
	visited := make(map[string]struct{})
	extractInto(&result, visited, g, rootID, rules)
	return result
}

// ExtractSubgraphs unions the subgraphs reachable from each root into one
// graph, preserving discovery order across roots. When two roots reach the
// same entity, the version recorded by the first root to discover it wins;
// a later root's differently-filtered view is not revisited.
func ExtractSubgraphs(g Graph, rootIDs []string, rules []PropertyRule) Graph {
	result := make(Graph, 0)
	visited := make(map[string]struct{})
	for _, rootID := range rootIDs {
		extractInto(&result, visited, g, rootID, rules)
	}
	return result
}

func extractInto(result *Graph, visited map[string]struct{}, g Graph, rootID string, rules []PropertyRule) {
	queue := []string{rootID}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]

		if _, ok := visited[id]; ok {
			continue
		}
		visited[id] = struct{}{}

		entity := FindEntity(g, id)
		if entity == nil {
			continue
		}
		if len(rules) > 0 {
			entity = FilterEntityProperties(entity, rules)
		}
		*result = append(*result, entity)

		for _, ref := range References(entity) {
			if _, ok := visited[ref]; !ok {
				queue = append(queue, ref)
			}
		}
	}
}

// ExtractSubgraphWithDepth behaves like ExtractSubgraph but stops following
// references beyond maxDepth hops from the root (the root itself is depth
// 1). A maxDepth below 1 yields an empty graph.
func ExtractSubgraphWithDepth(g Graph, rootID string, maxDepth int, rules []PropertyRule) Graph {
	result := make(Graph, 0)
	if maxDepth < 1 {
		return result
	}

	type item struct {
		id    string
		depth int
	}

	visited := make(map[string]struct{})
	queue := []item{{id: rootID, depth: 1}}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		if _, ok := visited[cur.id]; ok {
			continue
		}
		visited[cur.id] = struct{}{}

		entity := FindEntity(g, cur.id)
		if entity == nil {
			continue
		}
		if len(rules) > 0 {
			entity = FilterEntityProperties(entity, rules)
		}
		result = append(result, entity)

		if cur.depth >= maxDepth {
			continue
		}
		for _, ref := range References(entity) {
			if _, ok := visited[ref]; !ok {
				queue = append(queue, item{id: ref, depth: cur.depth + 1})
			}
		}
	}

	return result
}
