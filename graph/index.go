package graph

// FindEntity returns the first entity in the graph whose "@id" equals id,
// or nil when no entity matches. Lookup is a linear scan; graphs are small
// enough that no persistent index is maintained.
func FindEntity(g Graph, id string) Entity {
	for _, e := range g {
		if e.ID() == id {
			return e
		}
	}
	return nil
}

// FindEntities returns all entities whose "@id" is in ids, in graph order.
// Duplicate ids are collapsed; unknown ids are silently ignored.
func FindEntities(g Graph, ids []string) Graph {
	if len(ids) == 0 {
		return Graph{}
	}
	want := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		want[id] = struct{}{}
	}
	matches := make(Graph, 0, len(want))
	for _, e := range g {
		id := e.ID()
		if id == "" {
			continue
		}
		if _, ok := want[id]; ok {
			matches = append(matches, e)
			delete(want, id)
		}
	}
	return matches
}

// FindEntitiesByType returns all entities carrying the given type label,
// whether "@type" is a scalar or a list, in graph order.
func FindEntitiesByType(g Graph, typ string) Graph {
	matches := make(Graph, 0)
	for _, e := range g {
		if e.HasType(typ) {
			matches = append(matches, e)
		}
	}
	return matches
}
