package graph

import "fmt"

// InlineReferences replaces every pure "@id"-only reference in the graph
// with the referenced entity's full data, itself recursively inlined.
// Each recursion branch carries its own visited set: when a branch meets an
// id it already expanded, a bare {"@id": id} stub is emitted instead of
// recursing, so cyclic graphs inline without looping. References to ids
// absent from the graph are left as-is.
//
// With a non-empty rootID only that entity is returned; a missing root
// yields ErrEntityNotFound.
func InlineReferences(g Graph, rootID string) (Graph, error) {
	if rootID != "" {
		root := FindEntity(g, rootID)
		if root == nil {
			return nil, fmt.Errorf("inline references: %q: %w", rootID, ErrEntityNotFound)
		}
		return Graph{inlineEntity(g, root, map[string]struct{}{rootID: {}})}, nil
	}

	out := make(Graph, len(g))
	for i, e := range g {
		visited := make(map[string]struct{})
		if id := e.ID(); id != "" {
			visited[id] = struct{}{}
		}
		out[i] = inlineEntity(g, e, visited)
	}
	return out, nil
}

func inlineEntity(g Graph, e Entity, visited map[string]struct{}) Entity {
	out := make(Entity, len(e))
	for key, v := range e {
		if key == IDKey || key == TypeKey {
			out[key] = v
			continue
		}
		out[key] = inlineValue(g, v, visited)
	}
	return out
}

func inlineValue(g Graph, v any, visited map[string]struct{}) any {
	switch val := v.(type) {
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = inlineValue(g, item, visited)
		}
		return out
	default:
		m, ok := asMap(v)
		if !ok {
			return v
		}
		if IsPureReference(m) {
			id, _ := m[IDKey].(string)
			if _, seen := visited[id]; seen {
				return map[string]any{IDKey: id}
			}
			target := FindEntity(g, id)
			if target == nil {
				return v
			}
			branch := copyVisited(visited)
			branch[id] = struct{}{}
			return map[string]any(inlineEntity(g, target, branch))
		}
		out := make(map[string]any, len(m))
		for key, nested := range m {
			if key == IDKey || key == TypeKey {
				out[key] = nested
				continue
			}
			out[key] = inlineValue(g, nested, visited)
		}
		return out
	}
}

func copyVisited(visited map[string]struct{}) map[string]struct{} {
	out := make(map[string]struct{}, len(visited)+1)
	for id := range visited {
		out[id] = struct{}{}
	}
	return out
}
