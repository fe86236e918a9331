package graph

// Reserved property names carrying entity identity and classification.
// All other properties are ordinary data values.
const (
	// IDKey is the reserved property holding an entity's unique identifier.
	IDKey = "@id"

	// TypeKey is the reserved property holding an entity's type label(s).
	TypeKey = "@type"
)

// Entity is a linked-data record: a set of named properties, optionally
// carrying an identifier under "@id" and one or more type labels under
// "@type". Property values are JSON-shaped: nil, bool, float64, string,
// []any, or nested map[string]any.
//
// Entities without an "@id" are inert: they are never indexed and never
// resolved as reference targets, but remain part of the raw graph slice.
type Entity map[string]any

// Graph is an ordered sequence of entities. Order is significant: entity
// filtering preserves it, and subgraph extraction reports discovery order.
type Graph []Entity

// ID returns the entity's identifier, or the empty string if the entity has
// no "@id" or the value is not a string.
func (e Entity) ID() string {
	id, _ := e[IDKey].(string)
	return id
}

// Types returns the entity's type labels. A scalar "@type" yields a single
// element; a list yields each string element in order. Entities without a
// "@type" yield nil.
func (e Entity) Types() []string {
	switch v := e[TypeKey].(type) {
	case string:
		return []string{v}
	case []string:
		return v
	case []any:
		types := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				types = append(types, s)
			}
		}
		return types
	default:
		return nil
	}
}

// HasType reports whether the entity carries the given type label, either as
// its scalar "@type" or as a member of its "@type" list.
func (e Entity) HasType(typ string) bool {
	for _, t := range e.Types() {
		if t == typ {
			return true
		}
	}
	return false
}

// Has reports whether the entity has a property with the given name.
func (e Entity) Has(name string) bool {
	_, ok := e[name]
	return ok
}

// Clone returns a deep copy of the entity. Nested maps and slices are copied
// recursively; scalar values are shared (they are immutable in JSON terms).
func (e Entity) Clone() Entity {
	if e == nil {
		return nil
	}
	return Entity(cloneMap(e))
}

// Clone returns a deep copy of the graph.
func (g Graph) Clone() Graph {
	if g == nil {
		return nil
	}
	out := make(Graph, len(g))
	for i, e := range g {
		out[i] = e.Clone()
	}
	return out
}

// IDs returns the identifiers of all identified entities in graph order.
// Inert entities (no "@id") are skipped.
func (g Graph) IDs() []string {
	ids := make([]string, 0, len(g))
	for _, e := range g {
		if id := e.ID(); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}

func cloneValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		return cloneMap(val)
	case Entity:
		return cloneMap(val)
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = cloneValue(item)
		}
		return out
	default:
		return v
	}
}

func cloneMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = cloneValue(v)
	}
	return out
}
