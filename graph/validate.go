package graph

import (
	"fmt"
	"sort"
)

// FindMissingReferences returns the sorted identifiers referenced anywhere
// in the graph that have no matching entity "@id". An empty result means
// every reference resolves.
func FindMissingReferences(g Graph) []string {
	present := make(map[string]struct{}, len(g))
	for _, e := range g {
		if id := e.ID(); id != "" {
			present[id] = struct{}{}
		}
	}

	missing := make(map[string]struct{})
	for _, e := range g {
		for _, ref := range References(e) {
			if _, ok := present[ref]; !ok {
				missing[ref] = struct{}{}
			}
		}
	}

	return sortedSet(missing)
}

// FindOrphans returns the sorted ids of entities that no entity in the
// graph references. A self-referential entity counts as referenced and is
// not an orphan.
func FindOrphans(g Graph) []string {
	referenced := make(map[string]struct{})
	for _, e := range g {
		for _, ref := range References(e) {
			referenced[ref] = struct{}{}
		}
	}

	orphans := make(map[string]struct{})
	for _, e := range g {
		id := e.ID()
		if id == "" {
			continue
		}
		if _, ok := referenced[id]; !ok {
			orphans[id] = struct{}{}
		}
	}

	return sortedSet(orphans)
}

// NestedEntity describes a record found inside another entity's property
// tree. Pure "@id"-only references are not reported; anonymous records and
// identified nested entities are.
type NestedEntity struct {
	// ParentID is the "@id" of the entity containing the record.
	ParentID string `json:"parent_id"`

	// Path locates the record within the parent, e.g. "location.geo" or
	// "knows[1]".
	Path string `json:"path"`

	// HasID reports whether the nested record itself carries an "@id".
	HasID bool `json:"has_id"`

	// Value is the nested record.
	Value map[string]any `json:"value"`
}

// FindNestedEntities scans every entity depth-first and reports each nested
// record along with the property path that reaches it. Pure references
// (objects holding only "@id") are skipped; everything else object-shaped
// is reported, then recursed into.
func FindNestedEntities(g Graph) []NestedEntity {
	var found []NestedEntity

	var walk func(parentID, path string, v any)
	walk = func(parentID, path string, v any) {
		switch val := v.(type) {
		case []any:
			for i, item := range val {
				walk(parentID, fmt.Sprintf("%s[%d]", path, i), item)
			}
		default:
			m, ok := asMap(v)
			if !ok {
				return
			}
			if IsPureReference(m) {
				return
			}
			_, hasID := m[IDKey].(string)
			found = append(found, NestedEntity{
				ParentID: parentID,
				Path:     path,
				HasID:    hasID,
				Value:    m,
			})
			for _, key := range sortedKeys(m) {
				if key == IDKey || key == TypeKey {
					continue
				}
				walk(parentID, path+"."+key, m[key])
			}
		}
	}

	for _, e := range g {
		id := e.ID()
		for _, key := range sortedKeys(e) {
			if key == IDKey || key == TypeKey {
				continue
			}
			walk(id, key, e[key])
		}
	}

	return found
}

func sortedSet(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for v := range set {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
