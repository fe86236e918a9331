package graph

import (
	"regexp"
	"sort"
)

// compactURIPattern matches identifier-shaped strings: a scheme prefix
// followed by a colon and a suffix, with no whitespace anywhere. Strings
// beginning with "http" are treated as descriptive URLs, not identifiers.
// The heuristic intentionally matches ordinary colon-bearing strings such
// as timestamps; callers relying on it accept that trade-off.
var compactURIPattern = regexp.MustCompile(`^[^\s:]+:\S+$`)

// IsCompactURI reports whether s looks like a compact identifier reference
// (e.g. "org:acme") rather than descriptive text or an http(s) URL.
func IsCompactURI(s string) bool {
	if len(s) >= 4 && s[:4] == "http" {
		return false
	}
	return compactURIPattern.MatchString(s)
}

// IsReferenceObject reports whether v is an object carrying a string "@id",
// making it a reference target for resolution purposes. Objects with
// additional properties alongside "@id" still qualify (nested entities with
// identity).
func IsReferenceObject(v any) bool {
	m, ok := asMap(v)
	if !ok {
		return false
	}
	_, ok = m[IDKey].(string)
	return ok
}

// IsPureReference reports whether v is an object containing only an "@id"
// property, i.e. a pure reference with no inline data.
func IsPureReference(v any) bool {
	m, ok := asMap(v)
	if !ok || len(m) != 1 {
		return false
	}
	_, ok = m[IDKey].(string)
	return ok
}

// References scans every property of the entity except its own "@id" and
// "@type" and returns the de-duplicated identifiers it references. String
// values are matched against the compact-URI heuristic; objects contribute
// their "@id" (if any) and are recursed into; arrays are recursed
// elementwise. Pure function, no side effects.
//
// Properties are scanned in sorted key order so results are deterministic
// across runs, which extraction relies on for stable discovery order.
func References(e Entity) []string {
	seen := make(map[string]struct{})
	var refs []string

	add := func(id string) {
		if _, ok := seen[id]; ok {
			return
		}
		seen[id] = struct{}{}
		refs = append(refs, id)
	}

	var walk func(v any)
	walk = func(v any) {
		switch val := v.(type) {
		case string:
			if IsCompactURI(val) {
				add(val)
			}
		case []any:
			for _, item := range val {
				walk(item)
			}
		default:
			m, ok := asMap(v)
			if !ok {
				return
			}
			if id, ok := m[IDKey].(string); ok {
				add(id)
			}
			for _, key := range sortedKeys(m) {
				walk(m[key])
			}
		}
	}

	for _, key := range sortedKeys(e) {
		if key == IDKey || key == TypeKey {
			continue
		}
		walk(e[key])
	}

	return refs
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// asMap unwraps object-shaped values regardless of whether they were built
// as raw maps (JSON decoding) or as Entity literals (Go code).
func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case Entity:
		return m, true
	default:
		return nil, false
	}
}
