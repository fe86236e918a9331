package graph

// WildcardSelector matches every entity.
const WildcardSelector = "*"

// PropertyRule narrows which properties of a matching entity survive
// filtering. Selector decides whether the rule applies to an entity;
// Include names the properties to keep and Exclude names properties to
// drop. Exclude always wins over Include, even across rules.
type PropertyRule struct {
	// Selector is either the string "*" (wildcard), an empty map (also
	// wildcard), or a map of property names to expected values that must
	// all match for the rule to apply.
	Selector any `json:"selector"`

	// Include lists the properties to keep. When several matching rules
	// supply Include, the last one in rule order wins.
	Include []string `json:"include,omitempty"`

	// Exclude lists properties to drop. Excludes from all matching rules
	// accumulate and are never cleared.
	Exclude []string `json:"exclude,omitempty"`
}

// SelectorMatches reports whether the rule's selector applies to the
// entity. The wildcard string "*" and an empty map match every entity. A
// non-empty map matches when every named property matches its expected
// value: array-valued properties match by containment, two reference
// objects match by "@id" equality, and anything else by strict equality.
func (r PropertyRule) SelectorMatches(e Entity) bool {
	if s, ok := r.Selector.(string); ok {
		return s == WildcardSelector
	}
	sel, ok := asMap(r.Selector)
	if !ok {
		return false
	}
	for name, expected := range sel {
		actual, present := e[name]
		if !present || !valueMatches(actual, expected) {
			return false
		}
	}
	return true
}

func valueMatches(actual, expected any) bool {
	if arr, ok := actual.([]any); ok {
		for _, item := range arr {
			if valueMatches(item, expected) {
				return true
			}
		}
		return false
	}
	am, aok := asMap(actual)
	em, eok := asMap(expected)
	if aok && eok {
		aid, _ := am[IDKey].(string)
		eid, _ := em[IDKey].(string)
		return aid != "" && aid == eid
	}
	return actual == expected
}

// FilterEntityProperties applies the rules to one entity and returns a new
// entity holding only the surviving properties. Rules are evaluated in list
// order: the last matching rule's Include replaces any earlier include
// list, while Exclude entries from every matching rule accumulate. The kept
// set is the include list intersected with the entity's properties (or all
// properties when no matching rule supplied Include), minus the excludes.
// "@id" is always retained.
func FilterEntityProperties(e Entity, rules []PropertyRule) Entity {
	var include []string
	hasInclude := false
	exclude := make(map[string]struct{})

	for _, rule := range rules {
		if !rule.SelectorMatches(e) {
			continue
		}
		if rule.Include != nil {
			include = rule.Include
			hasInclude = true
		}
		for _, name := range rule.Exclude {
			exclude[name] = struct{}{}
		}
	}

	filtered := make(Entity)
	if id, ok := e[IDKey]; ok {
		filtered[IDKey] = id
	}

	if hasInclude {
		for _, name := range include {
			if _, excluded := exclude[name]; excluded {
				continue
			}
			if v, ok := e[name]; ok {
				filtered[name] = v
			}
		}
		return filtered
	}

	for name, v := range e {
		if name == IDKey {
			continue
		}
		if _, excluded := exclude[name]; excluded {
			continue
		}
		filtered[name] = v
	}
	return filtered
}

// FilterGraphProperties applies FilterEntityProperties to every entity in
// the graph unconditionally and returns the filtered graph in the same
// order.
func FilterGraphProperties(g Graph, rules []PropertyRule) Graph {
	if len(rules) == 0 {
		return g
	}
	out := make(Graph, len(g))
	for i, e := range g {
		out[i] = FilterEntityProperties(e, rules)
	}
	return out
}
