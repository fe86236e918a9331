package graph

// FilterOptions describes entity-level filtering criteria. Each criterion
// is an independent pass; empty criteria are no-ops. See FilterGraph for
// the pass order.
type FilterOptions struct {
	// IncludeTypes keeps only entities whose "@type" intersects this list.
	IncludeTypes []string

	// ExcludeTypes drops entities whose "@type" intersects this list.
	ExcludeTypes []string

	// IncludeIDs keeps only entities whose "@id" is in this list.
	IncludeIDs []string

	// ExcludeIDs drops entities whose "@id" is in this list.
	ExcludeIDs []string

	// RequiredProperties keeps only entities possessing every listed name.
	RequiredProperties []string

	// ExcludeEntitiesWithProperties drops entities possessing any listed name.
	ExcludeEntitiesWithProperties []string

	// Custom keeps only entities for which the predicate returns true.
	Custom func(Entity) bool

	// MaxEntities truncates the result to the first n entities after all
	// other passes. Zero means no limit.
	MaxEntities int
}

// FilterGraph applies the options to the graph as a fixed sequence of
// order-preserving passes, each narrowing the output of the previous one:
// include types, exclude types, include ids, exclude ids, required
// properties, excluded properties, custom predicate, and finally the
// max-entities truncation.
func FilterGraph(g Graph, opts FilterOptions) Graph {
	out := g

	if len(opts.IncludeTypes) > 0 {
		out = keep(out, func(e Entity) bool {
			return typesIntersect(e, opts.IncludeTypes)
		})
	}
	if len(opts.ExcludeTypes) > 0 {
		out = keep(out, func(e Entity) bool {
			return !typesIntersect(e, opts.ExcludeTypes)
		})
	}
	if len(opts.IncludeIDs) > 0 {
		ids := stringSet(opts.IncludeIDs)
		out = keep(out, func(e Entity) bool {
			_, ok := ids[e.ID()]
			return ok
		})
	}
	if len(opts.ExcludeIDs) > 0 {
		ids := stringSet(opts.ExcludeIDs)
		out = keep(out, func(e Entity) bool {
			_, ok := ids[e.ID()]
			return !ok
		})
	}
	if len(opts.RequiredProperties) > 0 {
		out = keep(out, func(e Entity) bool {
			for _, name := range opts.RequiredProperties {
				if !e.Has(name) {
					return false
				}
			}
			return true
		})
	}
	if len(opts.ExcludeEntitiesWithProperties) > 0 {
		out = keep(out, func(e Entity) bool {
			for _, name := range opts.ExcludeEntitiesWithProperties {
				if e.Has(name) {
					return false
				}
			}
			return true
		})
	}
	if opts.Custom != nil {
		out = keep(out, opts.Custom)
	}
	if opts.MaxEntities > 0 && len(out) > opts.MaxEntities {
		out = out[:opts.MaxEntities]
	}

	return out
}

func keep(g Graph, pred func(Entity) bool) Graph {
	out := make(Graph, 0, len(g))
	for _, e := range g {
		if pred(e) {
			out = append(out, e)
		}
	}
	return out
}

func typesIntersect(e Entity, types []string) bool {
	for _, t := range types {
		if e.HasType(t) {
			return true
		}
	}
	return false
}

func stringSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}
