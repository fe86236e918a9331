// Package predicate compiles CEL expressions into entity predicates for
// use as custom filters.
//
// Filtering configurations accept an arbitrary func(graph.Entity) bool as
// their custom criterion. This package produces such functions from
// declarative Common Expression Language source, which lets manifests,
// registries, and other configuration channels carry custom filters as
// plain strings:
//
//	keepAdults, err := predicate.Compile(`entity["age"] >= 18.0`)
//	if err != nil {
//	    return err
//	}
//	cfg = cfg.CustomFilter(keepAdults)
//
// Expressions are compiled and planned once; evaluation per entity is a
// pure in-memory operation. An expression that fails to evaluate for a
// particular entity (for example, a missing property) drops that entity
// instead of aborting the filter pass.
package predicate
