// Package graph implements the in-memory linked-data graph model: entities
// keyed by "@id", reference resolution between them, cycle-safe subgraph
// extraction, property- and entity-level filtering, and structural
// validation (missing references, orphans, nested records, reference
// inlining).
//
// # Data Model
//
// A Graph is an ordered slice of Entity values. An Entity is a map of
// property names to JSON-shaped values. Two property names are reserved:
// "@id" holds the entity's identifier and "@type" holds one or more type
// labels. Everything else is ordinary data, including references to other
// entities.
//
// A reference is any value that identifies another entity:
//
//   - an object carrying an "@id" (with or without additional properties)
//   - a compact-URI string such as "org:acme" (a scheme prefix, a colon,
//     no whitespace, not starting with "http")
//   - an array whose elements are themselves references
//
// # Extraction
//
// ExtractSubgraph walks the implicit graph encoded by those references with
// a worklist and a visited set, so cyclic graphs terminate and every
// reachable entity appears exactly once, in discovery order:
//
//	sub := graph.ExtractSubgraph(g, "org:acme", nil)
//
// # Filtering
//
// FilterEntityProperties narrows which properties of a matching entity
// survive, driven by ordered PropertyRule values; FilterGraph narrows which
// whole entities survive through a fixed sequence of passes. Both are pure
// functions over their inputs.
//
// # Validation
//
// FindMissingReferences, FindOrphans and FindNestedEntities report
// structural issues without failing; InlineReferences materializes pure
// references in place, breaking cycles with bare {"@id"} stubs.
//
// All operations are synchronous, allocation-only, and deterministic:
// identical inputs always produce identical outputs.
package graph
