// Package jsonld provides a graph-filtering and subgraph-extraction engine
// for linked-data documents: an immutable, additively-mergeable build
// configuration and a layered processing pipeline that turns it into an
// output graph, a JSON document, or an embeddable script tag.
//
// # Core Concepts
//
// The engine is organized around a few key concepts:
//
//   - Entities: records keyed by "@id", connected by identifier references
//   - Configurations: immutable build specifications composed through
//     chained, concatenating setters and merges
//   - Builders: thin orchestrators that run the pipeline once and memoize
//     the output
//   - Pipes: user-supplied whole-graph transforms applied last
//
// # Configuration
//
// A Config is built purely through chained calls; every setter returns a
// new value, so configurations compose predictably across reuse:
//
//	cfg := jsonld.NewConfig().
//		WithBaseGraph(g).
//		IncludeTypes("Person").
//		Subgraph("org:acme").
//		MaxEntities(25)
//
// List-valued fields concatenate on repeated calls rather than replacing;
// only the Clear* operations reset them. Merge combines two configurations
// with the same discipline.
//
// # Building
//
// A Builder owns a Config and computes its output at most once:
//
//	b := jsonld.NewBuilder(cfg)
//	doc, err := b.Document(ctx, jsonld.WithScriptTag(true), jsonld.WithScriptID("org-data"))
//
// Identical configurations and base graphs always produce byte-identical
// output. Unknown subgraph roots and filter criteria that match nothing
// narrow the result silently; only structural misuse (a missing or
// malformed base graph, an entity limit below 1) fails the build.
//
// The graph subpackage holds the underlying extraction, filtering, and
// validation primitives; predicate compiles CEL entity predicates; manifest
// loads configurations from YAML; store caches rendered documents in
// Redis; registry shares named filter presets through etcd.
package jsonld
