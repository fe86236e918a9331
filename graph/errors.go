package graph

import "errors"

// Sentinel errors for graph operations.
// These errors can be used with errors.Is() for error checking.
var (
	// ErrEntityNotFound indicates that an entity id explicitly requested by
	// the caller does not exist in the graph. Only structural misuse raises
	// it: unknown subgraph roots and unresolved references silently narrow
	// results instead.
	//
	// Example:
	//	_, err := graph.InlineReferences(g, "org:missing")
	//	if errors.Is(err, graph.ErrEntityNotFound) {
	//	    log.Printf("root entity missing: %v", err)
	//	}
	ErrEntityNotFound = errors.New("entity not found")
)
