package jsonld

import (
	"encoding/json"
	"fmt"

	"github.com/hyperweb-io/jsonld/graph"
)

// DefaultContextURL is the "@context" emitted when none is configured.
const DefaultContextURL = "https://schema.org"

// Document is the serializable output form of a built graph.
type Document struct {
	Context string      `json:"@context"`
	Graph   graph.Graph `json:"@graph"`
}

// RenderDocument serializes the graph as a {"@context", "@graph"} JSON
// document, honoring the rendering options (pretty printing, context URL,
// optional script-tag wrapping with an optional id attribute).
func RenderDocument(g graph.Graph, opts ...RenderOption) (string, error) {
	cfg := defaultRenderConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	doc := Document{Context: cfg.contextURL, Graph: g}

	var (
		data []byte
		err  error
	)
	if cfg.prettyPrint {
		data, err = json.MarshalIndent(doc, "", "  ")
	} else {
		data, err = json.Marshal(doc)
	}
	if err != nil {
		return "", NewInternalError("RenderDocument", fmt.Errorf("marshal document: %w", err))
	}

	if !cfg.withScriptTag {
		return string(data), nil
	}
	return wrapScriptTag(string(data), cfg.scriptID), nil
}

// wrapScriptTag wraps a serialized document in a JSON-LD script tag. The id
// attribute is emitted only when non-empty.
func wrapScriptTag(doc, scriptID string) string {
	if scriptID != "" {
		return fmt.Sprintf("<script id=%q type=%q>%s</script>", scriptID, "application/ld+json", doc)
	}
	return fmt.Sprintf("<script type=%q>%s</script>", "application/ld+json", doc)
}

// GraphFromAny coerces an untyped decoded JSON value into a Graph. The
// value must be a sequence of objects; anything else yields
// ErrInvalidBaseGraph. Non-object elements within the sequence are
// rejected too.
func GraphFromAny(v any) (graph.Graph, error) {
	switch val := v.(type) {
	case graph.Graph:
		return val, nil
	case []graph.Entity:
		return graph.Graph(val), nil
	case []any:
		g := make(graph.Graph, 0, len(val))
		for i, item := range val {
			m, ok := item.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("element %d is not an object: %w", i, ErrInvalidBaseGraph)
			}
			g = append(g, graph.Entity(m))
		}
		return g, nil
	case []map[string]any:
		g := make(graph.Graph, 0, len(val))
		for _, item := range val {
			g = append(g, graph.Entity(item))
		}
		return g, nil
	default:
		return nil, fmt.Errorf("base graph is %T, want a sequence: %w", v, ErrInvalidBaseGraph)
	}
}
