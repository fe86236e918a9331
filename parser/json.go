package parser

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/hyperweb-io/jsonld/graph"
)

// ParseGraph parses a JSON array of entities.
func ParseGraph(data []byte) (graph.Graph, error) {
	var raw []map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse entity array: %w", err)
	}
	g := make(graph.Graph, len(raw))
	for i, m := range raw {
		g[i] = graph.Entity(m)
	}
	return g, nil
}

// ParseEntity parses a single JSON entity object.
func ParseEntity(data []byte) (graph.Entity, error) {
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse entity: %w", err)
	}
	return graph.Entity(m), nil
}

// ParseDocument parses a {"@context", "@graph"} document and returns its
// graph. The "@context" value is returned alongside so callers can carry
// it through to re-rendering.
func ParseDocument(data []byte) (graph.Graph, string, error) {
	var doc struct {
		Context string           `json:"@context"`
		Graph   []map[string]any `json:"@graph"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, "", fmt.Errorf("failed to parse document: %w", err)
	}
	g := make(graph.Graph, len(doc.Graph))
	for i, m := range doc.Graph {
		g[i] = graph.Entity(m)
	}
	return g, doc.Context, nil
}

// ParseGraphLines parses newline-delimited JSON, one entity per line.
// Empty lines are skipped.
func ParseGraphLines(data []byte) (graph.Graph, error) {
	var g graph.Graph
	scanner := bufio.NewScanner(bytes.NewReader(data))

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Bytes()

		if len(bytes.TrimSpace(line)) == 0 {
			continue
		}

		var m map[string]any
		if err := json.Unmarshal(line, &m); err != nil {
			return nil, fmt.Errorf("failed to parse entity at line %d: %w", lineNum, err)
		}
		g = append(g, graph.Entity(m))
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading entity lines: %w", err)
	}

	return g, nil
}
