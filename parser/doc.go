// Package parser decodes linked-data graphs from their wire forms: JSON
// entity arrays, single entities, {"@context","@graph"} documents, and
// newline-delimited JSON streams.
package parser
