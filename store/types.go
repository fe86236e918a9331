package store

import "fmt"

// Document is a rendered JSON-LD document cached under a caller-chosen key.
type Document struct {
	// Key is the cache key, unique per rendered configuration.
	Key string `json:"key"`

	// Body is the rendered document string.
	Body string `json:"body"`

	// ContextURL is the "@context" the document was rendered with.
	ContextURL string `json:"context_url,omitempty"`

	// EntityCount is the number of entities in the document's "@graph".
	EntityCount int `json:"entity_count"`

	// RenderedAt is the Unix timestamp in milliseconds when the document
	// was rendered.
	RenderedAt int64 `json:"rendered_at"`
}

// Validate checks that the document has the fields required for caching.
func (d Document) Validate() error {
	if d.Key == "" {
		return fmt.Errorf("document key cannot be empty")
	}
	if d.Body == "" {
		return fmt.Errorf("document body cannot be empty")
	}
	return nil
}

// UpdateEvent announces that a cached document changed. Events are
// published on the update channel so renderers holding stale copies can
// invalidate them.
type UpdateEvent struct {
	// ID is a unique event identifier.
	ID string `json:"id"`

	// Key is the cache key of the document that changed.
	Key string `json:"key"`

	// Deleted reports whether the document was removed rather than
	// replaced.
	Deleted bool `json:"deleted,omitempty"`

	// At is the Unix timestamp in milliseconds when the change happened.
	At int64 `json:"at"`
}
