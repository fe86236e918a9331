// Package store provides a Redis-backed cache for rendered JSON-LD
// documents.
//
// Rendering a document is deterministic, so services that serve the same
// configuration repeatedly can cache the rendered string and skip the
// pipeline entirely. The cache stores documents under caller-chosen keys
// with an optional TTL and broadcasts an update event on every save or
// delete, letting subscribed renderers invalidate stale copies:
//
//	client, err := store.NewRedisClient(store.Options{URL: "redis://localhost:6379"})
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//
//	events, err := client.Subscribe(ctx)
//	if err != nil {
//	    return err
//	}
//	for event := range events {
//	    renderer.Invalidate(event.Key)
//	}
//
// The engine itself never touches the network; this package is a
// collaborator for callers that need cross-process caching.
package store
