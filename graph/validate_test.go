package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindMissingReferences(t *testing.T) {
	t.Run("reports unresolved references sorted", func(t *testing.T) {
		g := Graph{
			{"@id": "person:alice", "employer": "org:ghost", "knows": "person:bob"},
			{"@id": "person:bob", "city": map[string]any{"@id": "place:nowhere"}},
		}
		assert.Equal(t, []string{"org:ghost", "place:nowhere"}, FindMissingReferences(g))
	})

	t.Run("fully resolved graph yields empty result", func(t *testing.T) {
		g := Graph{
			{"@id": "person:alice", "knows": "person:bob"},
			{"@id": "person:bob"},
		}
		assert.Empty(t, FindMissingReferences(g))
	})

	t.Run("duplicate missing references reported once", func(t *testing.T) {
		g := Graph{
			{"@id": "a", "ref": "ghost:1"},
			{"@id": "b", "ref": "ghost:1"},
		}
		assert.Equal(t, []string{"ghost:1"}, FindMissingReferences(g))
	})
}

func TestFindOrphans(t *testing.T) {
	t.Run("reports unreferenced entities sorted", func(t *testing.T) {
		g := Graph{
			{"@id": "person:alice", "knows": "person:bob"},
			{"@id": "person:bob"},
			{"@id": "person:zed"},
			{"@id": "person:carol"},
		}
		assert.Equal(t, []string{"person:alice", "person:carol", "person:zed"}, FindOrphans(g))
	})

	t.Run("self-reference counts as referenced", func(t *testing.T) {
		g := Graph{
			{"@id": "node:self", "parent": "node:self"},
		}
		assert.Empty(t, FindOrphans(g))
	})

	t.Run("inert entities are never orphans", func(t *testing.T) {
		g := Graph{
			{"name": "anonymous"},
		}
		assert.Empty(t, FindOrphans(g))
	})
}

func TestFindNestedEntities(t *testing.T) {
	g := Graph{
		{
			"@id":  "person:alice",
			"name": "Alice",
			"location": map[string]any{
				"@type": "PostalAddress",
				"city":  "Berlin",
				"geo": map[string]any{
					"lat": 52.52,
				},
			},
			"knows": []any{
				map[string]any{"@id": "person:bob"},
				map[string]any{"@id": "person:carol", "name": "Carol"},
			},
		},
	}

	found := FindNestedEntities(g)
	require.Len(t, found, 3)

	byPath := make(map[string]NestedEntity, len(found))
	for _, n := range found {
		byPath[n.Path] = n
	}

	loc, ok := byPath["location"]
	require.True(t, ok)
	assert.Equal(t, "person:alice", loc.ParentID)
	assert.False(t, loc.HasID)

	geo, ok := byPath["location.geo"]
	require.True(t, ok)
	assert.False(t, geo.HasID)
	assert.Equal(t, 52.52, geo.Value["lat"])

	// knows[0] is a pure reference and must not be reported.
	_, ok = byPath["knows[0]"]
	assert.False(t, ok)

	carol, ok := byPath["knows[1]"]
	require.True(t, ok)
	assert.True(t, carol.HasID)
	assert.Equal(t, "Carol", carol.Value["name"])
}

func TestFindNestedEntitiesEmpty(t *testing.T) {
	g := Graph{
		{"@id": "person:alice", "name": "Alice", "knows": map[string]any{"@id": "person:bob"}},
		{"@id": "person:bob"},
	}
	assert.Empty(t, FindNestedEntities(g))
}
