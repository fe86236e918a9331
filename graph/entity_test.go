package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntityID(t *testing.T) {
	tests := []struct {
		name   string
		entity Entity
		want   string
	}{
		{
			name:   "string id",
			entity: Entity{"@id": "person:alice"},
			want:   "person:alice",
		},
		{
			name:   "missing id",
			entity: Entity{"name": "Alice"},
			want:   "",
		},
		{
			name:   "non-string id",
			entity: Entity{"@id": 42},
			want:   "",
		},
		{
			name:   "nil entity",
			entity: nil,
			want:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.entity.ID())
		})
	}
}

func TestEntityTypes(t *testing.T) {
	tests := []struct {
		name   string
		entity Entity
		want   []string
	}{
		{
			name:   "scalar type",
			entity: Entity{"@type": "Person"},
			want:   []string{"Person"},
		},
		{
			name:   "string list",
			entity: Entity{"@type": []string{"Person", "Employee"}},
			want:   []string{"Person", "Employee"},
		},
		{
			name:   "any list",
			entity: Entity{"@type": []any{"Person", "Employee"}},
			want:   []string{"Person", "Employee"},
		},
		{
			name:   "any list with non-strings skipped",
			entity: Entity{"@type": []any{"Person", 7, "Employee"}},
			want:   []string{"Person", "Employee"},
		},
		{
			name:   "no type",
			entity: Entity{"@id": "person:alice"},
			want:   nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.entity.Types())
		})
	}
}

func TestEntityHasType(t *testing.T) {
	e := Entity{"@type": []any{"Person", "Employee"}}

	assert.True(t, e.HasType("Person"))
	assert.True(t, e.HasType("Employee"))
	assert.False(t, e.HasType("Organization"))
	assert.False(t, Entity{}.HasType("Person"))
}

func TestEntityClone(t *testing.T) {
	t.Run("deep copies nested structures", func(t *testing.T) {
		original := Entity{
			"@id":  "person:alice",
			"name": "Alice",
			"address": map[string]any{
				"city": "Berlin",
			},
			"knows": []any{
				map[string]any{"@id": "person:bob"},
			},
		}

		clone := original.Clone()
		require.Equal(t, original, clone)

		clone["name"] = "Changed"
		clone["address"].(map[string]any)["city"] = "Munich"
		clone["knows"].([]any)[0].(map[string]any)["@id"] = "person:eve"

		assert.Equal(t, "Alice", original["name"])
		assert.Equal(t, "Berlin", original["address"].(map[string]any)["city"])
		assert.Equal(t, "person:bob", original["knows"].([]any)[0].(map[string]any)["@id"])
	})

	t.Run("nil entity clones to nil", func(t *testing.T) {
		var e Entity
		assert.Nil(t, e.Clone())
	})

	t.Run("nested Entity values become plain maps", func(t *testing.T) {
		original := Entity{
			"@id":      "org:acme",
			"location": Entity{"city": "Berlin"},
		}

		clone := original.Clone()
		_, ok := clone["location"].(map[string]any)
		assert.True(t, ok)
	})
}

func TestGraphClone(t *testing.T) {
	g := Graph{
		{"@id": "a", "ref": "b"},
		{"@id": "b"},
	}

	clone := g.Clone()
	require.Equal(t, g, clone)

	clone[0]["ref"] = "c"
	assert.Equal(t, "b", g[0]["ref"])
}

func TestGraphIDs(t *testing.T) {
	g := Graph{
		{"@id": "person:alice"},
		{"name": "anonymous"},
		{"@id": "person:bob"},
	}

	assert.Equal(t, []string{"person:alice", "person:bob"}, g.IDs())
}
