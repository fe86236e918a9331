package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsCompactURI(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"compact uri", "person:alice", true},
		{"compact uri with path", "org:acme/division-1", true},
		{"plain word", "alice", false},
		{"sentence with colon", "note: call alice", false},
		{"http url", "http://example.com/alice", false},
		{"https url", "https://example.com/alice", false},
		{"empty string", "", false},
		{"trailing colon", "person:", false},
		{"leading colon", ":alice", false},
		{"timestamp still matches", "12:30", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsCompactURI(tt.input))
		})
	}
}

func TestIsReferenceObject(t *testing.T) {
	assert.True(t, IsReferenceObject(map[string]any{"@id": "person:alice"}))
	assert.True(t, IsReferenceObject(map[string]any{"@id": "person:alice", "name": "Alice"}))
	assert.True(t, IsReferenceObject(Entity{"@id": "person:alice"}))
	assert.False(t, IsReferenceObject(map[string]any{"name": "Alice"}))
	assert.False(t, IsReferenceObject(map[string]any{"@id": 42}))
	assert.False(t, IsReferenceObject("person:alice"))
	assert.False(t, IsReferenceObject(nil))
}

func TestIsPureReference(t *testing.T) {
	assert.True(t, IsPureReference(map[string]any{"@id": "person:alice"}))
	assert.False(t, IsPureReference(map[string]any{"@id": "person:alice", "name": "Alice"}))
	assert.False(t, IsPureReference(map[string]any{"name": "Alice"}))
	assert.False(t, IsPureReference([]any{"@id"}))
}

func TestReferences(t *testing.T) {
	tests := []struct {
		name   string
		entity Entity
		want   []string
	}{
		{
			name: "string compact uris",
			entity: Entity{
				"@id":      "person:alice",
				"employer": "org:acme",
				"knows":    "person:bob",
			},
			want: []string{"org:acme", "person:bob"},
		},
		{
			name: "own id and type are not references",
			entity: Entity{
				"@id":   "person:alice",
				"@type": "schema:Person",
				"name":  "Alice",
			},
			want: nil,
		},
		{
			name: "reference objects contribute their id",
			entity: Entity{
				"@id":      "person:alice",
				"employer": map[string]any{"@id": "org:acme"},
			},
			want: []string{"org:acme"},
		},
		{
			name: "arrays recursed elementwise",
			entity: Entity{
				"@id": "person:alice",
				"knows": []any{
					map[string]any{"@id": "person:bob"},
					"person:carol",
				},
			},
			want: []string{"person:bob", "person:carol"},
		},
		{
			name: "nested objects recursed",
			entity: Entity{
				"@id": "person:alice",
				"address": map[string]any{
					"city":    "Berlin",
					"country": "country:de",
				},
			},
			want: []string{"country:de"},
		},
		{
			name: "duplicates collapsed",
			entity: Entity{
				"@id":      "person:alice",
				"employer": "org:acme",
				"sponsor":  map[string]any{"@id": "org:acme"},
			},
			want: []string{"org:acme"},
		},
		{
			name: "urls and plain strings skipped",
			entity: Entity{
				"@id":     "person:alice",
				"website": "https://alice.example.com",
				"name":    "Alice",
			},
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			refs := References(tt.entity)
			assert.ElementsMatch(t, tt.want, refs)
		})
	}
}

func TestReferencesDeterministicOrder(t *testing.T) {
	e := Entity{
		"@id": "person:alice",
		"a":   "ref:1",
		"b":   "ref:2",
		"c":   "ref:3",
		"d":   "ref:4",
	}

	first := References(e)
	for i := 0; i < 20; i++ {
		assert.Equal(t, first, References(e))
	}
	assert.Equal(t, []string{"ref:1", "ref:2", "ref:3", "ref:4"}, first)
}
