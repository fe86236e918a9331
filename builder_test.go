package jsonld

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/hyperweb-io/jsonld/graph"
)

func builderTestGraph() graph.Graph {
	return graph.Graph{
		{"@id": "person:alice", "@type": "Person", "name": "Alice", "employer": "org:acme"},
		{"@id": "person:bob", "@type": "Person", "name": "Bob"},
		{"@id": "org:acme", "@type": "Organization", "name": "Acme"},
	}
}

func TestBuilderValidate(t *testing.T) {
	t.Run("missing base graph", func(t *testing.T) {
		err := NewBuilder(NewConfig()).Validate()
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrMissingBaseGraph))

		var structured *Error
		require.True(t, errors.As(err, &structured))
		assert.Equal(t, KindValidation, structured.Kind)
	})

	t.Run("max entities below one", func(t *testing.T) {
		cfg := NewConfig().WithBaseGraph(builderTestGraph()).MaxEntities(0)
		err := NewBuilder(cfg).Validate()
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrInvalidMaxEntities))
	})

	t.Run("empty base graph is valid", func(t *testing.T) {
		cfg := NewConfig().WithBaseGraph(graph.Graph{})
		assert.NoError(t, NewBuilder(cfg).Validate())
	})
}

func TestBuilderGraph(t *testing.T) {
	ctx := context.Background()

	t.Run("no criteria passes the base graph through", func(t *testing.T) {
		b := NewBuilder(NewConfig().WithBaseGraph(builderTestGraph()))
		got, err := b.Graph(ctx)
		require.NoError(t, err)
		assert.Equal(t, builderTestGraph(), got)
	})

	t.Run("entity filtering", func(t *testing.T) {
		cfg := NewConfig().WithBaseGraph(builderTestGraph()).IncludeTypes("Person")
		got, err := NewBuilder(cfg).Graph(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"person:alice", "person:bob"}, got.IDs())
	})

	t.Run("subgraph extraction consumes property rules", func(t *testing.T) {
		cfg := NewConfig().
			WithBaseGraph(builderTestGraph()).
			Subgraph("person:alice").
			FilterProperties(graph.PropertyRule{Selector: "*", Exclude: []string{"employer"}})

		got, err := NewBuilder(cfg).Graph(ctx)
		require.NoError(t, err)
		// The employer property is stripped before traversal, so org:acme
		// is never reached.
		assert.Equal(t, []string{"person:alice"}, got.IDs())
		assert.False(t, got[0].Has("employer"))
	})

	t.Run("property rules without subgraph apply to the whole graph", func(t *testing.T) {
		cfg := NewConfig().
			WithBaseGraph(builderTestGraph()).
			FilterProperties(graph.PropertyRule{Selector: "*", Include: []string{"name"}})

		got, err := NewBuilder(cfg).Graph(ctx)
		require.NoError(t, err)
		require.Len(t, got, 3)
		for _, e := range got {
			assert.False(t, e.Has("@type"))
			assert.True(t, e.Has("name"))
		}
	})

	t.Run("populate overwrites the named property", func(t *testing.T) {
		cfg := NewConfig().
			WithBaseGraph(builderTestGraph()).
			PopulateEntities(PopulateRule{
				ID:       "org:acme",
				Property: "employees",
				Entities: []graph.Entity{{"@id": "person:alice"}},
			})

		got, err := NewBuilder(cfg).Graph(ctx)
		require.NoError(t, err)

		acme := graph.FindEntity(got, "org:acme")
		require.NotNil(t, acme)
		employees, ok := acme["employees"].([]any)
		require.True(t, ok)
		require.Len(t, employees, 1)
		assert.Equal(t, map[string]any{"@id": "person:alice"}, employees[0])

		// The base graph entity is untouched.
		assert.False(t, builderTestGraph()[2].Has("employees"))
	})

	t.Run("additional entities bypass filtering", func(t *testing.T) {
		extra := graph.Entity{"@id": "note:1", "@type": "Note"}
		cfg := NewConfig().
			WithBaseGraph(builderTestGraph()).
			IncludeTypes("Person").
			AddEntities(extra)

		got, err := NewBuilder(cfg).Graph(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"person:alice", "person:bob", "note:1"}, got.IDs())
	})

	t.Run("pipes run last in order", func(t *testing.T) {
		var order []string
		cfg := NewConfig().
			WithBaseGraph(builderTestGraph()).
			Pipe(func(g graph.Graph) graph.Graph {
				order = append(order, "first")
				return g
			}).
			Pipe(func(g graph.Graph) graph.Graph {
				order = append(order, "second")
				return g[:1]
			})

		got, err := NewBuilder(cfg).Graph(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"first", "second"}, order)
		assert.Equal(t, []string{"person:alice"}, got.IDs())
	})

	t.Run("result is memoized per builder", func(t *testing.T) {
		calls := 0
		cfg := NewConfig().
			WithBaseGraph(builderTestGraph()).
			Pipe(func(g graph.Graph) graph.Graph {
				calls++
				return g
			})

		b := NewBuilder(cfg)
		first, err := b.Graph(ctx)
		require.NoError(t, err)
		second, err := b.Graph(ctx)
		require.NoError(t, err)

		assert.Equal(t, 1, calls)
		assert.Equal(t, first, second)

		// A fresh builder over the same config recomputes.
		_, err = NewBuilder(cfg).Graph(ctx)
		require.NoError(t, err)
		assert.Equal(t, 2, calls)
	})

	t.Run("validation failure is memoized too", func(t *testing.T) {
		b := NewBuilder(NewConfig())
		_, err1 := b.Graph(ctx)
		_, err2 := b.Graph(ctx)
		require.Error(t, err1)
		assert.Equal(t, err1, err2)
	})

	t.Run("full pipeline combines layers", func(t *testing.T) {
		cfg := NewConfig().
			WithBaseGraph(builderTestGraph()).
			Subgraph("person:alice").
			ExcludeTypes("Organization").
			AddEntities(graph.Entity{"@id": "note:1"})

		got, err := NewBuilder(cfg).Graph(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"person:alice", "note:1"}, got.IDs())
	})
}

func TestBuilderTracing(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	cfg := NewConfig().
		WithBaseGraph(builderTestGraph()).
		Subgraph("person:alice").
		PopulateEntities(PopulateRule{ID: "person:alice", Property: "badges"})

	b := NewBuilder(cfg, WithTracer(tp.Tracer("test")))
	_, err := b.Graph(context.Background())
	require.NoError(t, err)

	spans := exporter.GetSpans()
	names := make([]string, 0, len(spans))
	for _, s := range spans {
		names = append(names, s.Name)
	}
	assert.Contains(t, names, "jsonld.extract_subgraphs")
	assert.Contains(t, names, "jsonld.filter")
	assert.Contains(t, names, "jsonld.populate")
}

func TestBuilderDocument(t *testing.T) {
	ctx := context.Background()
	cfg := NewConfig().WithBaseGraph(graph.Graph{{"@id": "a", "name": "A"}})

	t.Run("renders a document", func(t *testing.T) {
		doc, err := NewBuilder(cfg).Document(ctx)
		require.NoError(t, err)
		assert.Contains(t, doc, `"@context": "https://schema.org"`)
		assert.Contains(t, doc, `"@graph"`)
	})

	t.Run("script tag always wraps", func(t *testing.T) {
		out, err := NewBuilder(cfg).ScriptTag(ctx, WithScriptTag(false))
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(out, `<script type="application/ld+json">`))
		assert.True(t, strings.HasSuffix(out, "</script>"))
	})

	t.Run("build failure propagates", func(t *testing.T) {
		_, err := NewBuilder(NewConfig()).Document(ctx)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrMissingBaseGraph))
	})
}
