package jsonld

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/hyperweb-io/jsonld/graph"
)

// Builder turns a Config into an output graph or document through a fixed
// layered pipeline:
//
//  1. validate the configuration (fail fast on structural misuse)
//  2. subgraph extraction over the configured roots, fusing the property
//     rules into the traversal (skipped when no roots are configured)
//  3. property filtering (when not consumed by layer 2) followed by
//     entity filtering
//  4. populate rules
//  5. additional entities appended verbatim
//  6. pipes, in registration order
//
// The Builder owns an immutable Config rather than extending it; the first
// successful or failed build is memoized and reused for every subsequent
// output request. Constructing a new Builder is the only way to recompute.
type Builder struct {
	cfg    Config
	logger *slog.Logger
	tracer trace.Tracer
	meter  metric.Meter

	built    bool
	memo     graph.Graph
	buildErr error
}

// NewBuilder creates a Builder over the given configuration.
func NewBuilder(cfg Config, opts ...BuilderOption) *Builder {
	b := &Builder{cfg: cfg}
	for _, opt := range opts {
		opt(b)
	}
	if b.logger == nil {
		b.logger = slog.Default()
	}
	return b
}

// Config returns the builder's configuration.
func (b *Builder) Config() Config {
	return b.cfg
}

// Graph runs the pipeline (or returns the memoized result) and yields the
// output entity slice.
func (b *Builder) Graph(ctx context.Context) (graph.Graph, error) {
	if b.built {
		return b.memo, b.buildErr
	}
	b.memo, b.buildErr = b.run(ctx)
	b.built = true
	return b.memo, b.buildErr
}

// Document renders the built graph as a JSON document string.
func (b *Builder) Document(ctx context.Context, opts ...RenderOption) (string, error) {
	g, err := b.Graph(ctx)
	if err != nil {
		return "", err
	}
	return RenderDocument(g, opts...)
}

// ScriptTag renders the built graph wrapped in a JSON-LD script tag,
// regardless of the WithScriptTag option.
func (b *Builder) ScriptTag(ctx context.Context, opts ...RenderOption) (string, error) {
	return b.Document(ctx, append(opts, WithScriptTag(true))...)
}

// Validate checks the configuration without running the pipeline. It
// returns ErrMissingBaseGraph when no base graph is set and
// ErrInvalidMaxEntities when a limit below 1 is configured.
func (b *Builder) Validate() error {
	const op = "Builder.Validate"
	if b.cfg.BaseGraph == nil {
		return NewValidationError(op, ErrMissingBaseGraph)
	}
	if max := b.cfg.Filters.MaxEntities; max != nil && *max < 1 {
		return NewValidationError(op, fmt.Errorf("got %d: %w", *max, ErrInvalidMaxEntities))
	}
	return nil
}

func (b *Builder) run(ctx context.Context) (graph.Graph, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}

	out := b.cfg.BaseGraph
	rules := b.cfg.Filters.CombinedPropertyRules()
	rulesConsumed := false

	if len(b.cfg.Filters.SubgraphRoots) > 0 {
		_, end := b.startSpan(ctx, "jsonld.extract_subgraphs")
		out = graph.ExtractSubgraphs(out, b.cfg.Filters.SubgraphRoots, rules)
		rulesConsumed = true
		end()
	}

	{
		_, end := b.startSpan(ctx, "jsonld.filter")
		if len(rules) > 0 && !rulesConsumed {
			out = graph.FilterGraphProperties(out, rules)
		}
		out = graph.FilterGraph(out, b.cfg.Filters.FilterOptions())
		end()
	}

	if len(b.cfg.Populate) > 0 {
		_, end := b.startSpan(ctx, "jsonld.populate")
		out = applyPopulate(out, b.cfg.Populate)
		end()
	}

	if len(b.cfg.AdditionalEntities) > 0 {
		out = concat(out, b.cfg.AdditionalEntities)
	}

	if len(b.cfg.Pipes) > 0 {
		_, end := b.startSpan(ctx, "jsonld.pipes")
		for _, pipe := range b.cfg.Pipes {
			out = pipe(out)
		}
		end()
	}

	b.recordEmitted(ctx, len(out))
	b.logger.Debug("graph built",
		"base_entities", len(b.cfg.BaseGraph),
		"output_entities", len(out))

	return out, nil
}

// applyPopulate sets each rule's named property on the matching entity to
// the rule's fixed entity list, overwriting any existing value. Entities
// without a rule pass through untouched; matched entities are cloned so
// the base graph is never mutated.
func applyPopulate(g graph.Graph, rules []PopulateRule) graph.Graph {
	byID := make(map[string][]PopulateRule)
	for _, r := range rules {
		byID[r.ID] = append(byID[r.ID], r)
	}

	out := make(graph.Graph, len(g))
	for i, e := range g {
		matched := byID[e.ID()]
		if len(matched) == 0 {
			out[i] = e
			continue
		}
		clone := e.Clone()
		for _, r := range matched {
			list := make([]any, len(r.Entities))
			for j, ent := range r.Entities {
				list[j] = map[string]any(ent)
			}
			clone[r.Property] = list
		}
		out[i] = clone
	}
	return out
}

func (b *Builder) startSpan(ctx context.Context, name string) (context.Context, func()) {
	if b.tracer == nil {
		return ctx, func() {}
	}
	ctx, span := b.tracer.Start(ctx, name)
	return ctx, func() { span.End() }
}

func (b *Builder) recordEmitted(ctx context.Context, n int) {
	if b.meter == nil {
		return
	}
	counter, err := b.meter.Int64Counter("jsonld.entities.emitted",
		metric.WithDescription("Number of entities emitted by graph builds"))
	if err != nil {
		b.logger.Warn("failed to create emitted-entities counter", "error", err)
		return
	}
	counter.Add(ctx, int64(n), metric.WithAttributes(attribute.Int("jsonld.base_entities", len(b.cfg.BaseGraph))))
}
