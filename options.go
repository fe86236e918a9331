package jsonld

import (
	"log/slog"

	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// BuilderOption configures a Builder.
type BuilderOption func(*Builder)

// WithLogger sets a custom structured logger for the builder.
// If not provided, slog.Default() is used.
func WithLogger(logger *slog.Logger) BuilderOption {
	return func(b *Builder) {
		b.logger = logger
	}
}

// WithTracer sets an OpenTelemetry tracer for the builder. When set, each
// pipeline layer runs inside its own span. If not provided, no spans are
// created.
func WithTracer(tracer trace.Tracer) BuilderOption {
	return func(b *Builder) {
		b.tracer = tracer
	}
}

// WithMeter sets an OpenTelemetry meter for the builder. When set, the
// builder records the number of entities emitted per build.
func WithMeter(meter metric.Meter) BuilderOption {
	return func(b *Builder) {
		b.meter = meter
	}
}

// RenderOption configures document rendering.
type RenderOption func(*renderConfig)

// renderConfig holds configuration for rendering an output document.
type renderConfig struct {
	prettyPrint   bool
	contextURL    string
	withScriptTag bool
	scriptID      string
}

// defaultRenderConfig returns the documented rendering defaults: indented
// JSON, the schema.org context, no script tag.
func defaultRenderConfig() renderConfig {
	return renderConfig{
		prettyPrint: true,
		contextURL:  DefaultContextURL,
	}
}

// WithPrettyPrint controls JSON indentation. Defaults to true; pass false
// for compact output.
func WithPrettyPrint(pretty bool) RenderOption {
	return func(c *renderConfig) {
		c.prettyPrint = pretty
	}
}

// WithContextURL sets the "@context" URL of the output document.
// Defaults to DefaultContextURL.
func WithContextURL(url string) RenderOption {
	return func(c *renderConfig) {
		c.contextURL = url
	}
}

// WithScriptTag controls whether the rendered document is wrapped in a
// <script type="application/ld+json"> tag. Defaults to false.
func WithScriptTag(wrap bool) RenderOption {
	return func(c *renderConfig) {
		c.withScriptTag = wrap
	}
}

// WithScriptID sets the id attribute of the script tag. The attribute is
// emitted only when the id is non-empty, and only together with
// WithScriptTag.
func WithScriptID(id string) RenderOption {
	return func(c *renderConfig) {
		c.scriptID = id
	}
}
