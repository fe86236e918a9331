package jsonld

import (
	"github.com/hyperweb-io/jsonld/graph"
)

// Filters aggregates every filtering criterion a configuration can carry:
// entity-level allow/deny lists, property requirements, a custom predicate,
// a result limit, subgraph roots, and the three property-rule collections
// (generic, by id, by type).
type Filters struct {
	IncludeTypes                  []string
	ExcludeTypes                  []string
	IncludeIDs                    []string
	ExcludeIDs                    []string
	RequiredProperties            []string
	ExcludeEntitiesWithProperties []string

	// Custom keeps only entities for which the predicate returns true.
	// See the predicate package for CEL-compiled predicates.
	Custom func(graph.Entity) bool

	// MaxEntities truncates the final entity list. Nil means no limit;
	// a present value below 1 is rejected at build time.
	MaxEntities *int

	// SubgraphRoots, when non-empty, restricts the base graph to the
	// entities reachable from these roots before any other filtering.
	SubgraphRoots []string

	// PropertyRules apply to every entity their selector matches.
	PropertyRules []graph.PropertyRule

	// PropertyRulesByID apply only to entities with the listed ids.
	PropertyRulesByID []PropertyRuleByID

	// PropertyRulesByType apply only to entities carrying the listed types.
	PropertyRulesByType []PropertyRuleByType
}

// PropertyRuleByID narrows the properties of specific entities.
type PropertyRuleByID struct {
	IDs     []string `json:"ids" yaml:"ids"`
	Include []string `json:"include,omitempty" yaml:"include,omitempty"`
	Exclude []string `json:"exclude,omitempty" yaml:"exclude,omitempty"`
}

// PropertyRuleByType narrows the properties of entities carrying a type.
type PropertyRuleByType struct {
	Types   []string `json:"types" yaml:"types"`
	Include []string `json:"include,omitempty" yaml:"include,omitempty"`
	Exclude []string `json:"exclude,omitempty" yaml:"exclude,omitempty"`
}

// PopulateRule assigns a named property on a specific entity to a fixed
// entity list, overwriting any existing value at that property.
type PopulateRule struct {
	ID       string         `json:"id" yaml:"id"`
	Property string         `json:"property" yaml:"property"`
	Entities []graph.Entity `json:"entities" yaml:"entities"`
}

// Pipe is a whole-graph transform applied after every other pipeline stage,
// in registration order.
type Pipe func(graph.Graph) graph.Graph

// Config is an immutable build specification: the base graph, filters,
// entities appended after filtering, transform pipes, and populate rules.
//
// Every mutator returns a new Config and never alters its receiver, so a
// Config can be shared, stored, and extended from multiple call sites
// safely. List-valued fields concatenate on repeated calls; only the
// Clear* operations reset them.
type Config struct {
	BaseGraph          graph.Graph
	Filters            Filters
	AdditionalEntities graph.Graph
	Pipes              []Pipe
	Populate           []PopulateRule
}

// NewConfig returns an empty configuration.
func NewConfig() Config {
	return Config{}
}

// WithBaseGraph returns a copy of the configuration with the base graph
// replaced. This is the only field where a later value wins outright.
func (c Config) WithBaseGraph(g graph.Graph) Config {
	c.BaseGraph = g
	return c
}

// IncludeTypes concatenates type labels onto the include-types list.
func (c Config) IncludeTypes(types ...string) Config {
	c.Filters.IncludeTypes = concat(c.Filters.IncludeTypes, types)
	return c
}

// ExcludeTypes concatenates type labels onto the exclude-types list.
func (c Config) ExcludeTypes(types ...string) Config {
	c.Filters.ExcludeTypes = concat(c.Filters.ExcludeTypes, types)
	return c
}

// IncludeIDs concatenates ids onto the include-ids list.
func (c Config) IncludeIDs(ids ...string) Config {
	c.Filters.IncludeIDs = concat(c.Filters.IncludeIDs, ids)
	return c
}

// ExcludeIDs concatenates ids onto the exclude-ids list.
func (c Config) ExcludeIDs(ids ...string) Config {
	c.Filters.ExcludeIDs = concat(c.Filters.ExcludeIDs, ids)
	return c
}

// RequiredProperties concatenates names onto the required-properties list.
func (c Config) RequiredProperties(names ...string) Config {
	c.Filters.RequiredProperties = concat(c.Filters.RequiredProperties, names)
	return c
}

// ExcludeEntitiesWithProperties concatenates names onto the list of
// properties whose presence drops an entity.
func (c Config) ExcludeEntitiesWithProperties(names ...string) Config {
	c.Filters.ExcludeEntitiesWithProperties = concat(c.Filters.ExcludeEntitiesWithProperties, names)
	return c
}

// CustomFilter returns a copy with the custom predicate replaced.
func (c Config) CustomFilter(pred func(graph.Entity) bool) Config {
	c.Filters.Custom = pred
	return c
}

// MaxEntities returns a copy with the entity limit replaced.
func (c Config) MaxEntities(n int) Config {
	c.Filters.MaxEntities = &n
	return c
}

// Subgraph concatenates root ids onto the subgraph-roots list.
func (c Config) Subgraph(rootIDs ...string) Config {
	c.Filters.SubgraphRoots = concat(c.Filters.SubgraphRoots, rootIDs)
	return c
}

// FilterProperties concatenates generic property rules.
func (c Config) FilterProperties(rules ...graph.PropertyRule) Config {
	c.Filters.PropertyRules = concat(c.Filters.PropertyRules, rules)
	return c
}

// FilterPropertiesByIDs concatenates id-scoped property rules.
func (c Config) FilterPropertiesByIDs(rules ...PropertyRuleByID) Config {
	c.Filters.PropertyRulesByID = concat(c.Filters.PropertyRulesByID, rules)
	return c
}

// FilterPropertiesByTypes concatenates type-scoped property rules.
func (c Config) FilterPropertiesByTypes(rules ...PropertyRuleByType) Config {
	c.Filters.PropertyRulesByType = concat(c.Filters.PropertyRulesByType, rules)
	return c
}

// AddEntities concatenates entities that bypass filtering and are appended
// verbatim to the output graph.
func (c Config) AddEntities(entities ...graph.Entity) Config {
	c.AdditionalEntities = concat(c.AdditionalEntities, entities)
	return c
}

// Pipe concatenates whole-graph transforms applied last, in order.
func (c Config) Pipe(pipes ...Pipe) Config {
	c.Pipes = concat(c.Pipes, pipes)
	return c
}

// PopulateEntities concatenates populate rules.
func (c Config) PopulateEntities(rules ...PopulateRule) Config {
	c.Populate = concat(c.Populate, rules)
	return c
}

// ClearIDs returns a copy with the include-ids and exclude-ids lists reset.
// All other fields are untouched.
func (c Config) ClearIDs() Config {
	c.Filters.IncludeIDs = nil
	c.Filters.ExcludeIDs = nil
	return c
}

// ClearTypes returns a copy with the include-types and exclude-types lists
// reset. All other fields are untouched.
func (c Config) ClearTypes() Config {
	c.Filters.IncludeTypes = nil
	c.Filters.ExcludeTypes = nil
	return c
}

// ClearPropertyRequirements returns a copy with the required-properties and
// excluded-properties lists reset.
func (c Config) ClearPropertyRequirements() Config {
	c.Filters.RequiredProperties = nil
	c.Filters.ExcludeEntitiesWithProperties = nil
	return c
}

// ClearPropertyFilters returns a copy with all three property-rule
// collections reset.
func (c Config) ClearPropertyFilters() Config {
	c.Filters.PropertyRules = nil
	c.Filters.PropertyRulesByID = nil
	c.Filters.PropertyRulesByType = nil
	return c
}

// ClearSubgraph returns a copy with the subgraph roots reset.
func (c Config) ClearSubgraph() Config {
	c.Filters.SubgraphRoots = nil
	return c
}

// ClearAll returns a copy with every field reset except the base graph.
func (c Config) ClearAll() Config {
	return Config{BaseGraph: c.BaseGraph}
}

// Merge combines two configurations: b's base graph wins when present;
// list-valued fields concatenate; b's custom predicate and entity limit win
// when present; b's populate rules win wholesale when present.
func Merge(a, b Config) Config {
	out := a
	if b.BaseGraph != nil {
		out.BaseGraph = b.BaseGraph
	}
	out.Filters = mergeFilters(a.Filters, b.Filters)
	out.AdditionalEntities = concat(a.AdditionalEntities, b.AdditionalEntities)
	out.Pipes = concat(a.Pipes, b.Pipes)
	if b.Populate != nil {
		out.Populate = b.Populate
	}
	return out
}

// MergeFilters combines only the filter portion of b into a, leaving a's
// base graph, additional entities, pipes, and populate rules untouched.
func (c Config) MergeFilters(f Filters) Config {
	c.Filters = mergeFilters(c.Filters, f)
	return c
}

func mergeFilters(a, b Filters) Filters {
	out := Filters{
		IncludeTypes:                  concat(a.IncludeTypes, b.IncludeTypes),
		ExcludeTypes:                  concat(a.ExcludeTypes, b.ExcludeTypes),
		IncludeIDs:                    concat(a.IncludeIDs, b.IncludeIDs),
		ExcludeIDs:                    concat(a.ExcludeIDs, b.ExcludeIDs),
		RequiredProperties:            concat(a.RequiredProperties, b.RequiredProperties),
		ExcludeEntitiesWithProperties: concat(a.ExcludeEntitiesWithProperties, b.ExcludeEntitiesWithProperties),
		SubgraphRoots:                 concat(a.SubgraphRoots, b.SubgraphRoots),
		PropertyRules:                 concat(a.PropertyRules, b.PropertyRules),
		PropertyRulesByID:             concat(a.PropertyRulesByID, b.PropertyRulesByID),
		PropertyRulesByType:           concat(a.PropertyRulesByType, b.PropertyRulesByType),
		Custom:                        a.Custom,
		MaxEntities:                   a.MaxEntities,
	}
	if b.Custom != nil {
		out.Custom = b.Custom
	}
	if b.MaxEntities != nil {
		out.MaxEntities = b.MaxEntities
	}
	return out
}

// CombinedPropertyRules flattens the three rule collections into one
// ordered list: generic rules first, then id-scoped rules expanded to
// "@id" selectors, then type-scoped rules expanded to "@type" selectors.
// Rule order within each collection is preserved, so exclude accumulation
// and last-include-wins behave identically whichever form a rule came in.
func (f Filters) CombinedPropertyRules() []graph.PropertyRule {
	total := len(f.PropertyRules) + len(f.PropertyRulesByID) + len(f.PropertyRulesByType)
	if total == 0 {
		return nil
	}
	rules := make([]graph.PropertyRule, 0, total)
	rules = append(rules, f.PropertyRules...)
	for _, r := range f.PropertyRulesByID {
		for _, id := range r.IDs {
			rules = append(rules, graph.PropertyRule{
				Selector: map[string]any{graph.IDKey: id},
				Include:  r.Include,
				Exclude:  r.Exclude,
			})
		}
	}
	for _, r := range f.PropertyRulesByType {
		for _, typ := range r.Types {
			rules = append(rules, graph.PropertyRule{
				Selector: map[string]any{graph.TypeKey: typ},
				Include:  r.Include,
				Exclude:  r.Exclude,
			})
		}
	}
	return rules
}

// FilterOptions projects the entity-level criteria into the graph
// package's filter options. MaxEntities maps to zero (no limit) when
// absent; Validate rejects present values below 1 before this is used.
func (f Filters) FilterOptions() graph.FilterOptions {
	opts := graph.FilterOptions{
		IncludeTypes:                  f.IncludeTypes,
		ExcludeTypes:                  f.ExcludeTypes,
		IncludeIDs:                    f.IncludeIDs,
		ExcludeIDs:                    f.ExcludeIDs,
		RequiredProperties:            f.RequiredProperties,
		ExcludeEntitiesWithProperties: f.ExcludeEntitiesWithProperties,
		Custom:                        f.Custom,
	}
	if f.MaxEntities != nil {
		opts.MaxEntities = *f.MaxEntities
	}
	return opts
}

// concat returns a fresh slice holding a followed by b, never aliasing the
// inputs' backing arrays. Appending to a returned Config therefore cannot
// leak into previously returned configurations.
func concat[T any](a, b []T) []T {
	if len(a) == 0 && len(b) == 0 {
		return a
	}
	out := make([]T, 0, len(a)+len(b))
	out = append(out, a...)
	out = append(out, b...)
	return out
}
