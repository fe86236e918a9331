// Package manifest provides loading and parsing of jsonld.yaml build
// manifests. A manifest is the declarative form of a build configuration:
// filters, subgraph roots, property rules, populate rules, additional
// entities, and rendering settings, so command-line and service callers
// can drive the pipeline without code.
package manifest

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/hyperweb-io/jsonld"
	"github.com/hyperweb-io/jsonld/graph"
	"github.com/hyperweb-io/jsonld/predicate"
)

// Manifest represents a jsonld.yaml build manifest.
type Manifest struct {
	// Rendering
	Context   string `yaml:"context,omitempty"`    // "@context" URL, default https://schema.org
	Pretty    *bool  `yaml:"pretty,omitempty"`     // indent output, default true
	ScriptTag bool   `yaml:"script_tag,omitempty"` // wrap output in a script tag
	ScriptID  string `yaml:"script_id,omitempty"`  // id attribute for the script tag

	// Graph holds an inline base graph. Callers typically supply the base
	// graph programmatically instead; when both are present the
	// programmatic graph wins (Config leaves BaseGraph unset otherwise).
	Graph []map[string]any `yaml:"graph,omitempty"`

	// Entity-level filtering
	IncludeTypes                  []string `yaml:"include_types,omitempty"`
	ExcludeTypes                  []string `yaml:"exclude_types,omitempty"`
	IncludeIDs                    []string `yaml:"include_ids,omitempty"`
	ExcludeIDs                    []string `yaml:"exclude_ids,omitempty"`
	RequiredProperties            []string `yaml:"required_properties,omitempty"`
	ExcludeEntitiesWithProperties []string `yaml:"exclude_entities_with_properties,omitempty"`

	// CustomFilter is a CEL expression over "entity"; see the predicate
	// package for the expression contract.
	CustomFilter string `yaml:"custom_filter,omitempty"`

	MaxEntities *int `yaml:"max_entities,omitempty"`

	// Subgraph lists the extraction roots.
	Subgraph []string `yaml:"subgraph,omitempty"`

	// Property-level filtering
	PropertyFilters       []PropertyRule              `yaml:"property_filters,omitempty"`
	PropertyFiltersByID   []jsonld.PropertyRuleByID   `yaml:"property_filters_by_id,omitempty"`
	PropertyFiltersByType []jsonld.PropertyRuleByType `yaml:"property_filters_by_type,omitempty"`

	// Populate rules and appended entities
	Populate           []PopulateRule   `yaml:"populate,omitempty"`
	AdditionalEntities []map[string]any `yaml:"additional_entities,omitempty"`
}

// PropertyRule is the YAML form of a generic property rule. Selector is
// either the string "*" or a map of property names to expected values.
type PropertyRule struct {
	Selector any      `yaml:"selector"`
	Include  []string `yaml:"include,omitempty"`
	Exclude  []string `yaml:"exclude,omitempty"`
}

// PopulateRule is the YAML form of a populate rule.
type PopulateRule struct {
	ID       string           `yaml:"id"`
	Property string           `yaml:"property"`
	Entities []map[string]any `yaml:"entities"`
}

// Config builds the configuration the manifest describes. A manifest with
// a custom_filter expression fails here when the expression does not
// compile; everything else is carried over verbatim.
func (m *Manifest) Config() (jsonld.Config, error) {
	cfg := jsonld.NewConfig()

	if len(m.Graph) > 0 {
		cfg = cfg.WithBaseGraph(toGraph(m.Graph))
	}

	cfg = cfg.IncludeTypes(m.IncludeTypes...).
		ExcludeTypes(m.ExcludeTypes...).
		IncludeIDs(m.IncludeIDs...).
		ExcludeIDs(m.ExcludeIDs...).
		RequiredProperties(m.RequiredProperties...).
		ExcludeEntitiesWithProperties(m.ExcludeEntitiesWithProperties...).
		Subgraph(m.Subgraph...)

	if m.CustomFilter != "" {
		pred, err := predicate.Compile(m.CustomFilter)
		if err != nil {
			return jsonld.Config{}, fmt.Errorf("custom_filter: %w", err)
		}
		cfg = cfg.CustomFilter(pred)
	}

	if m.MaxEntities != nil {
		cfg = cfg.MaxEntities(*m.MaxEntities)
	}

	for _, r := range m.PropertyFilters {
		cfg = cfg.FilterProperties(graph.PropertyRule{
			Selector: r.Selector,
			Include:  r.Include,
			Exclude:  r.Exclude,
		})
	}
	cfg = cfg.FilterPropertiesByIDs(m.PropertyFiltersByID...).
		FilterPropertiesByTypes(m.PropertyFiltersByType...)

	for _, r := range m.Populate {
		cfg = cfg.PopulateEntities(jsonld.PopulateRule{
			ID:       r.ID,
			Property: r.Property,
			Entities: toGraph(r.Entities),
		})
	}

	cfg = cfg.AddEntities(toGraph(m.AdditionalEntities)...)

	return cfg, nil
}

// RenderOptions returns the rendering options the manifest describes, for
// passing to Builder.Document.
func (m *Manifest) RenderOptions() []jsonld.RenderOption {
	var opts []jsonld.RenderOption
	if m.Context != "" {
		opts = append(opts, jsonld.WithContextURL(m.Context))
	}
	if m.Pretty != nil {
		opts = append(opts, jsonld.WithPrettyPrint(*m.Pretty))
	}
	if m.ScriptTag {
		opts = append(opts, jsonld.WithScriptTag(true))
	}
	if m.ScriptID != "" {
		opts = append(opts, jsonld.WithScriptID(m.ScriptID))
	}
	return opts
}

// Load reads and parses a jsonld.yaml manifest from the given path. If the
// path is a directory, it looks for jsonld.yaml or jsonld.yml in that
// directory.
func Load(path string) (*Manifest, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat path: %w", err)
	}

	manifestPath := path
	if info.IsDir() {
		yamlPath := filepath.Join(path, "jsonld.yaml")
		if _, err := os.Stat(yamlPath); err == nil {
			manifestPath = yamlPath
		} else {
			ymlPath := filepath.Join(path, "jsonld.yml")
			if _, err := os.Stat(ymlPath); err != nil {
				return nil, fmt.Errorf("no jsonld.yaml or jsonld.yml found in %s", path)
			}
			manifestPath = ymlPath
		}
	}

	data, err := os.ReadFile(manifestPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	return Parse(data)
}

// Parse parses manifest bytes.
func Parse(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}
	return &m, nil
}

// LoadFromDir searches for a manifest starting from the given directory
// and walking up to parent directories until found or the filesystem root
// is reached.
func LoadFromDir(dir string) (*Manifest, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to get absolute path: %w", err)
	}

	for {
		m, err := Load(absDir)
		if err == nil {
			return m, nil
		}

		parent := filepath.Dir(absDir)
		if parent == absDir {
			return nil, fmt.Errorf("no jsonld.yaml found in %s or parent directories", dir)
		}
		absDir = parent
	}
}

func toGraph(raw []map[string]any) graph.Graph {
	g := make(graph.Graph, len(raw))
	for i, m := range raw {
		g[i] = graph.Entity(m)
	}
	return g
}
