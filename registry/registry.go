// Package registry provides shared, named filter presets backed by etcd.
//
// Teams that render the same linked-data views from many processes keep
// their filter configurations in one place: a preset is a serializable
// filter specification stored under a well-known name. Processes load
// presets at startup, apply them to a local configuration, and watch for
// changes so running renderers pick up preset edits without redeploys.
//
// Presets are durable: unlike ephemeral service entries they are stored as
// plain keys without leases and survive until explicitly deleted.
package registry

import (
	"context"
	"time"

	"github.com/hyperweb-io/jsonld"
	"github.com/hyperweb-io/jsonld/graph"
	"github.com/hyperweb-io/jsonld/predicate"
)

// Preset is a named, serializable filter specification. It carries every
// filter criterion that survives serialization; the custom predicate is
// stored as CEL source and compiled on load.
type Preset struct {
	// Name is the unique preset identifier within the namespace.
	Name string `json:"name"`

	// Description explains what view the preset produces.
	Description string `json:"description,omitempty"`

	IncludeTypes                  []string `json:"include_types,omitempty"`
	ExcludeTypes                  []string `json:"exclude_types,omitempty"`
	IncludeIDs                    []string `json:"include_ids,omitempty"`
	ExcludeIDs                    []string `json:"exclude_ids,omitempty"`
	RequiredProperties            []string `json:"required_properties,omitempty"`
	ExcludeEntitiesWithProperties []string `json:"exclude_entities_with_properties,omitempty"`

	// CustomFilter is a CEL expression over "entity"; see the predicate
	// package.
	CustomFilter string `json:"custom_filter,omitempty"`

	MaxEntities   *int     `json:"max_entities,omitempty"`
	SubgraphRoots []string `json:"subgraph_roots,omitempty"`

	PropertyRules       []graph.PropertyRule        `json:"property_rules,omitempty"`
	PropertyRulesByID   []jsonld.PropertyRuleByID   `json:"property_rules_by_id,omitempty"`
	PropertyRulesByType []jsonld.PropertyRuleByType `json:"property_rules_by_type,omitempty"`

	// UpdatedAt is set by Put when the preset is stored.
	UpdatedAt time.Time `json:"updated_at,omitempty"`
}

// Validate checks that the preset can be stored.
func (p Preset) Validate() error {
	if p.Name == "" {
		return ErrPresetNameRequired
	}
	return nil
}

// Filters materializes the preset into filter criteria, compiling the
// custom-filter expression when present.
func (p Preset) Filters() (jsonld.Filters, error) {
	f := jsonld.Filters{
		IncludeTypes:                  p.IncludeTypes,
		ExcludeTypes:                  p.ExcludeTypes,
		IncludeIDs:                    p.IncludeIDs,
		ExcludeIDs:                    p.ExcludeIDs,
		RequiredProperties:            p.RequiredProperties,
		ExcludeEntitiesWithProperties: p.ExcludeEntitiesWithProperties,
		MaxEntities:                   p.MaxEntities,
		SubgraphRoots:                 p.SubgraphRoots,
		PropertyRules:                 p.PropertyRules,
		PropertyRulesByID:             p.PropertyRulesByID,
		PropertyRulesByType:           p.PropertyRulesByType,
	}
	if p.CustomFilter != "" {
		pred, err := predicate.Compile(p.CustomFilter)
		if err != nil {
			return jsonld.Filters{}, err
		}
		f.Custom = pred
	}
	return f, nil
}

// Registry defines the preset storage and watch interface.
//
// Implementations must provide thread-safe access. The etcd-backed Client
// is the standard implementation; tests may substitute in-memory fakes.
type Registry interface {
	// Put stores a preset under its name, replacing any previous version.
	Put(ctx context.Context, preset Preset) error

	// Get returns the preset stored under name. A missing preset yields
	// ErrPresetNotFound.
	Get(ctx context.Context, name string) (*Preset, error)

	// List returns all presets in the namespace, sorted by name.
	List(ctx context.Context) ([]Preset, error)

	// Delete removes the preset stored under name. Deleting an absent
	// preset is a no-op.
	Delete(ctx context.Context, name string) error

	// Watch returns a channel that receives the full preset list whenever
	// any preset changes. The initial state is sent immediately. The
	// channel closes when the context is cancelled or the registry is
	// closed.
	Watch(ctx context.Context) (<-chan []Preset, error)

	// Close releases resources and stops all background goroutines.
	Close() error
}

// Config holds registry connection configuration.
type Config struct {
	// Endpoints is the list of etcd endpoints.
	// Format: ["host1:2379", "host2:2379"]
	Endpoints []string `json:"endpoints"`

	// Namespace is the etcd key prefix for all preset entries. Presets are
	// stored under /{namespace}/presets/{name}.
	// Default: "jsonld"
	Namespace string `json:"namespace"`

	// DialTimeout is the maximum time to wait when establishing the etcd
	// connection. Default: 5s.
	DialTimeout time.Duration `json:"dial_timeout"`

	// TLS holds TLS configuration for secure etcd communication.
	// If nil, TLS is disabled.
	TLS *TLSConfig `json:"tls"`
}

// TLSConfig holds TLS certificate configuration for secure registry
// communication. When enabled, communication with etcd uses mutual TLS.
type TLSConfig struct {
	// Enabled determines whether TLS is active.
	Enabled bool `json:"enabled"`

	// CertFile is the path to the client certificate file (PEM format).
	CertFile string `json:"cert_file"`

	// KeyFile is the path to the client private key file (PEM format).
	KeyFile string `json:"key_file"`

	// CAFile is the path to the certificate authority file (PEM format)
	// used to verify the etcd server's certificate.
	CAFile string `json:"ca_file"`
}
