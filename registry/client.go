package registry

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	clientv3 "go.etcd.io/etcd/client/v3"
	"google.golang.org/grpc"
	"google.golang.org/grpc/keepalive"
)

// Sentinel errors for registry operations.
var (
	// ErrPresetNotFound indicates the requested preset does not exist.
	ErrPresetNotFound = errors.New("preset not found")

	// ErrPresetNameRequired indicates a preset without a name was stored.
	ErrPresetNameRequired = errors.New("preset name is required")

	// ErrClientClosed indicates the registry client has been closed.
	ErrClientClosed = errors.New("registry client is closed")
)

// Client implements Registry against an etcd cluster.
//
// Thread-safety: all methods are safe for concurrent use.
type Client struct {
	client    *clientv3.Client
	namespace string

	mu         sync.RWMutex
	wg         sync.WaitGroup
	closed     bool
	closedChan chan struct{}
}

// NewClient creates a registry client from the provided configuration and
// verifies connectivity. The client must be closed with Close() when no
// longer needed.
func NewClient(cfg Config) (*Client, error) {
	if len(cfg.Endpoints) == 0 {
		return nil, fmt.Errorf("registry endpoints cannot be empty")
	}

	namespace := cfg.Namespace
	if namespace == "" {
		namespace = "jsonld"
	}

	dialTimeout := cfg.DialTimeout
	if dialTimeout == 0 {
		dialTimeout = 5 * time.Second
	}

	clientCfg := clientv3.Config{
		Endpoints:   cfg.Endpoints,
		DialTimeout: dialTimeout,
		// Keep the gRPC connection alive across idle periods; watches can
		// sit silent for a long time between preset edits.
		DialOptions: []grpc.DialOption{
			grpc.WithKeepaliveParams(keepalive.ClientParameters{
				Time:                30 * time.Second,
				Timeout:             10 * time.Second,
				PermitWithoutStream: true,
			}),
		},
	}

	if cfg.TLS != nil && cfg.TLS.Enabled {
		tlsConfig, err := newTLSConfig(cfg.TLS)
		if err != nil {
			return nil, fmt.Errorf("failed to configure TLS: %w", err)
		}
		clientCfg.TLS = tlsConfig
	}

	cli, err := clientv3.New(clientCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create etcd client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if _, err := cli.Get(ctx, "health-check"); err != nil && err != context.DeadlineExceeded {
		cli.Close()
		return nil, fmt.Errorf("etcd health check failed: %w", err)
	}

	return &Client{
		client:     cli,
		namespace:  namespace,
		closedChan: make(chan struct{}),
	}, nil
}

// NewClientFromEnv creates a registry client from the
// JSONLD_REGISTRY_ENDPOINTS environment variable, a comma-separated list
// of etcd endpoints.
//
// When the variable is unset this returns (nil, nil): the process works
// without shared presets, which is not an error.
func NewClientFromEnv() (*Client, error) {
	endpoints := os.Getenv("JSONLD_REGISTRY_ENDPOINTS")
	if endpoints == "" {
		return nil, nil
	}

	endpointList := strings.Split(endpoints, ",")
	for i, ep := range endpointList {
		endpointList[i] = strings.TrimSpace(ep)
	}

	return NewClient(Config{Endpoints: endpointList})
}

// Put stores a preset under its name, replacing any previous version.
// UpdatedAt is stamped before storing.
func (c *Client) Put(ctx context.Context, preset Preset) error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.closed {
		return ErrClientClosed
	}
	if err := preset.Validate(); err != nil {
		return err
	}

	preset.UpdatedAt = time.Now().UTC()

	data, err := json.Marshal(preset)
	if err != nil {
		return fmt.Errorf("failed to marshal preset: %w", err)
	}

	if _, err := c.client.Put(ctx, c.presetKey(preset.Name), string(data)); err != nil {
		return fmt.Errorf("failed to store preset %s: %w", preset.Name, err)
	}
	return nil
}

// Get returns the preset stored under name.
func (c *Client) Get(ctx context.Context, name string) (*Preset, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.closed {
		return nil, ErrClientClosed
	}

	resp, err := c.client.Get(ctx, c.presetKey(name))
	if err != nil {
		return nil, fmt.Errorf("failed to get preset %s: %w", name, err)
	}
	if len(resp.Kvs) == 0 {
		return nil, fmt.Errorf("%s: %w", name, ErrPresetNotFound)
	}

	var preset Preset
	if err := json.Unmarshal(resp.Kvs[0].Value, &preset); err != nil {
		return nil, fmt.Errorf("failed to unmarshal preset %s: %w", name, err)
	}
	return &preset, nil
}

// List returns all presets in the namespace, sorted by name.
func (c *Client) List(ctx context.Context) ([]Preset, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.closed {
		return nil, ErrClientClosed
	}
	return c.list(ctx)
}

func (c *Client) list(ctx context.Context) ([]Preset, error) {
	resp, err := c.client.Get(ctx, c.presetPrefix(), clientv3.WithPrefix())
	if err != nil {
		return nil, fmt.Errorf("failed to list presets: %w", err)
	}

	presets := make([]Preset, 0, len(resp.Kvs))
	for _, kv := range resp.Kvs {
		var preset Preset
		if err := json.Unmarshal(kv.Value, &preset); err != nil {
			// Skip invalid entries
			continue
		}
		presets = append(presets, preset)
	}

	sort.Slice(presets, func(i, j int) bool { return presets[i].Name < presets[j].Name })
	return presets, nil
}

// Delete removes the preset stored under name. Deleting an absent preset
// is a no-op.
func (c *Client) Delete(ctx context.Context, name string) error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.closed {
		return ErrClientClosed
	}

	if _, err := c.client.Delete(ctx, c.presetKey(name)); err != nil {
		return fmt.Errorf("failed to delete preset %s: %w", name, err)
	}
	return nil
}

// Watch returns a channel that receives the full preset list whenever any
// preset changes. The initial state is sent immediately.
func (c *Client) Watch(ctx context.Context) (<-chan []Preset, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.closed {
		return nil, ErrClientClosed
	}

	ch := make(chan []Preset, 1)

	presets, err := c.list(ctx)
	if err != nil {
		return nil, err
	}
	ch <- presets

	watchChan := c.client.Watch(ctx, c.presetPrefix(), clientv3.WithPrefix())

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		defer close(ch)

		for {
			select {
			case <-ctx.Done():
				return
			case <-c.closedChan:
				return
			case watchResp, ok := <-watchChan:
				if !ok {
					return
				}
				if watchResp.Err() != nil {
					return
				}

				presets, err := c.list(context.Background())
				if err != nil {
					// Skip this update if we can't query
					continue
				}

				select {
				case ch <- presets:
				case <-ctx.Done():
					return
				case <-c.closedChan:
					return
				}
			}
		}
	}()

	return ch, nil
}

// Close releases resources and stops background goroutines. After Close,
// all other methods return ErrClientClosed.
func (c *Client) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	close(c.closedChan)
	c.mu.Unlock()

	c.wg.Wait()
	return c.client.Close()
}

// presetKey constructs the etcd key for a preset.
//
// Format: /namespace/presets/name
func (c *Client) presetKey(name string) string {
	return fmt.Sprintf("/%s/presets/%s", c.namespace, name)
}

func (c *Client) presetPrefix() string {
	return fmt.Sprintf("/%s/presets/", c.namespace)
}

// newTLSConfig builds a client tls.Config from certificate file paths.
func newTLSConfig(cfg *TLSConfig) (*tls.Config, error) {
	if cfg.CertFile == "" || cfg.KeyFile == "" || cfg.CAFile == "" {
		return nil, fmt.Errorf("TLS cert, key, and CA files are all required when TLS is enabled")
	}

	cert, err := tls.LoadX509KeyPair(cfg.CertFile, cfg.KeyFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load client certificate: %w", err)
	}

	caData, err := os.ReadFile(cfg.CAFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read CA certificate: %w", err)
	}

	caPool := x509.NewCertPool()
	if !caPool.AppendCertsFromPEM(caData) {
		return nil, fmt.Errorf("failed to parse CA certificate")
	}

	return &tls.Config{
		Certificates: []tls.Certificate{cert},
		RootCAs:      caPool,
		MinVersion:   tls.VersionTLS12,
	}, nil
}
