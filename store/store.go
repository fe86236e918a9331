package store

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	docKeyPrefix  = "jsonld:doc:"
	docIndexKey   = "jsonld:docs"
	updateChannel = "jsonld:updates"
)

// Client defines the interface for the rendered-document cache.
type Client interface {
	// Save stores a rendered document and publishes an update event.
	Save(ctx context.Context, doc Document) error

	// Load returns the document cached under key, or nil when absent.
	Load(ctx context.Context, key string) (*Document, error)

	// Delete removes a cached document and publishes a deletion event.
	Delete(ctx context.Context, key string) error

	// Keys returns the keys of all cached documents.
	Keys(ctx context.Context) ([]string, error)

	// Subscribe streams update events until the context is cancelled.
	Subscribe(ctx context.Context) (<-chan UpdateEvent, error)

	// Close closes the Redis connection.
	Close() error
}

// Options configures the Redis connection.
type Options struct {
	// URL is the Redis connection string (e.g., "redis://localhost:6379").
	URL string

	// TLS configuration for secure connections.
	TLS *tls.Config

	// TTL is how long cached documents live. Zero means no expiry.
	TTL time.Duration

	// ConnectTimeout is the maximum time to wait for connection
	// establishment.
	ConnectTimeout time.Duration

	// ReadTimeout is the maximum time to wait for read operations.
	ReadTimeout time.Duration

	// WriteTimeout is the maximum time to wait for write operations.
	WriteTimeout time.Duration
}

// RedisClient implements Client using go-redis/v9.
type RedisClient struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisClient creates a new document cache client with the given
// options and verifies connectivity.
func NewRedisClient(opts Options) (*RedisClient, error) {
	if opts.URL == "" {
		opts.URL = "redis://localhost:6379"
	}
	if opts.ConnectTimeout == 0 {
		opts.ConnectTimeout = 5 * time.Second
	}
	if opts.ReadTimeout == 0 {
		opts.ReadTimeout = 30 * time.Second
	}
	if opts.WriteTimeout == 0 {
		opts.WriteTimeout = 5 * time.Second
	}

	redisOpts, err := redis.ParseURL(opts.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	redisOpts.TLSConfig = opts.TLS
	redisOpts.DialTimeout = opts.ConnectTimeout
	redisOpts.ReadTimeout = opts.ReadTimeout
	redisOpts.WriteTimeout = opts.WriteTimeout

	client := redis.NewClient(redisOpts)

	ctx, cancel := context.WithTimeout(context.Background(), opts.ConnectTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisClient{client: client, ttl: opts.TTL}, nil
}

// Save stores a rendered document under its key, indexes it, and publishes
// an update event.
func (c *RedisClient) Save(ctx context.Context, doc Document) error {
	if err := doc.Validate(); err != nil {
		return fmt.Errorf("invalid document: %w", err)
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal document: %w", err)
	}

	if err := c.client.Set(ctx, docKeyPrefix+doc.Key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store document %s: %w", doc.Key, err)
	}
	if err := c.client.SAdd(ctx, docIndexKey, doc.Key).Err(); err != nil {
		return fmt.Errorf("failed to index document %s: %w", doc.Key, err)
	}

	return c.publish(ctx, UpdateEvent{
		ID:  uuid.NewString(),
		Key: doc.Key,
		At:  time.Now().UnixMilli(),
	})
}

// Load returns the cached document for key, or nil when it is absent or
// expired.
func (c *RedisClient) Load(ctx context.Context, key string) (*Document, error) {
	data, err := c.client.Get(ctx, docKeyPrefix+key).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load document %s: %w", key, err)
	}

	var doc Document
	if err := json.Unmarshal([]byte(data), &doc); err != nil {
		return nil, fmt.Errorf("failed to unmarshal document %s: %w", key, err)
	}
	return &doc, nil
}

// Delete removes a cached document and publishes a deletion event.
// Deleting an absent key is not an error.
func (c *RedisClient) Delete(ctx context.Context, key string) error {
	if err := c.client.Del(ctx, docKeyPrefix+key).Err(); err != nil {
		return fmt.Errorf("failed to delete document %s: %w", key, err)
	}
	if err := c.client.SRem(ctx, docIndexKey, key).Err(); err != nil {
		return fmt.Errorf("failed to unindex document %s: %w", key, err)
	}

	return c.publish(ctx, UpdateEvent{
		ID:      uuid.NewString(),
		Key:     key,
		Deleted: true,
		At:      time.Now().UnixMilli(),
	})
}

// Keys returns the keys of all cached documents.
func (c *RedisClient) Keys(ctx context.Context) ([]string, error) {
	keys, err := c.client.SMembers(ctx, docIndexKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list document keys: %w", err)
	}
	return keys, nil
}

// Subscribe creates a subscription to the update channel. The returned
// channel closes when the context is cancelled.
func (c *RedisClient) Subscribe(ctx context.Context) (<-chan UpdateEvent, error) {
	pubsub := c.client.Subscribe(ctx, updateChannel)

	if _, err := pubsub.Receive(ctx); err != nil {
		return nil, fmt.Errorf("failed to subscribe to updates: %w", err)
	}

	events := make(chan UpdateEvent)

	go func() {
		defer close(events)
		defer pubsub.Close()

		ch := pubsub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}

				var event UpdateEvent
				if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
					continue
				}

				select {
				case events <- event:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return events, nil
}

// Close closes the Redis connection.
func (c *RedisClient) Close() error {
	return c.client.Close()
}

func (c *RedisClient) publish(ctx context.Context, event UpdateEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal update event: %w", err)
	}
	if err := c.client.Publish(ctx, updateChannel, data).Err(); err != nil {
		return fmt.Errorf("failed to publish update event: %w", err)
	}
	return nil
}
