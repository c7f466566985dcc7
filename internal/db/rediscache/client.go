// Package rediscache is a minimal Redis key-value client backing the
// embedding cache. It is optional: the service runs without it when no
// cache address is configured.
package rediscache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/rueidis"

	"github.com/jobportal-labs/ragchat/internal/db"
)

// Config holds connection parameters for the cache.
type Config struct {
	Addrs    []string
	Username string
	Password string
	DB       int
	TTL      time.Duration
}

// Client wraps rueidis for GET/SET with a fixed TTL.
type Client struct {
	client rueidis.Client
	ttl    time.Duration
}

// New creates a cache client.
func New(cfg Config) (*Client, error) {
	if len(cfg.Addrs) == 0 {
		return nil, fmt.Errorf("addrs is required")
	}

	rc, err := rueidis.NewClient(rueidis.ClientOption{
		InitAddress:  cfg.Addrs,
		Username:     cfg.Username,
		Password:     cfg.Password,
		SelectDB:     cfg.DB,
		DisableCache: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	return &Client{client: rc, ttl: cfg.TTL}, nil
}

// NewForTest wraps an existing rueidis client (used with rueidis/mock).
func NewForTest(rc rueidis.Client, ttl time.Duration) *Client {
	return &Client{client: rc, ttl: ttl}
}

// Get retrieves a value by key. Missing keys map to db.ErrKeyNotFound.
func (c *Client) Get(ctx context.Context, key string) ([]byte, error) {
	cmd := c.client.B().Get().Key(key).Build()
	data, err := c.client.Do(ctx, cmd).AsBytes()
	if err != nil {
		if rueidis.IsRedisNil(err) {
			return nil, db.ErrKeyNotFound
		}
		return nil, &db.Error{Op: db.OpGet, Err: err}
	}
	return data, nil
}

// Set stores a value under the configured TTL; without a TTL the key
// never expires.
func (c *Client) Set(ctx context.Context, key string, value []byte) error {
	var cmd rueidis.Completed
	if c.ttl > 0 {
		cmd = c.client.B().Set().Key(key).Value(string(value)).Ex(c.ttl).Build()
	} else {
		cmd = c.client.B().Set().Key(key).Value(string(value)).Build()
	}
	if err := c.client.Do(ctx, cmd).Error(); err != nil {
		return &db.Error{Op: db.OpSet, Err: err}
	}
	return nil
}

// Close shuts down the client.
func (c *Client) Close() {
	c.client.Close()
}
