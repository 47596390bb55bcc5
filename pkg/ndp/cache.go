package ndp

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nordlys-io/ndp-client/internal/constants"
)

// Static cache errors.
var (
	ErrCacheKeyNotFound  = errors.New("key not found")
	ErrCacheEntryExpired = errors.New("entry expired")
)

// CacheEntry is one cached GET response.
type CacheEntry struct {
	Data      []byte    `json:"data"`
	ExpiresAt time.Time `json:"expiresAt"`
	ETag      string    `json:"etag,omitempty"`
}

// Cache stores GET responses keyed by request path and query.
type Cache interface {
	Get(ctx context.Context, key string) (*CacheEntry, error)
	Set(ctx context.Context, key string, entry *CacheEntry) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
	Has(ctx context.Context, key string) bool
}

// CacheOptions holds options common to every backend.
type CacheOptions struct {
	// DefaultTTL applies to entries stored without an explicit expiry.
	DefaultTTL time.Duration

	// KeyPrefix namespaces keys in shared backends, e.g. per project.
	// Characters outside [-/_=.a-zA-Z0-9] are replaced with underscores.
	KeyPrefix string
}

// DefaultCacheOptions returns the default cache options.
func DefaultCacheOptions() *CacheOptions {
	return &CacheOptions{
		DefaultTTL: constants.DefaultCacheTTL,
	}
}

// MemoryCache is an in-process cache with a bounded entry count.
type MemoryCache struct {
	mu      sync.Mutex
	entries map[string]*CacheEntry
	order   []string
	maxSize int
}

// NewMemoryCache creates a memory cache holding at most maxSize entries.
func NewMemoryCache(maxSize int) *MemoryCache {
	if maxSize <= 0 {
		maxSize = constants.DefaultCacheSize
	}

	return &MemoryCache{
		entries: make(map[string]*CacheEntry),
		maxSize: maxSize,
	}
}

// Get retrieves an entry, removing it if expired.
func (c *MemoryCache) Get(ctx context.Context, key string) (*CacheEntry, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrCacheKeyNotFound, key)
	}

	if time.Now().After(entry.ExpiresAt) {
		c.remove(key)

		return nil, fmt.Errorf("%w: %s", ErrCacheEntryExpired, key)
	}

	return entry, nil
}

// Set stores an entry, evicting the oldest one at capacity.
func (c *MemoryCache) Set(ctx context.Context, key string, entry *CacheEntry) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.entries[key]; !ok {
		if len(c.entries) >= c.maxSize && len(c.order) > 0 {
			c.remove(c.order[0])
		}

		c.order = append(c.order, key)
	}

	c.entries[key] = entry

	return nil
}

// Delete removes an entry.
func (c *MemoryCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.remove(key)

	return nil
}

// Clear removes all entries.
func (c *MemoryCache) Clear(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]*CacheEntry)
	c.order = nil

	return nil
}

// Has reports whether a live entry exists for key.
func (c *MemoryCache) Has(ctx context.Context, key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]

	return ok && time.Now().Before(entry.ExpiresAt)
}

func (c *MemoryCache) remove(key string) {
	delete(c.entries, key)

	for index, k := range c.order {
		if k == key {
			c.order = append(c.order[:index], c.order[index+1:]...)

			break
		}
	}
}

// NATSKVConfig configures the NATS JetStream key-value cache backend,
// which shares cached responses across processes.
type NATSKVConfig struct {
	// URL is the NATS server URL, e.g. nats://localhost:4222.
	URL string

	// Bucket is the KV bucket name. Created if it does not exist.
	Bucket string

	// TTL applies bucket-wide; NATS expires entries server-side.
	TTL time.Duration

	// CredsFile is an optional NATS credentials file.
	CredsFile string
}

// NATSKVCache stores entries in a NATS JetStream key-value bucket.
type NATSKVCache struct {
	conn   *nats.Conn
	kv     nats.KeyValue
	prefix string
}

// natsKey converts a raw cache key into a valid NATS KV key. Raw keys
// carry full request URLs, whose spaces, colons, and query strings NATS
// rejects, so the key is hashed to hex and namespaced under the prefix.
func natsKey(prefix, key string) string {
	sum := sha256.Sum256([]byte(key))
	encoded := hex.EncodeToString(sum[:])

	if prefix == "" {
		return encoded
	}

	return prefix + "." + encoded
}

// sanitizeKeyPrefix replaces characters NATS does not allow in keys.
func sanitizeKeyPrefix(prefix string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '-', r == '_', r == '=', r == '.', r == '/':
			return r
		default:
			return '_'
		}
	}, prefix)
}

// NewNATSKVCache connects to NATS and opens (or creates) the bucket.
// options may be nil; its KeyPrefix namespaces keys within the bucket.
func NewNATSKVCache(config *NATSKVConfig, options *CacheOptions) (*NATSKVCache, error) {
	var opts []nats.Option
	if config.CredsFile != "" {
		opts = append(opts, nats.UserCredentials(config.CredsFile))
	}

	conn, err := nats.Connect(config.URL, opts...)
	if err != nil {
		return nil, fmt.Errorf("connecting to NATS: %w", err)
	}

	js, err := conn.JetStream()
	if err != nil {
		conn.Close()

		return nil, fmt.Errorf("getting JetStream context: %w", err)
	}

	kv, err := js.KeyValue(config.Bucket)
	if errors.Is(err, nats.ErrBucketNotFound) {
		kv, err = js.CreateKeyValue(&nats.KeyValueConfig{
			Bucket: config.Bucket,
			TTL:    config.TTL,
		})
	}

	if err != nil {
		conn.Close()

		return nil, fmt.Errorf("opening KV bucket: %w", err)
	}

	var prefix string
	if options != nil {
		prefix = sanitizeKeyPrefix(options.KeyPrefix)
	}

	return &NATSKVCache{conn: conn, kv: kv, prefix: prefix}, nil
}

// Get retrieves an entry from the bucket.
func (c *NATSKVCache) Get(ctx context.Context, key string) (*CacheEntry, error) {
	kvEntry, err := c.kv.Get(natsKey(c.prefix, key))
	if err != nil {
		if errors.Is(err, nats.ErrKeyNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrCacheKeyNotFound, key)
		}

		return nil, fmt.Errorf("getting cache entry: %w", err)
	}

	var entry CacheEntry

	err = json.Unmarshal(kvEntry.Value(), &entry)
	if err != nil {
		return nil, fmt.Errorf("decoding cache entry: %w", err)
	}

	if time.Now().After(entry.ExpiresAt) {
		_ = c.kv.Delete(natsKey(c.prefix, key))

		return nil, fmt.Errorf("%w: %s", ErrCacheEntryExpired, key)
	}

	return &entry, nil
}

// Set stores an entry in the bucket.
func (c *NATSKVCache) Set(ctx context.Context, key string, entry *CacheEntry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("encoding cache entry: %w", err)
	}

	_, err = c.kv.Put(natsKey(c.prefix, key), data)
	if err != nil {
		return fmt.Errorf("storing cache entry: %w", err)
	}

	return nil
}

// Delete removes an entry from the bucket.
func (c *NATSKVCache) Delete(ctx context.Context, key string) error {
	err := c.kv.Delete(natsKey(c.prefix, key))
	if err != nil && !errors.Is(err, nats.ErrKeyNotFound) {
		return fmt.Errorf("deleting cache entry: %w", err)
	}

	return nil
}

// Clear removes every entry in the bucket.
func (c *NATSKVCache) Clear(ctx context.Context) error {
	keys, err := c.kv.Keys()
	if err != nil {
		if errors.Is(err, nats.ErrNoKeysFound) {
			return nil
		}

		return fmt.Errorf("listing cache keys: %w", err)
	}

	for _, key := range keys {
		err = c.kv.Delete(key)
		if err != nil {
			return fmt.Errorf("deleting cache entry: %w", err)
		}
	}

	return nil
}

// Has reports whether a live entry exists for key.
func (c *NATSKVCache) Has(ctx context.Context, key string) bool {
	_, err := c.Get(ctx, key)

	return err == nil
}

// Close releases the NATS connection.
func (c *NATSKVCache) Close() {
	c.conn.Close()
}
