package ndp

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// validKVKey is the character class NATS accepts for KV keys.
var validKVKey = regexp.MustCompile(`\A[-/_=.a-zA-Z0-9]+\z`)

type fakeKVEntry struct {
	nats.KeyValueEntry
	value []byte
}

func (e fakeKVEntry) Value() []byte { return e.value }

// fakeKV stores values in a map and rejects keys NATS would reject.
type fakeKV struct {
	nats.KeyValue
	values map[string][]byte
}

func newFakeKV() *fakeKV {
	return &fakeKV{values: make(map[string][]byte)}
}

func (kv *fakeKV) Get(key string) (nats.KeyValueEntry, error) {
	if !validKVKey.MatchString(key) {
		return nil, nats.ErrInvalidKey
	}

	value, ok := kv.values[key]
	if !ok {
		return nil, nats.ErrKeyNotFound
	}

	return fakeKVEntry{value: value}, nil
}

func (kv *fakeKV) Put(key string, value []byte) (uint64, error) {
	if !validKVKey.MatchString(key) {
		return 0, nats.ErrInvalidKey
	}

	kv.values[key] = value

	return 1, nil
}

func (kv *fakeKV) Delete(key string, opts ...nats.DeleteOpt) error {
	if !validKVKey.MatchString(key) {
		return nats.ErrInvalidKey
	}

	delete(kv.values, key)

	return nil
}

func TestNATSKVCache_FullURLKeyRoundTrips(t *testing.T) {
	t.Parallel()

	kv := newFakeKV()
	cache := &NATSKVCache{kv: kv, prefix: "prod"}
	ctx := context.Background()

	key := "GET https://api.nordlys.io/api/v1/projects/prod/assets?limit=100&source=scada"
	entry := &CacheEntry{
		Data:      []byte(`{"items":[]}`),
		ExpiresAt: time.Now().Add(time.Minute),
	}

	require.NoError(t, cache.Set(ctx, key, entry))
	require.Len(t, kv.values, 1)

	for stored := range kv.values {
		assert.Regexp(t, validKVKey, stored)
		assert.True(t, len(stored) > len("prod."))
		assert.Equal(t, "prod.", stored[:len("prod.")])
	}

	got, err := cache.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, entry.Data, got.Data)

	require.NoError(t, cache.Delete(ctx, key))

	_, err = cache.Get(ctx, key)
	assert.ErrorIs(t, err, ErrCacheKeyNotFound)
}

func TestNATSKVCache_ExpiredEntryIsDeleted(t *testing.T) {
	t.Parallel()

	kv := newFakeKV()
	cache := &NATSKVCache{kv: kv}
	ctx := context.Background()

	key := "GET https://api.nordlys.io/api/v1/projects/test/events?limit=5"
	entry := &CacheEntry{
		Data:      []byte(`{"items":[]}`),
		ExpiresAt: time.Now().Add(-time.Minute),
	}

	require.NoError(t, cache.Set(ctx, key, entry))

	_, err := cache.Get(ctx, key)
	assert.ErrorIs(t, err, ErrCacheEntryExpired)
	assert.Empty(t, kv.values)
}

func TestSanitizeKeyPrefix(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		prefix string
		want   string
	}{
		{"clean prefix kept", "prod-eu.v1", "prod-eu.v1"},
		{"spaces and colons replaced", "my project:eu", "my_project_eu"},
		{"empty stays empty", "", ""},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, sanitizeKeyPrefix(tt.prefix))
		})
	}
}

func TestNatsKey_DistinctURLsGetDistinctKeys(t *testing.T) {
	t.Parallel()

	a := natsKey("p", "GET https://api.nordlys.io/a")
	b := natsKey("p", "GET https://api.nordlys.io/b")

	assert.NotEqual(t, a, b)
	assert.Equal(t, a, natsKey("p", "GET https://api.nordlys.io/a"))
}
