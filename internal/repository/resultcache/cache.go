// Package resultcache stores computed responses in a key-value store.
package resultcache

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/kailas-cloud/textvec/internal/db"
	"github.com/kailas-cloud/textvec/internal/domain"
	"github.com/kailas-cloud/textvec/internal/logger"
)

var cacheKeyPrefix = domain.KeyPrefix + "result:"

// store is the consumer interface for the cache (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// Cache keeps JSON-encoded results. Failures are logged and reported as misses.
type Cache struct {
	store      store
	ttl        time.Duration
	cacheTotal *prometheus.CounterVec
}

// New creates a Cache.
// cacheTotal is a counter vec with label "result" ("hit"/"miss"), may be nil.
func New(s store, ttl time.Duration, cacheTotal *prometheus.CounterVec) *Cache {
	return &Cache{store: s, ttl: ttl, cacheTotal: cacheTotal}
}

// Get decodes the cached value for key into dst and reports whether it was found.
func (c *Cache) Get(ctx context.Context, key domain.ResultKey, dst any) bool {
	k := Key(key)
	data, err := c.store.Get(ctx, k)
	if err != nil {
		if !errors.Is(err, db.ErrKeyNotFound) {
			logger.FromContext(ctx).Warn("Failed to get cached result", zap.String("key", k), zap.Error(err))
		}
		c.inc("miss")
		return false
	}

	if err := json.Unmarshal(data, dst); err != nil {
		logger.FromContext(ctx).Warn("Failed to decode cached result", zap.String("key", k), zap.Error(err))
		c.inc("miss")
		return false
	}

	c.inc("hit")
	return true
}

// Put stores v under key.
func (c *Cache) Put(ctx context.Context, key domain.ResultKey, v any) {
	k := Key(key)
	data, err := json.Marshal(v)
	if err != nil {
		logger.FromContext(ctx).Warn("Failed to encode result", zap.String("key", k), zap.Error(err))
		return
	}
	if err := c.store.SetWithTTL(ctx, k, data, c.ttl); err != nil {
		logger.FromContext(ctx).Warn("Failed to cache result", zap.String("key", k), zap.Error(err))
	}
}

func (c *Cache) inc(result string) {
	if c.cacheTotal != nil {
		c.cacheTotal.WithLabelValues(result).Inc()
	}
}

// Key hashes a ResultKey. Every field is length-prefixed so that
// different splits of the same bytes never collide.
func Key(key domain.ResultKey) string {
	h := sha256.New()
	write := func(s string) {
		var n [8]byte
		binary.LittleEndian.PutUint64(n[:], uint64(len(s)))
		h.Write(n[:])
		h.Write([]byte(s))
	}
	count := func(n int) {
		var b [8]byte
		binary.LittleEndian.PutUint64(b[:], uint64(n))
		h.Write(b[:])
	}

	write(key.Operation)
	count(len(key.Params))
	for _, p := range key.Params {
		write(p)
	}
	count(len(key.Texts))
	for _, t := range key.Texts {
		write(t)
	}
	return cacheKeyPrefix + hex.EncodeToString(h.Sum(nil))
}
