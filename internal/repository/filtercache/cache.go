// Package filtercache caches successful filter extractions in a key-value store.
package filtercache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/collabdays/peoplefinder/internal/db"
	"github.com/collabdays/peoplefinder/internal/domain"
)

const cacheKeyPrefix = "peoplefinder:filters:"

// Extractor derives structured filters from a raw query.
type Extractor interface {
	Extract(ctx context.Context, query string) domain.Filters
}

// store is the consumer interface for the filter cache (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// CachedExtractor caches extraction results keyed by the normalized query.
// Only real extractions are cached: degraded fallback results are passed
// through so a transient provider outage never pins bad filters for the TTL.
type CachedExtractor struct {
	inner      Extractor
	store      store
	ttl        time.Duration
	cacheTotal *prometheus.CounterVec
	logger     *zap.Logger
}

// New creates a caching decorator.
// cacheTotal is a counter vec with label "result" ("hit"/"miss"), passed explicitly.
func New(
	inner Extractor,
	s store,
	ttl time.Duration,
	cacheTotal *prometheus.CounterVec,
	logger *zap.Logger,
) *CachedExtractor {
	return &CachedExtractor{
		inner:      inner,
		store:      s,
		ttl:        ttl,
		cacheTotal: cacheTotal,
		logger:     logger,
	}
}

// Extract returns cached filters or calls the inner extractor.
func (c *CachedExtractor) Extract(ctx context.Context, query string) domain.Filters {
	key := c.cacheKey(query)

	if filters, ok := c.getFromCache(ctx, key); ok {
		c.incCache("hit")
		return filters
	}

	c.incCache("miss")

	filters := c.inner.Extract(ctx, query)
	if !filters.Fallback {
		c.putToCache(ctx, key, filters)
	}
	return filters
}

func (c *CachedExtractor) incCache(result string) {
	if c.cacheTotal != nil {
		c.cacheTotal.WithLabelValues(result).Inc()
	}
}

func (c *CachedExtractor) cacheKey(query string) string {
	h := sha256.Sum256([]byte(strings.ToLower(strings.TrimSpace(query))))
	return cacheKeyPrefix + hex.EncodeToString(h[:])
}

func (c *CachedExtractor) getFromCache(ctx context.Context, key string) (domain.Filters, bool) {
	data, err := c.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, db.ErrKeyNotFound) {
			c.logger.Warn("Failed to get cached filters", zap.String("key", key), zap.Error(err))
		}
		return domain.Filters{}, false
	}
	if len(data) == 0 {
		return domain.Filters{}, false
	}

	var filters domain.Filters
	if err := json.Unmarshal(data, &filters); err != nil {
		c.logger.Warn("Failed to parse cached filters", zap.String("key", key), zap.Error(err))
		return domain.Filters{}, false
	}
	if filters.Empty() {
		return domain.Filters{}, false
	}

	return filters, true
}

func (c *CachedExtractor) putToCache(ctx context.Context, key string, filters domain.Filters) {
	data, err := json.Marshal(filters)
	if err != nil {
		c.logger.Warn("Failed to encode filters for cache", zap.String("key", key), zap.Error(err))
		return
	}
	if err := c.store.SetWithTTL(ctx, key, data, c.ttl); err != nil {
		c.logger.Warn("Failed to cache filters", zap.String("key", key), zap.Error(err))
	}
}
