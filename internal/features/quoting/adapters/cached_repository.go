package adapters

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"freight-rater/internal/core/cache"
	"freight-rater/internal/core/logger"
	"freight-rater/internal/features/quoting/domain"
	"freight-rater/internal/features/quoting/ports"

	"go.uber.org/zap"
)

// Cache keys are table names, so invalidating a reloaded reference table is
// a single DEL by the collaborator that owns the data.
const (
	classTableCacheKey    = "freight_class_densities"
	priceTableCacheKey    = "freight_prices:all"
	priceClassCachePrefix = "freight_prices:class:"
)

// CachedClassTableRepository is a read-through cache over a
// ClassTableRepository. Cache failures degrade to the inner source; they
// never fail a quote.
type CachedClassTableRepository struct {
	inner ports.ClassTableRepository
	cache cache.Cache
	ttl   time.Duration
}

// NewCachedClassTableRepository decorates inner with a table-name-keyed
// cache entry.
func NewCachedClassTableRepository(inner ports.ClassTableRepository, c cache.Cache, ttl time.Duration) *CachedClassTableRepository {
	return &CachedClassTableRepository{inner: inner, cache: c, ttl: ttl}
}

// ListAll returns the cached classification table, reading through on miss.
func (r *CachedClassTableRepository) ListAll(ctx context.Context) ([]domain.DensityClassRow, error) {
	var cached []domain.DensityClassRow
	if readCached(ctx, r.cache, classTableCacheKey, &cached) {
		return cached, nil
	}

	rows, err := r.inner.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	writeCached(ctx, r.cache, classTableCacheKey, rows, r.ttl)
	return rows, nil
}

// CachedPriceTableRepository is a read-through cache over a
// PriceTableRepository, with one entry for the full table and one per
// queried class.
type CachedPriceTableRepository struct {
	inner ports.PriceTableRepository
	cache cache.Cache
	ttl   time.Duration
}

// NewCachedPriceTableRepository decorates inner with table-name-keyed
// cache entries.
func NewCachedPriceTableRepository(inner ports.PriceTableRepository, c cache.Cache, ttl time.Duration) *CachedPriceTableRepository {
	return &CachedPriceTableRepository{inner: inner, cache: c, ttl: ttl}
}

// ListByClass returns the cached rows for one class, reading through on miss.
func (r *CachedPriceTableRepository) ListByClass(ctx context.Context, freightClass int) ([]domain.PriceTableRow, error) {
	key := fmt.Sprintf("%s%d", priceClassCachePrefix, freightClass)

	var cached []domain.PriceTableRow
	if readCached(ctx, r.cache, key, &cached) {
		return cached, nil
	}

	rows, err := r.inner.ListByClass(ctx, freightClass)
	if err != nil {
		return nil, err
	}
	writeCached(ctx, r.cache, key, rows, r.ttl)
	return rows, nil
}

// ListAll returns the cached full table, reading through on miss.
func (r *CachedPriceTableRepository) ListAll(ctx context.Context) ([]domain.PriceTableRow, error) {
	var cached []domain.PriceTableRow
	if readCached(ctx, r.cache, priceTableCacheKey, &cached) {
		return cached, nil
	}

	rows, err := r.inner.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	writeCached(ctx, r.cache, priceTableCacheKey, rows, r.ttl)
	return rows, nil
}

// readCached reports whether key held a decodable entry. Misses and cache
// errors both read as "not cached".
func readCached(ctx context.Context, c cache.Cache, key string, dest interface{}) bool {
	data, err := c.Get(ctx, key)
	if err != nil {
		return false
	}
	if err := json.Unmarshal(data, dest); err != nil {
		logger.Get().Warn("discarding undecodable cache entry",
			zap.String("key", key),
			zap.Error(err),
		)
		return false
	}
	return true
}

// writeCached stores value under key, logging rather than failing on error.
func writeCached(ctx context.Context, c cache.Cache, key string, value interface{}, ttl time.Duration) {
	data, err := json.Marshal(value)
	if err != nil {
		logger.Get().Warn("failed to encode cache entry", zap.String("key", key), zap.Error(err))
		return
	}
	if err := c.Set(ctx, key, data, ttl); err != nil {
		logger.Get().Warn("failed to write cache entry", zap.String("key", key), zap.Error(err))
	}
}
