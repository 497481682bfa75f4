package adapters

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"matson-tracker/internal/core/cache"
	"matson-tracker/internal/features/status/domain"
)

const statusCacheKey = "shipment_status"

// RedisStatusRepository implements ports.StatusRepository on top of the cache port.
// The record occupies a single slot and is overwritten wholesale on every save;
// a Redis SET is atomic, so concurrent readers observe either the previous or
// the new record, never a torn one.
type RedisStatusRepository struct {
	cache cache.Cache
}

// NewRedisStatusRepository creates a new RedisStatusRepository.
func NewRedisStatusRepository(c cache.Cache) *RedisStatusRepository {
	return &RedisStatusRepository{
		cache: c,
	}
}

// Save persists the record, replacing any prior content. The entry never expires.
func (r *RedisStatusRepository) Save(ctx context.Context, record *domain.StatusRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal status record: %w", err)
	}

	if err := r.cache.Set(ctx, statusCacheKey, data, 0); err != nil {
		return fmt.Errorf("failed to save status record to cache: %w", err)
	}

	return nil
}

// Get retrieves the last saved record. A missing key or unparsable content
// yields domain.ErrStatusUnavailable; only transport failures surface as-is.
func (r *RedisStatusRepository) Get(ctx context.Context) (*domain.StatusRecord, error) {
	data, err := r.cache.Get(ctx, statusCacheKey)
	if err != nil {
		if errors.Is(err, cache.ErrKeyNotFound) {
			return nil, domain.ErrStatusUnavailable
		}
		return nil, fmt.Errorf("failed to get status record from cache: %w", err)
	}

	var record domain.StatusRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStatusUnavailable, err)
	}

	return &record, nil
}
