package cache

import (
	"context"
	"errors"
	"strconv"

	"github.com/redis/go-redis/v9"
)

// catalogVersionKey is the shared counter identifying the current tier
// catalog generation across instances. Quote keys mix it in, so bumping it
// orphans every quote computed under the previous generation.
const catalogVersionKey = "catalog:version"

// CatalogVersions coordinates the catalog generation counter in Redis so
// that every instance fingerprints quotes against the same generation.
type CatalogVersions struct {
	redis *RedisClient
}

// NewCatalogVersions creates a CatalogVersions backed by the given client.
func NewCatalogVersions(redis *RedisClient) *CatalogVersions {
	return &CatalogVersions{redis: redis}
}

// Current returns the shared catalog generation, or 0 when none has been
// set yet.
func (v *CatalogVersions) Current(ctx context.Context) (int64, error) {
	raw, err := v.redis.Get(ctx, catalogVersionKey)
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return strconv.ParseInt(raw, 10, 64)
}

// Bump advances the shared catalog generation and returns the new value.
func (v *CatalogVersions) Bump(ctx context.Context) (int64, error) {
	return v.redis.Incr(ctx, catalogVersionKey)
}
