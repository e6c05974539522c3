package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/retailops/pricing-api/internal/models"
)

// quoteIndexKey is the sorted set indexing cached quote keys by their
// validity deadline, used by the sweep worker.
const quoteIndexKey = "quotes:index"

// QuoteCache stores computed pricing results keyed by a deterministic
// request fingerprint. Only requests with an explicit evaluation time are
// cacheable: without one, two computations of the same request are not
// guaranteed to be identical.
type QuoteCache struct {
	redis *RedisClient
	ttl   time.Duration
}

// NewQuoteCache creates a QuoteCache with the given entry TTL.
func NewQuoteCache(redis *RedisClient, ttl time.Duration) *QuoteCache {
	return &QuoteCache{redis: redis, ttl: ttl}
}

// QuoteKey builds the deterministic fingerprint for a pricing request.
// Catalog version is mixed in so a tier catalog refresh invalidates every
// quote computed against the previous snapshot.
func QuoteKey(req *models.PricingRequest, catalogVersion int64) string {
	customerID := 0
	if req.Customer != nil {
		customerID = req.Customer.ID
	}
	evalTime := ""
	event := ""
	if req.Context != nil {
		if req.Context.EvaluationTime != nil {
			evalTime = req.Context.EvaluationTime.UTC().Format(time.RFC3339)
		}
		event = req.Context.Event
	}
	raw := fmt.Sprintf("v%d|p%d|c%d|q%d|ch%s|e%s|t%s",
		catalogVersion, req.Product.ID, customerID, req.Quantity, req.Channel, event, evalTime)
	sum := sha256.Sum256([]byte(raw))
	return "quote:" + hex.EncodeToString(sum[:16])
}

// Cacheable reports whether a request may be served from cache. Requests
// without an explicit evaluation time depend on the wall clock.
func Cacheable(req *models.PricingRequest) bool {
	return req.Context != nil && req.Context.EvaluationTime != nil
}

// Set stores a computed result under its request key.
func (c *QuoteCache) Set(ctx context.Context, key string, result *models.PricingResult) error {
	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal quote: %w", err)
	}
	if err := c.redis.Set(ctx, key, string(data), c.ttl); err != nil {
		return err
	}
	return c.redis.ZAdd(ctx, quoteIndexKey, float64(result.ValidUntil.Unix()), key)
}

// Get retrieves a cached result, or nil when absent.
func (c *QuoteCache) Get(ctx context.Context, key string) (*models.PricingResult, error) {
	data, err := c.redis.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	var result models.PricingResult
	if err := json.Unmarshal([]byte(data), &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal quote: %w", err)
	}
	return &result, nil
}

// SweepExpired deletes cached quotes whose validity deadline has passed
// and returns how many were removed.
func (c *QuoteCache) SweepExpired(ctx context.Context, now time.Time) (int, error) {
	keys, err := c.redis.ZRangeByScore(ctx, quoteIndexKey, "-inf", fmt.Sprintf("%d", now.Unix()))
	if err != nil {
		return 0, err
	}
	if len(keys) == 0 {
		return 0, nil
	}
	if err := c.redis.Delete(ctx, keys...); err != nil {
		return 0, err
	}
	if err := c.redis.ZRem(ctx, quoteIndexKey, keys...); err != nil {
		return 0, err
	}
	return len(keys), nil
}
