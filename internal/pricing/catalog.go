package pricing

import (
	"sync/atomic"

	"github.com/retailops/pricing-api/internal/models"
)

// Catalog provides the engine with a read-only view of the tier rules.
// Implementations must return a slice that is not mutated while any pricing
// computation is in flight; updates swap in a fresh slice instead.
type Catalog interface {
	ActiveTiers() []models.PricingTier
}

// TierList is an immutable Catalog over a fixed slice. Used by tests and
// one-shot computations.
type TierList []models.PricingTier

// ActiveTiers returns the underlying tiers in catalog order.
func (l TierList) ActiveTiers() []models.PricingTier {
	return l
}

// SnapshotCatalog is a Catalog whose tier list can be atomically replaced
// while computations read a consistent snapshot. The catalog refresh worker
// owns the writes; the engine only ever reads.
type SnapshotCatalog struct {
	tiers   atomic.Pointer[[]models.PricingTier]
	version atomic.Int64
}

// NewSnapshotCatalog creates a SnapshotCatalog seeded with the given tiers.
func NewSnapshotCatalog(tiers []models.PricingTier) *SnapshotCatalog {
	c := &SnapshotCatalog{}
	c.Replace(tiers)
	return c
}

// Replace atomically swaps in a new tier list and bumps the snapshot
// version. In-flight computations keep reading the snapshot they started
// with.
func (c *SnapshotCatalog) Replace(tiers []models.PricingTier) {
	c.tiers.Store(&tiers)
	c.version.Add(1)
}

// ReplaceAt swaps in a new tier list under an externally assigned version.
// Used when the version is a counter shared across instances, so every
// replica fingerprints quotes against the same catalog generation.
func (c *SnapshotCatalog) ReplaceAt(tiers []models.PricingTier, version int64) {
	c.tiers.Store(&tiers)
	c.version.Store(version)
}

// Version returns a monotonic counter identifying the current snapshot.
// Quote cache keys mix it in so a catalog refresh orphans stale entries.
func (c *SnapshotCatalog) Version() int64 {
	return c.version.Load()
}

// ActiveTiers returns the current snapshot in catalog order.
func (c *SnapshotCatalog) ActiveTiers() []models.PricingTier {
	p := c.tiers.Load()
	if p == nil {
		return nil
	}
	return *p
}
