package worker

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/retailops/pricing-api/internal/service"
)

// CatalogWorker periodically reloads the active tier set from the database
// so rule edits made by other instances take effect without a restart. The
// reload adopts the shared catalog generation, keeping quote cache keys
// aligned across replicas.
type CatalogWorker struct {
	pricingService *service.PricingService
	interval       time.Duration
}

// NewCatalogWorker constructs a CatalogWorker.
func NewCatalogWorker(pricingService *service.PricingService, interval time.Duration) *CatalogWorker {
	return &CatalogWorker{
		pricingService: pricingService,
		interval:       interval,
	}
}

// Start begins the refresh loop and listens for context cancellation.
func (w *CatalogWorker) Start(ctx context.Context) {
	log.Info().Dur("interval", w.interval).Msg("Starting catalog refresh worker")

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.run(ctx)
		case <-ctx.Done():
			log.Info().Msg("Catalog refresh worker stopped")
			return
		}
	}
}

func (w *CatalogWorker) run(ctx context.Context) {
	count, err := w.pricingService.ReloadCatalog(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Failed to reload pricing catalog")
		return
	}
	log.Debug().Int("tiers", count).Msg("Pricing catalog refreshed")
}
