package worker

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/retailops/pricing-api/internal/cache"
)

// QuoteSweepWorker prunes expired quote entries from the cache index.
// Redis TTLs already expire the payloads; the sweep keeps the sorted-set
// index from growing unbounded.
type QuoteSweepWorker struct {
	quotes   *cache.QuoteCache
	interval time.Duration
}

// NewQuoteSweepWorker constructs a QuoteSweepWorker.
func NewQuoteSweepWorker(quotes *cache.QuoteCache, interval time.Duration) *QuoteSweepWorker {
	return &QuoteSweepWorker{
		quotes:   quotes,
		interval: interval,
	}
}

// Start begins the sweep loop and listens for context cancellation.
func (w *QuoteSweepWorker) Start(ctx context.Context) {
	log.Info().Dur("interval", w.interval).Msg("Starting quote sweep worker")

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.run(ctx)
		case <-ctx.Done():
			log.Info().Msg("Quote sweep worker stopped")
			return
		}
	}
}

func (w *QuoteSweepWorker) run(ctx context.Context) {
	removed, err := w.quotes.SweepExpired(ctx, time.Now())
	if err != nil {
		log.Error().Err(err).Msg("Failed to sweep expired quotes")
		return
	}
	if removed > 0 {
		log.Debug().Int("removed", removed).Msg("Swept expired quote entries")
	}
}
