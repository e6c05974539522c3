package service

import (
	"context"
	"database/sql"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/retailops/pricing-api/internal/cache"
	"github.com/retailops/pricing-api/internal/models"
	"github.com/retailops/pricing-api/internal/pricing"
	"github.com/retailops/pricing-api/internal/repository"
	"github.com/retailops/pricing-api/internal/utils"
)

// PricingService is the application-facing surface of the pricing engine.
// It resolves catalog records, validates the request, consults the quote
// cache, and delegates the actual computation to the pure engine.
type PricingService struct {
	productRepo  *repository.ProductRepository
	customerRepo *repository.CustomerRepository
	tierRepo     *repository.TierRepository
	catalog      *pricing.SnapshotCatalog
	engine       *pricing.Engine
	quotes       *cache.QuoteCache
	versions     *cache.CatalogVersions
}

// NewPricingService constructs a PricingService. The engine shares the
// given catalog snapshot; quotes and versions may be nil to disable
// caching and cross-instance version coordination.
func NewPricingService(
	productRepo *repository.ProductRepository,
	customerRepo *repository.CustomerRepository,
	tierRepo *repository.TierRepository,
	catalog *pricing.SnapshotCatalog,
	engine *pricing.Engine,
	quotes *cache.QuoteCache,
	versions *cache.CatalogVersions,
) *PricingService {
	return &PricingService{
		productRepo:  productRepo,
		customerRepo: customerRepo,
		tierRepo:     tierRepo,
		catalog:      catalog,
		engine:       engine,
		quotes:       quotes,
		versions:     versions,
	}
}

// QuoteRequest is the transport-level pricing request. Product and customer
// are referenced by their public codes and resolved here.
type QuoteRequest struct {
	SKUCode        string     `json:"skuCode" binding:"required"`
	CustomerCode   string     `json:"customerCode,omitempty"`
	Quantity       int        `json:"quantity" binding:"required"`
	Channel        string     `json:"channel,omitempty"`
	Location       string     `json:"location,omitempty"`
	Event          string     `json:"event,omitempty"`
	EvaluationTime *time.Time `json:"evaluationTime,omitempty"`
	Urgent         bool       `json:"urgent,omitempty"`
}

var validChannels = map[models.Channel]bool{
	models.ChannelRetail:    true,
	models.ChannelWholesale: true,
	models.ChannelVIP:       true,
	models.ChannelExport:    true,
}

// Quote computes a price for one request. Validation failures are returned
// before any rule evaluation; nothing is ever partially computed.
func (s *PricingService) Quote(ctx context.Context, req *QuoteRequest) (*models.PricingResult, error) {
	if req.Quantity <= 0 {
		return nil, utils.ErrInvalidQuantity
	}
	channel := models.Channel(req.Channel)
	if req.Channel != "" && !validChannels[channel] {
		return nil, utils.ErrInvalidChannel
	}

	product, err := s.productRepo.GetBySKUCode(req.SKUCode)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, utils.ErrProductNotFound
		}
		return nil, err
	}

	var customer *models.Customer
	if req.CustomerCode != "" {
		customer, err = s.customerRepo.GetByCode(req.CustomerCode)
		if err != nil {
			if err == sql.ErrNoRows {
				return nil, utils.ErrCustomerNotFound
			}
			return nil, err
		}
	}

	// Export-restricted products cannot be quoted on the export channel
	// for anyone who is not a registered export customer.
	if product.ExportRestricted && channel == models.ChannelExport {
		if customer == nil || customer.Type != models.CustomerExport {
			return nil, utils.ErrExportRestricted
		}
	}

	pr := &models.PricingRequest{
		Product:  product,
		Customer: customer,
		Quantity: req.Quantity,
		Channel:  channel,
		Location: req.Location,
	}
	if req.EvaluationTime != nil || req.Event != "" || req.Urgent {
		pr.Context = &models.PricingContext{
			EvaluationTime: req.EvaluationTime,
			Event:          req.Event,
			Urgent:         req.Urgent,
		}
	}

	// Quote cache: only requests pinned to an explicit evaluation time are
	// deterministic enough to cache.
	var key string
	if s.quotes != nil && cache.Cacheable(pr) {
		key = cache.QuoteKey(pr, s.catalog.Version())
		if cached, err := s.quotes.Get(ctx, key); err == nil && cached != nil {
			return cached, nil
		}
	}

	result, err := s.engine.Price(pr)
	if err != nil {
		return nil, err
	}

	if key != "" {
		if err := s.quotes.Set(ctx, key, result); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("Failed to cache quote")
		}
	}
	return result, nil
}

// QuoteBatch re-prices a batch of requests against one consistent catalog
// snapshot. Per-item failures do not abort the batch; failed slots carry
// the error code instead of a result.
type BatchItemResult struct {
	Result *models.PricingResult `json:"result,omitempty"`
	Error  string                `json:"error,omitempty"`
}

func (s *PricingService) QuoteBatch(ctx context.Context, reqs []QuoteRequest) []BatchItemResult {
	out := make([]BatchItemResult, len(reqs))
	for i := range reqs {
		result, err := s.Quote(ctx, &reqs[i])
		if err != nil {
			out[i] = BatchItemResult{Error: err.Error()}
			continue
		}
		out[i] = BatchItemResult{Result: result}
	}
	return out
}

// ListApplicableTiers returns the active tiers whose static conditions
// (customer type, category) are compatible with the optional filters. Used
// for display and configuration UIs, never for final pricing.
func (s *PricingService) ListApplicableTiers(customerType models.CustomerType, category string) []models.PricingTier {
	var out []models.PricingTier
	for _, tier := range s.catalog.ActiveTiers() {
		if !tier.IsActive {
			continue
		}
		if pricing.MatchesStatic(&tier, customerType, category) {
			out = append(out, tier)
		}
	}
	return out
}

// ReloadCatalog loads the active tier set from the store and atomically
// swaps it into the shared snapshot under the cross-instance catalog
// generation, so quote keys stay aligned across replicas and restarts.
// Returns the number of tiers loaded.
func (s *PricingService) ReloadCatalog(ctx context.Context) (int, error) {
	tiers, err := s.tierRepo.GetActive()
	if err != nil {
		return 0, err
	}
	if s.versions != nil {
		version, err := s.versions.Current(ctx)
		if err == nil {
			s.catalog.ReplaceAt(tiers, version)
			return len(tiers), nil
		}
		log.Warn().Err(err).Msg("Failed to read shared catalog version, using local counter")
	}
	s.catalog.Replace(tiers)
	return len(tiers), nil
}

// InvalidateCatalog advances the shared catalog generation and reloads the
// snapshot under it. Called after tier mutations so cached quotes for the
// previous rule set are orphaned everywhere, not just on this instance.
func (s *PricingService) InvalidateCatalog(ctx context.Context) (int, error) {
	if s.versions != nil {
		if _, err := s.versions.Bump(ctx); err != nil {
			log.Warn().Err(err).Msg("Failed to bump shared catalog version")
		}
	}
	return s.ReloadCatalog(ctx)
}
