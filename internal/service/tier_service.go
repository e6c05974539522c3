package service

import (
	"context"
	"database/sql"

	"github.com/rs/zerolog/log"

	"github.com/retailops/pricing-api/internal/models"
	"github.com/retailops/pricing-api/internal/repository"
	"github.com/retailops/pricing-api/internal/utils"
)

// TierService provides admin-facing management of the pricing tier catalog.
// Every mutation triggers a catalog snapshot reload so running pricing
// computations pick up the change on their next request.
type TierService struct {
	tierRepo   *repository.TierRepository
	pricingSvc *PricingService
}

// NewTierService constructs a TierService.
func NewTierService(tierRepo *repository.TierRepository, pricingSvc *PricingService) *TierService {
	return &TierService{tierRepo: tierRepo, pricingSvc: pricingSvc}
}

// ListTiers returns every tier including inactive ones.
func (s *TierService) ListTiers() ([]models.PricingTier, error) {
	return s.tierRepo.GetAll()
}

// GetTier returns one tier by id.
func (s *TierService) GetTier(id int) (*models.PricingTier, error) {
	tier, err := s.tierRepo.GetByID(id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, utils.ErrTierNotFound
		}
		return nil, err
	}
	return tier, nil
}

// CreateTier inserts a tier and refreshes the live catalog.
func (s *TierService) CreateTier(ctx context.Context, tier *models.PricingTier) error {
	if tier.Strategy.Type == "" {
		tier.Strategy.Type = models.StrategyNone
	}
	if err := s.tierRepo.Create(tier); err != nil {
		return err
	}
	s.refresh(ctx)
	return nil
}

// UpdateTier updates a tier and refreshes the live catalog.
func (s *TierService) UpdateTier(ctx context.Context, tier *models.PricingTier) error {
	if err := s.tierRepo.Update(tier); err != nil {
		if err == sql.ErrNoRows {
			return utils.ErrTierNotFound
		}
		return err
	}
	s.refresh(ctx)
	return nil
}

// SetTierStatus toggles a tier's active flag and refreshes the live catalog.
func (s *TierService) SetTierStatus(ctx context.Context, id int, isActive bool) error {
	if err := s.tierRepo.UpdateStatus(id, isActive); err != nil {
		if err == sql.ErrNoRows {
			return utils.ErrTierNotFound
		}
		return err
	}
	s.refresh(ctx)
	return nil
}

// DeleteTier removes a tier and refreshes the live catalog.
func (s *TierService) DeleteTier(ctx context.Context, id int) error {
	if err := s.tierRepo.Delete(id); err != nil {
		if err == sql.ErrNoRows {
			return utils.ErrTierNotFound
		}
		return err
	}
	s.refresh(ctx)
	return nil
}

func (s *TierService) refresh(ctx context.Context) {
	n, err := s.pricingSvc.InvalidateCatalog(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Failed to reload tier catalog after mutation")
		return
	}
	log.Info().Int("tiers", n).Msg("Tier catalog reloaded")
}
