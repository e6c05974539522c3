package pricing

import (
	"time"

	"github.com/retailops/pricing-api/internal/models"
)

func fptr(v float64) *float64 { return &v }
func iptr(v int) *int         { return &v }
func tptr(v time.Time) *time.Time {
	return &v
}

// evalAt is a fixed Wednesday 14:00 UTC in mid-June used across the
// time-sensitive tests.
var evalAt = time.Date(2025, time.June, 11, 14, 0, 0, 0, time.UTC)

func testProduct() *models.Product {
	return &models.Product{
		ID:        1,
		SKUCode:   "SKU-100",
		Name:      "Standing desk",
		Category:  "furniture",
		Brand:     "Deskly",
		Cost:      400,
		BasePrice: 650,
		VATRate:   10,
	}
}

func percentOffTier(id, priority int, pct float64) models.PricingTier {
	return models.PricingTier{
		ID:       id,
		Name:     "tier",
		Priority: priority,
		IsActive: true,
		Strategy: models.PricingStrategy{
			Type:       models.StrategyPercentageOff,
			Percentage: fptr(pct),
		},
	}
}
