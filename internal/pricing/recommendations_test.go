package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/retailops/pricing-api/internal/models"
)

func TestRecommendVolumeIncentive(t *testing.T) {
	req := &models.PricingRequest{Product: testProduct(), Quantity: 3}
	result := &models.PricingResult{FinalPrice: 100}

	recs := Recommend(req, result)

	if assert.Len(t, recs, 1) {
		assert.Equal(t, RecommendationVolume, recs[0].Type)
		// Next breakpoint is 5: estimated savings 100 * 5 * 5%.
		assert.Equal(t, 25.0, recs[0].EstimatedSavings)
	}
}

func TestRecommendNoVolumeAboveLastBreakpoint(t *testing.T) {
	req := &models.PricingRequest{Product: testProduct(), Quantity: 50}
	recs := Recommend(req, &models.PricingResult{FinalPrice: 100})
	assert.Empty(t, recs)
}

func TestRecommendLoyaltyUpgrade(t *testing.T) {
	req := &models.PricingRequest{
		Product:  testProduct(),
		Quantity: 60,
		Customer: &models.Customer{
			LoyaltyLevel:  models.LoyaltyBronze,
			LifetimeValue: 80000,
		},
	}
	result := &models.PricingResult{FinalPrice: 100}

	recs := Recommend(req, result)

	if assert.Len(t, recs, 1) {
		assert.Equal(t, RecommendationUpgrade, recs[0].Type)
		// Silver adds 1 point over bronze: 100 * 60 * 1%.
		assert.Equal(t, 60.0, recs[0].EstimatedSavings)
	}
}

func TestRecommendUpgradeSuppressedBelowThreshold(t *testing.T) {
	req := &models.PricingRequest{
		Product:  testProduct(),
		Quantity: 60,
		Customer: &models.Customer{
			LoyaltyLevel:  models.LoyaltyBronze,
			LifetimeValue: 10000,
		},
	}
	assert.Empty(t, Recommend(req, &models.PricingResult{FinalPrice: 100}))
}

func TestRecommendUpgradeOnlyForBronze(t *testing.T) {
	req := &models.PricingRequest{
		Product:  testProduct(),
		Quantity: 60,
		Customer: &models.Customer{
			LoyaltyLevel:  models.LoyaltyGold,
			LifetimeValue: 500000,
		},
	}
	assert.Empty(t, Recommend(req, &models.PricingResult{FinalPrice: 100}))
}

func TestNextBreakpoint(t *testing.T) {
	tests := []struct {
		quantity int
		want     int
		ok       bool
	}{
		{1, 5, true},
		{4, 5, true},
		{5, 10, true},
		{19, 20, true},
		{49, 50, true},
		{50, 0, false},
		{200, 0, false},
	}
	for _, tt := range tests {
		got, ok := nextBreakpoint(tt.quantity)
		assert.Equal(t, tt.ok, ok, "quantity %d", tt.quantity)
		assert.Equal(t, tt.want, got, "quantity %d", tt.quantity)
	}
}
