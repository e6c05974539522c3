package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/retailops/pricing-api/internal/models"
)

func TestLoyaltyDiscountStrictlyIncreasesWithLevel(t *testing.T) {
	levels := []models.LoyaltyLevel{
		models.LoyaltyBronze,
		models.LoyaltySilver,
		models.LoyaltyGold,
		models.LoyaltyPlatinum,
		models.LoyaltyDiamond,
	}

	prev := 0.0
	for _, level := range levels {
		got := LoyaltyDiscount(&models.Customer{LoyaltyLevel: level}, 1000)
		assert.Greater(t, got, prev, "level %s", level)
		prev = got
	}
}

func TestLoyaltyDiscountEdges(t *testing.T) {
	diamond := &models.Customer{LoyaltyLevel: models.LoyaltyDiamond}

	assert.Zero(t, LoyaltyDiscount(nil, 1000), "no customer means no discount")
	assert.Zero(t, LoyaltyDiscount(diamond, 0))
	assert.Zero(t, LoyaltyDiscount(diamond, -50))
	assert.Zero(t, LoyaltyDiscount(&models.Customer{}, 1000), "no loyalty level means no discount")
	assert.InDelta(t, 120, LoyaltyDiscount(diamond, 1000), 1e-9)
}

func TestLoyaltyRate(t *testing.T) {
	assert.Equal(t, 2.0, LoyaltyRate(models.LoyaltyBronze))
	assert.Equal(t, 12.0, LoyaltyRate(models.LoyaltyDiamond))
	assert.Zero(t, LoyaltyRate("copper"))
}
