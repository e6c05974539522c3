package pricing

import "github.com/retailops/pricing-api/internal/models"

// loyaltyRates maps loyalty levels to their discount percentage, applied
// to the running price after all tier adjustments have stacked.
var loyaltyRates = map[models.LoyaltyLevel]float64{
	models.LoyaltyBronze:   2,
	models.LoyaltySilver:   3,
	models.LoyaltyGold:     5,
	models.LoyaltyPlatinum: 8,
	models.LoyaltyDiamond:  12,
}

// LoyaltyRate returns the discount percentage for a loyalty level, or 0
// for an unknown or empty level.
func LoyaltyRate(level models.LoyaltyLevel) float64 {
	return loyaltyRates[level]
}

// LoyaltyDiscount computes the customer-level discount on the running
// price. The result is never negative; no customer means no discount.
func LoyaltyDiscount(customer *models.Customer, runningPrice float64) float64 {
	if customer == nil || runningPrice <= 0 {
		return 0
	}
	return runningPrice * loyaltyRates[customer.LoyaltyLevel] / 100
}
