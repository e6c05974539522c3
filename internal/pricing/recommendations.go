package pricing

import (
	"fmt"

	"github.com/retailops/pricing-api/internal/models"
)

// Volume breakpoints for upsell suggestions and the assumed incentive rate
// used to estimate (not guarantee) the savings at the next breakpoint.
var volumeBreakpoints = []int{5, 10, 20, 50}

const (
	volumeIncentiveRate = 5.0
	bronzeUpgradeLTV    = 50000.0

	RecommendationVolume  = "volume_incentive"
	RecommendationUpgrade = "loyalty_upgrade"
)

// Recommend produces non-binding upsell and loyalty suggestions from a
// computed result. It is pure and advisory: missing customer or product
// attributes simply suppress the relevant suggestion, and nothing here
// ever feeds back into the numeric price.
func Recommend(req *models.PricingRequest, result *models.PricingResult) []models.Recommendation {
	var recs []models.Recommendation

	if next, ok := nextBreakpoint(req.Quantity); ok {
		estimated := round2(result.FinalPrice * float64(next) * volumeIncentiveRate / 100)
		recs = append(recs, models.Recommendation{
			Type: RecommendationVolume,
			Message: fmt.Sprintf("Order %d units or more to qualify for volume pricing (currently %d)",
				next, req.Quantity),
			EstimatedSavings: estimated,
		})
	}

	if c := req.Customer; c != nil && c.LoyaltyLevel == models.LoyaltyBronze && c.LifetimeValue > bronzeUpgradeLTV {
		extraPct := LoyaltyRate(models.LoyaltySilver) - LoyaltyRate(models.LoyaltyBronze)
		estimated := round2(result.FinalPrice * float64(req.Quantity) * extraPct / 100)
		recs = append(recs, models.Recommendation{
			Type:             RecommendationUpgrade,
			Message:          "Eligible for silver loyalty upgrade based on purchase history",
			EstimatedSavings: estimated,
		})
	}

	return recs
}

// nextBreakpoint returns the smallest volume breakpoint strictly above the
// given quantity, if any.
func nextBreakpoint(quantity int) (int, bool) {
	for _, bp := range volumeBreakpoints {
		if quantity < bp {
			return bp, true
		}
	}
	return 0, false
}
