package pricing

import (
	"math"

	"github.com/retailops/pricing-api/internal/models"
)

// EnforceGuardrails post-processes a tier's proposed delta against the
// tier's own minimum-margin and maximum-discount constraints and returns
// the possibly-adjusted delta.
//
// The margin-floor correction runs before the max-discount clamp. Because
// the clamp truncates by magnitude to the discount cap, it can undo a
// margin correction the first step just made. Business has not confirmed
// the intended precedence, so the historical order is kept as-is; see
// DESIGN.md before changing it, since reordering changes real prices.
func EnforceGuardrails(delta, basePrice, cost float64, tier *models.PricingTier) float64 {
	if tier.MinMarginPct != nil {
		proposed := basePrice + delta
		// A zero proposed price makes the margin ratio undefined; treat it
		// as 0% instead of dividing by zero.
		marginPct := 0.0
		if proposed != 0 {
			marginPct = (proposed - cost) / proposed * 100
		}
		if marginPct < *tier.MinMarginPct {
			// Override the tier's own adjustment entirely: price up (or
			// down) to exactly the minimum margin.
			if denom := 1 - *tier.MinMarginPct/100; denom > 0 {
				delta = cost/denom - basePrice
			}
		}
	}

	if tier.MaxDiscountPct != nil {
		maxCut := basePrice * *tier.MaxDiscountPct / 100
		if math.Abs(delta) > maxCut {
			delta = -maxCut
		}
	}

	return delta
}
