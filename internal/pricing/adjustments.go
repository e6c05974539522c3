package pricing

import (
	"time"

	"github.com/retailops/pricing-api/internal/models"
)

// Delta computes the signed per-unit price adjustment an applicable tier
// produces against the base price. Internally inconsistent strategy data
// (missing payload, empty break table, unknown type) degrades to a zero
// adjustment so one malformed tier never blocks the whole computation.
func Delta(strategy *models.PricingStrategy, basePrice float64, quantity int, product *models.Product, evalTime time.Time) float64 {
	switch strategy.Type {
	case models.StrategyFixed:
		if strategy.FixedPrice == nil {
			return 0
		}
		return *strategy.FixedPrice - basePrice

	case models.StrategyPercentageOff:
		if strategy.Percentage == nil {
			return 0
		}
		return -basePrice * *strategy.Percentage / 100

	case models.StrategyPercentageMarkup:
		if strategy.Percentage == nil {
			return 0
		}
		return basePrice * *strategy.Percentage / 100

	case models.StrategyQuantityTiered:
		return quantityTieredDelta(strategy.QuantityBreaks, basePrice, quantity)

	case models.StrategyDynamic:
		return dynamicDelta(strategy, basePrice, product, evalTime)

	case models.StrategyNone:
		return 0

	default:
		// Unknown strategy type: deliberate no-op rather than error.
		return 0
	}
}

// quantityTieredDelta selects the break row with the largest MinQuantity
// that is still <= quantity (closest-from-below). A quantity below every
// row's minimum yields no adjustment.
func quantityTieredDelta(breaks []models.QuantityBreak, basePrice float64, quantity int) float64 {
	var row *models.QuantityBreak
	for i := range breaks {
		b := &breaks[i]
		if b.MinQuantity > quantity {
			continue
		}
		if row == nil || b.MinQuantity > row.MinQuantity {
			row = b
		}
	}
	if row == nil {
		return 0
	}
	if row.Price != nil {
		return *row.Price - basePrice
	}
	if row.PercentageOff != nil {
		return -basePrice * *row.PercentageOff / 100
	}
	return 0
}

// dynamicDelta composes demand, seasonal, and scarcity factors
// multiplicatively. Each factor applies unconditionally once its trigger
// holds; there is no damping or single-factor cap. The seasonal factor
// marks up in the product's high-season months and is inverted into a
// markdown in its low-season months.
func dynamicDelta(strategy *models.PricingStrategy, basePrice float64, product *models.Product, evalTime time.Time) float64 {
	multiplier := 1.0
	if strategy.DemandFactor != nil {
		multiplier *= *strategy.DemandFactor
	}
	if strategy.SeasonalFactor != nil {
		switch {
		case product.InHighSeason(evalTime.Month()):
			multiplier *= *strategy.SeasonalFactor
		case *strategy.SeasonalFactor > 0 && product.InLowSeason(evalTime.Month()):
			multiplier /= *strategy.SeasonalFactor
		}
	}
	if strategy.ScarcityFactor != nil && product.BelowReorderLevel() {
		multiplier *= *strategy.ScarcityFactor
	}
	return basePrice*multiplier - basePrice
}
