package pricing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/retailops/pricing-api/internal/models"
)

func newTestEngine(tiers ...models.PricingTier) *Engine {
	return NewEngine(TierList(tiers), 24*time.Hour).WithClock(func() time.Time { return evalAt })
}

func requestAt(product *models.Product, quantity int) *models.PricingRequest {
	return &models.PricingRequest{
		Product:  product,
		Quantity: quantity,
		Context:  &models.PricingContext{EvaluationTime: tptr(evalAt)},
	}
}

func TestPriceValidation(t *testing.T) {
	engine := newTestEngine()

	_, err := engine.Price(nil)
	assert.ErrorIs(t, err, ErrProductRequired)

	_, err = engine.Price(&models.PricingRequest{Quantity: 1})
	assert.ErrorIs(t, err, ErrProductRequired)

	_, err = engine.Price(&models.PricingRequest{Product: testProduct(), Quantity: 0})
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	_, err = engine.Price(&models.PricingRequest{Product: testProduct(), Quantity: -3})
	assert.ErrorIs(t, err, ErrInvalidQuantity)
}

func TestPriceNoMatchingTiers(t *testing.T) {
	engine := newTestEngine()
	req := requestAt(testProduct(), 1)
	req.Customer = &models.Customer{Type: models.CustomerRetail}

	result, err := engine.Price(req)
	require.NoError(t, err)

	assert.Equal(t, 650.00, result.BasePrice)
	assert.Equal(t, 650.00, result.FinalPrice)
	assert.Equal(t, 650.00, result.TotalAmount)
	assert.Empty(t, result.AppliedTiers)
	assert.False(t, result.PriceGuaranteed)
	assert.Equal(t, 65.00, result.Tax.VATAmount)
	assert.Equal(t, 38.46, result.Margin.MarginPct)
	assert.False(t, result.Margin.FloorApplied)

	// Ledger: base price line and final price line only.
	require.Len(t, result.Breakdown, 2)
	assert.Equal(t, "Base price", result.Breakdown[0].Label)
	assert.Equal(t, "Final price", result.Breakdown[1].Label)
}

func TestPriceWholesaleVolumeTier(t *testing.T) {
	tier := models.PricingTier{
		ID:       7,
		Name:     "Wholesale volume",
		Priority: 10,
		IsActive: true,
		Conditions: models.TierConditions{
			CustomerTypes: []models.CustomerType{models.CustomerWholesale},
		},
		Strategy: models.PricingStrategy{
			Type: models.StrategyQuantityTiered,
			QuantityBreaks: []models.QuantityBreak{
				{MinQuantity: 25, PercentageOff: fptr(18)},
			},
		},
	}
	engine := newTestEngine(tier)

	req := requestAt(testProduct(), 25)
	req.Customer = &models.Customer{Type: models.CustomerWholesale}

	result, err := engine.Price(req)
	require.NoError(t, err)

	// 650 * 0.82 = 533.
	assert.Equal(t, 533.00, result.FinalPrice)
	assert.Equal(t, 13325.00, result.TotalAmount)
	require.Len(t, result.AppliedTiers, 1)
	assert.Equal(t, 7, result.AppliedTiers[0].TierID)
	assert.Equal(t, -117.00, result.AppliedTiers[0].Adjustment)
	assert.Equal(t, -117.00, result.Discount.TierAdjustmentTotal)
}

func TestPriceTierStackThenLoyalty(t *testing.T) {
	product := &models.Product{SKUCode: "SKU-VIP", BasePrice: 200, Cost: 80}
	tier := percentOffTier(3, 100, 15)
	engine := newTestEngine(tier)

	req := requestAt(product, 1)
	req.Customer = &models.Customer{
		Type:          models.CustomerVIP,
		LoyaltyLevel:  models.LoyaltyDiamond,
		LifetimeValue: 250000,
	}

	result, err := engine.Price(req)
	require.NoError(t, err)

	// Tier stack first: 200 - 30 = 170. Loyalty 12% is then computed on
	// the running price: 170 * 0.12 = 20.40 off, never folded into the
	// tier percentages.
	assert.Equal(t, 149.60, result.FinalPrice)
	assert.Equal(t, 20.40, result.Discount.LoyaltyDiscount)
	assert.Equal(t, models.LoyaltyDiamond, result.Discount.LoyaltyLevel)
	assert.Equal(t, 50.40, result.Discount.TotalDiscount)
	assert.Equal(t, 25.20, result.Discount.TotalDiscountPct)

	require.Len(t, result.Breakdown, 4)
	assert.Equal(t, "Loyalty discount (diamond)", result.Breakdown[2].Label)
	assert.Equal(t, -20.40, result.Breakdown[2].Amount)
	assert.Equal(t, 149.60, result.Breakdown[2].Running)
}

func TestPriceLuxuryTax(t *testing.T) {
	product := &models.Product{SKUCode: "SKU-LUX", BasePrice: 1000, Cost: 100, VATRate: 5, IsLuxury: true}
	engine := newTestEngine()

	result, err := engine.Price(requestAt(product, 2))
	require.NoError(t, err)

	assert.Equal(t, 2000.00, result.TotalAmount)
	assert.Equal(t, 100.00, result.Tax.VATAmount)
	require.NotNil(t, result.Tax.LuxuryTax)
	assert.Equal(t, 100.00, *result.Tax.LuxuryTax)
	assert.Equal(t, 200.00, result.Tax.TotalTax)
	assert.Equal(t, 2200.00, result.Tax.TotalWithTax)
}

func TestPriceMarginFloorBeatsOwnDiscount(t *testing.T) {
	product := &models.Product{SKUCode: "SKU-M", BasePrice: 100, Cost: 60}
	tier := percentOffTier(5, 10, 30)
	tier.MinMarginPct = fptr(50)
	engine := newTestEngine(tier)

	result, err := engine.Price(requestAt(product, 1))
	require.NoError(t, err)

	// The tier's own 30% cut would price at 70; its margin floor wins and
	// prices up to 60/(1-0.5) = 120 instead.
	assert.Equal(t, 120.00, result.FinalPrice)
	require.Len(t, result.AppliedTiers, 1)
	assert.Equal(t, 20.00, result.AppliedTiers[0].Adjustment)
}

func TestPriceHardFloorBackstop(t *testing.T) {
	tier := percentOffTier(9, 10, 50)
	engine := newTestEngine(tier)

	result, err := engine.Price(requestAt(testProduct(), 1))
	require.NoError(t, err)

	// 50% off 650 is 325, below cost*1.10 = 440. The backstop wins and is
	// visible in the ledger.
	assert.Equal(t, 440.00, result.FinalPrice)
	assert.True(t, result.Margin.FloorApplied)
	assert.Equal(t, 9.09, result.Margin.MarginPct)

	var found bool
	for _, line := range result.Breakdown {
		if line.Label == "Minimum margin floor" {
			found = true
			assert.Equal(t, 440.00, line.Running)
		}
	}
	assert.True(t, found, "floor correction must appear in the breakdown")
}

func TestPricePriorityOrderAndStability(t *testing.T) {
	low1 := percentOffTier(1, 5, 2)
	low1.Name = "low first"
	low2 := percentOffTier(2, 5, 3)
	low2.Name = "low second"
	high := percentOffTier(3, 50, 5)
	high.Name = "high"

	// Catalog order deliberately lists the high-priority tier last.
	engine := newTestEngine(low1, low2, high)

	result, err := engine.Price(requestAt(testProduct(), 1))
	require.NoError(t, err)

	require.Len(t, result.AppliedTiers, 3)
	assert.Equal(t, 3, result.AppliedTiers[0].TierID, "highest priority first")
	assert.Equal(t, 1, result.AppliedTiers[1].TierID, "equal priorities keep catalog order")
	assert.Equal(t, 2, result.AppliedTiers[2].TierID)

	// Deltas are computed against the original base, so the stack is
	// 650 - 32.5 - 13 - 19.5 = 585.
	assert.Equal(t, 585.00, result.FinalPrice)
}

func TestPriceSkipsInactiveTiers(t *testing.T) {
	inactive := percentOffTier(1, 10, 50)
	inactive.IsActive = false
	engine := newTestEngine(inactive)

	result, err := engine.Price(requestAt(testProduct(), 1))
	require.NoError(t, err)
	assert.Empty(t, result.AppliedTiers)
	assert.Equal(t, 650.00, result.FinalPrice)
}

func TestPriceFixedStrategyGuaranteesPrice(t *testing.T) {
	tier := models.PricingTier{
		ID:       4,
		Name:     "Contract price",
		Priority: 10,
		IsActive: true,
		Strategy: models.PricingStrategy{Type: models.StrategyFixed, FixedPrice: fptr(500)},
	}
	engine := newTestEngine(tier)

	result, err := engine.Price(requestAt(testProduct(), 1))
	require.NoError(t, err)
	assert.Equal(t, 500.00, result.FinalPrice)
	assert.True(t, result.PriceGuaranteed)
}

func TestPriceMalformedTierDegradesToNoOp(t *testing.T) {
	malformed := models.PricingTier{
		ID:       8,
		Name:     "broken",
		Priority: 99,
		IsActive: true,
		Strategy: models.PricingStrategy{Type: models.StrategyQuantityTiered},
	}
	engine := newTestEngine(malformed)

	result, err := engine.Price(requestAt(testProduct(), 100))
	require.NoError(t, err)
	assert.Empty(t, result.AppliedTiers, "zero-delta tiers never enter the ledger")
	assert.Equal(t, 650.00, result.FinalPrice)
}

func TestPriceMalformedStrategyWithMarginFloor(t *testing.T) {
	// The missing fixed-price payload yields a zero delta, but the margin
	// floor still raises the price to 80/(1-0.5) = 160. The tier enters
	// the ledger and its description degrades, it must not panic.
	malformed := models.PricingTier{
		ID:           11,
		Name:         "broken fixed",
		Priority:     10,
		IsActive:     true,
		Strategy:     models.PricingStrategy{Type: models.StrategyFixed},
		MinMarginPct: fptr(50),
	}
	engine := newTestEngine(malformed)
	product := &models.Product{SKUCode: "SKU-MF", BasePrice: 100, Cost: 80}

	result, err := engine.Price(requestAt(product, 1))
	require.NoError(t, err)
	require.Len(t, result.AppliedTiers, 1)
	assert.Equal(t, 60.00, result.AppliedTiers[0].Adjustment)
	assert.NotEmpty(t, result.AppliedTiers[0].Description)
	assert.Equal(t, 160.00, result.FinalPrice)
	assert.InDelta(t, 50.0, result.Margin.MarginPct, 1e-9)
}

func TestPriceChannelBasePriceSelection(t *testing.T) {
	product := &models.Product{
		SKUCode:        "SKU-CH",
		BasePrice:      650,
		RetailPrice:    fptr(600),
		WholesalePrice: fptr(500),
		VIPPrice:       fptr(550),
	}
	engine := newTestEngine()

	tests := []struct {
		channel  models.Channel
		customer *models.Customer
		want     float64
	}{
		{channel: models.ChannelRetail, want: 600},
		{channel: models.ChannelWholesale, want: 500},
		{channel: models.ChannelVIP, want: 550},
		// No export price: falls back to retail.
		{channel: models.ChannelExport, want: 600},
		// No channel: the customer type implies one.
		{customer: &models.Customer{Type: models.CustomerWholesale}, want: 500},
		// No channel, no customer: retail.
		{want: 600},
	}
	for _, tt := range tests {
		req := requestAt(product, 1)
		req.Channel = tt.channel
		req.Customer = tt.customer
		result, err := engine.Price(req)
		require.NoError(t, err)
		assert.Equal(t, tt.want, result.BasePrice, "channel %q", tt.channel)
	}
}

func TestPriceTotalAmountRounding(t *testing.T) {
	product := &models.Product{SKUCode: "SKU-R", BasePrice: 99.99, Cost: 10}
	engine := newTestEngine(percentOffTier(1, 10, 10))

	result, err := engine.Price(requestAt(product, 3))
	require.NoError(t, err)

	// Unit price 89.991 is only rounded at presentation; the total is the
	// rounded unit price times quantity, rounded again.
	assert.Equal(t, 89.99, result.FinalPrice)
	assert.Equal(t, round2(result.FinalPrice*3), result.TotalAmount)
}

func TestPriceDeterministicWithExplicitEvaluationTime(t *testing.T) {
	tier := percentOffTier(1, 10, 15)
	tier.Conditions.Months = []int{6}
	engine := newTestEngine(tier)

	req := requestAt(testProduct(), 4)
	req.Customer = &models.Customer{Type: models.CustomerVIP, LoyaltyLevel: models.LoyaltyGold}

	first, err := engine.Price(req)
	require.NoError(t, err)
	second, err := engine.Price(req)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestPriceCurrencyFromCustomer(t *testing.T) {
	engine := newTestEngine()

	req := requestAt(testProduct(), 1)
	result, err := engine.Price(req)
	require.NoError(t, err)
	assert.Equal(t, "USD", result.Currency)

	req.Customer = &models.Customer{Type: models.CustomerExport, Currency: "EUR"}
	result, err = engine.Price(req)
	require.NoError(t, err)
	assert.Equal(t, "EUR", result.Currency)
}

func TestPriceValidUntilUsesClock(t *testing.T) {
	engine := newTestEngine()

	result, err := engine.Price(requestAt(testProduct(), 1))
	require.NoError(t, err)
	assert.Equal(t, evalAt.Add(24*time.Hour), result.ValidUntil)
}
