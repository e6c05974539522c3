package pricing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/retailops/pricing-api/internal/models"
)

func TestMatchesEmptyConditionsAlwaysApply(t *testing.T) {
	tier := percentOffTier(1, 10, 5)
	req := &models.PricingRequest{Product: testProduct(), Quantity: 1}

	assert.True(t, Matches(&tier, req, evalAt))
}

func TestMatchesCustomerScopedConditions(t *testing.T) {
	wholesale := &models.Customer{Type: models.CustomerWholesale, LoyaltyLevel: models.LoyaltyGold, Country: "DE", Currency: "EUR"}

	tests := []struct {
		name       string
		conditions models.TierConditions
		customer   *models.Customer
		want       bool
	}{
		{
			name:       "type match",
			conditions: models.TierConditions{CustomerTypes: []models.CustomerType{models.CustomerWholesale}},
			customer:   wholesale,
			want:       true,
		},
		{
			name:       "type mismatch",
			conditions: models.TierConditions{CustomerTypes: []models.CustomerType{models.CustomerVIP}},
			customer:   wholesale,
			want:       false,
		},
		{
			name:       "type required but customer absent",
			conditions: models.TierConditions{CustomerTypes: []models.CustomerType{models.CustomerRetail}},
			customer:   nil,
			want:       false,
		},
		{
			name:       "loyalty required but customer absent",
			conditions: models.TierConditions{LoyaltyLevels: []models.LoyaltyLevel{models.LoyaltyGold}},
			customer:   nil,
			want:       false,
		},
		{
			name:       "loyalty match",
			conditions: models.TierConditions{LoyaltyLevels: []models.LoyaltyLevel{models.LoyaltyGold, models.LoyaltyDiamond}},
			customer:   wholesale,
			want:       true,
		},
		{
			name:       "country mismatch",
			conditions: models.TierConditions{Countries: []string{"US"}},
			customer:   wholesale,
			want:       false,
		},
		{
			name:       "currency match",
			conditions: models.TierConditions{Currencies: []string{"EUR"}},
			customer:   wholesale,
			want:       true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tier := models.PricingTier{IsActive: true, Conditions: tt.conditions}
			req := &models.PricingRequest{Product: testProduct(), Customer: tt.customer, Quantity: 1}
			assert.Equal(t, tt.want, Matches(&tier, req, evalAt))
		})
	}
}

func TestMatchesQuantityBounds(t *testing.T) {
	tier := models.PricingTier{Conditions: models.TierConditions{
		MinQuantity: iptr(10),
		MaxQuantity: iptr(20),
	}}

	for qty, want := range map[int]bool{9: false, 10: true, 20: true, 21: false} {
		req := &models.PricingRequest{Product: testProduct(), Quantity: qty}
		assert.Equal(t, want, Matches(&tier, req, evalAt), "quantity %d", qty)
	}
}

func TestMatchesMinOrderValueUsesListPrice(t *testing.T) {
	// Base price 650: 2 units = 1300 list value.
	tier := models.PricingTier{Conditions: models.TierConditions{
		MinOrderValue: fptr(1300),
	}}

	req := &models.PricingRequest{Product: testProduct(), Quantity: 2}
	assert.True(t, Matches(&tier, req, evalAt))

	req.Quantity = 1
	assert.False(t, Matches(&tier, req, evalAt))
}

func TestMatchesProductAllowLists(t *testing.T) {
	req := &models.PricingRequest{Product: testProduct(), Quantity: 1}

	tier := models.PricingTier{Conditions: models.TierConditions{Categories: []string{"furniture"}}}
	assert.True(t, Matches(&tier, req, evalAt))

	tier.Conditions.Brands = []string{"OtherBrand"}
	assert.False(t, Matches(&tier, req, evalAt))

	tier.Conditions.Brands = nil
	tier.Conditions.SKUCodes = []string{"SKU-100"}
	assert.True(t, Matches(&tier, req, evalAt))
}

func TestMatchesValidityWindowInclusive(t *testing.T) {
	tier := models.PricingTier{Conditions: models.TierConditions{
		ValidFrom: tptr(evalAt),
		ValidTo:   tptr(evalAt.Add(24 * time.Hour)),
	}}
	req := &models.PricingRequest{Product: testProduct(), Quantity: 1}

	assert.True(t, Matches(&tier, req, evalAt), "window start is inclusive")
	assert.True(t, Matches(&tier, req, evalAt.Add(24*time.Hour)), "window end is inclusive")
	assert.False(t, Matches(&tier, req, evalAt.Add(-time.Second)))
	assert.False(t, Matches(&tier, req, evalAt.Add(24*time.Hour+time.Second)))
}

func TestMatchesDayAndHourWindows(t *testing.T) {
	// evalAt is a Wednesday at 14:00.
	tier := models.PricingTier{Conditions: models.TierConditions{
		DaysOfWeek: []int{int(time.Wednesday)},
		HourStart:  iptr(9),
		HourEnd:    iptr(17),
	}}
	req := &models.PricingRequest{Product: testProduct(), Quantity: 1}

	assert.True(t, Matches(&tier, req, evalAt))
	assert.False(t, Matches(&tier, req, evalAt.Add(24*time.Hour)), "Thursday excluded")
	assert.False(t, Matches(&tier, req, evalAt.Add(5*time.Hour)), "19:00 outside hours")
}

func TestHourInWindowWrapsMidnight(t *testing.T) {
	assert.True(t, hourInWindow(23, 22, 2))
	assert.True(t, hourInWindow(1, 22, 2))
	assert.False(t, hourInWindow(12, 22, 2))
	assert.True(t, hourInWindow(22, 22, 2), "start inclusive")
	assert.True(t, hourInWindow(2, 22, 2), "end inclusive")
}

func TestMatchesSeasonalityMonthsAndEvents(t *testing.T) {
	req := &models.PricingRequest{Product: testProduct(), Quantity: 1}

	monthTier := models.PricingTier{Conditions: models.TierConditions{Months: []int{6, 7}}}
	assert.True(t, Matches(&monthTier, req, evalAt), "June matches months-only tier without event")
	assert.False(t, Matches(&monthTier, req, evalAt.AddDate(0, 3, 0)))

	eventTier := models.PricingTier{Conditions: models.TierConditions{Events: []string{"black_friday"}}}
	assert.False(t, Matches(&eventTier, req, evalAt), "event tier requires a request event")

	req.Context = &models.PricingContext{Event: "black_friday"}
	assert.True(t, Matches(&eventTier, req, evalAt))

	req.Context.Event = "clearance"
	assert.False(t, Matches(&eventTier, req, evalAt))
}

func TestMatchesStatic(t *testing.T) {
	tier := models.PricingTier{Conditions: models.TierConditions{
		CustomerTypes: []models.CustomerType{models.CustomerWholesale},
		Categories:    []string{"furniture"},
		MinQuantity:   iptr(100),
	}}

	assert.True(t, MatchesStatic(&tier, models.CustomerWholesale, "furniture"))
	assert.True(t, MatchesStatic(&tier, "", ""), "empty filters match everything")
	assert.False(t, MatchesStatic(&tier, models.CustomerRetail, "furniture"))
	assert.False(t, MatchesStatic(&tier, models.CustomerWholesale, "apparel"))
}
