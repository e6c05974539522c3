package pricing

import (
	"time"

	"github.com/retailops/pricing-api/internal/models"
)

// Matches decides whether a tier is applicable to a request at the given
// evaluation time. Every condition present on the tier must hold; absent
// conditions are vacuously true. The function is a pure predicate: it
// depends only on its inputs and never reads the wall clock.
func Matches(tier *models.PricingTier, req *models.PricingRequest, evalTime time.Time) bool {
	c := &tier.Conditions

	// Customer-scoped conditions fail when a customer is required but absent.
	if len(c.CustomerTypes) > 0 {
		if req.Customer == nil || !containsCustomerType(c.CustomerTypes, req.Customer.Type) {
			return false
		}
	}
	if len(c.LoyaltyLevels) > 0 {
		if req.Customer == nil || !containsLoyaltyLevel(c.LoyaltyLevels, req.Customer.LoyaltyLevel) {
			return false
		}
	}
	if len(c.Countries) > 0 {
		if req.Customer == nil || !containsString(c.Countries, req.Customer.Country) {
			return false
		}
	}
	if len(c.Currencies) > 0 {
		if req.Customer == nil || !containsString(c.Currencies, req.Customer.Currency) {
			return false
		}
	}

	// Quantity bounds.
	if c.MinQuantity != nil && req.Quantity < *c.MinQuantity {
		return false
	}
	if c.MaxQuantity != nil && req.Quantity > *c.MaxQuantity {
		return false
	}

	// Minimum order value is estimated against the list price, not the
	// post-discount running price.
	if c.MinOrderValue != nil {
		if float64(req.Quantity)*req.Product.BasePrice < *c.MinOrderValue {
			return false
		}
	}

	// Product allow-lists.
	if len(c.Categories) > 0 && !containsString(c.Categories, req.Product.Category) {
		return false
	}
	if len(c.Brands) > 0 && !containsString(c.Brands, req.Product.Brand) {
		return false
	}
	if len(c.SKUCodes) > 0 && !containsString(c.SKUCodes, req.Product.SKUCode) {
		return false
	}

	// Validity window, inclusive on both ends.
	if c.ValidFrom != nil && evalTime.Before(*c.ValidFrom) {
		return false
	}
	if c.ValidTo != nil && evalTime.After(*c.ValidTo) {
		return false
	}

	// Day-of-week and hour-of-day windows against the evaluation time's
	// local calendar fields.
	if len(c.DaysOfWeek) > 0 && !containsInt(c.DaysOfWeek, int(evalTime.Weekday())) {
		return false
	}
	if c.HourStart != nil && c.HourEnd != nil {
		if !hourInWindow(evalTime.Hour(), *c.HourStart, *c.HourEnd) {
			return false
		}
	}

	// Seasonality: month membership and/or named events. A tier that lists
	// events requires the request to name one of them; a months-only tier
	// does not require an event.
	if len(c.Months) > 0 && !containsInt(c.Months, int(evalTime.Month())) {
		return false
	}
	if len(c.Events) > 0 {
		event := ""
		if req.Context != nil {
			event = req.Context.Event
		}
		if event == "" || !containsString(c.Events, event) {
			return false
		}
	}

	return true
}

// MatchesStatic checks only the request-independent conditions of a tier
// (customer type and category) against optional filters. It backs the
// display/configuration listing and must never be used for final pricing.
func MatchesStatic(tier *models.PricingTier, customerType models.CustomerType, category string) bool {
	c := &tier.Conditions
	if customerType != "" && len(c.CustomerTypes) > 0 && !containsCustomerType(c.CustomerTypes, customerType) {
		return false
	}
	if category != "" && len(c.Categories) > 0 && !containsString(c.Categories, category) {
		return false
	}
	return true
}

// hourInWindow reports whether hour h lies in the inclusive window
// [start, end]. A window with start > end wraps past midnight.
func hourInWindow(h, start, end int) bool {
	if start <= end {
		return h >= start && h <= end
	}
	return h >= start || h <= end
}

func containsString(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

func containsInt(set []int, v int) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

func containsCustomerType(set []models.CustomerType, v models.CustomerType) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

func containsLoyaltyLevel(set []models.LoyaltyLevel, v models.LoyaltyLevel) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}
