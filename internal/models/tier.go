package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// StrategyType enumerates the pricing strategies a tier can carry.
// Exactly one strategy applies per tier; anything else is StrategyNone,
// which yields a zero adjustment by definition.
type StrategyType string

const (
	StrategyNone             StrategyType = "none"
	StrategyFixed            StrategyType = "fixed"
	StrategyPercentageOff    StrategyType = "percentage_off"
	StrategyPercentageMarkup StrategyType = "percentage_markup"
	StrategyQuantityTiered   StrategyType = "quantity_tiered"
	StrategyDynamic          StrategyType = "dynamic"
)

// QuantityBreak is one row of a quantity-tiered price table. Either an
// absolute unit price or a percentage-off applies at MinQuantity and above.
type QuantityBreak struct {
	MinQuantity   int      `json:"minQuantity"`
	Price         *float64 `json:"price,omitempty"`
	PercentageOff *float64 `json:"percentageOff,omitempty"`
}

// PricingStrategy describes how an applicable tier adjusts the unit price.
// The Type discriminates which payload fields are meaningful.
type PricingStrategy struct {
	Type StrategyType `json:"type"`

	// fixed
	FixedPrice *float64 `json:"fixedPrice,omitempty"`

	// percentage_off / percentage_markup
	Percentage *float64 `json:"percentage,omitempty"`

	// quantity_tiered
	QuantityBreaks []QuantityBreak `json:"quantityBreaks,omitempty"`

	// dynamic multiplicative factors
	DemandFactor   *float64 `json:"demandFactor,omitempty"`
	SeasonalFactor *float64 `json:"seasonalFactor,omitempty"`
	ScarcityFactor *float64 `json:"scarcityFactor,omitempty"`
}

// TierConditions is the conjunctive predicate on a tier. Every field that is
// present must hold for the tier to match; absent fields are vacuously true.
type TierConditions struct {
	CustomerTypes []CustomerType `json:"customerTypes,omitempty"`
	LoyaltyLevels []LoyaltyLevel `json:"loyaltyLevels,omitempty"`

	MinQuantity   *int     `json:"minQuantity,omitempty"`
	MaxQuantity   *int     `json:"maxQuantity,omitempty"`
	MinOrderValue *float64 `json:"minOrderValue,omitempty"`

	Categories []string `json:"categories,omitempty"`
	Brands     []string `json:"brands,omitempty"`
	SKUCodes   []string `json:"skuCodes,omitempty"`
	Countries  []string `json:"countries,omitempty"`
	Currencies []string `json:"currencies,omitempty"`

	// Validity time window, inclusive on both ends.
	ValidFrom *time.Time `json:"validFrom,omitempty"`
	ValidTo   *time.Time `json:"validTo,omitempty"`

	// Day-of-week (0=Sunday..6=Saturday) and hour-of-day window.
	DaysOfWeek []int `json:"daysOfWeek,omitempty"`
	HourStart  *int  `json:"hourStart,omitempty"`
	HourEnd    *int  `json:"hourEnd,omitempty"`

	// Seasonality: calendar months (1..12) and/or named events.
	Months []int    `json:"months,omitempty"`
	Events []string `json:"events,omitempty"`
}

// PricingTier is a named, prioritized conditional pricing rule. Higher
// priority evaluates first; ties keep catalog order.
type PricingTier struct {
	ID       int    `db:"id" json:"id"`
	Name     string `db:"name" json:"name"`
	Priority int    `db:"priority" json:"priority"`
	IsActive bool   `db:"is_active" json:"isActive"`

	Conditions TierConditions  `db:"conditions" json:"conditions"`
	Strategy   PricingStrategy `db:"strategy" json:"strategy"`

	// Guardrails bounding this tier's own adjustment.
	MinMarginPct   *float64 `db:"min_margin_pct" json:"minMarginPct,omitempty"`
	MaxDiscountPct *float64 `db:"max_discount_pct" json:"maxDiscountPct,omitempty"`

	CreatedAt time.Time `db:"created_at" json:"-"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// Value implements driver.Valuer so conditions persist as JSONB.
func (c TierConditions) Value() (driver.Value, error) {
	return json.Marshal(c)
}

// Scan implements sql.Scanner for the JSONB conditions column.
func (c *TierConditions) Scan(src interface{}) error {
	return scanJSON(src, c)
}

// Value implements driver.Valuer so the strategy persists as JSONB.
func (s PricingStrategy) Value() (driver.Value, error) {
	return json.Marshal(s)
}

// Scan implements sql.Scanner for the JSONB strategy column.
func (s *PricingStrategy) Scan(src interface{}) error {
	return scanJSON(src, s)
}

func scanJSON(src, dst interface{}) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, dst)
	case string:
		return json.Unmarshal([]byte(v), dst)
	case nil:
		return nil
	default:
		return fmt.Errorf("unsupported jsonb scan type %T", src)
	}
}
