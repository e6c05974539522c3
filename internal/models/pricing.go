package models

import "time"

// Channel enumerates the sales channels a price can be quoted for.
type Channel string

const (
	ChannelRetail    Channel = "retail"
	ChannelWholesale Channel = "wholesale"
	ChannelVIP       Channel = "vip"
	ChannelExport    Channel = "export"
)

// PricingContext carries situational inputs for one computation. When
// EvaluationTime is nil the engine falls back to its injected clock, which
// makes time-sensitive tiers non-reproducible; batch callers should always
// set it explicitly.
type PricingContext struct {
	EvaluationTime *time.Time `json:"evaluationTime,omitempty"`
	Event          string     `json:"event,omitempty"`
	Urgent         bool       `json:"urgent,omitempty"`
}

// PricingRequest is the full input to one pricing computation. Product is
// required and Quantity must be positive; Customer, Location, and Context
// are optional.
type PricingRequest struct {
	Product  *Product        `json:"product"`
	Customer *Customer       `json:"customer,omitempty"`
	Quantity int             `json:"quantity"`
	Channel  Channel         `json:"channel,omitempty"`
	Location string          `json:"location,omitempty"`
	Context  *PricingContext `json:"context,omitempty"`
}

// AppliedTier records one tier that contributed a non-zero adjustment.
type AppliedTier struct {
	TierID      int          `json:"tierId"`
	Name        string       `json:"name"`
	Type        StrategyType `json:"type"`
	Adjustment  float64      `json:"adjustment"`
	Description string       `json:"description"`
}

// BreakdownLine is one entry of the ordered audit ledger from base price
// down to final price. Running is the unit price after this line.
type BreakdownLine struct {
	Label   string  `json:"label"`
	Amount  float64 `json:"amount"`
	Running float64 `json:"running"`
}

// MarginSummary reports per-unit profitability of the final price.
type MarginSummary struct {
	CostPerUnit  float64 `json:"costPerUnit"`
	MarginAmount float64 `json:"marginAmount"`
	MarginPct    float64 `json:"marginPct"`
	FloorApplied bool    `json:"floorApplied"`
}

// TaxSummary reports taxes on the extended amount. LuxuryTax is present
// only for luxury-flagged products.
type TaxSummary struct {
	VATRate      float64  `json:"vatRate"`
	VATAmount    float64  `json:"vatAmount"`
	LuxuryTax    *float64 `json:"luxuryTax,omitempty"`
	TotalTax     float64  `json:"totalTax"`
	TotalWithTax float64  `json:"totalWithTax"`
}

// DiscountSummary aggregates every price reduction in the computation.
type DiscountSummary struct {
	TierAdjustmentTotal float64      `json:"tierAdjustmentTotal"`
	LoyaltyLevel        LoyaltyLevel `json:"loyaltyLevel,omitempty"`
	LoyaltyDiscount     float64      `json:"loyaltyDiscount"`
	TotalDiscount       float64      `json:"totalDiscount"`
	TotalDiscountPct    float64      `json:"totalDiscountPct"`
}

// Recommendation is a non-binding upsell or volume-incentive suggestion.
// Recommendations never affect the numeric result.
type Recommendation struct {
	Type             string  `json:"type"`
	Message          string  `json:"message"`
	EstimatedSavings float64 `json:"estimatedSavings,omitempty"`
}

// PricingResult is the auditable output of one pricing computation. All
// monetary fields are rounded to two decimals at assembly time; everything
// except ValidUntil is a pure function of the request.
type PricingResult struct {
	BasePrice       float64          `json:"basePrice"`
	FinalPrice      float64          `json:"finalPrice"`
	Currency        string           `json:"currency"`
	Quantity        int              `json:"quantity"`
	TotalAmount     float64          `json:"totalAmount"`
	AppliedTiers    []AppliedTier    `json:"appliedTiers"`
	Margin          MarginSummary    `json:"margin"`
	Tax             TaxSummary       `json:"tax"`
	Discount        DiscountSummary  `json:"discount"`
	Breakdown       []BreakdownLine  `json:"breakdown"`
	PriceGuaranteed bool             `json:"priceGuaranteed"`
	ValidUntil      time.Time        `json:"validUntil"`
	Recommendations []Recommendation `json:"recommendations,omitempty"`
}
