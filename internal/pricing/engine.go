package pricing

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/retailops/pricing-api/internal/models"
)

// Validation errors returned before any rule evaluation takes place.
var (
	ErrProductRequired = errors.New("PRODUCT_REQUIRED")
	ErrInvalidQuantity = errors.New("INVALID_QUANTITY")
)

// hardFloorFactor is the absolute price floor backstop: the final unit
// price is never allowed below cost * 1.10, independent of any tier's own
// guardrail.
const hardFloorFactor = 1.10

// defaultCurrency is used when the request carries no customer currency.
const defaultCurrency = "USD"

// Engine is the pricing orchestrator. It is a pure, stateless computation
// over its inputs and a read-only tier catalog snapshot; a single Engine is
// safe for concurrent use from many goroutines.
type Engine struct {
	catalog  Catalog
	validity time.Duration
	now      func() time.Time
}

// NewEngine constructs an Engine over the given tier catalog. validity is
// the quote validity window stamped on every result.
func NewEngine(catalog Catalog, validity time.Duration) *Engine {
	return &Engine{
		catalog:  catalog,
		validity: validity,
		now:      time.Now,
	}
}

// WithClock replaces the engine's clock. The clock is consulted only when
// a request supplies no evaluation time, and for the ValidUntil stamp.
func (e *Engine) WithClock(now func() time.Time) *Engine {
	e.now = now
	return e
}

// Price runs the full pricing pipeline for one request: base price
// selection, tier matching and priority-ordered adjustment stacking with
// per-tier guardrails, loyalty discount, the hard margin floor, taxes, and
// the audit breakdown. Intermediate math is kept unrounded; monetary
// outputs are rounded to two decimals only at assembly.
func (e *Engine) Price(req *models.PricingRequest) (*models.PricingResult, error) {
	if req == nil || req.Product == nil {
		return nil, ErrProductRequired
	}
	if req.Quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	product := req.Product
	evalTime := e.evaluationTime(req)
	base := selectBasePrice(product, resolveChannel(req))

	// Gather applicable tiers and order them by descending priority. The
	// sort is stable so equal priorities keep catalog order.
	var matched []models.PricingTier
	for _, tier := range e.catalog.ActiveTiers() {
		if !tier.IsActive {
			continue
		}
		if Matches(&tier, req, evalTime) {
			matched = append(matched, tier)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].Priority > matched[j].Priority
	})

	result := &models.PricingResult{
		BasePrice: round2(base),
		Currency:  currencyFor(req),
		Quantity:  req.Quantity,
		Breakdown: []models.BreakdownLine{
			{Label: "Base price", Amount: round2(base), Running: round2(base)},
		},
		AppliedTiers: []models.AppliedTier{},
	}

	// Fold the rule stack. Every delta is computed against the original
	// base price, then guardrail-corrected, then accumulated.
	adjustmentTotal := 0.0
	for i := range matched {
		tier := &matched[i]
		delta := Delta(&tier.Strategy, base, req.Quantity, product, evalTime)
		delta = EnforceGuardrails(delta, base, product.Cost, tier)
		if delta == 0 {
			continue
		}
		adjustmentTotal += delta

		result.AppliedTiers = append(result.AppliedTiers, models.AppliedTier{
			TierID:      tier.ID,
			Name:        tier.Name,
			Type:        tier.Strategy.Type,
			Adjustment:  round2(delta),
			Description: describeStrategy(&tier.Strategy),
		})
		result.Breakdown = append(result.Breakdown, models.BreakdownLine{
			Label:   tier.Name,
			Amount:  round2(delta),
			Running: round2(base + adjustmentTotal),
		})
		if tier.Strategy.Type == models.StrategyFixed {
			result.PriceGuaranteed = true
		}
	}

	running := base + adjustmentTotal

	// Loyalty discount applies to the running price after the tier stack,
	// never multiplicatively with it.
	loyalty := LoyaltyDiscount(req.Customer, running)
	if loyalty > 0 {
		running -= loyalty
		result.Breakdown = append(result.Breakdown, models.BreakdownLine{
			Label:   fmt.Sprintf("Loyalty discount (%s)", req.Customer.LoyaltyLevel),
			Amount:  round2(-loyalty),
			Running: round2(running),
		})
	}

	// Hard floor backstop, recorded in the ledger so the correction is
	// never invisible to the caller.
	floorApplied := false
	if floor := product.Cost * hardFloorFactor; running < floor {
		result.Breakdown = append(result.Breakdown, models.BreakdownLine{
			Label:   "Minimum margin floor",
			Amount:  round2(floor - running),
			Running: round2(floor),
		})
		running = floor
		floorApplied = true
	}

	final := round2(running)
	result.FinalPrice = final
	result.TotalAmount = round2(final * float64(req.Quantity))
	result.Breakdown = append(result.Breakdown, models.BreakdownLine{
		Label:   "Final price",
		Amount:  final,
		Running: final,
	})

	result.Margin = marginSummary(final, product.Cost, floorApplied)
	result.Tax = ComputeTax(product, result.TotalAmount)
	result.Discount = discountSummary(base, final, adjustmentTotal, loyalty, req.Customer)
	result.ValidUntil = e.now().Add(e.validity)
	result.Recommendations = Recommend(req, result)

	return result, nil
}

// evaluationTime resolves the as-of time driving every time and
// seasonality condition. Callers needing reproducibility must always set
// an explicit evaluation time on the request context.
func (e *Engine) evaluationTime(req *models.PricingRequest) time.Time {
	if req.Context != nil && req.Context.EvaluationTime != nil {
		return *req.Context.EvaluationTime
	}
	return e.now()
}

// resolveChannel picks the sales channel: an explicit request channel
// wins, otherwise the customer type implies one, otherwise retail.
func resolveChannel(req *models.PricingRequest) models.Channel {
	if req.Channel != "" {
		return req.Channel
	}
	if req.Customer != nil {
		switch req.Customer.Type {
		case models.CustomerWholesale:
			return models.ChannelWholesale
		case models.CustomerVIP:
			return models.ChannelVIP
		case models.CustomerExport:
			return models.ChannelExport
		}
	}
	return models.ChannelRetail
}

// selectBasePrice returns the channel-specific list price, falling back to
// the general retail price and then the base price.
func selectBasePrice(p *models.Product, ch models.Channel) float64 {
	var override *float64
	switch ch {
	case models.ChannelWholesale:
		override = p.WholesalePrice
	case models.ChannelVIP:
		override = p.VIPPrice
	case models.ChannelExport:
		override = p.ExportPrice
	case models.ChannelRetail:
		override = p.RetailPrice
	}
	if override != nil {
		return *override
	}
	if p.RetailPrice != nil {
		return *p.RetailPrice
	}
	return p.BasePrice
}

func currencyFor(req *models.PricingRequest) string {
	if req.Customer != nil && req.Customer.Currency != "" {
		return req.Customer.Currency
	}
	return defaultCurrency
}

// marginSummary reports profitability of the final unit price. A zero
// final price makes the percentage undefined; report 0% instead of NaN.
func marginSummary(finalPrice, cost float64, floorApplied bool) models.MarginSummary {
	marginPct := 0.0
	if finalPrice != 0 {
		marginPct = (finalPrice - cost) / finalPrice * 100
	}
	return models.MarginSummary{
		CostPerUnit:  round2(cost),
		MarginAmount: round2(finalPrice - cost),
		MarginPct:    round2(marginPct),
		FloorApplied: floorApplied,
	}
}

func discountSummary(base, final, adjustmentTotal, loyalty float64, customer *models.Customer) models.DiscountSummary {
	s := models.DiscountSummary{
		TierAdjustmentTotal: round2(adjustmentTotal),
		LoyaltyDiscount:     round2(loyalty),
		TotalDiscount:       round2(base - final),
	}
	if customer != nil {
		s.LoyaltyLevel = customer.LoyaltyLevel
	}
	if base != 0 {
		s.TotalDiscountPct = round2((base - final) / base * 100)
	}
	return s
}

// describeStrategy must tolerate missing payload fields: a tier with a
// zero-delta malformed strategy can still reach the applied-tier record
// when a guardrail turns its delta non-zero.
func describeStrategy(s *models.PricingStrategy) string {
	switch s.Type {
	case models.StrategyFixed:
		if s.FixedPrice == nil {
			return "fixed price"
		}
		return fmt.Sprintf("fixed price %.2f", *s.FixedPrice)
	case models.StrategyPercentageOff:
		if s.Percentage == nil {
			return "percentage off"
		}
		return fmt.Sprintf("%.4g%% off", *s.Percentage)
	case models.StrategyPercentageMarkup:
		if s.Percentage == nil {
			return "percentage markup"
		}
		return fmt.Sprintf("%.4g%% markup", *s.Percentage)
	case models.StrategyQuantityTiered:
		return "quantity-tiered price table"
	case models.StrategyDynamic:
		return "dynamic demand/season/scarcity factors"
	default:
		return string(s.Type)
	}
}

// round2 rounds a monetary amount to two decimal places.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
