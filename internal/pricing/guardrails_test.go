package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/retailops/pricing-api/internal/models"
)

func TestEnforceGuardrailsNoConstraints(t *testing.T) {
	tier := models.PricingTier{}
	assert.InDelta(t, -117, EnforceGuardrails(-117, 650, 400, &tier), 1e-9)
}

func TestEnforceGuardrailsMarginFloorOverridesOwnDiscount(t *testing.T) {
	// 30% off base 100 proposes 70; margin on cost 60 is 14.3%, below the
	// 50% floor. The floor overrides: price = 60/(1-0.5) = 120, delta +20.
	tier := models.PricingTier{MinMarginPct: fptr(50)}
	got := EnforceGuardrails(-30, 100, 60, &tier)
	assert.InDelta(t, 20, got, 1e-9)
}

func TestEnforceGuardrailsMarginFloorSatisfied(t *testing.T) {
	// Proposed 600 on cost 400 is 33.3% margin, above a 20% floor.
	tier := models.PricingTier{MinMarginPct: fptr(20)}
	assert.InDelta(t, -50, EnforceGuardrails(-50, 650, 400, &tier), 1e-9)
}

func TestEnforceGuardrailsZeroProposedPrice(t *testing.T) {
	// Fixed price 0 proposes a zero unit price; margin is treated as 0%,
	// which trips the floor instead of dividing by zero.
	tier := models.PricingTier{MinMarginPct: fptr(25)}
	got := EnforceGuardrails(-100, 100, 30, &tier)
	assert.InDelta(t, 30/0.75-100, got, 1e-9)
}

func TestEnforceGuardrailsDegenerateMarginFloor(t *testing.T) {
	// A floor of 100% makes the correction denominator non-positive; the
	// original delta is kept rather than producing an infinite price.
	tier := models.PricingTier{MinMarginPct: fptr(100)}
	assert.InDelta(t, -30, EnforceGuardrails(-30, 100, 60, &tier), 1e-9)
}

func TestEnforceGuardrailsMaxDiscountClamp(t *testing.T) {
	tier := models.PricingTier{MaxDiscountPct: fptr(10)}

	// A 30-unit cut on base 100 exceeds the 10-unit cap.
	assert.InDelta(t, -10, EnforceGuardrails(-30, 100, 60, &tier), 1e-9)

	// A cut inside the cap is untouched.
	assert.InDelta(t, -8, EnforceGuardrails(-8, 100, 60, &tier), 1e-9)
}

func TestEnforceGuardrailsClampCanUndoMarginCorrection(t *testing.T) {
	// The documented ordering tension: the margin floor first raises the
	// delta to +20, then the magnitude clamp truncates it to -10 because
	// |20| exceeds the 10-unit discount cap. The tier ends up violating
	// its own margin floor.
	tier := models.PricingTier{
		MinMarginPct:   fptr(50),
		MaxDiscountPct: fptr(10),
	}
	got := EnforceGuardrails(-30, 100, 60, &tier)
	assert.InDelta(t, -10, got, 1e-9)
}
