package pricing

import "github.com/retailops/pricing-api/internal/models"

// luxuryTaxRate is the flat surcharge applied to luxury-flagged products,
// computed on the same extended amount as VAT.
const luxuryTaxRate = 5.0

// ComputeTax builds the tax summary for an extended amount. VAT is
// tier- and channel-independent; luxury tax is omitted from the summary
// entirely (not reported as zero) when the product is not flagged.
func ComputeTax(product *models.Product, extendedAmount float64) models.TaxSummary {
	summary := models.TaxSummary{
		VATRate:   product.VATRate,
		VATAmount: round2(extendedAmount * product.VATRate / 100),
	}
	summary.TotalTax = summary.VATAmount

	if product.IsLuxury {
		luxury := round2(extendedAmount * luxuryTaxRate / 100)
		summary.LuxuryTax = &luxury
		summary.TotalTax = round2(summary.TotalTax + luxury)
	}

	summary.TotalWithTax = round2(extendedAmount + summary.TotalTax)
	return summary
}
