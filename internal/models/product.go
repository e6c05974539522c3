package models

import (
	"time"

	"github.com/lib/pq"
)

// Product represents a sale item in the catalog. For the duration of one
// pricing computation the struct is treated as an immutable snapshot.
// Fields are tagged for both DB scanning and JSON serialization.
type Product struct {
	ID       int    `db:"id" json:"id"`
	SKUCode  string `db:"sku_code" json:"skuCode"`
	Name     string `db:"name" json:"name"`
	Category string `db:"category" json:"category"`
	Brand    string `db:"brand" json:"brand"`

	// Cost and channel list prices. BasePrice is the general list price;
	// the channel-specific prices are optional overrides.
	Cost           float64  `db:"cost" json:"cost,omitempty"`
	BasePrice      float64  `db:"base_price" json:"basePrice"`
	RetailPrice    *float64 `db:"retail_price" json:"retailPrice,omitempty"`
	WholesalePrice *float64 `db:"wholesale_price" json:"wholesalePrice,omitempty"`
	VIPPrice       *float64 `db:"vip_price" json:"vipPrice,omitempty"`
	ExportPrice    *float64 `db:"export_price" json:"exportPrice,omitempty"`

	CurrentStock int `db:"current_stock" json:"currentStock"`
	MinimumStock int `db:"minimum_stock" json:"minimumStock"`

	// Season month lists as calendar month numbers (1..12).
	HighSeasonMonths pq.Int64Array `db:"high_season_months" json:"highSeasonMonths,omitempty"`
	LowSeasonMonths  pq.Int64Array `db:"low_season_months" json:"lowSeasonMonths,omitempty"`

	// Compliance flags.
	VATRate          float64 `db:"vat_rate" json:"vatRate"`
	IsLuxury         bool    `db:"is_luxury" json:"isLuxury"`
	ExportRestricted bool    `db:"export_restricted" json:"exportRestricted"`

	IsActive  bool      `db:"is_active" json:"isActive"`
	CreatedAt time.Time `db:"created_at" json:"-"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// InHighSeason reports whether the given month is in the product's
// high-season month list.
func (p *Product) InHighSeason(month time.Month) bool {
	for _, m := range p.HighSeasonMonths {
		if time.Month(m) == month {
			return true
		}
	}
	return false
}

// InLowSeason reports whether the given month is in the product's
// low-season month list.
func (p *Product) InLowSeason(month time.Month) bool {
	for _, m := range p.LowSeasonMonths {
		if time.Month(m) == month {
			return true
		}
	}
	return false
}

// BelowReorderLevel reports whether current stock has fallen under the
// reorder threshold.
func (p *Product) BelowReorderLevel() bool {
	return p.CurrentStock < p.MinimumStock
}
