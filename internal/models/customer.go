package models

import "time"

// CustomerType enumerates the supported customer segments.
type CustomerType string

const (
	CustomerRetail    CustomerType = "retail"
	CustomerWholesale CustomerType = "wholesale"
	CustomerVIP       CustomerType = "vip"
	CustomerExport    CustomerType = "export"
	CustomerStaff     CustomerType = "staff"
)

// LoyaltyLevel enumerates loyalty program levels, lowest to highest.
type LoyaltyLevel string

const (
	LoyaltyBronze   LoyaltyLevel = "bronze"
	LoyaltySilver   LoyaltyLevel = "silver"
	LoyaltyGold     LoyaltyLevel = "gold"
	LoyaltyPlatinum LoyaltyLevel = "platinum"
	LoyaltyDiamond  LoyaltyLevel = "diamond"
)

// Customer represents a registered buyer. A pricing request may carry no
// customer at all, in which case only tiers without customer-scoped
// conditions can match.
type Customer struct {
	ID            int          `db:"id" json:"id"`
	Code          string       `db:"code" json:"code"`
	Name          string       `db:"name" json:"name"`
	Type          CustomerType `db:"type" json:"type"`
	LoyaltyLevel  LoyaltyLevel `db:"loyalty_level" json:"loyaltyLevel,omitempty"`
	Country       string       `db:"country" json:"country"`
	Currency      string       `db:"currency" json:"currency"`
	LifetimeValue float64      `db:"lifetime_value" json:"lifetimeValue"`
	IsActive      bool         `db:"is_active" json:"isActive"`
	CreatedAt     time.Time    `db:"created_at" json:"-"`
	UpdatedAt     time.Time    `db:"updated_at" json:"updatedAt"`
}
