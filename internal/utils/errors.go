package utils

import "errors"

// Common application errors used across services.
var (
	ErrInvalidToken     = errors.New("INVALID_TOKEN")
	ErrInvalidClient    = errors.New("INVALID_CLIENT")
	ErrInvalidIP        = errors.New("INVALID_IP")
	ErrProductNotFound  = errors.New("PRODUCT_NOT_FOUND")
	ErrCustomerNotFound = errors.New("CUSTOMER_NOT_FOUND")
	ErrTierNotFound     = errors.New("TIER_NOT_FOUND")
	ErrInvalidQuantity  = errors.New("INVALID_QUANTITY")
	ErrInvalidChannel   = errors.New("INVALID_CHANNEL")
	ErrInvalidDate      = errors.New("INVALID_DATE")
	ErrExportRestricted = errors.New("EXPORT_RESTRICTED")
)
