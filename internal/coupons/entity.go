package coupons

import (
	"github.com/shopspring/decimal"
)

// Coupon types.
const (
	TypePercentage = "percentage"
	TypeFlat       = "flat"
)

// Coupon is stored at coupon:<CODE>; the uppercased code doubles as the
// key, which is what makes codes globally unique. Coupons are never
// updated in place: admins create and delete them.
type Coupon struct {
	Code          string           `json:"code"`
	Type          string           `json:"type"`
	Value         decimal.Decimal  `json:"value"`
	MinOrderValue *decimal.Decimal `json:"minOrderValue,omitempty"`
	MaxDiscount   *decimal.Decimal `json:"maxDiscount,omitempty"`
	ExpiryDate    string           `json:"expiryDate,omitempty"`
	CreatedAt     string           `json:"createdAt"`
}
