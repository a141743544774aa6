package model

import "time"

// DiscountType distinguishes percentage coupons from fixed-amount ones.
type DiscountType string

const (
	DiscountPercentage DiscountType = "percentage"
	DiscountFixed      DiscountType = "fixed"
)

// Coupon is a backend-owned discount code. The client only ever renders it
// and submits it for validation; discount rules are never evaluated locally.
type Coupon struct {
	ID            string       `json:"_id,omitempty"`
	Code          string       `json:"code"`
	Description   string       `json:"description,omitempty"`
	DiscountType  DiscountType `json:"discountType"`
	DiscountValue float64      `json:"discountValue"`
	MinPurchase   float64      `json:"minPurchase,omitempty"`
	MaxDiscount   float64      `json:"maxDiscount,omitempty"`
	UsageLimit    int          `json:"usageLimit,omitempty"`
	UsedCount     int          `json:"usedCount,omitempty"`
	ValidFrom     time.Time    `json:"validFrom"`
	ValidUntil    time.Time    `json:"validUntil"`
	IsActive      bool         `json:"isActive"`
}

// AppliedCoupon is the result of a successful validation call: the code and
// the discount amount the backend computed for the current cart.
type AppliedCoupon struct {
	Code     string  `json:"code"`
	Discount float64 `json:"discount"`
}
