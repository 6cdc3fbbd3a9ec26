package model

import (
	"time"
)

type DiscountType string

const (
	DiscountFlat       DiscountType = "flat"
	DiscountPercentage DiscountType = "percentage"
)

// Valid reports whether t is a known discount type.
func (t DiscountType) Valid() bool {
	return t == DiscountFlat || t == DiscountPercentage
}

type Coupon struct {
	ID             int64        `json:"id"`
	Code           string       `json:"code"`
	DiscountType   DiscountType `json:"discount_type"`
	DiscountValue  float64      `json:"discount_value"`
	MinOrderAmount float64      `json:"min_order_amount"`
	MaxDiscount    float64      `json:"max_discount"`
	UsageLimit     int          `json:"usage_limit"`
	ValidFrom      time.Time    `json:"valid_from"`
	ExpiresAt      time.Time    `json:"expires_at"`
	CreatedBy      int64        `json:"created_by"`
	CreatedRole    Role         `json:"created_role"`
	CreatedAt      time.Time    `json:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at"`
}

// ActiveAt reports whether the coupon's validity window covers now.
func (c *Coupon) ActiveAt(now time.Time) bool {
	if !c.ValidFrom.IsZero() && now.Before(c.ValidFrom) {
		return false
	}
	return now.Before(c.ExpiresAt)
}
