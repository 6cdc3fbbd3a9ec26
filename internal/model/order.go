package model

import (
	"time"
)

type OrderStatus string

const (
	OrderPlaced     OrderStatus = "placed"
	OrderProcessing OrderStatus = "processing"
	OrderShipped    OrderStatus = "shipped"
	OrderDelivered  OrderStatus = "delivered"
	OrderCancelled  OrderStatus = "cancelled"
	OrderRefunded   OrderStatus = "refunded"
)

// Valid reports whether s is one of the known order statuses.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderPlaced, OrderProcessing, OrderShipped, OrderDelivered, OrderCancelled, OrderRefunded:
		return true
	}
	return false
}

// Terminal reports whether no further status transition is allowed from s.
func (s OrderStatus) Terminal() bool {
	return s == OrderCancelled || s == OrderRefunded
}

// validNext holds the non-admin transitions of the order state machine.
// Admin overrides bypass this table (any non-terminal status to any valid target).
var validNext = map[OrderStatus]map[OrderStatus]bool{
	OrderPlaced:     {OrderProcessing: true, OrderShipped: true, OrderCancelled: true},
	OrderProcessing: {OrderShipped: true, OrderCancelled: true},
	OrderShipped:    {OrderDelivered: true},
	OrderDelivered:  {OrderRefunded: true},
	OrderCancelled:  {},
	OrderRefunded:   {},
}

// CanTransition reports whether the order status may move from one status to another
// on the regular (non-admin-override) paths.
func CanTransition(from, to OrderStatus) bool {
	return validNext[from][to]
}

type RefundStatus string

const (
	RefundNone     RefundStatus = "none"
	RefundPending  RefundStatus = "pending"
	RefundApproved RefundStatus = "approved"
	RefundRejected RefundStatus = "rejected"
)

type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentFailed   PaymentStatus = "failed"
	PaymentRefunded PaymentStatus = "refunded"
)

type PaymentMethod string

const (
	PaymentCash   PaymentMethod = "cash"
	PaymentCard   PaymentMethod = "card"
	PaymentUPI    PaymentMethod = "upi"
	PaymentPaypal PaymentMethod = "paypal"
)

// Valid reports whether m is one of the accepted payment methods.
func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCash, PaymentCard, PaymentUPI, PaymentPaypal:
		return true
	}
	return false
}

type OrderItem struct {
	ProductID int64   `json:"product_id"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}

type OrderReview struct {
	UserID    int64     `json:"user_id"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

type Order struct {
	ID              string        `json:"id"`
	UserID          int64         `json:"user_id"`
	Items           []OrderItem   `json:"items"`
	ShippingAddress Address       `json:"shipping_address"`
	PaymentMethod   PaymentMethod `json:"payment_method"`
	PaymentStatus   PaymentStatus `json:"payment_status"`
	Total           float64       `json:"total"`
	Status          OrderStatus   `json:"status"`
	RefundStatus    RefundStatus  `json:"refund_status"`
	TrackingInfo    string        `json:"tracking_info,omitempty"`
	Reviews         []OrderReview `json:"reviews,omitempty"`
	DeliveredAt     *time.Time    `json:"delivered_at,omitempty"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
}
