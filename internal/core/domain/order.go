package domain

import (
	"strings"
	"time"
)

type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderConfirmed OrderStatus = "confirmed"
	OrderShipped   OrderStatus = "shipped"
	OrderDelivered OrderStatus = "delivered"
	OrderCancelled OrderStatus = "cancelled"
)

var orderTransitions = map[OrderStatus]map[OrderStatus]bool{
	OrderPending:   {OrderConfirmed: true, OrderCancelled: true},
	OrderConfirmed: {OrderShipped: true, OrderCancelled: true},
	OrderShipped:   {OrderDelivered: true, OrderCancelled: true},
	OrderDelivered: {},
	OrderCancelled: {},
}

func (s OrderStatus) Valid() bool {
	_, ok := orderTransitions[s]
	return ok
}

// CanTransitionTo reports whether an operator may move an order
// from s to next.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	return orderTransitions[s][next]
}

type PaymentMethod string

const (
	PaymentUPI          PaymentMethod = "upi"
	PaymentBankTransfer PaymentMethod = "bank_transfer"
)

func (m PaymentMethod) Valid() bool {
	return m == PaymentUPI || m == PaymentBankTransfer
}

// PaymentStatus is reported by the customer and never verified.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentDisputed  PaymentStatus = "disputed"
)

func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentPending, PaymentCompleted, PaymentDisputed:
		return true
	}
	return false
}

type (
	OrderItem struct {
		ProductID   string
		ProductName string
		Size        string
		Color       string
		Quantity    int
		Price       int64
	}

	Order struct {
		ID            string
		CheckoutRef   string
		Customer      DeliveryDetails
		Items         []OrderItem
		TotalAmount   int64
		Status        OrderStatus
		PaymentMethod PaymentMethod
		PaymentStatus PaymentStatus
		DisputeReason string
		TransactionID string
		ScreenshotURL string
		CreatedAt     time.Time
		UpdatedAt     time.Time
	}

	// NewOrderParams carries everything needed to place an order.
	NewOrderParams struct {
		CheckoutRef   string
		Customer      DeliveryDetails
		Items         []OrderItem
		PaymentMethod PaymentMethod
		Payment       PaymentConfirmation
	}

	OrderFilter struct {
		Status OrderStatus
	}

	OrderTracking struct {
		OrderID       string
		Status        OrderStatus
		PaymentStatus PaymentStatus
		TotalAmount   int64
		UpdatedAt     time.Time
	}

	DashboardStats struct {
		TotalProducts int
		TotalOrders   int
		TotalRevenue  int64
		PendingOrders int
	}
)

// NewOrder validates the params and builds a pending order.
// The identifier is assigned by the storage on insert.
func NewOrder(p NewOrderParams, now time.Time) (Order, error) {
	if err := p.Customer.Validate(); err != nil {
		return Order{}, err
	}
	if len(p.Items) == 0 {
		return Order{}, Invalid("order has no items")
	}
	for _, it := range p.Items {
		if err := it.validate(); err != nil {
			return Order{}, err
		}
	}
	if !p.PaymentMethod.Valid() {
		return Order{}, Invalid("unknown payment method %q", p.PaymentMethod)
	}
	if err := p.Payment.Validate(); err != nil {
		return Order{}, err
	}

	o := Order{
		CheckoutRef:   p.CheckoutRef,
		Customer:      p.Customer.normalized(),
		Items:         p.Items,
		TotalAmount:   OrderTotal(p.Items),
		Status:        OrderPending,
		PaymentMethod: p.PaymentMethod,
		PaymentStatus: p.Payment.Status,
		TransactionID: strings.TrimSpace(p.Payment.TransactionID),
		ScreenshotURL: strings.TrimSpace(p.Payment.ScreenshotURL),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if p.Payment.Status == PaymentDisputed {
		o.DisputeReason = strings.TrimSpace(p.Payment.DisputeReason)
	}
	return o, nil
}

// OrderTotal applies the bag pricing rules to order line items.
func OrderTotal(items []OrderItem) int64 {
	var subtotal int64
	for _, it := range items {
		subtotal += it.Price * int64(it.Quantity)
	}
	return subtotal + DeliveryFeeFor(subtotal)
}

func (o Order) Tracking() OrderTracking {
	return OrderTracking{
		OrderID:       o.ID,
		Status:        o.Status,
		PaymentStatus: o.PaymentStatus,
		TotalAmount:   o.TotalAmount,
		UpdatedAt:     o.UpdatedAt,
	}
}

func (it OrderItem) validate() error {
	switch {
	case it.ProductID == "":
		return Invalid("item product id is required")
	case it.Quantity < 1:
		return Invalid("item %s quantity must be positive", it.ProductID)
	case it.Price < 0:
		return Invalid("item %s price must not be negative", it.ProductID)
	}
	return nil
}
