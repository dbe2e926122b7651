package domain

import "time"

type OrderEventType string

const (
	EventOrderPlaced          OrderEventType = "order_placed"
	EventOrderStatusChanged   OrderEventType = "order_status_changed"
	EventPaymentStatusChanged OrderEventType = "payment_status_changed"
)

type OrderEvent struct {
	Type          OrderEventType
	OrderID       string
	Status        OrderStatus
	PaymentMethod PaymentMethod
	PaymentStatus PaymentStatus
	TotalAmount   int64
	OccurredAt    time.Time
}

func NewOrderEvent(t OrderEventType, o Order, now time.Time) OrderEvent {
	return OrderEvent{
		Type:          t,
		OrderID:       o.ID,
		Status:        o.Status,
		PaymentMethod: o.PaymentMethod,
		PaymentStatus: o.PaymentStatus,
		TotalAmount:   o.TotalAmount,
		OccurredAt:    now,
	}
}

func (e OrderEvent) Tracking() OrderTracking {
	return OrderTracking{
		OrderID:       e.OrderID,
		Status:        e.Status,
		PaymentStatus: e.PaymentStatus,
		TotalAmount:   e.TotalAmount,
		UpdatedAt:     e.OccurredAt,
	}
}
