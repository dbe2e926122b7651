package schema

import (
	"time"

	"github.com/hamba/avro/v2"
)

const OrderEventSchemaTextV1 = `{
	"type": "record",
	"namespace": "storefront.orders",
	"name": "order_event",
	"fields": [
		{"name": "event_type", "type": "string"},
		{"name": "order_id", "type": "string"},
		{"name": "status", "type": "string"},
		{"name": "payment_method", "type": "string"},
		{"name": "payment_status", "type": "string"},
		{"name": "total_amount", "type": "long"},
		{"name": "occurred_at", "type": {"type": "long", "logicalType": "timestamp-millis"}}
	]
}`

const OrderTrackingSchemaTextV1 = `{
	"type": "record",
	"namespace": "storefront.orders",
	"name": "order_tracking",
	"fields": [
		{"name": "order_id", "type": "string"},
		{"name": "status", "type": "string"},
		{"name": "payment_status", "type": "string"},
		{"name": "total_amount", "type": "long"},
		{"name": "updated_at", "type": {"type": "long", "logicalType": "timestamp-millis"}}
	]
}`

type (
	OrderEventV1 struct {
		EventType     string    `avro:"event_type"`
		OrderID       string    `avro:"order_id"`
		Status        string    `avro:"status"`
		PaymentMethod string    `avro:"payment_method"`
		PaymentStatus string    `avro:"payment_status"`
		TotalAmount   int64     `avro:"total_amount"`
		OccurredAt    time.Time `avro:"occurred_at"`
	}

	// OrderTrackingV1 is the latest known state of an order,
	// kept in the tracking group table.
	OrderTrackingV1 struct {
		OrderID       string    `avro:"order_id"`
		Status        string    `avro:"status"`
		PaymentStatus string    `avro:"payment_status"`
		TotalAmount   int64     `avro:"total_amount"`
		UpdatedAt     time.Time `avro:"updated_at"`
	}
)

func OrderEventV1Avro() avro.Schema {
	return avro.MustParse(OrderEventSchemaTextV1)
}

func OrderTrackingV1Avro() avro.Schema {
	return avro.MustParse(OrderTrackingSchemaTextV1)
}

// AvroEncodeFn returns a plain avro encoder without the registry header.
func AvroEncodeFn(s avro.Schema) func(v any) ([]byte, error) {
	return func(v any) ([]byte, error) {
		return avro.Marshal(s, v)
	}
}

func AvroDecodeFn(s avro.Schema) func([]byte, any) error {
	return func(data []byte, v any) error {
		return avro.Unmarshal(s, data, v)
	}
}
