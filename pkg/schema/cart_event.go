package schema

import (
	"time"

	"github.com/hamba/avro/v2"
)

const CartEventSchemaTextV1 = `{
	"type": "record",
	"namespace": "storefront",
	"name": "cart_event",
	"fields": [
		{"name": "event_id", "type": "string"},
		{
			"name": "occurred_at",
			"type": {"type": "long", "logicalType": "timestamp-millis"}
		},
		{"name": "product_ids", "type": {"type": "array", "items": "long"}},
		{"name": "item_count", "type": "int"},
		{"name": "total", "type": "string"}
	]
}`

type CartEventV1 struct {
	EventID    string    `avro:"event_id"`
	OccurredAt time.Time `avro:"occurred_at"`
	ProductIDs []int64   `avro:"product_ids"`
	ItemCount  int       `avro:"item_count"`
	Total      string    `avro:"total"`
}

func CartEventV1Avro() avro.Schema {
	return avro.MustParse(CartEventSchemaTextV1)
}
