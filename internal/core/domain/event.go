package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// A CartEvent carries the cart state after an applied transition.
type CartEvent struct {
	EventID    string
	OccurredAt time.Time
	ProductIDs []int64
	ItemCount  int
	Total      decimal.Decimal
}
