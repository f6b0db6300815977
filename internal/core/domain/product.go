package domain

import "github.com/shopspring/decimal"

type Product struct {
	ID          int64
	Title       string
	Price       decimal.Decimal
	Description string
	Category    string
	Image       string
}
