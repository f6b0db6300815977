package domain

import "github.com/shopspring/decimal"

// A Cart is an ordered list of products unique by [Product.ID].
//
// Cart values are never modified in place: With and Without return a new
// slice when the cart changes, so a cart once observed stays valid.
type Cart []Product

func (c Cart) Len() int {
	return len(c)
}

func (c Cart) Contains(id int64) bool {
	return c.index(id) >= 0
}

// With appends p unless an entry with the same ID is already present.
// The boolean reports whether the cart changed.
func (c Cart) With(p Product) (Cart, bool) {
	if c.Contains(p.ID) {
		return c, false
	}
	next := make(Cart, len(c), len(c)+1)
	copy(next, c)
	return append(next, p), true
}

// Without removes the entry with the ID of p.
// The boolean reports whether the cart changed.
func (c Cart) Without(p Product) (Cart, bool) {
	i := c.index(p.ID)
	if i < 0 {
		return c, false
	}
	next := make(Cart, 0, len(c)-1)
	next = append(next, c[:i]...)
	return append(next, c[i+1:]...), true
}

// Total is the sum of item prices.
func (c Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, p := range c {
		total = total.Add(p.Price)
	}
	return total
}

func (c Cart) IDs() []int64 {
	ids := make([]int64, len(c))
	for i, p := range c {
		ids[i] = p.ID
	}
	return ids
}

func (c Cart) index(id int64) int {
	for i, p := range c {
		if p.ID == id {
			return i
		}
	}
	return -1
}

// A CartSnapshot is a cart and its total taken from the same cart version.
type CartSnapshot struct {
	Items Cart
	Total decimal.Decimal
}
