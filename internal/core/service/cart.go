package service

import (
	"fmt"
	"log/slog"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
	"github.com/niksmo/storefront/pkg/reactive"
	"github.com/shopspring/decimal"
)

const (
	cartStateKey      = "cartState"
	cartTotalStateKey = "cartTotalState"
)

var (
	_ port.CartManager    = (*CartStore)(nil)
	_ port.CartSubscriber = (*CartStore)(nil)
)

// A CartStore holds the session cart and its derived total.
type CartStore struct {
	cart  *reactive.Atom[domain.Cart]
	total *reactive.Selector[domain.Cart, decimal.Decimal]
}

func NewCartStore(root *reactive.Root) (*CartStore, error) {
	const op = "NewCartStore"

	cart, err := reactive.NewAtom(root, cartStateKey, domain.Cart{})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	total, err := reactive.NewSelector(
		root, cartTotalStateKey, cart, domain.Cart.Total,
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &CartStore{cart: cart, total: total}, nil
}

// AddItem appends p unless a product with the same ID is in the cart.
func (s *CartStore) AddItem(p domain.Product) {
	const op = "CartStore.AddItem"

	added := s.cart.Update(func(c domain.Cart) (domain.Cart, bool) {
		return c.With(p)
	})
	slog.Debug("add item", "op", op, "productID", p.ID, "added", added)
}

// RemoveItem removes the product with the ID of p, if present.
func (s *CartStore) RemoveItem(p domain.Product) {
	const op = "CartStore.RemoveItem"

	removed := s.cart.Update(func(c domain.Cart) (domain.Cart, bool) {
		return c.Without(p)
	})
	slog.Debug("remove item", "op", op, "productID", p.ID, "removed", removed)
}

func (s *CartStore) Items() domain.Cart {
	return s.cart.Get()
}

func (s *CartStore) Total() decimal.Decimal {
	return s.total.Get()
}

// Snapshot returns the items and the total of one cart version.
func (s *CartStore) Snapshot() domain.CartSnapshot {
	items, version := s.cart.Snapshot()
	return domain.CartSnapshot{
		Items: items,
		Total: s.total.At(items, version),
	}
}

// Subscribe calls fn after every applied cart transition.
func (s *CartStore) Subscribe(
	fn func(domain.CartSnapshot),
) (unsubscribe func()) {
	// Writers are blocked while subscribers run, so Snapshot here reads
	// exactly the version the transition produced.
	return s.cart.Subscribe(func(domain.Cart) {
		fn(s.Snapshot())
	})
}
