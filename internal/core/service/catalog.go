package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
	"github.com/niksmo/storefront/pkg/reactive"
)

const catalogStateKey = "Products"

var _ port.CatalogReader = (*Catalog)(nil)

// LoadCatalog performs one read of the remote catalog.
//
// Any failure is logged and degrades to an empty list.
func LoadCatalog(
	ctx context.Context, fetcher port.CatalogFetcher,
) []domain.Product {
	const op = "LoadCatalog"
	log := slog.With("op", op)

	ps, err := fetcher.FetchProducts(ctx)
	if err != nil {
		log.Error("failed to load catalog", "err", err)
		return []domain.Product{}
	}
	if ps == nil {
		ps = []domain.Product{}
	}

	log.Info("catalog loaded", "nProducts", len(ps))
	return ps
}

// A Catalog holds the catalog state: Loading until the single load
// completes, then Loaded or LoadedEmpty for the rest of the session.
type Catalog struct {
	fetcher port.CatalogFetcher
	state   *reactive.Atom[domain.CatalogState]
	once    sync.Once
}

func NewCatalog(
	root *reactive.Root, fetcher port.CatalogFetcher,
) (*Catalog, error) {
	const op = "NewCatalog"

	state, err := reactive.NewAtom(root, catalogStateKey, domain.CatalogState{})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &Catalog{fetcher: fetcher, state: state}, nil
}

// Start loads the catalog in a separate goroutine.
func (c *Catalog) Start(ctx context.Context) {
	go c.Load(ctx)
}

// Load fetches the catalog and switches the state in a single write.
// Only the first call fetches; later calls wait for it and return.
func (c *Catalog) Load(ctx context.Context) {
	c.once.Do(func() {
		ps := LoadCatalog(ctx, c.fetcher)
		c.state.Set(domain.CatalogStateOf(ps))
	})
}

func (c *Catalog) State() domain.CatalogState {
	return c.state.Get()
}

func (c *Catalog) Product(id int64) (domain.Product, bool) {
	return c.State().Product(id)
}

func (c *Catalog) Subscribe(fn func(domain.CatalogState)) (unsubscribe func()) {
	return c.state.Subscribe(fn)
}
