package port

import (
	"context"
	"sync"

	"github.com/niksmo/storefront/internal/core/domain"
)

type (
	runnerContextWg interface {
		Run(context.Context, *sync.WaitGroup)
	}

	closer interface {
		Close()
	}
)

// CatalogFetcher reads the remote product catalog.
type CatalogFetcher interface {
	FetchProducts(context.Context) ([]domain.Product, error)
}

type CatalogReader interface {
	State() domain.CatalogState
	Product(id int64) (domain.Product, bool)
}

type CartManager interface {
	AddItem(domain.Product)
	RemoveItem(domain.Product)
	Snapshot() domain.CartSnapshot
}

type CartSubscriber interface {
	Subscribe(func(domain.CartSnapshot)) (unsubscribe func())
}

type CartEventProducer interface {
	ProduceCartEvent(context.Context, domain.CartEvent) error
}

type CartEventPublisher interface {
	runnerContextWg
	closer
}
