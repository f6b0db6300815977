package service_test

import (
	"context"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/stretchr/testify/mock"
)

type MockCatalogFetcher struct {
	mock.Mock
}

func (m *MockCatalogFetcher) FetchProducts(
	ctx context.Context,
) ([]domain.Product, error) {
	args := m.Called(ctx)
	ps, _ := args.Get(0).([]domain.Product)
	return ps, args.Error(1)
}

type MockCartEventProducer struct {
	mock.Mock
}

func (m *MockCartEventProducer) ProduceCartEvent(
	ctx context.Context, evt domain.CartEvent,
) error {
	args := m.Called(ctx, evt)
	return args.Error(0)
}
