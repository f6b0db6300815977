package service_test

import (
	"errors"
	"sync"
	"testing"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/service"
	"github.com/niksmo/storefront/pkg/reactive"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var (
	shirt = domain.Product{ID: 1, Title: "Shirt", Price: decimal.NewFromInt(20)}
	hat   = domain.Product{ID: 2, Title: "Hat", Price: decimal.NewFromInt(10)}
)

func TestLoadCatalog(t *testing.T) {
	t.Run("Products", func(t *testing.T) {
		fetcher := new(MockCatalogFetcher)
		fetcher.On("FetchProducts", mock.Anything).
			Return([]domain.Product{shirt, hat}, nil)

		ps := service.LoadCatalog(t.Context(), fetcher)

		assert.Equal(t, []domain.Product{shirt, hat}, ps)
		fetcher.AssertNumberOfCalls(t, "FetchProducts", 1)
	})

	t.Run("ErrorDegradesToEmpty", func(t *testing.T) {
		fetcher := new(MockCatalogFetcher)
		fetcher.On("FetchProducts", mock.Anything).
			Return(nil, errors.New("connection refused"))

		ps := service.LoadCatalog(t.Context(), fetcher)

		require.NotNil(t, ps)
		assert.Empty(t, ps)
	})

	t.Run("NilIsEmpty", func(t *testing.T) {
		fetcher := new(MockCatalogFetcher)
		fetcher.On("FetchProducts", mock.Anything).Return(nil, nil)

		ps := service.LoadCatalog(t.Context(), fetcher)

		require.NotNil(t, ps)
		assert.Empty(t, ps)
	})

	t.Run("EachCallFetches", func(t *testing.T) {
		fetcher := new(MockCatalogFetcher)
		fetcher.On("FetchProducts", mock.Anything).Return(nil, nil)

		service.LoadCatalog(t.Context(), fetcher)
		service.LoadCatalog(t.Context(), fetcher)

		fetcher.AssertNumberOfCalls(t, "FetchProducts", 2)
	})
}

func TestCatalog(t *testing.T) {
	newCatalog := func(t *testing.T, fetcher *MockCatalogFetcher) *service.Catalog {
		t.Helper()
		c, err := service.NewCatalog(reactive.NewRoot(), fetcher)
		require.NoError(t, err)
		return c
	}

	t.Run("InitiallyLoading", func(t *testing.T) {
		c := newCatalog(t, new(MockCatalogFetcher))
		assert.Equal(t, domain.CatalogLoading, c.State().Status)
		assert.Empty(t, c.State().Products)
	})

	t.Run("Loaded", func(t *testing.T) {
		fetcher := new(MockCatalogFetcher)
		fetcher.On("FetchProducts", mock.Anything).
			Return([]domain.Product{shirt, hat}, nil)
		c := newCatalog(t, fetcher)

		c.Load(t.Context())

		state := c.State()
		assert.Equal(t, domain.CatalogLoaded, state.Status)
		assert.Equal(t, []domain.Product{shirt, hat}, state.Products)

		p, ok := c.Product(2)
		require.True(t, ok)
		assert.Equal(t, hat, p)
	})

	t.Run("FailureIsLoadedEmpty", func(t *testing.T) {
		fetcher := new(MockCatalogFetcher)
		fetcher.On("FetchProducts", mock.Anything).
			Return(nil, errors.New("bad gateway"))
		c := newCatalog(t, fetcher)

		c.Load(t.Context())

		assert.Equal(t, domain.CatalogLoadedEmpty, c.State().Status)
		_, ok := c.Product(1)
		assert.False(t, ok)
	})

	t.Run("LoadsOnce", func(t *testing.T) {
		fetcher := new(MockCatalogFetcher)
		fetcher.On("FetchProducts", mock.Anything).
			Return([]domain.Product{shirt}, nil)
		c := newCatalog(t, fetcher)

		var wg sync.WaitGroup
		for range 5 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				c.Load(t.Context())
			}()
		}
		wg.Wait()

		fetcher.AssertNumberOfCalls(t, "FetchProducts", 1)
	})

	t.Run("SingleTransition", func(t *testing.T) {
		fetcher := new(MockCatalogFetcher)
		fetcher.On("FetchProducts", mock.Anything).
			Return([]domain.Product{shirt, hat}, nil)
		c := newCatalog(t, fetcher)

		var seen []domain.CatalogState
		c.Subscribe(func(s domain.CatalogState) { seen = append(seen, s) })

		c.Load(t.Context())

		require.Len(t, seen, 1)
		assert.Equal(t, domain.CatalogLoaded, seen[0].Status)
		assert.Len(t, seen[0].Products, 2)
	})

	t.Run("Start", func(t *testing.T) {
		fetcher := new(MockCatalogFetcher)
		fetcher.On("FetchProducts", mock.Anything).
			Return([]domain.Product{shirt}, nil)
		c := newCatalog(t, fetcher)

		loaded := make(chan domain.CatalogState, 1)
		c.Subscribe(func(s domain.CatalogState) { loaded <- s })

		c.Start(t.Context())

		s := <-loaded
		assert.Equal(t, domain.CatalogLoaded, s.Status)
	})

	t.Run("DuplicateRootKey", func(t *testing.T) {
		root := reactive.NewRoot()
		_, err := service.NewCatalog(root, new(MockCatalogFetcher))
		require.NoError(t, err)

		_, err = service.NewCatalog(root, new(MockCatalogFetcher))
		assert.ErrorIs(t, err, reactive.ErrDuplicateKey)
	})
}
