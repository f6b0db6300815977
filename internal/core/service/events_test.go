package service_test

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/service"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func runPublisher(t *testing.T, p *service.CartEventPublisher) {
	t.Helper()
	var wg sync.WaitGroup
	wg.Add(1)
	go p.Run(t.Context(), &wg)
	wg.Wait()
}

func TestCartEventPublisher(t *testing.T) {
	fixedNow := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	t.Run("PublishesAppliedTransitions", func(t *testing.T) {
		cart := newCartStore(t)
		producer := new(MockCartEventProducer)

		published := make(chan domain.CartEvent, 4)
		producer.On("ProduceCartEvent", mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) {
				published <- args.Get(1).(domain.CartEvent)
			}).
			Return(nil)

		p := service.NewCartEventPublisher(cart, producer,
			service.PublisherClockOpt(func() time.Time { return fixedNow }),
		)
		runPublisher(t, p)

		cart.AddItem(shirt)
		cart.AddItem(shirt)
		cart.AddItem(hat)

		first := <-published
		second := <-published
		p.Close()

		assert.Equal(t, []int64{1}, first.ProductIDs)
		assert.Equal(t, 1, first.ItemCount)
		assert.True(t, decimal.NewFromInt(20).Equal(first.Total))
		assert.Equal(t, fixedNow, first.OccurredAt)
		assert.NotEmpty(t, first.EventID)

		assert.Equal(t, []int64{1, 2}, second.ProductIDs)
		assert.True(t, decimal.NewFromInt(30).Equal(second.Total))
		assert.NotEqual(t, first.EventID, second.EventID)

		producer.AssertNumberOfCalls(t, "ProduceCartEvent", 2)
	})

	t.Run("RetriesFailedProduce", func(t *testing.T) {
		cart := newCartStore(t)
		producer := new(MockCartEventProducer)

		done := make(chan struct{})
		producer.On("ProduceCartEvent", mock.Anything, mock.Anything).
			Return(errors.New("broker unavailable")).Once()
		producer.On("ProduceCartEvent", mock.Anything, mock.Anything).
			Run(func(mock.Arguments) { close(done) }).
			Return(nil).Once()

		p := service.NewCartEventPublisher(cart, producer,
			service.PublisherAttemptsOpt(2),
		)
		runPublisher(t, p)

		cart.AddItem(shirt)
		<-done
		p.Close()

		producer.AssertNumberOfCalls(t, "ProduceCartEvent", 2)
	})

	t.Run("DropsWhenBufferIsFull", func(t *testing.T) {
		cart := newCartStore(t)
		producer := new(MockCartEventProducer)

		p := service.NewCartEventPublisher(cart, producer,
			service.PublisherBufferOpt(1),
		)

		cart.AddItem(shirt)
		cart.AddItem(hat)

		p.Close()
		producer.AssertNotCalled(t, "ProduceCartEvent", mock.Anything, mock.Anything)
	})

	t.Run("ClosedPublisherIgnoresCart", func(t *testing.T) {
		cart := newCartStore(t)
		producer := new(MockCartEventProducer)

		p := service.NewCartEventPublisher(cart, producer)
		runPublisher(t, p)
		p.Close()
		p.Close()

		require.NotPanics(t, func() { cart.AddItem(shirt) })
		producer.AssertNotCalled(t, "ProduceCartEvent", mock.Anything, mock.Anything)
	})
}
