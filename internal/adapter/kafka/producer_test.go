package kafka_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/niksmo/storefront/internal/adapter/kafka"
	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/pkg/schema"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/twmb/franz-go/pkg/kgo"
)

type MockProducerClient struct {
	mock.Mock
}

func (m *MockProducerClient) ProduceSync(
	ctx context.Context, rs ...*kgo.Record,
) kgo.ProduceResults {
	args := m.Called(ctx, rs)
	return args.Get(0).(kgo.ProduceResults)
}

func (m *MockProducerClient) Close() {
	m.Called()
}

type MockEncoder struct {
	mock.Mock
}

func (m *MockEncoder) Encode(v any) ([]byte, error) {
	args := m.Called(v)
	b, _ := args.Get(0).([]byte)
	return b, args.Error(1)
}

var testEvent = domain.CartEvent{
	EventID:    "evt-1",
	OccurredAt: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	ProductIDs: []int64{1, 2},
	ItemCount:  2,
	Total:      decimal.RequireFromString("30.50"),
}

func TestNewCartEventsProducer(t *testing.T) {
	t.Run("TooFewOpts", func(t *testing.T) {
		assert.Panics(t, func() {
			_, _ = kafka.NewCartEventsProducer(
				kafka.ProducerEncoderOpt(new(MockEncoder)),
			)
		})
	})

	t.Run("NilEncoder", func(t *testing.T) {
		_, err := kafka.NewCartEventsProducer(
			kafka.ProducerRawClientOpt(new(MockProducerClient)),
			kafka.ProducerEncoderOpt(nil),
		)
		assert.Error(t, err)
	})
}

func TestCartEventsProducer(t *testing.T) {
	newProducer := func(
		t *testing.T, cl *MockProducerClient, enc *MockEncoder,
	) kafka.CartEventsProducer {
		t.Helper()
		p, err := kafka.NewCartEventsProducer(
			kafka.ProducerRawClientOpt(cl),
			kafka.ProducerEncoderOpt(enc),
		)
		require.NoError(t, err)
		return p
	}

	t.Run("ProducesEncodedRecord", func(t *testing.T) {
		cl := new(MockProducerClient)
		enc := new(MockEncoder)

		wantSchema := schema.CartEventV1{
			EventID:    "evt-1",
			OccurredAt: testEvent.OccurredAt,
			ProductIDs: []int64{1, 2},
			ItemCount:  2,
			Total:      "30.5",
		}
		enc.On("Encode", wantSchema).Return([]byte("payload"), nil)

		var produced []*kgo.Record
		cl.On("ProduceSync", mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) {
				produced = args.Get(1).([]*kgo.Record)
			}).
			Return(kgo.ProduceResults{})

		err := newProducer(t, cl, enc).ProduceCartEvent(t.Context(), testEvent)
		require.NoError(t, err)

		require.Len(t, produced, 1)
		assert.Equal(t, []byte("evt-1"), produced[0].Key)
		assert.Equal(t, []byte("payload"), produced[0].Value)
		assert.Equal(t, testEvent.OccurredAt, produced[0].Timestamp)
	})

	t.Run("EmptyCartHasEmptyIDs", func(t *testing.T) {
		cl := new(MockProducerClient)
		enc := new(MockEncoder)

		enc.On("Encode", mock.MatchedBy(func(s schema.CartEventV1) bool {
			return s.ProductIDs != nil && len(s.ProductIDs) == 0 && s.Total == "0"
		})).Return([]byte("payload"), nil)
		cl.On("ProduceSync", mock.Anything, mock.Anything).
			Return(kgo.ProduceResults{})

		evt := domain.CartEvent{EventID: "evt-2"}
		err := newProducer(t, cl, enc).ProduceCartEvent(t.Context(), evt)
		require.NoError(t, err)
		enc.AssertExpectations(t)
	})

	t.Run("EncodeError", func(t *testing.T) {
		cl := new(MockProducerClient)
		enc := new(MockEncoder)
		enc.On("Encode", mock.Anything).Return(nil, errors.New("bad value"))

		err := newProducer(t, cl, enc).ProduceCartEvent(t.Context(), testEvent)
		assert.ErrorContains(t, err, "bad value")
		cl.AssertNotCalled(t, "ProduceSync", mock.Anything, mock.Anything)
	})

	t.Run("ProduceError", func(t *testing.T) {
		cl := new(MockProducerClient)
		enc := new(MockEncoder)
		enc.On("Encode", mock.Anything).Return([]byte("payload"), nil)

		brokerErr := errors.New("not enough replicas")
		cl.On("ProduceSync", mock.Anything, mock.Anything).
			Return(kgo.ProduceResults{{Err: brokerErr}})

		err := newProducer(t, cl, enc).ProduceCartEvent(t.Context(), testEvent)
		assert.ErrorIs(t, err, brokerErr)
	})

	t.Run("CanceledContext", func(t *testing.T) {
		ctx, cancel := context.WithCancel(t.Context())
		cancel()

		err := newProducer(t, new(MockProducerClient), new(MockEncoder)).
			ProduceCartEvent(ctx, testEvent)
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("Close", func(t *testing.T) {
		cl := new(MockProducerClient)
		cl.On("Close").Return()

		newProducer(t, cl, new(MockEncoder)).Close()
		cl.AssertCalled(t, "Close")
	})
}
