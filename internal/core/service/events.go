package service

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
	"github.com/niksmo/storefront/pkg/retry"
)

const (
	defaultEventsBufferSize = 64
	publishBackoffDelay     = 100 * time.Millisecond
)

var _ port.CartEventPublisher = (*CartEventPublisher)(nil)

// A CartEventPublisher turns cart transitions into [domain.CartEvent] and
// produces them in its own goroutine, so cart mutations never wait on
// the broker. Events that do not fit in the buffer are dropped.
type CartEventPublisher struct {
	producer port.CartEventProducer
	retryCfg retry.RetryConfig
	events   chan domain.CartEvent

	unsubscribe func()
	closeOnce   sync.Once
	done        chan struct{}
	running     atomic.Bool
	stopped     chan struct{}

	now   func() time.Time
	newID func() string
}

type PublisherOpt func(*CartEventPublisher)

func PublisherAttemptsOpt(n int) PublisherOpt {
	return func(p *CartEventPublisher) {
		p.retryCfg.MaxAttempts = n
	}
}

func PublisherBufferOpt(size int) PublisherOpt {
	return func(p *CartEventPublisher) {
		if size > 0 {
			p.events = make(chan domain.CartEvent, size)
		}
	}
}

func PublisherClockOpt(now func() time.Time) PublisherOpt {
	return func(p *CartEventPublisher) {
		p.now = now
	}
}

func NewCartEventPublisher(
	cart port.CartSubscriber,
	producer port.CartEventProducer,
	opts ...PublisherOpt,
) *CartEventPublisher {
	p := &CartEventPublisher{
		producer: producer,
		retryCfg: retry.RetryConfig{
			MaxAttempts: 1,
			Backoff:     retry.ExponentialBackoff(publishBackoffDelay),
		},
		events:  make(chan domain.CartEvent, defaultEventsBufferSize),
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
		now:     time.Now,
		newID:   uuid.NewString,
	}
	for _, opt := range opts {
		opt(p)
	}

	p.unsubscribe = cart.Subscribe(p.enqueue)
	return p
}

// Run produces queued events until ctx is done or the publisher is closed.
//
// wg is released as soon as the publisher is ready to produce.
func (p *CartEventPublisher) Run(ctx context.Context, wg *sync.WaitGroup) {
	const op = "CartEventPublisher.Run"
	log := slog.With("op", op)

	p.running.Store(true)
	defer close(p.stopped)
	wg.Done()

	log.Info("cart events publisher is running")
	for {
		select {
		case <-ctx.Done():
			return
		case <-p.done:
			return
		case evt := <-p.events:
			p.publish(ctx, evt)
		}
	}
}

// Close stops accepting cart transitions and waits for Run to return.
func (p *CartEventPublisher) Close() {
	const op = "CartEventPublisher.Close"
	log := slog.With("op", op)

	log.Info("closing cart events publisher...")
	p.closeOnce.Do(func() {
		p.unsubscribe()
		close(p.done)
	})
	if p.running.Load() {
		<-p.stopped
	}
	log.Info("cart events publisher is closed")
}

func (p *CartEventPublisher) enqueue(s domain.CartSnapshot) {
	const op = "CartEventPublisher.enqueue"

	select {
	case <-p.done:
		return
	default:
	}

	evt := p.toEvent(s)
	select {
	case p.events <- evt:
	default:
		slog.Warn("events buffer is full, event dropped",
			"op", op, "eventID", evt.EventID)
	}
}

func (p *CartEventPublisher) publish(ctx context.Context, evt domain.CartEvent) {
	const op = "CartEventPublisher.publish"
	log := slog.With("op", op)

	err := retry.Do(ctx, p.retryCfg, func() error {
		return p.producer.ProduceCartEvent(ctx, evt)
	})
	if err != nil {
		log.Error("failed to publish cart event",
			"eventID", evt.EventID, "err", err)
		return
	}
	log.Debug("cart event published", "eventID", evt.EventID)
}

func (p *CartEventPublisher) toEvent(s domain.CartSnapshot) domain.CartEvent {
	return domain.CartEvent{
		EventID:    p.newID(),
		OccurredAt: p.now().UTC(),
		ProductIDs: s.Items.IDs(),
		ItemCount:  s.Items.Len(),
		Total:      s.Total,
	}
}
