// Package queue delivers user-facing notifications asynchronously so that
// producers such as the session store never block on a slow sink.
package queue

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/Harsha6202/personalized-news-sentiment/internal/core/domain"
	"github.com/Harsha6202/personalized-news-sentiment/internal/core/metrics"
)

const channelBuffer = 256

// Sink receives every dispatched notification, in order.
type Sink interface {
	Deliver(n domain.Notification)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(domain.Notification)

func (f SinkFunc) Deliver(n domain.Notification) { f(n) }

// Dispatcher is the Notifier used by the services. A single worker fans each
// notification out to all sinks so delivery order matches Notify order.
type Dispatcher struct {
	ch    chan domain.Notification
	sinks []Sink
	log   zerolog.Logger
	now   func() time.Time

	startOnce sync.Once
	done      chan struct{}
}

// NewDispatcher creates a Dispatcher with a queue of size buffer. If
// buffer <= 0, channelBuffer is used.
func NewDispatcher(buffer int, log zerolog.Logger, sinks ...Sink) *Dispatcher {
	if buffer <= 0 {
		buffer = channelBuffer
	}
	return &Dispatcher{
		ch:    make(chan domain.Notification, buffer),
		sinks: sinks,
		log:   log.With().Str("component", "notifications").Logger(),
		now:   time.Now,
		done:  make(chan struct{}),
	}
}

// Start launches the worker goroutine. It stops when ctx is cancelled,
// delivers what is still queued and then closes Done. Calling Start twice
// has no effect.
func (d *Dispatcher) Start(ctx context.Context) {
	d.startOnce.Do(func() {
		go d.run(ctx)
	})
}

// Done is closed once the worker has exited.
func (d *Dispatcher) Done() <-chan struct{} { return d.done }

// Notify stamps n and queues it. It never blocks: when the queue is full the
// notification is dropped and counted.
func (d *Dispatcher) Notify(n domain.Notification) {
	if n.CreatedAt.IsZero() {
		n.CreatedAt = d.now().UTC()
	}
	if n.Variant == "" {
		n.Variant = domain.VariantDefault
	}

	select {
	case d.ch <- n:
		metrics.NotificationsQueueDepth.Inc()
	default:
		metrics.NotificationsDroppedTotal.Inc()
		d.log.Warn().Str("title", n.Title).Msg("notification queue full, dropping")
	}
}

func (d *Dispatcher) run(ctx context.Context) {
	defer close(d.done)
	for {
		select {
		case <-ctx.Done():
			d.drain()
			return
		case n := <-d.ch:
			d.deliver(n)
		}
	}
}

// drain delivers whatever was queued before cancellation.
func (d *Dispatcher) drain() {
	for {
		select {
		case n := <-d.ch:
			d.deliver(n)
		default:
			return
		}
	}
}

func (d *Dispatcher) deliver(n domain.Notification) {
	metrics.NotificationsQueueDepth.Dec()
	for _, s := range d.sinks {
		s.Deliver(n)
	}
}
