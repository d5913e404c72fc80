package notification

import (
	"context"
	"sync"
	"time"

	"github.com/api-sage/account-ledger-service/src/internal/logger"
)

// Event is one fully formed outbound notification. Payloads are snapshots
// taken at commit time, so a retry never re-reads mutable state.
type Event struct {
	Topic   string
	Key     string
	Payload any
}

// Queue accepts events for asynchronous delivery.
type Queue interface {
	Enqueue(event Event)
}

// Dispatcher decouples notification publishing from the transactional write
// path. Enqueue never blocks the caller; a worker publishes with bounded
// retries and backoff, and exhausted events are logged loudly rather than
// propagated, because ledger state is authoritative and already committed.
type Dispatcher struct {
	publisher      Publisher
	queue          chan Event
	maxAttempts    int
	initialBackoff time.Duration
	publishTimeout time.Duration

	mu        sync.RWMutex
	started   bool
	closed    bool
	startOnce sync.Once
	closeOnce sync.Once
	done      chan struct{}
}

type DispatcherOption func(*Dispatcher)

func WithMaxAttempts(attempts int) DispatcherOption {
	return func(d *Dispatcher) {
		if attempts > 0 {
			d.maxAttempts = attempts
		}
	}
}

func WithInitialBackoff(backoff time.Duration) DispatcherOption {
	return func(d *Dispatcher) {
		if backoff > 0 {
			d.initialBackoff = backoff
		}
	}
}

func WithQueueSize(size int) DispatcherOption {
	return func(d *Dispatcher) {
		if size > 0 {
			d.queue = make(chan Event, size)
		}
	}
}

func NewDispatcher(publisher Publisher, opts ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{
		publisher:      publisher,
		queue:          make(chan Event, 256),
		maxAttempts:    5,
		initialBackoff: 200 * time.Millisecond,
		publishTimeout: 10 * time.Second,
		done:           make(chan struct{}),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(d)
		}
	}
	return d
}

func (d *Dispatcher) Start() {
	d.startOnce.Do(func() {
		d.mu.Lock()
		d.started = true
		d.mu.Unlock()
		go d.run()
	})
}

// Enqueue hands an event to the worker. When the queue is full, or the
// dispatcher is already closed, the event is published inline once, best
// effort, so it is not silently dropped.
func (d *Dispatcher) Enqueue(event Event) {
	d.mu.RLock()
	if d.closed {
		d.mu.RUnlock()
		logger.Error("notification enqueued after close, publishing inline", nil, logger.Fields{
			"topic": event.Topic,
			"key":   event.Key,
		})
		d.publishOnce(event)
		return
	}

	select {
	case d.queue <- event:
		d.mu.RUnlock()
	default:
		d.mu.RUnlock()
		logger.Error("notification queue full, publishing inline", nil, logger.Fields{
			"topic": event.Topic,
			"key":   event.Key,
		})
		d.publishOnce(event)
	}
}

// Close stops accepting events and blocks until the queue is drained. A
// dispatcher that was never started has no worker to wait for.
func (d *Dispatcher) Close() {
	d.closeOnce.Do(func() {
		d.mu.Lock()
		d.closed = true
		started := d.started
		d.mu.Unlock()

		close(d.queue)
		if started {
			<-d.done
		}
	})
}

func (d *Dispatcher) run() {
	defer close(d.done)
	for event := range d.queue {
		d.publishWithRetry(event)
	}
}

func (d *Dispatcher) publishWithRetry(event Event) {
	backoff := d.initialBackoff
	for attempt := 1; attempt <= d.maxAttempts; attempt++ {
		err := d.publishOnce(event)
		if err == nil {
			return
		}
		if attempt == d.maxAttempts {
			logger.Error("notification dropped after retries exhausted", err, logger.Fields{
				"topic":    event.Topic,
				"key":      event.Key,
				"attempts": attempt,
			})
			return
		}
		time.Sleep(backoff)
		backoff *= 2
	}
}

func (d *Dispatcher) publishOnce(event Event) error {
	ctx, cancel := context.WithTimeout(context.Background(), d.publishTimeout)
	defer cancel()

	err := d.publisher.Publish(ctx, event.Topic, event.Key, event.Payload)
	if err != nil {
		logger.Error("notification publish failed", err, logger.Fields{
			"topic": event.Topic,
			"key":   event.Key,
		})
	}
	return err
}
