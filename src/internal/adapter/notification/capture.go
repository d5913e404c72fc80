package notification

import (
	"context"
	"sync"
)

// CapturePublisher records published events in memory. Test double for the
// Kafka publisher; also usable as a no-op sink in local runs.
type CapturePublisher struct {
	mu     sync.Mutex
	events []Event
	fail   error
}

func NewCapturePublisher() *CapturePublisher {
	return &CapturePublisher{}
}

// FailWith makes every subsequent Publish return err. Pass nil to recover.
func (p *CapturePublisher) FailWith(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.fail = err
}

func (p *CapturePublisher) Publish(_ context.Context, topic string, key string, payload any) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.fail != nil {
		return p.fail
	}
	p.events = append(p.events, Event{Topic: topic, Key: key, Payload: payload})
	return nil
}

func (p *CapturePublisher) Events() []Event {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := make([]Event, len(p.events))
	copy(out, p.events)
	return out
}
