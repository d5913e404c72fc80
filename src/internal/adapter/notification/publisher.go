package notification

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/segmentio/kafka-go"
)

// Publisher is the outbound notification channel contract. Delivery is
// at-least-once from the channel's perspective; callers must never treat a
// publish failure as a reason to roll back committed ledger state.
type Publisher interface {
	Publish(ctx context.Context, topic string, key string, payload any) error
}

type KafkaPublisher struct {
	writers map[string]*kafka.Writer
}

// NewKafkaPublisher creates one writer per topic against the given broker
// address.
func NewKafkaPublisher(addr string, topics ...string) *KafkaPublisher {
	writers := make(map[string]*kafka.Writer, len(topics))
	for _, topic := range topics {
		writers[topic] = &kafka.Writer{
			Addr:     kafka.TCP(addr),
			Topic:    topic,
			Balancer: &kafka.LeastBytes{},
		}
	}
	return &KafkaPublisher{writers: writers}
}

func (p *KafkaPublisher) Publish(ctx context.Context, topic string, key string, payload any) error {
	writer, ok := p.writers[topic]
	if !ok {
		return fmt.Errorf("no writer configured for topic %q", topic)
	}

	value, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal notification payload: %w", err)
	}

	msg := kafka.Message{Key: []byte(key), Value: value}
	if err := writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("write message to %q: %w", topic, err)
	}

	return nil
}

func (p *KafkaPublisher) Close() error {
	var firstErr error
	for _, writer := range p.writers {
		if err := writer.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
