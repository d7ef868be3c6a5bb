// Package messaging publishes domain events to interested consumers.
// The registry emits an event whenever a patient is created or an entry
// is appended; wiring a broker is optional and the service falls back
// to a no-op publisher.
package messaging

import (
	"context"
	"time"
)

// Event is the wire shape of a published domain event.
type Event struct {
	Type       string      `json:"type"`
	OccurredAt time.Time   `json:"occurred_at"`
	Payload    interface{} `json:"payload"`
}

// Broker defines the interface for message brokers.
type Broker interface {
	Publish(ctx context.Context, channel string, message interface{}) error
	Close() error
}

// Publisher is the narrow interface services publish through.
type Publisher interface {
	Publish(ctx context.Context, eventType string, payload interface{}) error
}

// BrokerPublisher adapts a Broker into a Publisher on a fixed channel.
type BrokerPublisher struct {
	broker  Broker
	channel string
}

func NewBrokerPublisher(broker Broker, channel string) *BrokerPublisher {
	return &BrokerPublisher{broker: broker, channel: channel}
}

func (p *BrokerPublisher) Publish(ctx context.Context, eventType string, payload interface{}) error {
	return p.broker.Publish(ctx, p.channel, Event{
		Type:       eventType,
		OccurredAt: time.Now().UTC(),
		Payload:    payload,
	})
}

// NoopPublisher discards every event. Used when no broker is configured.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, string, interface{}) error { return nil }
