package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// OrderPublisher announces placed orders. Checkout treats publishing as best
// effort.
type OrderPublisher interface {
	PublishOrderPlaced(ctx context.Context, meta EventMeta, ev OrderPlaced) error
}

type amqpChannel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

type Publisher struct {
	ch       amqpChannel
	producer string
	now      func() time.Time
}

func NewPublisher(conn *amqp.Connection) (*Publisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("open channel: %w", err)
	}

	if err := declareEventsExchange(ch); err != nil {
		_ = ch.Close()
		return nil, fmt.Errorf("declare events exchange: %w", err)
	}

	return newPublisher(ch), nil
}

func newPublisher(ch amqpChannel) *Publisher {
	return &Publisher{ch: ch, producer: storefrontProducerName, now: time.Now}
}

func (p *Publisher) Close() error {
	return p.ch.Close()
}

func (p *Publisher) PublishOrderPlaced(ctx context.Context, meta EventMeta, ev OrderPlaced) error {
	if ev.Timestamp.IsZero() {
		ev.Timestamp = p.now().UTC()
	}
	if meta.PartitionKey == "" {
		meta.PartitionKey = ev.OrderNumber
	}

	env, err := newOrderPlacedEvent(meta, p.producer, ev)
	if err != nil {
		return err
	}
	body, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("marshal OrderPlaced envelope: %w", err)
	}

	return p.publishJSON(ctx, OrderPlacedRoutingKey, env.EventID, body)
}

func (p *Publisher) publishJSON(ctx context.Context, routingKey, messageID string, body []byte) error {
	pubCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	return p.ch.PublishWithContext(
		pubCtx,
		EventsExchange,
		routingKey,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    messageID,
			Timestamp:    p.now().UTC(),
			Body:         body,
		},
	)
}

// NopPublisher is used when no broker is configured.
type NopPublisher struct {
	Logger *log.Logger
}

func (n NopPublisher) PublishOrderPlaced(ctx context.Context, meta EventMeta, ev OrderPlaced) error {
	if n.Logger != nil {
		n.Logger.Printf("order %s placed (event publishing disabled)", ev.OrderNumber)
	}
	return nil
}
