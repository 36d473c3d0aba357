package events

import (
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	EventsExchange         = "ecommerce.events"
	OrderPlacedRoutingKey  = "order.placed.v1"
	EventTypeOrderPlaced   = "OrderPlaced"
	orderPlacedSchema      = "contracts/events/storefront/OrderPlaced.v1.payload.schema.json"
	storefrontProducerName = "storefront-go"
)

// Dial connects to the broker with a bounded dial timeout.
func Dial(url string) (*amqp.Connection, error) {
	conn, err := amqp.DialConfig(url, amqp.Config{Dial: amqp.DefaultDial(10 * time.Second)})
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}
	return conn, nil
}

func declareEventsExchange(ch *amqp.Channel) error {
	return ch.ExchangeDeclare(
		EventsExchange,
		"topic",
		true,
		false,
		false,
		false,
		nil,
	)
}
