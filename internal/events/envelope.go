package events

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// EventEnvelope is the shared envelope for v1 contracts.
type EventEnvelope struct {
	EventName     string          `json:"eventName"`
	EventVersion  int             `json:"eventVersion"`
	EventID       string          `json:"eventId"`
	CorrelationID string          `json:"correlationId,omitempty"`
	Producer      string          `json:"producer"`
	PartitionKey  string          `json:"partitionKey"`
	OccurredAt    time.Time       `json:"occurredAt"`
	Schema        string          `json:"schema"`
	Payload       json.RawMessage `json:"payload"`
}

func (e EventEnvelope) Validate(expectedName string, expectedVersion int) error {
	if e.EventName != expectedName {
		return fmt.Errorf("unexpected eventName %q", e.EventName)
	}
	if e.EventVersion != expectedVersion {
		return fmt.Errorf("unexpected eventVersion %d", e.EventVersion)
	}
	if e.PartitionKey == "" {
		return fmt.Errorf("missing partitionKey")
	}
	if e.EventID == "" {
		return fmt.Errorf("missing eventId")
	}
	return nil
}

// OrderPlaced is emitted after the backend accepted a checkout.
type OrderPlaced struct {
	OrderNumber   string    `json:"orderNumber"`
	SessionID     string    `json:"sessionId"`
	Total         float64   `json:"total"`
	ItemCount     int       `json:"itemCount"`
	PaymentMethod string    `json:"paymentMethod"`
	Timestamp     time.Time `json:"timestamp"`
}

type EventMeta struct {
	CorrelationID string
	PartitionKey  string
}

func newOrderPlacedEvent(meta EventMeta, producer string, payload OrderPlaced) (EventEnvelope, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return EventEnvelope{}, fmt.Errorf("marshal OrderPlaced payload: %w", err)
	}
	return EventEnvelope{
		EventName:     EventTypeOrderPlaced,
		EventVersion:  1,
		EventID:       uuid.NewString(),
		CorrelationID: meta.CorrelationID,
		Producer:      producer,
		PartitionKey:  meta.PartitionKey,
		OccurredAt:    payload.Timestamp,
		Schema:        orderPlacedSchema,
		Payload:       body,
	}, nil
}
