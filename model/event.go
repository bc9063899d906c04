package model

import (
	"encoding/json"
	"time"

	"github.com/muhammadheryan/community-market/constant"
)

// EventEnvelope wraps every reservation event published to Kafka
type EventEnvelope struct {
	EventID       string                        `json:"event_id"`
	EventType     constant.ReservationEventType `json:"event_type"`
	EventVersion  int                           `json:"event_version"`
	OccurredAt    time.Time                     `json:"occurred_at"`
	Producer      string                        `json:"producer"`
	CorrelationID string                        `json:"correlation_id,omitempty"`
	Payload       json.RawMessage               `json:"payload"`
}

type ReservationEventPayload struct {
	ReservationID uint64                     `json:"reservation_id"`
	ProductID     uint64                     `json:"product_id"`
	CustomerID    uint64                     `json:"customer_id"`
	ActorID       uint64                     `json:"actor_id,omitempty"`
	Quantity      int64                      `json:"quantity"`
	Status        constant.ReservationStatus `json:"status"`
	// RemainingStock is only set on confirmation.
	RemainingStock *int64 `json:"remaining_stock,omitempty"`
}
