package kafka

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/muhammadheryan/community-market/constant"
	"github.com/muhammadheryan/community-market/model"
	"github.com/muhammadheryan/community-market/utils/logger"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const producerName = "community-market-api"

// messageWriter is the subset of *kafka.Writer the producer needs
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Producer publishes reservation state changes.
type Producer struct {
	w messageWriter
}

func NewProducer(brokers []string, topic string) *Producer {
	return &Producer{
		w: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireAll,
			MaxAttempts:  5,
			WriteTimeout: 5 * time.Second,
			BatchTimeout: 50 * time.Millisecond,
			Async:        true,
			Completion:   logFailedBatch,
		},
	}
}

// logFailedBatch reports batches the async writer gave up on
func logFailedBatch(messages []kafka.Message, err error) {
	if err == nil {
		return
	}
	for _, m := range messages {
		logger.Error("[kafka] reservation event dropped",
			zap.String("key", string(m.Key)),
			zap.String("error", err.Error()),
		)
	}
}

func (p *Producer) Close() error { return p.w.Close() }

// PublishReservationEvent enqueues one event keyed by product id, so all
// events of a product land on the same partition. Events are sent after
// commit, so two racing mutations of a product may arrive in either order;
// consumers order by remaining_stock or occurred_at.
func (p *Producer) PublishReservationEvent(ctx context.Context, eventType constant.ReservationEventType, payload model.ReservationEventPayload) error {
	msg, err := buildMessage(eventType, payload, time.Now().UTC())
	if err != nil {
		return err
	}
	return p.w.WriteMessages(ctx, msg)
}

func buildMessage(eventType constant.ReservationEventType, payload model.ReservationEventPayload, now time.Time) (kafka.Message, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return kafka.Message{}, err
	}

	env := model.EventEnvelope{
		EventID:       uuid.NewString(),
		EventType:     eventType,
		EventVersion:  1,
		OccurredAt:    now,
		Producer:      producerName,
		CorrelationID: strconv.FormatUint(payload.ReservationID, 10),
		Payload:       raw,
	}
	value, err := json.Marshal(env)
	if err != nil {
		return kafka.Message{}, err
	}

	return kafka.Message{
		Key:   []byte(strconv.FormatUint(payload.ProductID, 10)),
		Value: value,
		Time:  now,
		Headers: []kafka.Header{
			{Key: "x-event-type", Value: []byte(eventType)},
			{Key: "x-event-version", Value: []byte("1")},
		},
	}, nil
}
