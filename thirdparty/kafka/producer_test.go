package kafka

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/muhammadheryan/community-market/constant"
	"github.com/muhammadheryan/community-market/model"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingWriter struct {
	msgs []kafka.Message
}

func (w *recordingWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *recordingWriter) Close() error { return nil }

func TestProducer_PublishReservationEvent(t *testing.T) {
	w := &recordingWriter{}
	p := &Producer{w: w}

	remaining := int64(1)
	err := p.PublishReservationEvent(context.Background(), constant.EventReservationConfirmed, model.ReservationEventPayload{
		ReservationID:  10,
		ProductID:      5,
		CustomerID:     2,
		ActorID:        1,
		Quantity:       2,
		Status:         constant.ReservationStatusConfirmed,
		RemainingStock: &remaining,
	})
	require.NoError(t, err)
	require.Len(t, w.msgs, 1)

	msg := w.msgs[0]
	assert.Equal(t, "5", string(msg.Key))

	var env model.EventEnvelope
	require.NoError(t, json.Unmarshal(msg.Value, &env))
	assert.Equal(t, constant.EventReservationConfirmed, env.EventType)
	assert.Equal(t, "10", env.CorrelationID)
	assert.NotEmpty(t, env.EventID)

	var payload model.ReservationEventPayload
	require.NoError(t, json.Unmarshal(env.Payload, &payload))
	assert.Equal(t, int64(1), *payload.RemainingStock)
	assert.Equal(t, constant.ReservationStatusConfirmed, payload.Status)
}

func TestNewProducer_WritesAsync(t *testing.T) {
	p := NewProducer([]string{"localhost:9092"}, "reservation-events")
	w, ok := p.w.(*kafka.Writer)
	require.True(t, ok)

	assert.True(t, w.Async)
	assert.NotNil(t, w.Completion)
	assert.Equal(t, "reservation-events", w.Topic)
	assert.IsType(t, &kafka.Hash{}, w.Balancer)

	// failures are only logged
	logFailedBatch([]kafka.Message{{Key: []byte("5")}}, assert.AnError)
	logFailedBatch(nil, nil)
}
