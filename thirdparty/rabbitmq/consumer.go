package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/muhammadheryan/community-market/utils/logger"
	"github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

type Consumer struct {
	conn       *amqp091.Connection
	channel    *amqp091.Channel
	apiURL     string
	apiKey     string
	httpClient *http.Client
}

func NewConsumer(host string, port int, user, password, apiURL, apiKey string) (*Consumer, error) {
	conn, channel, err := dial(host, port, user, password)
	if err != nil {
		return nil, err
	}

	return &Consumer{
		conn:       conn,
		channel:    channel,
		apiURL:     apiURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}, nil
}

// Start consumes expiration messages until ctx is done. The returned channel
// is closed when the consume loop exits.
func (c *Consumer) Start(ctx context.Context) (<-chan struct{}, error) {
	// one unacked message at a time
	if err := c.channel.Qos(1, 0, false); err != nil {
		return nil, err
	}

	msgs, err := c.channel.Consume(
		expirationQueue,
		"",    // consumer tag
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		return nil, err
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-msgs:
				if !ok {
					return
				}
				c.handle(ctx, msg)
			}
		}
	}()

	return done, nil
}

func (c *Consumer) handle(ctx context.Context, msg amqp091.Delivery) {
	var expMsg ReservationExpirationMessage
	if err := json.Unmarshal(msg.Body, &expMsg); err != nil {
		logger.Error("[Consumer] unmarshal message", zap.String("error", err.Error()))
		_ = msg.Ack(false)
		return
	}

	if err := c.callExpireAPI(ctx, expMsg.ReservationID); err != nil {
		logger.Error("[Consumer] expire reservation", zap.Uint64("reservation_id", expMsg.ReservationID), zap.String("error", err.Error()))
		_ = msg.Nack(false, true)
		return
	}

	_ = msg.Ack(false)
	logger.Info("[Consumer] reservation expiry processed", zap.Uint64("reservation_id", expMsg.ReservationID))
}

func (c *Consumer) callExpireAPI(ctx context.Context, reservationID uint64) error {
	return CallExpireAPI(ctx, c.httpClient, c.apiURL, c.apiKey, reservationID)
}

// CallExpireAPI asks the API to expire a reservation. 4xx answers are final
// and treated as handled; only transport errors and 5xx are retried.
func CallExpireAPI(ctx context.Context, client *http.Client, apiURL, apiKey string, reservationID uint64) error {
	url := fmt.Sprintf("%s/internal/v1/reservations/%d/expire", apiURL, reservationID)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Internal-Service", "reservation-expiration-consumer")

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode >= 500 {
		return fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(body))
	}
	if resp.StatusCode >= 300 {
		logger.Warn("[Consumer] expire rejected", zap.Uint64("reservation_id", reservationID), zap.Int("status", resp.StatusCode))
	}

	return nil
}

func (c *Consumer) Close() error {
	if c.channel != nil {
		c.channel.Close()
	}
	if c.conn != nil {
		c.conn.Close()
	}
	return nil
}
