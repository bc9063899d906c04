package rabbitmq

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/rabbitmq/amqp091-go"
)

const (
	expirationExchange   = "reservation_expiration_exchange"
	expirationQueue      = "reservation_expiration_queue"
	expirationRoutingKey = "reservation_expiration"
)

type Publisher struct {
	conn    *amqp091.Connection
	channel *amqp091.Channel
}

type ReservationExpirationMessage struct {
	ReservationID uint64    `json:"reservation_id"`
	ProductID     uint64    `json:"product_id"`
	ExpiresAt     time.Time `json:"expires_at"`
}

func dial(host string, port int, user, password string) (*amqp091.Connection, *amqp091.Channel, error) {
	dsn := fmt.Sprintf("amqp://%s:%s@%s:%d/", user, password, host, port)
	conn, err := amqp091.Dial(dsn)
	if err != nil {
		return nil, nil, err
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, nil, err
	}

	if err := declareTopology(channel); err != nil {
		channel.Close()
		conn.Close()
		return nil, nil, err
	}
	return conn, channel, nil
}

// declareTopology sets up the delayed exchange (rabbitmq_delayed_message_exchange
// plugin) and its bound queue. Both sides declare it so start order is free.
func declareTopology(channel *amqp091.Channel) error {
	err := channel.ExchangeDeclare(
		expirationExchange,  // name
		"x-delayed-message", // type
		true,                // durable
		false,               // auto-delete
		false,               // internal
		false,               // no-wait
		amqp091.Table{"x-delayed-type": "direct"},
	)
	if err != nil {
		return err
	}

	_, err = channel.QueueDeclare(
		expirationQueue, // name
		true,            // durable
		false,           // auto-delete
		false,           // exclusive
		false,           // no-wait
		nil,
	)
	if err != nil {
		return err
	}

	return channel.QueueBind(expirationQueue, expirationRoutingKey, expirationExchange, false, nil)
}

func NewPublisher(host string, port int, user, password string) (*Publisher, error) {
	conn, channel, err := dial(host, port, user, password)
	if err != nil {
		return nil, err
	}
	return &Publisher{conn: conn, channel: channel}, nil
}

// ScheduleExpiration publishes msg so it is delivered at msg.ExpiresAt
func (p *Publisher) ScheduleExpiration(msg ReservationExpirationMessage) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	delayMs := time.Until(msg.ExpiresAt).Milliseconds()
	if delayMs < 0 {
		delayMs = 0
	}

	return p.channel.Publish(
		expirationExchange,
		expirationRoutingKey,
		false, // mandatory
		false, // immediate
		amqp091.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp091.Persistent,
			Body:         body,
			Headers: amqp091.Table{
				"x-delay": delayMs,
			},
		},
	)
}

func (p *Publisher) Close() error {
	if p.channel != nil {
		p.channel.Close()
	}
	if p.conn != nil {
		p.conn.Close()
	}
	return nil
}
