// Package notify publishes domain events to RabbitMQ for the downstream
// SMS/WhatsApp dispatchers. Delivery is fire-and-forget from the caller's
// point of view: a confirmed payment is never rolled back because a
// notification could not be queued.
package notify

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

const exchangeName = "pinkauto.events"

// Routing keys for the events this service emits.
const (
	RouteBookingConfirmed = "booking.confirmed"
	RouteOTPSMS           = "otp.sms"
	RouteWindowReminder   = "window.reminder"
)

type Publisher struct {
	conn    *amqp.Connection
	channel *amqp.Channel
}

// NewPublisher dials the broker and declares the durable topic exchange.
func NewPublisher(url string) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial amqp: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	err = channel.ExchangeDeclare(
		exchangeName,
		"topic",
		true,  // durable
		false, // auto-delete
		false, // internal
		false, // no-wait
		nil,
	)
	if err != nil {
		_ = channel.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declare exchange %s: %w", exchangeName, err)
	}

	return &Publisher{conn: conn, channel: channel}, nil
}

// Publish marshals the event to JSON and publishes it persistently under
// the given routing key.
func (p *Publisher) Publish(ctx context.Context, routingKey string, event any) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	err = p.channel.PublishWithContext(ctx,
		exchangeName,
		routingKey,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("publish %s: %w", routingKey, err)
	}
	return nil
}

func (p *Publisher) Close() error {
	if err := p.channel.Close(); err != nil {
		_ = p.conn.Close()
		return err
	}
	return p.conn.Close()
}
