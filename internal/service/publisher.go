// Package service publishes domain events to RabbitMQ.  Publishing is
// best effort: failures are logged and returned, and callers never undo a
// committed booking because of them.
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/iliyamo/fyyur/internal/queue"
)

// EventPublisher publishes booking events.
type EventPublisher interface {
	PublishShowBooked(ctx context.Context, ev queue.ShowBookedEvent) error
}

// NopPublisher drops every event.  It is used when EVENTS_ENABLED is off.
type NopPublisher struct{}

// PublishShowBooked implements EventPublisher.
func (NopPublisher) PublishShowBooked(context.Context, queue.ShowBookedEvent) error { return nil }

// RabbitPublisher dials the broker for each event and publishes a
// persistent message on the durable show.booked queue.
type RabbitPublisher struct {
	URL string
}

// NewRabbitPublisher returns a publisher for the given AMQP URL.
func NewRabbitPublisher(url string) *RabbitPublisher {
	return &RabbitPublisher{URL: url}
}

// PublishShowBooked implements EventPublisher.
func (p *RabbitPublisher) PublishShowBooked(ctx context.Context, ev queue.ShowBookedEvent) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	if err := p.publish(ctx, queue.ShowBookedQueue, body); err != nil {
		log.Printf("rabbitmq: publish %s for show %d: %v", queue.ShowBookedQueue, ev.ShowID, err)
		return err
	}
	return nil
}

func (p *RabbitPublisher) publish(ctx context.Context, queueName string, body []byte) error {
	conn, err := amqp.Dial(p.URL)
	if err != nil {
		return fmt.Errorf("dial: %w", err)
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare(queueName, true, false, false, false, nil); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}
	return ch.PublishWithContext(ctx, "", queueName, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	})
}
