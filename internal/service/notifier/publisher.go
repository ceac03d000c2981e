// Package notifier publishes notification events to RabbitMQ.  Errors are
// logged and returned so request handlers can ignore a broker outage without
// failing the mutation that triggered the notification.
package notifier

import (
	"context"
	"encoding/json"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/iliyamo/gym-management/internal/queue"
)

// Publish sends a NotificationEvent to the notification queue.  The queue is
// declared idempotently and messages are marked persistent so they survive a
// broker restart.  The function never panics; any failure is logged and
// returned for the caller to ignore.
func Publish(ctx context.Context, event queue.NotificationEvent) error {
	conn, err := amqp.Dial(queue.BrokerURL())
	if err != nil {
		log.Printf("notifier: dial failed: %v", err)
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		log.Printf("notifier: channel open failed: %v", err)
		return err
	}
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare(
		queue.NotificationQueueName, // name
		true,                        // durable
		false,                       // autoDelete
		false,                       // exclusive
		false,                       // noWait
		nil,                         // args
	); err != nil {
		log.Printf("notifier: queue declare failed: %v", err)
		return err
	}

	if event.CreatedAt == "" {
		event.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	}
	body, err := json.Marshal(event)
	if err != nil {
		log.Printf("notifier: marshal event failed: %v", err)
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}
	if err := ch.PublishWithContext(ctx,
		"",                          // default exchange
		queue.NotificationQueueName, // routing key = queue name
		false,                       // mandatory
		false,                       // immediate
		pub,
	); err != nil {
		log.Printf("notifier: publish failed: %v", err)
		return err
	}
	return nil
}
