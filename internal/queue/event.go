// Package queue defines message payloads exchanged over the message broker
// and the background consumer that turns them into notification rows.
package queue

// NotificationQueueName is the durable queue carrying notification events.
const NotificationQueueName = "notification.created"

// NotificationEvent is published when an operation targets a user who should
// hear about it: a diet plan assignment, a workout plan assignment or a
// booked session.  It carries everything the consumer needs to persist the
// notification without querying back into the request path.
type NotificationEvent struct {
	UserID    uint64 `json:"user_id"`
	Title     string `json:"title"`
	Message   string `json:"message"`
	CreatedAt string `json:"created_at"`
}
