package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"userhub/internal/model"
)

// ContactPublisher hands contact submissions to the persist queue. The HTTP
// layer acknowledges the submission once it is durably queued; the worker
// writes the row.
type ContactPublisher struct {
	conn      *amqp.Connection
	queueName string
}

func NewContactPublisher(conn *amqp.Connection, queueName string) *ContactPublisher {
	return &ContactPublisher{
		conn:      conn,
		queueName: queueName,
	}
}

func (p *ContactPublisher) Publish(ctx context.Context, submission model.ContactSubmission) error {
	ch, err := p.conn.Channel()
	if err != nil {
		return fmt.Errorf("open rabbitmq channel failed: %w", err)
	}
	defer ch.Close()

	_, err = ch.QueueDeclare(
		p.queueName,
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return fmt.Errorf("declare queue failed: %w", err)
	}

	payload, err := json.Marshal(submission)
	if err != nil {
		return fmt.Errorf("marshal contact submission failed: %w", err)
	}

	if err := ch.PublishWithContext(
		ctx,
		"",
		p.queueName,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         payload,
			DeliveryMode: amqp.Persistent,
		},
	); err != nil {
		return fmt.Errorf("publish contact submission failed: %w", err)
	}
	return nil
}
