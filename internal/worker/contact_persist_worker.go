package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"

	"userhub/internal/model"
)

// ContactStore is the slice of the contact repository the worker needs.
type ContactStore interface {
	Create(ctx context.Context, submission *model.ContactSubmission) error
}

// ContactPersistWorker drains the contact queue and writes submissions to the
// store. Undecodable or unpersistable deliveries are nacked without requeue.
type ContactPersistWorker struct {
	conn      *amqp.Connection
	store     ContactStore
	queueName string

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewContactPersistWorker(conn *amqp.Connection, store ContactStore, queueName string) *ContactPersistWorker {
	return &ContactPersistWorker{
		conn:      conn,
		store:     store,
		queueName: queueName,
	}
}

func (w *ContactPersistWorker) Start(ctx context.Context) error {
	if w.cancel != nil {
		return nil
	}

	workerCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel

	ch, err := w.conn.Channel()
	if err != nil {
		cancel()
		return fmt.Errorf("open worker channel failed: %w", err)
	}

	_, err = ch.QueueDeclare(
		w.queueName,
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		_ = ch.Close()
		cancel()
		return fmt.Errorf("declare worker queue failed: %w", err)
	}

	deliveries, err := ch.Consume(
		w.queueName,
		"",
		false,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		_ = ch.Close()
		cancel()
		return fmt.Errorf("consume queue failed: %w", err)
	}

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		defer ch.Close()

		for {
			select {
			case <-workerCtx.Done():
				return
			case d, ok := <-deliveries:
				if !ok {
					return
				}

				if err := w.persist(workerCtx, d.Body); err != nil {
					log.Printf("worker persist contact submission failed: %v", err)
					_ = d.Nack(false, false)
					continue
				}

				_ = d.Ack(false)
			}
		}
	}()

	return nil
}

func (w *ContactPersistWorker) persist(ctx context.Context, body []byte) error {
	var submission model.ContactSubmission
	if err := json.Unmarshal(body, &submission); err != nil {
		return fmt.Errorf("decode contact submission failed: %w", err)
	}
	return w.store.Create(ctx, &submission)
}

func (w *ContactPersistWorker) Close() {
	if w.cancel != nil {
		w.cancel()
	}
	w.wg.Wait()
}
