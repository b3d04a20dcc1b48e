package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"

	"pinboard/internal/pkg/mailer"
)

// MailWorker drains the mail queue and delivers over SMTP. Failed sends are
// nacked without requeue; a single failure is terminal for that job.
type MailWorker struct {
	conn      *amqp.Connection
	mailer    *mailer.Mailer
	queueName string

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewMailWorker(conn *amqp.Connection, m *mailer.Mailer, queueName string) *MailWorker {
	return &MailWorker{
		conn:      conn,
		mailer:    m,
		queueName: queueName,
	}
}

func (w *MailWorker) Start(ctx context.Context) error {
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
		return fmt.Errorf("declare mail queue failed: %w", err)
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
		return fmt.Errorf("consume mail queue failed: %w", err)
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

				var job mailer.MailJob
				if err := json.Unmarshal(d.Body, &job); err != nil {
					log.Printf("worker decode mail job failed: %v", err)
					_ = d.Nack(false, false)
					continue
				}

				if err := w.mailer.Send(job); err != nil {
					log.Printf("worker send mail to %s failed: %v", job.To, err)
					_ = d.Nack(false, false)
					continue
				}

				_ = d.Ack(false)
			}
		}
	}()

	return nil
}

func (w *MailWorker) Close() {
	if w.cancel != nil {
		w.cancel()
	}
	w.wg.Wait()
}
