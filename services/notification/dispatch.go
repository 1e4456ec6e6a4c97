package notification

import (
	"context"
	"fmt"

	"lawease/models"
	"lawease/services/tasks"
)

// Dispatcher hands an email off for delivery.
type Dispatcher interface {
	Dispatch(ctx context.Context, email models.Email) error
}

// DirectDispatcher sends inline through the email client.
type DirectDispatcher struct {
	Client EmailClient
}

func (d *DirectDispatcher) Dispatch(ctx context.Context, email models.Email) error {
	return d.Client.Send(ctx, email)
}

// QueueDispatcher enqueues emails for the background worker, which retries
// failed deliveries.
type QueueDispatcher struct {
	Queue tasks.Enqueuer
}

func (d *QueueDispatcher) Dispatch(ctx context.Context, email models.Email) error {
	task, err := tasks.NewEmailTask(email)
	if err != nil {
		return fmt.Errorf("build email task: %w", err)
	}
	if _, err := d.Queue.EnqueueContext(ctx, task); err != nil {
		return fmt.Errorf("enqueue email to %s: %w", email.To, err)
	}
	return nil
}
