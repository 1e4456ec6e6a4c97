package tasks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"lawease/models"

	"github.com/hibiken/asynq"
)

const (
	TypeSendEmail       = "email:send"
	TypeBookingReminder = "booking:reminder"

	// ReminderLead is how long before the start a reminder fires.
	ReminderLead = 24 * time.Hour
)

// NewEmailTask wraps an email for asynchronous delivery.
func NewEmailTask(email models.Email) (*asynq.Task, error) {
	b, err := json.Marshal(email)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeSendEmail, b, asynq.MaxRetry(5), asynq.Timeout(30*time.Second)), nil
}

func NewReminderTask(payload models.ReminderPayload, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeBookingReminder, b)
	opts := []asynq.Option{
		asynq.ProcessAt(fireAt),
		asynq.TaskID("reminder:" + payload.BookingID),
	}
	return task, opts, nil
}

// Enqueuer is the part of *asynq.Client the schedulers need.
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// ReminderScheduler queues a booking reminder.
type ReminderScheduler interface {
	ScheduleReminder(ctx context.Context, booking *models.Booking, startsAt time.Time) error
}

// AsynqReminderScheduler implements ReminderScheduler on an asynq queue.
type AsynqReminderScheduler struct {
	Client Enqueuer
	Now    func() time.Time
}

func NewAsynqReminderScheduler(client Enqueuer) *AsynqReminderScheduler {
	return &AsynqReminderScheduler{Client: client, Now: time.Now}
}

// ScheduleReminder enqueues a reminder ReminderLead before startsAt. Bookings
// starting sooner than that get no reminder.
func (s *AsynqReminderScheduler) ScheduleReminder(ctx context.Context, booking *models.Booking, startsAt time.Time) error {
	fireAt := startsAt.Add(-ReminderLead)
	if !fireAt.After(s.Now()) {
		return nil
	}
	task, opts, err := NewReminderTask(models.ReminderPayload{
		BookingID: booking.ID,
		FireDate:  fireAt.Format(time.RFC3339),
	}, fireAt)
	if err != nil {
		return fmt.Errorf("build reminder task: %w", err)
	}
	if _, err := s.Client.EnqueueContext(ctx, task, opts...); err != nil {
		if errors.Is(err, asynq.ErrTaskIDConflict) {
			return nil
		}
		return fmt.Errorf("enqueue reminder for %s: %w", booking.ID, err)
	}
	return nil
}
