package cron

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"lawease/config"
	"lawease/models"
	"lawease/services/notification"
	"lawease/services/tasks"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// ReminderSender delivers the reminder for one booking.
type ReminderSender interface {
	SendReminder(ctx context.Context, bookingID string) error
}

// RedisOpt builds the asynq connection for the queue database.
func RedisOpt() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}
}

// NewServeMux routes queued tasks to their handlers.
func NewServeMux(emails notification.EmailClient, reminders ReminderSender, logger *zap.Logger) *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeSendEmail, handleEmailTask(emails, logger))
	mux.HandleFunc(tasks.TypeBookingReminder, handleReminderTask(reminders, logger))
	return mux
}

// InitWorker runs the async worker in background and returns the server so
// the caller can shut it down.
func InitWorker(emails notification.EmailClient, reminders ReminderSender, logger *zap.Logger) *asynq.Server {
	srv := asynq.NewServer(
		RedisOpt(),
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)
	mux := NewServeMux(emails, reminders, logger)

	go monitorRedisConnection(logger)

	go func() {
		logger.Info("starting async worker")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			err := srv.Start(mux)
			if err == nil {
				return
			}
			logger.Warn("failed to start worker",
				zap.Int("attempt", attempts),
				zap.Int("maxAttempts", maxAttempts),
				zap.Error(err))
			if attempts == maxAttempts {
				logger.Error("worker not started, queued emails and reminders will wait")
				return
			}
			time.Sleep(time.Duration(attempts*2) * time.Second)
		}
	}()
	return srv
}

func handleEmailTask(emails notification.EmailClient, logger *zap.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var email models.Email
		if err := json.Unmarshal(task.Payload(), &email); err != nil {
			logger.Error("invalid email payload", zap.Error(err))
			return fmt.Errorf("decode email: %v: %w", err, asynq.SkipRetry)
		}
		if err := emails.Send(ctx, email); err != nil {
			logger.Warn("email delivery failed", zap.String("to", email.To), zap.Error(err))
			return err
		}
		return nil
	}
}

func handleReminderTask(reminders ReminderSender, logger *zap.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.ReminderPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			logger.Error("invalid reminder payload", zap.Error(err))
			return fmt.Errorf("decode reminder: %v: %w", err, asynq.SkipRetry)
		}

		logger.Info("triggering booking reminder",
			zap.String("bookingID", p.BookingID),
			zap.String("fireDate", p.FireDate))

		if err := reminders.SendReminder(ctx, p.BookingID); err != nil {
			logger.Warn("failed to send reminder", zap.String("bookingID", p.BookingID), zap.Error(err))
			return err
		}
		return nil
	}
}

// monitorRedisConnection pings the queue database periodically to detect
// failures at runtime.
func monitorRedisConnection(logger *zap.Logger) {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})
	defer client.Close()

	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()
	for range ticker.C {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := client.Ping(ctx).Err(); err != nil {
			logger.Warn("queue redis unreachable", zap.Error(err))
		}
		cancel()
	}
}
