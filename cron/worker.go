package cron

import (
	"context"
	"fmt"
	"time"

	"govconnect/config"
	"govconnect/models"
	"govconnect/services/notification"
	"govconnect/services/tasks"
	"govconnect/utils"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// AppointmentLookup lets the reminder handler drop reminders of cancelled appointments.
type AppointmentLookup interface {
	GetAppointment(ctx context.Context, id string) (*models.Appointment, error)
}

// RedisClientOpt returns the asynq connection settings for the notification queue.
func RedisClientOpt() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}
}

// NewServeMux routes notification and reminder tasks to sender.
func NewServeMux(sender notification.Sender, lookup AppointmentLookup, logger *zap.Logger) *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeSendNotification, handleNotificationTask(sender, logger))
	mux.HandleFunc(tasks.TypeSendReminder, handleReminderTask(sender, lookup, logger))
	return mux
}

// InitNotificationWorker runs the async worker in background and returns the server so
// the caller can shut it down.
func InitNotificationWorker(ctx context.Context, sender notification.Sender, lookup AppointmentLookup, logger *zap.Logger) *asynq.Server {
	srv := asynq.NewServer(
		RedisClientOpt(),
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
			Logger: logger.Sugar(),
		},
	)
	mux := NewServeMux(sender, lookup, logger)

	go monitorQueueConnection(ctx, logger)

	// Start async worker with retry logic
	go func() {
		logger.Info("Starting notification worker")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			err := srv.Run(mux)
			if err == nil {
				return
			}
			logger.Error("Notification worker failed to start",
				zap.Int("attempt", attempts),
				zap.Int("maxAttempts", maxAttempts),
				zap.Error(err),
			)
			if attempts == maxAttempts {
				logger.Error("Max retry attempts reached; notifications will not be delivered")
				return
			}
			select {
			case <-ctx.Done():
				return
			case <-time.After(time.Duration(attempts*2) * time.Second):
			}
		}
	}()
	return srv
}

func handleNotificationTask(sender notification.Sender, logger *zap.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		n, err := tasks.ParseNotification(task)
		if err != nil {
			logger.Error("Invalid notification payload", zap.Error(err))
			return fmt.Errorf("invalid payload: %v: %w", err, asynq.SkipRetry)
		}
		return deliver(ctx, sender, n, logger)
	}
}

func handleReminderTask(sender notification.Sender, lookup AppointmentLookup, logger *zap.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		n, err := tasks.ParseNotification(task)
		if err != nil {
			logger.Error("Invalid reminder payload", zap.Error(err))
			return fmt.Errorf("invalid payload: %v: %w", err, asynq.SkipRetry)
		}

		if lookup != nil {
			if _, err := lookup.GetAppointment(ctx, n.AppointmentID); err != nil {
				if utils.IsKind(err, utils.KindNotFound) {
					logger.Info("Skipping reminder of cancelled appointment", zap.String("appointmentId", n.AppointmentID))
					return nil
				}
				return err
			}
		}
		return deliver(ctx, sender, n, logger)
	}
}

func deliver(ctx context.Context, sender notification.Sender, n models.Notification, logger *zap.Logger) error {
	if n.Target != notification.TargetUser && n.Target != notification.TargetAuthority {
		logger.Warn("Unknown notification target", zap.String("target", n.Target))
		return nil
	}
	if err := sender.Send(ctx, n); err != nil {
		logger.Error("Failed to send notification",
			zap.String("type", n.Type),
			zap.String("appointmentId", n.AppointmentID),
			zap.Error(err),
		)
		return err
	}
	return nil
}

// monitorQueueConnection pings the queue's Redis periodically to detect failures at runtime.
func monitorQueueConnection(ctx context.Context, logger *zap.Logger) {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})
	defer client.Close()

	ticker := time.NewTicker(10 * time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := client.Ping(ctx).Err(); err != nil {
				logger.Warn("Notification queue Redis connection lost", zap.Error(err))
			}
		}
	}
}
