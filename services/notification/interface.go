package notification

import (
	"context"
	"fmt"
	"time"

	"govconnect/models"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// Notifier fires the messages that follow appointment state changes. Every method is
// best effort: failures are logged and never reach the caller.
type Notifier interface {
	NotifyConfirmation(ctx context.Context, appt *models.Appointment)
	NotifyCancellation(ctx context.Context, appt *models.Appointment, reason string, actor models.Actor)
	NotifyStatusChange(ctx context.Context, change models.StatusChange)
	ScheduleReminder(ctx context.Context, appt *models.Appointment)
}

// Enqueuer is the subset of *asynq.Client the notifier needs.
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// QueueNotifier hands notifications to the asynq queue so the triggering request never
// waits on delivery.
type QueueNotifier struct {
	Queue        Enqueuer
	Logger       *zap.Logger
	Location     *time.Location
	ReminderLead time.Duration
	Now          func() time.Time
}

func NewQueueNotifier(queue Enqueuer, logger *zap.Logger, loc *time.Location, reminderLead time.Duration) (*QueueNotifier, error) {
	if queue == nil {
		return nil, fmt.Errorf("notification service initialization error: queue is nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if loc == nil {
		loc = time.UTC
	}
	return &QueueNotifier{
		Queue:        queue,
		Logger:       logger,
		Location:     loc,
		ReminderLead: reminderLead,
		Now:          time.Now,
	}, nil
}
