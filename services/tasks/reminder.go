package tasks

import (
	"encoding/json"
	"time"

	"govconnect/models"

	"github.com/hibiken/asynq"
)

const (
	TypeSendNotification = "notification:send"
	TypeSendReminder     = "reminder:send"
)

// NewNotificationTask wraps an immediate notification. Delivery is retried by the
// worker up to maxRetry times.
func NewNotificationTask(n models.Notification) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(n)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeSendNotification, b)
	opts := []asynq.Option{asynq.MaxRetry(5), asynq.Timeout(30 * time.Second)}

	return task, opts, nil
}

// NewReminderTask schedules n for fireAt. The task ID is derived from the appointment
// so a reminder is never queued twice.
func NewReminderTask(n models.Notification, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(n)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeSendReminder, b)
	opts := []asynq.Option{
		asynq.ProcessAt(fireAt),
		asynq.TaskID("reminder:" + n.AppointmentID),
		asynq.MaxRetry(3),
	}

	return task, opts, nil
}

// ParseNotification decodes the payload of either task type.
func ParseNotification(task *asynq.Task) (models.Notification, error) {
	var n models.Notification
	err := json.Unmarshal(task.Payload(), &n)
	return n, err
}
