package notification

import (
	"context"
	"errors"
	"testing"
	"time"

	"govconnect/models"
	"govconnect/services/tasks"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

type fakeQueue struct {
	tasks []*asynq.Task
	opts  [][]asynq.Option
	err   error
}

func (q *fakeQueue) EnqueueContext(_ context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error) {
	if q.err != nil {
		return nil, q.err
	}
	q.tasks = append(q.tasks, task)
	q.opts = append(q.opts, opts)
	return &asynq.TaskInfo{}, nil
}

func (q *fakeQueue) notifications(t *testing.T) []models.Notification {
	t.Helper()
	out := make([]models.Notification, 0, len(q.tasks))
	for _, task := range q.tasks {
		n, err := tasks.ParseNotification(task)
		if err != nil {
			t.Fatalf("ParseNotification: %v", err)
		}
		out = append(out, n)
	}
	return out
}

func newTestNotifier(t *testing.T, q Enqueuer, now time.Time) *QueueNotifier {
	t.Helper()
	n, err := NewQueueNotifier(q, zap.NewNop(), time.UTC, 24*time.Hour)
	if err != nil {
		t.Fatalf("NewQueueNotifier: %v", err)
	}
	n.Now = func() time.Time { return now }
	return n
}

var appt = &models.Appointment{
	ID:          "appt-1",
	UserID:      "user-1",
	AuthorityID: "auth-1",
	Date:        "2025-08-15",
	TimeSlot:    "10:00 - 10:30",
}

func TestConfirmationReachesBothSides(t *testing.T) {
	q := &fakeQueue{}
	newTestNotifier(t, q, time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)).NotifyConfirmation(context.Background(), appt)

	got := q.notifications(t)
	if len(got) != 2 {
		t.Fatalf("enqueued %d notifications, want 2", len(got))
	}
	if got[0].Target != TargetUser || got[0].TargetID != "user-1" {
		t.Errorf("first = %+v", got[0])
	}
	if got[1].Target != TargetAuthority || got[1].TargetID != "auth-1" {
		t.Errorf("second = %+v", got[1])
	}
	for _, task := range q.tasks {
		if task.Type() != tasks.TypeSendNotification {
			t.Errorf("task type = %q", task.Type())
		}
	}
}

func TestCancellationCarriesReason(t *testing.T) {
	q := &fakeQueue{}
	newTestNotifier(t, q, time.Now()).NotifyCancellation(context.Background(), appt, "Cancelled by official: closed", models.Official("auth-1"))

	got := q.notifications(t)
	if len(got) != 2 {
		t.Fatalf("enqueued %d notifications, want 2", len(got))
	}
	for _, n := range got {
		if n.Type != models.NotificationCancellation || n.Data["reason"] != "Cancelled by official: closed" || n.Data["cancelledBy"] != "official" {
			t.Errorf("notification = %+v", n)
		}
	}
}

func TestStatusChangeWithoutUserIsDropped(t *testing.T) {
	q := &fakeQueue{}
	n := newTestNotifier(t, q, time.Now())
	n.NotifyStatusChange(context.Background(), models.StatusChange{Subject: "issue", ID: "i-1"})
	if len(q.tasks) != 0 {
		t.Fatalf("enqueued %d tasks for a change without recipient", len(q.tasks))
	}
	n.NotifyStatusChange(context.Background(), models.StatusChange{Subject: "issue", ID: "i-1", UserID: "user-1", Next: "resolved"})
	if got := q.notifications(t); len(got) != 1 || got[0].Title != "Your issue was updated" {
		t.Fatalf("notifications = %+v", got)
	}
}

func TestScheduleReminder(t *testing.T) {
	q := &fakeQueue{}
	newTestNotifier(t, q, time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)).ScheduleReminder(context.Background(), appt)
	if len(q.tasks) != 1 {
		t.Fatalf("enqueued %d reminders, want 1", len(q.tasks))
	}
	if q.tasks[0].Type() != tasks.TypeSendReminder {
		t.Errorf("task type = %q", q.tasks[0].Type())
	}
	if len(q.opts[0]) == 0 {
		t.Errorf("reminder enqueued without scheduling options")
	}
}

func TestScheduleReminderSkipsInsideLead(t *testing.T) {
	q := &fakeQueue{}
	// Less than 24h before 10:00 on the 15th.
	newTestNotifier(t, q, time.Date(2025, 8, 14, 12, 0, 0, 0, time.UTC)).ScheduleReminder(context.Background(), appt)
	if len(q.tasks) != 0 {
		t.Fatalf("reminder enqueued inside lead window")
	}

	disabled := newTestNotifier(t, q, time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC))
	disabled.ReminderLead = 0
	disabled.ScheduleReminder(context.Background(), appt)
	if len(q.tasks) != 0 {
		t.Fatalf("reminder enqueued with lead disabled")
	}
}

func TestEnqueueFailureIsSwallowed(t *testing.T) {
	q := &fakeQueue{err: errors.New("redis down")}
	n := newTestNotifier(t, q, time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC))
	n.NotifyConfirmation(context.Background(), appt)
	n.NotifyCancellation(context.Background(), appt, "x", models.Citizen("user-1"))
	n.ScheduleReminder(context.Background(), appt)
}

func TestTopic(t *testing.T) {
	if got := Topic(TargetUser, "u1"); got != "user_u1" {
		t.Errorf("Topic(user) = %q", got)
	}
	if got := Topic(TargetAuthority, "a1"); got != "authority_a1" {
		t.Errorf("Topic(authority) = %q", got)
	}
}
