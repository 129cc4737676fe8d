package notification

import (
	"context"
	"fmt"

	"govconnect/models"
	"govconnect/services/tasks"
	"govconnect/utils"

	"go.uber.org/zap"
)

const (
	TargetUser      = "user"
	TargetAuthority = "authority"
)

func (n *QueueNotifier) NotifyConfirmation(ctx context.Context, appt *models.Appointment) {
	data := appointmentData(appt)
	n.enqueue(ctx, models.Notification{
		Type:          models.NotificationConfirmation,
		Target:        TargetUser,
		TargetID:      appt.UserID,
		AppointmentID: appt.ID,
		Title:         "Appointment confirmed",
		Body:          fmt.Sprintf("Your appointment on %s at %s is confirmed.", appt.Date, appt.TimeSlot),
		Data:          data,
	})
	n.enqueue(ctx, models.Notification{
		Type:          models.NotificationConfirmation,
		Target:        TargetAuthority,
		TargetID:      appt.AuthorityID,
		AppointmentID: appt.ID,
		Title:         "New appointment booked",
		Body:          fmt.Sprintf("A citizen booked %s on %s.", appt.TimeSlot, appt.Date),
		Data:          data,
	})
}

func (n *QueueNotifier) NotifyCancellation(ctx context.Context, appt *models.Appointment, reason string, actor models.Actor) {
	data := appointmentData(appt)
	data["cancelledBy"] = actor.Role()
	data["reason"] = reason

	body := fmt.Sprintf("The appointment on %s at %s was cancelled. %s", appt.Date, appt.TimeSlot, reason)
	n.enqueue(ctx, models.Notification{
		Type:          models.NotificationCancellation,
		Target:        TargetUser,
		TargetID:      appt.UserID,
		AppointmentID: appt.ID,
		Title:         "Appointment cancelled",
		Body:          body,
		Data:          data,
	})
	n.enqueue(ctx, models.Notification{
		Type:          models.NotificationCancellation,
		Target:        TargetAuthority,
		TargetID:      appt.AuthorityID,
		AppointmentID: appt.ID,
		Title:         "Appointment cancelled",
		Body:          body,
		Data:          data,
	})
}

func (n *QueueNotifier) NotifyStatusChange(ctx context.Context, change models.StatusChange) {
	if change.UserID == "" {
		return
	}
	n.enqueue(ctx, models.Notification{
		Type:          models.NotificationStatusChange,
		Target:        TargetUser,
		TargetID:      change.UserID,
		AppointmentID: change.ID,
		Title:         fmt.Sprintf("Your %s was updated", change.Subject),
		Body:          change.Next,
		Data: map[string]string{
			"subject":  change.Subject,
			"id":       change.ID,
			"previous": change.Previous,
			"next":     change.Next,
		},
	})
}

// ScheduleReminder queues a reminder ReminderLead before the slot starts. Appointments
// already inside the lead window get none.
func (n *QueueNotifier) ScheduleReminder(ctx context.Context, appt *models.Appointment) {
	if n.ReminderLead <= 0 {
		return
	}
	start, err := utils.SlotStart(appt.Date, appt.TimeSlot, n.Location)
	if err != nil {
		n.Logger.Warn("Cannot schedule reminder", zap.String("appointmentId", appt.ID), zap.Error(err))
		return
	}
	fireAt := start.Add(-n.ReminderLead)
	if !fireAt.After(n.Now()) {
		return
	}

	task, opts, err := tasks.NewReminderTask(models.Notification{
		Type:          models.NotificationReminder,
		Target:        TargetUser,
		TargetID:      appt.UserID,
		AppointmentID: appt.ID,
		Title:         "Upcoming appointment",
		Body:          fmt.Sprintf("Reminder: your appointment is on %s at %s.", appt.Date, appt.TimeSlot),
		Data:          appointmentData(appt),
	}, fireAt)
	if err != nil {
		n.Logger.Error("Failed to build reminder task", zap.String("appointmentId", appt.ID), zap.Error(err))
		return
	}
	if _, err := n.Queue.EnqueueContext(ctx, task, opts...); err != nil {
		n.Logger.Error("Failed to schedule reminder", zap.String("appointmentId", appt.ID), zap.Error(err))
		return
	}
	n.Logger.Info("Reminder scheduled", zap.String("appointmentId", appt.ID), zap.Time("fireAt", fireAt))
}

func (n *QueueNotifier) enqueue(ctx context.Context, msg models.Notification) {
	task, opts, err := tasks.NewNotificationTask(msg)
	if err != nil {
		n.Logger.Error("Failed to build notification task", zap.String("type", msg.Type), zap.Error(err))
		return
	}
	if _, err := n.Queue.EnqueueContext(ctx, task, opts...); err != nil {
		n.Logger.Error("Failed to enqueue notification",
			zap.String("type", msg.Type),
			zap.String("target", msg.Target),
			zap.String("appointmentId", msg.AppointmentID),
			zap.Error(err),
		)
	}
}

func appointmentData(appt *models.Appointment) map[string]string {
	return map[string]string{
		"appointmentId": appt.ID,
		"authorityId":   appt.AuthorityID,
		"date":          appt.Date,
		"timeSlot":      appt.TimeSlot,
	}
}
