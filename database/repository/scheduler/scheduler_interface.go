package schedulerRepo

import (
	"context"

	"govconnect/models"
)

// SchedulerRepository performs the multi-collection writes that move a slot between
// the ledger and the record store. Each call either completes entirely or leaves both
// stores as they were.
type SchedulerRepository interface {
	// BookSlot records appt and removes its label from the ledger. SlotUnavailable
	// when the label is gone or another appointment holds the slot.
	BookSlot(ctx context.Context, appt *models.Appointment) error
	// CancelAppointment deletes appt with its dependents and re-opens its label.
	// NotFound when the appointment was already removed.
	CancelAppointment(ctx context.Context, appt *models.Appointment) error
	// PublishSlot opens label unless it is already open (Conflict) or a live
	// appointment holds it (Conflict).
	PublishSlot(ctx context.Context, authorityID, date, label string) error
}
