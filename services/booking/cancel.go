package booking

import (
	"context"
	"fmt"
	"strings"

	"govconnect/models"
	"govconnect/utils"

	"go.uber.org/zap"
)

// Cancel deletes an appointment on behalf of its citizen or an official of its
// authority and re-opens the slot. A concurrent cancel of the same appointment
// reports NotFound and leaves the ledger untouched.
func (s *DefaultAllocationService) Cancel(ctx context.Context, appointmentID, reason string, actor models.Actor) (*models.Appointment, error) {
	if !actor.Valid() {
		return nil, utils.Forbidden("cancellation must be made by the citizen or an official")
	}
	appointmentID = strings.TrimSpace(appointmentID)
	reason = strings.TrimSpace(reason)
	if appointmentID == "" {
		return nil, utils.Validation("appointment_id is required")
	}
	if reason == "" {
		return nil, utils.Validation("a cancellation reason is required")
	}

	appt, err := s.Records.GetAppointment(ctx, appointmentID)
	if err != nil {
		if utils.IsKind(err, utils.KindNotFound) {
			return nil, err
		}
		return nil, utils.Internal(err, "failed to load appointment")
	}
	if !actor.CanAccess(appt) {
		return nil, utils.Forbidden("not allowed to cancel appointment %s", appointmentID)
	}

	if err := s.Scheduler.CancelAppointment(ctx, appt); err != nil {
		if utils.IsKind(err, utils.KindNotFound) {
			return nil, err
		}
		return nil, utils.Internal(err, "cancellation transaction failed")
	}
	s.Logger.Info("Appointment cancelled",
		zap.String("appointmentId", appt.ID),
		zap.String("by", utils.DescribeActor(actor)),
	)

	if s.Cache != nil {
		s.Cache.Invalidate(ctx, appt.AuthorityID, appt.Date)
	}
	s.Notifier.NotifyCancellation(ctx, appt, cancellationMessage(actor, reason), actor)

	return appt, nil
}

func cancellationMessage(actor models.Actor, reason string) string {
	return fmt.Sprintf("Cancelled by %s: %s", actor.Role(), reason)
}
