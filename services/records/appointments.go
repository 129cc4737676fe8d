package records

import (
	"context"
	"strings"

	"govconnect/models"
	"govconnect/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func newID() string { return uuid.New().String() }

func (s *DefaultRecordService) GetAppointment(ctx context.Context, actor models.Actor, id string) (*models.Appointment, error) {
	if !actor.Valid() {
		return nil, utils.Unauthorized("authentication required")
	}
	if strings.TrimSpace(id) == "" {
		return nil, utils.Validation("appointment_id is required")
	}
	appt, err := s.Repo.GetAppointment(ctx, id)
	if err != nil {
		return nil, classify(err, "failed to load appointment")
	}
	if !actor.CanAccess(appt) {
		return nil, utils.Forbidden("not allowed to access appointment %s", id)
	}
	return appt, nil
}

func (s *DefaultRecordService) ListAppointments(ctx context.Context, actor models.Actor) ([]models.Appointment, error) {
	var (
		appts []models.Appointment
		err   error
	)
	switch {
	case actor.IsCitizen():
		appts, err = s.Repo.ListAppointmentsByUser(ctx, actor.UserID)
	case actor.IsOfficial():
		appts, err = s.Repo.ListAppointmentsByAuthority(ctx, actor.AuthorityID)
	default:
		return nil, utils.Unauthorized("authentication required")
	}
	if err != nil {
		return nil, utils.Internal(err, "failed to list appointments")
	}
	return appts, nil
}

// SetOfficialComment records an official's comment and tells the citizen about it.
func (s *DefaultRecordService) SetOfficialComment(ctx context.Context, actor models.Actor, id, comment string) (*models.Appointment, error) {
	if !actor.IsOfficial() {
		return nil, utils.Forbidden("only officials may comment on appointments")
	}
	comment = strings.TrimSpace(comment)
	if comment == "" {
		return nil, utils.Validation("comment is required")
	}
	appt, err := s.GetAppointment(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	before, err := s.Repo.SetOfficialComment(ctx, appt.ID, comment)
	if err != nil {
		return nil, classify(err, "failed to update appointment")
	}

	updated := *before
	updated.OfficialComment = comment
	updated.UpdatedAt = s.Now()

	s.Logger.Info("Official comment updated", zap.String("appointmentId", appt.ID), zap.String("authorityId", actor.AuthorityID))
	s.Notifier.NotifyStatusChange(ctx, models.StatusChange{
		Subject:  "appointment",
		ID:       appt.ID,
		UserID:   appt.UserID,
		Previous: before.OfficialComment,
		Next:     comment,
	})
	return &updated, nil
}

// classify passes classified errors through and wraps storage failures.
func classify(err error, msg string) error {
	if err == nil || utils.KindOf(err) != utils.KindInternal {
		return err
	}
	return utils.Internal(err, "%s", msg)
}
