package records

import (
	"context"
	"strings"

	"govconnect/models"
	"govconnect/utils"
)

func (s *DefaultRecordService) AddAttendee(ctx context.Context, actor models.Actor, req models.AddAttendeeRequest) (*models.Attendee, error) {
	req.NIC = strings.TrimSpace(req.NIC)
	req.Name = strings.TrimSpace(req.Name)
	if req.NIC == "" || req.Name == "" {
		return nil, utils.Validation("nic and name are required")
	}
	appt, err := s.GetAppointment(ctx, actor, req.AppointmentID)
	if err != nil {
		return nil, err
	}

	attendee := &models.Attendee{
		ID:            s.NewID(),
		AppointmentID: appt.ID,
		NIC:           req.NIC,
		Name:          req.Name,
		Phone:         strings.TrimSpace(req.Phone),
		AddedBy:       actor.Role(),
		CreatedAt:     s.Now(),
	}
	if err := s.Repo.InsertAttendee(ctx, attendee); err != nil {
		return nil, classify(err, "failed to add attendee")
	}
	return attendee, nil
}

func (s *DefaultRecordService) ListAttendees(ctx context.Context, actor models.Actor, appointmentID string) ([]models.Attendee, error) {
	appt, err := s.GetAppointment(ctx, actor, appointmentID)
	if err != nil {
		return nil, err
	}
	attendees, err := s.Repo.ListAttendees(ctx, appt.ID)
	if err != nil {
		return nil, utils.Internal(err, "failed to list attendees")
	}
	return attendees, nil
}

func (s *DefaultRecordService) RemoveAttendee(ctx context.Context, actor models.Actor, attendeeID string) error {
	if strings.TrimSpace(attendeeID) == "" {
		return utils.Validation("attendee_id is required")
	}
	attendee, err := s.Repo.GetAttendee(ctx, attendeeID)
	if err != nil {
		return classify(err, "failed to load attendee")
	}
	if _, err := s.GetAppointment(ctx, actor, attendee.AppointmentID); err != nil {
		return err
	}
	return classify(s.Repo.DeleteAttendee(ctx, attendeeID), "failed to remove attendee")
}
