package booking

import (
	"context"
	"strings"

	"govconnect/models"
	"govconnect/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func newAppointmentID() string {
	return uuid.New().String()
}

// Book turns an open slot into an appointment. The label check up front fails fast;
// exclusivity itself comes from the scheduler's conditional writes, so of two
// concurrent requests for one slot exactly one succeeds.
func (s *DefaultAllocationService) Book(ctx context.Context, req models.BookRequest) (*models.Appointment, error) {
	// Step 1: validate
	if err := validateBookRequest(&req); err != nil {
		return nil, err
	}
	if s.Authorities != nil {
		if _, err := s.Authorities.GetByID(ctx, req.AuthorityID); err != nil {
			if utils.IsKind(err, utils.KindNotFound) {
				return nil, err
			}
			return nil, utils.Internal(err, "failed to load authority")
		}
	}

	// Step 2: slot must be open
	open, err := s.Slots.HasSlot(ctx, req.AuthorityID, req.Date, req.TimeSlot)
	if err != nil {
		return nil, utils.Internal(err, "failed to check slot availability")
	}
	if !open {
		return nil, utils.SlotUnavailable("time slot %q on %s is not available", req.TimeSlot, req.Date)
	}

	// Step 3: record the appointment and consume the label together
	now := s.Now()
	appt := &models.Appointment{
		ID:          s.NewID(),
		UserID:      req.UserID,
		AuthorityID: req.AuthorityID,
		Date:        req.Date,
		TimeSlot:    req.TimeSlot,
		SlotKey:     models.SlotKeyFor(req.AuthorityID, req.Date, req.TimeSlot),
		IssueID:     req.IssueID,
		Status:      models.AppointmentStatusBooked,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.Scheduler.BookSlot(ctx, appt); err != nil {
		if utils.IsKind(err, utils.KindSlotUnavailable) {
			s.Logger.Info("Booking lost slot race",
				zap.String("authorityId", req.AuthorityID),
				zap.String("date", req.Date),
				zap.String("timeSlot", req.TimeSlot),
			)
			return nil, err
		}
		return nil, utils.Internal(err, "booking transaction failed")
	}
	s.Logger.Info("Appointment booked",
		zap.String("appointmentId", appt.ID),
		zap.String("authorityId", appt.AuthorityID),
		zap.String("date", appt.Date),
		zap.String("timeSlot", appt.TimeSlot),
	)

	// Step 4: side effects never fail the booking
	if s.Cache != nil {
		s.Cache.Invalidate(ctx, appt.AuthorityID, appt.Date)
	}
	s.Notifier.NotifyConfirmation(ctx, appt)
	s.Notifier.ScheduleReminder(ctx, appt)

	return appt, nil
}

func validateBookRequest(req *models.BookRequest) error {
	req.UserID = strings.TrimSpace(req.UserID)
	req.AuthorityID = strings.TrimSpace(req.AuthorityID)
	req.Date = strings.TrimSpace(req.Date)
	req.IssueID = strings.TrimSpace(req.IssueID)

	if req.UserID == "" {
		return utils.Validation("user_id is required")
	}
	if req.AuthorityID == "" {
		return utils.Validation("authority_id is required")
	}
	if req.Date == "" || req.TimeSlot == "" {
		return utils.Validation("date and time_slot are required")
	}
	if _, err := utils.ParseDate(req.Date); err != nil {
		return err
	}
	window, err := models.ParseSlotLabel(strings.TrimSpace(req.TimeSlot))
	if err != nil {
		return utils.Validation("%s", err.Error())
	}
	req.TimeSlot = window.Label()
	return nil
}
