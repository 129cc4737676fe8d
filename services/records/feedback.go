package records

import (
	"context"
	"strings"

	"govconnect/models"
	"govconnect/utils"
)

const (
	minRating = 1
	maxRating = 5
)

// CreateFeedback rates an appointment. Only the citizen who booked it may, and only once.
func (s *DefaultRecordService) CreateFeedback(ctx context.Context, actor models.Actor, req models.CreateFeedbackRequest) (*models.Feedback, error) {
	if !actor.IsCitizen() {
		return nil, utils.Forbidden("only the citizen who booked may leave feedback")
	}
	if err := validateRating(req.Rating); err != nil {
		return nil, err
	}
	appt, err := s.GetAppointment(ctx, actor, req.AppointmentID)
	if err != nil {
		return nil, err
	}

	now := s.Now()
	fb := &models.Feedback{
		ID:            s.NewID(),
		AppointmentID: appt.ID,
		AuthorityID:   appt.AuthorityID,
		Rating:        req.Rating,
		Comment:       strings.TrimSpace(req.Comment),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.Repo.InsertFeedback(ctx, fb); err != nil {
		return nil, classify(err, "failed to save feedback")
	}
	return fb, nil
}

func (s *DefaultRecordService) GetFeedback(ctx context.Context, actor models.Actor, appointmentID string) (*models.Feedback, error) {
	appt, err := s.GetAppointment(ctx, actor, appointmentID)
	if err != nil {
		return nil, err
	}
	fb, err := s.Repo.GetFeedback(ctx, appt.ID)
	if err != nil {
		return nil, classify(err, "failed to load feedback")
	}
	return fb, nil
}

func (s *DefaultRecordService) UpdateFeedback(ctx context.Context, actor models.Actor, appointmentID string, req models.UpdateFeedbackRequest) (*models.Feedback, error) {
	if !actor.IsCitizen() {
		return nil, utils.Forbidden("only the citizen who booked may edit feedback")
	}
	if req.Rating == nil && req.Comment == nil {
		return nil, utils.Validation("nothing to update")
	}
	if req.Rating != nil {
		if err := validateRating(*req.Rating); err != nil {
			return nil, err
		}
	}
	if req.Comment != nil {
		trimmed := strings.TrimSpace(*req.Comment)
		req.Comment = &trimmed
	}
	appt, err := s.GetAppointment(ctx, actor, appointmentID)
	if err != nil {
		return nil, err
	}
	fb, err := s.Repo.UpdateFeedback(ctx, appt.ID, req.Rating, req.Comment)
	if err != nil {
		return nil, classify(err, "failed to update feedback")
	}
	return fb, nil
}

func (s *DefaultRecordService) DeleteFeedback(ctx context.Context, actor models.Actor, appointmentID string) error {
	if !actor.IsCitizen() {
		return utils.Forbidden("only the citizen who booked may delete feedback")
	}
	appt, err := s.GetAppointment(ctx, actor, appointmentID)
	if err != nil {
		return err
	}
	return classify(s.Repo.DeleteFeedback(ctx, appt.ID), "failed to delete feedback")
}

func (s *DefaultRecordService) ListFeedback(ctx context.Context, filter models.FeedbackFilter) ([]models.Feedback, error) {
	if filter.Limit < 0 || filter.Offset < 0 {
		return nil, utils.Validation("limit and offset must not be negative")
	}
	if filter.Limit == 0 || filter.Limit > 100 {
		filter.Limit = 100
	}
	out, err := s.Repo.ListFeedback(ctx, filter)
	if err != nil {
		return nil, utils.Internal(err, "failed to list feedback")
	}
	return out, nil
}

func validateRating(rating int) error {
	if rating < minRating || rating > maxRating {
		return utils.Validation("rating must be between %d and %d", minRating, maxRating)
	}
	return nil
}
