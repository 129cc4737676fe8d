package records

import (
	"context"
	"fmt"
	"time"

	recordsRepo "govconnect/database/repository/records"
	"govconnect/models"
	"govconnect/services/notification"

	"go.uber.org/zap"
)

// RecordService exposes appointments and their dependents to citizens and officials.
// Every call is scoped by the actor: a citizen sees their own appointments, an
// official those of their authority.
type RecordService interface {
	// Appointments
	GetAppointment(ctx context.Context, actor models.Actor, id string) (*models.Appointment, error)
	ListAppointments(ctx context.Context, actor models.Actor) ([]models.Appointment, error)
	SetOfficialComment(ctx context.Context, actor models.Actor, id, comment string) (*models.Appointment, error)

	// Attendees
	AddAttendee(ctx context.Context, actor models.Actor, req models.AddAttendeeRequest) (*models.Attendee, error)
	ListAttendees(ctx context.Context, actor models.Actor, appointmentID string) ([]models.Attendee, error)
	RemoveAttendee(ctx context.Context, actor models.Actor, attendeeID string) error

	// Attachments
	AddFile(ctx context.Context, actor models.Actor, req models.AddFileRequest) (*models.Attachment, error)
	GetAttachment(ctx context.Context, actor models.Actor, appointmentID string) (*models.Attachment, error)
	RemoveFile(ctx context.Context, actor models.Actor, req models.RemoveFileRequest) (*models.Attachment, error)

	// Feedback
	CreateFeedback(ctx context.Context, actor models.Actor, req models.CreateFeedbackRequest) (*models.Feedback, error)
	GetFeedback(ctx context.Context, actor models.Actor, appointmentID string) (*models.Feedback, error)
	UpdateFeedback(ctx context.Context, actor models.Actor, appointmentID string, req models.UpdateFeedbackRequest) (*models.Feedback, error)
	DeleteFeedback(ctx context.Context, actor models.Actor, appointmentID string) error
	ListFeedback(ctx context.Context, filter models.FeedbackFilter) ([]models.Feedback, error)
}

// DefaultRecordService is the production implementation.
type DefaultRecordService struct {
	Repo     recordsRepo.RecordRepository
	Notifier notification.Notifier
	Logger   *zap.Logger
	Now      func() time.Time
	NewID    func() string
}

func NewDefaultRecordService(repo recordsRepo.RecordRepository, notifier notification.Notifier, logger *zap.Logger) (*DefaultRecordService, error) {
	if repo == nil || notifier == nil {
		return nil, fmt.Errorf("record service initialization error: repository or notifier is nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DefaultRecordService{
		Repo:     repo,
		Notifier: notifier,
		Logger:   logger,
		Now:      time.Now,
		NewID:    newID,
	}, nil
}
