package recordsRepo

import (
	"context"

	"govconnect/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// RecordRepository is the durable store of appointments and their dependents
// (attendees, attachment, feedback).
type RecordRepository interface {
	// Appointments.
	InsertAppointment(ctx context.Context, appt *models.Appointment) error
	GetAppointment(ctx context.Context, id string) (*models.Appointment, error)
	ListAppointmentsByUser(ctx context.Context, userID string) ([]models.Appointment, error)
	ListAppointmentsByAuthority(ctx context.Context, authorityID string) ([]models.Appointment, error)
	DeleteAppointment(ctx context.Context, id string) error
	SetOfficialComment(ctx context.Context, id, comment string) (*models.Appointment, error)
	// SlotHeld reports whether a live appointment holds slotKey.
	SlotHeld(ctx context.Context, slotKey string) (bool, error)

	// Attendees.
	InsertAttendee(ctx context.Context, attendee *models.Attendee) error
	GetAttendee(ctx context.Context, id string) (*models.Attendee, error)
	ListAttendees(ctx context.Context, appointmentID string) ([]models.Attendee, error)
	DeleteAttendee(ctx context.Context, id string) error

	// Attachments.
	AddFile(ctx context.Context, appointmentID, fileURL string) (*models.Attachment, error)
	GetAttachmentByAppointment(ctx context.Context, appointmentID string) (*models.Attachment, error)
	GetAttachment(ctx context.Context, id string) (*models.Attachment, error)
	RemoveFile(ctx context.Context, attachmentID, fileURL string) (*models.Attachment, error)

	// Feedback.
	InsertFeedback(ctx context.Context, fb *models.Feedback) error
	GetFeedback(ctx context.Context, appointmentID string) (*models.Feedback, error)
	UpdateFeedback(ctx context.Context, appointmentID string, rating *int, comment *string) (*models.Feedback, error)
	DeleteFeedback(ctx context.Context, appointmentID string) error
	ListFeedback(ctx context.Context, filter models.FeedbackFilter) ([]models.Feedback, error)

	// DeleteDependents removes attendees, attachment and feedback of an appointment.
	DeleteDependents(ctx context.Context, appointmentID string) error

	EnsureIndexes(ctx context.Context) error
}

type mongoRecordRepo struct {
	appointments *mongo.Collection
	attendees    *mongo.Collection
	attachments  *mongo.Collection
	feedback     *mongo.Collection
}

// NewMongoRecordRepo returns a new RecordRepository instance using MongoDB.
func NewMongoRecordRepo(db *mongo.Database) RecordRepository {
	return &mongoRecordRepo{
		appointments: db.Collection("appointments"),
		attendees:    db.Collection("attendees"),
		attachments:  db.Collection("attachments"),
		feedback:     db.Collection("feedback"),
	}
}
