package recordsRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"govconnect/models"
	"govconnect/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const opTimeout = 5 * time.Second

// InsertAppointment stores appt. A second live appointment for the same slot key
// violates the unique index and is reported as SlotUnavailable.
func (r *mongoRecordRepo) InsertAppointment(ctx context.Context, appt *models.Appointment) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	_, err := r.appointments.InsertOne(ctx, appt)
	if mongo.IsDuplicateKeyError(err) {
		return utils.SlotUnavailable("time slot %q on %s is no longer available", appt.TimeSlot, appt.Date)
	}
	if err != nil {
		return fmt.Errorf("insert appointment failed: %w", err)
	}
	return nil
}

func (r *mongoRecordRepo) GetAppointment(ctx context.Context, id string) (*models.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var appt models.Appointment
	err := r.appointments.FindOne(ctx, bson.M{"id": id}).Decode(&appt)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, utils.NotFound("appointment %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("error fetching appointment %s: %w", id, err)
	}
	return &appt, nil
}

func (r *mongoRecordRepo) ListAppointmentsByUser(ctx context.Context, userID string) ([]models.Appointment, error) {
	return r.listAppointments(ctx, bson.M{"userId": userID})
}

func (r *mongoRecordRepo) ListAppointmentsByAuthority(ctx context.Context, authorityID string) ([]models.Appointment, error) {
	return r.listAppointments(ctx, bson.M{"authorityId": authorityID})
}

func (r *mongoRecordRepo) listAppointments(ctx context.Context, filter bson.M) ([]models.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}, {Key: "timeSlot", Value: 1}})
	cursor, err := r.appointments.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("error listing appointments: %w", err)
	}
	defer cursor.Close(ctx)

	appts := []models.Appointment{}
	if err := cursor.All(ctx, &appts); err != nil {
		return nil, fmt.Errorf("error decoding appointments: %w", err)
	}
	return appts, nil
}

func (r *mongoRecordRepo) SlotHeld(ctx context.Context, slotKey string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	n, err := r.appointments.CountDocuments(ctx, bson.M{"slotKey": slotKey}, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("error checking slot holder: %w", err)
	}
	return n > 0, nil
}

// DeleteAppointment removes the record; NotFound when another caller already did.
func (r *mongoRecordRepo) DeleteAppointment(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	res, err := r.appointments.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("error deleting appointment %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return utils.NotFound("appointment %s not found", id)
	}
	return nil
}

// SetOfficialComment replaces the comment and returns the appointment as it was
// before the update, so callers can report the transition.
func (r *mongoRecordRepo) SetOfficialComment(ctx context.Context, id, comment string) (*models.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{"officialComment": comment, "updatedAt": time.Now()}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.Before)

	var before models.Appointment
	err := r.appointments.FindOneAndUpdate(ctx, bson.M{"id": id}, update, opts).Decode(&before)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, utils.NotFound("appointment %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("error updating appointment %s: %w", id, err)
	}
	return &before, nil
}

// DeleteDependents clears attendees, attachment and feedback before the appointment
// itself goes, so no dependent is ever orphaned.
func (r *mongoRecordRepo) DeleteDependents(ctx context.Context, appointmentID string) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	filter := bson.M{"appointmentId": appointmentID}
	if _, err := r.attendees.DeleteMany(ctx, filter); err != nil {
		return fmt.Errorf("error deleting attendees of %s: %w", appointmentID, err)
	}
	if _, err := r.attachments.DeleteMany(ctx, filter); err != nil {
		return fmt.Errorf("error deleting attachment of %s: %w", appointmentID, err)
	}
	if _, err := r.feedback.DeleteMany(ctx, filter); err != nil {
		return fmt.Errorf("error deleting feedback of %s: %w", appointmentID, err)
	}
	return nil
}
