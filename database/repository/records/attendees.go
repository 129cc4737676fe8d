package recordsRepo

import (
	"context"
	"errors"
	"fmt"

	"govconnect/models"
	"govconnect/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (r *mongoRecordRepo) InsertAttendee(ctx context.Context, attendee *models.Attendee) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	if _, err := r.attendees.InsertOne(ctx, attendee); err != nil {
		return fmt.Errorf("insert attendee failed: %w", err)
	}
	return nil
}

func (r *mongoRecordRepo) GetAttendee(ctx context.Context, id string) (*models.Attendee, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var attendee models.Attendee
	err := r.attendees.FindOne(ctx, bson.M{"id": id}).Decode(&attendee)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, utils.NotFound("attendee %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("error fetching attendee %s: %w", id, err)
	}
	return &attendee, nil
}

func (r *mongoRecordRepo) ListAttendees(ctx context.Context, appointmentID string) ([]models.Attendee, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	cursor, err := r.attendees.Find(ctx, bson.M{"appointmentId": appointmentID}, opts)
	if err != nil {
		return nil, fmt.Errorf("error listing attendees: %w", err)
	}
	defer cursor.Close(ctx)

	attendees := []models.Attendee{}
	if err := cursor.All(ctx, &attendees); err != nil {
		return nil, fmt.Errorf("error decoding attendees: %w", err)
	}
	return attendees, nil
}

func (r *mongoRecordRepo) DeleteAttendee(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	res, err := r.attendees.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("error deleting attendee %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return utils.NotFound("attendee %s not found", id)
	}
	return nil
}
