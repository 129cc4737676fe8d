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

// InsertFeedback stores fb; the unique appointmentId index turns a second feedback
// for the same appointment into a Conflict.
func (r *mongoRecordRepo) InsertFeedback(ctx context.Context, fb *models.Feedback) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	_, err := r.feedback.InsertOne(ctx, fb)
	if mongo.IsDuplicateKeyError(err) {
		return utils.Conflict("feedback already exists for appointment %s", fb.AppointmentID)
	}
	if err != nil {
		return fmt.Errorf("insert feedback failed: %w", err)
	}
	return nil
}

func (r *mongoRecordRepo) GetFeedback(ctx context.Context, appointmentID string) (*models.Feedback, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var fb models.Feedback
	err := r.feedback.FindOne(ctx, bson.M{"appointmentId": appointmentID}).Decode(&fb)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, utils.NotFound("feedback not found for appointment %s", appointmentID)
	}
	if err != nil {
		return nil, fmt.Errorf("error fetching feedback: %w", err)
	}
	return &fb, nil
}

func (r *mongoRecordRepo) UpdateFeedback(ctx context.Context, appointmentID string, rating *int, comment *string) (*models.Feedback, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	set := bson.M{"updatedAt": time.Now()}
	if rating != nil {
		set["rating"] = *rating
	}
	if comment != nil {
		set["comment"] = *comment
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var fb models.Feedback
	err := r.feedback.FindOneAndUpdate(ctx, bson.M{"appointmentId": appointmentID}, bson.M{"$set": set}, opts).Decode(&fb)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, utils.NotFound("feedback not found for appointment %s", appointmentID)
	}
	if err != nil {
		return nil, fmt.Errorf("error updating feedback: %w", err)
	}
	return &fb, nil
}

func (r *mongoRecordRepo) DeleteFeedback(ctx context.Context, appointmentID string) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	res, err := r.feedback.DeleteOne(ctx, bson.M{"appointmentId": appointmentID})
	if err != nil {
		return fmt.Errorf("error deleting feedback: %w", err)
	}
	if res.DeletedCount == 0 {
		return utils.NotFound("feedback not found for appointment %s", appointmentID)
	}
	return nil
}

func (r *mongoRecordRepo) ListFeedback(ctx context.Context, filter models.FeedbackFilter) ([]models.Feedback, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	query := bson.M{}
	if filter.AuthorityID != "" {
		query["authorityId"] = filter.AuthorityID
	}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	if filter.Limit > 0 {
		opts.SetLimit(filter.Limit)
	}
	if filter.Offset > 0 {
		opts.SetSkip(filter.Offset)
	}

	cursor, err := r.feedback.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("error listing feedback: %w", err)
	}
	defer cursor.Close(ctx)

	out := []models.Feedback{}
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("error decoding feedback: %w", err)
	}
	return out, nil
}
