// File: database/repository/timeslot/crud.go
package timeslotRepo

import (
	"context"
	"fmt"
	"time"

	"govconnect/models"
	"govconnect/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const opTimeout = 5 * time.Second

func (r *mongoTimeSlotRepo) List(ctx context.Context, authorityID, date string) ([]models.FreeTime, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	filter := bson.M{
		"authorityId": authorityID,
		"slots.0":     bson.M{"$exists": true},
	}
	if date != "" {
		filter["date"] = date
	}
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}})

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch free times: %w", err)
	}
	defer cursor.Close(ctx)

	entries := []models.FreeTime{}
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, fmt.Errorf("error decoding free times: %w", err)
	}
	return entries, nil
}

func (r *mongoTimeSlotRepo) HasSlot(ctx context.Context, authorityID, date, label string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	n, err := r.coll.CountDocuments(ctx, bson.M{
		"authorityId": authorityID,
		"date":        date,
		"slots":       label,
	}, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("failed to check slot: %w", err)
	}
	return n > 0, nil
}

// AddSlot pushes label only when the entry does not already hold it. When the entry
// holds it the upsert tries to insert a second (authorityId, date) document and the
// unique index rejects it, which is reported as a conflict.
func (r *mongoTimeSlotRepo) AddSlot(ctx context.Context, authorityID, date, label string) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	filter := bson.M{
		"authorityId": authorityID,
		"date":        date,
		"slots":       bson.M{"$ne": label},
	}
	update := bson.M{
		"$push": bson.M{"slots": label},
		"$set":  bson.M{"updatedAt": time.Now()},
	}

	_, err := r.coll.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if mongo.IsDuplicateKeyError(err) {
		return utils.Conflict("time slot %q already exists for %s", label, date)
	}
	if err != nil {
		return fmt.Errorf("failed to add time slot: %w", err)
	}
	return nil
}

// TakeSlot is the compare-and-delete at the heart of allocation: the $pull only
// matches while label is still present, so of two concurrent callers exactly one
// sees MatchedCount == 1. An entry left without labels is deleted.
func (r *mongoTimeSlotRepo) TakeSlot(ctx context.Context, authorityID, date, label string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	filter := bson.M{
		"authorityId": authorityID,
		"date":        date,
		"slots":       label,
	}
	update := bson.M{
		"$pull": bson.M{"slots": label},
		"$set":  bson.M{"updatedAt": time.Now()},
	}

	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, fmt.Errorf("failed to take time slot: %w", err)
	}
	if res.MatchedCount == 0 {
		return false, nil
	}

	_, err = r.coll.DeleteOne(ctx, bson.M{
		"authorityId": authorityID,
		"date":        date,
		"slots":       bson.M{"$size": 0},
	})
	if err != nil {
		return true, fmt.Errorf("failed to delete empty free time entry: %w", err)
	}
	return true, nil
}

func (r *mongoTimeSlotRepo) ReopenSlot(ctx context.Context, authorityID, date, label string) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	filter := bson.M{"authorityId": authorityID, "date": date}
	update := bson.M{
		"$addToSet": bson.M{"slots": label},
		"$set":      bson.M{"updatedAt": time.Now()},
	}

	_, err := r.coll.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if mongo.IsDuplicateKeyError(err) {
		// Lost an upsert race against another writer creating the entry; the entry
		// exists now, so the plain $addToSet will match.
		_, err = r.coll.UpdateOne(ctx, filter, update)
	}
	if err != nil {
		return fmt.Errorf("failed to reopen time slot: %w", err)
	}
	return nil
}
