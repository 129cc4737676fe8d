package recordsRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the indexes the record store's invariants depend on.
func (r *mongoRecordRepo) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	plan := []struct {
		coll   *mongo.Collection
		models []mongo.IndexModel
	}{
		{r.appointments, []mongo.IndexModel{
			{
				Keys:    bson.D{{Key: "id", Value: 1}},
				Options: options.Index().SetUnique(true).SetName("unique_id"),
			},
			// At most one live appointment per (authority, date, label).
			{
				Keys:    bson.D{{Key: "slotKey", Value: 1}},
				Options: options.Index().SetUnique(true).SetName("unique_slot_key"),
			},
			{
				Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "date", Value: 1}},
				Options: options.Index().SetName("user_date_idx"),
			},
			{
				Keys:    bson.D{{Key: "authorityId", Value: 1}, {Key: "date", Value: 1}},
				Options: options.Index().SetName("authority_date_idx"),
			},
		}},
		{r.attendees, []mongo.IndexModel{
			{
				Keys:    bson.D{{Key: "id", Value: 1}},
				Options: options.Index().SetUnique(true).SetName("unique_id"),
			},
			{
				Keys:    bson.D{{Key: "appointmentId", Value: 1}},
				Options: options.Index().SetName("appointment_idx"),
			},
		}},
		{r.attachments, []mongo.IndexModel{
			{
				Keys:    bson.D{{Key: "appointmentId", Value: 1}},
				Options: options.Index().SetUnique(true).SetName("unique_appointment"),
			},
			{
				Keys:    bson.D{{Key: "id", Value: 1}},
				Options: options.Index().SetUnique(true).SetName("unique_id"),
			},
		}},
		{r.feedback, []mongo.IndexModel{
			{
				Keys:    bson.D{{Key: "appointmentId", Value: 1}},
				Options: options.Index().SetUnique(true).SetName("unique_appointment"),
			},
			{
				Keys:    bson.D{{Key: "authorityId", Value: 1}, {Key: "createdAt", Value: -1}},
				Options: options.Index().SetName("authority_created_idx"),
			},
		}},
	}

	for _, p := range plan {
		if _, err := p.coll.Indexes().CreateMany(ctx, p.models); err != nil {
			return fmt.Errorf("failed to create %s indexes: %w", p.coll.Name(), err)
		}
	}
	return nil
}
