// File: database/repository/timeslot/interface.go
package timeslotRepo

import (
	"context"

	"govconnect/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// TimeSlotRepository is the slot ledger: per-authority, per-date open slot labels.
// Every mutation is a single conditional write so callers inside or outside a
// transaction observe the same exclusivity.
type TimeSlotRepository interface {
	// List returns the open entries of an authority; an empty date lists every date.
	List(ctx context.Context, authorityID, date string) ([]models.FreeTime, error)
	HasSlot(ctx context.Context, authorityID, date, label string) (bool, error)
	// AddSlot opens label, creating the entry when absent. Duplicate → Conflict.
	AddSlot(ctx context.Context, authorityID, date, label string) error
	// TakeSlot removes label if present and reports whether this call removed it.
	TakeSlot(ctx context.Context, authorityID, date, label string) (bool, error)
	// ReopenSlot puts label back, creating the entry when absent. Idempotent.
	ReopenSlot(ctx context.Context, authorityID, date, label string) error
	EnsureIndexes(ctx context.Context) error
}

type mongoTimeSlotRepo struct {
	coll *mongo.Collection
}

// NewMongoTimeSlotRepo constructs a new MongoDB TimeSlotRepository.
func NewMongoTimeSlotRepo(db *mongo.Database) TimeSlotRepository {
	return &mongoTimeSlotRepo{
		coll: db.Collection("free_times"),
	}
}
