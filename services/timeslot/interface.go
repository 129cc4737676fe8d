package timeslot

import (
	"context"
	"fmt"
	"time"

	timeslotRepo "govconnect/database/repository/timeslot"
	"govconnect/models"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// LedgerService is the official-facing and citizen-facing view of the slot ledger.
type LedgerService interface {
	// ListOpenSlots returns an authority's open entries; empty date lists every date.
	ListOpenSlots(ctx context.Context, authorityID, date string) ([]models.FreeTime, error)
	AddSlot(ctx context.Context, actor models.Actor, authorityID, date, label string) error
	PublishSlot(ctx context.Context, actor models.Actor, req models.PublishSlotRequest) (string, error)
	PublishSlots(ctx context.Context, actor models.Actor, req models.PublishSlotsRequest) ([]models.PublishSlotResult, error)
	RemoveSlot(ctx context.Context, actor models.Actor, authorityID, date, label string) error
	// Invalidate drops cached listings after an out-of-band ledger change (bookings).
	Invalidate(ctx context.Context, authorityID, date string)
}

// SlotPublisher opens a label only while no appointment holds it. Implemented by the
// scheduler repository.
type SlotPublisher interface {
	PublishSlot(ctx context.Context, authorityID, date, label string) error
}

// DefaultLedgerService implements LedgerService over the Mongo ledger with an
// optional Redis read cache.
type DefaultLedgerService struct {
	Repo      timeslotRepo.TimeSlotRepository
	Publisher SlotPublisher
	Cache     *redis.Client
	CacheTTL  time.Duration
	Logger    *zap.Logger
}

// NewDefaultLedgerService wires the ledger service. cache may be nil.
func NewDefaultLedgerService(repo timeslotRepo.TimeSlotRepository, publisher SlotPublisher, cache *redis.Client, ttl time.Duration, logger *zap.Logger) (*DefaultLedgerService, error) {
	if repo == nil || publisher == nil {
		return nil, fmt.Errorf("ledger service initialization error: repository or publisher is nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DefaultLedgerService{
		Repo:      repo,
		Publisher: publisher,
		Cache:     cache,
		CacheTTL:  ttl,
		Logger:    logger,
	}, nil
}
