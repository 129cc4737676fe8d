package booking

import (
	"context"
	"fmt"
	"time"

	authorityRepo "govconnect/database/repository/authority"
	recordsRepo "govconnect/database/repository/records"
	schedulerRepo "govconnect/database/repository/scheduler"
	timeslotRepo "govconnect/database/repository/timeslot"
	"govconnect/models"
	"govconnect/services/notification"

	"go.uber.org/zap"
)

// AllocationService books and cancels appointments against the slot ledger.
type AllocationService interface {
	Book(ctx context.Context, req models.BookRequest) (*models.Appointment, error)
	Cancel(ctx context.Context, appointmentID, reason string, actor models.Actor) (*models.Appointment, error)
}

// SlotCacheInvalidator drops cached ledger listings after a booking or cancellation.
type SlotCacheInvalidator interface {
	Invalidate(ctx context.Context, authorityID, date string)
}

// DefaultAllocationService is the production implementation.
type DefaultAllocationService struct {
	Slots       timeslotRepo.TimeSlotRepository
	Records     recordsRepo.RecordRepository
	Scheduler   schedulerRepo.SchedulerRepository
	Authorities authorityRepo.AuthorityRepository
	Cache       SlotCacheInvalidator
	Notifier    notification.Notifier
	Logger      *zap.Logger
	Now         func() time.Time
	NewID       func() string
}

// NewDefaultAllocationService wires the allocation engine. authorities and cache may be
// nil; every other dependency is required.
func NewDefaultAllocationService(
	slots timeslotRepo.TimeSlotRepository,
	records recordsRepo.RecordRepository,
	scheduler schedulerRepo.SchedulerRepository,
	authorities authorityRepo.AuthorityRepository,
	cache SlotCacheInvalidator,
	notifier notification.Notifier,
	logger *zap.Logger,
) (*DefaultAllocationService, error) {
	if slots == nil || records == nil || scheduler == nil || notifier == nil {
		return nil, fmt.Errorf("allocation service initialization error: one or more dependencies are nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DefaultAllocationService{
		Slots:       slots,
		Records:     records,
		Scheduler:   scheduler,
		Authorities: authorities,
		Cache:       cache,
		Notifier:    notifier,
		Logger:      logger,
		Now:         time.Now,
		NewID:       newAppointmentID,
	}, nil
}
