package schedulerRepo

import (
	"context"
	"errors"

	"govconnect/database"
	"govconnect/models"
	"govconnect/utils"

	"go.uber.org/zap"
)

var errSlotTaken = errors.New("slot taken by a concurrent booking")

func (repo *MongoSchedulerRepo) BookSlot(ctx context.Context, appt *models.Appointment) error {
	err := database.RunInTransaction(ctx, repo.client, repo.transactional, func(ctx context.Context) error {
		if err := repo.records.InsertAppointment(ctx, appt); err != nil {
			return err
		}

		taken, err := repo.slots.TakeSlot(ctx, appt.AuthorityID, appt.Date, appt.TimeSlot)
		if taken && err != nil && !repo.transactional {
			// The label is gone; only the empty-entry cleanup failed and List hides it.
			repo.logger.Warn("Empty free time entry left behind", zap.String("appointmentId", appt.ID), zap.Error(err))
			return nil
		}
		if err != nil {
			return err
		}
		if !taken {
			return errSlotTaken
		}
		return nil
	})
	if err == nil {
		return nil
	}

	if !repo.transactional {
		repo.compensateBooking(ctx, appt, err)
	}
	if errors.Is(err, errSlotTaken) {
		return utils.SlotUnavailable("time slot %q on %s is no longer available", appt.TimeSlot, appt.Date)
	}
	return err
}

// compensateBooking undoes the appointment insert of a failed non-transactional
// booking. A duplicate-key rejection never inserted anything.
func (repo *MongoSchedulerRepo) compensateBooking(ctx context.Context, appt *models.Appointment, cause error) {
	if utils.IsKind(cause, utils.KindSlotUnavailable) {
		return
	}
	if err := repo.records.DeleteAppointment(context.WithoutCancel(ctx), appt.ID); err != nil && !utils.IsKind(err, utils.KindNotFound) {
		repo.logger.Error("Failed to compensate booking",
			zap.String("appointmentId", appt.ID),
			zap.Error(err),
		)
	}
}

func (repo *MongoSchedulerRepo) CancelAppointment(ctx context.Context, appt *models.Appointment) error {
	return database.RunInTransaction(ctx, repo.client, repo.transactional, func(ctx context.Context) error {
		if err := repo.records.DeleteDependents(ctx, appt.ID); err != nil {
			return err
		}
		// Only the caller whose delete removed the record re-opens the label.
		if err := repo.records.DeleteAppointment(ctx, appt.ID); err != nil {
			return err
		}
		return repo.slots.ReopenSlot(ctx, appt.AuthorityID, appt.Date, appt.TimeSlot)
	})
}

func (repo *MongoSchedulerRepo) PublishSlot(ctx context.Context, authorityID, date, label string) error {
	slotKey := models.SlotKeyFor(authorityID, date, label)
	return database.RunInTransaction(ctx, repo.client, repo.transactional, func(ctx context.Context) error {
		if err := repo.ensureUnheld(ctx, slotKey, label, date); err != nil {
			return err
		}
		if err := repo.slots.AddSlot(ctx, authorityID, date, label); err != nil {
			return err
		}
		if repo.transactional {
			return nil
		}

		// Without a session a booking may have committed between the check and the
		// push; take the label back out if so.
		open, err := repo.slots.HasSlot(ctx, authorityID, date, label)
		if err != nil || !open {
			return err
		}
		if err := repo.ensureUnheld(ctx, slotKey, label, date); err != nil {
			if _, takeErr := repo.slots.TakeSlot(context.WithoutCancel(ctx), authorityID, date, label); takeErr != nil {
				repo.logger.Error("Failed to withdraw re-published slot",
					zap.String("slotKey", slotKey),
					zap.Error(takeErr),
				)
			}
			return err
		}
		return nil
	})
}

func (repo *MongoSchedulerRepo) ensureUnheld(ctx context.Context, slotKey, label, date string) error {
	held, err := repo.records.SlotHeld(ctx, slotKey)
	if err != nil {
		return err
	}
	if held {
		return utils.Conflict("time slot %q on %s is booked", label, date)
	}
	return nil
}
