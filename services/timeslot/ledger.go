package timeslot

import (
	"context"
	"errors"
	"strings"

	"govconnect/models"
	"govconnect/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

func (s *DefaultLedgerService) ListOpenSlots(ctx context.Context, authorityID, date string) ([]models.FreeTime, error) {
	if strings.TrimSpace(authorityID) == "" {
		return nil, utils.Validation("authority_id is required")
	}
	if date != "" {
		if _, err := utils.ParseDate(date); err != nil {
			return nil, err
		}
	}

	// The generation is read before the ledger so a listing loaded across an
	// invalidation is never written back.
	var gen int64
	fill := false
	if s.Cache != nil {
		cached, err := utils.GetSlotListing(ctx, s.Cache, authorityID, date)
		if err == nil {
			return cached, nil
		}
		if !errors.Is(err, redis.Nil) {
			s.Logger.Debug("Slot cache read failed", zap.String("authorityId", authorityID), zap.Error(err))
		}
		gen, err = utils.SlotGeneration(ctx, s.Cache, authorityID)
		fill = err == nil && s.CacheTTL > 0
	}

	entries, err := s.Repo.List(ctx, authorityID, date)
	if err != nil {
		return nil, utils.Internal(err, "failed to list open slots")
	}
	entries = dropEmpty(entries)

	if fill {
		if err := utils.SaveSlotListing(ctx, s.Cache, authorityID, date, gen, entries, s.CacheTTL); err != nil {
			s.Logger.Debug("Slot cache write skipped", zap.String("authorityId", authorityID), zap.Error(err))
		}
	}
	return entries, nil
}

func (s *DefaultLedgerService) AddSlot(ctx context.Context, actor models.Actor, authorityID, date, label string) error {
	if err := authorize(actor, authorityID); err != nil {
		return err
	}
	if _, err := utils.ParseDate(date); err != nil {
		return err
	}
	label, err := normalizeLabel(label)
	if err != nil {
		return err
	}

	if err := s.Publisher.PublishSlot(ctx, authorityID, date, label); err != nil {
		if utils.IsKind(err, utils.KindConflict) {
			return err
		}
		return utils.Internal(err, "failed to add time slot")
	}
	s.Invalidate(ctx, authorityID, date)

	s.Logger.Info("Time slot published",
		zap.String("authorityId", authorityID),
		zap.String("date", date),
		zap.String("label", label),
	)
	return nil
}

// PublishSlot opens one slot for the official's own authority. The request carries
// either a full label or separate start and end times.
func (s *DefaultLedgerService) PublishSlot(ctx context.Context, actor models.Actor, req models.PublishSlotRequest) (string, error) {
	label := strings.TrimSpace(req.Label)
	if label == "" {
		if req.StartTime == "" || req.EndTime == "" {
			return "", utils.Validation("either label or start_time and end_time are required")
		}
		label = models.ComposeSlotLabel(req.StartTime, req.EndTime)
	}
	label, err := normalizeLabel(label)
	if err != nil {
		return "", err
	}
	if err := s.AddSlot(ctx, actor, actor.AuthorityID, req.Date, label); err != nil {
		return "", err
	}
	return label, nil
}

// PublishSlots opens several labels on one date. Labels are validated up front; a
// duplicate is reported per label and does not stop the rest.
func (s *DefaultLedgerService) PublishSlots(ctx context.Context, actor models.Actor, req models.PublishSlotsRequest) ([]models.PublishSlotResult, error) {
	if err := authorize(actor, actor.AuthorityID); err != nil {
		return nil, err
	}
	if _, err := utils.ParseDate(req.Date); err != nil {
		return nil, err
	}
	if len(req.Labels) == 0 {
		return nil, utils.Validation("labels must not be empty")
	}

	labels := make([]string, 0, len(req.Labels))
	for _, raw := range req.Labels {
		label, err := normalizeLabel(raw)
		if err != nil {
			return nil, err
		}
		labels = append(labels, label)
	}

	results := make([]models.PublishSlotResult, 0, len(labels))
	for _, label := range labels {
		err := s.AddSlot(ctx, actor, actor.AuthorityID, req.Date, label)
		switch {
		case err == nil:
			results = append(results, models.PublishSlotResult{Label: label, Status: "added"})
		case utils.IsKind(err, utils.KindConflict):
			results = append(results, models.PublishSlotResult{Label: label, Status: "conflict"})
		default:
			return results, err
		}
	}
	return results, nil
}

func (s *DefaultLedgerService) RemoveSlot(ctx context.Context, actor models.Actor, authorityID, date, label string) error {
	if err := authorize(actor, authorityID); err != nil {
		return err
	}
	if _, err := utils.ParseDate(date); err != nil {
		return err
	}
	label, err := normalizeLabel(label)
	if err != nil {
		return err
	}

	removed, err := s.Repo.TakeSlot(ctx, authorityID, date, label)
	if err != nil && !removed {
		return utils.Internal(err, "failed to remove time slot")
	}
	if !removed {
		return utils.NotFound("time slot %q not found on %s", label, date)
	}
	if err != nil {
		s.Logger.Warn("Empty free time entry left behind", zap.String("authorityId", authorityID), zap.String("date", date), zap.Error(err))
	}
	s.Invalidate(ctx, authorityID, date)
	return nil
}

func (s *DefaultLedgerService) Invalidate(ctx context.Context, authorityID, date string) {
	if s.Cache == nil {
		return
	}
	if err := utils.InvalidateSlotListing(context.WithoutCancel(ctx), s.Cache, authorityID, date); err != nil {
		s.Logger.Warn("Slot cache invalidation failed", zap.String("authorityId", authorityID), zap.Error(err))
	}
}

// authorize lets officials mutate only their own authority's ledger.
func authorize(actor models.Actor, authorityID string) error {
	if !actor.IsOfficial() {
		return utils.Forbidden("only officials may manage time slots")
	}
	if strings.TrimSpace(authorityID) == "" {
		return utils.Validation("authority_id is required")
	}
	if actor.AuthorityID != authorityID {
		return utils.Forbidden("officials may only manage their own authority's time slots")
	}
	return nil
}

func normalizeLabel(label string) (string, error) {
	window, err := models.ParseSlotLabel(strings.TrimSpace(label))
	if err != nil {
		return "", utils.Validation("%s", err.Error())
	}
	return window.Label(), nil
}

func dropEmpty(entries []models.FreeTime) []models.FreeTime {
	out := entries[:0]
	for _, e := range entries {
		if len(e.Slots) > 0 {
			out = append(out, e)
		}
	}
	return out
}
