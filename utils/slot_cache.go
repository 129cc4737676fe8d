// File: utils/slot_cache.go
package utils

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"govconnect/models"

	"github.com/go-redis/redis/v8"
)

// SlotCacheKey builds the key of one authority's open slots. An empty date keys the
// all-dates listing.
func SlotCacheKey(authorityID, date string) string {
	if date == "" {
		date = "*all"
	}
	return SlotCachePrefix + authorityID + ":" + date
}

// ErrStaleSlotListing is returned by SaveSlotListing when the ledger changed after the
// listing was read.
var ErrStaleSlotListing = errors.New("slot listing is stale")

// SlotGenerationKey holds a counter bumped on every invalidation of an authority.
func SlotGenerationKey(authorityID string) string {
	return SlotGenerationPrefix + authorityID
}

// SlotGeneration returns the authority's current cache generation (0 when unset).
func SlotGeneration(ctx context.Context, client *redis.Client, authorityID string) (int64, error) {
	gen, err := client.Get(ctx, SlotGenerationKey(authorityID)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

// SaveSlotListing caches a ledger listing read at generation gen. The write is
// dropped with ErrStaleSlotListing if an invalidation happened since.
func SaveSlotListing(ctx context.Context, client *redis.Client, authorityID, date string, gen int64, entries []models.FreeTime, ttl time.Duration) error {
	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("failed to marshal slot listing: %w", err)
	}

	genKey := SlotGenerationKey(authorityID)
	err = client.Watch(ctx, func(tx *redis.Tx) error {
		cur, err := tx.Get(ctx, genKey).Int64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if cur != gen {
			return ErrStaleSlotListing
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, SlotCacheKey(authorityID, date), data, ttl)
			return nil
		})
		return err
	}, genKey)
	if errors.Is(err, redis.TxFailedErr) {
		return ErrStaleSlotListing
	}
	if err != nil && !errors.Is(err, ErrStaleSlotListing) {
		return fmt.Errorf("failed to save slot listing: %w", err)
	}
	return err
}

// GetSlotListing retrieves a cached ledger listing. redis.Nil is returned on a miss.
func GetSlotListing(ctx context.Context, client *redis.Client, authorityID, date string) ([]models.FreeTime, error) {
	data, err := client.Get(ctx, SlotCacheKey(authorityID, date)).Bytes()
	if err != nil {
		return nil, err
	}
	var entries []models.FreeTime
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to unmarshal slot listing: %w", err)
	}
	return entries, nil
}

// InvalidateSlotListing drops the cached listings a mutation of (authority, date)
// could have made stale.
func InvalidateSlotListing(ctx context.Context, client *redis.Client, authorityID, date string) error {
	_, err := client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, SlotGenerationKey(authorityID))
		pipe.Del(ctx, SlotCacheKey(authorityID, date), SlotCacheKey(authorityID, ""))
		return nil
	})
	return err
}
