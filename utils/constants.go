// File: utils/constants.go
package utils

// DateLayout is the day-granularity format used for every ledger and appointment date.
const DateLayout = "2006-01-02"

// SlotCachePrefix is the prefix used for Redis open-slot cache keys.
const SlotCachePrefix = "slots:"

// SlotGenerationPrefix prefixes the per-authority slot cache generation counters.
const SlotGenerationPrefix = "slotgen:"
