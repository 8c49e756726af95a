// Package cache memoizes computed availability slot lists in Redis.
// The cache is strictly best-effort: every failure degrades to a
// miss and is logged, so a broken or absent Redis never fails an
// availability query, only makes it slower.  Booking mutations drop
// all entries for the affected restaurant and date, bounding
// staleness to the entry TTL otherwise.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// SlotCache stores slot lists under
// availability:<restaurantID>:<date>:<partySize>:<durationMinutes>
// keys with a fixed TTL.  A nil client disables the cache entirely.
type SlotCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewSlotCache builds a SlotCache.  rdb may be nil (cache disabled);
// a non-positive ttl falls back to five minutes.
func NewSlotCache(rdb *redis.Client, ttl time.Duration) *SlotCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &SlotCache{rdb: rdb, ttl: ttl}
}

// GetSlots returns the cached slot list for key, or a miss when the
// key is absent, the backend fails or the stored value is garbage.
func (c *SlotCache) GetSlots(ctx context.Context, key string) ([]string, bool) {
	if c.rdb == nil {
		return nil, false
	}
	raw, err := c.rdb.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		log.Printf("slot-cache: get %s failed: %v", key, err)
		return nil, false
	}
	var slots []string
	if err := json.Unmarshal(raw, &slots); err != nil {
		log.Printf("slot-cache: corrupt entry %s dropped: %v", key, err)
		_ = c.rdb.Del(ctx, key).Err()
		return nil, false
	}
	return slots, true
}

// SetSlots stores a computed slot list under key with the cache TTL.
func (c *SlotCache) SetSlots(ctx context.Context, key string, slots []string) {
	if c.rdb == nil {
		return
	}
	raw, err := json.Marshal(slots)
	if err != nil {
		log.Printf("slot-cache: marshal %s failed: %v", key, err)
		return
	}
	if err := c.rdb.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		log.Printf("slot-cache: set %s failed: %v", key, err)
	}
}

// Invalidate deletes every cached entry for the restaurant and date,
// whatever the party size and duration.  SCAN is used instead of
// KEYS so invalidation never blocks the server on a large keyspace.
func (c *SlotCache) Invalidate(ctx context.Context, restaurantID uint64, date string) {
	if c.rdb == nil {
		return
	}
	pattern := fmt.Sprintf("availability:%d:%s:*", restaurantID, date)
	iter := c.rdb.Scan(ctx, 0, pattern, 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		log.Printf("slot-cache: scan %s failed: %v", pattern, err)
		return
	}
	if len(keys) == 0 {
		return
	}
	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		log.Printf("slot-cache: invalidate %s failed: %v", pattern, err)
	}
}
