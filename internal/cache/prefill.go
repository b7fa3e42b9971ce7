package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/MehnatiMazdor/appointment-ms/internal/logger"
	"github.com/MehnatiMazdor/appointment-ms/internal/store"
)

// PrefillCache keeps last-self contact lookups in Redis so the booking
// form does not hit the database on every load. A nil *PrefillCache is
// a valid no-op cache, used when no Redis address is configured; every
// miss or Redis failure falls through to the store.
type PrefillCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewPrefillCache connects to Redis and returns the cache, or nil when
// addr is empty. A failed ping is reported but still returns nil
// rather than an unusable client; the service runs fine without the
// cache.
func NewPrefillCache(addr, password string, db int, ttl time.Duration) *PrefillCache {
	if addr == "" {
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Log.WithError(err).Warn("redis unreachable, contact prefill cache disabled")
		return nil
	}

	return &PrefillCache{client: client, ttl: ttl}
}

func prefillKey(ownerID string) string {
	return fmt.Sprintf("prefill:last-self:%s", ownerID)
}

// Get returns the cached contact details for ownerID, if present.
func (c *PrefillCache) Get(ctx context.Context, ownerID string) (*store.ContactDetails, bool) {
	if c == nil {
		return nil, false
	}
	raw, err := c.client.Get(ctx, prefillKey(ownerID)).Bytes()
	if err != nil {
		return nil, false
	}
	var details store.ContactDetails
	if err := json.Unmarshal(raw, &details); err != nil {
		return nil, false
	}
	return &details, true
}

// Set stores the contact details for ownerID with the configured TTL.
func (c *PrefillCache) Set(ctx context.Context, ownerID string, details *store.ContactDetails) {
	if c == nil || details == nil {
		return
	}
	raw, err := json.Marshal(details)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, prefillKey(ownerID), raw, c.ttl).Err(); err != nil {
		logger.Log.WithError(err).Warn("failed to cache contact prefill")
	}
}

// Invalidate drops the cached entry for ownerID. Called after a new
// self appointment is created so the next prefill reflects it.
func (c *PrefillCache) Invalidate(ctx context.Context, ownerID string) {
	if c == nil {
		return
	}
	if err := c.client.Del(ctx, prefillKey(ownerID)).Err(); err != nil {
		logger.Log.WithError(err).Warn("failed to invalidate contact prefill cache")
	}
}
