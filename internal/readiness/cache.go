package readiness

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	id "vayva/pkg/domain"
)

// ResultCache holds recent readiness results in Redis so the merchant-admin
// dashboard can poll cheaply. The publish gate and remediator never read it;
// they always evaluate a fresh snapshot.
type ResultCache struct {
	client redis.Cmdable
	ttl    time.Duration
}

// NewResultCache constructs a cache. Returns nil when client is nil so
// callers can treat an unconfigured cache as disabled.
func NewResultCache(client redis.Cmdable, ttl time.Duration) *ResultCache {
	if client == nil {
		return nil
	}
	return &ResultCache{client: client, ttl: ttl}
}

func cacheKey(merchantID id.MerchantID) string {
	return "ops:readiness:" + merchantID.String()
}

// Get returns the cached result, or ok=false on miss or when disabled.
func (c *ResultCache) Get(ctx context.Context, merchantID id.MerchantID) (OpsReadiness, bool) {
	if c == nil {
		return OpsReadiness{}, false
	}
	raw, err := c.client.Get(ctx, cacheKey(merchantID)).Bytes()
	if err != nil {
		return OpsReadiness{}, false
	}
	var result OpsReadiness
	if err := json.Unmarshal(raw, &result); err != nil {
		return OpsReadiness{}, false
	}
	return result, true
}

// Set stores a result with the configured TTL.
func (c *ResultCache) Set(ctx context.Context, merchantID id.MerchantID, result OpsReadiness) error {
	if c == nil {
		return nil
	}
	raw, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("marshal readiness result: %w", err)
	}
	return c.client.Set(ctx, cacheKey(merchantID), raw, c.ttl).Err()
}

// Invalidate drops the cached result after remediation or a publish
// transition changes the underlying facts.
func (c *ResultCache) Invalidate(ctx context.Context, merchantID id.MerchantID) error {
	if c == nil {
		return nil
	}
	if err := c.client.Del(ctx, cacheKey(merchantID)).Err(); err != nil && !errors.Is(err, redis.Nil) {
		return err
	}
	return nil
}
