package remediation

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	id "vayva/pkg/domain"
)

// Cooldown rate-limits remediation runs per merchant via Redis SETNX. The
// client is injected, never a package-level singleton, so tests can run
// without process-wide setup.
type Cooldown struct {
	client redis.Cmdable
	window time.Duration
}

// NewCooldown constructs a cooldown. Returns nil when client is nil or the
// window is zero, which callers treat as disabled.
func NewCooldown(client redis.Cmdable, window time.Duration) *Cooldown {
	if client == nil || window <= 0 {
		return nil
	}
	return &Cooldown{client: client, window: window}
}

// Acquire reserves a remediation slot for the merchant. Returns false when a
// run happened within the window. Redis errors fail open: remediation is
// idempotent, so an extra run is safer than blocking the merchant.
func (c *Cooldown) Acquire(ctx context.Context, merchantID id.MerchantID) bool {
	if c == nil {
		return true
	}
	ok, err := c.client.SetNX(ctx, "ops:remediation:cooldown:"+merchantID.String(), 1, c.window).Result()
	if err != nil {
		return true
	}
	return ok
}
