//go:build integration

package remediation_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vayva/internal/remediation"
	id "vayva/pkg/domain"
	"vayva/pkg/testutil/containers"
)

func TestCooldownAcquire(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	redis := containers.NewRedisContainer(t)
	ctx := context.Background()

	t.Run("second acquire within the window is rejected", func(t *testing.T) {
		require.NoError(t, redis.FlushAll(ctx))
		cooldown := remediation.NewCooldown(redis.Client, time.Minute)
		merchantID := id.MerchantID(uuid.New())

		assert.True(t, cooldown.Acquire(ctx, merchantID))
		assert.False(t, cooldown.Acquire(ctx, merchantID))
	})

	t.Run("cooldowns are per merchant", func(t *testing.T) {
		require.NoError(t, redis.FlushAll(ctx))
		cooldown := remediation.NewCooldown(redis.Client, time.Minute)

		assert.True(t, cooldown.Acquire(ctx, id.MerchantID(uuid.New())))
		assert.True(t, cooldown.Acquire(ctx, id.MerchantID(uuid.New())))
	})

	t.Run("slot frees after the window elapses", func(t *testing.T) {
		require.NoError(t, redis.FlushAll(ctx))
		cooldown := remediation.NewCooldown(redis.Client, time.Second)
		merchantID := id.MerchantID(uuid.New())

		require.True(t, cooldown.Acquire(ctx, merchantID))
		require.False(t, cooldown.Acquire(ctx, merchantID))

		time.Sleep(1500 * time.Millisecond)
		assert.True(t, cooldown.Acquire(ctx, merchantID))
	})

	t.Run("nil cooldown always admits", func(t *testing.T) {
		cooldown := remediation.NewCooldown(nil, time.Minute)
		assert.Nil(t, cooldown)
		assert.True(t, cooldown.Acquire(ctx, id.MerchantID(uuid.New())))
	})
}
