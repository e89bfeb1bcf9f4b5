//go:build integration

package audit_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twmb/franz-go/pkg/kgo"

	"vayva/internal/audit"
	"vayva/internal/merchant/models"
	id "vayva/pkg/domain"
	"vayva/pkg/testutil/containers"
)

func TestKafkaSinkEmit(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	redpanda := containers.NewRedpandaContainer(t)
	ctx := context.Background()
	topic := "vayva.ops.audit.test"
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	sink, err := audit.NewKafkaSink(ctx, redpanda.Brokers, topic, logger)
	require.NoError(t, err)
	defer sink.Close()

	merchantID := id.MerchantID(uuid.New())
	event := audit.Event{
		ID:         uuid.NewString(),
		Timestamp:  time.Now().UTC().Truncate(time.Millisecond),
		MerchantID: merchantID,
		ActorID:    id.ActorID(uuid.New()),
		ActorLabel: "owner@acme.test",
		Action:     audit.ActionStorePublished,
		FromStatus: models.PublishStatusDraft,
		ToStatus:   models.PublishStatusLive,
	}
	require.NoError(t, sink.Emit(ctx, event))

	consumer, err := kgo.NewClient(
		kgo.SeedBrokers(redpanda.Brokers...),
		kgo.ConsumeTopics(topic),
		kgo.ConsumeResetOffset(kgo.NewOffset().AtStart()),
	)
	require.NoError(t, err)
	defer consumer.Close()

	fetchCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	fetches := consumer.PollFetches(fetchCtx)
	require.NoError(t, fetches.Err())

	records := fetches.Records()
	require.Len(t, records, 1)
	assert.Equal(t, merchantID.String(), string(records[0].Key), "records are keyed by merchant for partition ordering")

	var got audit.Event
	require.NoError(t, json.Unmarshal(records[0].Value, &got))
	assert.Equal(t, event.ID, got.ID)
	assert.Equal(t, event.Action, got.Action)
	assert.Equal(t, event.MerchantID, got.MerchantID)
	assert.Equal(t, event.ToStatus, got.ToStatus)
}
