package audit

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	id "vayva/pkg/domain"
	"vayva/pkg/requestcontext"
)

// Store is the append-only persistence the publisher writes through.
type Store interface {
	Append(ctx context.Context, event Event) error
	ListByMerchant(ctx context.Context, merchantID id.MerchantID) ([]Event, error)
	ListRecent(ctx context.Context, limit int) ([]Event, error)
}

// Sink mirrors events to an external system.
type Sink interface {
	Emit(ctx context.Context, event Event) error
}

// Publisher stamps and records audit events. The store write is the source
// of truth; sink failures are logged and swallowed so a broker outage never
// blocks a publish transition.
type Publisher struct {
	store  Store
	sink   Sink
	logger *slog.Logger
}

// NewPublisher constructs a publisher. sink may be nil.
func NewPublisher(store Store, sink Sink, logger *slog.Logger) *Publisher {
	return &Publisher{store: store, sink: sink, logger: logger}
}

// Record fills in the event's ID, timestamp, and request ID from context,
// persists it, and mirrors it to the sink.
func (p *Publisher) Record(ctx context.Context, event Event) error {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = requestcontext.Now(ctx)
	}
	if event.RequestID == "" {
		event.RequestID = requestcontext.RequestID(ctx)
	}

	if err := p.store.Append(ctx, event); err != nil {
		return err
	}

	if p.sink != nil {
		if err := p.sink.Emit(ctx, event); err != nil && p.logger != nil {
			p.logger.WarnContext(ctx, "audit sink emit failed",
				"merchant_id", event.MerchantID,
				"action", event.Action,
				"error", err,
			)
		}
	}
	return nil
}

// ListByMerchant returns the merchant's audit trail, oldest first.
func (p *Publisher) ListByMerchant(ctx context.Context, merchantID id.MerchantID) ([]Event, error) {
	return p.store.ListByMerchant(ctx, merchantID)
}

// ListRecent returns up to limit events across all merchants, newest first.
func (p *Publisher) ListRecent(ctx context.Context, limit int) ([]Event, error) {
	return p.store.ListRecent(ctx, limit)
}
