package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"vayva/internal/audit"
	"vayva/internal/merchant/models"
	id "vayva/pkg/domain"
	txcontext "vayva/pkg/platform/tx"
)

// Postgres persists audit events in PostgreSQL. The table is append-only;
// this store never updates or deletes rows.
type Postgres struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed audit store.
func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

type dbExecutor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func (p *Postgres) execer(ctx context.Context) dbExecutor {
	if tx, ok := txcontext.From(ctx); ok {
		return tx
	}
	return p.db
}

// Append records one event.
func (p *Postgres) Append(ctx context.Context, event audit.Event) error {
	query := `
		INSERT INTO audit_events (id, occurred_at, merchant_id, actor_id, actor_label, action, reason, from_status, to_status, request_id, correlation_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	eventID := event.ID
	if eventID == "" {
		eventID = uuid.NewString()
	}
	_, err := p.execer(ctx).ExecContext(ctx, query,
		eventID,
		event.Timestamp,
		uuid.UUID(event.MerchantID),
		uuid.UUID(event.ActorID),
		event.ActorLabel,
		string(event.Action),
		event.Reason,
		string(event.FromStatus),
		string(event.ToStatus),
		event.RequestID,
		event.CorrelationID,
	)
	if err != nil {
		return fmt.Errorf("insert audit event: %w", err)
	}
	return nil
}

// ListByMerchant returns events for one merchant, oldest first.
func (p *Postgres) ListByMerchant(ctx context.Context, merchantID id.MerchantID) ([]audit.Event, error) {
	query := selectEvents + ` WHERE merchant_id = $1 ORDER BY occurred_at`
	rows, err := p.db.QueryContext(ctx, query, uuid.UUID(merchantID))
	if err != nil {
		return nil, fmt.Errorf("query audit events: %w", err)
	}
	return scanEvents(rows)
}

// ListRecent returns up to limit events across all merchants, newest first.
func (p *Postgres) ListRecent(ctx context.Context, limit int) ([]audit.Event, error) {
	query := selectEvents + ` ORDER BY occurred_at DESC LIMIT $1`
	rows, err := p.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("query recent audit events: %w", err)
	}
	return scanEvents(rows)
}

const selectEvents = `
	SELECT id, occurred_at, merchant_id, actor_id, actor_label, action, reason, from_status, to_status, request_id, correlation_id
	FROM audit_events
`

func scanEvents(rows *sql.Rows) ([]audit.Event, error) {
	defer rows.Close()

	var events []audit.Event
	for rows.Next() {
		var (
			event    audit.Event
			mid, aid uuid.UUID
			action   string
			from, to string
		)
		if err := rows.Scan(&event.ID, &event.Timestamp, &mid, &aid, &event.ActorLabel,
			&action, &event.Reason, &from, &to, &event.RequestID, &event.CorrelationID); err != nil {
			return nil, fmt.Errorf("scan audit event: %w", err)
		}
		event.MerchantID = id.MerchantID(mid)
		event.ActorID = id.ActorID(aid)
		event.Action = audit.Action(action)
		event.FromStatus = models.PublishStatus(from)
		event.ToStatus = models.PublishStatus(to)
		events = append(events, event)
	}
	return events, rows.Err()
}
