package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"vayva/internal/remediation"
	id "vayva/pkg/domain"
	txcontext "vayva/pkg/platform/tx"
)

// Postgres persists the remediation log in PostgreSQL. The table is
// append-only; this store never updates or deletes rows.
type Postgres struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed remediation log.
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

// Append records one fix attempt.
func (p *Postgres) Append(ctx context.Context, entry remediation.LogEntry) error {
	query := `
		INSERT INTO remediation_log (id, correlation_id, merchant_id, fix_code, outcome, detail, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	entryID := entry.ID
	if entryID == "" {
		entryID = uuid.NewString()
	}
	_, err := p.execer(ctx).ExecContext(ctx, query,
		entryID,
		entry.CorrelationID,
		uuid.UUID(entry.MerchantID),
		string(entry.FixCode),
		string(entry.Outcome),
		entry.Detail,
		entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert remediation log entry: %w", err)
	}
	return nil
}

// ListByMerchant returns fix attempts for one merchant, oldest first.
func (p *Postgres) ListByMerchant(ctx context.Context, merchantID id.MerchantID) ([]remediation.LogEntry, error) {
	query := `
		SELECT id, correlation_id, merchant_id, fix_code, outcome, detail, created_at
		FROM remediation_log
		WHERE merchant_id = $1
		ORDER BY created_at
	`
	rows, err := p.db.QueryContext(ctx, query, uuid.UUID(merchantID))
	if err != nil {
		return nil, fmt.Errorf("query remediation log: %w", err)
	}
	defer rows.Close()

	var entries []remediation.LogEntry
	for rows.Next() {
		var (
			entry remediation.LogEntry
			mid   uuid.UUID
		)
		if err := rows.Scan(&entry.ID, &entry.CorrelationID, &mid,
			&entry.FixCode, &entry.Outcome, &entry.Detail, &entry.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan remediation log entry: %w", err)
		}
		entry.MerchantID = id.MerchantID(mid)
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}
