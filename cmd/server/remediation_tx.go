package main

import (
	"context"
	"database/sql"
	"time"

	"vayva/internal/remediation"
	id "vayva/pkg/domain"
	dErrors "vayva/pkg/domain-errors"
	txcontext "vayva/pkg/platform/tx"
)

const defaultRemediationTxTimeout = 10 * time.Second

// txRemediator runs each remediation batch inside one transaction so the
// corrective writes and their log entries commit together. Used only in
// Postgres mode; the in-memory stores ignore the context transaction.
type txRemediator struct {
	db    *sql.DB
	inner *remediation.Service
}

func newTxRemediator(db *sql.DB, inner *remediation.Service) *txRemediator {
	return &txRemediator{db: db, inner: inner}
}

func (t *txRemediator) Run(ctx context.Context, merchantID id.MerchantID, correlationID string) ([]remediation.Result, error) {
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, defaultRemediationTxTimeout)
		defer cancel()
	}

	tx, err := t.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to begin remediation transaction")
	}
	defer func() {
		_ = tx.Rollback()
	}()

	results, err := t.inner.Run(txcontext.WithTx(ctx, tx), merchantID, correlationID)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to commit remediation transaction")
	}
	return results, nil
}
