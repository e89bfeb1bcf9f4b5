package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"vayva/internal/merchant/models"
	id "vayva/pkg/domain"
	"vayva/pkg/platform/sentinel"
	txcontext "vayva/pkg/platform/tx"
)

// Postgres persists merchant facts in PostgreSQL. See db/schema.sql for the
// table layout.
type Postgres struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed fact store.
func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

type dbExecutor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

func (p *Postgres) execer(ctx context.Context) dbExecutor {
	if tx, ok := txcontext.From(ctx); ok {
		return tx
	}
	return p.db
}

func (p *Postgres) FindStore(ctx context.Context, merchantID id.MerchantID) (*models.StoreRecord, error) {
	query := `
		SELECT merchant_id, name, slug, category, email, phone, kyc_status,
		       publish_status, publish_changed_by, publish_changed_as,
		       publish_reason, publish_changed_at, created_at, updated_at
		FROM stores
		WHERE merchant_id = $1
	`
	row := p.execer(ctx).QueryRowContext(ctx, query, uuid.UUID(merchantID))

	var (
		record    models.StoreRecord
		mid       uuid.UUID
		changedBy sql.NullString
		changedAs sql.NullString
		reason    sql.NullString
		changedAt sql.NullTime
	)
	err := row.Scan(&mid, &record.Name, &record.Slug, &record.Category,
		&record.Email, &record.Phone, &record.KYCStatus,
		&record.PublishStatus, &changedBy, &changedAs,
		&reason, &changedAt, &record.CreatedAt, &record.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find store: %w", err)
	}

	record.MerchantID = id.MerchantID(mid)
	if changedBy.Valid {
		if actor, err := uuid.Parse(changedBy.String); err == nil {
			record.PublishChangedBy = id.ActorID(actor)
		}
	}
	record.PublishChangedAs = changedAs.String
	record.PublishReason = reason.String
	if changedAt.Valid {
		record.PublishChangedAt = changedAt.Time
	}
	return &record, nil
}

func (p *Postgres) FindPlan(ctx context.Context, merchantID id.MerchantID) (*models.Plan, error) {
	query := `
		SELECT merchant_id, tier, status, expires_at
		FROM plans
		WHERE merchant_id = $1
	`
	row := p.execer(ctx).QueryRowContext(ctx, query, uuid.UUID(merchantID))

	var (
		plan      models.Plan
		mid       uuid.UUID
		expiresAt sql.NullTime
	)
	if err := row.Scan(&mid, &plan.Tier, &plan.Status, &expiresAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find plan: %w", err)
	}
	plan.MerchantID = id.MerchantID(mid)
	if expiresAt.Valid {
		plan.ExpiresAt = &expiresAt.Time
	}
	return &plan, nil
}

func (p *Postgres) FindTemplateSelection(ctx context.Context, merchantID id.MerchantID) (*models.TemplateSelection, error) {
	query := `
		SELECT merchant_id, template_id, selected_at
		FROM template_selections
		WHERE merchant_id = $1
	`
	row := p.execer(ctx).QueryRowContext(ctx, query, uuid.UUID(merchantID))

	var (
		sel models.TemplateSelection
		mid uuid.UUID
	)
	if err := row.Scan(&mid, &sel.TemplateID, &sel.SelectedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find template selection: %w", err)
	}
	sel.MerchantID = id.MerchantID(mid)
	return &sel, nil
}

func (p *Postgres) ListPolicies(ctx context.Context, merchantID id.MerchantID) ([]models.Policy, error) {
	query := `
		SELECT merchant_id, type, status, body, updated_at
		FROM policies
		WHERE merchant_id = $1
		ORDER BY type
	`
	rows, err := p.execer(ctx).QueryContext(ctx, query, uuid.UUID(merchantID))
	if err != nil {
		return nil, fmt.Errorf("list policies: %w", err)
	}
	defer rows.Close()

	var policies []models.Policy
	for rows.Next() {
		var (
			policy models.Policy
			mid    uuid.UUID
		)
		if err := rows.Scan(&mid, &policy.Type, &policy.Status, &policy.Body, &policy.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan policy: %w", err)
		}
		policy.MerchantID = id.MerchantID(mid)
		policies = append(policies, policy)
	}
	return policies, rows.Err()
}

func (p *Postgres) ListDeliveryMethods(ctx context.Context, merchantID id.MerchantID) ([]models.DeliveryMethod, error) {
	query := `
		SELECT id, merchant_id, kind, active
		FROM delivery_methods
		WHERE merchant_id = $1
		ORDER BY id
	`
	rows, err := p.execer(ctx).QueryContext(ctx, query, uuid.UUID(merchantID))
	if err != nil {
		return nil, fmt.Errorf("list delivery methods: %w", err)
	}
	defer rows.Close()

	var methods []models.DeliveryMethod
	for rows.Next() {
		var (
			method models.DeliveryMethod
			mid    uuid.UUID
		)
		if err := rows.Scan(&method.ID, &mid, &method.Kind, &method.Active); err != nil {
			return nil, fmt.Errorf("scan delivery method: %w", err)
		}
		method.MerchantID = id.MerchantID(mid)
		methods = append(methods, method)
	}
	return methods, rows.Err()
}

func (p *Postgres) FindDefaultPayoutAccount(ctx context.Context, merchantID id.MerchantID) (*models.PayoutAccount, error) {
	query := `
		SELECT merchant_id, bank_name, beneficiary, is_default
		FROM payout_accounts
		WHERE merchant_id = $1 AND is_default = TRUE
	`
	row := p.execer(ctx).QueryRowContext(ctx, query, uuid.UUID(merchantID))

	var (
		account models.PayoutAccount
		mid     uuid.UUID
	)
	if err := row.Scan(&mid, &account.BankName, &account.Beneficiary, &account.Default); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find payout account: %w", err)
	}
	account.MerchantID = id.MerchantID(mid)
	return &account, nil
}

// PublishPolicy upserts the policy of the given type to PUBLISHED.
func (p *Postgres) PublishPolicy(ctx context.Context, merchantID id.MerchantID, policyType models.PolicyType, body string, now time.Time) error {
	query := `
		INSERT INTO policies (merchant_id, type, status, body, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (merchant_id, type)
		DO UPDATE SET status = EXCLUDED.status, body = EXCLUDED.body, updated_at = EXCLUDED.updated_at
	`
	_, err := p.execer(ctx).ExecContext(ctx, query,
		uuid.UUID(merchantID), policyType, models.PolicyStatusPublished, body, now)
	if err != nil {
		return fmt.Errorf("publish policy: %w", err)
	}
	return nil
}

// SaveTemplateSelection records the merchant's template choice.
func (p *Postgres) SaveTemplateSelection(ctx context.Context, sel models.TemplateSelection) error {
	query := `
		INSERT INTO template_selections (merchant_id, template_id, selected_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (merchant_id)
		DO UPDATE SET template_id = EXCLUDED.template_id, selected_at = EXCLUDED.selected_at
	`
	_, err := p.execer(ctx).ExecContext(ctx, query,
		uuid.UUID(sel.MerchantID), sel.TemplateID, sel.SelectedAt)
	if err != nil {
		return fmt.Errorf("save template selection: %w", err)
	}
	return nil
}

// UpdatePublishStatus performs a single-row conditional update so two racing
// transitions cannot both win. Returns sentinel.ErrConflict when the stored
// status no longer matches from.
func (p *Postgres) UpdatePublishStatus(ctx context.Context, merchantID id.MerchantID, from, to models.PublishStatus, actorID id.ActorID, actorLabel, reason string, now time.Time) error {
	query := `
		UPDATE stores
		SET publish_status = $1,
		    publish_changed_by = $2,
		    publish_changed_as = $3,
		    publish_reason = $4,
		    publish_changed_at = $5,
		    updated_at = $5
		WHERE merchant_id = $6 AND publish_status = $7
	`
	result, err := p.execer(ctx).ExecContext(ctx, query,
		to, uuid.UUID(actorID), actorLabel, reason, now, uuid.UUID(merchantID), from)
	if err != nil {
		return fmt.Errorf("update publish status: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update publish status rows affected: %w", err)
	}
	if affected == 0 {
		// Either the store is gone or the status moved under us.
		var exists bool
		err := p.execer(ctx).QueryRowContext(ctx,
			`SELECT EXISTS (SELECT 1 FROM stores WHERE merchant_id = $1)`,
			uuid.UUID(merchantID)).Scan(&exists)
		if err != nil {
			return fmt.Errorf("update publish status existence check: %w", err)
		}
		if !exists {
			return sentinel.ErrNotFound
		}
		return sentinel.ErrConflict
	}
	return nil
}
