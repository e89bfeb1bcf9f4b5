// Package publish owns the storefront publish-state transitions. Every
// go-live passes through the readiness gate; the state write is a single
// conditional update so concurrent transitions cannot both win.
package publish

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"vayva/internal/audit"
	"vayva/internal/merchant/models"
	"vayva/internal/publish/metrics"
	"vayva/internal/readiness"
	id "vayva/pkg/domain"
	dErrors "vayva/pkg/domain-errors"
	"vayva/pkg/platform/sentinel"
	"vayva/pkg/requestcontext"
)

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks

// StoreStore is the slice of merchant storage the gate needs.
type StoreStore interface {
	FindStore(ctx context.Context, merchantID id.MerchantID) (*models.StoreRecord, error)
	UpdatePublishStatus(ctx context.Context, merchantID id.MerchantID, from, to models.PublishStatus, actorID id.ActorID, actorLabel, reason string, now time.Time) error
}

// ReadinessChecker gates go-live on a fresh evaluation.
type ReadinessChecker interface {
	Check(ctx context.Context, merchantID id.MerchantID) (readiness.OpsReadiness, error)
	InvalidateCache(ctx context.Context, merchantID id.MerchantID)
}

// AuditRecorder records the transition for compliance review.
type AuditRecorder interface {
	Record(ctx context.Context, event audit.Event) error
}

// Gate performs publish-state transitions.
type Gate struct {
	store     StoreStore
	readiness ReadinessChecker
	audit     AuditRecorder
	metrics   *metrics.Metrics
	logger    *slog.Logger
}

// Option configures optional gate dependencies.
type Option func(g *Gate)

// WithMetrics attaches Prometheus metrics.
func WithMetrics(m *metrics.Metrics) Option {
	return func(g *Gate) { g.metrics = m }
}

// WithLogger attaches a structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(g *Gate) { g.logger = logger }
}

// NewGate constructs the publish gate.
func NewGate(store StoreStore, readiness ReadinessChecker, audit AuditRecorder, opts ...Option) *Gate {
	g := &Gate{store: store, readiness: readiness, audit: audit}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Transition is the result of a successful publish-state change.
type Transition struct {
	MerchantID id.MerchantID        `json:"merchant_id"`
	From       models.PublishStatus `json:"from"`
	To         models.PublishStatus `json:"to"`
	ChangedAt  time.Time            `json:"changed_at"`
}

// GoLive transitions the store to LIVE after a fresh readiness check.
// A blocked readiness result rejects the attempt with a not_ready error
// carrying the full evaluation; warnings do not block.
func (g *Gate) GoLive(ctx context.Context, merchantID id.MerchantID) (*Transition, error) {
	result, err := g.readiness.Check(ctx, merchantID)
	if err != nil {
		return nil, err
	}
	if result.Blocked() {
		g.metrics.IncrementGateRejection()
		g.metrics.IncrementTransition(string(audit.ActionStorePublished), "rejected")
		if g.logger != nil {
			g.logger.InfoContext(ctx, "go-live rejected by readiness gate",
				"request_id", requestcontext.RequestID(ctx),
				"merchant_id", merchantID,
				"issue_count", len(result.Issues),
			)
		}
		return nil, dErrors.New(dErrors.CodeNotReady, "store is not ready to go live").WithDetails(result)
	}

	return g.transition(ctx, merchantID, models.PublishStatusLive, audit.ActionStorePublished, "", false)
}

// Unpublish takes a LIVE store offline. A reason is required.
func (g *Gate) Unpublish(ctx context.Context, merchantID id.MerchantID, reason string) (*Transition, error) {
	if reason = strings.TrimSpace(reason); reason == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "a reason is required to unpublish a store")
	}
	return g.transition(ctx, merchantID, models.PublishStatusUnpublished, audit.ActionStoreUnpublished, reason, false)
}

// OverridePublish forces the store LIVE regardless of readiness. Ops-only;
// the override is always audited with the supplied reason.
func (g *Gate) OverridePublish(ctx context.Context, merchantID id.MerchantID, reason string) (*Transition, error) {
	if reason = strings.TrimSpace(reason); reason == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "a reason is required to override the publish gate")
	}
	return g.transition(ctx, merchantID, models.PublishStatusLive, audit.ActionStorePublishOverriden, reason, true)
}

// transition loads the current state, validates the move, and performs the
// conditional update. On a concurrent-write conflict it reloads and retries
// once; a second conflict surfaces to the caller.
func (g *Gate) transition(ctx context.Context, merchantID id.MerchantID, to models.PublishStatus, action audit.Action, reason string, override bool) (*Transition, error) {
	actorID := requestcontext.ActorID(ctx)
	actorLabel := requestcontext.ActorLabel(ctx)
	now := requestcontext.Now(ctx)

	var from models.PublishStatus
	for attempt := 0; attempt < 2; attempt++ {
		record, err := g.store.FindStore(ctx, merchantID)
		if err != nil {
			if errors.Is(err, sentinel.ErrNotFound) {
				return nil, dErrors.New(dErrors.CodeNotFound, "store not found")
			}
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load store")
		}

		from = record.PublishStatus
		if from == to {
			g.metrics.IncrementTransition(string(action), "noop")
			return nil, dErrors.New(dErrors.CodeConflict, "store is already "+string(to))
		}
		if !override && !from.CanTransitionTo(to) {
			g.metrics.IncrementTransition(string(action), "invalid")
			return nil, dErrors.New(dErrors.CodeConflict, "cannot transition from "+string(from)+" to "+string(to))
		}

		err = g.store.UpdatePublishStatus(ctx, merchantID, from, to, actorID, actorLabel, reason, now)
		if err == nil {
			break
		}
		if errors.Is(err, sentinel.ErrConflict) {
			if attempt == 0 {
				continue // state moved under us; reload and re-validate once
			}
			g.metrics.IncrementTransition(string(action), "conflict")
			return nil, dErrors.New(dErrors.CodeConflict, "publish state changed concurrently, retry the request")
		}
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "store not found")
		}
		g.metrics.IncrementTransition(string(action), "error")
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to update publish status")
	}

	if err := g.audit.Record(ctx, audit.Event{
		MerchantID: merchantID,
		ActorID:    actorID,
		ActorLabel: actorLabel,
		Action:     action,
		Reason:     reason,
		FromStatus: from,
		ToStatus:   to,
	}); err != nil && g.logger != nil {
		g.logger.ErrorContext(ctx, "audit record failed after publish transition",
			"merchant_id", merchantID,
			"action", action,
			"error", err,
		)
	}

	g.readiness.InvalidateCache(ctx, merchantID)
	g.metrics.IncrementTransition(string(action), "applied")
	if g.logger != nil {
		g.logger.InfoContext(ctx, "publish state changed",
			"request_id", requestcontext.RequestID(ctx),
			"merchant_id", merchantID,
			"action", action,
			"from", from,
			"to", to,
		)
	}
	return &Transition{MerchantID: merchantID, From: from, To: to, ChangedAt: now}, nil
}
