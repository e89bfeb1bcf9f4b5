package remediation

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"vayva/internal/merchant/models"
	"vayva/internal/remediation/metrics"
	id "vayva/pkg/domain"
	dErrors "vayva/pkg/domain-errors"
	"vayva/pkg/platform/sentinel"
	"vayva/pkg/requestcontext"
)

// FactStore is the slice of merchant fact storage remediation needs: the
// re-check reads plus the two corrective writes.
type FactStore interface {
	FindStore(ctx context.Context, merchantID id.MerchantID) (*models.StoreRecord, error)
	FindTemplateSelection(ctx context.Context, merchantID id.MerchantID) (*models.TemplateSelection, error)
	ListPolicies(ctx context.Context, merchantID id.MerchantID) ([]models.Policy, error)
	PublishPolicy(ctx context.Context, merchantID id.MerchantID, policyType models.PolicyType, body string, now time.Time) error
	SaveTemplateSelection(ctx context.Context, sel models.TemplateSelection) error
}

// LogStore persists fix attempts. Append-only.
type LogStore interface {
	Append(ctx context.Context, entry LogEntry) error
}

// Service runs the automated fixes.
type Service struct {
	facts    FactStore
	log      LogStore
	cooldown *Cooldown
	metrics  *metrics.Metrics
	logger   *slog.Logger
}

// Option configures optional service dependencies.
type Option func(s *Service)

// WithCooldown attaches a per-merchant run cooldown.
func WithCooldown(cooldown *Cooldown) Option {
	return func(s *Service) { s.cooldown = cooldown }
}

// WithMetrics attaches Prometheus metrics.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithLogger attaches a structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

// NewService constructs the remediation service.
func NewService(facts FactStore, log LogStore, opts ...Option) *Service {
	s := &Service{facts: facts, log: log}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run attempts every applicable fix for the merchant, sequentially in rule
// order. Each fix re-checks its fact before writing, so repeated runs are
// no-ops once the facts are satisfied. Individual fix failures are captured
// in the results and never abort the batch; the caller re-evaluates
// readiness afterwards to report the new state.
func (s *Service) Run(ctx context.Context, merchantID id.MerchantID, correlationID string) ([]Result, error) {
	if _, err := s.facts.FindStore(ctx, merchantID); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			s.incrementRun("not_found")
			return nil, dErrors.New(dErrors.CodeNotFound, "store not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load store")
	}

	if !s.cooldown.Acquire(ctx, merchantID) {
		s.incrementRun("cooldown")
		return nil, dErrors.New(dErrors.CodeConflict, "remediation ran recently for this merchant, try again shortly")
	}

	if correlationID == "" {
		correlationID = uuid.NewString()
	}
	now := requestcontext.Now(ctx)

	var results []Result
	if result := s.fixTemplate(ctx, merchantID, correlationID, now); result != nil {
		results = append(results, *result)
	}
	results = append(results, s.fixPolicies(ctx, merchantID, correlationID, now)...)

	s.incrementRun("completed")
	if s.logger != nil {
		s.logger.InfoContext(ctx, "remediation run finished",
			"request_id", requestcontext.RequestID(ctx),
			"merchant_id", merchantID,
			"correlation_id", correlationID,
			"fix_count", len(results),
		)
	}
	return results, nil
}

// fixTemplate applies the default template when none is selected. Returns
// nil when the fact is already satisfied (no attempt, no log entry).
func (s *Service) fixTemplate(ctx context.Context, merchantID id.MerchantID, correlationID string, now time.Time) *Result {
	_, err := s.facts.FindTemplateSelection(ctx, merchantID)
	if err == nil {
		return nil
	}
	if !errors.Is(err, sentinel.ErrNotFound) {
		return s.record(ctx, merchantID, correlationID, FixSelectDefaultTemplate, OutcomeFailed, "template lookup failed: "+err.Error(), now)
	}

	err = s.facts.SaveTemplateSelection(ctx, models.TemplateSelection{
		MerchantID: merchantID,
		TemplateID: DefaultTemplateID,
		SelectedAt: now,
	})
	if err != nil {
		return s.record(ctx, merchantID, correlationID, FixSelectDefaultTemplate, OutcomeFailed, err.Error(), now)
	}
	return s.record(ctx, merchantID, correlationID, FixSelectDefaultTemplate, OutcomeApplied, "", now)
}

// fixPolicies publishes the platform-default text for every policy type not
// currently PUBLISHED, in the fixed policy type order.
func (s *Service) fixPolicies(ctx context.Context, merchantID id.MerchantID, correlationID string, now time.Time) []Result {
	published := make(map[models.PolicyType]bool)
	policies, err := s.facts.ListPolicies(ctx, merchantID)
	if err != nil {
		result := s.record(ctx, merchantID, correlationID, "publish_default_policies", OutcomeFailed, "policy lookup failed: "+err.Error(), now)
		return []Result{*result}
	}
	for _, policy := range policies {
		if policy.Status == models.PolicyStatusPublished {
			published[policy.Type] = true
		}
	}

	var results []Result
	for _, policyType := range models.PolicyTypes {
		if published[policyType] {
			continue
		}
		fixCode := FixPublishPolicy(policyType)
		if err := s.facts.PublishPolicy(ctx, merchantID, policyType, defaultPolicyBodies[policyType], now); err != nil {
			results = append(results, *s.record(ctx, merchantID, correlationID, fixCode, OutcomeFailed, err.Error(), now))
			continue
		}
		results = append(results, *s.record(ctx, merchantID, correlationID, fixCode, OutcomeApplied, "", now))
	}
	return results
}

// record persists the log entry, bumps metrics, and returns the result. A
// log write failure is logged but does not alter the fix outcome.
func (s *Service) record(ctx context.Context, merchantID id.MerchantID, correlationID string, fixCode FixCode, outcome Outcome, detail string, now time.Time) *Result {
	entry := LogEntry{
		ID:            uuid.NewString(),
		CorrelationID: correlationID,
		MerchantID:    merchantID,
		FixCode:       fixCode,
		Outcome:       outcome,
		Detail:        detail,
		CreatedAt:     now,
	}
	if err := s.log.Append(ctx, entry); err != nil && s.logger != nil {
		s.logger.ErrorContext(ctx, "remediation log write failed",
			"merchant_id", merchantID,
			"fix_code", fixCode,
			"error", err,
		)
	}
	if s.metrics != nil {
		s.metrics.IncrementFix(string(fixCode), string(outcome))
	}
	return &Result{FixCode: fixCode, Outcome: outcome, Detail: detail}
}

func (s *Service) incrementRun(result string) {
	if s.metrics != nil {
		s.metrics.IncrementRun(result)
	}
}
