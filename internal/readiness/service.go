package readiness

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"vayva/internal/readiness/metrics"
	id "vayva/pkg/domain"
	"vayva/pkg/requestcontext"
)

// Service orchestrates fact collection and rule evaluation.
type Service struct {
	collector *Collector
	cache     *ResultCache
	metrics   *metrics.Metrics
	logger    *slog.Logger
	tracer    trace.Tracer
}

// Option configures optional service dependencies.
type Option func(s *Service)

// WithCache attaches a Redis result cache used by CheckCached.
func WithCache(cache *ResultCache) Option {
	return func(s *Service) { s.cache = cache }
}

// WithMetrics attaches Prometheus metrics.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithLogger attaches a structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

// NewService constructs the readiness service.
func NewService(facts FactStore, opts ...Option) *Service {
	s := &Service{
		tracer: otel.Tracer("vayva/readiness"),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.collector = NewCollector(facts, s.metrics)
	return s
}

// Check collects a fresh snapshot and evaluates it. This is the path the
// publish gate and the remediator use; it never consults the cache.
func (s *Service) Check(ctx context.Context, merchantID id.MerchantID) (OpsReadiness, error) {
	ctx, span := s.tracer.Start(ctx, "readiness.check",
		trace.WithAttributes(attribute.String("merchant_id", merchantID.String())))
	defer span.End()

	start := time.Now()
	snapshot, err := s.collector.Collect(ctx, merchantID)
	if err != nil {
		return OpsReadiness{}, err
	}

	result := Evaluate(snapshot)
	span.SetAttributes(attribute.String("readiness.level", string(result.Level)))

	if s.metrics != nil {
		s.metrics.IncrementOutcome(string(result.Level))
		s.metrics.ObserveCheckLatency(time.Since(start))
	}
	if s.logger != nil {
		s.logger.InfoContext(ctx, "readiness evaluated",
			"request_id", requestcontext.RequestID(ctx),
			"merchant_id", merchantID,
			"level", result.Level,
			"issue_count", len(result.Issues),
			"duration_ms", time.Since(start).Milliseconds(),
		)
	}
	return result, nil
}

// CheckCached serves reads from the result cache when possible, falling back
// to a fresh check and repopulating the cache. Gating decisions must use
// Check instead.
func (s *Service) CheckCached(ctx context.Context, merchantID id.MerchantID) (OpsReadiness, error) {
	if result, ok := s.cache.Get(ctx, merchantID); ok {
		s.metrics.IncrementCacheHit()
		return result, nil
	}
	s.metrics.IncrementCacheMiss()

	result, err := s.Check(ctx, merchantID)
	if err != nil {
		return OpsReadiness{}, err
	}
	if err := s.cache.Set(ctx, merchantID, result); err != nil && s.logger != nil {
		s.logger.WarnContext(ctx, "readiness cache write failed",
			"merchant_id", merchantID,
			"error", err,
		)
	}
	return result, nil
}

// InvalidateCache drops any cached result for the merchant. Called after
// remediation writes and publish transitions.
func (s *Service) InvalidateCache(ctx context.Context, merchantID id.MerchantID) {
	if err := s.cache.Invalidate(ctx, merchantID); err != nil && s.logger != nil {
		s.logger.WarnContext(ctx, "readiness cache invalidation failed",
			"merchant_id", merchantID,
			"error", err,
		)
	}
}
