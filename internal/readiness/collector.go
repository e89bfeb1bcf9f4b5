package readiness

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"vayva/internal/merchant/models"
	"vayva/internal/readiness/metrics"
	id "vayva/pkg/domain"
	dErrors "vayva/pkg/domain-errors"
	"vayva/pkg/platform/sentinel"
	"vayva/pkg/requestcontext"
)

// FactStore is the read side of the merchant fact storage this package needs.
type FactStore interface {
	FindStore(ctx context.Context, merchantID id.MerchantID) (*models.StoreRecord, error)
	FindPlan(ctx context.Context, merchantID id.MerchantID) (*models.Plan, error)
	FindTemplateSelection(ctx context.Context, merchantID id.MerchantID) (*models.TemplateSelection, error)
	ListPolicies(ctx context.Context, merchantID id.MerchantID) ([]models.Policy, error)
	ListDeliveryMethods(ctx context.Context, merchantID id.MerchantID) ([]models.DeliveryMethod, error)
	FindDefaultPayoutAccount(ctx context.Context, merchantID id.MerchantID) (*models.PayoutAccount, error)
}

const collectTimeout = 5 * time.Second

// Collector builds Snapshots from the fact store. It performs reads only.
type Collector struct {
	facts   FactStore
	metrics *metrics.Metrics
}

// NewCollector constructs a Collector.
func NewCollector(facts FactStore, m *metrics.Metrics) *Collector {
	return &Collector{facts: facts, metrics: m}
}

// Collect reads every fact the rules need and assembles a Snapshot.
// Returns a not_found error when the merchant has no store record.
// The remaining facts are fetched in parallel with shared cancellation.
func (c *Collector) Collect(ctx context.Context, merchantID id.MerchantID) (Snapshot, error) {
	ctx, cancel := context.WithTimeout(ctx, collectTimeout)
	defer cancel()

	record, err := c.fetchStore(ctx, merchantID)
	if err != nil {
		return Snapshot{}, err
	}

	snapshot := Snapshot{
		MerchantID:        merchantID,
		CreatedAt:         record.CreatedAt,
		Name:              record.Name,
		Slug:              record.Slug,
		Category:          record.Category,
		Email:             record.Email,
		Phone:             record.Phone,
		KYCStatus:         record.KYCStatus,
		PublishStatus:     record.PublishStatus,
		PublishedPolicies: make(map[models.PolicyType]bool),
		CollectedAt:       requestcontext.Now(ctx),
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		start := time.Now()
		plan, err := c.facts.FindPlan(gctx, merchantID)
		c.observe("plan", start)
		if err != nil {
			if errors.Is(err, sentinel.ErrNotFound) {
				return nil // no plan record means the plan rule fails
			}
			return fmt.Errorf("collect plan: %w", err)
		}
		snapshot.PlanTier = plan.Tier
		snapshot.PlanActive = plan.IsActive(snapshot.CollectedAt)
		return nil
	})

	g.Go(func() error {
		start := time.Now()
		sel, err := c.facts.FindTemplateSelection(gctx, merchantID)
		c.observe("template", start)
		if err != nil {
			if errors.Is(err, sentinel.ErrNotFound) {
				return nil
			}
			return fmt.Errorf("collect template selection: %w", err)
		}
		snapshot.TemplateID = sel.TemplateID
		return nil
	})

	g.Go(func() error {
		start := time.Now()
		policies, err := c.facts.ListPolicies(gctx, merchantID)
		c.observe("policies", start)
		if err != nil {
			return fmt.Errorf("collect policies: %w", err)
		}
		for _, policy := range policies {
			if policy.Status == models.PolicyStatusPublished {
				snapshot.PublishedPolicies[policy.Type] = true
			}
		}
		return nil
	})

	g.Go(func() error {
		start := time.Now()
		methods, err := c.facts.ListDeliveryMethods(gctx, merchantID)
		c.observe("delivery", start)
		if err != nil {
			return fmt.Errorf("collect delivery methods: %w", err)
		}
		for _, method := range methods {
			if method.Active {
				snapshot.DeliveryConfigured = true
				break
			}
		}
		return nil
	})

	g.Go(func() error {
		start := time.Now()
		_, err := c.facts.FindDefaultPayoutAccount(gctx, merchantID)
		c.observe("payout", start)
		if err != nil {
			if errors.Is(err, sentinel.ErrNotFound) {
				return nil
			}
			return fmt.Errorf("collect payout account: %w", err)
		}
		snapshot.PayoutAccountSet = true
		return nil
	})

	if err := g.Wait(); err != nil {
		return Snapshot{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to collect merchant facts")
	}
	return snapshot, nil
}

func (c *Collector) fetchStore(ctx context.Context, merchantID id.MerchantID) (*models.StoreRecord, error) {
	start := time.Now()
	record, err := c.facts.FindStore(ctx, merchantID)
	c.observe("store", start)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "store not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load store")
	}
	return record, nil
}

func (c *Collector) observe(source string, start time.Time) {
	if c.metrics != nil {
		c.metrics.ObserveFactLatency(source, time.Since(start))
	}
}
