package store

import (
	"context"
	"sync"
	"time"

	"vayva/internal/merchant/models"
	id "vayva/pkg/domain"
	"vayva/pkg/platform/sentinel"
)

// Memory is an in-memory fact store used in tests and local development.
// All maps are keyed by merchant ID; access is mutex-guarded.
type Memory struct {
	mu         sync.RWMutex
	stores     map[id.MerchantID]models.StoreRecord
	plans      map[id.MerchantID]models.Plan
	templates  map[id.MerchantID]models.TemplateSelection
	policies   map[id.MerchantID]map[models.PolicyType]models.Policy
	deliveries map[id.MerchantID][]models.DeliveryMethod
	payouts    map[id.MerchantID]models.PayoutAccount
}

// NewMemory constructs an empty in-memory fact store.
func NewMemory() *Memory {
	return &Memory{
		stores:     make(map[id.MerchantID]models.StoreRecord),
		plans:      make(map[id.MerchantID]models.Plan),
		templates:  make(map[id.MerchantID]models.TemplateSelection),
		policies:   make(map[id.MerchantID]map[models.PolicyType]models.Policy),
		deliveries: make(map[id.MerchantID][]models.DeliveryMethod),
		payouts:    make(map[id.MerchantID]models.PayoutAccount),
	}
}

func (m *Memory) FindStore(_ context.Context, merchantID id.MerchantID) (*models.StoreRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	record, ok := m.stores[merchantID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return &record, nil
}

func (m *Memory) FindPlan(_ context.Context, merchantID id.MerchantID) (*models.Plan, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	plan, ok := m.plans[merchantID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return &plan, nil
}

func (m *Memory) FindTemplateSelection(_ context.Context, merchantID id.MerchantID) (*models.TemplateSelection, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	sel, ok := m.templates[merchantID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return &sel, nil
}

func (m *Memory) ListPolicies(_ context.Context, merchantID id.MerchantID) ([]models.Policy, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	byType := m.policies[merchantID]
	policies := make([]models.Policy, 0, len(byType))
	// Iterate the fixed type order so results are deterministic.
	for _, pt := range models.PolicyTypes {
		if p, ok := byType[pt]; ok {
			policies = append(policies, p)
		}
	}
	return policies, nil
}

func (m *Memory) ListDeliveryMethods(_ context.Context, merchantID id.MerchantID) ([]models.DeliveryMethod, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	methods := make([]models.DeliveryMethod, len(m.deliveries[merchantID]))
	copy(methods, m.deliveries[merchantID])
	return methods, nil
}

func (m *Memory) FindDefaultPayoutAccount(_ context.Context, merchantID id.MerchantID) (*models.PayoutAccount, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	account, ok := m.payouts[merchantID]
	if !ok || !account.Default {
		return nil, sentinel.ErrNotFound
	}
	return &account, nil
}

// PublishPolicy upserts the policy of the given type to PUBLISHED with the
// supplied body.
func (m *Memory) PublishPolicy(_ context.Context, merchantID id.MerchantID, policyType models.PolicyType, body string, now time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.stores[merchantID]; !ok {
		return sentinel.ErrNotFound
	}
	byType := m.policies[merchantID]
	if byType == nil {
		byType = make(map[models.PolicyType]models.Policy)
		m.policies[merchantID] = byType
	}
	byType[policyType] = models.Policy{
		MerchantID: merchantID,
		Type:       policyType,
		Status:     models.PolicyStatusPublished,
		Body:       body,
		UpdatedAt:  now,
	}
	return nil
}

// SaveTemplateSelection records the merchant's template choice.
func (m *Memory) SaveTemplateSelection(_ context.Context, sel models.TemplateSelection) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.stores[sel.MerchantID]; !ok {
		return sentinel.ErrNotFound
	}
	m.templates[sel.MerchantID] = sel
	return nil
}

// UpdatePublishStatus performs the conditional publish-state transition.
// Returns sentinel.ErrConflict when the stored status no longer matches from.
func (m *Memory) UpdatePublishStatus(_ context.Context, merchantID id.MerchantID, from, to models.PublishStatus, actorID id.ActorID, actorLabel, reason string, now time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	record, ok := m.stores[merchantID]
	if !ok {
		return sentinel.ErrNotFound
	}
	if record.PublishStatus != from {
		return sentinel.ErrConflict
	}
	record.PublishStatus = to
	record.PublishChangedBy = actorID
	record.PublishChangedAs = actorLabel
	record.PublishReason = reason
	record.PublishChangedAt = now
	record.UpdatedAt = now
	m.stores[merchantID] = record
	return nil
}

// Seed helpers for tests and local bootstrap.

func (m *Memory) PutStore(record models.StoreRecord) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stores[record.MerchantID] = record
}

func (m *Memory) PutPlan(plan models.Plan) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.plans[plan.MerchantID] = plan
}

func (m *Memory) PutTemplateSelection(sel models.TemplateSelection) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.templates[sel.MerchantID] = sel
}

func (m *Memory) PutPolicy(policy models.Policy) {
	m.mu.Lock()
	defer m.mu.Unlock()
	byType := m.policies[policy.MerchantID]
	if byType == nil {
		byType = make(map[models.PolicyType]models.Policy)
		m.policies[policy.MerchantID] = byType
	}
	byType[policy.Type] = policy
}

func (m *Memory) AddDeliveryMethod(method models.DeliveryMethod) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deliveries[method.MerchantID] = append(m.deliveries[method.MerchantID], method)
}

func (m *Memory) PutPayoutAccount(account models.PayoutAccount) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.payouts[account.MerchantID] = account
}
