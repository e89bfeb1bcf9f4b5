package readiness

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vayva/internal/merchant/models"
	id "vayva/pkg/domain"
)

// readySnapshot returns a snapshot that passes every rule. Tests knock out
// individual facts from here.
func readySnapshot() Snapshot {
	return Snapshot{
		MerchantID: id.MerchantID(uuid.New()),
		Name:       "Acme Foods",
		Slug:       "acme-foods",
		Category:   "groceries",
		Email:      "owner@acme.test",
		PlanTier:   "growth",
		PlanActive: true,
		TemplateID: "simple-retail",
		PublishedPolicies: map[models.PolicyType]bool{
			models.PolicyTypeRefund: true,
		},
		DeliveryConfigured: true,
		PayoutAccountSet:   true,
	}
}

func TestEvaluateReady(t *testing.T) {
	result := Evaluate(readySnapshot())

	assert.Equal(t, LevelReady, result.Level)
	assert.Empty(t, result.Issues)
	assert.Equal(t, Summary{
		Identity: true,
		Plan:     true,
		Template: true,
		Policies: true,
		Delivery: true,
		Payments: true,
	}, result.Summary)
	assert.False(t, result.Blocked())
}

func TestEvaluateSingleRuleFailures(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*Snapshot)
		code     IssueCode
		severity Severity
		level    Level
		fixable  bool
	}{
		{
			name:     "missing name blocks on identity",
			mutate:   func(s *Snapshot) { s.Name = "" },
			code:     CodeIdentityIncomplete,
			severity: SeverityBlocker,
			level:    LevelBlocked,
		},
		{
			name:     "missing slug blocks on identity",
			mutate:   func(s *Snapshot) { s.Slug = "" },
			code:     CodeIdentityIncomplete,
			severity: SeverityBlocker,
			level:    LevelBlocked,
		},
		{
			name:     "no contact channel blocks on identity",
			mutate:   func(s *Snapshot) { s.Email, s.Phone = "", "" },
			code:     CodeIdentityIncomplete,
			severity: SeverityBlocker,
			level:    LevelBlocked,
		},
		{
			name:     "inactive plan blocks",
			mutate:   func(s *Snapshot) { s.PlanActive = false },
			code:     CodeNoActivePlan,
			severity: SeverityBlocker,
			level:    LevelBlocked,
		},
		{
			name:     "no template blocks and is fixable",
			mutate:   func(s *Snapshot) { s.TemplateID = "" },
			code:     CodeNoTemplateSelected,
			severity: SeverityBlocker,
			level:    LevelBlocked,
			fixable:  true,
		},
		{
			name:     "no published policies warns and is fixable",
			mutate:   func(s *Snapshot) { s.PublishedPolicies = nil },
			code:     CodePoliciesUnpublished,
			severity: SeverityWarning,
			level:    LevelWarning,
			fixable:  true,
		},
		{
			name:     "no delivery method blocks",
			mutate:   func(s *Snapshot) { s.DeliveryConfigured = false },
			code:     CodeNoDeliveryMethod,
			severity: SeverityBlocker,
			level:    LevelBlocked,
		},
		{
			name:     "no payout account warns",
			mutate:   func(s *Snapshot) { s.PayoutAccountSet = false },
			code:     CodeNoPayoutAccount,
			severity: SeverityWarning,
			level:    LevelWarning,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			snapshot := readySnapshot()
			tc.mutate(&snapshot)

			result := Evaluate(snapshot)

			require.Len(t, result.Issues, 1)
			issue := result.Issues[0]
			assert.Equal(t, tc.code, issue.Code)
			assert.Equal(t, tc.severity, issue.Severity)
			assert.Equal(t, tc.fixable, issue.Fixable)
			assert.Equal(t, tc.level, result.Level)
			assert.NotEmpty(t, issue.Title)
			assert.NotEmpty(t, issue.ActionURL)
		})
	}
}

// TestEvaluateEmptyMerchant covers the brand-new merchant: every rule fails
// and issues come back in rule declaration order.
func TestEvaluateEmptyMerchant(t *testing.T) {
	result := Evaluate(Snapshot{MerchantID: id.MerchantID(uuid.New())})

	require.Len(t, result.Issues, 6)
	codes := make([]IssueCode, 0, len(result.Issues))
	for _, issue := range result.Issues {
		codes = append(codes, issue.Code)
	}
	assert.Equal(t, []IssueCode{
		CodeIdentityIncomplete,
		CodeNoActivePlan,
		CodeNoTemplateSelected,
		CodePoliciesUnpublished,
		CodeNoDeliveryMethod,
		CodeNoPayoutAccount,
	}, codes)
	assert.Equal(t, LevelBlocked, result.Level)
	assert.Equal(t, Summary{}, result.Summary)
}

// TestEvaluateWarningsDoNotBlock covers the go-live-with-warnings case:
// only the two warning rules fail.
func TestEvaluateWarningsDoNotBlock(t *testing.T) {
	snapshot := readySnapshot()
	snapshot.PublishedPolicies = map[models.PolicyType]bool{}
	snapshot.PayoutAccountSet = false

	result := Evaluate(snapshot)

	assert.Equal(t, LevelWarning, result.Level)
	assert.False(t, result.Blocked())
	require.Len(t, result.Issues, 2)
	assert.Equal(t, CodePoliciesUnpublished, result.Issues[0].Code)
	assert.Equal(t, CodeNoPayoutAccount, result.Issues[1].Code)
}

// TestEvaluateBlockerWinsOverWarning verifies aggregation when both severities
// are present.
func TestEvaluateBlockerWinsOverWarning(t *testing.T) {
	snapshot := readySnapshot()
	snapshot.PlanActive = false
	snapshot.PayoutAccountSet = false

	result := Evaluate(snapshot)

	assert.Equal(t, LevelBlocked, result.Level)
	assert.True(t, result.Blocked())
	require.Len(t, result.Issues, 2)
}

// TestEvaluateDeterministic verifies repeat evaluation of the same snapshot
// yields identical results including issue order.
func TestEvaluateDeterministic(t *testing.T) {
	snapshot := Snapshot{MerchantID: id.MerchantID(uuid.New()), Name: "Only Name"}

	first := Evaluate(snapshot)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Evaluate(snapshot))
	}
}
