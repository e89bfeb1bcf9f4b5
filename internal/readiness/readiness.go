// Package readiness computes whether a merchant's store can go live.
//
// The package separates fact collection (I/O) from rule evaluation (pure).
// Evaluate is deterministic over a Snapshot so the publish gate and the
// remediator can both trust a re-check without coordinating.
package readiness

import (
	"time"

	"vayva/internal/merchant/models"
	id "vayva/pkg/domain"
)

// Severity tags an issue as publish-blocking or advisory.
type Severity string

const (
	SeverityBlocker Severity = "blocker"
	SeverityWarning Severity = "warning"
)

// Level is the aggregate readiness classification.
type Level string

const (
	LevelBlocked Level = "blocked"
	LevelWarning Level = "warning"
	LevelReady   Level = "ready"
)

// IssueCode is a stable identifier for one failed rule.
type IssueCode string

const (
	CodeIdentityIncomplete  IssueCode = "IDENTITY_INCOMPLETE"
	CodeNoActivePlan        IssueCode = "NO_ACTIVE_PLAN"
	CodeNoTemplateSelected  IssueCode = "NO_TEMPLATE_SELECTED"
	CodePoliciesUnpublished IssueCode = "POLICIES_UNPUBLISHED"
	CodeNoDeliveryMethod    IssueCode = "NO_DELIVERY_METHOD"
	CodeNoPayoutAccount     IssueCode = "NO_PAYOUT_ACCOUNT"
)

// Issue is one failed readiness rule. Issues are value objects generated
// fresh on every evaluation and never persisted.
type Issue struct {
	Code        IssueCode `json:"code"`
	Severity    Severity  `json:"severity"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	ActionURL   string    `json:"action_url,omitempty"`
	Fixable     bool      `json:"fixable"`
}

// Summary records pass/fail per rule category regardless of severity, for
// UI display independent of the gating decision.
type Summary struct {
	Identity bool `json:"identity"`
	Plan     bool `json:"plan"`
	Template bool `json:"template"`
	Policies bool `json:"policies"`
	Delivery bool `json:"delivery"`
	Payments bool `json:"payments"`
}

// OpsReadiness is the aggregate evaluation result. Derived, not persisted.
type OpsReadiness struct {
	Level   Level   `json:"level"`
	Issues  []Issue `json:"issues"`
	Summary Summary `json:"summary"`
}

// Blocked reports whether any blocker issue is present.
func (r OpsReadiness) Blocked() bool { return r.Level == LevelBlocked }

// Snapshot is a point-in-time read of every fact the rules consume. Built
// fresh on each evaluation by the collector; one fixed shape so the rules
// are exhaustively checkable.
type Snapshot struct {
	MerchantID id.MerchantID
	CreatedAt  time.Time

	Name     string
	Slug     string
	Category string
	Email    string
	Phone    string

	PlanTier   string
	PlanActive bool

	TemplateID string

	// PublishedPolicies holds the policy types currently in PUBLISHED state.
	PublishedPolicies map[models.PolicyType]bool

	DeliveryConfigured bool
	PayoutAccountSet   bool

	KYCStatus     models.KYCStatus
	PublishStatus models.PublishStatus

	CollectedAt time.Time
}
