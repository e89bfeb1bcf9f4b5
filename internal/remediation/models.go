// Package remediation applies automated fixes for the fixable subset of
// readiness issues. Fixes only ever fill in platform defaults; facts that
// need genuine merchant input (identity, plan, delivery, payouts) are never
// touched.
package remediation

import (
	"time"

	"vayva/internal/merchant/models"
	id "vayva/pkg/domain"
)

// FixCode identifies one automated fix.
type FixCode string

const (
	FixSelectDefaultTemplate FixCode = "select_default_template"
)

// FixPublishPolicy returns the fix code for auto-publishing one policy type.
func FixPublishPolicy(policyType models.PolicyType) FixCode {
	return FixCode("publish_default_policy_" + string(policyType))
}

// Outcome classifies one fix attempt.
type Outcome string

const (
	// OutcomeApplied means the corrective write succeeded.
	OutcomeApplied Outcome = "applied"
	// OutcomeFailed means the write failed; Detail carries the error. A
	// failed fix never aborts the remaining fixes.
	OutcomeFailed Outcome = "failed"
)

// Result is the per-fix outcome returned to the caller.
type Result struct {
	FixCode FixCode `json:"fix_code"`
	Outcome Outcome `json:"outcome"`
	Detail  string  `json:"detail,omitempty"`
}

// LogEntry is the persisted audit record of one fix attempt. Append-only.
type LogEntry struct {
	ID            string
	CorrelationID string
	MerchantID    id.MerchantID
	FixCode       FixCode
	Outcome       Outcome
	Detail        string
	CreatedAt     time.Time
}
