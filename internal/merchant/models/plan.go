package models

import (
	"time"

	id "vayva/pkg/domain"
)

// PlanStatus is the billing state of a merchant's subscription.
type PlanStatus string

const (
	PlanStatusActive    PlanStatus = "active"
	PlanStatusCancelled PlanStatus = "cancelled"
	PlanStatusExpired   PlanStatus = "expired"
)

// Plan is the merchant's subscription record.
type Plan struct {
	MerchantID id.MerchantID
	Tier       string
	Status     PlanStatus
	// ExpiresAt is nil for plans without a fixed term.
	ExpiresAt *time.Time
}

// IsActive reports whether the plan entitles the merchant at the given time.
func (p *Plan) IsActive(now time.Time) bool {
	if p.Status != PlanStatusActive {
		return false
	}
	if p.ExpiresAt != nil && !p.ExpiresAt.After(now) {
		return false
	}
	return true
}
