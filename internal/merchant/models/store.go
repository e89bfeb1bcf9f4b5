package models

import (
	"time"

	id "vayva/pkg/domain"
)

// PublishStatus is the storefront publication state, owned by the store
// record and mutated only by the publish gate.
type PublishStatus string

const (
	PublishStatusDraft       PublishStatus = "DRAFT"
	PublishStatusLive        PublishStatus = "LIVE"
	PublishStatusUnpublished PublishStatus = "UNPUBLISHED"
)

// CanTransitionTo reports whether the normal (non-override) state machine
// allows the transition:
//
//	DRAFT -> LIVE
//	LIVE -> UNPUBLISHED
//	UNPUBLISHED -> LIVE
func (s PublishStatus) CanTransitionTo(to PublishStatus) bool {
	switch s {
	case PublishStatusDraft:
		return to == PublishStatusLive
	case PublishStatusLive:
		return to == PublishStatusUnpublished
	case PublishStatusUnpublished:
		return to == PublishStatusLive
	}
	return false
}

// KYCStatus is the merchant verification state, maintained by the KYC
// pipeline and read here only for the readiness summary.
type KYCStatus string

const (
	KYCStatusPending  KYCStatus = "pending"
	KYCStatusVerified KYCStatus = "verified"
	KYCStatusRejected KYCStatus = "rejected"
)

// StoreRecord is the merchant's store row: identity facts plus the publish
// state and its audit fields.
type StoreRecord struct {
	MerchantID id.MerchantID
	Name       string
	Slug       string
	Category   string
	Email      string
	Phone      string
	KYCStatus  KYCStatus

	PublishStatus    PublishStatus
	PublishChangedBy id.ActorID
	PublishChangedAs string // actor label at the time of the change
	PublishReason    string
	PublishChangedAt time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasContactChannel reports whether at least one contact channel is set.
func (s *StoreRecord) HasContactChannel() bool {
	return s.Email != "" || s.Phone != ""
}
