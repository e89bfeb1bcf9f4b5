package models

import (
	"time"

	id "vayva/pkg/domain"
)

// PolicyType enumerates the storefront policy documents.
type PolicyType string

const (
	PolicyTypeRefund   PolicyType = "refund"
	PolicyTypeShipping PolicyType = "shipping"
	PolicyTypeTerms    PolicyType = "terms"
	PolicyTypePrivacy  PolicyType = "privacy"
)

// PolicyTypes lists all policy types in display order. Remediation iterates
// this slice so fix ordering stays deterministic.
var PolicyTypes = []PolicyType{
	PolicyTypeRefund,
	PolicyTypeShipping,
	PolicyTypeTerms,
	PolicyTypePrivacy,
}

// PolicyStatus is the publication state of a policy document.
type PolicyStatus string

const (
	PolicyStatusDraft     PolicyStatus = "DRAFT"
	PolicyStatusPublished PolicyStatus = "PUBLISHED"
)

// Policy is one policy document per merchant and type.
type Policy struct {
	MerchantID id.MerchantID
	Type       PolicyType
	Status     PolicyStatus
	Body       string
	UpdatedAt  time.Time
}
