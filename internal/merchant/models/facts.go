package models

import (
	"time"

	id "vayva/pkg/domain"
)

// TemplateSelection records the storefront template a merchant picked.
type TemplateSelection struct {
	MerchantID id.MerchantID
	TemplateID string
	SelectedAt time.Time
}

// DeliveryKind distinguishes merchant-run delivery from partner integrations.
type DeliveryKind string

const (
	DeliveryKindSelfManaged DeliveryKind = "self_managed"
	DeliveryKindPartner     DeliveryKind = "partner"
)

// DeliveryMethod is one configured way the merchant fulfills orders.
type DeliveryMethod struct {
	ID         string
	MerchantID id.MerchantID
	Kind       DeliveryKind
	Active     bool
}

// PayoutAccount is a bank beneficiary for merchant payouts.
type PayoutAccount struct {
	MerchantID  id.MerchantID
	BankName    string
	Beneficiary string
	Default     bool
}
