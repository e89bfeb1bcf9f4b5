package remediation

import "vayva/internal/merchant/models"

// DefaultTemplateID is the storefront template applied when a merchant never
// picked one. It renders with platform styling and no custom sections.
const DefaultTemplateID = "simple-retail"

// defaultPolicyBodies are the platform-default policy texts published when a
// merchant has no policy of that type. Merchants can replace them any time
// from the policy editor.
var defaultPolicyBodies = map[models.PolicyType]string{
	models.PolicyTypeRefund:   "Refunds are accepted within 7 days of delivery for items in their original condition. Contact the store to start a return.",
	models.PolicyTypeShipping: "Orders are dispatched within 2 business days. Delivery times depend on the selected delivery method at checkout.",
	models.PolicyTypeTerms:    "By placing an order you agree to the store's listed prices, delivery terms, and refund policy.",
	models.PolicyTypePrivacy:  "Customer contact details are used only to fulfill orders and are never shared with third parties.",
}
