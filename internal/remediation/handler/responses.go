package handler

import (
	"vayva/internal/readiness"
	"vayva/internal/remediation"
)

// RemediateResponse is the HTTP response for POST /stores/{merchantID}/remediate.
// Fixes lists every attempted fix this run; an empty list means all fixable
// facts were already satisfied. Readiness is the state after the fixes.
type RemediateResponse struct {
	CorrelationID string                 `json:"correlation_id"`
	Fixes         []remediation.Result   `json:"fixes"`
	Readiness     readiness.OpsReadiness `json:"readiness"`
}
