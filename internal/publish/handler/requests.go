package handler

import (
	"strings"

	dErrors "vayva/pkg/domain-errors"
)

// UnpublishRequest is the body for POST /stores/{merchantID}/unpublish.
type UnpublishRequest struct {
	Reason string `json:"reason"`
}

// Validate normalizes and checks the request.
func (r *UnpublishRequest) Validate() error {
	r.Reason = strings.TrimSpace(r.Reason)
	if r.Reason == "" {
		return dErrors.New(dErrors.CodeValidation, "reason is required")
	}
	return nil
}

// OverrideRequest is the body for POST /admin/stores/{merchantID}/publish/override.
type OverrideRequest struct {
	Reason string `json:"reason"`
}

// Validate normalizes and checks the request.
func (r *OverrideRequest) Validate() error {
	r.Reason = strings.TrimSpace(r.Reason)
	if r.Reason == "" {
		return dErrors.New(dErrors.CodeValidation, "reason is required")
	}
	return nil
}
