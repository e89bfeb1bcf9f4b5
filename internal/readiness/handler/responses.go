package handler

import (
	"vayva/internal/readiness"
)

// ReadinessResponse is the HTTP response for GET /stores/{merchantID}/readiness.
type ReadinessResponse struct {
	Level   string            `json:"level"`
	Issues  []IssueResponse   `json:"issues"`
	Summary readiness.Summary `json:"summary"`
}

// IssueResponse is one readiness issue in the response.
type IssueResponse struct {
	Code        string `json:"code"`
	Severity    string `json:"severity"`
	Title       string `json:"title"`
	Description string `json:"description"`
	ActionURL   string `json:"action_url,omitempty"`
	Fixable     bool   `json:"fixable"`
}

// FromResult converts a domain result to an HTTP response.
func FromResult(result readiness.OpsReadiness) ReadinessResponse {
	issues := make([]IssueResponse, 0, len(result.Issues))
	for _, issue := range result.Issues {
		issues = append(issues, IssueResponse{
			Code:        string(issue.Code),
			Severity:    string(issue.Severity),
			Title:       issue.Title,
			Description: issue.Description,
			ActionURL:   issue.ActionURL,
			Fixable:     issue.Fixable,
		})
	}
	return ReadinessResponse{
		Level:   string(result.Level),
		Issues:  issues,
		Summary: result.Summary,
	}
}
