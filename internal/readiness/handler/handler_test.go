package handler

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vayva/internal/readiness"
	id "vayva/pkg/domain"
	dErrors "vayva/pkg/domain-errors"
)

type stubService struct {
	result readiness.OpsReadiness
	err    error
	calls  int
}

func (s *stubService) CheckCached(_ context.Context, _ id.MerchantID) (readiness.OpsReadiness, error) {
	s.calls++
	return s.result, s.err
}

func newTestRouter(service Service) *chi.Mux {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	r := chi.NewRouter()
	New(service, logger).Register(r)
	return r
}

func TestHandleGetReadiness(t *testing.T) {
	service := &stubService{
		result: readiness.OpsReadiness{
			Level: readiness.LevelWarning,
			Issues: []readiness.Issue{{
				Code:     readiness.CodeNoPayoutAccount,
				Severity: readiness.SeverityWarning,
				Title:    "No payout account",
			}},
			Summary: readiness.Summary{Identity: true, Plan: true, Template: true, Policies: true, Delivery: true},
		},
	}
	router := newTestRouter(service)

	req := httptest.NewRequest(http.MethodGet, "/stores/"+uuid.NewString()+"/readiness", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, service.calls)

	var resp ReadinessResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "warning", resp.Level)
	require.Len(t, resp.Issues, 1)
	assert.Equal(t, "NO_PAYOUT_ACCOUNT", resp.Issues[0].Code)
	assert.True(t, resp.Summary.Identity)
	assert.False(t, resp.Summary.Payments)
}

func TestHandleGetReadinessInvalidID(t *testing.T) {
	service := &stubService{}
	router := newTestRouter(service)

	req := httptest.NewRequest(http.MethodGet, "/stores/not-a-uuid/readiness", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, 0, service.calls, "service must not be called for invalid IDs")
}

func TestHandleGetReadinessNotFound(t *testing.T) {
	service := &stubService{err: dErrors.New(dErrors.CodeNotFound, "store not found")}
	router := newTestRouter(service)

	req := httptest.NewRequest(http.MethodGet, "/stores/"+uuid.NewString()+"/readiness", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)

	var envelope map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&envelope))
	assert.Equal(t, "not_found", envelope["error"])
}
