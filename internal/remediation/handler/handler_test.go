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
	"vayva/internal/remediation"
	id "vayva/pkg/domain"
	dErrors "vayva/pkg/domain-errors"
)

type stubRemediator struct {
	results       []remediation.Result
	err           error
	correlationID string
}

func (s *stubRemediator) Run(_ context.Context, _ id.MerchantID, correlationID string) ([]remediation.Result, error) {
	s.correlationID = correlationID
	return s.results, s.err
}

type stubChecker struct {
	result      readiness.OpsReadiness
	err         error
	invalidated int
}

func (s *stubChecker) Check(_ context.Context, _ id.MerchantID) (readiness.OpsReadiness, error) {
	return s.result, s.err
}

func (s *stubChecker) InvalidateCache(_ context.Context, _ id.MerchantID) {
	s.invalidated++
}

func newTestRouter(service Service, checker ReadinessChecker) *chi.Mux {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	r := chi.NewRouter()
	New(service, checker, logger).Register(r)
	return r
}

func TestHandleRemediate(t *testing.T) {
	remediator := &stubRemediator{results: []remediation.Result{
		{FixCode: remediation.FixSelectDefaultTemplate, Outcome: remediation.OutcomeApplied},
	}}
	checker := &stubChecker{result: readiness.OpsReadiness{Level: readiness.LevelWarning}}
	router := newTestRouter(remediator, checker)

	req := httptest.NewRequest(http.MethodPost, "/stores/"+uuid.NewString()+"/remediate", nil)
	req.Header.Set("X-Correlation-ID", "corr-42")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "corr-42", remediator.correlationID)
	assert.Equal(t, 1, checker.invalidated, "cache must be invalidated after fixes")

	var resp RemediateResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "corr-42", resp.CorrelationID)
	require.Len(t, resp.Fixes, 1)
	assert.Equal(t, remediation.FixSelectDefaultTemplate, resp.Fixes[0].FixCode)
	assert.Equal(t, readiness.LevelWarning, resp.Readiness.Level)
}

func TestHandleRemediateGeneratesCorrelationID(t *testing.T) {
	remediator := &stubRemediator{}
	checker := &stubChecker{result: readiness.OpsReadiness{Level: readiness.LevelReady}}
	router := newTestRouter(remediator, checker)

	req := httptest.NewRequest(http.MethodPost, "/stores/"+uuid.NewString()+"/remediate", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, remediator.correlationID)

	var resp RemediateResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, remediator.correlationID, resp.CorrelationID)
	assert.NotNil(t, resp.Fixes)
	assert.Empty(t, resp.Fixes)
}

func TestHandleRemediateCooldown(t *testing.T) {
	remediator := &stubRemediator{err: dErrors.New(dErrors.CodeConflict, "remediation ran recently for this merchant, try again shortly")}
	checker := &stubChecker{}
	router := newTestRouter(remediator, checker)

	req := httptest.NewRequest(http.MethodPost, "/stores/"+uuid.NewString()+"/remediate", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, 0, checker.invalidated, "no cache invalidation when the run is rejected")
}

func TestHandleRemediateUnknownMerchant(t *testing.T) {
	remediator := &stubRemediator{err: dErrors.New(dErrors.CodeNotFound, "store not found")}
	checker := &stubChecker{}
	router := newTestRouter(remediator, checker)

	req := httptest.NewRequest(http.MethodPost, "/stores/"+uuid.NewString()+"/remediate", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
