package handler

import (
	"bytes"
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

	"vayva/internal/merchant/models"
	"vayva/internal/publish"
	"vayva/internal/readiness"
	id "vayva/pkg/domain"
	dErrors "vayva/pkg/domain-errors"
)

type stubGate struct {
	transition *publish.Transition
	err        error

	goLiveCalls    int
	unpublishCalls int
	overrideCalls  int
	lastReason     string
}

func (g *stubGate) GoLive(_ context.Context, _ id.MerchantID) (*publish.Transition, error) {
	g.goLiveCalls++
	return g.transition, g.err
}

func (g *stubGate) Unpublish(_ context.Context, _ id.MerchantID, reason string) (*publish.Transition, error) {
	g.unpublishCalls++
	g.lastReason = reason
	return g.transition, g.err
}

func (g *stubGate) OverridePublish(_ context.Context, _ id.MerchantID, reason string) (*publish.Transition, error) {
	g.overrideCalls++
	g.lastReason = reason
	return g.transition, g.err
}

func newTestRouter(gate Gate) *chi.Mux {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := New(gate, logger)
	r := chi.NewRouter()
	h.Register(r)
	r.Route("/admin", func(admin chi.Router) {
		h.RegisterAdmin(admin)
	})
	return r
}

func TestHandleGoLive(t *testing.T) {
	merchantID := id.MerchantID(uuid.New())
	gate := &stubGate{transition: &publish.Transition{
		MerchantID: merchantID,
		From:       models.PublishStatusDraft,
		To:         models.PublishStatusLive,
	}}
	router := newTestRouter(gate)

	req := httptest.NewRequest(http.MethodPost, "/stores/"+merchantID.String()+"/publish", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, gate.goLiveCalls)

	var resp publish.Transition
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, models.PublishStatusLive, resp.To)
}

func TestHandleGoLiveNotReady(t *testing.T) {
	blocked := readiness.OpsReadiness{
		Level: readiness.LevelBlocked,
		Issues: []readiness.Issue{{
			Code:     readiness.CodeNoDeliveryMethod,
			Severity: readiness.SeverityBlocker,
		}},
	}
	gate := &stubGate{err: dErrors.New(dErrors.CodeNotReady, "store is not ready to go live").WithDetails(blocked)}
	router := newTestRouter(gate)

	req := httptest.NewRequest(http.MethodPost, "/stores/"+uuid.NewString()+"/publish", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusConflict, rec.Code)

	var envelope struct {
		Error   string                 `json:"error"`
		Details readiness.OpsReadiness `json:"details"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&envelope))
	assert.Equal(t, "not_ready", envelope.Error)
	assert.Equal(t, readiness.LevelBlocked, envelope.Details.Level)
	require.Len(t, envelope.Details.Issues, 1)
	assert.Equal(t, readiness.CodeNoDeliveryMethod, envelope.Details.Issues[0].Code)
}

func TestHandleUnpublish(t *testing.T) {
	merchantID := id.MerchantID(uuid.New())
	gate := &stubGate{transition: &publish.Transition{
		MerchantID: merchantID,
		From:       models.PublishStatusLive,
		To:         models.PublishStatusUnpublished,
	}}
	router := newTestRouter(gate)

	body, _ := json.Marshal(UnpublishRequest{Reason: "closing for renovation"})
	req := httptest.NewRequest(http.MethodPost, "/stores/"+merchantID.String()+"/unpublish", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "closing for renovation", gate.lastReason)
}

func TestHandleUnpublishMissingReason(t *testing.T) {
	gate := &stubGate{}
	router := newTestRouter(gate)

	body, _ := json.Marshal(UnpublishRequest{Reason: "   "})
	req := httptest.NewRequest(http.MethodPost, "/stores/"+uuid.NewString()+"/unpublish", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, 0, gate.unpublishCalls, "gate must not be called when validation fails")
}

func TestHandleOverride(t *testing.T) {
	merchantID := id.MerchantID(uuid.New())
	gate := &stubGate{transition: &publish.Transition{
		MerchantID: merchantID,
		From:       models.PublishStatusDraft,
		To:         models.PublishStatusLive,
	}}
	router := newTestRouter(gate)

	body, _ := json.Marshal(OverrideRequest{Reason: "verified out of band"})
	req := httptest.NewRequest(http.MethodPost, "/admin/stores/"+merchantID.String()+"/publish/override", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, gate.overrideCalls)
	assert.Equal(t, "verified out of band", gate.lastReason)
}
