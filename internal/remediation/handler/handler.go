package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"vayva/internal/readiness"
	"vayva/internal/remediation"
	id "vayva/pkg/domain"
	"vayva/pkg/platform/httputil"
	"vayva/pkg/requestcontext"
)

// Service defines the remediation operations the handler depends on.
type Service interface {
	Run(ctx context.Context, merchantID id.MerchantID, correlationID string) ([]remediation.Result, error)
}

// ReadinessChecker re-evaluates readiness after the fixes land so the
// response can report the new state.
type ReadinessChecker interface {
	Check(ctx context.Context, merchantID id.MerchantID) (readiness.OpsReadiness, error)
	InvalidateCache(ctx context.Context, merchantID id.MerchantID)
}

// Handler wires the remediation endpoint to the remediation service.
type Handler struct {
	service   Service
	readiness ReadinessChecker
	logger    *slog.Logger
}

// New constructs a remediation handler.
func New(service Service, readiness ReadinessChecker, logger *slog.Logger) *Handler {
	return &Handler{service: service, readiness: readiness, logger: logger}
}

// Register mounts remediation endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/stores/{merchantID}/remediate", h.HandleRemediate)
}

// HandleRemediate handles POST /stores/{merchantID}/remediate.
func (h *Handler) HandleRemediate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	merchantID, err := id.ParseMerchantID(chi.URLParam(r, "merchantID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	correlationID := r.Header.Get("X-Correlation-ID")
	if correlationID == "" {
		correlationID = uuid.NewString()
	}

	fixes, err := h.service.Run(ctx, merchantID, correlationID)
	if fixes == nil {
		fixes = []remediation.Result{}
	}
	if err != nil {
		h.logger.ErrorContext(ctx, "remediation run failed",
			"request_id", requestcontext.RequestID(ctx),
			"merchant_id", merchantID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	// Facts may have changed; drop the cached result and report fresh state.
	h.readiness.InvalidateCache(ctx, merchantID)
	result, err := h.readiness.Check(ctx, merchantID)
	if err != nil {
		h.logger.ErrorContext(ctx, "post-remediation readiness check failed",
			"request_id", requestcontext.RequestID(ctx),
			"merchant_id", merchantID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, RemediateResponse{
		CorrelationID: correlationID,
		Fixes:         fixes,
		Readiness:     result,
	})
}
