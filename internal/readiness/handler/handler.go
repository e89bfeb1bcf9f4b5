package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"vayva/internal/readiness"
	id "vayva/pkg/domain"
	"vayva/pkg/platform/httputil"
	"vayva/pkg/requestcontext"
)

// Service defines the readiness operations the handler depends on.
type Service interface {
	CheckCached(ctx context.Context, merchantID id.MerchantID) (readiness.OpsReadiness, error)
}

// Handler wires readiness endpoints to the readiness service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs a readiness handler.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts readiness endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/stores/{merchantID}/readiness", h.HandleGetReadiness)
}

// HandleGetReadiness handles GET /stores/{merchantID}/readiness.
func (h *Handler) HandleGetReadiness(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	merchantID, err := id.ParseMerchantID(chi.URLParam(r, "merchantID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	result, err := h.service.CheckCached(ctx, merchantID)
	if err != nil {
		h.logger.ErrorContext(ctx, "readiness check failed",
			"request_id", requestcontext.RequestID(ctx),
			"merchant_id", merchantID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, FromResult(result))
}
