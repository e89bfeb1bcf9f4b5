package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"vayva/internal/audit"
	id "vayva/pkg/domain"
	"vayva/pkg/platform/httputil"
	"vayva/pkg/requestcontext"
)

const defaultRecentLimit = 50

// Service defines the audit read operations the handler depends on.
type Service interface {
	ListByMerchant(ctx context.Context, merchantID id.MerchantID) ([]audit.Event, error)
	ListRecent(ctx context.Context, limit int) ([]audit.Event, error)
}

// Handler exposes the audit trail to ops tooling. Mounted behind the admin
// token middleware.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs an audit handler.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts audit endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/stores/{merchantID}/audit", h.HandleListByMerchant)
	r.Get("/audit/recent", h.HandleListRecent)
}

// HandleListByMerchant handles GET /admin/stores/{merchantID}/audit.
func (h *Handler) HandleListByMerchant(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	merchantID, err := id.ParseMerchantID(chi.URLParam(r, "merchantID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	events, err := h.service.ListByMerchant(ctx, merchantID)
	if err != nil {
		h.logger.ErrorContext(ctx, "audit list failed",
			"request_id", requestcontext.RequestID(ctx),
			"merchant_id", merchantID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	if events == nil {
		events = []audit.Event{}
	}

	httputil.WriteJSON(w, http.StatusOK, EventsResponse{Events: events})
}

// HandleListRecent handles GET /admin/audit/recent.
func (h *Handler) HandleListRecent(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	limit := defaultRecentLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err == nil && parsed > 0 {
			limit = parsed
		}
	}

	events, err := h.service.ListRecent(ctx, limit)
	if err != nil {
		h.logger.ErrorContext(ctx, "recent audit list failed",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	if events == nil {
		events = []audit.Event{}
	}

	httputil.WriteJSON(w, http.StatusOK, EventsResponse{Events: events})
}

// EventsResponse wraps a list of audit events.
type EventsResponse struct {
	Events []audit.Event `json:"events"`
}
