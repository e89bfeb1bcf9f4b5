package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"vayva/internal/publish"
	id "vayva/pkg/domain"
	"vayva/pkg/platform/httputil"
	"vayva/pkg/requestcontext"
)

// Gate defines the publish operations the handler depends on.
type Gate interface {
	GoLive(ctx context.Context, merchantID id.MerchantID) (*publish.Transition, error)
	Unpublish(ctx context.Context, merchantID id.MerchantID, reason string) (*publish.Transition, error)
	OverridePublish(ctx context.Context, merchantID id.MerchantID, reason string) (*publish.Transition, error)
}

// Handler wires publish endpoints to the publish gate.
type Handler struct {
	gate   Gate
	logger *slog.Logger
}

// New constructs a publish handler.
func New(gate Gate, logger *slog.Logger) *Handler {
	return &Handler{gate: gate, logger: logger}
}

// Register mounts the merchant-facing publish endpoints.
func (h *Handler) Register(r chi.Router) {
	r.Post("/stores/{merchantID}/publish", h.HandleGoLive)
	r.Post("/stores/{merchantID}/unpublish", h.HandleUnpublish)
}

// RegisterAdmin mounts the ops-only override endpoint. The caller mounts
// this group behind the admin token middleware.
func (h *Handler) RegisterAdmin(r chi.Router) {
	r.Post("/stores/{merchantID}/publish/override", h.HandleOverride)
}

// HandleGoLive handles POST /stores/{merchantID}/publish.
func (h *Handler) HandleGoLive(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	merchantID, err := id.ParseMerchantID(chi.URLParam(r, "merchantID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	transition, err := h.gate.GoLive(ctx, merchantID)
	if err != nil {
		h.logError(ctx, "go-live failed", merchantID, err)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, transition)
}

// HandleUnpublish handles POST /stores/{merchantID}/unpublish.
func (h *Handler) HandleUnpublish(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	merchantID, err := id.ParseMerchantID(chi.URLParam(r, "merchantID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	body, ok := httputil.DecodeAndPrepare[UnpublishRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}

	transition, err := h.gate.Unpublish(ctx, merchantID, body.Reason)
	if err != nil {
		h.logError(ctx, "unpublish failed", merchantID, err)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, transition)
}

// HandleOverride handles POST /admin/stores/{merchantID}/publish/override.
func (h *Handler) HandleOverride(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	merchantID, err := id.ParseMerchantID(chi.URLParam(r, "merchantID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	body, ok := httputil.DecodeAndPrepare[OverrideRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}

	transition, err := h.gate.OverridePublish(ctx, merchantID, body.Reason)
	if err != nil {
		h.logError(ctx, "publish override failed", merchantID, err)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, transition)
}

func (h *Handler) logError(ctx context.Context, msg string, merchantID id.MerchantID, err error) {
	h.logger.ErrorContext(ctx, msg,
		"request_id", requestcontext.RequestID(ctx),
		"merchant_id", merchantID,
		"error", err,
	)
}
