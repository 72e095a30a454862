package cart

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/ventadesk/ventadesk/internal/platform/httpx"
	"github.com/ventadesk/ventadesk/internal/shared"
)

// Handler wires HTTP endpoints for session cart composition.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	validator *validator.Validate
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{
		logger:    logger,
		service:   service,
		validator: validator.New(),
	}
}

// AddItemRequest is the inbound payload for adding a product to a cart.
type AddItemRequest struct {
	ProductID int64 `json:"product_id" validate:"required,gt=0"`
}

// UpdateQuantityRequest is the inbound payload for changing a line quantity.
type UpdateQuantityRequest struct {
	Quantity int `json:"quantity" validate:"required,gte=1"`
}

type sessionResponse struct {
	Session *Session `json:"session"`
	Totals  Totals   `json:"totals"`
}

// CreateSession opens a fresh empty cart.
func (h *Handler) CreateSession(w http.ResponseWriter, r *http.Request) {
	sess, err := h.service.CreateSession(r.Context())
	if err != nil {
		h.logger.Error("create cart session failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, sessionResponse{Session: sess})
}

// ShowSession returns the cart and its current totals.
func (h *Handler) ShowSession(w http.ResponseWriter, r *http.Request) {
	sess, totals, err := h.service.GetSession(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, sessionResponse{Session: sess, Totals: totals.Rounded()})
}

// AddItem adds a product line to the cart.
func (h *Handler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req AddItemRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: malformed request body", shared.ErrValidation))
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: %s", shared.ErrValidation, err.Error()))
		return
	}

	sess, totals, err := h.service.AddItem(r.Context(), chi.URLParam(r, "id"), req.ProductID)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, sessionResponse{Session: sess, Totals: totals.Rounded()})
}

// UpdateQuantity replaces a line's quantity.
func (h *Handler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	var req UpdateQuantityRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: malformed request body", shared.ErrValidation))
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: %s", shared.ErrValidation, err.Error()))
		return
	}

	sess, totals, err := h.service.UpdateQuantity(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "tempID"), req.Quantity)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, sessionResponse{Session: sess, Totals: totals.Rounded()})
}

// RemoveItem drops a line from the cart.
func (h *Handler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	sess, totals, err := h.service.RemoveItem(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "tempID"))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, sessionResponse{Session: sess, Totals: totals.Rounded()})
}

// DiscardSession drops the cart entirely.
func (h *Handler) DiscardSession(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DiscardSession(r.Context(), chi.URLParam(r, "id")); err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.NoContent(w)
}
