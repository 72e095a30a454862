package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/ventadesk/ventadesk/internal/platform/httpx"
	"github.com/ventadesk/ventadesk/internal/shared"
)

// Handler wires HTTP endpoints for catalog reads and combo creation.
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

// CreateComboRequest is the inbound payload for combo creation.
type CreateComboRequest struct {
	Name       string  `json:"name" validate:"required"`
	ProductIDs []int64 `json:"product_ids" validate:"required,min=1,dive,gt=0"`
}

type productListResponse struct {
	Items   []Product `json:"items"`
	Warning string    `json:"warning,omitempty"`
}

// ListProducts returns every sellable product, combos included. A failing
// catalog read degrades to an empty list with a warning instead of blocking
// the whole view.
func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	h.respondList(w, r, h.service.Products)
}

// ListAvailable returns the individual (non-combo) products that may become
// combo members.
func (h *Handler) ListAvailable(w http.ResponseWriter, r *http.Request) {
	h.respondList(w, r, h.service.AvailableProducts)
}

func (h *Handler) respondList(w http.ResponseWriter, r *http.Request, load func(ctx context.Context) ([]Product, error)) {
	products, err := load(r.Context())
	if err != nil {
		h.logger.Warn("catalog read degraded", slog.Any("error", err))
		httpx.JSON(w, http.StatusOK, productListResponse{
			Items:   []Product{},
			Warning: "product catalog is temporarily unavailable",
		})
		return
	}
	httpx.JSON(w, http.StatusOK, productListResponse{Items: products})
}

// CreateCombo validates and creates a combo offer.
func (h *Handler) CreateCombo(w http.ResponseWriter, r *http.Request) {
	var req CreateComboRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: malformed request body", shared.ErrValidation))
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: %s", shared.ErrValidation, err.Error()))
		return
	}

	combo, err := h.service.CreateCombo(r.Context(), req.Name, req.ProductIDs)
	if err != nil {
		h.logger.Error("create combo failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, combo)
}
