package sale

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/ventadesk/ventadesk/internal/platform/httpx"
	"github.com/ventadesk/ventadesk/internal/shared"
)

// Handler wires HTTP endpoints for direct sale composition.
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

// CreateSaleRequest opens a draft sale.
type CreateSaleRequest struct {
	SellerID int64 `json:"seller_id" validate:"required,gt=0"`
}

// SaveItemsRequest persists the composed lines.
type SaveItemsRequest struct {
	Items []ItemRequest `json:"items" validate:"required,min=1,dive"`
}

// ItemRequest is one composed line.
type ItemRequest struct {
	ProductID   int64   `json:"product_id" validate:"required,gt=0"`
	ProductName string  `json:"product_name"`
	UnitPrice   float64 `json:"unit_price" validate:"gte=0"`
	Quantity    int     `json:"quantity" validate:"required,gte=1"`
}

// AssignCustomerRequest links a customer to the sale.
type AssignCustomerRequest struct {
	CustomerID int64 `json:"customer_id" validate:"required,gt=0"`
}

// ApplyDiscountRequest asks for the best discount. The customer is the one
// assigned to the sale; its DNI keys the discount lookup.
type ApplyDiscountRequest struct {
	CustomerID  int64  `json:"customer_id"`
	CustomerDNI string `json:"customer_dni"`
	CouponCode  string `json:"coupon_code"`
}

type discountResponse struct {
	Result *DiscountResult `json:"result"`
	Totals *Totals         `json:"totals,omitempty"`
}

func pathID(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid sale id %q", shared.ErrValidation, raw)
	}
	return id, nil
}

// Create opens a draft sale.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateSaleRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: malformed request body", shared.ErrValidation))
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: %s", shared.ErrValidation, err.Error()))
		return
	}

	created, err := h.service.Create(r.Context(), req.SellerID)
	if err != nil {
		h.logger.Error("create sale failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, created)
}

// Show returns the sale with its assigned customer.
func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	s, err := h.service.Get(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, s)
}

// SaveItems persists the composed cart lines to the sale.
func (h *Handler) SaveItems(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	var req SaveItemsRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: malformed request body", shared.ErrValidation))
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: %s", shared.ErrValidation, err.Error()))
		return
	}

	items := make([]Item, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, Item{
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			UnitPrice:   it.UnitPrice,
			Quantity:    it.Quantity,
		})
	}
	if err := h.service.SaveItems(r.Context(), id, items); err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.NoContent(w)
}

// Totals returns the sale's authoritative totals.
func (h *Handler) Totals(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	totals, err := h.service.Totals(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, totals)
}

// AssignCustomer links a customer to the sale.
func (h *Handler) AssignCustomer(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	var req AssignCustomerRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: malformed request body", shared.ErrValidation))
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: %s", shared.ErrValidation, err.Error()))
		return
	}

	s, err := h.service.AssignCustomer(r.Context(), id, req.CustomerID)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, s)
}

// UnassignCustomer removes the customer link from the sale.
func (h *Handler) UnassignCustomer(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	if err := h.service.UnassignCustomer(r.Context(), id); err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.NoContent(w)
}

// ApplyDiscount applies the best available discount to the sale.
func (h *Handler) ApplyDiscount(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	var req ApplyDiscountRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: malformed request body", shared.ErrValidation))
		return
	}

	var customer *Customer
	if req.CustomerDNI != "" {
		customer = &Customer{ID: req.CustomerID, DNI: req.CustomerDNI}
	}

	result, totals, err := h.service.ApplyBestDiscount(r.Context(), id, customer, req.CouponCode)
	if err != nil {
		if result != nil {
			// Applied remotely, totals read failed. The caller re-fetches.
			h.logger.Warn("discount applied but totals unavailable", slog.Any("error", err))
			httpx.JSON(w, http.StatusOK, discountResponse{Result: result})
			return
		}
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, discountResponse{Result: result, Totals: totals})
}
