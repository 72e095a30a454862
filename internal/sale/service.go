package sale

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ventadesk/ventadesk/internal/shared"
)

// Service coordinates sale composition. All state lives in the service of
// record; this layer validates before the wire and never mutates optimistically.
type Service struct {
	logger *slog.Logger
	repo   Repository
}

// NewService constructs the sale service.
func NewService(logger *slog.Logger, repo Repository) *Service {
	return &Service{logger: logger, repo: repo}
}

// Create opens a draft sale for the given seller.
func (s *Service) Create(ctx context.Context, sellerID int64) (*Sale, error) {
	if sellerID <= 0 {
		return nil, fmt.Errorf("%w: seller id required", shared.ErrValidation)
	}
	created, err := s.repo.Create(ctx, sellerID)
	if err != nil {
		return nil, err
	}
	s.logger.Info("sale created", slog.Int64("sale_id", created.ID))
	return created, nil
}

// Get returns the sale with its currently assigned customer, if any.
func (s *Service) Get(ctx context.Context, id int64) (*Sale, error) {
	return s.repo.Get(ctx, id)
}

// SaveItems persists the composed lines to the sale. An empty composition is
// rejected here; the remote side is never asked to store an empty sale.
func (s *Service) SaveItems(ctx context.Context, id int64, items []Item) error {
	if len(items) == 0 {
		return fmt.Errorf("%w: sale needs at least one item", shared.ErrValidation)
	}
	for _, item := range items {
		if item.ProductID <= 0 {
			return fmt.Errorf("%w: invalid product id %d", shared.ErrValidation, item.ProductID)
		}
		if item.Quantity < 1 {
			return fmt.Errorf("%w: quantity must be at least 1", shared.ErrValidation)
		}
		if item.UnitPrice < 0 {
			return fmt.Errorf("%w: unit price cannot be negative", shared.ErrValidation)
		}
	}
	return s.repo.SaveItems(ctx, id, items)
}

// Totals fetches the authoritative totals for the sale.
func (s *Service) Totals(ctx context.Context, id int64) (*Totals, error) {
	return s.repo.Totals(ctx, id)
}

// AssignCustomer links a customer to the sale, replacing any previous one.
func (s *Service) AssignCustomer(ctx context.Context, id, customerID int64) (*Sale, error) {
	if customerID <= 0 {
		return nil, fmt.Errorf("%w: customer id required", shared.ErrValidation)
	}
	return s.repo.AssignCustomer(ctx, id, customerID)
}

// UnassignCustomer removes the customer link from the sale.
func (s *Service) UnassignCustomer(ctx context.Context, id int64) error {
	return s.repo.UnassignCustomer(ctx, id)
}

// ApplyBestDiscount asks the service of record for the best discount given the
// sale's customer and an optional coupon. Without an assigned customer the
// operation fails before anything reaches the wire. A successful application
// supersedes any prior discount on the sale; the returned totals are re-fetched
// from the service of record, never computed locally.
func (s *Service) ApplyBestDiscount(ctx context.Context, id int64, customer *Customer, couponCode string) (*DiscountResult, *Totals, error) {
	if customer == nil || customer.DNI == "" {
		return nil, nil, fmt.Errorf("%w: customer required", shared.ErrPrecondition)
	}

	result, err := s.repo.ApplyBestDiscount(ctx, id, customer.DNI, couponCode)
	if err != nil {
		return nil, nil, err
	}

	totals, err := s.repo.Totals(ctx, id)
	if err != nil {
		// The discount is applied remotely even if this read fails.
		return result, nil, fmt.Errorf("discount applied, totals unavailable: %w", err)
	}

	s.logger.Info("discount applied",
		slog.Int64("sale_id", id),
		slog.String("kind", result.Kind),
		slog.Float64("amount", result.AmountDiscounted))
	return result, totals, nil
}
