package quotation

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ventadesk/ventadesk/internal/shared"
)

// Service drives the quotation lifecycle: DRAFT → SENT → {ACCEPTED, REJECTED},
// plus the one-shot conversion of an ACCEPTED quotation into a sale. Local
// guards run before every remote call; local state is never mutated on remote
// failure because the service holds none.
type Service struct {
	logger  *slog.Logger
	repo    Repository
	taxRate float64
	now     func() time.Time
}

// NewService constructs the quotation service. taxRate is the configured
// jurisdiction rate (e.g. 0.18).
func NewService(logger *slog.Logger, repo Repository, taxRate float64) *Service {
	return &Service{
		logger:  logger,
		repo:    repo,
		taxRate: taxRate,
		now:     time.Now,
	}
}

// Create persists a quotation composed from a cart. An empty item list is
// rejected locally; zero-valued totals are valid for the pricing engine but
// not for a persisted document.
func (s *Service) Create(ctx context.Context, req CreateQuotationRequest) (*Quotation, error) {
	if req.ClientID <= 0 {
		return nil, fmt.Errorf("%w: client required", shared.ErrValidation)
	}
	if req.SellerID <= 0 {
		return nil, fmt.Errorf("%w: seller required", shared.ErrValidation)
	}
	if len(req.Items) == 0 {
		return nil, fmt.Errorf("%w: at least one line item required", shared.ErrValidation)
	}

	validity := req.ValidityDays
	if validity == 0 {
		validity = DefaultValidityDays
	}
	if validity < 0 {
		return nil, fmt.Errorf("%w: validity days must be positive", shared.ErrValidation)
	}

	now := s.now()
	draft := Quotation{
		ClientID:     req.ClientID,
		SellerID:     req.SellerID,
		ValidityDays: validity,
		Status:       StatusDraft,
		CreatedAt:    now,
		ExpiresAt:    now.AddDate(0, 0, validity),
	}
	for _, item := range req.Items {
		if item.Quantity < 1 {
			return nil, fmt.Errorf("%w: quantity must be at least 1", shared.ErrValidation)
		}
		if item.UnitPrice < 0 {
			return nil, fmt.Errorf("%w: unit price must not be negative", shared.ErrValidation)
		}
		line := Item{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			UnitPrice:   item.UnitPrice,
			Quantity:    item.Quantity,
			Subtotal:    item.UnitPrice * float64(item.Quantity),
		}
		draft.Items = append(draft.Items, line)
		draft.Subtotal += line.Subtotal
	}
	draft.Tax = draft.Subtotal * s.taxRate
	draft.Total = draft.Subtotal + draft.Tax

	created, err := s.repo.Create(ctx, draft)
	if err != nil {
		return nil, err
	}
	s.logger.Info("quotation created",
		slog.Int64("id", created.ID),
		slog.String("number", created.Number),
		slog.Float64("total", created.Total))
	return created, nil
}

// Get fetches one quotation with its items.
func (s *Service) Get(ctx context.Context, id int64) (*Quotation, error) {
	return s.repo.Get(ctx, id)
}

// List returns one page of quotations, newest first.
func (s *Service) List(ctx context.Context, page, size int) (*ListPage, error) {
	page, size = shared.NormalizePageRequest(page, size)
	return s.repo.List(ctx, page, size)
}

// Send dispatches the quotation by email via the service of record. Sending is
// allowed from DRAFT and again from SENT (re-send); a quotation past its
// validity window still sends, but the returned warning must be surfaced.
func (s *Service) Send(ctx context.Context, id int64, req SendRequest) (*Quotation, string, error) {
	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, "", fmt.Errorf("get quotation: %w", err)
	}
	if existing.Converted() {
		return nil, "", fmt.Errorf("%w: quotation already converted to a sale", shared.ErrInvalidState)
	}
	if existing.Status == StatusRejected {
		return nil, "", fmt.Errorf("%w: rejected quotations cannot be sent", shared.ErrInvalidState)
	}

	var warning string
	if existing.Expired(s.now()) {
		warning = fmt.Sprintf("quotation %s expired on %s", existing.Number, existing.ExpiresAt.Format("2006-01-02"))
	}

	if err := s.repo.Send(ctx, id, req); err != nil {
		return nil, "", err
	}

	updated, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, "", fmt.Errorf("refresh quotation: %w", err)
	}
	return updated, warning, nil
}

// Accept marks the quotation accepted. Accepting an already-ACCEPTED
// quotation is a no-op success, not an error.
func (s *Service) Accept(ctx context.Context, id int64) (*Quotation, error) {
	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get quotation: %w", err)
	}
	switch {
	case existing.Converted():
		return nil, fmt.Errorf("%w: quotation already converted to a sale", shared.ErrInvalidState)
	case existing.Status == StatusAccepted:
		return existing, nil
	case existing.Status == StatusRejected:
		return nil, fmt.Errorf("%w: rejected quotations cannot be accepted", shared.ErrInvalidState)
	}

	if err := s.repo.Accept(ctx, id); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, id)
}

// Reject marks the quotation rejected, terminal for new edits. Rejecting an
// already-REJECTED quotation is a no-op success.
func (s *Service) Reject(ctx context.Context, id int64) (*Quotation, error) {
	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get quotation: %w", err)
	}
	if existing.Converted() {
		return nil, fmt.Errorf("%w: quotation already converted to a sale", shared.ErrInvalidState)
	}
	if existing.Status == StatusRejected {
		return existing, nil
	}

	if err := s.repo.Reject(ctx, id); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, id)
}

// Convert creates a sale from an ACCEPTED quotation. Conversion is one-shot:
// a quotation already linked to a sale refuses a second attempt before any
// remote call, since the service of record does not reliably reject repeats.
func (s *Service) Convert(ctx context.Context, id int64) (*SaleRef, error) {
	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get quotation: %w", err)
	}
	if existing.Converted() {
		return nil, fmt.Errorf("%w: quotation already converted to a sale", shared.ErrInvalidState)
	}
	if existing.Status != StatusAccepted {
		return nil, fmt.Errorf("%w: only ACCEPTED quotations can be converted", shared.ErrInvalidState)
	}

	ref, err := s.repo.Convert(ctx, id)
	if err != nil {
		return nil, err
	}
	s.logger.Info("quotation converted",
		slog.Int64("quotation_id", id),
		slog.Int64("sale_id", ref.SaleID))
	return ref, nil
}

// FetchPDF retrieves the rendered quotation document. The engine does not
// build PDF bytes; presentation of the blob is the caller's concern.
func (s *Service) FetchPDF(ctx context.Context, id int64) ([]byte, string, error) {
	return s.repo.FetchPDF(ctx, id)
}
