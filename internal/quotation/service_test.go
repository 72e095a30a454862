package quotation

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ventadesk/ventadesk/internal/shared"
)

type mockRepository struct {
	quotations map[int64]*Quotation
	nextID     int64

	sendCalls    int
	acceptCalls  int
	rejectCalls  int
	convertCalls int

	createError  error
	sendError    error
	acceptError  error
	convertError error
}

func newMockRepository() *mockRepository {
	return &mockRepository{
		quotations: make(map[int64]*Quotation),
		nextID:     1,
	}
}

func (m *mockRepository) seed(q Quotation) *Quotation {
	q.ID = m.nextID
	m.nextID++
	stored := q
	m.quotations[q.ID] = &stored
	return &stored
}

func (m *mockRepository) List(ctx context.Context, page, size int) (*ListPage, error) {
	out := &ListPage{Page: page, TotalPages: 1, TotalItems: len(m.quotations)}
	for _, q := range m.quotations {
		out.Items = append(out.Items, *q)
	}
	return out, nil
}

func (m *mockRepository) Get(ctx context.Context, id int64) (*Quotation, error) {
	q, ok := m.quotations[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	copied := *q
	return &copied, nil
}

func (m *mockRepository) Create(ctx context.Context, draft Quotation) (*Quotation, error) {
	if m.createError != nil {
		return nil, m.createError
	}
	draft.Number = "COT-0001"
	return m.seed(draft), nil
}

func (m *mockRepository) Send(ctx context.Context, id int64, req SendRequest) error {
	m.sendCalls++
	if m.sendError != nil {
		return m.sendError
	}
	m.quotations[id].Status = StatusSent
	return nil
}

func (m *mockRepository) Accept(ctx context.Context, id int64) error {
	m.acceptCalls++
	if m.acceptError != nil {
		return m.acceptError
	}
	m.quotations[id].Status = StatusAccepted
	return nil
}

func (m *mockRepository) Reject(ctx context.Context, id int64) error {
	m.rejectCalls++
	m.quotations[id].Status = StatusRejected
	return nil
}

func (m *mockRepository) Convert(ctx context.Context, id int64) (*SaleRef, error) {
	m.convertCalls++
	if m.convertError != nil {
		return nil, m.convertError
	}
	saleID := int64(500 + id)
	m.quotations[id].SaleID = &saleID
	return &SaleRef{SaleID: saleID, Number: "VEN-0001"}, nil
}

func (m *mockRepository) FetchPDF(ctx context.Context, id int64) ([]byte, string, error) {
	return []byte("%PDF-1.4"), "application/pdf", nil
}

var fixedNow = time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

func newTestService(repo Repository) *Service {
	svc := NewService(slog.New(slog.DiscardHandler), repo, 0.18)
	svc.now = func() time.Time { return fixedNow }
	return svc
}

func validCreateRequest() CreateQuotationRequest {
	return CreateQuotationRequest{
		ClientID: 3,
		SellerID: 7,
		Items: []CreateItemRequest{
			{ProductID: 1, ProductName: "Internet Hogar", UnitPrice: 50.00, Quantity: 2},
			{ProductID: 2, ProductName: "Chip Prepago", UnitPrice: 30.00, Quantity: 1},
		},
	}
}

func TestCreateComputesTotalsAndExpiration(t *testing.T) {
	repo := newMockRepository()
	svc := newTestService(repo)

	q, err := svc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)

	assert.Equal(t, StatusDraft, q.Status)
	assert.Equal(t, DefaultValidityDays, q.ValidityDays)
	assert.Equal(t, fixedNow, q.CreatedAt)
	assert.Equal(t, fixedNow.AddDate(0, 0, 15), q.ExpiresAt)
	assert.InDelta(t, 130.00, q.Subtotal, 1e-9)
	assert.InDelta(t, 23.40, q.Tax, 1e-9)
	assert.InDelta(t, 153.40, q.Total, 1e-9)
}

func TestCreateValidation(t *testing.T) {
	repo := newMockRepository()
	svc := newTestService(repo)

	tests := []struct {
		name   string
		mutate func(*CreateQuotationRequest)
	}{
		{name: "missing client", mutate: func(r *CreateQuotationRequest) { r.ClientID = 0 }},
		{name: "missing seller", mutate: func(r *CreateQuotationRequest) { r.SellerID = 0 }},
		{name: "empty cart", mutate: func(r *CreateQuotationRequest) { r.Items = nil }},
		{name: "zero quantity", mutate: func(r *CreateQuotationRequest) { r.Items[0].Quantity = 0 }},
		{name: "negative price", mutate: func(r *CreateQuotationRequest) { r.Items[0].UnitPrice = -1 }},
		{name: "negative validity", mutate: func(r *CreateQuotationRequest) { r.ValidityDays = -5 }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := validCreateRequest()
			tc.mutate(&req)
			_, err := svc.Create(context.Background(), req)
			require.ErrorIs(t, err, shared.ErrValidation)
			assert.Empty(t, repo.quotations, "validation failures must not reach the remote layer")
		})
	}
}

func TestCreateRemoteFailureSurfaces(t *testing.T) {
	repo := newMockRepository()
	repo.createError = shared.ErrRemote
	svc := newTestService(repo)

	_, err := svc.Create(context.Background(), validCreateRequest())
	require.ErrorIs(t, err, shared.ErrRemote)
}

func TestSendTransitionsAndResends(t *testing.T) {
	repo := newMockRepository()
	svc := newTestService(repo)
	q := repo.seed(Quotation{Status: StatusDraft, ExpiresAt: fixedNow.AddDate(0, 0, 15)})
	req := SendRequest{RecipientEmail: "cliente@example.com"}

	sent, warning, err := svc.Send(context.Background(), q.ID, req)
	require.NoError(t, err)
	assert.Equal(t, StatusSent, sent.Status)
	assert.Empty(t, warning)

	// Re-send from SENT is re-entrant, not a new state.
	resent, _, err := svc.Send(context.Background(), q.ID, req)
	require.NoError(t, err)
	assert.Equal(t, StatusSent, resent.Status)
	assert.Equal(t, 2, repo.sendCalls)
}

func TestSendExpiredWarnsButProceeds(t *testing.T) {
	repo := newMockRepository()
	svc := newTestService(repo)
	q := repo.seed(Quotation{Number: "COT-0009", Status: StatusDraft, ExpiresAt: fixedNow.AddDate(0, 0, -1)})

	_, warning, err := svc.Send(context.Background(), q.ID, SendRequest{RecipientEmail: "cliente@example.com"})
	require.NoError(t, err)
	assert.Contains(t, warning, "COT-0009")
	assert.Equal(t, 1, repo.sendCalls)
}

func TestSendFromTerminalStates(t *testing.T) {
	repo := newMockRepository()
	svc := newTestService(repo)
	rejected := repo.seed(Quotation{Status: StatusRejected})
	saleID := int64(9)
	converted := repo.seed(Quotation{Status: StatusAccepted, SaleID: &saleID})

	for _, id := range []int64{rejected.ID, converted.ID} {
		_, _, err := svc.Send(context.Background(), id, SendRequest{RecipientEmail: "cliente@example.com"})
		require.ErrorIs(t, err, shared.ErrInvalidState)
	}
	assert.Zero(t, repo.sendCalls)
}

func TestAcceptIsIdempotent(t *testing.T) {
	repo := newMockRepository()
	svc := newTestService(repo)
	q := repo.seed(Quotation{Status: StatusSent, ExpiresAt: fixedNow.AddDate(0, 0, 15)})

	first, err := svc.Accept(context.Background(), q.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusAccepted, first.Status)
	assert.Equal(t, 1, repo.acceptCalls)

	// Second accept succeeds without another remote call.
	second, err := svc.Accept(context.Background(), q.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusAccepted, second.Status)
	assert.Equal(t, 1, repo.acceptCalls)
}

func TestAcceptFromDraft(t *testing.T) {
	repo := newMockRepository()
	svc := newTestService(repo)
	q := repo.seed(Quotation{Status: StatusDraft})

	accepted, err := svc.Accept(context.Background(), q.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusAccepted, accepted.Status)
}

func TestAcceptRejectedFails(t *testing.T) {
	repo := newMockRepository()
	svc := newTestService(repo)
	q := repo.seed(Quotation{Status: StatusRejected})

	_, err := svc.Accept(context.Background(), q.ID)
	require.ErrorIs(t, err, shared.ErrInvalidState)
	assert.Zero(t, repo.acceptCalls)
}

func TestAcceptRemoteFailureLeavesStateAlone(t *testing.T) {
	repo := newMockRepository()
	repo.acceptError = shared.ErrRemote
	svc := newTestService(repo)
	q := repo.seed(Quotation{Status: StatusSent})

	_, err := svc.Accept(context.Background(), q.ID)
	require.ErrorIs(t, err, shared.ErrRemote)

	current, err := svc.Get(context.Background(), q.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusSent, current.Status, "no optimistic local mutation on remote failure")
}

func TestRejectIsTerminalAndIdempotent(t *testing.T) {
	repo := newMockRepository()
	svc := newTestService(repo)
	q := repo.seed(Quotation{Status: StatusSent})

	rejected, err := svc.Reject(context.Background(), q.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusRejected, rejected.Status)

	again, err := svc.Reject(context.Background(), q.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusRejected, again.Status)
	assert.Equal(t, 1, repo.rejectCalls)
}

func TestConvertRequiresAccepted(t *testing.T) {
	repo := newMockRepository()
	svc := newTestService(repo)

	for _, status := range []Status{StatusDraft, StatusSent, StatusRejected} {
		q := repo.seed(Quotation{Status: status})
		_, err := svc.Convert(context.Background(), q.ID)
		require.ErrorIs(t, err, shared.ErrInvalidState, "status %s", status)
	}
	assert.Zero(t, repo.convertCalls)
}

func TestConvertAcceptedCreatesSale(t *testing.T) {
	repo := newMockRepository()
	svc := newTestService(repo)
	q := repo.seed(Quotation{Status: StatusAccepted})

	ref, err := svc.Convert(context.Background(), q.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(500+q.ID), ref.SaleID)
	assert.Equal(t, 1, repo.convertCalls)
}

func TestConvertTwiceFails(t *testing.T) {
	repo := newMockRepository()
	svc := newTestService(repo)
	q := repo.seed(Quotation{Status: StatusAccepted})

	_, err := svc.Convert(context.Background(), q.ID)
	require.NoError(t, err)

	_, err = svc.Convert(context.Background(), q.ID)
	require.ErrorIs(t, err, shared.ErrInvalidState)
	assert.Equal(t, 1, repo.convertCalls, "double conversion must be guarded before the remote call")
}

func TestListNormalizesPaging(t *testing.T) {
	repo := newMockRepository()
	svc := newTestService(repo)
	repo.seed(Quotation{Status: StatusDraft})

	page, err := svc.List(context.Background(), -3, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, page.Page)
	assert.Equal(t, 1, page.TotalItems)
}
