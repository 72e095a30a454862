package sale

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ventadesk/ventadesk/internal/shared"
)

type mockRepository struct {
	createCalls   int
	saveCalls     int
	totalsCalls   int
	assignCalls   int
	unassignCalls int
	discountCalls int

	lastItems  []Item
	lastDNI    string
	lastCoupon string

	sale     *Sale
	totals   Totals
	discount DiscountResult

	totalsError   error
	discountError error
	saveError     error
}

func (m *mockRepository) Create(ctx context.Context, sellerID int64) (*Sale, error) {
	m.createCalls++
	return &Sale{ID: 77, Status: "PENDIENTE", SellerID: sellerID}, nil
}

func (m *mockRepository) Get(ctx context.Context, id int64) (*Sale, error) {
	if m.sale == nil {
		return nil, shared.ErrNotFound
	}
	return m.sale, nil
}

func (m *mockRepository) SaveItems(ctx context.Context, id int64, items []Item) error {
	m.saveCalls++
	if m.saveError != nil {
		return m.saveError
	}
	m.lastItems = items
	return nil
}

func (m *mockRepository) Totals(ctx context.Context, id int64) (*Totals, error) {
	m.totalsCalls++
	if m.totalsError != nil {
		return nil, m.totalsError
	}
	t := m.totals
	return &t, nil
}

func (m *mockRepository) AssignCustomer(ctx context.Context, id, customerID int64) (*Sale, error) {
	m.assignCalls++
	return &Sale{ID: id, Customer: &Customer{ID: customerID, DNI: "45678912"}}, nil
}

func (m *mockRepository) UnassignCustomer(ctx context.Context, id int64) error {
	m.unassignCalls++
	return nil
}

func (m *mockRepository) ApplyBestDiscount(ctx context.Context, id int64, dni, coupon string) (*DiscountResult, error) {
	m.discountCalls++
	if m.discountError != nil {
		return nil, m.discountError
	}
	m.lastDNI = dni
	m.lastCoupon = coupon
	d := m.discount
	return &d, nil
}

func newSaleService(repo *mockRepository) *Service {
	return NewService(slog.New(slog.DiscardHandler), repo)
}

func TestCreateSaleRequiresSeller(t *testing.T) {
	repo := &mockRepository{}
	svc := newSaleService(repo)

	_, err := svc.Create(context.Background(), 0)
	require.ErrorIs(t, err, shared.ErrValidation)
	assert.Zero(t, repo.createCalls)

	created, err := svc.Create(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, int64(77), created.ID)
}

func TestSaveItemsValidatesBeforeWire(t *testing.T) {
	repo := &mockRepository{}
	svc := newSaleService(repo)
	ctx := context.Background()

	cases := []struct {
		name  string
		items []Item
	}{
		{"empty composition", nil},
		{"zero quantity", []Item{{ProductID: 1, UnitPrice: 50, Quantity: 0}}},
		{"negative price", []Item{{ProductID: 1, UnitPrice: -1, Quantity: 1}}},
		{"bad product id", []Item{{ProductID: 0, UnitPrice: 50, Quantity: 1}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := svc.SaveItems(ctx, 77, tc.items)
			require.ErrorIs(t, err, shared.ErrValidation)
		})
	}
	assert.Zero(t, repo.saveCalls, "validation failures must not reach the remote layer")
}

func TestSaveItemsPersistsComposition(t *testing.T) {
	repo := &mockRepository{}
	svc := newSaleService(repo)

	items := []Item{
		{ProductID: 1, ProductName: "Plan Postpago 50GB", UnitPrice: 50, Quantity: 2},
		{ProductID: 2, ProductName: "Chip Prepago", UnitPrice: 30, Quantity: 1},
	}
	require.NoError(t, svc.SaveItems(context.Background(), 77, items))
	assert.Equal(t, 1, repo.saveCalls)
	assert.Equal(t, items, repo.lastItems)
}

func TestApplyDiscountWithoutCustomerIsPrecondition(t *testing.T) {
	repo := &mockRepository{}
	svc := newSaleService(repo)

	_, _, err := svc.ApplyBestDiscount(context.Background(), 77, nil, "")
	require.ErrorIs(t, err, shared.ErrPrecondition)
	assert.Contains(t, err.Error(), "customer required")

	_, _, err = svc.ApplyBestDiscount(context.Background(), 77, &Customer{ID: 3}, "")
	require.ErrorIs(t, err, shared.ErrPrecondition, "a customer without DNI cannot key a discount")

	assert.Zero(t, repo.discountCalls, "nothing may reach the wire without a customer")
	assert.Zero(t, repo.totalsCalls)
}

func TestApplyDiscountReturnsFreshTotals(t *testing.T) {
	repo := &mockRepository{
		discount: DiscountResult{Kind: "CUPON", AmountDiscounted: 20, NewTotal: 133.40, Message: "Cupón aplicado"},
		totals:   Totals{Subtotal: 130, Tax: 23.40, Discount: 20, Total: 133.40},
	}
	svc := newSaleService(repo)

	result, totals, err := svc.ApplyBestDiscount(context.Background(), 77, &Customer{ID: 3, DNI: "45678912"}, "VERANO20")
	require.NoError(t, err)
	assert.Equal(t, "CUPON", result.Kind)
	assert.Equal(t, "45678912", repo.lastDNI)
	assert.Equal(t, "VERANO20", repo.lastCoupon)
	require.NotNil(t, totals)
	assert.InDelta(t, 133.40, totals.Total, 1e-9)
	assert.Equal(t, 1, repo.totalsCalls, "totals come from a re-fetch, not local math")
}

func TestApplyDiscountSupersedesPrevious(t *testing.T) {
	repo := &mockRepository{
		discount: DiscountResult{Kind: "CLIENTE_FRECUENTE", AmountDiscounted: 10, NewTotal: 143.40},
		totals:   Totals{Subtotal: 130, Tax: 23.40, Discount: 10, Total: 143.40},
	}
	svc := newSaleService(repo)
	customer := &Customer{ID: 3, DNI: "45678912"}

	_, _, err := svc.ApplyBestDiscount(context.Background(), 77, customer, "")
	require.NoError(t, err)

	// The second application replaces the first server-side; the result and
	// totals reflect only the latest discount, never a sum of both.
	repo.discount = DiscountResult{Kind: "CUPON", AmountDiscounted: 25, NewTotal: 128.40}
	repo.totals = Totals{Subtotal: 130, Tax: 23.40, Discount: 25, Total: 128.40}

	result, totals, err := svc.ApplyBestDiscount(context.Background(), 77, customer, "VERANO25")
	require.NoError(t, err)
	assert.InDelta(t, 25, result.AmountDiscounted, 1e-9)
	assert.InDelta(t, 128.40, totals.Total, 1e-9)
	assert.Equal(t, 2, repo.discountCalls)
}

func TestApplyDiscountRemoteFailureSurfaces(t *testing.T) {
	repo := &mockRepository{discountError: shared.ErrRemote}
	svc := newSaleService(repo)

	result, totals, err := svc.ApplyBestDiscount(context.Background(), 77, &Customer{DNI: "45678912"}, "")
	require.ErrorIs(t, err, shared.ErrRemote)
	assert.Nil(t, result)
	assert.Nil(t, totals)
	assert.Zero(t, repo.totalsCalls, "no totals read after a failed application")
}

func TestApplyDiscountTotalsReadFailureStillReportsResult(t *testing.T) {
	repo := &mockRepository{
		discount:    DiscountResult{Kind: "CUPON", AmountDiscounted: 20, NewTotal: 133.40},
		totalsError: shared.ErrRemote,
	}
	svc := newSaleService(repo)

	result, totals, err := svc.ApplyBestDiscount(context.Background(), 77, &Customer{DNI: "45678912"}, "VERANO20")
	require.ErrorIs(t, err, shared.ErrRemote)
	require.NotNil(t, result, "the discount did apply remotely")
	assert.Nil(t, totals)
}

func TestCustomerAssignmentRoundTrip(t *testing.T) {
	repo := &mockRepository{}
	svc := newSaleService(repo)
	ctx := context.Background()

	_, err := svc.AssignCustomer(ctx, 77, 0)
	require.ErrorIs(t, err, shared.ErrValidation)
	assert.Zero(t, repo.assignCalls)

	s, err := svc.AssignCustomer(ctx, 77, 3)
	require.NoError(t, err)
	require.NotNil(t, s.Customer)
	assert.Equal(t, int64(3), s.Customer.ID)

	require.NoError(t, svc.UnassignCustomer(ctx, 77))
	assert.Equal(t, 1, repo.unassignCalls)
}
