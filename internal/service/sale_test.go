package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/syande/shoestore-service/internal/db/repository"
	"github.com/syande/shoestore-service/internal/models"
)

type stubSaleStore struct {
	created      []models.Sale
	createdLines [][]models.SaleLine
	createResult *models.Sale

	returns       []models.Return
	returnUpdates []models.ReturnUpdateRequest
}

func (s *stubSaleStore) Create(_ context.Context, sale models.Sale, lines []models.SaleLine) (*models.Sale, error) {
	s.created = append(s.created, sale)
	s.createdLines = append(s.createdLines, lines)
	if s.createResult != nil {
		return s.createResult, nil
	}
	sale.SaleID = 1
	return &sale, nil
}

func (s *stubSaleStore) CreateReturn(_ context.Context, ret models.Return) (*models.Return, error) {
	ret.ReturnID = int64(len(s.returns) + 1)
	s.returns = append(s.returns, ret)
	return &ret, nil
}

func (s *stubSaleStore) GetByID(_ context.Context, id int64) (*models.Sale, error) {
	return nil, repository.ErrNotFound
}
func (s *stubSaleStore) List(_ context.Context) ([]models.Sale, error)  { return nil, nil }
func (s *stubSaleStore) Items(_ context.Context, _ int64) ([]models.SaleItem, error) {
	return nil, nil
}
func (s *stubSaleStore) Update(_ context.Context, _ models.SaleUpdateRequest) error { return nil }
func (s *stubSaleStore) Delete(_ context.Context, _ int64) error                    { return nil }
func (s *stubSaleStore) ListReturns(_ context.Context) ([]models.Return, error)     { return nil, nil }
func (s *stubSaleStore) GetReturn(_ context.Context, _ int64) (*models.Return, error) {
	return nil, repository.ErrNotFound
}
func (s *stubSaleStore) UpdateReturn(_ context.Context, req models.ReturnUpdateRequest) error {
	s.returnUpdates = append(s.returnUpdates, req)
	return nil
}
func (s *stubSaleStore) DeleteReturn(_ context.Context, _ int64) error { return nil }
func (s *stubSaleStore) Summary(_ context.Context) (*models.SalesSummary, error) {
	return &models.SalesSummary{}, nil
}
func (s *stubSaleStore) MonthlySummary(_ context.Context) ([]models.MonthlySales, error) {
	return nil, nil
}

type stubStock struct {
	levels map[int64]int
}

func (s *stubStock) Stock(_ context.Context, variantID int64) (int, error) {
	return s.levels[variantID], nil
}

type stubEvents struct {
	sales    []*models.Sale
	lowStock map[int64]int
}

func (s *stubEvents) SaleCreated(sale *models.Sale) { s.sales = append(s.sales, sale) }
func (s *stubEvents) LowStock(variantID int64, stock int) {
	if s.lowStock == nil {
		s.lowStock = make(map[int64]int)
	}
	s.lowStock[variantID] = stock
}

func TestRecordSale(t *testing.T) {
	store := &stubSaleStore{}
	stock := &stubStock{levels: map[int64]int{5: 10, 7: 10}}
	events := &stubEvents{}
	svc := NewSaleService(store, stock, events, 5)

	sale, err := svc.RecordSale(context.Background(), 42, models.SaleRequest{
		CustomerName: "Walk-in",
		CashReceived: 100,
		Items:        "5:2,7:1",
	})
	require.NoError(t, err)

	assert.Equal(t, int64(42), sale.UserID)
	assert.Regexp(t, `^\d{8}-[0-9a-f]{8}$`, sale.ReceiptNumber)

	require.Len(t, store.createdLines, 1)
	assert.Equal(t, []models.SaleLine{
		{VariantID: 5, Quantity: 2},
		{VariantID: 7, Quantity: 1},
	}, store.createdLines[0])

	require.Len(t, events.sales, 1)
	assert.Same(t, sale, events.sales[0])
}

func TestRecordSaleMalformedItems(t *testing.T) {
	store := &stubSaleStore{}
	svc := NewSaleService(store, &stubStock{}, nil, 5)

	_, err := svc.RecordSale(context.Background(), 42, models.SaleRequest{
		CustomerName: "Walk-in",
		Items:        "not-items",
	})
	assert.ErrorIs(t, err, ErrValidation)
	assert.Empty(t, store.created)
}

func TestRecordSaleInsufficientStock(t *testing.T) {
	store := &stubSaleStore{}
	stock := &stubStock{levels: map[int64]int{5: 3}}
	svc := NewSaleService(store, stock, nil, 5)

	// The same variant repeated across lines is summed before the check.
	_, err := svc.RecordSale(context.Background(), 42, models.SaleRequest{
		CustomerName: "Walk-in",
		Items:        "5:2,5:2",
	})

	var insufficient *repository.InsufficientStockError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, int64(5), insufficient.VariantID)
	assert.Equal(t, 3, insufficient.Available)
	assert.Equal(t, 4, insufficient.Requested)

	// Nothing was written.
	assert.Empty(t, store.created)
}

func TestRecordSaleLowStockEvents(t *testing.T) {
	result := &models.Sale{
		SaleID: 1,
		Items: []models.SaleItem{
			{VariantID: 5, Quantity: 2},
			{VariantID: 7, Quantity: 1},
		},
	}
	store := &stubSaleStore{createResult: result}
	stock := &stubStock{levels: map[int64]int{5: 4, 7: 20}}
	events := &stubEvents{}
	svc := NewSaleService(store, stock, events, 5)

	_, err := svc.RecordSale(context.Background(), 42, models.SaleRequest{
		CustomerName: "Walk-in",
		Items:        "5:2,7:1",
	})
	require.NoError(t, err)

	// Only the variant at or below the threshold triggers an alert.
	assert.Equal(t, map[int64]int{5: 4}, events.lowStock)
}

func TestRecordSaleWithoutPublisher(t *testing.T) {
	store := &stubSaleStore{}
	stock := &stubStock{levels: map[int64]int{5: 10}}
	svc := NewSaleService(store, stock, nil, 5)

	_, err := svc.RecordSale(context.Background(), 42, models.SaleRequest{
		CustomerName: "Walk-in",
		Items:        "5:1",
	})
	assert.NoError(t, err)
}

func TestRecordReturn(t *testing.T) {
	store := &stubSaleStore{}
	svc := NewSaleService(store, &stubStock{}, nil, 5)

	ret, err := svc.RecordReturn(context.Background(), models.ReturnRequest{
		SaleID:       1,
		CustomerName: "Walk-in",
		ReturnReason: "wrong size",
		TotalRefund:  88,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), ret.SaleID)
	assert.Equal(t, "wrong size", ret.ReturnReason)
	assert.Len(t, store.returns, 1)
}

func TestUpdateReturn(t *testing.T) {
	store := &stubSaleStore{}
	svc := NewSaleService(store, &stubStock{}, nil, 5)

	err := svc.UpdateReturn(context.Background(), models.ReturnUpdateRequest{
		ReturnID:     3,
		SaleID:       1,
		CustomerName: "Walk-in",
		ReturnReason: "defective sole",
		TotalRefund:  44,
	})
	require.NoError(t, err)

	require.Len(t, store.returnUpdates, 1)
	assert.Equal(t, int64(3), store.returnUpdates[0].ReturnID)
	assert.Equal(t, "defective sole", store.returnUpdates[0].ReturnReason)
}
