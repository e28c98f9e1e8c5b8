package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/syande/shoestore-service/internal/db/repository"
	"github.com/syande/shoestore-service/internal/models"
)

// SaleStore is the slice of the sale repository the engine needs.
type SaleStore interface {
	Create(ctx context.Context, sale models.Sale, lines []models.SaleLine) (*models.Sale, error)
	CreateReturn(ctx context.Context, ret models.Return) (*models.Return, error)
	GetByID(ctx context.Context, id int64) (*models.Sale, error)
	List(ctx context.Context) ([]models.Sale, error)
	Items(ctx context.Context, saleID int64) ([]models.SaleItem, error)
	Update(ctx context.Context, req models.SaleUpdateRequest) error
	Delete(ctx context.Context, id int64) error
	ListReturns(ctx context.Context) ([]models.Return, error)
	GetReturn(ctx context.Context, id int64) (*models.Return, error)
	UpdateReturn(ctx context.Context, req models.ReturnUpdateRequest) error
	DeleteReturn(ctx context.Context, id int64) error
	Summary(ctx context.Context) (*models.SalesSummary, error)
	MonthlySummary(ctx context.Context) ([]models.MonthlySales, error)
}

// StockReader reads current variant stock for the pre-check and the
// low-stock notifications.
type StockReader interface {
	Stock(ctx context.Context, variantID int64) (int, error)
}

// EventPublisher pushes realtime notifications to connected POS and
// dashboard clients. Implementations must not block.
type EventPublisher interface {
	SaleCreated(sale *models.Sale)
	LowStock(variantID int64, stock int)
}

// SaleService is the sale transaction engine.
type SaleService struct {
	sales    SaleStore
	variants StockReader
	events   EventPublisher

	lowStockThreshold int
}

// NewSaleService creates a new sale service. events may be nil.
func NewSaleService(sales SaleStore, variants StockReader, events EventPublisher, lowStockThreshold int) *SaleService {
	return &SaleService{
		sales:             sales,
		variants:          variants,
		events:            events,
		lowStockThreshold: lowStockThreshold,
	}
}

// RecordSale validates stock, prices every line server-side from the shoe's
// base price and markup, and persists the sale atomically. Client-supplied
// totals are ignored.
func (s *SaleService) RecordSale(ctx context.Context, cashierID int64, req models.SaleRequest) (*models.Sale, error) {
	lines, err := models.ParseSaleItems(req.Items)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	// Read-only stock pre-check before any write. Quantities are summed per
	// variant so a repeated variant in one request cannot slip past it.
	requested := make(map[int64]int)
	order := make([]int64, 0, len(lines))
	for _, line := range lines {
		if _, seen := requested[line.VariantID]; !seen {
			order = append(order, line.VariantID)
		}
		requested[line.VariantID] += line.Quantity
	}

	for _, variantID := range order {
		available, err := s.variants.Stock(ctx, variantID)
		if err != nil {
			return nil, err
		}
		if requested[variantID] > available {
			return nil, &repository.InsufficientStockError{
				VariantID: variantID,
				Available: available,
				Requested: requested[variantID],
			}
		}
	}

	sale := models.Sale{
		UserID:        cashierID,
		ReceiptNumber: time.Now().Format("20060102-") + uuid.NewString()[0:8],
		CustomerName:  req.CustomerName,
		CashReceived:  req.CashReceived,
	}

	created, err := s.sales.Create(ctx, sale, lines)
	if err != nil {
		return nil, err
	}

	s.publishEvents(ctx, created)

	return created, nil
}

func (s *SaleService) publishEvents(ctx context.Context, sale *models.Sale) {
	if s.events == nil {
		return
	}

	s.events.SaleCreated(sale)

	for _, item := range sale.Items {
		stock, err := s.variants.Stock(ctx, item.VariantID)
		if err != nil {
			continue
		}
		if stock <= s.lowStockThreshold {
			s.events.LowStock(item.VariantID, stock)
		}
	}
}

// RecordReturn records a return against an existing sale. Stock decrements
// are not reversed and the refund amount is not checked against the sale
// total; restocking is a manual process today.
func (s *SaleService) RecordReturn(ctx context.Context, req models.ReturnRequest) (*models.Return, error) {
	ret := models.Return{
		SaleID:       req.SaleID,
		CustomerName: req.CustomerName,
		ReturnReason: req.ReturnReason,
		TotalRefund:  req.TotalRefund,
	}
	return s.sales.CreateReturn(ctx, ret)
}

// GetSale retrieves one sale with items and derived status.
func (s *SaleService) GetSale(ctx context.Context, id int64) (*models.Sale, error) {
	return s.sales.GetByID(ctx, id)
}

// ListSales lists recent sales.
func (s *SaleService) ListSales(ctx context.Context) ([]models.Sale, error) {
	return s.sales.List(ctx)
}

// SaleItems lists the line items of one sale.
func (s *SaleService) SaleItems(ctx context.Context, saleID int64) ([]models.SaleItem, error) {
	return s.sales.Items(ctx, saleID)
}

// UpdateSale rewrites a sale header.
func (s *SaleService) UpdateSale(ctx context.Context, req models.SaleUpdateRequest) error {
	return s.sales.Update(ctx, req)
}

// DeleteSale removes a sale and its items.
func (s *SaleService) DeleteSale(ctx context.Context, id int64) error {
	return s.sales.Delete(ctx, id)
}

// ListReturns lists all returns.
func (s *SaleService) ListReturns(ctx context.Context) ([]models.Return, error) {
	return s.sales.ListReturns(ctx)
}

// GetReturn retrieves one return.
func (s *SaleService) GetReturn(ctx context.Context, id int64) (*models.Return, error) {
	return s.sales.GetReturn(ctx, id)
}

// UpdateReturn rewrites a return.
func (s *SaleService) UpdateReturn(ctx context.Context, req models.ReturnUpdateRequest) error {
	return s.sales.UpdateReturn(ctx, req)
}

// DeleteReturn removes a return.
func (s *SaleService) DeleteReturn(ctx context.Context, id int64) error {
	return s.sales.DeleteReturn(ctx, id)
}

// Summary reports all-time sales totals.
func (s *SaleService) Summary(ctx context.Context) (*models.SalesSummary, error) {
	return s.sales.Summary(ctx)
}

// MonthlySummary reports per-month sales rollups.
func (s *SaleService) MonthlySummary(ctx context.Context) ([]models.MonthlySales, error) {
	return s.sales.MonthlySummary(ctx)
}
