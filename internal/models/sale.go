package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// SaleStatus is derived at read time: a sale with a recorded return reports
// StatusReturned, everything else StatusCompleted.
type SaleStatus string

const (
	SaleStatusCompleted SaleStatus = "completed"
	SaleStatusReturned  SaleStatus = "returned"
)

// Sale is one point-of-sale transaction recorded by a cashier.
type Sale struct {
	SaleID        int64     `db:"sale_id" json:"sale_id"`
	UserID        int64     `db:"user_id" json:"user_id"`
	ReceiptNumber string    `db:"receipt_number" json:"receipt_number"`
	CustomerName  string    `db:"customer_name" json:"customer_name"`
	TotalAmount   float64   `db:"total_amount" json:"total_amount"`
	CashReceived  float64   `db:"cash_received" json:"cash_received"`
	ChangeAmount  float64   `db:"change_amount" json:"change_amount"`
	SalesDate     time.Time `db:"sales_date" json:"sales_date"`

	// Not stored directly in the database
	Status SaleStatus `db:"-" json:"status,omitempty"`
	Items  []SaleItem `db:"-" json:"items,omitempty"`
}

// SaleItem snapshots the markup and computed price at the time of sale.
// Later changes to the shoe's base price or markup never touch these rows.
type SaleItem struct {
	SaleItemID int64   `db:"sale_item_id" json:"sale_item_id"`
	SaleID     int64   `db:"sale_id" json:"sale_id"`
	VariantID  int64   `db:"variant_id" json:"variant_id"`
	Markup     int     `db:"markup" json:"markup"`
	Quantity   int     `db:"quantity" json:"quantity"`
	Price      float64 `db:"price" json:"price"`
}

type Return struct {
	ReturnID     int64     `db:"return_id" json:"return_id"`
	SaleID       int64     `db:"sale_id" json:"sale_id"`
	CustomerName string    `db:"customer_name" json:"customer_name"`
	ReturnReason string    `db:"return_reason" json:"return_reason"`
	TotalRefund  float64   `db:"total_refund" json:"total_refund"`
	ReturnDate   time.Time `db:"return_date" json:"return_date"`
}

// SaleRequest is used for sale creation. TotalAmount and ChangeAmount are
// accepted for compatibility with the POS client but always recomputed
// server-side. Items is a comma-separated list of "variantId:quantity" pairs.
type SaleRequest struct {
	CustomerName string  `json:"customer_name" validate:"required,min=1,max=200"`
	TotalAmount  float64 `json:"total_amount"`
	CashReceived float64 `json:"cash_received" validate:"min=0"`
	ChangeAmount float64 `json:"change_amount"`
	Items        string  `json:"items" validate:"required"`
}

type ReturnRequest struct {
	SaleID       int64   `json:"sale_id" validate:"required,min=1"`
	CustomerName string  `json:"customer_name" validate:"required,min=1,max=200"`
	ReturnReason string  `json:"return_reason" validate:"required,min=1"`
	TotalRefund  float64 `json:"total_refund" validate:"min=0"`
}

type ReturnUpdateRequest struct {
	ReturnID     int64   `json:"return_id" validate:"required,min=1"`
	SaleID       int64   `json:"sale_id" validate:"required,min=1"`
	CustomerName string  `json:"customer_name" validate:"required,min=1,max=200"`
	ReturnReason string  `json:"return_reason" validate:"required,min=1"`
	TotalRefund  float64 `json:"total_refund" validate:"min=0"`
}

type SaleUpdateRequest struct {
	SaleID       int64   `json:"sale_id" validate:"required,min=1"`
	UserID       int64   `json:"user_id" validate:"required,min=1"`
	CustomerName string  `json:"customer_name" validate:"required,min=1,max=200"`
	TotalAmount  float64 `json:"total_amount" validate:"min=0"`
	CashReceived float64 `json:"cash_received" validate:"min=0"`
	ChangeAmount float64 `json:"change_amount"`
}

// SaleLine is one parsed "variantId:quantity" pair.
type SaleLine struct {
	VariantID int64
	Quantity  int
}

// ParseSaleItems parses the POS items wire format "5:2,7:1".
func ParseSaleItems(items string) ([]SaleLine, error) {
	parts := strings.Split(items, ",")
	lines := make([]SaleLine, 0, len(parts))

	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		pair := strings.Split(part, ":")
		if len(pair) != 2 {
			return nil, fmt.Errorf("malformed item %q, expected variantId:quantity", part)
		}

		variantID, err := strconv.ParseInt(strings.TrimSpace(pair[0]), 10, 64)
		if err != nil || variantID <= 0 {
			return nil, fmt.Errorf("malformed variant id in item %q", part)
		}

		quantity, err := strconv.Atoi(strings.TrimSpace(pair[1]))
		if err != nil || quantity <= 0 {
			return nil, fmt.Errorf("malformed quantity in item %q", part)
		}

		lines = append(lines, SaleLine{VariantID: variantID, Quantity: quantity})
	}

	if len(lines) == 0 {
		return nil, fmt.Errorf("no sale items supplied")
	}

	return lines, nil
}

// MonthlySales is one month's aggregate rollup.
type MonthlySales struct {
	Month        string  `db:"month" json:"month"`
	SaleCount    int     `db:"sale_count" json:"sale_count"`
	TotalRevenue float64 `db:"total_revenue" json:"total_revenue"`
}

// SalesSummary is the all-time totals row.
type SalesSummary struct {
	SaleCount    int     `db:"sale_count" json:"sale_count"`
	TotalRevenue float64 `db:"total_revenue" json:"total_revenue"`
}
