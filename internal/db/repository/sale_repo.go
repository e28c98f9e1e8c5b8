package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/syande/shoestore-service/internal/models"
)

// SaleRepository handles sale and return data access
type SaleRepository struct {
	db *sqlx.DB
}

// NewSaleRepository creates a new sale repository
func NewSaleRepository(db *sqlx.DB) *SaleRepository {
	return &SaleRepository{db: db}
}

// Create records a sale with its line items inside one transaction. Line
// prices are computed here from the shoe's base price and markup, and stock
// is taken with a conditional decrement so two concurrent sales cannot drive
// a variant negative; the loser of the race gets InsufficientStockError and
// the whole transaction rolls back.
func (r *SaleRepository) Create(ctx context.Context, sale models.Sale, lines []models.SaleLine) (*models.Sale, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	// Insert the header first; totals are filled in once every line has been
	// priced.
	headerQuery := `
		INSERT INTO sales (user_id, receipt_number, customer_name, total_amount, cash_received, change_amount)
		VALUES ($1, $2, $3, 0, $4, 0)
		RETURNING sale_id, user_id, receipt_number, customer_name, total_amount, cash_received, change_amount, sales_date
	`

	var created models.Sale
	err = tx.GetContext(ctx, &created, headerQuery,
		sale.UserID, sale.ReceiptNumber, sale.CustomerName, sale.CashReceived)
	if err != nil {
		return nil, fmt.Errorf("failed to create sale: %w", err)
	}

	created.Items = make([]models.SaleItem, 0, len(lines))

	for _, line := range lines {
		// Resolve the variant's parent shoe for pricing.
		var shoe struct {
			ShoePrice float64 `db:"shoe_price"`
			Markup    int     `db:"markup"`
		}
		err = tx.GetContext(ctx, &shoe, `
			SELECT s.shoe_price, s.markup
			FROM variants v
			JOIN shoes s ON s.shoe_id = v.shoe_id
			WHERE v.variant_id = $1
		`, line.VariantID)
		if errors.Is(err, sql.ErrNoRows) {
			err = ErrNotFound
			return nil, err
		}
		if err != nil {
			return nil, fmt.Errorf("failed to resolve variant pricing: %w", err)
		}

		price := linePrice(shoe.ShoePrice, shoe.Markup, line.Quantity)

		var item models.SaleItem
		err = tx.GetContext(ctx, &item, `
			INSERT INTO sale_items (sale_id, variant_id, markup, quantity, price)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING sale_item_id, sale_id, variant_id, markup, quantity, price
		`, created.SaleID, line.VariantID, shoe.Markup, line.Quantity, price)
		if err != nil {
			return nil, fmt.Errorf("failed to create sale item: %w", err)
		}

		// Conditional decrement: only succeeds while enough stock remains.
		var result sql.Result
		result, err = tx.ExecContext(ctx, `
			UPDATE variants
			SET variant_stock = variant_stock - $1
			WHERE variant_id = $2 AND variant_stock >= $1
		`, line.Quantity, line.VariantID)
		if err != nil {
			return nil, fmt.Errorf("failed to decrement stock: %w", err)
		}

		var rowsAffected int64
		rowsAffected, err = result.RowsAffected()
		if err != nil {
			return nil, fmt.Errorf("failed to get rows affected: %w", err)
		}
		if rowsAffected == 0 {
			var available int
			if stockErr := tx.GetContext(ctx, &available,
				`SELECT variant_stock FROM variants WHERE variant_id = $1`, line.VariantID); stockErr != nil {
				available = 0
			}
			err = &InsufficientStockError{
				VariantID: line.VariantID,
				Available: available,
				Requested: line.Quantity,
			}
			return nil, err
		}

		created.Items = append(created.Items, item)
		created.TotalAmount += price
	}

	created.ChangeAmount = created.CashReceived - created.TotalAmount

	_, err = tx.ExecContext(ctx,
		`UPDATE sales SET total_amount = $1, change_amount = $2 WHERE sale_id = $3`,
		created.TotalAmount, created.ChangeAmount, created.SaleID)
	if err != nil {
		return nil, fmt.Errorf("failed to update sale totals: %w", err)
	}

	err = tx.Commit()
	if err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	created.Status = models.SaleStatusCompleted
	return &created, nil
}

// linePrice applies the shoe's percentage markup to the base price for a
// whole line. The result is snapshotted on the sale item.
func linePrice(shoePrice float64, markup, quantity int) float64 {
	return shoePrice * (1 + float64(markup)/100) * float64(quantity)
}

const saleStatusExpr = `
	CASE WHEN EXISTS (SELECT 1 FROM returns rt WHERE rt.sale_id = s.sale_id)
	     THEN 'returned' ELSE 'completed' END AS status
`

type saleRow struct {
	models.Sale
	RowStatus string `db:"status"`
}

// GetByID retrieves a sale with its items and derived status.
func (r *SaleRepository) GetByID(ctx context.Context, id int64) (*models.Sale, error) {
	query := `
		SELECT s.sale_id, s.user_id, s.receipt_number, s.customer_name,
		       s.total_amount, s.cash_received, s.change_amount, s.sales_date,` + saleStatusExpr + `
		FROM sales s
		WHERE s.sale_id = $1
	`

	var row saleRow
	err := r.db.GetContext(ctx, &row, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get sale: %w", err)
	}

	sale := row.Sale
	sale.Status = models.SaleStatus(row.RowStatus)

	items, err := r.Items(ctx, sale.SaleID)
	if err != nil {
		return nil, err
	}
	sale.Items = items

	return &sale, nil
}

// List retrieves recent sales with derived status.
func (r *SaleRepository) List(ctx context.Context) ([]models.Sale, error) {
	query := `
		SELECT s.sale_id, s.user_id, s.receipt_number, s.customer_name,
		       s.total_amount, s.cash_received, s.change_amount, s.sales_date,` + saleStatusExpr + `
		FROM sales s
		ORDER BY s.sales_date DESC
		LIMIT 200
	`

	var rows []saleRow
	err := r.db.SelectContext(ctx, &rows, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list sales: %w", err)
	}

	sales := make([]models.Sale, len(rows))
	for i, row := range rows {
		sales[i] = row.Sale
		sales[i].Status = models.SaleStatus(row.RowStatus)
	}
	return sales, nil
}

// Items retrieves the line items of a sale.
func (r *SaleRepository) Items(ctx context.Context, saleID int64) ([]models.SaleItem, error) {
	var items []models.SaleItem
	err := r.db.SelectContext(ctx, &items, `
		SELECT sale_item_id, sale_id, variant_id, markup, quantity, price
		FROM sale_items
		WHERE sale_id = $1
		ORDER BY sale_item_id ASC
	`, saleID)
	if err != nil {
		return nil, fmt.Errorf("failed to list sale items: %w", err)
	}
	return items, nil
}

// Update rewrites a sale header. Line items are never touched here.
func (r *SaleRepository) Update(ctx context.Context, req models.SaleUpdateRequest) error {
	query := `
		UPDATE sales
		SET user_id = $1, customer_name = $2, total_amount = $3, cash_received = $4, change_amount = $5
		WHERE sale_id = $6
	`

	result, err := r.db.ExecContext(ctx, query,
		req.UserID, req.CustomerName, req.TotalAmount, req.CashReceived, req.ChangeAmount, req.SaleID)
	if err != nil {
		return fmt.Errorf("failed to update sale: %w", err)
	}
	return checkAffected(result)
}

// Delete removes a sale and its items. Stock is not restored.
func (r *SaleRepository) Delete(ctx context.Context, id int64) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM sale_items WHERE sale_id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete sale items: %w", err)
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM sales WHERE sale_id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete sale: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		err = ErrNotFound
		return err
	}

	err = tx.Commit()
	if err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// CreateReturn records a return against a sale. Stock decrements are not
// reversed and the refund is not validated against the sale total.
func (r *SaleRepository) CreateReturn(ctx context.Context, ret models.Return) (*models.Return, error) {
	var exists int
	err := r.db.GetContext(ctx, &exists,
		`SELECT COUNT(*) FROM sales WHERE sale_id = $1`, ret.SaleID)
	if err != nil {
		return nil, fmt.Errorf("failed to check sale: %w", err)
	}
	if exists == 0 {
		return nil, ErrNotFound
	}

	query := `
		INSERT INTO returns (sale_id, customer_name, return_reason, total_refund)
		VALUES ($1, $2, $3, $4)
		RETURNING return_id, sale_id, customer_name, return_reason, total_refund, return_date
	`

	var created models.Return
	err = r.db.GetContext(ctx, &created, query,
		ret.SaleID, ret.CustomerName, ret.ReturnReason, ret.TotalRefund)
	if err != nil {
		return nil, fmt.Errorf("failed to create return: %w", err)
	}
	return &created, nil
}

// ListReturns retrieves all returns.
func (r *SaleRepository) ListReturns(ctx context.Context) ([]models.Return, error) {
	var returns []models.Return
	err := r.db.SelectContext(ctx, &returns, `
		SELECT return_id, sale_id, customer_name, return_reason, total_refund, return_date
		FROM returns
		ORDER BY return_date DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list returns: %w", err)
	}
	return returns, nil
}

// GetReturn retrieves a return by ID.
func (r *SaleRepository) GetReturn(ctx context.Context, id int64) (*models.Return, error) {
	var ret models.Return
	err := r.db.GetContext(ctx, &ret, `
		SELECT return_id, sale_id, customer_name, return_reason, total_refund, return_date
		FROM returns
		WHERE return_id = $1
	`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get return: %w", err)
	}
	return &ret, nil
}

// UpdateReturn rewrites a return row.
func (r *SaleRepository) UpdateReturn(ctx context.Context, req models.ReturnUpdateRequest) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE returns
		SET sale_id = $1, customer_name = $2, return_reason = $3, total_refund = $4
		WHERE return_id = $5
	`, req.SaleID, req.CustomerName, req.ReturnReason, req.TotalRefund, req.ReturnID)
	if err != nil {
		return fmt.Errorf("failed to update return: %w", err)
	}
	return checkAffected(result)
}

// DeleteReturn deletes a return.
func (r *SaleRepository) DeleteReturn(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM returns WHERE return_id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete return: %w", err)
	}
	return checkAffected(result)
}

// Summary reports all-time sale count and revenue.
func (r *SaleRepository) Summary(ctx context.Context) (*models.SalesSummary, error) {
	var summary models.SalesSummary
	err := r.db.GetContext(ctx, &summary, `
		SELECT COUNT(*) AS sale_count, COALESCE(SUM(total_amount), 0) AS total_revenue
		FROM sales
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to summarize sales: %w", err)
	}
	return &summary, nil
}

// MonthlySummary rolls sales up per calendar month.
func (r *SaleRepository) MonthlySummary(ctx context.Context) ([]models.MonthlySales, error) {
	query := `
		SELECT to_char(date_trunc('month', sales_date), 'YYYY-MM') AS month,
		       COUNT(*) AS sale_count,
		       COALESCE(SUM(total_amount), 0) AS total_revenue
		FROM sales
		GROUP BY date_trunc('month', sales_date)
		ORDER BY month DESC
	`

	var rollup []models.MonthlySales
	err := r.db.SelectContext(ctx, &rollup, query)
	if err != nil {
		return nil, fmt.Errorf("failed to roll up monthly sales: %w", err)
	}
	return rollup, nil
}
