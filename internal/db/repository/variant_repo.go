package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/syande/shoestore-service/internal/models"
)

// VariantRepository handles variant and stock data access
type VariantRepository struct {
	db *sqlx.DB
}

// NewVariantRepository creates a new variant repository
func NewVariantRepository(db *sqlx.DB) *VariantRepository {
	return &VariantRepository{db: db}
}

// GetByID retrieves a variant by ID
func (r *VariantRepository) GetByID(ctx context.Context, id int64) (*models.Variant, error) {
	query := `
		SELECT variant_id, shoe_id, size_id, variant_stock
		FROM variants
		WHERE variant_id = $1
	`

	var variant models.Variant
	err := r.db.GetContext(ctx, &variant, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get variant: %w", err)
	}

	return &variant, nil
}

// List retrieves all variants
func (r *VariantRepository) List(ctx context.Context) ([]models.Variant, error) {
	var variants []models.Variant
	err := r.db.SelectContext(ctx, &variants,
		`SELECT variant_id, shoe_id, size_id, variant_stock FROM variants ORDER BY variant_id ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list variants: %w", err)
	}
	return variants, nil
}

// ListForShoe retrieves the variants of one shoe.
func (r *VariantRepository) ListForShoe(ctx context.Context, shoeID int64) ([]models.Variant, error) {
	var variants []models.Variant
	err := r.db.SelectContext(ctx, &variants,
		`SELECT variant_id, shoe_id, size_id, variant_stock FROM variants WHERE shoe_id = $1 ORDER BY size_id ASC`,
		shoeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list shoe variants: %w", err)
	}
	return variants, nil
}

// Create creates a variant. One shoe carries at most one variant per size.
func (r *VariantRepository) Create(ctx context.Context, req models.VariantRequest) (*models.Variant, error) {
	query := `
		INSERT INTO variants (shoe_id, size_id, variant_stock)
		VALUES ($1, $2, $3)
		RETURNING variant_id, shoe_id, size_id, variant_stock
	`

	var created models.Variant
	err := r.db.GetContext(ctx, &created, query, req.ShoeID, req.SizeID, req.VariantStock)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrConflict
		}
		return nil, fmt.Errorf("failed to create variant: %w", err)
	}
	return &created, nil
}

// Update updates a variant.
func (r *VariantRepository) Update(ctx context.Context, id int64, req models.VariantRequest) error {
	query := `
		UPDATE variants
		SET shoe_id = $1, size_id = $2, variant_stock = $3
		WHERE variant_id = $4
	`

	result, err := r.db.ExecContext(ctx, query, req.ShoeID, req.SizeID, req.VariantStock, id)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrConflict
		}
		return fmt.Errorf("failed to update variant: %w", err)
	}
	return checkAffected(result)
}

// Delete deletes a variant
func (r *VariantRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM variants WHERE variant_id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete variant: %w", err)
	}
	return checkAffected(result)
}

// Stock reads the current stock count for a variant.
func (r *VariantRepository) Stock(ctx context.Context, id int64) (int, error) {
	var stock int
	err := r.db.GetContext(ctx, &stock,
		`SELECT variant_stock FROM variants WHERE variant_id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read variant stock: %w", err)
	}
	return stock, nil
}

// LowStock lists variants at or below the given threshold.
func (r *VariantRepository) LowStock(ctx context.Context, threshold int) ([]models.LowStockVariant, error) {
	query := `
		SELECT v.variant_id, v.shoe_id, s.shoe_name, sz.size, sz.sizing_system, v.variant_stock
		FROM variants v
		JOIN shoes s ON s.shoe_id = v.shoe_id
		JOIN sizes sz ON sz.size_id = v.size_id
		WHERE v.variant_stock <= $1
		ORDER BY v.variant_stock ASC, s.shoe_name ASC
	`

	var low []models.LowStockVariant
	err := r.db.SelectContext(ctx, &low, query, threshold)
	if err != nil {
		return nil, fmt.Errorf("failed to list low stock variants: %w", err)
	}
	return low, nil
}
