package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/syande/shoestore-service/internal/models"
)

// CatalogRepository handles brand, category, size and shoe data access.
type CatalogRepository struct {
	db *sqlx.DB
}

// NewCatalogRepository creates a new catalog repository
func NewCatalogRepository(db *sqlx.DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

// ListBrands retrieves all brands
func (r *CatalogRepository) ListBrands(ctx context.Context) ([]models.Brand, error) {
	var brands []models.Brand
	err := r.db.SelectContext(ctx, &brands,
		`SELECT brand_id, brand_name FROM brands ORDER BY brand_name ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list brands: %w", err)
	}
	return brands, nil
}

// CreateBrand creates a brand.
func (r *CatalogRepository) CreateBrand(ctx context.Context, name string) (*models.Brand, error) {
	var brand models.Brand
	err := r.db.GetContext(ctx, &brand,
		`INSERT INTO brands (brand_name) VALUES ($1) RETURNING brand_id, brand_name`, name)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrConflict
		}
		return nil, fmt.Errorf("failed to create brand: %w", err)
	}
	return &brand, nil
}

// UpdateBrand updates a brand.
func (r *CatalogRepository) UpdateBrand(ctx context.Context, id int64, name string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE brands SET brand_name = $1 WHERE brand_id = $2`, name, id)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrConflict
		}
		return fmt.Errorf("failed to update brand: %w", err)
	}
	return checkAffected(result)
}

// DeleteBrand deletes a brand.
func (r *CatalogRepository) DeleteBrand(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM brands WHERE brand_id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete brand: %w", err)
	}
	return checkAffected(result)
}

// ListCategories retrieves all categories
func (r *CatalogRepository) ListCategories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	err := r.db.SelectContext(ctx, &categories,
		`SELECT category_id, category_name FROM categories ORDER BY category_name ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

// CreateCategory creates a category.
func (r *CatalogRepository) CreateCategory(ctx context.Context, name string) (*models.Category, error) {
	var category models.Category
	err := r.db.GetContext(ctx, &category,
		`INSERT INTO categories (category_name) VALUES ($1) RETURNING category_id, category_name`, name)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrConflict
		}
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	return &category, nil
}

// UpdateCategory updates a category.
func (r *CatalogRepository) UpdateCategory(ctx context.Context, id int64, name string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE categories SET category_name = $1 WHERE category_id = $2`, name, id)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrConflict
		}
		return fmt.Errorf("failed to update category: %w", err)
	}
	return checkAffected(result)
}

// DeleteCategory deletes a category.
func (r *CatalogRepository) DeleteCategory(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM categories WHERE category_id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	return checkAffected(result)
}

// ListSizes retrieves all sizes
func (r *CatalogRepository) ListSizes(ctx context.Context) ([]models.Size, error) {
	var sizes []models.Size
	err := r.db.SelectContext(ctx, &sizes,
		`SELECT size_id, size, sizing_system FROM sizes ORDER BY sizing_system, size ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list sizes: %w", err)
	}
	return sizes, nil
}

// CreateSize creates a size.
func (r *CatalogRepository) CreateSize(ctx context.Context, size float64, system string) (*models.Size, error) {
	var created models.Size
	err := r.db.GetContext(ctx, &created,
		`INSERT INTO sizes (size, sizing_system) VALUES ($1, $2) RETURNING size_id, size, sizing_system`,
		size, system)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrConflict
		}
		return nil, fmt.Errorf("failed to create size: %w", err)
	}
	return &created, nil
}

// DeleteSize deletes a size.
func (r *CatalogRepository) DeleteSize(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM sizes WHERE size_id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete size: %w", err)
	}
	return checkAffected(result)
}

// GetShoe retrieves a shoe by ID
func (r *CatalogRepository) GetShoe(ctx context.Context, id int64) (*models.Shoe, error) {
	query := `
		SELECT shoe_id, shoe_name, brand_id, markup, shoe_price, first_sale_at, created_at
		FROM shoes
		WHERE shoe_id = $1
	`

	var shoe models.Shoe
	err := r.db.GetContext(ctx, &shoe, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get shoe: %w", err)
	}

	return &shoe, nil
}

// ListShoes retrieves shoes with optional name search and paging.
func (r *CatalogRepository) ListShoes(ctx context.Context, search string, limit, offset int) ([]models.Shoe, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	var shoes []models.Shoe
	var err error

	if search != "" {
		query := `
			SELECT shoe_id, shoe_name, brand_id, markup, shoe_price, first_sale_at, created_at
			FROM shoes
			WHERE shoe_name ILIKE $1
			ORDER BY shoe_name ASC
			LIMIT $2 OFFSET $3
		`
		err = r.db.SelectContext(ctx, &shoes, query, "%"+search+"%", limit, offset)
	} else {
		query := `
			SELECT shoe_id, shoe_name, brand_id, markup, shoe_price, first_sale_at, created_at
			FROM shoes
			ORDER BY shoe_name ASC
			LIMIT $1 OFFSET $2
		`
		err = r.db.SelectContext(ctx, &shoes, query, limit, offset)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to list shoes: %w", err)
	}
	return shoes, nil
}

// CountShoes reports the catalog size.
func (r *CatalogRepository) CountShoes(ctx context.Context) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM shoes`)
	if err != nil {
		return 0, fmt.Errorf("failed to count shoes: %w", err)
	}
	return count, nil
}

// CreateShoe creates a shoe.
func (r *CatalogRepository) CreateShoe(ctx context.Context, req models.ShoeRequest) (*models.Shoe, error) {
	query := `
		INSERT INTO shoes (shoe_name, brand_id, markup, shoe_price, first_sale_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING shoe_id, shoe_name, brand_id, markup, shoe_price, first_sale_at, created_at
	`

	var created models.Shoe
	err := r.db.GetContext(ctx, &created, query,
		req.ShoeName, req.BrandID, req.Markup, req.ShoePrice, req.FirstSaleAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create shoe: %w", err)
	}
	return &created, nil
}

// UpdateShoe updates a shoe. Recorded sale items keep their snapshotted
// prices regardless.
func (r *CatalogRepository) UpdateShoe(ctx context.Context, id int64, req models.ShoeRequest) error {
	query := `
		UPDATE shoes
		SET shoe_name = $1, brand_id = $2, markup = $3, shoe_price = $4, first_sale_at = $5
		WHERE shoe_id = $6
	`

	result, err := r.db.ExecContext(ctx, query,
		req.ShoeName, req.BrandID, req.Markup, req.ShoePrice, req.FirstSaleAt, id)
	if err != nil {
		return fmt.Errorf("failed to update shoe: %w", err)
	}
	return checkAffected(result)
}

// DeleteShoe deletes a shoe and its variants.
func (r *CatalogRepository) DeleteShoe(ctx context.Context, id int64) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM variants WHERE shoe_id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete shoe variants: %w", err)
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM shoes WHERE shoe_id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete shoe: %w", err)
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

// PopularShoes ranks shoes by quantity sold.
func (r *CatalogRepository) PopularShoes(ctx context.Context, limit int) ([]models.PopularShoe, error) {
	if limit <= 0 || limit > 100 {
		limit = 10
	}

	query := `
		SELECT s.shoe_id, s.shoe_name,
		       COALESCE(SUM(si.quantity), 0) AS total_quantity,
		       COALESCE(SUM(si.price), 0) AS total_revenue
		FROM shoes s
		JOIN variants v ON v.shoe_id = s.shoe_id
		JOIN sale_items si ON si.variant_id = v.variant_id
		GROUP BY s.shoe_id, s.shoe_name
		ORDER BY total_quantity DESC
		LIMIT $1
	`

	var popular []models.PopularShoe
	err := r.db.SelectContext(ctx, &popular, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to rank popular shoes: %w", err)
	}
	return popular, nil
}

func checkAffected(result sql.Result) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
