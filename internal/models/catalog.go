package models

import (
	"time"
)

type Brand struct {
	BrandID   int64  `db:"brand_id" json:"brand_id"`
	BrandName string `db:"brand_name" json:"brand_name"`
}

type Category struct {
	CategoryID   int64  `db:"category_id" json:"category_id"`
	CategoryName string `db:"category_name" json:"category_name"`
}

type Size struct {
	SizeID       int64   `db:"size_id" json:"size_id"`
	Size         float64 `db:"size" json:"size"`
	SizingSystem string  `db:"sizing_system" json:"sizing_system"`
}

// Shoe is a sellable model. Markup is an integer percentage applied to the
// base price when a sale line is recorded.
type Shoe struct {
	ShoeID      int64      `db:"shoe_id" json:"shoe_id"`
	ShoeName    string     `db:"shoe_name" json:"shoe_name"`
	BrandID     int64      `db:"brand_id" json:"brand_id"`
	Markup      int        `db:"markup" json:"markup"`
	ShoePrice   float64    `db:"shoe_price" json:"shoe_price"`
	FirstSaleAt *time.Time `db:"first_sale_at" json:"first_sale_at"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
}

// Variant is one size instance of a shoe carrying its own stock count.
type Variant struct {
	VariantID    int64 `db:"variant_id" json:"variant_id"`
	ShoeID       int64 `db:"shoe_id" json:"shoe_id"`
	SizeID       int64 `db:"size_id" json:"size_id"`
	VariantStock int   `db:"variant_stock" json:"variant_stock"`
}

type BrandRequest struct {
	BrandName string `json:"brand_name" validate:"required,min=1,max=100"`
}

type CategoryRequest struct {
	CategoryName string `json:"category_name" validate:"required,min=1,max=100"`
}

type SizeRequest struct {
	Size         float64 `json:"size" validate:"required,gt=0"`
	SizingSystem string  `json:"sizing_system" validate:"required,oneof=US UK EU"`
}

type ShoeRequest struct {
	ShoeName    string     `json:"shoe_name" validate:"required,min=1,max=200"`
	BrandID     int64      `json:"brand_id" validate:"required,min=1"`
	Markup      int        `json:"markup" validate:"min=0,max=1000"`
	ShoePrice   float64    `json:"shoe_price" validate:"required,gt=0"`
	FirstSaleAt *time.Time `json:"first_sale_at"`
}

type VariantRequest struct {
	ShoeID       int64 `json:"shoe_id" validate:"required,min=1"`
	SizeID       int64 `json:"size_id" validate:"required,min=1"`
	VariantStock int   `json:"variant_stock" validate:"min=0"`
}

// PopularShoe is a sales ranking row.
type PopularShoe struct {
	ShoeID        int64   `db:"shoe_id" json:"shoe_id"`
	ShoeName      string  `db:"shoe_name" json:"shoe_name"`
	TotalQuantity int     `db:"total_quantity" json:"total_quantity"`
	TotalRevenue  float64 `db:"total_revenue" json:"total_revenue"`
}

// LowStockVariant is a variant at or below the configured stock threshold.
type LowStockVariant struct {
	VariantID    int64   `db:"variant_id" json:"variant_id"`
	ShoeID       int64   `db:"shoe_id" json:"shoe_id"`
	ShoeName     string  `db:"shoe_name" json:"shoe_name"`
	Size         float64 `db:"size" json:"size"`
	SizingSystem string  `db:"sizing_system" json:"sizing_system"`
	VariantStock int     `db:"variant_stock" json:"variant_stock"`
}
