package service

import (
	"context"

	"github.com/syande/shoestore-service/internal/db/repository"
	"github.com/syande/shoestore-service/internal/models"
)

// CatalogService handles inventory catalog business logic.
type CatalogService struct {
	catalog  *repository.CatalogRepository
	variants *repository.VariantRepository

	lowStockThreshold int
}

// NewCatalogService creates a new catalog service
func NewCatalogService(catalog *repository.CatalogRepository, variants *repository.VariantRepository, lowStockThreshold int) *CatalogService {
	return &CatalogService{
		catalog:           catalog,
		variants:          variants,
		lowStockThreshold: lowStockThreshold,
	}
}

func (s *CatalogService) ListBrands(ctx context.Context) ([]models.Brand, error) {
	return s.catalog.ListBrands(ctx)
}

func (s *CatalogService) CreateBrand(ctx context.Context, req models.BrandRequest) (*models.Brand, error) {
	return s.catalog.CreateBrand(ctx, req.BrandName)
}

func (s *CatalogService) UpdateBrand(ctx context.Context, id int64, req models.BrandRequest) error {
	return s.catalog.UpdateBrand(ctx, id, req.BrandName)
}

func (s *CatalogService) DeleteBrand(ctx context.Context, id int64) error {
	return s.catalog.DeleteBrand(ctx, id)
}

func (s *CatalogService) ListCategories(ctx context.Context) ([]models.Category, error) {
	return s.catalog.ListCategories(ctx)
}

func (s *CatalogService) CreateCategory(ctx context.Context, req models.CategoryRequest) (*models.Category, error) {
	return s.catalog.CreateCategory(ctx, req.CategoryName)
}

func (s *CatalogService) UpdateCategory(ctx context.Context, id int64, req models.CategoryRequest) error {
	return s.catalog.UpdateCategory(ctx, id, req.CategoryName)
}

func (s *CatalogService) DeleteCategory(ctx context.Context, id int64) error {
	return s.catalog.DeleteCategory(ctx, id)
}

func (s *CatalogService) ListSizes(ctx context.Context) ([]models.Size, error) {
	return s.catalog.ListSizes(ctx)
}

func (s *CatalogService) CreateSize(ctx context.Context, req models.SizeRequest) (*models.Size, error) {
	return s.catalog.CreateSize(ctx, req.Size, req.SizingSystem)
}

func (s *CatalogService) DeleteSize(ctx context.Context, id int64) error {
	return s.catalog.DeleteSize(ctx, id)
}

func (s *CatalogService) GetShoe(ctx context.Context, id int64) (*models.Shoe, error) {
	return s.catalog.GetShoe(ctx, id)
}

func (s *CatalogService) ListShoes(ctx context.Context, search string, limit, offset int) ([]models.Shoe, error) {
	return s.catalog.ListShoes(ctx, search, limit, offset)
}

func (s *CatalogService) CountShoes(ctx context.Context) (int, error) {
	return s.catalog.CountShoes(ctx)
}

func (s *CatalogService) CreateShoe(ctx context.Context, req models.ShoeRequest) (*models.Shoe, error) {
	return s.catalog.CreateShoe(ctx, req)
}

func (s *CatalogService) UpdateShoe(ctx context.Context, id int64, req models.ShoeRequest) error {
	return s.catalog.UpdateShoe(ctx, id, req)
}

func (s *CatalogService) DeleteShoe(ctx context.Context, id int64) error {
	return s.catalog.DeleteShoe(ctx, id)
}

func (s *CatalogService) PopularShoes(ctx context.Context, limit int) ([]models.PopularShoe, error) {
	return s.catalog.PopularShoes(ctx, limit)
}

func (s *CatalogService) ListVariants(ctx context.Context) ([]models.Variant, error) {
	return s.variants.List(ctx)
}

func (s *CatalogService) VariantsForShoe(ctx context.Context, shoeID int64) ([]models.Variant, error) {
	return s.variants.ListForShoe(ctx, shoeID)
}

func (s *CatalogService) CreateVariant(ctx context.Context, req models.VariantRequest) (*models.Variant, error) {
	return s.variants.Create(ctx, req)
}

func (s *CatalogService) UpdateVariant(ctx context.Context, id int64, req models.VariantRequest) error {
	return s.variants.Update(ctx, id, req)
}

func (s *CatalogService) DeleteVariant(ctx context.Context, id int64) error {
	return s.variants.Delete(ctx, id)
}

// LowStockVariants lists variants at or below the configured threshold.
func (s *CatalogService) LowStockVariants(ctx context.Context) ([]models.LowStockVariant, error) {
	return s.variants.LowStock(ctx, s.lowStockThreshold)
}
