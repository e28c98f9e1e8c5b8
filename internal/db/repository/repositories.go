package repository

import (
	"github.com/syande/shoestore-service/internal/db"
)

// Repositories provides access to all repository instances
type Repositories struct {
	User       *UserRepository
	Credential *CredentialRepository
	Catalog    *CatalogRepository
	Variant    *VariantRepository
	Sale       *SaleRepository
}

// NewRepositories creates a new repositories container
func NewRepositories(database *db.Postgres) *Repositories {
	return &Repositories{
		User:       NewUserRepository(database.DB),
		Credential: NewCredentialRepository(database.DB),
		Catalog:    NewCatalogRepository(database.DB),
		Variant:    NewVariantRepository(database.DB),
		Sale:       NewSaleRepository(database.DB),
	}
}
