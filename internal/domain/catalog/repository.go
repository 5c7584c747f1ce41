package catalog

import (
	"context"

	"github.com/google/uuid"

	"github.com/delivery/backend/internal/domain/shared"
)

// ProductRepository defines the interface for product persistence
type ProductRepository interface {
	// FindByID finds a product by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)

	// FindByIDs finds multiple products by their IDs
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Product, error)

	// FindAll finds all products matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Product, error)

	// FindActive finds all active products matching the filter
	FindActive(ctx context.Context, filter shared.Filter) ([]Product, error)

	// FindByType finds all products of a given type
	FindByType(ctx context.Context, typeID uuid.UUID, filter shared.Filter) ([]Product, error)

	// Save creates or updates a product
	Save(ctx context.Context, product *Product) error

	// Delete deletes a product
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts products matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}

// ProductTypeRepository defines the interface for product type persistence
type ProductTypeRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ProductType, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]ProductType, error)
	FindByName(ctx context.Context, name string) (*ProductType, error)
	Save(ctx context.Context, productType *ProductType) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// ManufacturerRepository defines the interface for manufacturer persistence
type ManufacturerRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Manufacturer, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Manufacturer, error)
	Save(ctx context.Context, manufacturer *Manufacturer) error
	Delete(ctx context.Context, id uuid.UUID) error
}
