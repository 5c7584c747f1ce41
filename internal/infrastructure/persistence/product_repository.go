package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/delivery/backend/internal/domain/catalog"
	"github.com/delivery/backend/internal/domain/shared"
)

// GormProductRepository implements ProductRepository using GORM
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GormProductRepository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// FindByID finds a product by its ID
func (r *GormProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	var product catalog.Product
	if err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &product, nil
}

// FindByIDs finds multiple products by their IDs
func (r *GormProductRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]catalog.Product, error) {
	if len(ids) == 0 {
		return []catalog.Product{}, nil
	}

	var products []catalog.Product
	if err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// FindAll finds all products matching the filter
func (r *GormProductRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	var products []catalog.Product
	query := applyFilter(r.db.WithContext(ctx).Model(&catalog.Product{}), filter, ProductSortFields, "name", "name")

	if err := query.Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// FindActive finds all active products matching the filter
func (r *GormProductRepository) FindActive(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	var products []catalog.Product
	query := applyFilter(
		r.db.WithContext(ctx).Model(&catalog.Product{}).Where("active = ?", true),
		filter, ProductSortFields, "name", "name",
	)

	if err := query.Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// FindByType finds all products of a given type
func (r *GormProductRepository) FindByType(ctx context.Context, typeID uuid.UUID, filter shared.Filter) ([]catalog.Product, error) {
	var products []catalog.Product
	query := applyFilter(
		r.db.WithContext(ctx).Model(&catalog.Product{}).Where("type_id = ?", typeID),
		filter, ProductSortFields, "name", "name",
	)

	if err := query.Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// Save creates or updates a product
func (r *GormProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	return r.db.WithContext(ctx).Save(product).Error
}

// Delete deletes a product
func (r *GormProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&catalog.Product{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts products matching the filter
func (r *GormProductRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&catalog.Product{}), filter, "name")
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

var _ catalog.ProductRepository = (*GormProductRepository)(nil)

// GormProductTypeRepository implements ProductTypeRepository using GORM
type GormProductTypeRepository struct {
	db *gorm.DB
}

// NewGormProductTypeRepository creates a new GormProductTypeRepository
func NewGormProductTypeRepository(db *gorm.DB) *GormProductTypeRepository {
	return &GormProductTypeRepository{db: db}
}

func (r *GormProductTypeRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.ProductType, error) {
	var productType catalog.ProductType
	if err := r.db.WithContext(ctx).First(&productType, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &productType, nil
}

func (r *GormProductTypeRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.ProductType, error) {
	var types []catalog.ProductType
	query := applyFilter(r.db.WithContext(ctx).Model(&catalog.ProductType{}), filter, ProductTypeSortFields, "name", "name")

	if err := query.Find(&types).Error; err != nil {
		return nil, err
	}
	return types, nil
}

func (r *GormProductTypeRepository) FindByName(ctx context.Context, name string) (*catalog.ProductType, error) {
	var productType catalog.ProductType
	if err := r.db.WithContext(ctx).First(&productType, "name = ?", name).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &productType, nil
}

func (r *GormProductTypeRepository) Save(ctx context.Context, productType *catalog.ProductType) error {
	return r.db.WithContext(ctx).Save(productType).Error
}

func (r *GormProductTypeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&catalog.ProductType{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

var _ catalog.ProductTypeRepository = (*GormProductTypeRepository)(nil)

// GormManufacturerRepository implements ManufacturerRepository using GORM
type GormManufacturerRepository struct {
	db *gorm.DB
}

// NewGormManufacturerRepository creates a new GormManufacturerRepository
func NewGormManufacturerRepository(db *gorm.DB) *GormManufacturerRepository {
	return &GormManufacturerRepository{db: db}
}

func (r *GormManufacturerRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Manufacturer, error) {
	var manufacturer catalog.Manufacturer
	if err := r.db.WithContext(ctx).First(&manufacturer, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &manufacturer, nil
}

func (r *GormManufacturerRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Manufacturer, error) {
	var manufacturers []catalog.Manufacturer
	query := applyFilter(r.db.WithContext(ctx).Model(&catalog.Manufacturer{}), filter, ManufacturerSortFields, "name", "name")

	if err := query.Find(&manufacturers).Error; err != nil {
		return nil, err
	}
	return manufacturers, nil
}

func (r *GormManufacturerRepository) Save(ctx context.Context, manufacturer *catalog.Manufacturer) error {
	return r.db.WithContext(ctx).Save(manufacturer).Error
}

func (r *GormManufacturerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&catalog.Manufacturer{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

var _ catalog.ManufacturerRepository = (*GormManufacturerRepository)(nil)
