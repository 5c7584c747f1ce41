package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/delivery/backend/internal/domain/catalog"
	"github.com/delivery/backend/internal/domain/shared"
	"github.com/delivery/backend/internal/domain/shared/valueobject"
)

// ProductService handles catalog management operations
type ProductService struct {
	productRepo      catalog.ProductRepository
	typeRepo         catalog.ProductTypeRepository
	manufacturerRepo catalog.ManufacturerRepository
}

// NewProductService creates a new ProductService
func NewProductService(
	productRepo catalog.ProductRepository,
	typeRepo catalog.ProductTypeRepository,
	manufacturerRepo catalog.ManufacturerRepository,
) *ProductService {
	return &ProductService{
		productRepo:      productRepo,
		typeRepo:         typeRepo,
		manufacturerRepo: manufacturerRepo,
	}
}

// Create creates a new product
func (s *ProductService) Create(ctx context.Context, req CreateProductRequest) (*ProductResponse, error) {
	if req.TypeID != nil {
		if _, err := s.typeRepo.FindByID(ctx, *req.TypeID); err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.NewDomainError("INVALID_TYPE", "Product type not found")
			}
			return nil, err
		}
	}
	if req.ManufacturerID != nil {
		if _, err := s.manufacturerRepo.FindByID(ctx, *req.ManufacturerID); err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.NewDomainError("INVALID_MANUFACTURER", "Manufacturer not found")
			}
			return nil, err
		}
	}

	price, err := valueobject.NewMoney(req.Price, valueobject.DefaultCurrency)
	if err != nil {
		return nil, err
	}

	weight := decimal.Zero
	if req.Weight != nil {
		weight = *req.Weight
	}

	product, err := catalog.NewProduct(req.Name, price, catalog.ProductUnit(req.Unit), weight)
	if err != nil {
		return nil, err
	}

	if req.Description != "" {
		if err := product.Update(req.Name, req.Description); err != nil {
			return nil, err
		}
	}
	if req.Stock != nil {
		if err := product.SetStock(*req.Stock); err != nil {
			return nil, err
		}
	}
	if req.ImageURL != "" {
		if err := product.SetImageURL(req.ImageURL); err != nil {
			return nil, err
		}
	}
	product.SetType(req.TypeID)
	product.SetManufacturer(req.ManufacturerID)

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	return toProductResponse(product), nil
}

// Get returns a product by ID
func (s *ProductService) Get(ctx context.Context, id uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// List returns products matching the request, paginated
func (s *ProductService) List(ctx context.Context, req ListProductsRequest) (*shared.Paginated[ProductResponse], error) {
	filter := shared.DefaultFilter()
	if req.Page > 0 {
		filter.Page = req.Page
	}
	if req.PageSize > 0 {
		filter.PageSize = req.PageSize
	}
	if req.OrderBy != "" {
		filter.OrderBy = req.OrderBy
	}
	if req.OrderDir != "" {
		filter.OrderDir = req.OrderDir
	}
	filter.Search = req.Search

	var (
		products []catalog.Product
		err      error
	)
	switch {
	case req.TypeID != nil:
		products, err = s.productRepo.FindByType(ctx, *req.TypeID, filter)
	case req.ActiveOnly:
		products, err = s.productRepo.FindActive(ctx, filter)
	default:
		products, err = s.productRepo.FindAll(ctx, filter)
	}
	if err != nil {
		return nil, err
	}

	total, err := s.productRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]ProductResponse, 0, len(products))
	for i := range products {
		items = append(items, *toProductResponse(&products[i]))
	}

	result := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &result, nil
}

// Update updates a product
func (s *ProductService) Update(ctx context.Context, id uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	name := product.Name
	description := product.Description
	if req.Name != nil {
		name = *req.Name
	}
	if req.Description != nil {
		description = *req.Description
	}
	if req.Name != nil || req.Description != nil {
		if err := product.Update(name, description); err != nil {
			return nil, err
		}
	}

	if req.Price != nil {
		price, err := valueobject.NewMoney(*req.Price, valueobject.DefaultCurrency)
		if err != nil {
			return nil, err
		}
		if err := product.SetPrice(price); err != nil {
			return nil, err
		}
	}
	if req.Weight != nil {
		if err := product.SetWeight(*req.Weight); err != nil {
			return nil, err
		}
	}
	if req.Stock != nil {
		if err := product.SetStock(*req.Stock); err != nil {
			return nil, err
		}
	}
	if req.ImageURL != nil {
		if err := product.SetImageURL(*req.ImageURL); err != nil {
			return nil, err
		}
	}
	if req.TypeID != nil {
		product.SetType(req.TypeID)
	}
	if req.ManufacturerID != nil {
		product.SetManufacturer(req.ManufacturerID)
	}
	if req.Active != nil {
		if *req.Active {
			product.Activate()
		} else {
			product.Deactivate()
		}
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	return toProductResponse(product), nil
}

// Delete deletes a product
func (s *ProductService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.productRepo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.productRepo.Delete(ctx, id)
}

// CreateType creates a new product type
func (s *ProductService) CreateType(ctx context.Context, req CreateProductTypeRequest) (*ProductTypeResponse, error) {
	if existing, err := s.typeRepo.FindByName(ctx, req.Name); err == nil && existing != nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Product type with this name already exists")
	} else if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	productType, err := catalog.NewProductType(req.Name, req.Description)
	if err != nil {
		return nil, err
	}

	if err := s.typeRepo.Save(ctx, productType); err != nil {
		return nil, err
	}

	return toProductTypeResponse(productType), nil
}

// ListTypes returns all product types
func (s *ProductService) ListTypes(ctx context.Context) ([]ProductTypeResponse, error) {
	types, err := s.typeRepo.FindAll(ctx, shared.DefaultFilter())
	if err != nil {
		return nil, err
	}

	items := make([]ProductTypeResponse, 0, len(types))
	for i := range types {
		items = append(items, *toProductTypeResponse(&types[i]))
	}
	return items, nil
}

// CreateManufacturer creates a new manufacturer
func (s *ProductService) CreateManufacturer(ctx context.Context, req CreateManufacturerRequest) (*ManufacturerResponse, error) {
	manufacturer, err := catalog.NewManufacturer(req.Name, req.Country)
	if err != nil {
		return nil, err
	}
	if req.Website != "" {
		if err := manufacturer.Update(req.Name, req.Country, req.Website); err != nil {
			return nil, err
		}
	}

	if err := s.manufacturerRepo.Save(ctx, manufacturer); err != nil {
		return nil, err
	}

	return toManufacturerResponse(manufacturer), nil
}

// ListManufacturers returns all manufacturers
func (s *ProductService) ListManufacturers(ctx context.Context) ([]ManufacturerResponse, error) {
	manufacturers, err := s.manufacturerRepo.FindAll(ctx, shared.DefaultFilter())
	if err != nil {
		return nil, err
	}

	items := make([]ManufacturerResponse, 0, len(manufacturers))
	for i := range manufacturers {
		items = append(items, *toManufacturerResponse(&manufacturers[i]))
	}
	return items, nil
}
