package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/delivery/backend/internal/domain/catalog"
)

// CreateProductRequest represents a request to create a new product
type CreateProductRequest struct {
	Name           string           `json:"name" binding:"required,min=1,max=200"`
	Description    string           `json:"description" binding:"max=2000"`
	Price          decimal.Decimal  `json:"price" binding:"required"`
	Unit           string           `json:"unit" binding:"required,oneof=pieces kg liters"`
	Weight         *decimal.Decimal `json:"weight"`
	Stock          *int             `json:"stock" binding:"omitempty,min=0"`
	TypeID         *uuid.UUID       `json:"type_id"`
	ManufacturerID *uuid.UUID       `json:"manufacturer_id"`
	ImageURL       string           `json:"image_url" binding:"max=500"`
}

// UpdateProductRequest represents a request to update a product
type UpdateProductRequest struct {
	Name           *string          `json:"name" binding:"omitempty,min=1,max=200"`
	Description    *string          `json:"description" binding:"omitempty,max=2000"`
	Price          *decimal.Decimal `json:"price"`
	Weight         *decimal.Decimal `json:"weight"`
	Stock          *int             `json:"stock" binding:"omitempty,min=0"`
	TypeID         *uuid.UUID       `json:"type_id"`
	ManufacturerID *uuid.UUID       `json:"manufacturer_id"`
	ImageURL       *string          `json:"image_url" binding:"omitempty,max=500"`
	Active         *bool            `json:"active"`
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID             uuid.UUID       `json:"id"`
	Name           string          `json:"name"`
	Description    string          `json:"description"`
	Price          decimal.Decimal `json:"price"`
	Unit           string          `json:"unit"`
	Weight         decimal.Decimal `json:"weight"`
	Stock          int             `json:"stock"`
	TypeID         *uuid.UUID      `json:"type_id"`
	ManufacturerID *uuid.UUID      `json:"manufacturer_id"`
	ImageURL       string          `json:"image_url"`
	Active         bool            `json:"active"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// ListProductsRequest represents query parameters for listing products
type ListProductsRequest struct {
	TypeID     *uuid.UUID `form:"type_id"`
	ActiveOnly bool       `form:"active_only"`
	Search     string     `form:"search" binding:"max=100"`
	Page       int        `form:"page" binding:"min=0"`
	PageSize   int        `form:"page_size" binding:"min=0,max=100"`
	OrderBy    string     `form:"order_by" binding:"omitempty,oneof=name price created_at"`
	OrderDir   string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// CreateProductTypeRequest represents a request to create a product type
type CreateProductTypeRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=100"`
	Description string `json:"description" binding:"max=2000"`
}

// ProductTypeResponse represents a product type in API responses
type ProductTypeResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
}

// CreateManufacturerRequest represents a request to create a manufacturer
type CreateManufacturerRequest struct {
	Name    string `json:"name" binding:"required,min=1,max=150"`
	Country string `json:"country" binding:"max=100"`
	Website string `json:"website" binding:"max=300"`
}

// ManufacturerResponse represents a manufacturer in API responses
type ManufacturerResponse struct {
	ID      uuid.UUID `json:"id"`
	Name    string    `json:"name"`
	Country string    `json:"country"`
	Website string    `json:"website"`
}

func toProductResponse(p *catalog.Product) *ProductResponse {
	return &ProductResponse{
		ID:             p.ID,
		Name:           p.Name,
		Description:    p.Description,
		Price:          p.Price,
		Unit:           string(p.Unit),
		Weight:         p.Weight,
		Stock:          p.Stock,
		TypeID:         p.TypeID,
		ManufacturerID: p.ManufacturerID,
		ImageURL:       p.ImageURL,
		Active:         p.Active,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

func toProductTypeResponse(t *catalog.ProductType) *ProductTypeResponse {
	return &ProductTypeResponse{
		ID:          t.ID,
		Name:        t.Name,
		Description: t.Description,
	}
}

func toManufacturerResponse(m *catalog.Manufacturer) *ManufacturerResponse {
	return &ManufacturerResponse{
		ID:      m.ID,
		Name:    m.Name,
		Country: m.Country,
		Website: m.Website,
	}
}
