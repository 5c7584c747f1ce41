package catalog

import (
	"strings"
	"time"

	"github.com/delivery/backend/internal/domain/shared"
)

// ProductType represents a category of products (e.g. dairy, bakery)
// Promo codes may be scoped to products of particular types
type ProductType struct {
	shared.BaseEntity
	Name        string `gorm:"type:varchar(100);not null;uniqueIndex"`
	Description string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (ProductType) TableName() string {
	return "product_types"
}

// NewProductType creates a new product type
func NewProductType(name, description string) (*ProductType, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Product type name cannot be empty")
	}
	if len(name) > 100 {
		return nil, shared.NewDomainError("INVALID_NAME", "Product type name cannot exceed 100 characters")
	}

	return &ProductType{
		BaseEntity:  shared.NewBaseEntity(),
		Name:        name,
		Description: description,
	}, nil
}

// Rename changes the type name
func (t *ProductType) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Product type name cannot be empty")
	}

	t.Name = name
	t.UpdatedAt = time.Now()

	return nil
}
