package catalog

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/delivery/backend/internal/domain/shared"
	"github.com/delivery/backend/internal/domain/shared/valueobject"
)

// ProductUnit represents how a product is measured and sold
type ProductUnit string

const (
	UnitPieces ProductUnit = "pieces"
	UnitKg     ProductUnit = "kg"
	UnitLiters ProductUnit = "liters"
)

// ValidUnit reports whether the given unit is one of the supported units
func ValidUnit(unit ProductUnit) bool {
	switch unit {
	case UnitPieces, UnitKg, UnitLiters:
		return true
	}
	return false
}

// Product represents a sellable item in the catalog
// It is the aggregate root for catalog operations; stock is mutated
// only by checkout (decrement) and staff edits (direct set)
type Product struct {
	shared.BaseAggregateRoot
	Name           string          `gorm:"type:varchar(200);not null;index"`
	Description    string          `gorm:"type:text"`
	Price          decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Unit           ProductUnit     `gorm:"type:varchar(20);not null;default:'pieces'"`
	Weight         decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"` // per-unit weight in kg
	Stock          int             `gorm:"not null;default:0"`
	TypeID         *uuid.UUID      `gorm:"type:uuid;index"`
	ManufacturerID *uuid.UUID      `gorm:"type:uuid;index"`
	ImageURL       string          `gorm:"type:varchar(500)"`
	Active         bool            `gorm:"not null"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new product
func NewProduct(name string, price valueobject.Money, unit ProductUnit, weight decimal.Decimal) (*Product, error) {
	if err := validateProductName(name); err != nil {
		return nil, err
	}
	if price.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}
	if !ValidUnit(unit) {
		return nil, shared.NewDomainError("INVALID_UNIT", fmt.Sprintf("Unsupported unit: %s", unit))
	}
	if weight.IsNegative() {
		return nil, shared.NewDomainError("INVALID_WEIGHT", "Weight cannot be negative")
	}

	return &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              strings.TrimSpace(name),
		Price:             price.Amount(),
		Unit:              unit,
		Weight:            weight,
		Stock:             0,
		Active:            true,
	}, nil
}

// Update updates the product's basic information
func (p *Product) Update(name, description string) error {
	if err := validateProductName(name); err != nil {
		return err
	}

	p.Name = strings.TrimSpace(name)
	p.Description = description
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// SetPrice updates the selling price
func (p *Product) SetPrice(price valueobject.Money) error {
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}

	p.Price = price.Amount()
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// SetWeight updates the per-unit weight
func (p *Product) SetWeight(weight decimal.Decimal) error {
	if weight.IsNegative() {
		return shared.NewDomainError("INVALID_WEIGHT", "Weight cannot be negative")
	}

	p.Weight = weight
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// SetStock sets the stock level directly (staff edits)
func (p *Product) SetStock(stock int) error {
	if stock < 0 {
		return shared.NewDomainError("INVALID_STOCK", "Stock cannot be negative")
	}

	p.Stock = stock
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// DecreaseStock decrements stock by the given quantity
// Stock never goes below zero
func (p *Product) DecreaseStock(quantity int) error {
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if p.Stock < quantity {
		return shared.NewDomainError("INSUFFICIENT_STOCK",
			fmt.Sprintf("Insufficient stock for %s: have %d, need %d", p.Name, p.Stock, quantity))
	}

	p.Stock -= quantity
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// IncreaseStock increments stock by the given quantity (restocking)
func (p *Product) IncreaseStock(quantity int) error {
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}

	p.Stock += quantity
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// HasStock reports whether at least the given quantity is available
func (p *Product) HasStock(quantity int) bool {
	return p.Stock >= quantity
}

// SetType sets the product type
func (p *Product) SetType(typeID *uuid.UUID) {
	p.TypeID = typeID
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

// SetManufacturer sets the product manufacturer
func (p *Product) SetManufacturer(manufacturerID *uuid.UUID) {
	p.ManufacturerID = manufacturerID
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

// SetImageURL sets the product image URL
func (p *Product) SetImageURL(url string) error {
	if len(url) > 500 {
		return shared.NewDomainError("INVALID_IMAGE_URL", "Image URL cannot exceed 500 characters")
	}

	p.ImageURL = url
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// Activate makes the product visible in the storefront
func (p *Product) Activate() {
	p.Active = true
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

// Deactivate hides the product from the storefront
func (p *Product) Deactivate() {
	p.Active = false
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

// GetPriceMoney returns the price as a Money value object
func (p *Product) GetPriceMoney() valueobject.Money {
	return valueobject.NewMoneyBYN(p.Price)
}

// TotalWeight returns the weight of the given quantity of this product
func (p *Product) TotalWeight(quantity int) decimal.Decimal {
	return p.Weight.Mul(decimal.NewFromInt(int64(quantity)))
}

func validateProductName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot exceed 200 characters")
	}
	return nil
}
