package catalog

import (
	"strings"
	"time"

	"github.com/delivery/backend/internal/domain/shared"
)

// Manufacturer represents a producer of catalog products
type Manufacturer struct {
	shared.BaseEntity
	Name    string `gorm:"type:varchar(150);not null;uniqueIndex"`
	Country string `gorm:"type:varchar(100)"`
	Website string `gorm:"type:varchar(300)"`
}

// TableName returns the table name for GORM
func (Manufacturer) TableName() string {
	return "manufacturers"
}

// NewManufacturer creates a new manufacturer
func NewManufacturer(name, country string) (*Manufacturer, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Manufacturer name cannot be empty")
	}
	if len(name) > 150 {
		return nil, shared.NewDomainError("INVALID_NAME", "Manufacturer name cannot exceed 150 characters")
	}

	return &Manufacturer{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		Country:    country,
	}, nil
}

// Update updates the manufacturer details
func (m *Manufacturer) Update(name, country, website string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Manufacturer name cannot be empty")
	}

	m.Name = name
	m.Country = country
	m.Website = website
	m.UpdatedAt = time.Now()

	return nil
}
