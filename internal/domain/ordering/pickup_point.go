package ordering

import (
	"strings"
	"time"

	"github.com/delivery/backend/internal/domain/shared"
)

// PickupPoint represents a physical location where a courier-free
// order is collected
type PickupPoint struct {
	shared.BaseEntity
	Name         string `gorm:"type:varchar(150);not null"`
	Address      string `gorm:"type:varchar(300);not null"`
	WorkingHours string `gorm:"type:varchar(100)"`
	Active       bool   `gorm:"not null"`
}

// TableName returns the table name for GORM
func (PickupPoint) TableName() string {
	return "pickup_points"
}

// NewPickupPoint creates a new pickup point
func NewPickupPoint(name, address string) (*PickupPoint, error) {
	name = strings.TrimSpace(name)
	address = strings.TrimSpace(address)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Pickup point name cannot be empty")
	}
	if address == "" {
		return nil, shared.NewDomainError("INVALID_ADDRESS", "Pickup point address cannot be empty")
	}

	return &PickupPoint{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		Address:    address,
		Active:     true,
	}, nil
}

// Update updates the pickup point details
func (p *PickupPoint) Update(name, address, workingHours string) error {
	name = strings.TrimSpace(name)
	address = strings.TrimSpace(address)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Pickup point name cannot be empty")
	}
	if address == "" {
		return shared.NewDomainError("INVALID_ADDRESS", "Pickup point address cannot be empty")
	}

	p.Name = name
	p.Address = address
	p.WorkingHours = workingHours
	p.UpdatedAt = time.Now()

	return nil
}

// Deactivate hides the pickup point from checkout
func (p *PickupPoint) Deactivate() {
	p.Active = false
	p.UpdatedAt = time.Now()
}
