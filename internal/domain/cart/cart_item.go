package cart

import (
	"time"

	"github.com/google/uuid"

	"github.com/delivery/backend/internal/domain/shared"
)

// CartItem represents one (client, product) selection prior to checkout.
// Ephemeral: created on add-to-cart, removed on checkout or explicit removal
type CartItem struct {
	shared.BaseEntity
	ClientID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_cart_client_product,priority:1"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_cart_client_product,priority:2"`
	Quantity  int       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (CartItem) TableName() string {
	return "cart_items"
}

// NewCartItem creates a new cart item
func NewCartItem(clientID, productID uuid.UUID, quantity int) (*CartItem, error) {
	if clientID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CLIENT", "Client ID is required")
	}
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID is required")
	}
	if quantity < 1 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be at least 1")
	}

	return &CartItem{
		BaseEntity: shared.NewBaseEntity(),
		ClientID:   clientID,
		ProductID:  productID,
		Quantity:   quantity,
	}, nil
}

// SetQuantity replaces the selected quantity
func (c *CartItem) SetQuantity(quantity int) error {
	if quantity < 1 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be at least 1")
	}

	c.Quantity = quantity
	c.UpdatedAt = time.Now()

	return nil
}

// AddQuantity increases the selected quantity
func (c *CartItem) AddQuantity(delta int) error {
	if delta < 1 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity increase must be at least 1")
	}

	c.Quantity += delta
	c.UpdatedAt = time.Now()

	return nil
}
