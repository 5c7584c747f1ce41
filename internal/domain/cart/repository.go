package cart

import (
	"context"

	"github.com/google/uuid"
)

// CartItemRepository defines the interface for cart item persistence
type CartItemRepository interface {
	// FindByClient finds all cart items for a client
	FindByClient(ctx context.Context, clientID uuid.UUID) ([]CartItem, error)

	// FindByClientAndProduct finds the cart item for a (client, product) pair
	FindByClientAndProduct(ctx context.Context, clientID, productID uuid.UUID) (*CartItem, error)

	// Save creates or updates a cart item
	Save(ctx context.Context, item *CartItem) error

	// Delete removes a cart item
	Delete(ctx context.Context, id uuid.UUID) error

	// DeleteByClient removes all cart items for a client
	DeleteByClient(ctx context.Context, clientID uuid.UUID) error

	// CountByClient counts cart items for a client
	CountByClient(ctx context.Context, clientID uuid.UUID) (int64, error)
}
