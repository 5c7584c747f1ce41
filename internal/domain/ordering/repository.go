package ordering

import (
	"context"

	"github.com/google/uuid"

	"github.com/delivery/backend/internal/domain/cart"
	"github.com/delivery/backend/internal/domain/catalog"
	"github.com/delivery/backend/internal/domain/shared"
)

// OrderRepository defines the interface for order persistence
type OrderRepository interface {
	// FindByID finds an order by ID, preloading items and promo code
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)

	// FindByPaymentRef finds an order by its payment reference
	FindByPaymentRef(ctx context.Context, paymentRef string) (*Order, error)

	// FindAll finds all orders matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Order, error)

	// FindByClient finds all orders owned by a client
	FindByClient(ctx context.Context, clientID uuid.UUID, filter shared.Filter) ([]Order, error)

	// FindByEmployee finds all orders assigned to an employee
	FindByEmployee(ctx context.Context, employeeID uuid.UUID, filter shared.Filter) ([]Order, error)

	// Save creates or updates an order together with its items
	Save(ctx context.Context, order *Order) error

	// ReplaceItems persists the order with its current item list as
	// the only one, dropping rows that are no longer present
	ReplaceItems(ctx context.Context, order *Order) error

	// Delete deletes an order
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts orders matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}

// PickupPointRepository defines the interface for pickup point persistence
type PickupPointRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*PickupPoint, error)
	FindActive(ctx context.Context, filter shared.Filter) ([]PickupPoint, error)
	Save(ctx context.Context, point *PickupPoint) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// LockedProductRepository gives checkout exclusive access to stock rows.
// Implementations must hold row locks until the enclosing unit of work
// commits, so that concurrent checkouts cannot jointly oversell
type LockedProductRepository interface {
	// FindByIDsForUpdate loads products by ID with row-level locks
	FindByIDsForUpdate(ctx context.Context, ids []uuid.UUID) ([]catalog.Product, error)

	// Save persists a locked product's mutated stock
	Save(ctx context.Context, product *catalog.Product) error
}

// CheckoutRepositories bundles the repositories a checkout mutates,
// all bound to the same transaction
type CheckoutRepositories struct {
	Products  LockedProductRepository
	Orders    OrderRepository
	CartItems cart.CartItemRepository
}

// CheckoutUnitOfWork runs the checkout mutation steps atomically:
// either every write in fn persists or none do
type CheckoutUnitOfWork interface {
	Execute(ctx context.Context, fn func(repos CheckoutRepositories) error) error
}
