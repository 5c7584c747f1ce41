package promotion

import (
	"context"

	"github.com/google/uuid"

	"github.com/delivery/backend/internal/domain/shared"
)

// PromoCodeRepository defines the interface for promo code persistence
type PromoCodeRepository interface {
	// FindByID finds a promo code by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*PromoCode, error)

	// FindByCode finds a promo code by its code string,
	// preloading the applicable-product set
	FindByCode(ctx context.Context, code string) (*PromoCode, error)

	// FindAll finds all promo codes matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]PromoCode, error)

	// Save creates or updates a promo code
	Save(ctx context.Context, promo *PromoCode) error

	// Delete deletes a promo code
	Delete(ctx context.Context, id uuid.UUID) error
}
