package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/delivery/backend/internal/domain/promotion"
	"github.com/delivery/backend/internal/domain/shared"
)

// GormPromoCodeRepository implements PromoCodeRepository using GORM
type GormPromoCodeRepository struct {
	db *gorm.DB
}

// NewGormPromoCodeRepository creates a new GormPromoCodeRepository
func NewGormPromoCodeRepository(db *gorm.DB) *GormPromoCodeRepository {
	return &GormPromoCodeRepository{db: db}
}

// FindByID finds a promo code by its ID
func (r *GormPromoCodeRepository) FindByID(ctx context.Context, id uuid.UUID) (*promotion.PromoCode, error) {
	var promo promotion.PromoCode
	if err := r.db.WithContext(ctx).
		Preload("Products").
		First(&promo, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &promo, nil
}

// FindByCode finds a promo code by its code string, preloading the
// applicable-product set
func (r *GormPromoCodeRepository) FindByCode(ctx context.Context, code string) (*promotion.PromoCode, error) {
	var promo promotion.PromoCode
	if err := r.db.WithContext(ctx).
		Preload("Products").
		First(&promo, "code = ?", code).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &promo, nil
}

// FindAll finds all promo codes matching the filter
func (r *GormPromoCodeRepository) FindAll(ctx context.Context, filter shared.Filter) ([]promotion.PromoCode, error) {
	var promos []promotion.PromoCode
	query := applyFilter(r.db.WithContext(ctx).Model(&promotion.PromoCode{}), filter, PromoCodeSortFields, "code", "code")

	if err := query.Preload("Products").Find(&promos).Error; err != nil {
		return nil, err
	}
	return promos, nil
}

// Save creates or updates a promo code
func (r *GormPromoCodeRepository) Save(ctx context.Context, promo *promotion.PromoCode) error {
	return r.db.WithContext(ctx).Save(promo).Error
}

// Delete deletes a promo code
func (r *GormPromoCodeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&promotion.PromoCode{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

var _ promotion.PromoCodeRepository = (*GormPromoCodeRepository)(nil)
