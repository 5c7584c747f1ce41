package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/delivery/backend/internal/domain/ordering"
	"github.com/delivery/backend/internal/domain/shared"
)

// GormOrderRepository implements OrderRepository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// FindByID finds an order by ID, preloading items and promo code
func (r *GormOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*ordering.Order, error) {
	var order ordering.Order
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("PromoCode").
		First(&order, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

// FindByPaymentRef finds an order by its payment reference
func (r *GormOrderRepository) FindByPaymentRef(ctx context.Context, paymentRef string) (*ordering.Order, error) {
	var order ordering.Order
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("PromoCode").
		First(&order, "payment_ref = ?", paymentRef).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

// FindAll finds all orders matching the filter
func (r *GormOrderRepository) FindAll(ctx context.Context, filter shared.Filter) ([]ordering.Order, error) {
	var orders []ordering.Order
	query := applyFilter(r.db.WithContext(ctx).Model(&ordering.Order{}), filter, OrderSortFields, "ordered_at", "")

	if err := query.Preload("Items").Preload("PromoCode").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// FindByClient finds all orders owned by a client
func (r *GormOrderRepository) FindByClient(ctx context.Context, clientID uuid.UUID, filter shared.Filter) ([]ordering.Order, error) {
	var orders []ordering.Order
	query := applyFilter(
		r.db.WithContext(ctx).Model(&ordering.Order{}).Where("client_id = ?", clientID),
		filter, OrderSortFields, "ordered_at", "",
	)

	if err := query.Preload("Items").Preload("PromoCode").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// FindByEmployee finds all orders assigned to an employee
func (r *GormOrderRepository) FindByEmployee(ctx context.Context, employeeID uuid.UUID, filter shared.Filter) ([]ordering.Order, error) {
	var orders []ordering.Order
	query := applyFilter(
		r.db.WithContext(ctx).Model(&ordering.Order{}).Where("employee_id = ?", employeeID),
		filter, OrderSortFields, "ordered_at", "",
	)

	if err := query.Preload("Items").Preload("PromoCode").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// Save creates or updates an order together with its items
func (r *GormOrderRepository) Save(ctx context.Context, order *ordering.Order) error {
	return r.db.WithContext(ctx).Save(order).Error
}

// ReplaceItems deletes the order's stored items and saves the order
// with its current item list, in one transaction
func (r *GormOrderRepository) ReplaceItems(ctx context.Context, order *ordering.Order) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", order.ID).Delete(&ordering.OrderItem{}).Error; err != nil {
			return err
		}
		return tx.Save(order).Error
	})
}

// Delete deletes an order
func (r *GormOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&ordering.Order{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts orders matching the filter
func (r *GormOrderRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&ordering.Order{}), filter, "")
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

var _ ordering.OrderRepository = (*GormOrderRepository)(nil)

// GormPickupPointRepository implements PickupPointRepository using GORM
type GormPickupPointRepository struct {
	db *gorm.DB
}

// NewGormPickupPointRepository creates a new GormPickupPointRepository
func NewGormPickupPointRepository(db *gorm.DB) *GormPickupPointRepository {
	return &GormPickupPointRepository{db: db}
}

func (r *GormPickupPointRepository) FindByID(ctx context.Context, id uuid.UUID) (*ordering.PickupPoint, error) {
	var point ordering.PickupPoint
	if err := r.db.WithContext(ctx).First(&point, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &point, nil
}

func (r *GormPickupPointRepository) FindActive(ctx context.Context, filter shared.Filter) ([]ordering.PickupPoint, error) {
	var points []ordering.PickupPoint
	query := applyFilter(
		r.db.WithContext(ctx).Model(&ordering.PickupPoint{}).Where("active = ?", true),
		filter, PickupPointSortFields, "name", "address",
	)

	if err := query.Find(&points).Error; err != nil {
		return nil, err
	}
	return points, nil
}

func (r *GormPickupPointRepository) Save(ctx context.Context, point *ordering.PickupPoint) error {
	return r.db.WithContext(ctx).Save(point).Error
}

func (r *GormPickupPointRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&ordering.PickupPoint{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

var _ ordering.PickupPointRepository = (*GormPickupPointRepository)(nil)
