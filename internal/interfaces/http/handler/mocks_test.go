package handler

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/delivery/backend/internal/domain/cart"
	"github.com/delivery/backend/internal/domain/catalog"
	"github.com/delivery/backend/internal/domain/identity"
	"github.com/delivery/backend/internal/domain/ordering"
	"github.com/delivery/backend/internal/domain/promotion"
	"github.com/delivery/backend/internal/domain/shared"
)

// MockProductRepository implements catalog.ProductRepository for testing
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]catalog.Product, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindActive(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByType(ctx context.Context, typeID uuid.UUID, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, typeID, filter)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProductRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

// MockProductTypeRepository implements catalog.ProductTypeRepository for testing
type MockProductTypeRepository struct {
	mock.Mock
}

func (m *MockProductTypeRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.ProductType, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.ProductType), args.Error(1)
}

func (m *MockProductTypeRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.ProductType, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]catalog.ProductType), args.Error(1)
}

func (m *MockProductTypeRepository) FindByName(ctx context.Context, name string) (*catalog.ProductType, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.ProductType), args.Error(1)
}

func (m *MockProductTypeRepository) Save(ctx context.Context, productType *catalog.ProductType) error {
	args := m.Called(ctx, productType)
	return args.Error(0)
}

func (m *MockProductTypeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockManufacturerRepository implements catalog.ManufacturerRepository for testing
type MockManufacturerRepository struct {
	mock.Mock
}

func (m *MockManufacturerRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Manufacturer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Manufacturer), args.Error(1)
}

func (m *MockManufacturerRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Manufacturer, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]catalog.Manufacturer), args.Error(1)
}

func (m *MockManufacturerRepository) Save(ctx context.Context, manufacturer *catalog.Manufacturer) error {
	args := m.Called(ctx, manufacturer)
	return args.Error(0)
}

func (m *MockManufacturerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockUserRepository implements identity.UserRepository for testing
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*identity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) Save(ctx context.Context, user *identity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockClientRepository implements identity.ClientRepository for testing
type MockClientRepository struct {
	mock.Mock
}

func (m *MockClientRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.Client, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Client), args.Error(1)
}

func (m *MockClientRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*identity.Client, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Client), args.Error(1)
}

func (m *MockClientRepository) FindAll(ctx context.Context, filter shared.Filter) ([]identity.Client, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]identity.Client), args.Error(1)
}

func (m *MockClientRepository) Save(ctx context.Context, client *identity.Client) error {
	args := m.Called(ctx, client)
	return args.Error(0)
}

func (m *MockClientRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockEmployeeRepository implements identity.EmployeeRepository for testing
type MockEmployeeRepository struct {
	mock.Mock
}

func (m *MockEmployeeRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.Employee, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Employee), args.Error(1)
}

func (m *MockEmployeeRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*identity.Employee, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Employee), args.Error(1)
}

func (m *MockEmployeeRepository) FindAll(ctx context.Context, filter shared.Filter) ([]identity.Employee, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]identity.Employee), args.Error(1)
}

func (m *MockEmployeeRepository) Save(ctx context.Context, employee *identity.Employee) error {
	args := m.Called(ctx, employee)
	return args.Error(0)
}

func (m *MockEmployeeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockCartItemRepository implements cart.CartItemRepository for testing
type MockCartItemRepository struct {
	mock.Mock
}

func (m *MockCartItemRepository) FindByClient(ctx context.Context, clientID uuid.UUID) ([]cart.CartItem, error) {
	args := m.Called(ctx, clientID)
	return args.Get(0).([]cart.CartItem), args.Error(1)
}

func (m *MockCartItemRepository) FindByClientAndProduct(ctx context.Context, clientID, productID uuid.UUID) (*cart.CartItem, error) {
	args := m.Called(ctx, clientID, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cart.CartItem), args.Error(1)
}

func (m *MockCartItemRepository) Save(ctx context.Context, item *cart.CartItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockCartItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCartItemRepository) DeleteByClient(ctx context.Context, clientID uuid.UUID) error {
	args := m.Called(ctx, clientID)
	return args.Error(0)
}

func (m *MockCartItemRepository) CountByClient(ctx context.Context, clientID uuid.UUID) (int64, error) {
	args := m.Called(ctx, clientID)
	return args.Get(0).(int64), args.Error(1)
}

// MockOrderRepository implements ordering.OrderRepository for testing
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*ordering.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ordering.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByPaymentRef(ctx context.Context, paymentRef string) (*ordering.Order, error) {
	args := m.Called(ctx, paymentRef)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ordering.Order), args.Error(1)
}

func (m *MockOrderRepository) FindAll(ctx context.Context, filter shared.Filter) ([]ordering.Order, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]ordering.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByClient(ctx context.Context, clientID uuid.UUID, filter shared.Filter) ([]ordering.Order, error) {
	args := m.Called(ctx, clientID, filter)
	return args.Get(0).([]ordering.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByEmployee(ctx context.Context, employeeID uuid.UUID, filter shared.Filter) ([]ordering.Order, error) {
	args := m.Called(ctx, employeeID, filter)
	return args.Get(0).([]ordering.Order), args.Error(1)
}

func (m *MockOrderRepository) Save(ctx context.Context, order *ordering.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockOrderRepository) ReplaceItems(ctx context.Context, order *ordering.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockOrderRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

// MockPickupPointRepository implements ordering.PickupPointRepository for testing
type MockPickupPointRepository struct {
	mock.Mock
}

func (m *MockPickupPointRepository) FindByID(ctx context.Context, id uuid.UUID) (*ordering.PickupPoint, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ordering.PickupPoint), args.Error(1)
}

func (m *MockPickupPointRepository) FindActive(ctx context.Context, filter shared.Filter) ([]ordering.PickupPoint, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]ordering.PickupPoint), args.Error(1)
}

func (m *MockPickupPointRepository) Save(ctx context.Context, point *ordering.PickupPoint) error {
	args := m.Called(ctx, point)
	return args.Error(0)
}

func (m *MockPickupPointRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockStatusNotifier implements ordering.StatusNotifier for testing
type MockStatusNotifier struct {
	mock.Mock
}

func (m *MockStatusNotifier) NotifyStatusChange(ctx context.Context, order *ordering.Order, oldStatus, newStatus ordering.OrderStatus, recipientEmail string) error {
	args := m.Called(ctx, order, oldStatus, newStatus, recipientEmail)
	return args.Error(0)
}

// MockPaymentGateway implements ordering.PaymentGateway for testing
type MockPaymentGateway struct {
	mock.Mock
}

func (m *MockPaymentGateway) NewPaymentRef(orderID uuid.UUID, now time.Time) string {
	args := m.Called(orderID, now)
	return args.String(0)
}

func (m *MockPaymentGateway) Confirm(ctx context.Context, paymentRef string, card ordering.CardDetails) error {
	args := m.Called(ctx, paymentRef, card)
	return args.Error(0)
}

// MockPromoCodeRepository implements promotion.PromoCodeRepository for testing
type MockPromoCodeRepository struct {
	mock.Mock
}

func (m *MockPromoCodeRepository) FindByID(ctx context.Context, id uuid.UUID) (*promotion.PromoCode, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*promotion.PromoCode), args.Error(1)
}

func (m *MockPromoCodeRepository) FindByCode(ctx context.Context, code string) (*promotion.PromoCode, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*promotion.PromoCode), args.Error(1)
}

func (m *MockPromoCodeRepository) FindAll(ctx context.Context, filter shared.Filter) ([]promotion.PromoCode, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]promotion.PromoCode), args.Error(1)
}

func (m *MockPromoCodeRepository) Save(ctx context.Context, promo *promotion.PromoCode) error {
	args := m.Called(ctx, promo)
	return args.Error(0)
}

func (m *MockPromoCodeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockLockedProductRepository implements ordering.LockedProductRepository for testing
type MockLockedProductRepository struct {
	mock.Mock
}

func (m *MockLockedProductRepository) FindByIDsForUpdate(ctx context.Context, ids []uuid.UUID) ([]catalog.Product, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockLockedProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

// stubCheckoutUnitOfWork runs the checkout body against the given
// repositories without any transaction
type stubCheckoutUnitOfWork struct {
	repos ordering.CheckoutRepositories
}

func (u *stubCheckoutUnitOfWork) Execute(ctx context.Context, fn func(repos ordering.CheckoutRepositories) error) error {
	return fn(u.repos)
}
