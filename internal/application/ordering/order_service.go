package ordering

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/delivery/backend/internal/domain/catalog"
	"github.com/delivery/backend/internal/domain/identity"
	"github.com/delivery/backend/internal/domain/ordering"
	"github.com/delivery/backend/internal/domain/shared"
)

// ProductFinder loads catalog products for order item price snapshots
type ProductFinder interface {
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]catalog.Product, error)
}

// OrderService handles order queries and staff mutations, enforcing
// the role-derived visibility rules on every call
type OrderService struct {
	orderRepo    ordering.OrderRepository
	pickupRepo   ordering.PickupPointRepository
	productRepo  ProductFinder
	clientRepo   identity.ClientRepository
	employeeRepo identity.EmployeeRepository
	userRepo     identity.UserRepository
	notifier     ordering.StatusNotifier
	gateway      ordering.PaymentGateway
	logger       *zap.Logger
}

// NewOrderService creates a new OrderService
func NewOrderService(
	orderRepo ordering.OrderRepository,
	pickupRepo ordering.PickupPointRepository,
	productRepo ProductFinder,
	clientRepo identity.ClientRepository,
	employeeRepo identity.EmployeeRepository,
	userRepo identity.UserRepository,
	notifier ordering.StatusNotifier,
	gateway ordering.PaymentGateway,
	logger *zap.Logger,
) *OrderService {
	return &OrderService{
		orderRepo:    orderRepo,
		pickupRepo:   pickupRepo,
		productRepo:  productRepo,
		clientRepo:   clientRepo,
		employeeRepo: employeeRepo,
		userRepo:     userRepo,
		notifier:     notifier,
		gateway:      gateway,
		logger:       logger,
	}
}

// Get returns an order's detail view if the principal may see it
func (s *OrderService) Get(ctx context.Context, principal identity.Principal, orderID uuid.UUID) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if !s.canView(principal, order) {
		return nil, shared.ErrForbidden
	}

	resp := toOrderResponse(order, time.Now())
	return &resp, nil
}

// List returns the orders visible to the principal: all for a
// superuser, assigned for an employee, own for a client, none
// otherwise
func (s *OrderService) List(ctx context.Context, principal identity.Principal, req ListOrdersRequest) ([]OrderResponse, error) {
	filter := shared.DefaultFilter()
	if req.Page > 0 {
		filter.Page = req.Page
	}
	if req.PageSize > 0 {
		filter.PageSize = req.PageSize
	}
	if req.OrderBy != "" {
		filter.OrderBy = req.OrderBy
	}
	if req.OrderDir != "" {
		filter.OrderDir = req.OrderDir
	}

	var (
		orders []ordering.Order
		err    error
	)
	switch principal.Role {
	case identity.RoleSuperuser:
		orders, err = s.orderRepo.FindAll(ctx, filter)
	case identity.RoleEmployee:
		orders, err = s.orderRepo.FindByEmployee(ctx, principal.EmployeeID, filter)
	case identity.RoleClient:
		orders, err = s.orderRepo.FindByClient(ctx, principal.ClientID, filter)
	default:
		return nil, shared.ErrForbidden
	}
	if err != nil {
		return nil, err
	}

	now := time.Now()
	items := make([]OrderResponse, 0, len(orders))
	for i := range orders {
		items = append(items, toOrderResponse(&orders[i], now))
	}
	return items, nil
}

// UpdateStatus transitions an order's lifecycle state. Only the
// assigned employee or a superuser may do this. A status-change
// notification is sent best-effort and never blocks the transition
func (s *OrderService) UpdateStatus(ctx context.Context, principal identity.Principal, orderID uuid.UUID, req UpdateOrderStatusRequest) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if !s.canUpdateStatus(principal, order) {
		return nil, shared.ErrForbidden
	}

	oldStatus := order.Status
	newStatus := ordering.OrderStatus(req.Status)
	if newStatus != oldStatus {
		if err := order.TransitionTo(newStatus); err != nil {
			return nil, err
		}
	}
	if req.DeliveredAt != nil {
		order.SetDeliveredAt(req.DeliveredAt)
	}

	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}

	if newStatus != oldStatus {
		s.notify(ctx, order, oldStatus, newStatus)
	}

	resp := toOrderResponse(order, time.Now())
	return &resp, nil
}

// AssignEmployee assigns a staff member to the order. Superuser only
func (s *OrderService) AssignEmployee(ctx context.Context, principal identity.Principal, orderID uuid.UUID, req AssignEmployeeRequest) (*OrderResponse, error) {
	if !principal.IsSuperuser() {
		return nil, shared.ErrForbidden
	}

	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if _, err := s.employeeRepo.FindByID(ctx, req.EmployeeID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("INVALID_EMPLOYEE", "Employee not found")
		}
		return nil, err
	}

	if err := order.AssignEmployee(req.EmployeeID); err != nil {
		return nil, err
	}
	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}

	resp := toOrderResponse(order, time.Now())
	return &resp, nil
}

// CreateOrder creates an order on behalf of a client (staff
// operation), bypassing the cart. Items snapshot the current catalog
// price; stock is not touched, unlike checkout
func (s *OrderService) CreateOrder(ctx context.Context, principal identity.Principal, req CreateOrderRequest) (*OrderResponse, error) {
	if !principal.IsSuperuser() && !principal.IsEmployee() {
		return nil, shared.ErrForbidden
	}
	if _, err := s.clientRepo.FindByID(ctx, req.ClientID); err != nil {
		return nil, err
	}

	order, err := ordering.NewOrder(req.ClientID, ordering.DeliveryMethod(req.DeliveryMethod), ordering.PaymentMethod(req.PaymentMethod))
	if err != nil {
		return nil, err
	}

	switch order.DeliveryMethod {
	case ordering.DeliveryPickup:
		if req.PickupPointID == nil || *req.PickupPointID == uuid.Nil {
			return nil, shared.NewDomainError("MISSING_DELIVERY_TARGET", "Pickup orders require a pickup point")
		}
		if _, err := s.pickupRepo.FindByID(ctx, *req.PickupPointID); err != nil {
			return nil, err
		}
		if err := order.SetPickupPoint(*req.PickupPointID); err != nil {
			return nil, err
		}
	case ordering.DeliveryCourier:
		if req.DeliveryAddress == "" {
			return nil, shared.NewDomainError("MISSING_DELIVERY_TARGET", "Courier orders require a delivery address")
		}
		if err := order.SetDeliveryAddress(req.DeliveryAddress); err != nil {
			return nil, err
		}
	}

	items, err := s.snapshotItems(ctx, order.ID, req.Items)
	if err != nil {
		return nil, err
	}
	for _, item := range items {
		order.AddItem(item)
	}

	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}

	s.logger.Info("order created manually",
		zap.String("order_id", order.ID.String()),
		zap.String("client_id", req.ClientID.String()),
		zap.Int("items", len(order.Items)))

	resp := toOrderResponse(order, time.Now())
	return &resp, nil
}

// ReplaceItems rewrites an order's line items from the current
// catalog, re-snapshotting prices. Allowed for the assigned employee
// or a superuser, same as status updates
func (s *OrderService) ReplaceItems(ctx context.Context, principal identity.Principal, orderID uuid.UUID, req ReplaceOrderItemsRequest) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !s.canUpdateStatus(principal, order) {
		return nil, shared.ErrForbidden
	}

	items, err := s.snapshotItems(ctx, order.ID, req.Items)
	if err != nil {
		return nil, err
	}
	order.ReplaceItems(items)

	if err := s.orderRepo.ReplaceItems(ctx, order); err != nil {
		return nil, err
	}

	resp := toOrderResponse(order, time.Now())
	return &resp, nil
}

func (s *OrderService) snapshotItems(ctx context.Context, orderID uuid.UUID, inputs []OrderItemInput) ([]ordering.OrderItem, error) {
	ids := make([]uuid.UUID, 0, len(inputs))
	for _, in := range inputs {
		ids = append(ids, in.ProductID)
	}
	products, err := s.productRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]*catalog.Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}

	items := make([]ordering.OrderItem, 0, len(inputs))
	for _, in := range inputs {
		product, ok := byID[in.ProductID]
		if !ok {
			return nil, shared.NewDomainError("INVALID_PRODUCT", "An ordered product does not exist")
		}
		item, err := ordering.NewOrderItem(orderID, product.ID, product.Name, in.Quantity, product.Price)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}
	return items, nil
}

// ConfirmPayment confirms a card payment by its reference. A declined
// card reports the error and leaves the payment status untouched so
// the customer can retry with corrected details
func (s *OrderService) ConfirmPayment(ctx context.Context, req ConfirmPaymentRequest) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByPaymentRef(ctx, req.PaymentRef)
	if err != nil {
		return nil, err
	}
	if order.PaymentStatus == ordering.PaymentPaid {
		return nil, shared.NewDomainError("ALREADY_PAID", "This order is already paid")
	}

	card := ordering.CardDetails{
		Number: req.CardNumber,
		Expiry: req.Expiry,
		CVV:    req.CVV,
	}
	if err := s.gateway.Confirm(ctx, req.PaymentRef, card); err != nil {
		return nil, err
	}

	order.MarkPaid()
	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}

	resp := toOrderResponse(order, time.Now())
	return &resp, nil
}

// CreatePickupPoint adds a pickup location (staff operation)
func (s *OrderService) CreatePickupPoint(ctx context.Context, principal identity.Principal, req CreatePickupPointRequest) (*PickupPointResponse, error) {
	if !principal.IsSuperuser() && !principal.IsEmployee() {
		return nil, shared.ErrForbidden
	}

	point, err := ordering.NewPickupPoint(req.Name, req.Address)
	if err != nil {
		return nil, err
	}
	if req.WorkingHours != "" {
		if err := point.Update(req.Name, req.Address, req.WorkingHours); err != nil {
			return nil, err
		}
	}

	if err := s.pickupRepo.Save(ctx, point); err != nil {
		return nil, err
	}
	return toPickupPointResponse(point), nil
}

// ListPickupPoints returns the active pickup points
func (s *OrderService) ListPickupPoints(ctx context.Context) ([]PickupPointResponse, error) {
	points, err := s.pickupRepo.FindActive(ctx, shared.DefaultFilter())
	if err != nil {
		return nil, err
	}

	items := make([]PickupPointResponse, 0, len(points))
	for i := range points {
		items = append(items, *toPickupPointResponse(&points[i]))
	}
	return items, nil
}

func (s *OrderService) canView(principal identity.Principal, order *ordering.Order) bool {
	switch principal.Role {
	case identity.RoleSuperuser:
		return true
	case identity.RoleEmployee:
		return order.IsAssignedTo(principal.EmployeeID)
	case identity.RoleClient:
		return order.ClientID == principal.ClientID
	default:
		return false
	}
}

func (s *OrderService) canUpdateStatus(principal identity.Principal, order *ordering.Order) bool {
	if principal.IsSuperuser() {
		return true
	}
	return principal.IsEmployee() && order.IsAssignedTo(principal.EmployeeID)
}

func (s *OrderService) notify(ctx context.Context, order *ordering.Order, oldStatus, newStatus ordering.OrderStatus) {
	email, err := s.clientEmail(ctx, order.ClientID)
	if err != nil {
		s.logger.Warn("cannot resolve notification recipient",
			zap.String("order_id", order.ID.String()), zap.Error(err))
		return
	}

	if err := s.notifier.NotifyStatusChange(ctx, order, oldStatus, newStatus, email); err != nil {
		s.logger.Warn("status notification failed",
			zap.String("order_id", order.ID.String()), zap.Error(err))
	}
}

func (s *OrderService) clientEmail(ctx context.Context, clientID uuid.UUID) (string, error) {
	client, err := s.clientRepo.FindByID(ctx, clientID)
	if err != nil {
		return "", err
	}
	user, err := s.userRepo.FindByID(ctx, client.UserID)
	if err != nil {
		return "", err
	}
	return user.Email, nil
}
