package ordering

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/delivery/backend/internal/domain/catalog"
	"github.com/delivery/backend/internal/domain/identity"
	"github.com/delivery/backend/internal/domain/ordering"
	"github.com/delivery/backend/internal/domain/shared"
	"github.com/delivery/backend/internal/domain/shared/valueobject"
)

type stubProductFinder struct {
	products map[uuid.UUID]*catalog.Product
}

func (r *stubProductFinder) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]catalog.Product, error) {
	result := make([]catalog.Product, 0, len(ids))
	for _, id := range ids {
		if product, ok := r.products[id]; ok {
			result = append(result, *product)
		}
	}
	return result, nil
}

type stubClientRepo struct {
	clients map[uuid.UUID]*identity.Client
}

func (r *stubClientRepo) FindByID(ctx context.Context, id uuid.UUID) (*identity.Client, error) {
	if client, ok := r.clients[id]; ok {
		return client, nil
	}
	return nil, shared.ErrNotFound
}

func (r *stubClientRepo) FindByUserID(ctx context.Context, userID uuid.UUID) (*identity.Client, error) {
	for _, client := range r.clients {
		if client.UserID == userID {
			return client, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *stubClientRepo) FindAll(ctx context.Context, filter shared.Filter) ([]identity.Client, error) {
	return nil, nil
}

func (r *stubClientRepo) Save(ctx context.Context, client *identity.Client) error { return nil }

func (r *stubClientRepo) Delete(ctx context.Context, id uuid.UUID) error { return nil }

type stubEmployeeRepo struct {
	employees map[uuid.UUID]*identity.Employee
}

func (r *stubEmployeeRepo) FindByID(ctx context.Context, id uuid.UUID) (*identity.Employee, error) {
	if employee, ok := r.employees[id]; ok {
		return employee, nil
	}
	return nil, shared.ErrNotFound
}

func (r *stubEmployeeRepo) FindByUserID(ctx context.Context, userID uuid.UUID) (*identity.Employee, error) {
	return nil, shared.ErrNotFound
}

func (r *stubEmployeeRepo) FindAll(ctx context.Context, filter shared.Filter) ([]identity.Employee, error) {
	return nil, nil
}

func (r *stubEmployeeRepo) Save(ctx context.Context, employee *identity.Employee) error { return nil }

func (r *stubEmployeeRepo) Delete(ctx context.Context, id uuid.UUID) error { return nil }

type stubUserRepo struct {
	users map[uuid.UUID]*identity.User
}

func (r *stubUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	if user, ok := r.users[id]; ok {
		return user, nil
	}
	return nil, shared.ErrNotFound
}

func (r *stubUserRepo) FindByEmail(ctx context.Context, email string) (*identity.User, error) {
	return nil, shared.ErrNotFound
}

func (r *stubUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return false, nil
}

func (r *stubUserRepo) Save(ctx context.Context, user *identity.User) error { return nil }

func (r *stubUserRepo) Delete(ctx context.Context, id uuid.UUID) error { return nil }

type recordingNotifier struct {
	calls      int
	lastEmail  string
	lastStatus ordering.OrderStatus
	err        error
}

func (n *recordingNotifier) NotifyStatusChange(ctx context.Context, order *ordering.Order, oldStatus, newStatus ordering.OrderStatus, recipientEmail string) error {
	n.calls++
	n.lastEmail = recipientEmail
	n.lastStatus = newStatus
	return n.err
}

type confirmGateway struct {
	err error
}

func (confirmGateway) NewPaymentRef(orderID uuid.UUID, now time.Time) string { return "pay_test" }

func (g confirmGateway) Confirm(ctx context.Context, paymentRef string, card ordering.CardDetails) error {
	return g.err
}

type orderFixture struct {
	service   *OrderService
	orders    *stubOrderRepo
	pickups   *stubPickupRepo
	products  *stubProductFinder
	clients   *stubClientRepo
	employees *stubEmployeeRepo
	users     *stubUserRepo
	notifier  *recordingNotifier
	gateway   *confirmGateway
}

func newOrderFixture(t *testing.T) *orderFixture {
	t.Helper()

	f := &orderFixture{
		orders:    &stubOrderRepo{orders: make(map[uuid.UUID]*ordering.Order)},
		pickups:   &stubPickupRepo{points: make(map[uuid.UUID]*ordering.PickupPoint)},
		products:  &stubProductFinder{products: make(map[uuid.UUID]*catalog.Product)},
		clients:   &stubClientRepo{clients: make(map[uuid.UUID]*identity.Client)},
		employees: &stubEmployeeRepo{employees: make(map[uuid.UUID]*identity.Employee)},
		users:     &stubUserRepo{users: make(map[uuid.UUID]*identity.User)},
		notifier:  &recordingNotifier{},
		gateway:   &confirmGateway{},
	}
	f.service = NewOrderService(
		f.orders,
		f.pickups,
		f.products,
		f.clients,
		f.employees,
		f.users,
		f.notifier,
		f.gateway,
		zap.NewNop(),
	)
	return f
}

func (f *orderFixture) seedOrder(t *testing.T, clientID uuid.UUID) *ordering.Order {
	t.Helper()
	order, err := ordering.NewOrder(clientID, ordering.DeliveryCourier, ordering.PaymentCash)
	require.NoError(t, err)
	require.NoError(t, order.SetDeliveryAddress("Minsk, Lenina 1"))
	item, err := ordering.NewOrderItem(order.ID, uuid.New(), "Milk", 2, decimal.NewFromFloat(2.49))
	require.NoError(t, err)
	order.AddItem(*item)
	f.orders.orders[order.ID] = order
	return order
}

func (f *orderFixture) seedProduct(t *testing.T, name string, price float64) *catalog.Product {
	t.Helper()
	product, err := catalog.NewProduct(name, valueobject.NewMoneyBYNFromFloat(price), catalog.UnitPieces, decimal.NewFromInt(1))
	require.NoError(t, err)
	f.products.products[product.ID] = product
	return product
}

func (f *orderFixture) seedClientWithEmail(t *testing.T, email string) uuid.UUID {
	t.Helper()
	user, err := identity.NewUser(email, "password1")
	require.NoError(t, err)
	f.users.users[user.ID] = user
	client, err := identity.NewClient(user.ID, "+375 (29) 123-45-67", time.Date(1990, 5, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	f.clients.clients[client.ID] = client
	return client.ID
}

func TestOrderVisibility(t *testing.T) {
	ctx := context.Background()
	f := newOrderFixture(t)
	clientID := uuid.New()
	order := f.seedOrder(t, clientID)

	assignedEmployee := uuid.New()
	require.NoError(t, order.AssignEmployee(assignedEmployee))

	t.Run("superuser sees any order", func(t *testing.T) {
		principal := identity.NewSuperuserPrincipal(uuid.New(), "admin@example.com")
		resp, err := f.service.Get(ctx, principal, order.ID)
		require.NoError(t, err)
		assert.Equal(t, order.ID, resp.ID)
	})

	t.Run("assigned employee sees the order", func(t *testing.T) {
		principal := identity.NewEmployeePrincipal(uuid.New(), "staff@example.com", assignedEmployee)
		_, err := f.service.Get(ctx, principal, order.ID)
		require.NoError(t, err)
	})

	t.Run("unassigned employee is denied", func(t *testing.T) {
		principal := identity.NewEmployeePrincipal(uuid.New(), "other@example.com", uuid.New())
		_, err := f.service.Get(ctx, principal, order.ID)
		assert.ErrorIs(t, err, shared.ErrForbidden)
	})

	t.Run("owning client sees the order", func(t *testing.T) {
		principal := identity.NewClientPrincipal(uuid.New(), "client@example.com", clientID)
		_, err := f.service.Get(ctx, principal, order.ID)
		require.NoError(t, err)
	})

	t.Run("other client is denied", func(t *testing.T) {
		principal := identity.NewClientPrincipal(uuid.New(), "other@example.com", uuid.New())
		_, err := f.service.Get(ctx, principal, order.ID)
		assert.ErrorIs(t, err, shared.ErrForbidden)
	})

	t.Run("anonymous is denied", func(t *testing.T) {
		_, err := f.service.Get(ctx, identity.NewAnonymousPrincipal(), order.ID)
		assert.ErrorIs(t, err, shared.ErrForbidden)
	})
}

func TestListForbiddenWithoutProfile(t *testing.T) {
	ctx := context.Background()
	f := newOrderFixture(t)

	_, err := f.service.List(ctx, identity.NewAnonymousPrincipal(), ListOrdersRequest{})
	assert.ErrorIs(t, err, shared.ErrForbidden)
}

func TestUpdateStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("assigned employee may transition", func(t *testing.T) {
		f := newOrderFixture(t)
		clientID := f.seedClientWithEmail(t, "client@example.com")
		order := f.seedOrder(t, clientID)
		employeeID := uuid.New()
		require.NoError(t, order.AssignEmployee(employeeID))

		principal := identity.NewEmployeePrincipal(uuid.New(), "staff@example.com", employeeID)
		resp, err := f.service.UpdateStatus(ctx, principal, order.ID, UpdateOrderStatusRequest{Status: "shipped"})
		require.NoError(t, err)
		assert.Equal(t, "shipped", resp.Status)
	})

	t.Run("unassigned employee is denied", func(t *testing.T) {
		f := newOrderFixture(t)
		order := f.seedOrder(t, uuid.New())

		principal := identity.NewEmployeePrincipal(uuid.New(), "staff@example.com", uuid.New())
		_, err := f.service.UpdateStatus(ctx, principal, order.ID, UpdateOrderStatusRequest{Status: "shipped"})
		assert.ErrorIs(t, err, shared.ErrForbidden)
	})

	t.Run("client may not transition own order", func(t *testing.T) {
		f := newOrderFixture(t)
		clientID := uuid.New()
		order := f.seedOrder(t, clientID)

		principal := identity.NewClientPrincipal(uuid.New(), "client@example.com", clientID)
		_, err := f.service.UpdateStatus(ctx, principal, order.ID, UpdateOrderStatusRequest{Status: "canceled"})
		assert.ErrorIs(t, err, shared.ErrForbidden)
	})

	t.Run("illegal transition is rejected", func(t *testing.T) {
		f := newOrderFixture(t)
		order := f.seedOrder(t, uuid.New())

		principal := identity.NewSuperuserPrincipal(uuid.New(), "admin@example.com")
		_, err := f.service.UpdateStatus(ctx, principal, order.ID, UpdateOrderStatusRequest{Status: "delivered"})
		require.Error(t, err)
		assert.Equal(t, ordering.StatusPending, order.Status)
	})

	t.Run("status change notifies the client", func(t *testing.T) {
		f := newOrderFixture(t)
		clientID := f.seedClientWithEmail(t, "notify@example.com")
		order := f.seedOrder(t, clientID)

		principal := identity.NewSuperuserPrincipal(uuid.New(), "admin@example.com")
		_, err := f.service.UpdateStatus(ctx, principal, order.ID, UpdateOrderStatusRequest{Status: "shipped"})
		require.NoError(t, err)
		assert.Equal(t, 1, f.notifier.calls)
		assert.Equal(t, "notify@example.com", f.notifier.lastEmail)
		assert.Equal(t, ordering.StatusShipped, f.notifier.lastStatus)
	})

	t.Run("notification failure does not fail the update", func(t *testing.T) {
		f := newOrderFixture(t)
		clientID := f.seedClientWithEmail(t, "notify@example.com")
		order := f.seedOrder(t, clientID)
		f.notifier.err = assert.AnError

		principal := identity.NewSuperuserPrincipal(uuid.New(), "admin@example.com")
		resp, err := f.service.UpdateStatus(ctx, principal, order.ID, UpdateOrderStatusRequest{Status: "shipped"})
		require.NoError(t, err)
		assert.Equal(t, "shipped", resp.Status)
	})

	t.Run("same status does not notify", func(t *testing.T) {
		f := newOrderFixture(t)
		clientID := f.seedClientWithEmail(t, "notify@example.com")
		order := f.seedOrder(t, clientID)

		principal := identity.NewSuperuserPrincipal(uuid.New(), "admin@example.com")
		_, err := f.service.UpdateStatus(ctx, principal, order.ID, UpdateOrderStatusRequest{Status: "pending"})
		require.NoError(t, err)
		assert.Zero(t, f.notifier.calls)
	})

	t.Run("delivered timestamp settable with transition", func(t *testing.T) {
		f := newOrderFixture(t)
		clientID := f.seedClientWithEmail(t, "notify@example.com")
		order := f.seedOrder(t, clientID)
		require.NoError(t, order.TransitionTo(ordering.StatusShipped))

		deliveredAt := time.Now()
		principal := identity.NewSuperuserPrincipal(uuid.New(), "admin@example.com")
		resp, err := f.service.UpdateStatus(ctx, principal, order.ID, UpdateOrderStatusRequest{
			Status:      "delivered",
			DeliveredAt: &deliveredAt,
		})
		require.NoError(t, err)
		require.NotNil(t, resp.DeliveredAt)
		assert.Equal(t, deliveredAt.Unix(), resp.DeliveredAt.Unix())
	})
}

func TestAssignEmployee(t *testing.T) {
	ctx := context.Background()

	t.Run("superuser assigns staff", func(t *testing.T) {
		f := newOrderFixture(t)
		order := f.seedOrder(t, uuid.New())
		employee, err := identity.NewEmployee(uuid.New(), "Courier", time.Now().AddDate(-1, 0, 0))
		require.NoError(t, err)
		f.employees.employees[employee.ID] = employee

		principal := identity.NewSuperuserPrincipal(uuid.New(), "admin@example.com")
		resp, err := f.service.AssignEmployee(ctx, principal, order.ID, AssignEmployeeRequest{EmployeeID: employee.ID})
		require.NoError(t, err)
		require.NotNil(t, resp.EmployeeID)
		assert.Equal(t, employee.ID, *resp.EmployeeID)
	})

	t.Run("employee may not assign", func(t *testing.T) {
		f := newOrderFixture(t)
		order := f.seedOrder(t, uuid.New())

		principal := identity.NewEmployeePrincipal(uuid.New(), "staff@example.com", uuid.New())
		_, err := f.service.AssignEmployee(ctx, principal, order.ID, AssignEmployeeRequest{EmployeeID: uuid.New()})
		assert.ErrorIs(t, err, shared.ErrForbidden)
	})

	t.Run("unknown employee is rejected", func(t *testing.T) {
		f := newOrderFixture(t)
		order := f.seedOrder(t, uuid.New())

		principal := identity.NewSuperuserPrincipal(uuid.New(), "admin@example.com")
		_, err := f.service.AssignEmployee(ctx, principal, order.ID, AssignEmployeeRequest{EmployeeID: uuid.New()})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Employee not found")
	})
}

func TestConfirmPayment(t *testing.T) {
	ctx := context.Background()

	seedCardOrder := func(t *testing.T, f *orderFixture) *ordering.Order {
		t.Helper()
		order, err := ordering.NewOrder(uuid.New(), ordering.DeliveryCourier, ordering.PaymentCard)
		require.NoError(t, err)
		require.NoError(t, order.SetDeliveryAddress("Minsk, Lenina 1"))
		order.MarkPaymentPending("pay_test")
		f.orders.orders[order.ID] = order
		return order
	}

	t.Run("valid card marks paid", func(t *testing.T) {
		f := newOrderFixture(t)
		seedCardOrder(t, f)

		resp, err := f.service.ConfirmPayment(ctx, ConfirmPaymentRequest{
			PaymentRef: "pay_test",
			CardNumber: "4111111111111111",
			Expiry:     "12/27",
			CVV:        "123",
		})
		require.NoError(t, err)
		assert.Equal(t, "paid", resp.PaymentStatus)
	})

	t.Run("declined card reports the error without touching the status", func(t *testing.T) {
		f := newOrderFixture(t)
		order := seedCardOrder(t, f)
		f.gateway.err = shared.NewDomainError("PAYMENT_DECLINED", "Card declined")

		_, err := f.service.ConfirmPayment(ctx, ConfirmPaymentRequest{
			PaymentRef: "pay_test",
			CardNumber: "4111111111111111",
			Expiry:     "12/27",
			CVV:        "123",
		})
		require.Error(t, err)
		assert.Equal(t, ordering.PaymentPending, order.PaymentStatus)
	})

	t.Run("already paid order is rejected", func(t *testing.T) {
		f := newOrderFixture(t)
		order := seedCardOrder(t, f)
		order.MarkPaid()

		_, err := f.service.ConfirmPayment(ctx, ConfirmPaymentRequest{
			PaymentRef: "pay_test",
			CardNumber: "4111111111111111",
			Expiry:     "12/27",
			CVV:        "123",
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "already paid")
	})

	t.Run("unknown reference is not found", func(t *testing.T) {
		f := newOrderFixture(t)

		_, err := f.service.ConfirmPayment(ctx, ConfirmPaymentRequest{PaymentRef: "pay_missing"})
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestPickupPointOperations(t *testing.T) {
	ctx := context.Background()

	t.Run("staff creates a pickup point", func(t *testing.T) {
		f := newOrderFixture(t)
		principal := identity.NewEmployeePrincipal(uuid.New(), "staff@example.com", uuid.New())

		resp, err := f.service.CreatePickupPoint(ctx, principal, CreatePickupPointRequest{
			Name:         "Central",
			Address:      "Minsk, Lenina 1",
			WorkingHours: "9:00-21:00",
		})
		require.NoError(t, err)
		assert.Equal(t, "Central", resp.Name)
		assert.True(t, resp.Active)
	})

	t.Run("client may not create pickup points", func(t *testing.T) {
		f := newOrderFixture(t)
		principal := identity.NewClientPrincipal(uuid.New(), "client@example.com", uuid.New())

		_, err := f.service.CreatePickupPoint(ctx, principal, CreatePickupPointRequest{
			Name:    "Central",
			Address: "Minsk, Lenina 1",
		})
		assert.ErrorIs(t, err, shared.ErrForbidden)
	})
}

func TestCreateOrderManually(t *testing.T) {
	ctx := context.Background()
	superuser := identity.NewSuperuserPrincipal(uuid.New(), "admin@example.com")

	t.Run("staff creates an order for a client", func(t *testing.T) {
		f := newOrderFixture(t)
		clientID := f.seedClientWithEmail(t, "shopper@example.com")
		milk := f.seedProduct(t, "Milk", 2.49)

		resp, err := f.service.CreateOrder(ctx, superuser, CreateOrderRequest{
			ClientID:        clientID,
			DeliveryMethod:  "courier",
			DeliveryAddress: "Minsk, Lenina 1",
			PaymentMethod:   "cash",
			Items:           []OrderItemInput{{ProductID: milk.ID, Quantity: 3}},
		})
		require.NoError(t, err)
		assert.Equal(t, "pending", resp.Status)
		require.Len(t, resp.Items, 1)
		assert.Equal(t, "Milk", resp.Items[0].ProductName)
		assert.Equal(t, "2.49", resp.Items[0].UnitPrice.StringFixed(2))
		assert.Len(t, f.orders.orders, 1)
	})

	t.Run("manual creation does not touch stock", func(t *testing.T) {
		f := newOrderFixture(t)
		clientID := f.seedClientWithEmail(t, "shopper@example.com")
		milk := f.seedProduct(t, "Milk", 2.49)
		require.NoError(t, milk.SetStock(2))

		_, err := f.service.CreateOrder(ctx, superuser, CreateOrderRequest{
			ClientID:        clientID,
			DeliveryMethod:  "courier",
			DeliveryAddress: "Minsk, Lenina 1",
			PaymentMethod:   "cash",
			Items:           []OrderItemInput{{ProductID: milk.ID, Quantity: 5}},
		})
		require.NoError(t, err)
		assert.Equal(t, 2, milk.Stock)
	})

	t.Run("clients may not create orders manually", func(t *testing.T) {
		f := newOrderFixture(t)
		principal := identity.NewClientPrincipal(uuid.New(), "shopper@example.com", uuid.New())

		_, err := f.service.CreateOrder(ctx, principal, CreateOrderRequest{ClientID: uuid.New()})
		assert.ErrorIs(t, err, shared.ErrForbidden)
	})

	t.Run("unknown client is rejected", func(t *testing.T) {
		f := newOrderFixture(t)

		_, err := f.service.CreateOrder(ctx, superuser, CreateOrderRequest{
			ClientID:        uuid.New(),
			DeliveryMethod:  "courier",
			DeliveryAddress: "Minsk, Lenina 1",
			PaymentMethod:   "cash",
			Items:           []OrderItemInput{{ProductID: uuid.New(), Quantity: 1}},
		})
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("unknown product aborts", func(t *testing.T) {
		f := newOrderFixture(t)
		clientID := f.seedClientWithEmail(t, "shopper@example.com")

		_, err := f.service.CreateOrder(ctx, superuser, CreateOrderRequest{
			ClientID:        clientID,
			DeliveryMethod:  "courier",
			DeliveryAddress: "Minsk, Lenina 1",
			PaymentMethod:   "cash",
			Items:           []OrderItemInput{{ProductID: uuid.New(), Quantity: 1}},
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "does not exist")
		assert.Empty(t, f.orders.orders)
	})

	t.Run("pickup without point aborts", func(t *testing.T) {
		f := newOrderFixture(t)
		clientID := f.seedClientWithEmail(t, "shopper@example.com")
		milk := f.seedProduct(t, "Milk", 2.49)

		_, err := f.service.CreateOrder(ctx, superuser, CreateOrderRequest{
			ClientID:       clientID,
			DeliveryMethod: "pickup",
			PaymentMethod:  "cash",
			Items:          []OrderItemInput{{ProductID: milk.ID, Quantity: 1}},
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "pickup point")
	})
}

func TestReplaceOrderItems(t *testing.T) {
	ctx := context.Background()

	t.Run("assigned employee rewrites the items", func(t *testing.T) {
		f := newOrderFixture(t)
		order := f.seedOrder(t, uuid.New())
		employeeID := uuid.New()
		require.NoError(t, order.AssignEmployee(employeeID))
		bread := f.seedProduct(t, "Bread", 1.50)

		principal := identity.NewEmployeePrincipal(uuid.New(), "staff@example.com", employeeID)
		resp, err := f.service.ReplaceItems(ctx, principal, order.ID, ReplaceOrderItemsRequest{
			Items: []OrderItemInput{{ProductID: bread.ID, Quantity: 4}},
		})
		require.NoError(t, err)
		require.Len(t, resp.Items, 1)
		assert.Equal(t, "Bread", resp.Items[0].ProductName)
		assert.Equal(t, "1.50", resp.Items[0].UnitPrice.StringFixed(2))
		assert.Len(t, f.orders.orders[order.ID].Items, 1)
	})

	t.Run("replacement snapshots the current catalog price", func(t *testing.T) {
		f := newOrderFixture(t)
		order := f.seedOrder(t, uuid.New())
		bread := f.seedProduct(t, "Bread", 1.50)
		require.NoError(t, bread.SetPrice(valueobject.NewMoneyBYNFromFloat(1.80)))

		superuser := identity.NewSuperuserPrincipal(uuid.New(), "admin@example.com")
		resp, err := f.service.ReplaceItems(ctx, superuser, order.ID, ReplaceOrderItemsRequest{
			Items: []OrderItemInput{{ProductID: bread.ID, Quantity: 1}},
		})
		require.NoError(t, err)
		assert.Equal(t, "1.80", resp.Items[0].UnitPrice.StringFixed(2))
	})

	t.Run("unassigned employee is forbidden", func(t *testing.T) {
		f := newOrderFixture(t)
		order := f.seedOrder(t, uuid.New())
		require.NoError(t, order.AssignEmployee(uuid.New()))
		bread := f.seedProduct(t, "Bread", 1.50)

		principal := identity.NewEmployeePrincipal(uuid.New(), "staff@example.com", uuid.New())
		_, err := f.service.ReplaceItems(ctx, principal, order.ID, ReplaceOrderItemsRequest{
			Items: []OrderItemInput{{ProductID: bread.ID, Quantity: 1}},
		})
		assert.ErrorIs(t, err, shared.ErrForbidden)
	})
}
