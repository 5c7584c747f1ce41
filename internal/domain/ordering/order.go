package ordering

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/delivery/backend/internal/domain/promotion"
	"github.com/delivery/backend/internal/domain/shared"
	"github.com/delivery/backend/internal/domain/shared/valueobject"
)

// OrderStatus represents the lifecycle state of an order
type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusShipped   OrderStatus = "shipped"
	StatusDelivered OrderStatus = "delivered"
	StatusCanceled  OrderStatus = "canceled"
)

// DeliveryMethod represents how an order reaches the client
type DeliveryMethod string

const (
	DeliveryPickup  DeliveryMethod = "pickup"
	DeliveryCourier DeliveryMethod = "courier"
)

// PaymentMethod represents how an order is paid for
type PaymentMethod string

const (
	PaymentCard PaymentMethod = "card"
	PaymentCash PaymentMethod = "cash"
)

// PaymentStatus represents the payment state of an order
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
	PaymentFailed  PaymentStatus = "failed"
)

// allowed state transitions: pending -> shipped/canceled,
// shipped -> delivered/canceled; delivered and canceled are terminal
var transitions = map[OrderStatus][]OrderStatus{
	StatusPending: {StatusShipped, StatusCanceled},
	StatusShipped: {StatusDelivered, StatusCanceled},
}

// Order is the aggregate root of the fulfillment lifecycle.
// It owns its line items; item prices are snapshots immutable
// after creation
type Order struct {
	shared.BaseAggregateRoot
	ClientID        uuid.UUID            `gorm:"type:uuid;not null;index"`
	EmployeeID      *uuid.UUID           `gorm:"type:uuid;index"`
	Status          OrderStatus          `gorm:"type:varchar(20);not null;default:'pending'"`
	DeliveryMethod  DeliveryMethod       `gorm:"type:varchar(20);not null"`
	PickupPointID   *uuid.UUID           `gorm:"type:uuid"`
	DeliveryAddress string               `gorm:"type:varchar(300)"`
	DeliveryCost    decimal.Decimal      `gorm:"type:decimal(18,4);not null;default:0"`
	PaymentMethod   PaymentMethod        `gorm:"type:varchar(20);not null"`
	PaymentStatus   PaymentStatus        `gorm:"type:varchar(20);not null;default:'pending'"`
	PaymentRef      string               `gorm:"type:varchar(100)"`
	PromoCodeID     *uuid.UUID           `gorm:"type:uuid"`
	PromoCode       *promotion.PromoCode `gorm:"foreignKey:PromoCodeID"`
	Items           []OrderItem          `gorm:"foreignKey:OrderID"`
	OrderedAt       time.Time            `gorm:"not null"`
	DeliveredAt     *time.Time           `gorm:""`
}

// TableName returns the table name for GORM
func (Order) TableName() string {
	return "orders"
}

// OrderItem is a product-quantity-price snapshot within an order.
// UnitPrice is captured at order time; later catalog price changes
// must not affect it
type OrderItem struct {
	shared.BaseEntity
	OrderID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID   uuid.UUID       `gorm:"type:uuid;not null"`
	ProductName string          `gorm:"type:varchar(200);not null"`
	Quantity    int             `gorm:"not null"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(18,4);not null"`
}

// TableName returns the table name for GORM
func (OrderItem) TableName() string {
	return "order_items"
}

// NewOrderItem creates a line item snapshot
func NewOrderItem(orderID, productID uuid.UUID, productName string, quantity int, unitPrice decimal.Decimal) (*OrderItem, error) {
	if quantity < 1 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be at least 1")
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}

	return &OrderItem{
		BaseEntity:  shared.NewBaseEntity(),
		OrderID:     orderID,
		ProductID:   productID,
		ProductName: productName,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
	}, nil
}

// Subtotal returns quantity times unit price for this line item
func (i OrderItem) Subtotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// NewOrder creates an order header in the pending state
func NewOrder(clientID uuid.UUID, deliveryMethod DeliveryMethod, paymentMethod PaymentMethod) (*Order, error) {
	if clientID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CLIENT", "Client ID is required")
	}
	switch deliveryMethod {
	case DeliveryPickup, DeliveryCourier:
	default:
		return nil, shared.NewDomainError("INVALID_DELIVERY_METHOD", fmt.Sprintf("Unsupported delivery method: %s", deliveryMethod))
	}
	switch paymentMethod {
	case PaymentCard, PaymentCash:
	default:
		return nil, shared.NewDomainError("INVALID_PAYMENT_METHOD", fmt.Sprintf("Unsupported payment method: %s", paymentMethod))
	}

	return &Order{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ClientID:          clientID,
		Status:            StatusPending,
		DeliveryMethod:    deliveryMethod,
		DeliveryCost:      decimal.Zero,
		PaymentMethod:     paymentMethod,
		PaymentStatus:     PaymentPending,
		OrderedAt:         time.Now(),
	}, nil
}

// SetPickupPoint sets the pickup point for a pickup order
func (o *Order) SetPickupPoint(pickupPointID uuid.UUID) error {
	if o.DeliveryMethod != DeliveryPickup {
		return shared.NewDomainError("INVALID_DELIVERY_TARGET", "Pickup point applies only to pickup orders")
	}
	if pickupPointID == uuid.Nil {
		return shared.NewDomainError("MISSING_DELIVERY_TARGET", "Pickup orders require a pickup point")
	}

	o.PickupPointID = &pickupPointID
	return nil
}

// SetDeliveryAddress sets the address for a courier order
func (o *Order) SetDeliveryAddress(address string) error {
	if o.DeliveryMethod != DeliveryCourier {
		return shared.NewDomainError("INVALID_DELIVERY_TARGET", "Delivery address applies only to courier orders")
	}
	if address == "" {
		return shared.NewDomainError("MISSING_DELIVERY_TARGET", "Courier orders require a delivery address")
	}

	o.DeliveryAddress = address
	return nil
}

// SetDeliveryCost sets the computed delivery cost
func (o *Order) SetDeliveryCost(cost decimal.Decimal) error {
	if cost.IsNegative() {
		return shared.NewDomainError("INVALID_DELIVERY_COST", "Delivery cost cannot be negative")
	}

	o.DeliveryCost = cost
	return nil
}

// ApplyPromoCode attaches a promo code reference to the order
func (o *Order) ApplyPromoCode(promo *promotion.PromoCode) {
	o.PromoCodeID = &promo.ID
	o.PromoCode = promo
}

// AddItem appends a line item to the order
func (o *Order) AddItem(item OrderItem) {
	o.Items = append(o.Items, item)
}

// ReplaceItems swaps the full item list, used by staff order editing
func (o *Order) ReplaceItems(items []OrderItem) {
	o.Items = items
	o.UpdatedAt = time.Now()
	o.IncrementVersion()
}

// ProductIDs returns the IDs of all products in the order
func (o *Order) ProductIDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(o.Items))
	for _, item := range o.Items {
		ids = append(ids, item.ProductID)
	}
	return ids
}

// BaseTotal returns the sum of quantity times unit price over all
// line items, before discount and delivery cost
func (o *Order) BaseTotal() decimal.Decimal {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.Subtotal())
	}
	return total
}

// TotalCost computes the order's total at the given time:
// base total, minus the whole-order promo discount when the promo
// is valid and applies, plus delivery cost. The result is rounded
// half up to 2 decimal places
func (o *Order) TotalCost(now time.Time) valueobject.Money {
	total := o.BaseTotal()

	if o.PromoCode != nil && o.PromoCode.IsValid(now) && o.PromoCode.AppliesTo(o.ProductIDs()) {
		discount := total.Mul(o.PromoCode.DiscountPercent).Div(decimal.NewFromInt(100))
		total = total.Sub(discount)
	}

	total = total.Add(o.DeliveryCost)

	return valueobject.NewMoneyBYN(total).Round(2)
}

// CanTransitionTo reports whether the status change is allowed
func (o *Order) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range transitions[o.Status] {
		if allowed == next {
			return true
		}
	}
	return false
}

// TransitionTo moves the order to the next lifecycle state.
// Delivered and canceled are terminal
func (o *Order) TransitionTo(next OrderStatus) error {
	switch next {
	case StatusPending, StatusShipped, StatusDelivered, StatusCanceled:
	default:
		return shared.NewDomainError("INVALID_STATUS", fmt.Sprintf("Unknown order status: %s", next))
	}
	if !o.CanTransitionTo(next) {
		return shared.NewDomainError("INVALID_TRANSITION",
			fmt.Sprintf("Cannot transition order from %s to %s", o.Status, next))
	}

	o.Status = next
	if next == StatusDelivered && o.DeliveredAt == nil {
		now := time.Now()
		o.DeliveredAt = &now
	}
	o.UpdatedAt = time.Now()
	o.IncrementVersion()

	return nil
}

// IsTerminal reports whether the order is in a terminal state
func (o *Order) IsTerminal() bool {
	return o.Status == StatusDelivered || o.Status == StatusCanceled
}

// AssignEmployee assigns a staff member to the order
func (o *Order) AssignEmployee(employeeID uuid.UUID) error {
	if employeeID == uuid.Nil {
		return shared.NewDomainError("INVALID_EMPLOYEE", "Employee ID is required")
	}

	o.EmployeeID = &employeeID
	o.UpdatedAt = time.Now()
	o.IncrementVersion()

	return nil
}

// IsAssignedTo reports whether the given employee is assigned to the order
func (o *Order) IsAssignedTo(employeeID uuid.UUID) bool {
	return o.EmployeeID != nil && *o.EmployeeID == employeeID
}

// SetDeliveredAt sets the delivery timestamp independently of status
// (staff input)
func (o *Order) SetDeliveredAt(deliveredAt *time.Time) {
	o.DeliveredAt = deliveredAt
	o.UpdatedAt = time.Now()
	o.IncrementVersion()
}

// MarkPaymentPending marks the payment as awaiting confirmation
// and records the payment reference
func (o *Order) MarkPaymentPending(paymentRef string) {
	o.PaymentStatus = PaymentPending
	o.PaymentRef = paymentRef
	o.UpdatedAt = time.Now()
}

// MarkPaid marks the payment as confirmed
func (o *Order) MarkPaid() {
	o.PaymentStatus = PaymentPaid
	o.UpdatedAt = time.Now()
	o.IncrementVersion()
}
