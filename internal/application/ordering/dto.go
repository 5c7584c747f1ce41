package ordering

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/delivery/backend/internal/domain/ordering"
)

// CheckoutRequest represents a cart-to-order submission
type CheckoutRequest struct {
	DeliveryMethod  string     `json:"delivery_method" binding:"required,oneof=pickup courier"`
	PickupPointID   *uuid.UUID `json:"pickup_point_id"`
	DeliveryAddress string     `json:"delivery_address" binding:"max=300"`
	PromoCode       string     `json:"promo_code" binding:"max=50"`
	PaymentMethod   string     `json:"payment_method" binding:"required,oneof=card cash"`
	IdempotencyKey  string     `json:"idempotency_key" binding:"max=100"`
}

// CheckoutResponse represents the result of a successful checkout
type CheckoutResponse struct {
	Order      OrderResponse `json:"order"`
	PaymentRef string        `json:"payment_ref,omitempty"`
}

// OrderItemInput names a product and quantity for manual order
// creation and staff item editing
type OrderItemInput struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int       `json:"quantity" binding:"required,min=1"`
}

// CreateOrderRequest represents a staff request to create an order on
// behalf of a client, bypassing the cart
type CreateOrderRequest struct {
	ClientID        uuid.UUID        `json:"client_id" binding:"required"`
	DeliveryMethod  string           `json:"delivery_method" binding:"required,oneof=pickup courier"`
	PickupPointID   *uuid.UUID       `json:"pickup_point_id"`
	DeliveryAddress string           `json:"delivery_address" binding:"max=300"`
	PaymentMethod   string           `json:"payment_method" binding:"required,oneof=card cash"`
	Items           []OrderItemInput `json:"items" binding:"required,min=1,dive"`
}

// ReplaceOrderItemsRequest represents a staff rewrite of an order's items
type ReplaceOrderItemsRequest struct {
	Items []OrderItemInput `json:"items" binding:"required,min=1,dive"`
}

// ConfirmPaymentRequest represents a card payment confirmation
type ConfirmPaymentRequest struct {
	PaymentRef string `json:"payment_ref" binding:"required"`
	CardNumber string `json:"card_number" binding:"required"`
	Expiry     string `json:"expiry" binding:"required"`
	CVV        string `json:"cvv" binding:"required"`
}

// UpdateOrderStatusRequest represents a staff status transition
type UpdateOrderStatusRequest struct {
	Status      string     `json:"status" binding:"required,oneof=pending shipped delivered canceled"`
	DeliveredAt *time.Time `json:"delivered_at"`
}

// AssignEmployeeRequest represents a superuser assigning staff to an order
type AssignEmployeeRequest struct {
	EmployeeID uuid.UUID `json:"employee_id" binding:"required"`
}

// ListOrdersRequest represents query parameters for listing orders
type ListOrdersRequest struct {
	Page     int    `form:"page" binding:"min=0"`
	PageSize int    `form:"page_size" binding:"min=0,max=100"`
	OrderBy  string `form:"order_by" binding:"omitempty,oneof=ordered_at status"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// OrderItemResponse represents a line item in API responses
type OrderItemResponse struct {
	ID          uuid.UUID       `json:"id"`
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// OrderResponse represents an order in API responses
type OrderResponse struct {
	ID              uuid.UUID           `json:"id"`
	ClientID        uuid.UUID           `json:"client_id"`
	EmployeeID      *uuid.UUID          `json:"employee_id"`
	Status          string              `json:"status"`
	DeliveryMethod  string              `json:"delivery_method"`
	PickupPointID   *uuid.UUID          `json:"pickup_point_id"`
	DeliveryAddress string              `json:"delivery_address"`
	DeliveryCost    decimal.Decimal     `json:"delivery_cost"`
	PaymentMethod   string              `json:"payment_method"`
	PaymentStatus   string              `json:"payment_status"`
	PromoCode       string              `json:"promo_code,omitempty"`
	Items           []OrderItemResponse `json:"items"`
	TotalCost       decimal.Decimal     `json:"total_cost"`
	OrderedAt       time.Time           `json:"ordered_at"`
	DeliveredAt     *time.Time          `json:"delivered_at"`
}

// CreatePickupPointRequest represents a staff request to add a pickup point
type CreatePickupPointRequest struct {
	Name         string `json:"name" binding:"required,min=1,max=150"`
	Address      string `json:"address" binding:"required,min=1,max=300"`
	WorkingHours string `json:"working_hours" binding:"max=100"`
}

// PickupPointResponse represents a pickup point in API responses
type PickupPointResponse struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Address      string    `json:"address"`
	WorkingHours string    `json:"working_hours"`
	Active       bool      `json:"active"`
}

func toOrderResponse(order *ordering.Order, now time.Time) OrderResponse {
	items := make([]OrderItemResponse, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, OrderItemResponse{
			ID:          item.ID,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Subtotal:    item.Subtotal(),
		})
	}

	promoCode := ""
	if order.PromoCode != nil {
		promoCode = order.PromoCode.Code
	}

	return OrderResponse{
		ID:              order.ID,
		ClientID:        order.ClientID,
		EmployeeID:      order.EmployeeID,
		Status:          string(order.Status),
		DeliveryMethod:  string(order.DeliveryMethod),
		PickupPointID:   order.PickupPointID,
		DeliveryAddress: order.DeliveryAddress,
		DeliveryCost:    order.DeliveryCost,
		PaymentMethod:   string(order.PaymentMethod),
		PaymentStatus:   string(order.PaymentStatus),
		PromoCode:       promoCode,
		Items:           items,
		TotalCost:       order.TotalCost(now).Amount(),
		OrderedAt:       order.OrderedAt,
		DeliveredAt:     order.DeliveredAt,
	}
}

func toPickupPointResponse(p *ordering.PickupPoint) *PickupPointResponse {
	return &PickupPointResponse{
		ID:           p.ID,
		Name:         p.Name,
		Address:      p.Address,
		WorkingHours: p.WorkingHours,
		Active:       p.Active,
	}
}
