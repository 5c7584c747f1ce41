package ordering

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// StatusNotifier informs the client about an order status change.
// Delivery is best-effort: callers ignore failures and never let
// a notification error block the transition
type StatusNotifier interface {
	NotifyStatusChange(ctx context.Context, order *Order, oldStatus, newStatus OrderStatus, recipientEmail string) error
}

// CardDetails carries the card fields submitted at payment confirmation
type CardDetails struct {
	Number string
	Expiry string
	CVV    string
}

// PaymentGateway issues payment references for card orders and
// confirms submitted card payments
type PaymentGateway interface {
	// NewPaymentRef builds a reference for a card payment
	NewPaymentRef(orderID uuid.UUID, now time.Time) string

	// Confirm validates the submitted card for the given reference.
	// A non-nil error means the payment failed
	Confirm(ctx context.Context, paymentRef string, card CardDetails) error
}
