// Package payment provides a simulated card payment gateway.
package payment

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/delivery/backend/internal/domain/ordering"
	"github.com/delivery/backend/internal/domain/shared"
)

var (
	cardNumberPattern = regexp.MustCompile(`^\d{16}$`)
	cardExpiryPattern = regexp.MustCompile(`^\d{2}/\d{2}$`)
	cardCVVPattern    = regexp.MustCompile(`^\d{3}$`)
)

// SimulatedGateway validates card details locally instead of calling
// an acquirer. References are deterministic per order and creation time
type SimulatedGateway struct {
	logger *zap.Logger
}

// NewSimulatedGateway creates a new SimulatedGateway
func NewSimulatedGateway(logger *zap.Logger) *SimulatedGateway {
	return &SimulatedGateway{logger: logger}
}

// NewPaymentRef builds a reference for a card payment
func (g *SimulatedGateway) NewPaymentRef(orderID uuid.UUID, now time.Time) string {
	return fmt.Sprintf("pay_%s_%d", orderID, now.Unix())
}

// Confirm validates the submitted card for the given reference.
// A non-nil error means the payment failed
func (g *SimulatedGateway) Confirm(ctx context.Context, paymentRef string, card ordering.CardDetails) error {
	number := strings.ReplaceAll(card.Number, " ", "")

	if !cardNumberPattern.MatchString(number) ||
		!cardExpiryPattern.MatchString(card.Expiry) ||
		!cardCVVPattern.MatchString(card.CVV) {
		g.logger.Debug("payment declined", zap.String("payment_ref", paymentRef))
		return shared.NewDomainError("PAYMENT_DECLINED", "Payment failed, check card details")
	}

	g.logger.Debug("payment confirmed", zap.String("payment_ref", paymentRef))
	return nil
}

var _ ordering.PaymentGateway = (*SimulatedGateway)(nil)
