package ordering

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/delivery/backend/internal/domain/cart"
	"github.com/delivery/backend/internal/domain/catalog"
	"github.com/delivery/backend/internal/domain/ordering"
	"github.com/delivery/backend/internal/domain/promotion"
	"github.com/delivery/backend/internal/domain/shared"
)

// DeliveryPricing holds the courier cost parameters:
// cost = Base + PerKgRate * total order weight. Pickup is free
type DeliveryPricing struct {
	Base      decimal.Decimal
	PerKgRate decimal.Decimal
}

// CheckoutService converts a client's cart into a persisted order.
// All stock checks and mutations run inside one unit of work so that
// concurrent checkouts cannot jointly oversell
type CheckoutService struct {
	cartRepo    cart.CartItemRepository
	promoRepo   promotion.PromoCodeRepository
	pickupRepo  ordering.PickupPointRepository
	uow         ordering.CheckoutUnitOfWork
	gateway     ordering.PaymentGateway
	idempotency shared.IdempotencyStore
	idemConfig  shared.IdempotencyConfig
	pricing     DeliveryPricing
	logger      *zap.Logger
}

// NewCheckoutService creates a new CheckoutService
func NewCheckoutService(
	cartRepo cart.CartItemRepository,
	promoRepo promotion.PromoCodeRepository,
	pickupRepo ordering.PickupPointRepository,
	uow ordering.CheckoutUnitOfWork,
	gateway ordering.PaymentGateway,
	idempotency shared.IdempotencyStore,
	idemConfig shared.IdempotencyConfig,
	pricing DeliveryPricing,
	logger *zap.Logger,
) *CheckoutService {
	return &CheckoutService{
		cartRepo:    cartRepo,
		promoRepo:   promoRepo,
		pickupRepo:  pickupRepo,
		uow:         uow,
		gateway:     gateway,
		idempotency: idempotency,
		idemConfig:  idemConfig,
		pricing:     pricing,
		logger:      logger,
	}
}

// Checkout validates the cart, promo, and delivery target, then
// atomically creates the order with item snapshots, decrements stock,
// and clears the cart. All precondition failures abort with zero
// state mutation
func (s *CheckoutService) Checkout(ctx context.Context, clientID uuid.UUID, req CheckoutRequest) (resp *CheckoutResponse, err error) {
	now := time.Now()

	guardKey, err := s.guardDuplicate(ctx, clientID, req.IdempotencyKey)
	if err != nil {
		return nil, err
	}
	// a failed checkout releases the key so the same submission can be
	// retried once the cause is resolved
	defer func() {
		if err != nil {
			s.releaseGuard(ctx, guardKey)
		}
	}()

	promo, err := s.resolvePromo(ctx, req.PromoCode, now)
	if err != nil {
		return nil, err
	}

	if err := s.validateDeliveryTarget(ctx, req); err != nil {
		return nil, err
	}

	items, err := s.cartRepo.FindByClient(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, shared.NewDomainError("EMPTY_CART", "Cannot check out an empty cart")
	}

	var order *ordering.Order
	err = s.uow.Execute(ctx, func(repos ordering.CheckoutRepositories) error {
		productIDs := make([]uuid.UUID, 0, len(items))
		for _, item := range items {
			productIDs = append(productIDs, item.ProductID)
		}

		products, err := repos.Products.FindByIDsForUpdate(ctx, productIDs)
		if err != nil {
			return err
		}
		byID := make(map[uuid.UUID]*catalog.Product, len(products))
		for i := range products {
			byID[products[i].ID] = &products[i]
		}

		// every stock check passes before any mutation happens
		for _, item := range items {
			product, ok := byID[item.ProductID]
			if !ok {
				return shared.NewDomainError("INVALID_PRODUCT", "A cart product no longer exists")
			}
			if !product.HasStock(item.Quantity) {
				return shared.NewDomainError("INSUFFICIENT_STOCK",
					fmt.Sprintf("Insufficient stock for %s: have %d, need %d", product.Name, product.Stock, item.Quantity))
			}
		}

		order, err = ordering.NewOrder(clientID, ordering.DeliveryMethod(req.DeliveryMethod), ordering.PaymentMethod(req.PaymentMethod))
		if err != nil {
			return err
		}

		switch order.DeliveryMethod {
		case ordering.DeliveryPickup:
			if err := order.SetPickupPoint(*req.PickupPointID); err != nil {
				return err
			}
		case ordering.DeliveryCourier:
			if err := order.SetDeliveryAddress(req.DeliveryAddress); err != nil {
				return err
			}
			if err := order.SetDeliveryCost(s.courierCost(items, byID)); err != nil {
				return err
			}
		}

		if promo != nil {
			order.ApplyPromoCode(promo)
		}

		for _, item := range items {
			product := byID[item.ProductID]

			// items snapshot the catalog price; the promo discount is
			// applied once over the whole order in TotalCost
			orderItem, err := ordering.NewOrderItem(order.ID, product.ID, product.Name, item.Quantity, product.Price)
			if err != nil {
				return err
			}
			order.AddItem(*orderItem)

			if err := product.DecreaseStock(item.Quantity); err != nil {
				return err
			}
			if err := repos.Products.Save(ctx, product); err != nil {
				return err
			}
		}

		if order.PaymentMethod == ordering.PaymentCard {
			order.MarkPaymentPending(s.gateway.NewPaymentRef(order.ID, now))
		}

		if err := repos.Orders.Save(ctx, order); err != nil {
			return err
		}
		return repos.CartItems.DeleteByClient(ctx, clientID)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("checkout completed",
		zap.String("order_id", order.ID.String()),
		zap.String("client_id", clientID.String()),
		zap.Int("items", len(order.Items)),
		zap.String("total", order.TotalCost(now).StringFixed(2)))

	return &CheckoutResponse{
		Order:      toOrderResponse(order, now),
		PaymentRef: order.PaymentRef,
	}, nil
}

// guardDuplicate marks the submission key as seen and returns the
// store key so a failed checkout can release it again
func (s *CheckoutService) guardDuplicate(ctx context.Context, clientID uuid.UUID, key string) (string, error) {
	if key == "" || !s.idemConfig.Enabled || s.idempotency == nil {
		return "", nil
	}

	storeKey := fmt.Sprintf("checkout:%s:%s", clientID, key)
	fresh, err := s.idempotency.MarkProcessed(ctx, storeKey, s.idemConfig.TTL)
	if err != nil {
		// the guard is advisory; a store outage must not block checkout
		s.logger.Warn("idempotency store unavailable", zap.Error(err))
		return "", nil
	}
	if !fresh {
		return "", shared.NewDomainError("DUPLICATE_SUBMISSION", "This checkout was already submitted")
	}
	return storeKey, nil
}

func (s *CheckoutService) releaseGuard(ctx context.Context, storeKey string) {
	if storeKey == "" {
		return
	}
	if err := s.idempotency.Release(ctx, storeKey); err != nil {
		s.logger.Warn("idempotency key not released", zap.Error(err))
	}
}

func (s *CheckoutService) resolvePromo(ctx context.Context, code string, now time.Time) (*promotion.PromoCode, error) {
	if code == "" {
		return nil, nil
	}

	promo, err := s.promoRepo.FindByCode(ctx, code)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("PROMO_NOT_FOUND", "Promo code not found")
		}
		return nil, err
	}
	if !promo.IsValid(now) {
		return nil, shared.NewDomainError("PROMO_INVALID", "Promo code is expired or inactive")
	}
	return promo, nil
}

func (s *CheckoutService) validateDeliveryTarget(ctx context.Context, req CheckoutRequest) error {
	switch ordering.DeliveryMethod(req.DeliveryMethod) {
	case ordering.DeliveryPickup:
		if req.PickupPointID == nil || *req.PickupPointID == uuid.Nil {
			return shared.NewDomainError("MISSING_DELIVERY_TARGET", "Pickup orders require a pickup point")
		}
		point, err := s.pickupRepo.FindByID(ctx, *req.PickupPointID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return shared.NewDomainError("MISSING_DELIVERY_TARGET", "Pickup point not found")
			}
			return err
		}
		if !point.Active {
			return shared.NewDomainError("MISSING_DELIVERY_TARGET", "Pickup point is not available")
		}
	case ordering.DeliveryCourier:
		if req.DeliveryAddress == "" {
			return shared.NewDomainError("MISSING_DELIVERY_TARGET", "Courier orders require a delivery address")
		}
	}
	return nil
}

func (s *CheckoutService) courierCost(items []cart.CartItem, products map[uuid.UUID]*catalog.Product) decimal.Decimal {
	totalWeight := decimal.Zero
	for _, item := range items {
		if product, ok := products[item.ProductID]; ok {
			totalWeight = totalWeight.Add(product.TotalWeight(item.Quantity))
		}
	}
	return s.pricing.Base.Add(s.pricing.PerKgRate.Mul(totalWeight))
}
