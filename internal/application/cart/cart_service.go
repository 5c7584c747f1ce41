package cart

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/delivery/backend/internal/domain/cart"
	"github.com/delivery/backend/internal/domain/catalog"
	"github.com/delivery/backend/internal/domain/shared"
)

// AddToCartRequest represents a request to add a product to the cart
type AddToCartRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int       `json:"quantity" binding:"required,min=1"`
}

// UpdateCartItemRequest represents a request to change a cart item quantity
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity" binding:"required,min=1"`
}

// CartItemResponse represents a cart line in API responses
type CartItemResponse struct {
	ID          uuid.UUID       `json:"id"`
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Quantity    int             `json:"quantity"`
	Subtotal    decimal.Decimal `json:"subtotal"`
	InStock     bool            `json:"in_stock"`
}

// CartResponse represents the full cart in API responses
type CartResponse struct {
	Items []CartItemResponse `json:"items"`
	Total decimal.Decimal    `json:"total"`
}

// CartService handles cart operations for a client
type CartService struct {
	cartRepo    cart.CartItemRepository
	productRepo catalog.ProductRepository
}

// NewCartService creates a new CartService
func NewCartService(cartRepo cart.CartItemRepository, productRepo catalog.ProductRepository) *CartService {
	return &CartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

// Add adds a product to the client's cart, merging with an existing
// line for the same product
func (s *CartService) Add(ctx context.Context, clientID uuid.UUID, req AddToCartRequest) (*CartItemResponse, error) {
	product, err := s.productRepo.FindByID(ctx, req.ProductID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("INVALID_PRODUCT", "Product not found")
		}
		return nil, err
	}
	if !product.Active {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product is not available")
	}

	item, err := s.cartRepo.FindByClientAndProduct(ctx, clientID, req.ProductID)
	switch {
	case err == nil:
		if err := item.AddQuantity(req.Quantity); err != nil {
			return nil, err
		}
	case errors.Is(err, shared.ErrNotFound):
		item, err = cart.NewCartItem(clientID, req.ProductID, req.Quantity)
		if err != nil {
			return nil, err
		}
	default:
		return nil, err
	}

	if err := s.cartRepo.Save(ctx, item); err != nil {
		return nil, err
	}

	return toCartItemResponse(item, product), nil
}

// UpdateQuantity replaces a cart item's quantity
func (s *CartService) UpdateQuantity(ctx context.Context, clientID, itemID uuid.UUID, req UpdateCartItemRequest) (*CartItemResponse, error) {
	item, err := s.findOwnedItem(ctx, clientID, itemID)
	if err != nil {
		return nil, err
	}

	if err := item.SetQuantity(req.Quantity); err != nil {
		return nil, err
	}
	if err := s.cartRepo.Save(ctx, item); err != nil {
		return nil, err
	}

	product, err := s.productRepo.FindByID(ctx, item.ProductID)
	if err != nil {
		return nil, err
	}
	return toCartItemResponse(item, product), nil
}

// Remove removes a cart item
func (s *CartService) Remove(ctx context.Context, clientID, itemID uuid.UUID) error {
	item, err := s.findOwnedItem(ctx, clientID, itemID)
	if err != nil {
		return err
	}
	return s.cartRepo.Delete(ctx, item.ID)
}

// Clear removes every cart item for the client
func (s *CartService) Clear(ctx context.Context, clientID uuid.UUID) error {
	return s.cartRepo.DeleteByClient(ctx, clientID)
}

// List returns the client's cart with product details and a running total
func (s *CartService) List(ctx context.Context, clientID uuid.UUID) (*CartResponse, error) {
	items, err := s.cartRepo.FindByClient(ctx, clientID)
	if err != nil {
		return nil, err
	}

	resp := &CartResponse{
		Items: make([]CartItemResponse, 0, len(items)),
		Total: decimal.Zero,
	}
	for i := range items {
		product, err := s.productRepo.FindByID(ctx, items[i].ProductID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				continue
			}
			return nil, err
		}
		line := toCartItemResponse(&items[i], product)
		resp.Items = append(resp.Items, *line)
		resp.Total = resp.Total.Add(line.Subtotal)
	}

	return resp, nil
}

func (s *CartService) findOwnedItem(ctx context.Context, clientID, itemID uuid.UUID) (*cart.CartItem, error) {
	items, err := s.cartRepo.FindByClient(ctx, clientID)
	if err != nil {
		return nil, err
	}
	for i := range items {
		if items[i].ID == itemID {
			return &items[i], nil
		}
	}
	return nil, shared.ErrNotFound
}

func toCartItemResponse(item *cart.CartItem, product *catalog.Product) *CartItemResponse {
	return &CartItemResponse{
		ID:          item.ID,
		ProductID:   product.ID,
		ProductName: product.Name,
		UnitPrice:   product.Price,
		Quantity:    item.Quantity,
		Subtotal:    product.Price.Mul(decimal.NewFromInt(int64(item.Quantity))),
		InStock:     product.HasStock(item.Quantity),
	}
}
