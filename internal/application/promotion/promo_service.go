package promotion

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/delivery/backend/internal/domain/catalog"
	"github.com/delivery/backend/internal/domain/promotion"
	"github.com/delivery/backend/internal/domain/shared"
)

// CreatePromoCodeRequest represents a request to create a promo code
type CreatePromoCodeRequest struct {
	Code            string          `json:"code" binding:"required,min=1,max=50"`
	DiscountPercent decimal.Decimal `json:"discount_percent" binding:"required"`
	ValidFrom       time.Time       `json:"valid_from" binding:"required"`
	ValidTo         time.Time       `json:"valid_to" binding:"required"`
	ProductIDs      []uuid.UUID     `json:"product_ids"`
}

// UpdatePromoCodeRequest represents a request to update a promo code
type UpdatePromoCodeRequest struct {
	ValidFrom  *time.Time   `json:"valid_from"`
	ValidTo    *time.Time   `json:"valid_to"`
	Active     *bool        `json:"active"`
	ProductIDs *[]uuid.UUID `json:"product_ids"`
}

// PromoCodeResponse represents a promo code in API responses
type PromoCodeResponse struct {
	ID              uuid.UUID       `json:"id"`
	Code            string          `json:"code"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
	ValidFrom       time.Time       `json:"valid_from"`
	ValidTo         time.Time       `json:"valid_to"`
	Active          bool            `json:"active"`
	ProductIDs      []uuid.UUID     `json:"product_ids"`
}

// PromoService handles promo code management
type PromoService struct {
	promoRepo   promotion.PromoCodeRepository
	productRepo catalog.ProductRepository
}

// NewPromoService creates a new PromoService
func NewPromoService(promoRepo promotion.PromoCodeRepository, productRepo catalog.ProductRepository) *PromoService {
	return &PromoService{
		promoRepo:   promoRepo,
		productRepo: productRepo,
	}
}

// Create creates a new promo code
func (s *PromoService) Create(ctx context.Context, req CreatePromoCodeRequest) (*PromoCodeResponse, error) {
	if existing, err := s.promoRepo.FindByCode(ctx, req.Code); err == nil && existing != nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Promo code already exists")
	} else if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	promo, err := promotion.NewPromoCode(req.Code, req.DiscountPercent, req.ValidFrom, req.ValidTo)
	if err != nil {
		return nil, err
	}

	if len(req.ProductIDs) > 0 {
		products, err := s.productRepo.FindByIDs(ctx, req.ProductIDs)
		if err != nil {
			return nil, err
		}
		if len(products) != len(req.ProductIDs) {
			return nil, shared.NewDomainError("INVALID_PRODUCT", "One or more scoped products do not exist")
		}
		promo.RestrictToProducts(products)
	}

	if err := s.promoRepo.Save(ctx, promo); err != nil {
		return nil, err
	}

	return toPromoResponse(promo), nil
}

// Get returns a promo code by ID
func (s *PromoService) Get(ctx context.Context, id uuid.UUID) (*PromoCodeResponse, error) {
	promo, err := s.promoRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toPromoResponse(promo), nil
}

// List returns all promo codes
func (s *PromoService) List(ctx context.Context, filter shared.Filter) ([]PromoCodeResponse, error) {
	promos, err := s.promoRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]PromoCodeResponse, 0, len(promos))
	for i := range promos {
		items = append(items, *toPromoResponse(&promos[i]))
	}
	return items, nil
}

// Update updates a promo code's window, active flag, or product scope
func (s *PromoService) Update(ctx context.Context, id uuid.UUID, req UpdatePromoCodeRequest) (*PromoCodeResponse, error) {
	promo, err := s.promoRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.ValidFrom != nil || req.ValidTo != nil {
		validFrom := promo.ValidFrom
		validTo := promo.ValidTo
		if req.ValidFrom != nil {
			validFrom = *req.ValidFrom
		}
		if req.ValidTo != nil {
			validTo = *req.ValidTo
		}
		if err := promo.SetWindow(validFrom, validTo); err != nil {
			return nil, err
		}
	}

	if req.Active != nil {
		if *req.Active {
			promo.Activate()
		} else {
			promo.Deactivate()
		}
	}

	if req.ProductIDs != nil {
		products := []catalog.Product{}
		if len(*req.ProductIDs) > 0 {
			products, err = s.productRepo.FindByIDs(ctx, *req.ProductIDs)
			if err != nil {
				return nil, err
			}
			if len(products) != len(*req.ProductIDs) {
				return nil, shared.NewDomainError("INVALID_PRODUCT", "One or more scoped products do not exist")
			}
		}
		promo.RestrictToProducts(products)
	}

	if err := s.promoRepo.Save(ctx, promo); err != nil {
		return nil, err
	}

	return toPromoResponse(promo), nil
}

// Delete deletes a promo code
func (s *PromoService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.promoRepo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.promoRepo.Delete(ctx, id)
}

// Resolve looks up a promo code by its code string and checks validity
// at the given time. Used by checkout before applying the discount
func (s *PromoService) Resolve(ctx context.Context, code string, now time.Time) (*promotion.PromoCode, error) {
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

func toPromoResponse(p *promotion.PromoCode) *PromoCodeResponse {
	productIDs := make([]uuid.UUID, 0, len(p.Products))
	for _, product := range p.Products {
		productIDs = append(productIDs, product.ID)
	}

	return &PromoCodeResponse{
		ID:              p.ID,
		Code:            p.Code,
		DiscountPercent: p.DiscountPercent,
		ValidFrom:       p.ValidFrom,
		ValidTo:         p.ValidTo,
		Active:          p.Active,
		ProductIDs:      productIDs,
	}
}
