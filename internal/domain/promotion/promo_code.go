package promotion

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/delivery/backend/internal/domain/catalog"
	"github.com/delivery/backend/internal/domain/shared"
)

// PromoCode represents a time-bounded percentage discount token,
// optionally scoped to a set of products
type PromoCode struct {
	shared.BaseAggregateRoot
	Code            string            `gorm:"type:varchar(50);not null;uniqueIndex"`
	DiscountPercent decimal.Decimal   `gorm:"type:decimal(5,2);not null"`
	ValidFrom       time.Time         `gorm:"not null"`
	ValidTo         time.Time         `gorm:"not null"`
	Active          bool              `gorm:"not null"`
	Products        []catalog.Product `gorm:"many2many:promo_code_products"`
}

// TableName returns the table name for GORM
func (PromoCode) TableName() string {
	return "promo_codes"
}

// NewPromoCode creates a new promo code
// Discount percentage must be within [0, 100]
func NewPromoCode(code string, discountPercent decimal.Decimal, validFrom, validTo time.Time) (*PromoCode, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return nil, shared.NewDomainError("INVALID_CODE", "Promo code cannot be empty")
	}
	if len(code) > 50 {
		return nil, shared.NewDomainError("INVALID_CODE", "Promo code cannot exceed 50 characters")
	}
	if discountPercent.IsNegative() || discountPercent.GreaterThan(decimal.NewFromInt(100)) {
		return nil, shared.NewDomainError("INVALID_DISCOUNT", "Discount percentage must be between 0 and 100")
	}
	if validTo.Before(validFrom) {
		return nil, shared.NewDomainError("INVALID_WINDOW", "Validity window end cannot precede its start")
	}

	return &PromoCode{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Code:              code,
		DiscountPercent:   discountPercent,
		ValidFrom:         validFrom,
		ValidTo:           validTo,
		Active:            true,
	}, nil
}

// IsValid reports whether the promo code can be applied at the given time.
// Pure predicate: active and now within [ValidFrom, ValidTo] inclusive
func (p *PromoCode) IsValid(now time.Time) bool {
	if !p.Active {
		return false
	}
	return !now.Before(p.ValidFrom) && !now.After(p.ValidTo)
}

// AppliesTo reports whether the promo code applies to an order containing
// the given products. A promo with no product restriction applies to any
// order; otherwise at least one order product must be in the promo's set
func (p *PromoCode) AppliesTo(orderProductIDs []uuid.UUID) bool {
	if len(p.Products) == 0 {
		return true
	}
	for _, product := range p.Products {
		for _, id := range orderProductIDs {
			if product.ID == id {
				return true
			}
		}
	}
	return false
}

// RestrictToProducts replaces the set of products this promo applies to
// An empty set removes the restriction
func (p *PromoCode) RestrictToProducts(products []catalog.Product) {
	p.Products = products
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

// SetWindow updates the validity window
func (p *PromoCode) SetWindow(validFrom, validTo time.Time) error {
	if validTo.Before(validFrom) {
		return shared.NewDomainError("INVALID_WINDOW", "Validity window end cannot precede its start")
	}

	p.ValidFrom = validFrom
	p.ValidTo = validTo
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// Activate enables the promo code
func (p *PromoCode) Activate() {
	p.Active = true
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

// Deactivate disables the promo code without deleting it
func (p *PromoCode) Deactivate() {
	p.Active = false
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}
