package promotion

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/delivery/backend/internal/domain/catalog"
	"github.com/delivery/backend/internal/domain/shared/valueobject"
)

func newTestPromo(t *testing.T, discount int64, validFrom, validTo time.Time) *PromoCode {
	t.Helper()
	promo, err := NewPromoCode("TEST10", decimal.NewFromInt(discount), validFrom, validTo)
	require.NoError(t, err)
	return promo
}

func TestNewPromoCode(t *testing.T) {
	now := time.Now()

	t.Run("creates promo with valid inputs", func(t *testing.T) {
		promo, err := NewPromoCode("summer25", decimal.NewFromInt(25), now, now.Add(24*time.Hour))
		require.NoError(t, err)
		assert.Equal(t, "SUMMER25", promo.Code)
		assert.True(t, promo.Active)
		assert.Empty(t, promo.Products)
	})

	t.Run("fails with empty code", func(t *testing.T) {
		_, err := NewPromoCode("  ", decimal.NewFromInt(10), now, now.Add(time.Hour))
		assert.Error(t, err)
	})

	t.Run("fails with discount outside range", func(t *testing.T) {
		_, err := NewPromoCode("A", decimal.NewFromInt(-1), now, now.Add(time.Hour))
		assert.Error(t, err)
		_, err = NewPromoCode("A", decimal.NewFromInt(101), now, now.Add(time.Hour))
		assert.Error(t, err)
	})

	t.Run("fails with inverted window", func(t *testing.T) {
		_, err := NewPromoCode("A", decimal.NewFromInt(10), now, now.Add(-time.Hour))
		assert.Error(t, err)
	})
}

func TestPromoCodeIsValid(t *testing.T) {
	now := time.Now()

	t.Run("valid within window", func(t *testing.T) {
		promo := newTestPromo(t, 10, now.Add(-time.Hour), now.Add(time.Hour))
		assert.True(t, promo.IsValid(now))
	})

	t.Run("window boundaries are inclusive", func(t *testing.T) {
		from := now.Add(-time.Hour)
		to := now.Add(time.Hour)
		promo := newTestPromo(t, 10, from, to)
		assert.True(t, promo.IsValid(from))
		assert.True(t, promo.IsValid(to))
	})

	t.Run("expired promo is never valid", func(t *testing.T) {
		promo := newTestPromo(t, 10, now.Add(-48*time.Hour), now.Add(-24*time.Hour))
		assert.False(t, promo.IsValid(now))
	})

	t.Run("not yet started promo is invalid", func(t *testing.T) {
		promo := newTestPromo(t, 10, now.Add(time.Hour), now.Add(2*time.Hour))
		assert.False(t, promo.IsValid(now))
	})

	t.Run("inactive promo is invalid even within window", func(t *testing.T) {
		promo := newTestPromo(t, 10, now.Add(-time.Hour), now.Add(time.Hour))
		promo.Deactivate()
		assert.False(t, promo.IsValid(now))
	})

	t.Run("repeated evaluation with same inputs is stable", func(t *testing.T) {
		promo := newTestPromo(t, 10, now.Add(-time.Hour), now.Add(time.Hour))
		first := promo.IsValid(now)
		for i := 0; i < 10; i++ {
			assert.Equal(t, first, promo.IsValid(now))
		}
	})
}

func TestPromoCodeAppliesTo(t *testing.T) {
	now := time.Now()
	milk, err := catalog.NewProduct("Milk", valueobject.NewMoneyBYNFromFloat(2.49), catalog.UnitPieces, decimal.Zero)
	require.NoError(t, err)
	bread, err := catalog.NewProduct("Bread", valueobject.NewMoneyBYNFromFloat(1.50), catalog.UnitPieces, decimal.Zero)
	require.NoError(t, err)

	t.Run("unrestricted promo applies to any products", func(t *testing.T) {
		promo := newTestPromo(t, 10, now, now.Add(time.Hour))
		assert.True(t, promo.AppliesTo([]uuid.UUID{uuid.New()}))
		assert.True(t, promo.AppliesTo(nil))
	})

	t.Run("restricted promo applies when sets intersect", func(t *testing.T) {
		promo := newTestPromo(t, 10, now, now.Add(time.Hour))
		promo.RestrictToProducts([]catalog.Product{*milk})
		assert.True(t, promo.AppliesTo([]uuid.UUID{bread.ID, milk.ID}))
	})

	t.Run("restricted promo does not apply without intersection", func(t *testing.T) {
		promo := newTestPromo(t, 10, now, now.Add(time.Hour))
		promo.RestrictToProducts([]catalog.Product{*milk})
		assert.False(t, promo.AppliesTo([]uuid.UUID{bread.ID}))
		assert.False(t, promo.AppliesTo(nil))
	})
}
