package valueobject

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoney(t *testing.T) {
	t.Run("valid money", func(t *testing.T) {
		m, err := NewMoney(decimal.NewFromFloat(19.99), BYN)
		require.NoError(t, err)
		assert.Equal(t, BYN, m.Currency())
		assert.Equal(t, "19.99", m.StringFixed(2))
	})

	t.Run("empty currency rejected", func(t *testing.T) {
		_, err := NewMoney(decimal.NewFromInt(1), "")
		assert.Error(t, err)
	})

	t.Run("from string", func(t *testing.T) {
		m, err := NewMoneyFromString("5.50", BYN)
		require.NoError(t, err)
		assert.Equal(t, "5.50", m.StringFixed(2))

		_, err = NewMoneyFromString("not a number", BYN)
		assert.Error(t, err)
	})
}

func TestMoneyArithmetic(t *testing.T) {
	a := NewMoneyBYNFromFloat(10.00)
	b := NewMoneyBYNFromFloat(2.50)

	t.Run("add", func(t *testing.T) {
		sum, err := a.Add(b)
		require.NoError(t, err)
		assert.Equal(t, "12.50", sum.StringFixed(2))
	})

	t.Run("subtract", func(t *testing.T) {
		diff, err := a.Subtract(b)
		require.NoError(t, err)
		assert.Equal(t, "7.50", diff.StringFixed(2))
	})

	t.Run("currency mismatch", func(t *testing.T) {
		usd, _ := NewMoney(decimal.NewFromInt(1), USD)
		_, err := a.Add(usd)
		assert.Error(t, err)
		_, err = a.Subtract(usd)
		assert.Error(t, err)
	})

	t.Run("multiply by quantity", func(t *testing.T) {
		total := NewMoneyBYNFromFloat(1.99).MultiplyByInt(3)
		assert.Equal(t, "5.97", total.StringFixed(2))
	})
}

func TestMoneyRound(t *testing.T) {
	// half away from zero: 3.975 rounds up to 3.98
	m := NewMoneyBYNFromFloat(3.975).Round(2)
	assert.Equal(t, "3.98", m.StringFixed(2))

	m = NewMoneyBYNFromFloat(3.974).Round(2)
	assert.Equal(t, "3.97", m.StringFixed(2))
}

func TestMoneyApplyDiscount(t *testing.T) {
	m := NewMoneyBYNFromFloat(3.98)
	discounted := m.ApplyDiscount(decimal.NewFromInt(10))
	assert.Equal(t, "3.58", discounted.Round(2).StringFixed(2))
}

func TestMoneyComparison(t *testing.T) {
	a := NewMoneyBYNFromFloat(1.00)
	b := NewMoneyBYNFromFloat(2.00)

	less, err := a.LessThan(b)
	require.NoError(t, err)
	assert.True(t, less)

	assert.True(t, a.Equals(NewMoneyBYNFromFloat(1.00)))
	assert.False(t, a.Equals(b))
	assert.True(t, ZeroBYN().IsZero())
	assert.True(t, NewMoneyBYNFromFloat(-1).IsNegative())
}

func TestMoneyJSON(t *testing.T) {
	m := NewMoneyBYNFromFloat(7.25)
	data, err := json.Marshal(m)
	require.NoError(t, err)
	assert.JSONEq(t, `{"amount":"7.25","currency":"BYN"}`, string(data))

	var parsed Money
	require.NoError(t, json.Unmarshal(data, &parsed))
	assert.True(t, m.Equals(parsed))
}

func TestMoneyScan(t *testing.T) {
	var m Money
	require.NoError(t, m.Scan("4.20"))
	assert.Equal(t, "4.20", m.StringFixed(2))
	assert.Equal(t, DefaultCurrency, m.Currency())

	require.NoError(t, m.Scan(nil))
	assert.True(t, m.IsZero())

	assert.Error(t, m.Scan(42))
}
