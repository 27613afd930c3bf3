package kernel_test

import (
	"testing"

	"comanda/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoney(t *testing.T) {
	t.Run("should create money from cents", func(t *testing.T) {
		m, err := kernel.NewMoney(250)

		require.NoError(t, err)
		assert.Equal(t, int64(250), m.Cents())
		assert.InDelta(t, 2.50, m.Float64(), 0)
	})

	t.Run("should allow zero", func(t *testing.T) {
		m, err := kernel.NewMoney(0)

		require.NoError(t, err)
		assert.Equal(t, int64(0), m.Cents())
	})

	t.Run("should reject negative amounts", func(t *testing.T) {
		_, err := kernel.NewMoney(-1)
		require.Error(t, err)
	})
}

func TestNewMoneyFromFloat(t *testing.T) {
	t.Run("should round to the nearest cent", func(t *testing.T) {
		testCases := []struct {
			amount float64
			cents  int64
		}{
			{2.50, 250},
			{3.80, 380},
			{1.30, 130},
			{1.805, 181},
			{0, 0},
		}

		for _, tc := range testCases {
			m, err := kernel.NewMoneyFromFloat(tc.amount)
			require.NoError(t, err)
			assert.Equal(t, tc.cents, m.Cents(), "amount %f", tc.amount)
		}
	})

	t.Run("should reject negative amounts", func(t *testing.T) {
		_, err := kernel.NewMoneyFromFloat(-0.01)
		require.Error(t, err)
	})
}

func TestMoney_Add(t *testing.T) {
	t.Run("sum of item prices is exact", func(t *testing.T) {
		a, _ := kernel.NewMoneyFromFloat(2.50)
		b, _ := kernel.NewMoneyFromFloat(3.80)
		c, _ := kernel.NewMoneyFromFloat(1.30)

		total := a.Add(b).Add(c)

		assert.Equal(t, int64(760), total.Cents())
		assert.InDelta(t, 7.60, total.Float64(), 0)

		// Recomputing must not drift.
		again := a.Add(b).Add(c)
		assert.True(t, total.IsEqual(again))
	})
}

func TestMoney_String(t *testing.T) {
	testCases := []struct {
		cents    int64
		expected string
	}{
		{760, "7.60"},
		{5, "0.05"},
		{100, "1.00"},
		{0, "0.00"},
	}

	for _, tc := range testCases {
		m, err := kernel.NewMoney(tc.cents)
		require.NoError(t, err)
		assert.Equal(t, tc.expected, m.String())
	}
}
