package kernel

import (
	"fmt"
	"math"

	"comanda/internal/pkg/errs"
)

// Money is a value object for menu prices and order totals. Amounts are
// stored as integer cents, so summing item prices at read time is exact
// regardless of how many times the total is recomputed.
//
// The zero value represents zero money and is valid; negative amounts are
// not constructible.
//
// Example usage:
//
//	price, err := kernel.NewMoneyFromFloat(2.50)
//	if err != nil {
//	    // handle error
//	}
//	total := price.Add(otherPrice)
//	fmt.Println(total) // "5.30"
type Money struct {
	cents int64
}

// NewMoney creates Money from an amount in cents.
// Returns an error if the amount is negative.
func NewMoney(cents int64) (Money, error) {
	if cents < 0 {
		return Money{}, errs.NewValueIsInvalidErrorWithCause(
			"money",
			fmt.Errorf("%d cents is negative", cents),
		)
	}
	return Money{cents: cents}, nil
}

// NewMoneyFromFloat creates Money from a decimal amount such as 3.80,
// rounding to the nearest cent. Returns an error for negative or
// non-finite amounts.
func NewMoneyFromFloat(amount float64) (Money, error) {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return Money{}, errs.NewValueIsInvalidErrorWithCause(
			"money",
			fmt.Errorf("%f is not a finite amount", amount),
		)
	}
	cents := int64(math.Round(amount * 100))
	return NewMoney(cents)
}

// Add returns the sum of two Money values.
func (m Money) Add(other Money) Money {
	return Money{cents: m.cents + other.cents}
}

// Cents returns the amount in integer cents.
func (m Money) Cents() int64 {
	return m.cents
}

// Float64 returns the decimal amount. Two-decimal amounts round-trip exactly
// through cents.
func (m Money) Float64() float64 {
	return float64(m.cents) / 100
}

// IsEqual compares two Money values for equality.
func (m Money) IsEqual(other Money) bool {
	return m.cents == other.cents
}

// String returns the amount formatted with two decimals, e.g. "7.60".
func (m Money) String() string {
	return fmt.Sprintf("%d.%02d", m.cents/100, m.cents%100)
}
