package queries

import (
	"errors"
	"time"

	"comanda/internal/core/domain/model/kernel"
	"comanda/internal/pkg/guard"
)

var (
	ErrGetSalesTrendsQueryIsNotConstructed = errors.New(
		"GetSalesTrendsQuery must be created via NewGetSalesTrendsQuery constructor",
	)
	ErrDateRangeIsInvalid = errors.New("from date must not be after to date")
)

// GetSalesTrendsQuery reports per-day order counts and paid revenue over a
// date range, for spotting busy and slow days.
type GetSalesTrendsQuery struct {
	from time.Time
	to   time.Time

	guard guard.ConstructorGuard
}

// NewGetSalesTrendsQuery creates a trends query over [from, to], inclusive.
func NewGetSalesTrendsQuery(from, to time.Time) (GetSalesTrendsQuery, error) {
	if from.After(to) {
		return GetSalesTrendsQuery{}, ErrDateRangeIsInvalid
	}

	return GetSalesTrendsQuery{
		from:  from,
		to:    to,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetSalesTrendsQuery) Validate() error {
	return q.guard.Validate(ErrGetSalesTrendsQueryIsNotConstructed)
}

// From returns the first day of the range.
func (q GetSalesTrendsQuery) From() time.Time {
	return q.from
}

// To returns the last day of the range.
func (q GetSalesTrendsQuery) To() time.Time {
	return q.to
}

// DailySalesResponse is one day's order count and paid revenue.
type DailySalesResponse struct {
	Date    string
	Orders  int
	Revenue kernel.Money
}
