package queries_test

import (
	"testing"
	"time"

	"comanda/internal/core/application/usecases/queries"
	"comanda/internal/core/domain/model/kernel"
	"comanda/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetOrdersQuery(t *testing.T) {
	status := order.Confirmed
	table := 5

	query := queries.NewGetOrdersQuery(queries.GetOrdersFilter{
		Status:      &status,
		TableNumber: &table,
	})

	require.NoError(t, query.Validate())
	assert.Equal(t, order.Confirmed, *query.Filter().Status)
	assert.Equal(t, 5, *query.Filter().TableNumber)
	assert.Nil(t, query.Filter().WaiterID)
	assert.Nil(t, query.Filter().Date)
}

func TestGetOrdersQuery_NotConstructed(t *testing.T) {
	var query queries.GetOrdersQuery
	require.ErrorIs(t, query.Validate(), queries.ErrGetOrdersQueryIsNotConstructed)
}

func TestNewGetOrderQuery(t *testing.T) {
	id := kernel.NewUUID()

	query, err := queries.NewGetOrderQuery(id)

	require.NoError(t, err)
	require.NoError(t, query.Validate())
	assert.Equal(t, id, query.OrderID())
}

func TestNewGetOrderQuery_InvalidID(t *testing.T) {
	var zero kernel.UUID

	_, err := queries.NewGetOrderQuery(zero)

	require.Error(t, err)
}

func TestNewGetDailySummaryQuery(t *testing.T) {
	day := time.Date(2025, 6, 14, 13, 30, 0, 0, time.UTC)

	query := queries.NewGetDailySummaryQuery(day)

	require.NoError(t, query.Validate())
	assert.Equal(t, day, query.Date())
}

func TestNewGetSalesTrendsQuery(t *testing.T) {
	from := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)

	query, err := queries.NewGetSalesTrendsQuery(from, to)

	require.NoError(t, err)
	require.NoError(t, query.Validate())
	assert.Equal(t, from, query.From())
	assert.Equal(t, to, query.To())
}

func TestNewGetSalesTrendsQuery_InvalidRange(t *testing.T) {
	from := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	_, err := queries.NewGetSalesTrendsQuery(from, to)

	require.ErrorIs(t, err, queries.ErrDateRangeIsInvalid)
}
