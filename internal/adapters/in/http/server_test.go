package http

import (
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"comanda/internal/core/application/usecases/queries"
	"comanda/internal/core/domain/model/kernel"
	"comanda/internal/core/domain/model/order"
	"comanda/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestContext(t *testing.T, target string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest("GET", target, nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestWriteError_StatusMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
	}{
		{"not found maps to 404", errs.NewObjectNotFoundError("order", "abc"), 404},
		{"invalid transition maps to 409", errs.NewInvalidTransitionError("order", "PAGADO", "CONFIRMED"), 409},
		{"invalid value maps to 400", errs.NewValueIsInvalidError("tableNumber"), 400},
		{"required value maps to 400", errs.NewValueIsRequiredError("waiterName"), 400},
		{"empty order maps to 400", order.ErrOrderHasNoItems, 400},
		{"anything else maps to 500", assert.AnError, 500},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ctx, rec := newTestContext(t, "/api/orders")

			require.NoError(t, writeError(ctx, tc.err))

			assert.Equal(t, tc.code, rec.Code)

			var body ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tc.code, body.Code)
			assert.NotEmpty(t, body.Message)
		})
	}
}

func TestParseOrdersFilter(t *testing.T) {
	t.Run("empty query yields empty filter", func(t *testing.T) {
		ctx, _ := newTestContext(t, "/api/orders")

		filter, err := parseOrdersFilter(ctx)

		require.NoError(t, err)
		assert.Nil(t, filter.Status)
		assert.Nil(t, filter.TableNumber)
		assert.Nil(t, filter.WaiterID)
		assert.Nil(t, filter.Date)
	})

	t.Run("all filters", func(t *testing.T) {
		waiterID := kernel.NewUUID()
		ctx, _ := newTestContext(t,
			"/api/orders?status=CONFIRMED&table_number=7&waiter_id="+waiterID.String()+"&date=2025-06-14")

		filter, err := parseOrdersFilter(ctx)

		require.NoError(t, err)
		require.NotNil(t, filter.Status)
		assert.Equal(t, order.Confirmed, *filter.Status)
		require.NotNil(t, filter.TableNumber)
		assert.Equal(t, 7, *filter.TableNumber)
		require.NotNil(t, filter.WaiterID)
		assert.True(t, filter.WaiterID.IsEqual(waiterID))
		require.NotNil(t, filter.Date)
		assert.Equal(t, time.Date(2025, 6, 14, 0, 0, 0, 0, time.UTC), *filter.Date)
	})

	t.Run("unknown status rejected", func(t *testing.T) {
		ctx, _ := newTestContext(t, "/api/orders?status=DELIVERED")

		_, err := parseOrdersFilter(ctx)

		require.Error(t, err)
	})

	t.Run("non-numeric table rejected", func(t *testing.T) {
		ctx, _ := newTestContext(t, "/api/orders?table_number=seven")

		_, err := parseOrdersFilter(ctx)

		require.Error(t, err)
	})

	t.Run("bad date rejected", func(t *testing.T) {
		ctx, _ := newTestContext(t, "/api/orders?date=14-06-2025")

		_, err := parseOrdersFilter(ctx)

		require.Error(t, err)
	})
}

func TestOrderResponseFromQuery(t *testing.T) {
	price, err := kernel.NewMoneyFromFloat(2.50)
	require.NoError(t, err)
	total, err := kernel.NewMoney(760)
	require.NoError(t, err)
	now := time.Now().UTC()

	src := queries.OrderResponse{
		ID:          kernel.NewUUID(),
		TableNumber: 5,
		WaiterID:    kernel.NewUUID(),
		WaiterName:  "Maria",
		Status:      "CONFIRMED",
		Total:       total,
		CreatedAt:   now,
		ConfirmedAt: &now,
		Items: []queries.ItemResponse{
			{
				ID:         kernel.NewUUID(),
				MenuItemID: "cafe-solo",
				NameES:     "Café solo",
				Price:      price,
				Status:     "TO_PREPARE",
				CreatedAt:  now,
			},
		},
	}

	resp := orderResponseFromQuery(src)

	assert.Equal(t, src.ID.String(), resp.ID)
	assert.Equal(t, 7.60, resp.Total)
	assert.Nil(t, resp.PaidAt)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, 2.50, resp.Items[0].Price)
	assert.NotNil(t, resp.Items[0].Customizations, "customizations must render as an array, not null")
}
