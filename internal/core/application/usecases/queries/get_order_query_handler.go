package queries

import (
	"context"
	"database/sql"

	"comanda/internal/core/domain/model/kernel"
	"comanda/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrderQueryHandler retrieves a single order read model from the database.
type GetOrderQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderQueryHandler creates a handler for single-order queries.
func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle executes the query. Returns errs.ErrObjectNotFound if no order has
// the given id.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (OrderResponse, error) {
	if err := query.Validate(); err != nil {
		return OrderResponse{}, err
	}

	var resp OrderResponse
	var id, waiterID uuid.UUID
	var confirmedAt, preparedAt, paidAt sql.NullTime

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			table_number,
			waiter_id,
			waiter_name,
			todo_junto,
			status,
			created_at,
			confirmed_at,
			prepared_at,
			paid_at
		FROM orders
		WHERE id = ?
	`, query.OrderID().String()).Row()

	err := row.Scan(
		&id,
		&resp.TableNumber,
		&waiterID,
		&resp.WaiterName,
		&resp.TodoJunto,
		&resp.Status,
		&resp.CreatedAt,
		&confirmedAt,
		&preparedAt,
		&paidAt,
	)
	if err == sql.ErrNoRows {
		return OrderResponse{}, errs.NewObjectNotFoundError("orderID", query.OrderID().String())
	}
	if err != nil {
		return OrderResponse{}, err
	}

	if resp.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
		return OrderResponse{}, err
	}
	if resp.WaiterID, err = kernel.UUIDFromBytes(waiterID[:]); err != nil {
		return OrderResponse{}, err
	}
	resp.ConfirmedAt = nullableTime(confirmedAt)
	resp.PreparedAt = nullableTime(preparedAt)
	resp.PaidAt = nullableTime(paidAt)
	resp.Items = make([]ItemResponse, 0)

	orders := []OrderResponse{resp}
	if err = attachItems(ctx, h.db, orders); err != nil {
		return OrderResponse{}, err
	}

	return orders[0], nil
}
