package ports

import (
	"context"
	"time"

	"comanda/internal/core/domain/model/kernel"
	"comanda/internal/core/domain/model/order"
)

// OrderFilter narrows GetAll results. Nil fields are ignored; Date matches
// orders created on that calendar day.
type OrderFilter struct {
	Status      *order.Status
	TableNumber *int
	WaiterID    *kernel.UUID
	Date        *time.Time
}

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate, including
	// item status changes and lifecycle timestamps.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	// Returns errs.ErrObjectNotFound if no order has the given id.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetAll retrieves orders matching the filter, newest first.
	GetAll(ctx context.Context, filter OrderFilter) ([]*order.Order, error)
}
