// Package queries contains read-only operations in the CQRS architecture.
// Query handlers bypass the domain model and read the database directly,
// returning response structs shaped for presentation.
package queries

import (
	"errors"
	"time"

	"comanda/internal/core/domain/model/kernel"
	"comanda/internal/core/domain/model/order"
	"comanda/internal/pkg/guard"
)

var ErrGetOrdersQueryIsNotConstructed = errors.New(
	"GetOrdersQuery must be created via NewGetOrdersQuery constructor",
)

// GetOrdersFilter narrows the order listing. Nil fields are ignored.
// Date matches orders created on that calendar day.
type GetOrdersFilter struct {
	Status      *order.Status
	TableNumber *int
	WaiterID    *kernel.UUID
	Date        *time.Time
}

// GetOrdersQuery retrieves orders matching an optional filter, newest first.
//
// Example:
//
//	status := order.Confirmed
//	query := NewGetOrdersQuery(GetOrdersFilter{Status: &status})
//	handler := NewGetOrdersQueryHandler(db)
//
//	orders, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to list orders: %w", err)
//	}
//	fmt.Printf("Found %d confirmed orders\n", len(orders))
type GetOrdersQuery struct {
	filter GetOrdersFilter

	guard guard.ConstructorGuard
}

// NewGetOrdersQuery creates a query to list orders. A zero filter lists
// every order.
func NewGetOrdersQuery(filter GetOrdersFilter) GetOrdersQuery {
	return GetOrdersQuery{
		filter: filter,
		guard:  guard.NewConstructorGuard(),
	}
}

// Validate ensures the query was created through the constructor.
func (q GetOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetOrdersQueryIsNotConstructed)
}

// Filter returns the requested filter.
func (q GetOrdersQuery) Filter() GetOrdersFilter {
	return q.filter
}

// ItemResponse represents one order line in a read model.
type ItemResponse struct {
	ID             kernel.UUID
	MenuItemID     string
	NameES         string
	NameEN         string
	Price          kernel.Money
	Customizations []string
	CustomText     string
	Status         string
	CreatedAt      time.Time
}

// OrderResponse represents a full order in a read model, including its items
// and the total recomputed from item prices.
type OrderResponse struct {
	ID          kernel.UUID
	TableNumber int
	WaiterID    kernel.UUID
	WaiterName  string
	TodoJunto   bool
	Status      string
	Total       kernel.Money
	Items       []ItemResponse
	CreatedAt   time.Time
	ConfirmedAt *time.Time
	PreparedAt  *time.Time
	PaidAt      *time.Time
}
