package commands

import (
	"context"

	"comanda/internal/core/domain/model/order"
	"comanda/internal/core/ports"
)

// CreateOrderCommandHandler handles the business logic for opening orders.
// Builds the aggregate from the requested items, confirms it, and persists it.
//
// Example:
//
//	handler := NewCreateOrderCommandHandler(uowFactory, publisher)
//	cmd, _ := NewCreateOrderCommand(orderID, 5, waiterID, "Maria", false, items)
//
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("order creation failed: %w", err)
//	}
//	// Order is now CONFIRMED and visible to the kitchen
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.EventPublisher
}

// NewCreateOrderCommandHandler creates a handler for order creation operations.
// Requires an OrderUoWFactory for transactional persistence; publisher may be
// nil to disable notifications.
func NewCreateOrderCommandHandler(
	uowFactory OrderUoWFactory,
	publisher ports.EventPublisher,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the order creation command.
// The order is created as a draft, filled with the requested items, and
// confirmed in one step, so a persisted order is always CONFIRMED and
// carries at least one item.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	aggregate, err := order.NewOrder(
		cmd.OrderID(),
		cmd.TableNumber(),
		cmd.WaiterID(),
		cmd.WaiterName(),
		cmd.TodoJunto(),
	)
	if err != nil {
		return err
	}

	for _, line := range cmd.Items() {
		menuItem, err := order.NewMenuItem(line.MenuItemID(), line.NameES(), line.NameEN(), line.Price())
		if err != nil {
			return err
		}

		item, err := order.NewItem(line.ItemID(), menuItem, line.Customizations(), line.CustomText())
		if err != nil {
			return err
		}

		if err = aggregate.AddItem(item); err != nil {
			return err
		}
	}

	if err = aggregate.Confirm(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	publishEvents(h.publisher, aggregate)
	return nil
}
