package commands

import (
	"errors"

	"comanda/internal/core/domain/model/kernel"
	"comanda/internal/core/domain/model/order"
	"comanda/internal/pkg/guard"
)

var ErrChangeItemStatusCommandIsNotConstructed = errors.New(
	"ChangeItemStatusCommand must be created via NewChangeItemStatusCommand constructor",
)

// ChangeItemStatusCommand represents a kitchen-side request to move a single
// item through its preparation lifecycle.
type ChangeItemStatusCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	itemID  kernel.UUID
	status  order.ItemStatus

	guard guard.ConstructorGuard
}

// NewChangeItemStatusCommand creates a command to change an item's status.
func NewChangeItemStatusCommand(
	orderID kernel.UUID,
	itemID kernel.UUID,
	status order.ItemStatus,
) (ChangeItemStatusCommand, error) {
	statusCommand := ChangeItemStatusCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		statusCommand.setOrderID(orderID),
		statusCommand.setItemID(itemID),
		statusCommand.setStatus(status),
	); err != nil {
		return ChangeItemStatusCommand{}, err
	}

	return statusCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c ChangeItemStatusCommand) Validate() error {
	return c.guard.Validate(ErrChangeItemStatusCommandIsNotConstructed)
}

// OrderID returns the identifier of the order containing the item.
func (c ChangeItemStatusCommand) OrderID() kernel.UUID {
	return c.orderID
}

// ItemID returns the identifier of the item to transition.
func (c ChangeItemStatusCommand) ItemID() kernel.UUID {
	return c.itemID
}

// Status returns the requested target item status.
func (c ChangeItemStatusCommand) Status() order.ItemStatus {
	return c.status
}

func (c *ChangeItemStatusCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *ChangeItemStatusCommand) setItemID(itemID kernel.UUID) error {
	if err := itemID.Validate(); err != nil {
		return err
	}

	c.itemID = itemID
	return nil
}

func (c *ChangeItemStatusCommand) setStatus(status order.ItemStatus) error {
	if err := status.Validate(); err != nil {
		return err
	}

	c.status = status
	return nil
}
