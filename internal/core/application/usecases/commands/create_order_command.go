package commands

import (
	"errors"

	"comanda/internal/core/domain/model/kernel"
	"comanda/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrOrderItemIsNotConstructed = errors.New(
		"OrderItem must be created via NewOrderItem constructor",
	)
	ErrTableNumberIsInvalid = errors.New("table number must be greater than 0")
	ErrWaiterNameIsRequired = errors.New("waiter name is required")
	ErrItemsAreRequired     = errors.New("order must contain at least one item")
	ErrMenuItemIDIsRequired = errors.New("menu item id is required")
	ErrItemNameIsRequired   = errors.New("item name is required")
)

// OrderItem carries one requested dish: the menu snapshot to capture on the
// order plus any customizations the waiter noted.
type OrderItem struct { //nolint:recvcheck //using for validation
	itemID         kernel.UUID
	menuItemID     string
	nameES         string
	nameEN         string
	price          kernel.Money
	customizations []string
	customText     string

	guard guard.ConstructorGuard
}

// NewOrderItem creates an order line for CreateOrderCommand.
// The Spanish name is the canonical one and is required; the English name
// may be empty.
func NewOrderItem(
	itemID kernel.UUID,
	menuItemID string,
	nameES string,
	nameEN string,
	price kernel.Money,
	customizations []string,
	customText string,
) (OrderItem, error) {
	item := OrderItem{
		nameEN:         nameEN,
		price:          price,
		customizations: customizations,
		customText:     customText,
		guard:          guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		item.setItemID(itemID),
		item.setMenuItemID(menuItemID),
		item.setNameES(nameES),
	); err != nil {
		return OrderItem{}, err
	}

	return item, nil
}

// Validate ensures the item was created through the constructor.
func (i OrderItem) Validate() error {
	return i.guard.Validate(ErrOrderItemIsNotConstructed)
}

// ItemID returns the unique identifier for this order line.
func (i OrderItem) ItemID() kernel.UUID {
	return i.itemID
}

// MenuItemID returns the catalog identifier of the requested dish.
func (i OrderItem) MenuItemID() string {
	return i.menuItemID
}

// NameES returns the Spanish dish name.
func (i OrderItem) NameES() string {
	return i.nameES
}

// NameEN returns the English dish name, possibly empty.
func (i OrderItem) NameEN() string {
	return i.nameEN
}

// Price returns the dish price captured at order time.
func (i OrderItem) Price() kernel.Money {
	return i.price
}

// Customizations returns the selected preset customizations.
func (i OrderItem) Customizations() []string {
	return i.customizations
}

// CustomText returns the free-text note for the kitchen.
func (i OrderItem) CustomText() string {
	return i.customText
}

func (i *OrderItem) setItemID(itemID kernel.UUID) error {
	if err := itemID.Validate(); err != nil {
		return err
	}

	i.itemID = itemID
	return nil
}

func (i *OrderItem) setMenuItemID(menuItemID string) error {
	if menuItemID == "" {
		return ErrMenuItemIDIsRequired
	}

	i.menuItemID = menuItemID
	return nil
}

func (i *OrderItem) setNameES(nameES string) error {
	if nameES == "" {
		return ErrItemNameIsRequired
	}

	i.nameES = nameES
	return nil
}

// CreateOrderCommand represents a request to open a new table order.
// Encapsulates the table, the waiter taking the order, and the requested items.
//
// Example:
//
//	orderID := kernel.NewUUID()
//	cmd, err := NewCreateOrderCommand(orderID, 5, waiterID, "Maria", false, items)
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	handler := NewCreateOrderCommandHandler(uowFactory, publisher)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to create order: %w", err)
//	}
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID     kernel.UUID
	tableNumber int
	waiterID    kernel.UUID
	waiterName  string
	todoJunto   bool
	items       []OrderItem

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to open a new order.
// Validates that ids are valid, the table number is positive, the waiter name
// is not empty, and at least one item is requested.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	tableNumber int,
	waiterID kernel.UUID,
	waiterName string,
	todoJunto bool,
	items []OrderItem,
) (CreateOrderCommand, error) {
	orderCommand := CreateOrderCommand{
		todoJunto: todoJunto,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderCommand.setOrderID(orderID),
		orderCommand.setTableNumber(tableNumber),
		orderCommand.setWaiter(waiterID, waiterName),
		orderCommand.setItems(items),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return orderCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreateOrderCommandIsNotConstructed if validation fails.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the unique identifier for the order.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// TableNumber returns the table the order belongs to.
func (c CreateOrderCommand) TableNumber() int {
	return c.tableNumber
}

// WaiterID returns the identifier of the waiter taking the order.
func (c CreateOrderCommand) WaiterID() kernel.UUID {
	return c.waiterID
}

// WaiterName returns the display name of the waiter taking the order.
func (c CreateOrderCommand) WaiterName() string {
	return c.waiterName
}

// TodoJunto reports whether all courses should be served together.
func (c CreateOrderCommand) TodoJunto() bool {
	return c.todoJunto
}

// Items returns the requested order lines.
func (c CreateOrderCommand) Items() []OrderItem {
	return c.items
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setTableNumber(tableNumber int) error {
	if tableNumber <= 0 {
		return ErrTableNumberIsInvalid
	}

	c.tableNumber = tableNumber
	return nil
}

func (c *CreateOrderCommand) setWaiter(waiterID kernel.UUID, waiterName string) error {
	if err := waiterID.Validate(); err != nil {
		return err
	}
	if waiterName == "" {
		return ErrWaiterNameIsRequired
	}

	c.waiterID = waiterID
	c.waiterName = waiterName
	return nil
}

func (c *CreateOrderCommand) setItems(items []OrderItem) error {
	if len(items) == 0 {
		return ErrItemsAreRequired
	}

	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}

	c.items = items
	return nil
}
