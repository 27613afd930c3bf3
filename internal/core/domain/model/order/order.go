package order

import (
	"errors"
	"fmt"
	"time"

	"comanda/internal/core/domain/model/kernel"
	"comanda/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not
	// created through NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")

	// ErrOrderHasNoItems is returned when confirming a draft without items.
	// An order may not leave TO_CONFIRM empty.
	ErrOrderHasNoItems = errors.New("order must contain at least one item to be confirmed")

	// ErrOrderIsNotDraft is returned when adding items to an order that has
	// already left the draft phase.
	ErrOrderIsNotDraft = errors.New("items can only be added while the order is in TO_CONFIRM")
)

// Order is the aggregate root for a restaurant order. It owns its Items
// exclusively and is mutated only through the transition methods below, which
// enforce the status graphs and the derived-status rule.
//
// Invariants:
//   - items is non-empty before the order may leave TO_CONFIRM
//   - once the status is PAGADO or CANCELED no further mutation is permitted
//   - lifecycle timestamps are stamped exactly once, never rewritten
//
// The aggregate records domain events for every durable state change; the
// application layer drains them after commit via Events and ClearEvents.
type Order struct {
	id          kernel.UUID
	tableNumber int
	waiterID    kernel.UUID
	waiterName  string
	todoJunto   bool
	items       []*Item
	status      Status

	createdAt   time.Time
	confirmedAt *time.Time
	preparedAt  *time.Time
	paidAt      *time.Time

	events []Event

	isConstructed bool
}

// NewOrder creates a TO_CONFIRM draft with no items. Items are added with
// AddItem and the draft is submitted with Confirm.
//
// Example:
//
//	o, err := order.NewOrder(kernel.NewUUID(), 5, waiterID, "Maria", false)
//	if err != nil {
//	    return err
//	}
//	_ = o.AddItem(item)
//	if err := o.Confirm(); err != nil {
//	    return err
//	}
func NewOrder(id kernel.UUID, tableNumber int, waiterID kernel.UUID, waiterName string, todoJunto bool) (*Order, error) {
	o := &Order{
		status:        ToConfirm,
		createdAt:     time.Now().UTC(),
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setTableNumber(tableNumber),
		o.setWaiter(waiterID, waiterName),
	); err != nil {
		return nil, err
	}

	o.todoJunto = todoJunto
	return o, nil
}

// RestoreOrder reconstructs an order from persistence, preserving status,
// items, and lifecycle timestamps. No events are recorded.
func RestoreOrder(
	id kernel.UUID,
	tableNumber int,
	waiterID kernel.UUID,
	waiterName string,
	todoJunto bool,
	items []*Item,
	status Status,
	createdAt time.Time,
	confirmedAt, preparedAt, paidAt *time.Time,
) (*Order, error) {
	o := &Order{
		createdAt:     createdAt,
		confirmedAt:   confirmedAt,
		preparedAt:    preparedAt,
		paidAt:        paidAt,
		todoJunto:     todoJunto,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setTableNumber(tableNumber),
		o.setWaiter(waiterID, waiterName),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	for _, item := range items {
		if err := item.Validate(); err != nil {
			return nil, err
		}
	}

	o.items = items
	o.status = status
	return o, nil
}

// Validate ensures the order was created via NewOrder or RestoreOrder.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by identity.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// TableNumber returns the physical table the order belongs to.
func (o *Order) TableNumber() int {
	return o.tableNumber
}

// WaiterID returns the identifier of the waiter who created the order.
func (o *Order) WaiterID() kernel.UUID {
	return o.waiterID
}

// WaiterName returns the denormalized display name of the waiter.
func (o *Order) WaiterName() string {
	return o.waiterName
}

// TodoJunto reports whether all items must be served together. The flag is
// informational only and does not affect the state machine.
func (o *Order) TodoJunto() bool {
	return o.todoJunto
}

// Items returns the order's items in insertion order.
func (o *Order) Items() []*Item {
	out := make([]*Item, len(o.items))
	copy(out, o.items)
	return out
}

// Item returns the owned item with the given id, or an ObjectNotFoundError.
func (o *Order) Item(itemID kernel.UUID) (*Item, error) {
	for _, item := range o.items {
		if item.ID().IsEqual(itemID) {
			return item, nil
		}
	}
	return nil, errs.NewObjectNotFoundError("itemId", itemID.String())
}

// Status returns the current lifecycle state.
func (o *Order) Status() Status {
	return o.status
}

// CreatedAt returns the creation time of the order.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// ConfirmedAt returns when the order was confirmed, nil before that.
func (o *Order) ConfirmedAt() *time.Time {
	return o.confirmedAt
}

// PreparedAt returns when the order became PREPARED, nil before that.
func (o *Order) PreparedAt() *time.Time {
	return o.preparedAt
}

// PaidAt returns when the order was paid, nil before that.
func (o *Order) PaidAt() *time.Time {
	return o.paidAt
}

// Total derives the order total by summing item prices. It is computed at
// read time, never cached, so editing an embedded price can never leave a
// stale column behind.
func (o *Order) Total() kernel.Money {
	var total kernel.Money
	for _, item := range o.items {
		total = total.Add(item.Price())
	}
	return total
}

// AddItem appends an item during draft assembly. Fails with
// ErrOrderIsNotDraft once the order has left TO_CONFIRM.
func (o *Order) AddItem(item *Item) error {
	if err := item.Validate(); err != nil {
		return err
	}
	if o.status != ToConfirm {
		return ErrOrderIsNotDraft
	}

	o.items = append(o.items, item)
	return nil
}

// Confirm submits the draft: the order gains durable identity and moves to
// CONFIRMED atomically. Requires at least one item. Records OrderCreated.
func (o *Order) Confirm() error {
	if len(o.items) == 0 {
		return ErrOrderHasNoItems
	}

	newStatus, err := o.status.TransitionTo(Confirmed)
	if err != nil {
		return err
	}

	o.status = newStatus
	o.stampStatus(time.Now().UTC())
	o.recordEvent(OrderCreated{OrderID: o.id})
	return nil
}

// ChangeStatus moves the order along an edge of the status graph, stamping
// the matching lifecycle timestamp on entry. Illegal edges, including any
// request once the order is terminal, fail with an InvalidTransitionError
// and leave the order unchanged. Records OrderStatusChanged.
func (o *Order) ChangeStatus(to Status) error {
	newStatus, err := o.status.TransitionTo(to)
	if err != nil {
		return err
	}

	o.status = newStatus
	o.stampStatus(time.Now().UTC())
	o.recordEvent(OrderStatusChanged{OrderID: o.id, Status: o.status})
	return nil
}

// Cancel terminates the order through the cancellation operation. The row is
// never deleted; CANCELED is a status. Records OrderCanceled.
func (o *Order) Cancel() error {
	newStatus, err := o.status.TransitionTo(Canceled)
	if err != nil {
		return err
	}

	o.status = newStatus
	o.recordEvent(OrderCanceled{OrderID: o.id})
	return nil
}

// ChangeItemStatus moves one owned item along an edge of the item graph and
// then re-evaluates the derived order status: when every item is PREPARED or
// CANCELED, at least one is PREPARED, and the order is CONFIRMED, the order
// auto-advances to PREPARED and preparedAt is stamped. This is the only
// automatic transition in the system, and this method is its only call site.
//
// Returns whether the auto-advance fired. Records ItemStatusChanged.
func (o *Order) ChangeItemStatus(itemID kernel.UUID, to ItemStatus) (bool, error) {
	item, err := o.Item(itemID)
	if err != nil {
		return false, err
	}

	if o.status.IsTerminal() {
		return false, errs.NewInvalidTransitionErrorWithCause(
			"item", item.Status().String(), to.String(),
			fmt.Errorf("order %s is %s", o.id, o.status),
		)
	}

	if err = item.changeStatus(to); err != nil {
		return false, err
	}

	autoAdvanced := o.refreshDerivedStatus()
	o.recordEvent(ItemStatusChanged{
		OrderID:           o.id,
		ItemID:            itemID,
		Status:            item.Status(),
		OrderStatus:       o.status,
		OrderAutoAdvanced: autoAdvanced,
	})
	return autoAdvanced, nil
}

// refreshDerivedStatus applies the auto-advance rule and reports whether it
// fired. An order whose items are all canceled does not advance: the
// at-least-one-PREPARED guard keeps it CONFIRMED until an explicit
// cancellation or a real preparation.
func (o *Order) refreshDerivedStatus() bool {
	if o.status != Confirmed {
		return false
	}

	anyPrepared := false
	for _, item := range o.items {
		if !item.Status().IsTerminal() {
			return false
		}
		if item.Status() == ItemPrepared {
			anyPrepared = true
		}
	}
	if !anyPrepared {
		return false
	}

	o.status = Prepared
	o.stampStatus(time.Now().UTC())
	return true
}

// Events returns the domain events recorded since the last ClearEvents.
func (o *Order) Events() []Event {
	out := make([]Event, len(o.events))
	copy(out, o.events)
	return out
}

// ClearEvents drops recorded events. Called by handlers after publishing.
func (o *Order) ClearEvents() {
	o.events = nil
}

func (o *Order) recordEvent(e Event) {
	o.events = append(o.events, e)
}

// stampStatus sets the lifecycle timestamp matching the current status.
// Timestamps are written exactly once; re-entering a state through MODIFIED
// does not rewrite them.
func (o *Order) stampStatus(now time.Time) {
	switch o.status {
	case Confirmed:
		if o.confirmedAt == nil {
			o.confirmedAt = &now
		}
	case Prepared:
		if o.preparedAt == nil {
			o.preparedAt = &now
		}
	case Paid:
		if o.paidAt == nil {
			o.paidAt = &now
		}
	}
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setTableNumber(tableNumber int) error {
	if tableNumber <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"tableNumber",
			fmt.Errorf("%d is not greater than 0", tableNumber),
		)
	}
	o.tableNumber = tableNumber
	return nil
}

func (o *Order) setWaiter(waiterID kernel.UUID, waiterName string) error {
	if err := waiterID.Validate(); err != nil {
		return err
	}
	if waiterName == "" {
		return errs.NewValueIsRequiredError("waiterName")
	}
	o.waiterID = waiterID
	o.waiterName = waiterName
	return nil
}
