package order

import "comanda/internal/core/domain/model/kernel"

// Event is a domain event recorded by the Order aggregate when durable state
// changes. Handlers drain events after a successful commit and hand them to
// the notification channel; delivery is best-effort and at-most-once.
type Event interface {
	// EventType returns the wire tag of the event, e.g. "order_created".
	EventType() string
}

// OrderCreated is recorded when a draft gains durable identity and becomes
// CONFIRMED.
type OrderCreated struct {
	OrderID kernel.UUID
}

func (OrderCreated) EventType() string { return "order_created" }

// OrderStatusChanged is recorded on every explicit order status transition.
type OrderStatusChanged struct {
	OrderID kernel.UUID
	Status  Status
}

func (OrderStatusChanged) EventType() string { return "order_status_updated" }

// ItemStatusChanged is recorded on every item status transition.
// OrderAutoAdvanced is set when the transition tripped the derived rule and
// moved the owning order to PREPARED.
type ItemStatusChanged struct {
	OrderID           kernel.UUID
	ItemID            kernel.UUID
	Status            ItemStatus
	OrderStatus       Status
	OrderAutoAdvanced bool
}

func (ItemStatusChanged) EventType() string { return "item_status_updated" }

// OrderCanceled is recorded when an order is canceled through the dedicated
// cancellation operation.
type OrderCanceled struct {
	OrderID kernel.UUID
}

func (OrderCanceled) EventType() string { return "order_canceled" }
