package ports

import (
	"comanda/internal/core/domain/model/order"
)

// EventPublisher pushes domain events to connected clients after the
// transaction that produced them has committed.
type EventPublisher interface {
	Publish(events ...order.Event)
}
