package sync

import (
	"log/slog"
	"sort"
	stdsync "sync"

	"comanda/internal/core/domain/model/kernel"
	"comanda/internal/core/domain/model/order"
	"comanda/internal/pkg/errs"
)

// mutation is one locally applied status change awaiting remote acknowledgment.
type mutation struct {
	itemID      *kernel.UUID // nil for order-level transitions
	status      string
	orderStatus string
}

type entry struct {
	aggregate *order.Order
	journal   []mutation
}

func (e *entry) pending() bool {
	return len(e.journal) > 0
}

// Cache is the local order store. Entries with a non-empty journal carry
// local mutations the remote has not acknowledged; a wholesale replace must
// not overwrite them with stale remote state.
type Cache struct {
	mu      stdsync.RWMutex
	entries map[string]*entry
	logger  *slog.Logger
}

// NewCache creates an empty cache.
func NewCache(logger *slog.Logger) *Cache {
	return &Cache{
		entries: make(map[string]*entry),
		logger:  logger,
	}
}

// Get returns the cached aggregate for the given order id.
func (c *Cache) Get(orderID kernel.UUID) (*order.Order, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[orderID.String()]
	if !ok {
		return nil, errs.NewObjectNotFoundError("order", orderID.String())
	}
	return e.aggregate, nil
}

// All returns every cached aggregate, newest first.
func (c *Cache) All() []*order.Order {
	c.mu.RLock()
	defer c.mu.RUnlock()

	orders := make([]*order.Order, 0, len(c.entries))
	for _, e := range c.entries {
		orders = append(orders, e.aggregate)
	}

	sortNewestFirst(orders)
	return orders
}

// Replace swaps in the remote's view of the world. Entries with pending
// local mutations keep their local aggregate; everything else is replaced,
// and orders the remote no longer reports are dropped.
func (c *Cache) Replace(aggregates []*order.Order) {
	c.mu.Lock()
	defer c.mu.Unlock()

	next := make(map[string]*entry, len(aggregates))
	for _, aggregate := range aggregates {
		id := aggregate.ID().String()
		if existing, ok := c.entries[id]; ok && existing.pending() {
			next[id] = existing
			continue
		}
		next[id] = &entry{aggregate: aggregate}
	}

	// Pending entries absent from the remote are local creations or remote
	// deletions in flight; keep them until their journal drains.
	for id, existing := range c.entries {
		if _, ok := next[id]; !ok && existing.pending() {
			next[id] = existing
		}
	}

	c.entries = next
}

// Record appends a mutation to the order's journal, marking it pending.
func (c *Cache) Record(orderID kernel.UUID, m mutation) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[orderID.String()]
	if !ok {
		// Callers record against an entry they just read; hitting this
		// means a concurrent replace dropped the order in between.
		c.logger.Debug("journal entry for unknown order dropped", "orderId", orderID.String())
		return
	}
	e.journal = append(e.journal, m)
}

// Journal returns a copy of the pending mutations per order id.
func (c *Cache) Journal() map[string][]mutation {
	c.mu.RLock()
	defer c.mu.RUnlock()

	journals := make(map[string][]mutation)
	for id, e := range c.entries {
		if e.pending() {
			journal := make([]mutation, len(e.journal))
			copy(journal, e.journal)
			journals[id] = journal
		}
	}
	return journals
}

// ClearJournal drops the order's pending mutations once the remote has
// acknowledged them.
func (c *Cache) ClearJournal(orderID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[orderID]; ok {
		e.journal = nil
	}
}

func sortNewestFirst(orders []*order.Order) {
	sort.Slice(orders, func(i, j int) bool {
		return orders[i].CreatedAt().After(orders[j].CreatedAt())
	})
}
