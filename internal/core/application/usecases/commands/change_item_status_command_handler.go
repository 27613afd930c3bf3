package commands

import (
	"context"

	"comanda/internal/core/domain/model/order"
	"comanda/internal/core/ports"
)

// ChangeItemStatusResult reports the outcome of an item transition: the
// order's status after the change and whether that change was the automatic
// advance triggered by the last item reaching a terminal status.
type ChangeItemStatusResult struct {
	OrderStatus       order.Status
	OrderAutoAdvanced bool
}

// ChangeItemStatusCommandHandler handles item preparation transitions.
// This is the only path through which an order advances automatically:
// the aggregate re-derives the order status after every item change.
type ChangeItemStatusCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.EventPublisher
}

// NewChangeItemStatusCommandHandler creates a handler for item status changes.
func NewChangeItemStatusCommandHandler(
	uowFactory OrderUoWFactory,
	publisher ports.EventPublisher,
) ChangeItemStatusCommandHandler {
	return ChangeItemStatusCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the item status change and persists the whole aggregate,
// so an automatic order advance commits atomically with the item change.
func (h *ChangeItemStatusCommandHandler) Handle(
	ctx context.Context,
	cmd ChangeItemStatusCommand,
) (ChangeItemStatusResult, error) {
	if err := cmd.Validate(); err != nil {
		return ChangeItemStatusResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return ChangeItemStatusResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return ChangeItemStatusResult{}, err
	}

	autoAdvanced, err := aggregate.ChangeItemStatus(cmd.ItemID(), cmd.Status())
	if err != nil {
		return ChangeItemStatusResult{}, err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return ChangeItemStatusResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return ChangeItemStatusResult{}, err
	}

	publishEvents(h.publisher, aggregate)
	return ChangeItemStatusResult{
		OrderStatus:       aggregate.Status(),
		OrderAutoAdvanced: autoAdvanced,
	}, nil
}
