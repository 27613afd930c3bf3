package commands_test

import (
	"testing"

	"comanda/internal/core/application/usecases/commands"
	"comanda/internal/core/domain/model/kernel"
	"comanda/internal/core/domain/model/order"
	"comanda/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func confirmedAggregate(t *testing.T, itemCount int) *order.Order {
	t.Helper()
	aggregate, err := order.NewOrder(kernel.NewUUID(), 3, kernel.NewUUID(), "Carlos", false)
	require.NoError(t, err)

	for range itemCount {
		money, err := kernel.NewMoneyFromFloat(2.50)
		require.NoError(t, err)
		menuItem, err := order.NewMenuItem("cafe-solo", "Café solo", "Espresso", money)
		require.NoError(t, err)
		item, err := order.NewItem(kernel.NewUUID(), menuItem, nil, "")
		require.NoError(t, err)
		require.NoError(t, aggregate.AddItem(item))
	}

	require.NoError(t, aggregate.Confirm())
	aggregate.ClearEvents()
	return aggregate
}

func TestChangeItemStatusCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	aggregate := confirmedAggregate(t, 2)
	itemID := aggregate.Items()[0].ID()

	cmd, err := commands.NewChangeItemStatusCommand(aggregate.ID(), itemID, order.ItemPreparing)
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once(),
		repo.On("Update", mock.Anything, aggregate).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	publisher := new(MockEventPublisher)
	publisher.On("Publish", mock.Anything).Once()

	h := commands.NewChangeItemStatusCommandHandler(factory, publisher)
	result, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.False(t, result.OrderAutoAdvanced)
	assert.Equal(t, order.Confirmed, result.OrderStatus)
	assert.Equal(t, order.ItemPreparing, aggregate.Items()[0].Status())
	assert.Empty(t, aggregate.Events(), "published events must be drained")
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestChangeItemStatusCommandHandler_Handle_AutoAdvance(t *testing.T) {
	ctx := t.Context()
	aggregate := confirmedAggregate(t, 1)
	itemID := aggregate.Items()[0].ID()
	_, err := aggregate.ChangeItemStatus(itemID, order.ItemPreparing)
	require.NoError(t, err)
	aggregate.ClearEvents()

	cmd, err := commands.NewChangeItemStatusCommand(aggregate.ID(), itemID, order.ItemPrepared)
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once(),
		repo.On("Update", mock.Anything, aggregate).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	publisher := new(MockEventPublisher)
	publisher.On("Publish", mock.Anything).Once()

	h := commands.NewChangeItemStatusCommandHandler(factory, publisher)
	result, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.True(t, result.OrderAutoAdvanced)
	assert.Equal(t, order.Prepared, result.OrderStatus)
	require.NotNil(t, aggregate.PreparedAt())
}

func TestChangeItemStatusCommandHandler_Handle_InvalidTransition(t *testing.T) {
	ctx := t.Context()
	aggregate := confirmedAggregate(t, 1)
	itemID := aggregate.Items()[0].ID()

	cmd, err := commands.NewChangeItemStatusCommand(aggregate.ID(), itemID, order.ItemToPrepare)
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	publisher := new(MockEventPublisher)

	h := commands.NewChangeItemStatusCommandHandler(factory, publisher)
	_, err = h.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrInvalidTransition)
	publisher.AssertNotCalled(t, "Publish", mock.Anything)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestChangeItemStatusCommandHandler_Handle_OrderNotFound(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()

	cmd, err := commands.NewChangeItemStatusCommand(orderID, kernel.NewUUID(), order.ItemPreparing)
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, orderID).
			Return(nil, errs.NewObjectNotFoundError("orderID", orderID.String())).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewChangeItemStatusCommandHandler(factory, nil)
	_, err = h.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}
