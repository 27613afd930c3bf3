package commands_test

import (
	"testing"

	"comanda/internal/core/application/usecases/commands"
	"comanda/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validOrderItem(t *testing.T, price float64) commands.OrderItem {
	t.Helper()
	money, err := kernel.NewMoneyFromFloat(price)
	require.NoError(t, err)
	item, err := commands.NewOrderItem(
		kernel.NewUUID(), "cafe-solo", "Café solo", "Espresso", money,
		[]string{"descafeinado"}, "",
	)
	require.NoError(t, err)
	return item
}

func TestNewCreateOrderCommand_ValidInput(t *testing.T) {
	id := kernel.NewUUID()
	waiterID := kernel.NewUUID()
	items := []commands.OrderItem{validOrderItem(t, 1.80)}

	cmd, err := commands.NewCreateOrderCommand(id, 5, waiterID, "Maria", true, items)

	require.NoError(t, err)
	assert.Equal(t, id, cmd.OrderID())
	assert.Equal(t, 5, cmd.TableNumber())
	assert.Equal(t, waiterID, cmd.WaiterID())
	assert.Equal(t, "Maria", cmd.WaiterName())
	assert.True(t, cmd.TodoJunto())
	assert.Len(t, cmd.Items(), 1)
}

func TestNewCreateOrderCommand_InvalidOrderID(t *testing.T) {
	invalidID := kernel.UUID{} // zero value, should trigger validation error
	items := []commands.OrderItem{validOrderItem(t, 1.80)}

	_, err := commands.NewCreateOrderCommand(invalidID, 5, kernel.NewUUID(), "Maria", false, items)

	require.Error(t, err)
	assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}

func TestNewCreateOrderCommand_InvalidTableNumber(t *testing.T) {
	items := []commands.OrderItem{validOrderItem(t, 1.80)}

	_, err := commands.NewCreateOrderCommand(kernel.NewUUID(), 0, kernel.NewUUID(), "Maria", false, items)

	require.Error(t, err)
	assert.ErrorIs(t, err, commands.ErrTableNumberIsInvalid)
}

func TestNewCreateOrderCommand_EmptyWaiterName(t *testing.T) {
	items := []commands.OrderItem{validOrderItem(t, 1.80)}

	_, err := commands.NewCreateOrderCommand(kernel.NewUUID(), 5, kernel.NewUUID(), "", false, items)

	require.Error(t, err)
	assert.ErrorIs(t, err, commands.ErrWaiterNameIsRequired)
}

func TestNewCreateOrderCommand_NoItems(t *testing.T) {
	_, err := commands.NewCreateOrderCommand(kernel.NewUUID(), 5, kernel.NewUUID(), "Maria", false, nil)

	require.Error(t, err)
	assert.ErrorIs(t, err, commands.ErrItemsAreRequired)
}

func TestNewOrderItem_InvalidInput(t *testing.T) {
	money, err := kernel.NewMoneyFromFloat(1.80)
	require.NoError(t, err)

	_, err = commands.NewOrderItem(kernel.NewUUID(), "", "Café solo", "", money, nil, "")
	require.ErrorIs(t, err, commands.ErrMenuItemIDIsRequired)

	_, err = commands.NewOrderItem(kernel.NewUUID(), "cafe-solo", "", "", money, nil, "")
	require.ErrorIs(t, err, commands.ErrItemNameIsRequired)
}
