package sync

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"comanda/internal/core/domain/model/kernel"
	"comanda/internal/core/domain/model/order"
	"comanda/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubRemote lets each test script the remote's behavior per call.
type stubRemote struct {
	fetchOrders     func(ctx context.Context) ([]OrderSnapshot, error)
	pushItemStatus  func(ctx context.Context, orderID, itemID, status string) error
	pushOrderStatus func(ctx context.Context, orderID, status string) error
}

func (s *stubRemote) FetchOrders(ctx context.Context) ([]OrderSnapshot, error) {
	return s.fetchOrders(ctx)
}

func (s *stubRemote) PushItemStatus(ctx context.Context, orderID, itemID, status string) error {
	return s.pushItemStatus(ctx, orderID, itemID, status)
}

func (s *stubRemote) PushOrderStatus(ctx context.Context, orderID, status string) error {
	return s.pushOrderStatus(ctx, orderID, status)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func confirmedSnapshot(createdAt time.Time, itemStatuses ...string) OrderSnapshot {
	confirmed := createdAt.Add(time.Minute)
	items := make([]ItemSnapshot, 0, len(itemStatuses))
	for _, status := range itemStatuses {
		items = append(items, ItemSnapshot{
			ID:         kernel.NewUUID().String(),
			MenuItemID: "cafe-solo",
			NameES:     "Café solo",
			Price:      2.50,
			Status:     status,
			CreatedAt:  createdAt,
		})
	}

	return OrderSnapshot{
		ID:          kernel.NewUUID().String(),
		TableNumber: 4,
		WaiterID:    kernel.NewUUID().String(),
		WaiterName:  "Maria",
		Status:      "CONFIRMED",
		Items:       items,
		CreatedAt:   createdAt,
		ConfirmedAt: &confirmed,
	}
}

func remoteUnavailable() error {
	return errs.NewRemoteUnavailableError("push item status", errors.New("connection refused"))
}

func TestService_Refresh_PopulatesCacheNewestFirst(t *testing.T) {
	base := time.Now().UTC().Add(-time.Hour)
	older := confirmedSnapshot(base, "TO_PREPARE")
	newer := confirmedSnapshot(base.Add(30*time.Minute), "TO_PREPARE")

	remote := &stubRemote{
		fetchOrders: func(context.Context) ([]OrderSnapshot, error) {
			return []OrderSnapshot{older, newer}, nil
		},
	}
	service := NewService(remote, discardLogger())

	require.NoError(t, service.Refresh(t.Context()))

	orders := service.Orders()
	require.Len(t, orders, 2)
	assert.Equal(t, newer.ID, orders[0].ID().String())
	assert.Equal(t, older.ID, orders[1].ID().String())
	assert.Equal(t, order.Confirmed, orders[0].Status())
}

func TestService_Refresh_RemoteDown(t *testing.T) {
	remote := &stubRemote{
		fetchOrders: func(context.Context) ([]OrderSnapshot, error) {
			return nil, errs.NewRemoteUnavailableError("fetch orders", errors.New("timeout"))
		},
	}
	service := NewService(remote, discardLogger())

	err := service.Refresh(t.Context())

	require.ErrorIs(t, err, errs.ErrRemoteUnavailable)
	assert.Empty(t, service.Orders())
}

// Resume is the embedding client's foreground hook: when the display comes
// back to the foreground it refetches immediately instead of waiting for the
// next scheduled refresh.
func TestService_Resume_RefetchesImmediately(t *testing.T) {
	fetches := 0
	remote := &stubRemote{
		fetchOrders: func(context.Context) ([]OrderSnapshot, error) {
			fetches++
			return []OrderSnapshot{confirmedSnapshot(time.Now().UTC(), "TO_PREPARE")}, nil
		},
	}
	service := NewService(remote, discardLogger())

	require.NoError(t, service.Resume(t.Context()))

	assert.Equal(t, 1, fetches)
	assert.Len(t, service.Orders(), 1)
}

func TestService_ChangeItemStatus_RemoteAccepts(t *testing.T) {
	snapshot := confirmedSnapshot(time.Now().UTC(), "TO_PREPARE")
	var pushed []string

	remote := &stubRemote{
		fetchOrders: func(context.Context) ([]OrderSnapshot, error) {
			return []OrderSnapshot{snapshot}, nil
		},
		pushItemStatus: func(_ context.Context, orderID, itemID, status string) error {
			pushed = append(pushed, status)
			return nil
		},
	}
	service := NewService(remote, discardLogger())
	require.NoError(t, service.Refresh(t.Context()))

	orderID, err := kernel.UUIDFromString(snapshot.ID)
	require.NoError(t, err)
	itemID, err := kernel.UUIDFromString(snapshot.Items[0].ID)
	require.NoError(t, err)

	autoAdvanced, err := service.ChangeItemStatus(t.Context(), orderID, itemID, order.ItemPreparing)
	require.NoError(t, err)
	assert.False(t, autoAdvanced)

	// The single item reaching PREPARED must auto-advance the cached order.
	autoAdvanced, err = service.ChangeItemStatus(t.Context(), orderID, itemID, order.ItemPrepared)
	require.NoError(t, err)
	assert.True(t, autoAdvanced)

	cached, err := service.Order(orderID)
	require.NoError(t, err)
	assert.Equal(t, order.Prepared, cached.Status())
	assert.Equal(t, []string{"PREPARING", "PREPARED"}, pushed)
	assert.Empty(t, service.cache.Journal(), "acknowledged transitions must not be journaled")
}

func TestService_ChangeItemStatus_FallsBackWhenRemoteDown(t *testing.T) {
	snapshot := confirmedSnapshot(time.Now().UTC(), "TO_PREPARE")
	remoteDown := true

	remote := &stubRemote{
		fetchOrders: func(context.Context) ([]OrderSnapshot, error) {
			if remoteDown {
				return nil, errs.NewRemoteUnavailableError("fetch orders", errors.New("timeout"))
			}
			updated := snapshot
			updated.Items = []ItemSnapshot{snapshot.Items[0]}
			updated.Items[0].Status = "PREPARING"
			return []OrderSnapshot{updated}, nil
		},
		pushItemStatus: func(_ context.Context, _, _, _ string) error {
			if remoteDown {
				return remoteUnavailable()
			}
			return nil
		},
	}
	service := NewService(remote, discardLogger())

	remoteDown = false
	require.NoError(t, service.Refresh(t.Context()))
	remoteDown = true

	orderID, err := kernel.UUIDFromString(snapshot.ID)
	require.NoError(t, err)
	itemID, err := kernel.UUIDFromString(snapshot.Items[0].ID)
	require.NoError(t, err)

	// Outage: the transition applies locally and is journaled, no error.
	autoAdvanced, err := service.ChangeItemStatus(t.Context(), orderID, itemID, order.ItemPreparing)
	require.NoError(t, err)
	assert.False(t, autoAdvanced)

	cached, err := service.Order(orderID)
	require.NoError(t, err)
	assert.Equal(t, order.ItemPreparing, cached.Items()[0].Status())
	assert.Len(t, service.cache.Journal(), 1)

	// A refresh during the outage fails but keeps the local state.
	require.Error(t, service.Refresh(t.Context()))
	cached, err = service.Order(orderID)
	require.NoError(t, err)
	assert.Equal(t, order.ItemPreparing, cached.Items()[0].Status())

	// Recovery: the journal replays and the cache adopts remote state.
	remoteDown = false
	require.NoError(t, service.Refresh(t.Context()))
	assert.Empty(t, service.cache.Journal())

	cached, err = service.Order(orderID)
	require.NoError(t, err)
	assert.Equal(t, order.ItemPreparing, cached.Items()[0].Status())
}

func TestService_ChangeItemStatus_RemoteRejectionPropagates(t *testing.T) {
	snapshot := confirmedSnapshot(time.Now().UTC(), "TO_PREPARE")

	remote := &stubRemote{
		fetchOrders: func(context.Context) ([]OrderSnapshot, error) {
			return []OrderSnapshot{snapshot}, nil
		},
		pushItemStatus: func(_ context.Context, _, _, _ string) error {
			return errors.New("order service returned status 409")
		},
	}
	service := NewService(remote, discardLogger())
	require.NoError(t, service.Refresh(t.Context()))

	orderID, err := kernel.UUIDFromString(snapshot.ID)
	require.NoError(t, err)
	itemID, err := kernel.UUIDFromString(snapshot.Items[0].ID)
	require.NoError(t, err)

	_, err = service.ChangeItemStatus(t.Context(), orderID, itemID, order.ItemPreparing)

	require.Error(t, err)
	cached, cacheErr := service.Order(orderID)
	require.NoError(t, cacheErr)
	assert.Equal(t, order.ItemToPrepare, cached.Items()[0].Status(), "rejected transitions must not touch local state")
	assert.Empty(t, service.cache.Journal())
}

func TestService_ChangeItemStatus_InvalidLocalTransition(t *testing.T) {
	snapshot := confirmedSnapshot(time.Now().UTC(), "TO_PREPARE")

	remote := &stubRemote{
		fetchOrders: func(context.Context) ([]OrderSnapshot, error) {
			return []OrderSnapshot{snapshot}, nil
		},
		pushItemStatus: func(_ context.Context, _, _, _ string) error {
			return remoteUnavailable()
		},
	}
	service := NewService(remote, discardLogger())
	require.NoError(t, service.Refresh(t.Context()))

	orderID, err := kernel.UUIDFromString(snapshot.ID)
	require.NoError(t, err)
	itemID, err := kernel.UUIDFromString(snapshot.Items[0].ID)
	require.NoError(t, err)

	// Even offline, the local state machine rejects invalid edges.
	_, err = service.ChangeItemStatus(t.Context(), orderID, itemID, order.ItemPrepared)

	require.ErrorIs(t, err, errs.ErrInvalidTransition)
	assert.Empty(t, service.cache.Journal())
}

func TestService_ChangeOrderStatus_CancelOffline(t *testing.T) {
	snapshot := confirmedSnapshot(time.Now().UTC(), "TO_PREPARE")

	remote := &stubRemote{
		fetchOrders: func(context.Context) ([]OrderSnapshot, error) {
			return []OrderSnapshot{snapshot}, nil
		},
		pushOrderStatus: func(_ context.Context, _, _ string) error {
			return errs.NewRemoteUnavailableError("push order status", errors.New("connection refused"))
		},
	}
	service := NewService(remote, discardLogger())
	require.NoError(t, service.Refresh(t.Context()))

	orderID, err := kernel.UUIDFromString(snapshot.ID)
	require.NoError(t, err)

	require.NoError(t, service.ChangeOrderStatus(t.Context(), orderID, order.Canceled))

	cached, err := service.Order(orderID)
	require.NoError(t, err)
	assert.Equal(t, order.Canceled, cached.Status())
	assert.Len(t, service.cache.Journal(), 1)
}

func TestService_Order_NotFound(t *testing.T) {
	remote := &stubRemote{
		fetchOrders: func(context.Context) ([]OrderSnapshot, error) {
			return nil, nil
		},
	}
	service := NewService(remote, discardLogger())

	_, err := service.Order(kernel.NewUUID())

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}
