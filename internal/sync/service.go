package sync

import (
	"context"
	"errors"
	"log/slog"

	"comanda/internal/core/domain/model/kernel"
	"comanda/internal/core/domain/model/order"
	"comanda/internal/pkg/errs"
)

// Service converges the local order cache with the central service.
//
// Reads always come from the cache. Mutations go remote-first: when the
// remote accepts, the same transition is applied locally; when the remote is
// unreachable, the transition is validated and applied locally anyway and
// journaled for replay, so service continues through an outage. Remote
// rejections (an invalid transition, a missing order) propagate to the
// caller and never touch local state.
type Service struct {
	remote Remote
	cache  *Cache
	logger *slog.Logger
}

// NewService creates a sync service around an empty cache.
func NewService(remote Remote, logger *slog.Logger) *Service {
	return &Service{
		remote: remote,
		cache:  NewCache(logger),
		logger: logger,
	}
}

// Refresh replays pending journals, then replaces the cache with the
// remote's current view. Orders whose journal drained adopt remote state on
// the next refresh; orders still pending keep their local aggregate.
// Returns an error only when the remote cannot be reached at all.
func (s *Service) Refresh(ctx context.Context) error {
	s.replayJournals(ctx)

	snapshots, err := s.remote.FetchOrders(ctx)
	if err != nil {
		if errors.Is(err, errs.ErrRemoteUnavailable) {
			s.logger.Warn("refresh skipped, remote unavailable", "error", err)
		}
		return err
	}

	aggregates := make([]*order.Order, 0, len(snapshots))
	for _, snapshot := range snapshots {
		aggregate, convErr := snapshotToDomain(snapshot)
		if convErr != nil {
			s.logger.Warn("dropping malformed order snapshot", "orderId", snapshot.ID, "error", convErr)
			continue
		}
		aggregates = append(aggregates, aggregate)
	}

	s.cache.Replace(aggregates)
	s.logger.Debug("cache refreshed", "orders", len(aggregates))
	return nil
}

// Resume forces an immediate refresh, for when the display comes back to the
// foreground or the network returns.
func (s *Service) Resume(ctx context.Context) error {
	return s.Refresh(ctx)
}

// Orders returns the local view, newest first.
func (s *Service) Orders() []*order.Order {
	return s.cache.All()
}

// Order returns one cached order.
func (s *Service) Order(orderID kernel.UUID) (*order.Order, error) {
	return s.cache.Get(orderID)
}

// ChangeItemStatus applies an item transition remote-first. Reports whether
// the order auto-advanced (locally derived, identical to the remote's rule).
func (s *Service) ChangeItemStatus(
	ctx context.Context,
	orderID kernel.UUID,
	itemID kernel.UUID,
	to order.ItemStatus,
) (bool, error) {
	aggregate, err := s.cache.Get(orderID)
	if err != nil {
		return false, err
	}

	remoteErr := s.remote.PushItemStatus(ctx, orderID.String(), itemID.String(), to.String())
	if remoteErr != nil && !errors.Is(remoteErr, errs.ErrRemoteUnavailable) {
		return false, remoteErr
	}

	autoAdvanced, err := aggregate.ChangeItemStatus(itemID, to)
	if err != nil {
		return false, err
	}
	aggregate.ClearEvents()

	if remoteErr != nil {
		s.logger.Warn("remote unavailable, keeping local item transition",
			"orderId", orderID.String(), "itemId", itemID.String(), "status", to.String())
		s.cache.Record(orderID, mutation{itemID: &itemID, status: to.String()})
	}

	return autoAdvanced, nil
}

// ChangeOrderStatus applies an order transition remote-first, with the same
// local fallback as item transitions.
func (s *Service) ChangeOrderStatus(ctx context.Context, orderID kernel.UUID, to order.Status) error {
	aggregate, err := s.cache.Get(orderID)
	if err != nil {
		return err
	}

	remoteErr := s.remote.PushOrderStatus(ctx, orderID.String(), to.String())
	if remoteErr != nil && !errors.Is(remoteErr, errs.ErrRemoteUnavailable) {
		return remoteErr
	}

	if to == order.Canceled {
		err = aggregate.Cancel()
	} else {
		err = aggregate.ChangeStatus(to)
	}
	if err != nil {
		return err
	}
	aggregate.ClearEvents()

	if remoteErr != nil {
		s.logger.Warn("remote unavailable, keeping local order transition",
			"orderId", orderID.String(), "status", to.String())
		s.cache.Record(orderID, mutation{orderStatus: to.String()})
	}

	return nil
}

// replayJournals retries every pending mutation in order. A journal is
// cleared only when all of its mutations are acknowledged; a rejection also
// clears it, since the remote has moved on and the next refresh will adopt
// its state.
func (s *Service) replayJournals(ctx context.Context) {
	for orderID, journal := range s.cache.Journal() {
		replayed := 0
		for _, m := range journal {
			var err error
			if m.itemID != nil {
				err = s.remote.PushItemStatus(ctx, orderID, m.itemID.String(), m.status)
			} else {
				err = s.remote.PushOrderStatus(ctx, orderID, m.orderStatus)
			}

			if err == nil {
				replayed++
				continue
			}
			if errors.Is(err, errs.ErrRemoteUnavailable) {
				s.logger.Debug("replay interrupted, remote unavailable", "orderId", orderID)
				return
			}

			s.logger.Warn("pending mutation rejected by remote, dropping journal",
				"orderId", orderID, "error", err)
			replayed = len(journal)
			break
		}

		if replayed == len(journal) {
			s.cache.ClearJournal(orderID)
		}
	}
}

// snapshotToDomain rebuilds a full aggregate from a wire snapshot so local
// fallback transitions run through the same state machine as the server's.
func snapshotToDomain(snapshot OrderSnapshot) (*order.Order, error) {
	id, err := kernel.UUIDFromString(snapshot.ID)
	if err != nil {
		return nil, err
	}

	waiterID, err := kernel.UUIDFromString(snapshot.WaiterID)
	if err != nil {
		return nil, err
	}

	status, err := order.ParseStatus(snapshot.Status)
	if err != nil {
		return nil, err
	}

	items := make([]*order.Item, 0, len(snapshot.Items))
	for _, line := range snapshot.Items {
		item, itemErr := itemSnapshotToDomain(line)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	return order.RestoreOrder(
		id,
		snapshot.TableNumber,
		waiterID,
		snapshot.WaiterName,
		snapshot.TodoJunto,
		items,
		status,
		snapshot.CreatedAt,
		snapshot.ConfirmedAt,
		snapshot.PreparedAt,
		snapshot.PaidAt,
	)
}

func itemSnapshotToDomain(snapshot ItemSnapshot) (*order.Item, error) {
	id, err := kernel.UUIDFromString(snapshot.ID)
	if err != nil {
		return nil, err
	}

	price, err := kernel.NewMoneyFromFloat(snapshot.Price)
	if err != nil {
		return nil, err
	}

	menuItem, err := order.NewMenuItem(snapshot.MenuItemID, snapshot.NameES, snapshot.NameEN, price)
	if err != nil {
		return nil, err
	}

	status, err := order.ParseItemStatus(snapshot.Status)
	if err != nil {
		return nil, err
	}

	customizations := make([]order.Customization, 0, len(snapshot.Customizations))
	for _, text := range snapshot.Customizations {
		customization, modErr := order.NewCustomization(text)
		if modErr != nil {
			return nil, modErr
		}
		customizations = append(customizations, customization)
	}

	return order.RestoreItem(id, menuItem, customizations, snapshot.CustomText, status, snapshot.CreatedAt)
}
