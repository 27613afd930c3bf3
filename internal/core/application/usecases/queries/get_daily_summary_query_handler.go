package queries

import (
	"context"

	"comanda/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// popularItemsLimit caps the dish ranking in the daily summary.
const popularItemsLimit = 10

// GetDailySummaryQueryHandler builds the end-of-day report with a handful of
// aggregate queries. Revenue is summed from non-canceled items of PAGADO
// orders, so partially canceled orders contribute only what was served.
type GetDailySummaryQueryHandler struct {
	db *gorm.DB
}

// NewGetDailySummaryQueryHandler creates a handler for daily summary queries.
func NewGetDailySummaryQueryHandler(db *gorm.DB) GetDailySummaryQueryHandler {
	return GetDailySummaryQueryHandler{db: db}
}

// Handle executes the summary aggregation for the query's day.
func (h GetDailySummaryQueryHandler) Handle(
	ctx context.Context,
	query GetDailySummaryQuery,
) (GetDailySummaryQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetDailySummaryQueryResponse{}, err
	}

	day := query.Date().Format("2006-01-02")
	resp := GetDailySummaryQueryResponse{
		Date:           day,
		StatusCounts:   make(map[string]int),
		PopularItems:   make([]PopularItemResponse, 0),
		HourlyActivity: make([]HourlyActivityResponse, 0),
		TableUsage:     make([]TableUsageResponse, 0),
		Waiters:        make([]WaiterPerformanceResponse, 0),
	}

	if err := h.scanStatusCounts(ctx, day, &resp); err != nil {
		return GetDailySummaryQueryResponse{}, err
	}
	if err := h.scanRevenue(ctx, day, &resp); err != nil {
		return GetDailySummaryQueryResponse{}, err
	}
	if err := h.scanPopularItems(ctx, day, &resp); err != nil {
		return GetDailySummaryQueryResponse{}, err
	}
	if err := h.scanHourlyActivity(ctx, day, &resp); err != nil {
		return GetDailySummaryQueryResponse{}, err
	}
	if err := h.scanTableUsage(ctx, day, &resp); err != nil {
		return GetDailySummaryQueryResponse{}, err
	}
	if err := h.scanWaiters(ctx, day, &resp); err != nil {
		return GetDailySummaryQueryResponse{}, err
	}

	return resp, nil
}

func (h GetDailySummaryQueryHandler) scanStatusCounts(
	ctx context.Context,
	day string,
	resp *GetDailySummaryQueryResponse,
) error {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT status, COUNT(*)
		FROM orders
		WHERE created_at::date = ?::date
		GROUP BY status
	`, day).Rows()
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var status string
		var count int
		if err = rows.Scan(&status, &count); err != nil {
			return err
		}
		resp.StatusCounts[status] = count
		resp.TotalOrders += count
	}

	return rows.Err()
}

func (h GetDailySummaryQueryHandler) scanRevenue(
	ctx context.Context,
	day string,
	resp *GetDailySummaryQueryResponse,
) error {
	var cents int64

	row := h.db.WithContext(ctx).Raw(`
		SELECT COALESCE(SUM(i.price_cents), 0)
		FROM items i
		JOIN orders o ON o.id = i.order_id
		WHERE o.created_at::date = ?::date
		  AND o.status = 'PAGADO'
		  AND i.status != 'CANCELED'
	`, day).Row()
	if err := row.Scan(&cents); err != nil {
		return err
	}

	revenue, err := kernel.NewMoney(cents)
	if err != nil {
		return err
	}
	resp.TotalRevenue = revenue
	return nil
}

func (h GetDailySummaryQueryHandler) scanPopularItems(
	ctx context.Context,
	day string,
	resp *GetDailySummaryQueryResponse,
) error {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			i.menu_item_id,
			MIN(i.name_es),
			COUNT(*),
			SUM(i.price_cents)
		FROM items i
		JOIN orders o ON o.id = i.order_id
		WHERE o.created_at::date = ?::date
		  AND i.status != 'CANCELED'
		GROUP BY i.menu_item_id
		ORDER BY COUNT(*) DESC, i.menu_item_id
		LIMIT ?
	`, day, popularItemsLimit).Rows()
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var item PopularItemResponse
		var cents int64
		if err = rows.Scan(&item.MenuItemID, &item.NameES, &item.Quantity, &cents); err != nil {
			return err
		}
		if item.Revenue, err = kernel.NewMoney(cents); err != nil {
			return err
		}
		resp.PopularItems = append(resp.PopularItems, item)
	}

	return rows.Err()
}

func (h GetDailySummaryQueryHandler) scanHourlyActivity(
	ctx context.Context,
	day string,
	resp *GetDailySummaryQueryResponse,
) error {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT EXTRACT(HOUR FROM created_at)::int, COUNT(*)
		FROM orders
		WHERE created_at::date = ?::date
		GROUP BY 1
		ORDER BY 1
	`, day).Rows()
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var bucket HourlyActivityResponse
		if err = rows.Scan(&bucket.Hour, &bucket.Orders); err != nil {
			return err
		}
		resp.HourlyActivity = append(resp.HourlyActivity, bucket)
	}

	return rows.Err()
}

func (h GetDailySummaryQueryHandler) scanTableUsage(
	ctx context.Context,
	day string,
	resp *GetDailySummaryQueryResponse,
) error {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT table_number, COUNT(*)
		FROM orders
		WHERE created_at::date = ?::date
		GROUP BY table_number
		ORDER BY COUNT(*) DESC, table_number
	`, day).Rows()
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var usage TableUsageResponse
		if err = rows.Scan(&usage.TableNumber, &usage.Orders); err != nil {
			return err
		}
		resp.TableUsage = append(resp.TableUsage, usage)
	}

	return rows.Err()
}

func (h GetDailySummaryQueryHandler) scanWaiters(
	ctx context.Context,
	day string,
	resp *GetDailySummaryQueryResponse,
) error {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			o.waiter_id,
			MIN(o.waiter_name),
			COUNT(DISTINCT o.id),
			COALESCE(SUM(i.price_cents) FILTER (
				WHERE o.status = 'PAGADO' AND i.status != 'CANCELED'
			), 0)
		FROM orders o
		LEFT JOIN items i ON i.order_id = o.id
		WHERE o.created_at::date = ?::date
		GROUP BY o.waiter_id
		ORDER BY 3 DESC
	`, day).Rows()
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var waiter WaiterPerformanceResponse
		var waiterID uuid.UUID
		var cents int64
		if err = rows.Scan(&waiterID, &waiter.WaiterName, &waiter.Orders, &cents); err != nil {
			return err
		}
		if waiter.WaiterID, err = kernel.UUIDFromBytes(waiterID[:]); err != nil {
			return err
		}
		if waiter.Revenue, err = kernel.NewMoney(cents); err != nil {
			return err
		}
		resp.Waiters = append(resp.Waiters, waiter)
	}

	return rows.Err()
}
