package queries

import (
	"context"
	"time"

	"comanda/internal/core/domain/model/kernel"

	"gorm.io/gorm"
)

// GetSalesTrendsQueryHandler aggregates orders per day over a date range.
// Days without orders are omitted from the result.
type GetSalesTrendsQueryHandler struct {
	db *gorm.DB
}

// NewGetSalesTrendsQueryHandler creates a handler for sales trend queries.
func NewGetSalesTrendsQueryHandler(db *gorm.DB) GetSalesTrendsQueryHandler {
	return GetSalesTrendsQueryHandler{db: db}
}

// Handle executes the trend aggregation, oldest day first.
func (h GetSalesTrendsQueryHandler) Handle(
	ctx context.Context,
	query GetSalesTrendsQuery,
) ([]DailySalesResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	days := make([]DailySalesResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			o.created_at::date,
			COUNT(DISTINCT o.id),
			COALESCE(SUM(i.price_cents) FILTER (
				WHERE o.status = 'PAGADO' AND i.status != 'CANCELED'
			), 0)
		FROM orders o
		LEFT JOIN items i ON i.order_id = o.id
		WHERE o.created_at::date BETWEEN ?::date AND ?::date
		GROUP BY o.created_at::date
		ORDER BY o.created_at::date
	`, query.From().Format("2006-01-02"), query.To().Format("2006-01-02")).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var day DailySalesResponse
		var date time.Time
		var cents int64
		if err = rows.Scan(&date, &day.Orders, &cents); err != nil {
			return nil, err
		}
		day.Date = date.Format("2006-01-02")
		if day.Revenue, err = kernel.NewMoney(cents); err != nil {
			return nil, err
		}
		days = append(days, day)
	}

	return days, rows.Err()
}
