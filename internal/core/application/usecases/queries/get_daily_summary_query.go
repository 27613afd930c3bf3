package queries

import (
	"errors"
	"time"

	"comanda/internal/core/domain/model/kernel"
	"comanda/internal/pkg/guard"
)

var ErrGetDailySummaryQueryIsNotConstructed = errors.New(
	"GetDailySummaryQuery must be created via NewGetDailySummaryQuery constructor",
)

// GetDailySummaryQuery aggregates one day of service into counters the staff
// reviews at closing time: order counts by status, revenue from paid orders,
// the most requested dishes, busiest hours and tables, and per-waiter totals.
//
// Example:
//
//	query := NewGetDailySummaryQuery(time.Now())
//	handler := NewGetDailySummaryQueryHandler(db)
//
//	summary, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to build daily summary: %w", err)
//	}
//	fmt.Printf("%d orders, %s revenue\n", summary.TotalOrders, summary.TotalRevenue)
type GetDailySummaryQuery struct {
	date time.Time

	guard guard.ConstructorGuard
}

// NewGetDailySummaryQuery creates a summary query for the given calendar day.
func NewGetDailySummaryQuery(date time.Time) GetDailySummaryQuery {
	return GetDailySummaryQuery{
		date:  date,
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the query was created through the constructor.
func (q GetDailySummaryQuery) Validate() error {
	return q.guard.Validate(ErrGetDailySummaryQueryIsNotConstructed)
}

// Date returns the day to summarize.
func (q GetDailySummaryQuery) Date() time.Time {
	return q.date
}

// PopularItemResponse is one dish ranked by how often it was ordered.
type PopularItemResponse struct {
	MenuItemID string
	NameES     string
	Quantity   int
	Revenue    kernel.Money
}

// HourlyActivityResponse counts orders opened within one hour of the day.
type HourlyActivityResponse struct {
	Hour   int
	Orders int
}

// TableUsageResponse counts orders served at one table.
type TableUsageResponse struct {
	TableNumber int
	Orders      int
}

// WaiterPerformanceResponse sums one waiter's orders and paid revenue.
type WaiterPerformanceResponse struct {
	WaiterID   kernel.UUID
	WaiterName string
	Orders     int
	Revenue    kernel.Money
}

// GetDailySummaryQueryResponse is the aggregated view of one day of service.
// Revenue counts only PAGADO orders and excludes canceled items.
type GetDailySummaryQueryResponse struct {
	Date           string
	TotalOrders    int
	StatusCounts   map[string]int
	TotalRevenue   kernel.Money
	PopularItems   []PopularItemResponse
	HourlyActivity []HourlyActivityResponse
	TableUsage     []TableUsageResponse
	Waiters        []WaiterPerformanceResponse
}
