package http

import (
	"time"

	"comanda/internal/core/application/usecases/queries"
)

// ErrorResponse is the JSON body returned on every failed request.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// CreateOrderRequest is the body of POST /api/orders.
type CreateOrderRequest struct {
	TableNumber int                      `json:"tableNumber"`
	WaiterID    string                   `json:"waiterId"`
	WaiterName  string                   `json:"waiterName"`
	TodoJunto   bool                     `json:"todoJunto"`
	Items       []CreateOrderItemRequest `json:"items"`
}

// CreateOrderItemRequest is one requested order line.
type CreateOrderItemRequest struct {
	MenuItemID     string   `json:"menuItemId"`
	NameES         string   `json:"nameEs"`
	NameEN         string   `json:"nameEn"`
	Price          float64  `json:"price"`
	Customizations []string `json:"customizations"`
	CustomText     string   `json:"customText"`
}

// ChangeStatusRequest is the body of the two status update endpoints.
type ChangeStatusRequest struct {
	Status string `json:"status"`
}

// CreateOrderResponse returns the assigned identity together with the
// persisted order.
type CreateOrderResponse struct {
	OrderID string        `json:"orderId"`
	Order   OrderResponse `json:"order"`
}

// OrdersEnvelope wraps the order list returned by GET /api/orders.
type OrdersEnvelope struct {
	Orders []OrderResponse `json:"orders"`
}

// OrderEnvelope wraps a single order with a status message.
type OrderEnvelope struct {
	Message string        `json:"message,omitempty"`
	Order   OrderResponse `json:"order"`
}

// ChangeItemStatusResponse reports the item transition outcome. OrderStatus
// is present only when the order advanced automatically.
type ChangeItemStatusResponse struct {
	Message           string `json:"message"`
	OrderStatus       string `json:"orderStatus,omitempty"`
	OrderAutoAdvanced bool   `json:"orderAutoAdvanced"`
}

// ItemResponse is one order line as rendered to clients.
type ItemResponse struct {
	ID             string    `json:"id"`
	MenuItemID     string    `json:"menuItemId"`
	NameES         string    `json:"nameEs"`
	NameEN         string    `json:"nameEn,omitempty"`
	Price          float64   `json:"price"`
	Customizations []string  `json:"customizations"`
	CustomText     string    `json:"customText,omitempty"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"createdAt"`
}

// OrderResponse is a full order as rendered to clients. Total is recomputed
// from item prices on every read.
type OrderResponse struct {
	ID          string         `json:"id"`
	TableNumber int            `json:"tableNumber"`
	WaiterID    string         `json:"waiterId"`
	WaiterName  string         `json:"waiterName"`
	TodoJunto   bool           `json:"todoJunto"`
	Status      string         `json:"status"`
	Total       float64        `json:"total"`
	Items       []ItemResponse `json:"items"`
	CreatedAt   time.Time      `json:"createdAt"`
	ConfirmedAt *time.Time     `json:"confirmedAt,omitempty"`
	PreparedAt  *time.Time     `json:"preparedAt,omitempty"`
	PaidAt      *time.Time     `json:"paidAt,omitempty"`
}

func orderResponseFromQuery(src queries.OrderResponse) OrderResponse {
	items := make([]ItemResponse, 0, len(src.Items))
	for _, item := range src.Items {
		customizations := item.Customizations
		if customizations == nil {
			customizations = make([]string, 0)
		}
		items = append(items, ItemResponse{
			ID:             item.ID.String(),
			MenuItemID:     item.MenuItemID,
			NameES:         item.NameES,
			NameEN:         item.NameEN,
			Price:          item.Price.Float64(),
			Customizations: customizations,
			CustomText:     item.CustomText,
			Status:         item.Status,
			CreatedAt:      item.CreatedAt,
		})
	}

	return OrderResponse{
		ID:          src.ID.String(),
		TableNumber: src.TableNumber,
		WaiterID:    src.WaiterID.String(),
		WaiterName:  src.WaiterName,
		TodoJunto:   src.TodoJunto,
		Status:      src.Status,
		Total:       src.Total.Float64(),
		Items:       items,
		CreatedAt:   src.CreatedAt,
		ConfirmedAt: src.ConfirmedAt,
		PreparedAt:  src.PreparedAt,
		PaidAt:      src.PaidAt,
	}
}

// DailySummaryResponse is the JSON shape of GET /api/analytics/summary.
type DailySummaryResponse struct {
	Date           string                   `json:"date"`
	TotalOrders    int                      `json:"totalOrders"`
	StatusCounts   map[string]int           `json:"statusCounts"`
	TotalRevenue   float64                  `json:"totalRevenue"`
	PopularItems   []PopularItemResponse    `json:"popularItems"`
	HourlyActivity []HourlyActivityResponse `json:"hourlyActivity"`
	TableUsage     []TableUsageResponse     `json:"tableUsage"`
	Waiters        []WaiterResponse         `json:"waiters"`
}

// PopularItemResponse is one ranked dish in the daily summary.
type PopularItemResponse struct {
	MenuItemID string  `json:"menuItemId"`
	NameES     string  `json:"nameEs"`
	Quantity   int     `json:"quantity"`
	Revenue    float64 `json:"revenue"`
}

// HourlyActivityResponse is one hour bucket in the daily summary.
type HourlyActivityResponse struct {
	Hour   int `json:"hour"`
	Orders int `json:"orders"`
}

// TableUsageResponse is one table's order count in the daily summary.
type TableUsageResponse struct {
	TableNumber int `json:"tableNumber"`
	Orders      int `json:"orders"`
}

// WaiterResponse is one waiter's totals in the daily summary.
type WaiterResponse struct {
	WaiterID   string  `json:"waiterId"`
	WaiterName string  `json:"waiterName"`
	Orders     int     `json:"orders"`
	Revenue    float64 `json:"revenue"`
}

func dailySummaryFromQuery(src queries.GetDailySummaryQueryResponse) DailySummaryResponse {
	popular := make([]PopularItemResponse, 0, len(src.PopularItems))
	for _, item := range src.PopularItems {
		popular = append(popular, PopularItemResponse{
			MenuItemID: item.MenuItemID,
			NameES:     item.NameES,
			Quantity:   item.Quantity,
			Revenue:    item.Revenue.Float64(),
		})
	}

	hourly := make([]HourlyActivityResponse, 0, len(src.HourlyActivity))
	for _, bucket := range src.HourlyActivity {
		hourly = append(hourly, HourlyActivityResponse(bucket))
	}

	tables := make([]TableUsageResponse, 0, len(src.TableUsage))
	for _, usage := range src.TableUsage {
		tables = append(tables, TableUsageResponse(usage))
	}

	waiters := make([]WaiterResponse, 0, len(src.Waiters))
	for _, waiter := range src.Waiters {
		waiters = append(waiters, WaiterResponse{
			WaiterID:   waiter.WaiterID.String(),
			WaiterName: waiter.WaiterName,
			Orders:     waiter.Orders,
			Revenue:    waiter.Revenue.Float64(),
		})
	}

	return DailySummaryResponse{
		Date:           src.Date,
		TotalOrders:    src.TotalOrders,
		StatusCounts:   src.StatusCounts,
		TotalRevenue:   src.TotalRevenue.Float64(),
		PopularItems:   popular,
		HourlyActivity: hourly,
		TableUsage:     tables,
		Waiters:        waiters,
	}
}

// DailySalesResponse is one day in GET /api/analytics/trends.
type DailySalesResponse struct {
	Date    string  `json:"date"`
	Orders  int     `json:"orders"`
	Revenue float64 `json:"revenue"`
}
