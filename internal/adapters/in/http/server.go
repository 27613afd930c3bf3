// Package http exposes the REST surface: order CRUD for the waiter app,
// item transitions for the kitchen display, and the analytics endpoints.
package http

import (
	"errors"
	"net/http"
	"time"

	"comanda/internal/core/application/usecases/commands"
	"comanda/internal/core/application/usecases/queries"
	"comanda/internal/core/domain/model/kernel"
	"comanda/internal/core/domain/model/order"
	"comanda/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createOrderHandler       commands.CreateOrderCommandHandler
	changeOrderStatusHandler commands.ChangeOrderStatusCommandHandler
	changeItemStatusHandler  commands.ChangeItemStatusCommandHandler
	cancelOrderHandler       commands.CancelOrderCommandHandler

	// Query handlers
	getOrdersHandler       queries.GetOrdersQueryHandler
	getOrderHandler        queries.GetOrderQueryHandler
	getDailySummaryHandler queries.GetDailySummaryQueryHandler
	getSalesTrendsHandler  queries.GetSalesTrendsQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	changeOrderStatusHandler commands.ChangeOrderStatusCommandHandler,
	changeItemStatusHandler commands.ChangeItemStatusCommandHandler,
	cancelOrderHandler commands.CancelOrderCommandHandler,
	getOrdersHandler queries.GetOrdersQueryHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	getDailySummaryHandler queries.GetDailySummaryQueryHandler,
	getSalesTrendsHandler queries.GetSalesTrendsQueryHandler,
) *Server {
	return &Server{
		createOrderHandler:       createOrderHandler,
		changeOrderStatusHandler: changeOrderStatusHandler,
		changeItemStatusHandler:  changeItemStatusHandler,
		cancelOrderHandler:       cancelOrderHandler,
		getOrdersHandler:         getOrdersHandler,
		getOrderHandler:          getOrderHandler,
		getDailySummaryHandler:   getDailySummaryHandler,
		getSalesTrendsHandler:    getSalesTrendsHandler,
	}
}

// RegisterRoutes mounts the REST surface on the given echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)

	api := e.Group("/api")
	api.GET("/orders", s.GetOrders)
	api.POST("/orders", s.CreateOrder)
	api.GET("/orders/:id", s.GetOrder)
	api.PUT("/orders/:id/status", s.ChangeOrderStatus)
	api.PUT("/orders/:orderId/items/:itemId/status", s.ChangeItemStatus)
	api.DELETE("/orders/:id", s.CancelOrder)
	api.GET("/analytics/summary", s.GetDailySummary)
	api.GET("/analytics/trends", s.GetSalesTrends)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// GetOrders handles GET /api/orders - lists orders, newest first.
// Supports status, table, waiterId and date query filters.
func (s *Server) GetOrders(ctx echo.Context) error {
	filter, err := parseOrdersFilter(ctx)
	if err != nil {
		return badRequest(ctx, err)
	}

	orders, err := s.getOrdersHandler.Handle(ctx.Request().Context(), queries.NewGetOrdersQuery(filter))
	if err != nil {
		return writeError(ctx, err)
	}

	response := make([]OrderResponse, 0, len(orders))
	for _, o := range orders {
		response = append(response, orderResponseFromQuery(o))
	}

	return ctx.JSON(http.StatusOK, OrdersEnvelope{Orders: response})
}

// CreateOrder handles POST /api/orders - opens a new order.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var request CreateOrderRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, errors.New("invalid request body"))
	}

	waiterID, err := kernel.UUIDFromString(request.WaiterID)
	if err != nil {
		return badRequest(ctx, err)
	}

	items := make([]commands.OrderItem, 0, len(request.Items))
	for _, line := range request.Items {
		price, priceErr := kernel.NewMoneyFromFloat(line.Price)
		if priceErr != nil {
			return badRequest(ctx, priceErr)
		}

		item, itemErr := commands.NewOrderItem(
			kernel.NewUUID(),
			line.MenuItemID,
			line.NameES,
			line.NameEN,
			price,
			line.Customizations,
			line.CustomText,
		)
		if itemErr != nil {
			return badRequest(ctx, itemErr)
		}
		items = append(items, item)
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(
		orderID,
		request.TableNumber,
		waiterID,
		request.WaiterName,
		request.TodoJunto,
		items,
	)
	if err != nil {
		return badRequest(ctx, err)
	}

	if err = s.createOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	view, err := s.fetchOrder(ctx, orderID)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, CreateOrderResponse{
		OrderID: orderID.String(),
		Order:   view,
	})
}

// GetOrder handles GET /api/orders/:id.
func (s *Server) GetOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, err)
	}

	view, err := s.fetchOrder(ctx, orderID)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, OrderEnvelope{Order: view})
}

// ChangeOrderStatus handles PUT /api/orders/:id/status.
func (s *Server) ChangeOrderStatus(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, err)
	}

	var request ChangeStatusRequest
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, errors.New("invalid request body"))
	}

	status, err := order.ParseStatus(request.Status)
	if err != nil {
		return badRequest(ctx, err)
	}

	cmd, err := commands.NewChangeOrderStatusCommand(orderID, status)
	if err != nil {
		return badRequest(ctx, err)
	}

	if err = s.changeOrderStatusHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	view, err := s.fetchOrder(ctx, orderID)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, OrderEnvelope{Message: "order status updated", Order: view})
}

// ChangeItemStatus handles PUT /api/orders/:orderId/items/:itemId/status.
// The response reports whether the order advanced automatically.
func (s *Server) ChangeItemStatus(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderId"))
	if err != nil {
		return badRequest(ctx, err)
	}

	itemID, err := kernel.UUIDFromString(ctx.Param("itemId"))
	if err != nil {
		return badRequest(ctx, err)
	}

	var request ChangeStatusRequest
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, errors.New("invalid request body"))
	}

	status, err := order.ParseItemStatus(request.Status)
	if err != nil {
		return badRequest(ctx, err)
	}

	cmd, err := commands.NewChangeItemStatusCommand(orderID, itemID, status)
	if err != nil {
		return badRequest(ctx, err)
	}

	result, err := s.changeItemStatusHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	response := ChangeItemStatusResponse{
		Message:           "item status updated",
		OrderAutoAdvanced: result.OrderAutoAdvanced,
	}
	if result.OrderAutoAdvanced {
		response.OrderStatus = result.OrderStatus.String()
	}

	return ctx.JSON(http.StatusOK, response)
}

// CancelOrder handles DELETE /api/orders/:id. The order is marked CANCELED
// and kept in history, not removed.
func (s *Server) CancelOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, err)
	}

	cmd, err := commands.NewCancelOrderCommand(orderID)
	if err != nil {
		return badRequest(ctx, err)
	}

	if err = s.cancelOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	view, err := s.fetchOrder(ctx, orderID)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, OrderEnvelope{Message: "order canceled", Order: view})
}

// GetDailySummary handles GET /api/analytics/summary. The date query
// parameter defaults to today.
func (s *Server) GetDailySummary(ctx echo.Context) error {
	date := time.Now()
	if raw := ctx.QueryParam("date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return badRequest(ctx, errors.New("date must be YYYY-MM-DD"))
		}
		date = parsed
	}

	summary, err := s.getDailySummaryHandler.Handle(
		ctx.Request().Context(),
		queries.NewGetDailySummaryQuery(date),
	)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, dailySummaryFromQuery(summary))
}

// GetSalesTrends handles GET /api/analytics/trends?startDate=&endDate=.
func (s *Server) GetSalesTrends(ctx echo.Context) error {
	from, err := time.Parse("2006-01-02", ctx.QueryParam("startDate"))
	if err != nil {
		return badRequest(ctx, errors.New("startDate must be YYYY-MM-DD"))
	}
	to, err := time.Parse("2006-01-02", ctx.QueryParam("endDate"))
	if err != nil {
		return badRequest(ctx, errors.New("endDate must be YYYY-MM-DD"))
	}

	query, err := queries.NewGetSalesTrendsQuery(from, to)
	if err != nil {
		return badRequest(ctx, err)
	}

	days, err := s.getSalesTrendsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	response := make([]DailySalesResponse, 0, len(days))
	for _, day := range days {
		response = append(response, DailySalesResponse{
			Date:    day.Date,
			Orders:  day.Orders,
			Revenue: day.Revenue.Float64(),
		})
	}

	return ctx.JSON(http.StatusOK, response)
}

// fetchOrder reads the freshly committed order back through the query side,
// so mutation responses carry the server-confirmed shape.
func (s *Server) fetchOrder(ctx echo.Context, orderID kernel.UUID) (OrderResponse, error) {
	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return OrderResponse{}, err
	}

	view, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return OrderResponse{}, err
	}

	return orderResponseFromQuery(view), nil
}

// parseOrdersFilter builds a listing filter from query parameters.
func parseOrdersFilter(ctx echo.Context) (queries.GetOrdersFilter, error) {
	var filter queries.GetOrdersFilter

	if raw := ctx.QueryParam("status"); raw != "" {
		status, err := order.ParseStatus(raw)
		if err != nil {
			return queries.GetOrdersFilter{}, err
		}
		filter.Status = &status
	}

	if raw := ctx.QueryParam("table_number"); raw != "" {
		var table int
		if err := echo.QueryParamsBinder(ctx).Int("table_number", &table).BindError(); err != nil {
			return queries.GetOrdersFilter{}, errors.New("table_number must be a number")
		}
		filter.TableNumber = &table
	}

	if raw := ctx.QueryParam("waiter_id"); raw != "" {
		waiterID, err := kernel.UUIDFromString(raw)
		if err != nil {
			return queries.GetOrdersFilter{}, err
		}
		filter.WaiterID = &waiterID
	}

	if raw := ctx.QueryParam("date"); raw != "" {
		date, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return queries.GetOrdersFilter{}, errors.New("date must be YYYY-MM-DD")
		}
		filter.Date = &date
	}

	return filter, nil
}

// writeError maps domain errors to HTTP status codes: missing aggregates to
// 404, rejected transitions to 409, validation failures to 400.
func writeError(ctx echo.Context, err error) error {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return respondError(ctx, http.StatusNotFound, err)
	case errors.Is(err, errs.ErrInvalidTransition):
		return respondError(ctx, http.StatusConflict, err)
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, order.ErrOrderHasNoItems),
		errors.Is(err, order.ErrOrderIsNotDraft):
		return respondError(ctx, http.StatusBadRequest, err)
	default:
		return respondError(ctx, http.StatusInternalServerError, err)
	}
}

func badRequest(ctx echo.Context, err error) error {
	return respondError(ctx, http.StatusBadRequest, err)
}

func respondError(ctx echo.Context, code int, err error) error {
	return ctx.JSON(code, ErrorResponse{
		Code:    code,
		Message: err.Error(),
	})
}
