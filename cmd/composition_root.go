package cmd

import (
	"log/slog"
	"os"

	"comanda/internal/adapters/in/ws"
	"comanda/internal/adapters/out/postgres"
	"comanda/internal/core/application/usecases/commands"
	"comanda/internal/core/application/usecases/queries"
	"comanda/internal/jobs"
	"comanda/internal/sync"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	hub        *ws.Hub
	logger     *slog.Logger
}

func NewCompositionRoot(_ Config, gormDB *gorm.DB) CompositionRoot {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		hub:        ws.NewHub(logger),
		logger:     logger,
	}
}

// Hub returns the websocket hub that broadcasts order events to
// subscribed kitchen displays. Its Run loop must be started by the caller.
func (c *CompositionRoot) Hub() *ws.Hub {
	return c.hub
}

func (c *CompositionRoot) Logger() *slog.Logger {
	return c.logger
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.orderUoWFactory(), c.hub)
}

func (c *CompositionRoot) CreateChangeOrderStatusCommandHandler() commands.ChangeOrderStatusCommandHandler {
	return commands.NewChangeOrderStatusCommandHandler(c.orderUoWFactory(), c.hub)
}

func (c *CompositionRoot) CreateChangeItemStatusCommandHandler() commands.ChangeItemStatusCommandHandler {
	return commands.NewChangeItemStatusCommandHandler(c.orderUoWFactory(), c.hub)
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	return commands.NewCancelOrderCommandHandler(c.orderUoWFactory(), c.hub)
}

func (c *CompositionRoot) CreateGetOrdersQueryHandler() queries.GetOrdersQueryHandler {
	return queries.NewGetOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetDailySummaryQueryHandler() queries.GetDailySummaryQueryHandler {
	return queries.NewGetDailySummaryQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetSalesTrendsQueryHandler() queries.GetSalesTrendsQueryHandler {
	return queries.NewGetSalesTrendsQueryHandler(c.gormDB)
}

// CreateSyncJobManager wires the background sync against the configured
// remote order service. Returns nil when sync is disabled.
func (c *CompositionRoot) CreateSyncJobManager(config Config) *jobs.JobManager {
	if !config.SyncEnabled {
		return nil
	}

	remote := sync.NewHTTPRemote(config.SyncRemoteURL, c.logger)
	service := sync.NewService(remote, c.logger)
	return jobs.NewJobManager(service, c.logger)
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}
