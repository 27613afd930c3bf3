package jobs

import (
	"context"
	"log/slog"

	"comanda/internal/sync"

	"github.com/robfig/cron/v3"
)

// OrderSyncJob periodically refreshes the local order cache from the
// central order service and replays any journaled offline mutations.
type OrderSyncJob struct {
	service *sync.Service
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewOrderSyncJob creates a job that refreshes the sync service every
// ten seconds.
func NewOrderSyncJob(service *sync.Service, logger *slog.Logger) *OrderSyncJob {
	return &OrderSyncJob{
		service: service,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "order_sync_job"),
	}
}

// Start begins the refresh schedule.
func (j *OrderSyncJob) Start() error {
	_, err := j.cron.AddFunc("*/10 * * * * *", func() {
		ctx := context.Background()

		if err := j.service.Refresh(ctx); err != nil {
			// An unreachable remote is expected during outages, the
			// next tick will try again.
			j.logger.WarnContext(ctx, "Order sync refresh failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Order sync job started (running every 10 seconds)")
	return nil
}

// Stop stops the refresh schedule.
func (j *OrderSyncJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Order sync job stopped")
}
