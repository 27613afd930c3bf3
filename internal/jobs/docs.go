// Package jobs provides scheduled background tasks for the comanda system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle the periodic synchronization a kitchen display needs.
//
// # Available Jobs
//
// 1. OrderSyncJob - Runs every ten seconds to refresh the local order cache
// from the central order service and replay journaled offline mutations
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with the sync service
//	jobManager := jobs.NewJobManager(syncService, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Error Handling
//
// A failed refresh is logged as a warning and retried on the next tick,
// since an unreachable remote is the situation the sync layer exists for.
package jobs
