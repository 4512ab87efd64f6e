// Package jobs provides scheduled background tasks for a kitchen terminal.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
//
// # Available Jobs
//
// 1. ReconcileJob - Runs on a fixed interval (30s by default) and reconciles
// the local view with the order store. It backs up the change feed, which
// triggers reconciliation immediately.
// 2. ElapsedTickJob - Refreshes the time used for elapsed timers, every
// minute normally and every second while the fine timer is on.
//
// # Usage
//
//	jobManager := jobs.NewJobManager(coordinator, 30*time.Second, logger)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// A failed reconciliation keeps the previous view and is logged at warning
// level; the next run retries naturally. Failed job starts stop any already
// running jobs.
package jobs
