// Package jobs provides scheduled background tasks for the order system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required by the event delivery pipeline.
//
// # Available Jobs
//
// 1. RetrySweepJob - Runs every second to re-attempt event deliveries that
// previously failed and are due for another try.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(coordinator, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Scheduling
//
// The sweep uses the cron expression "* * * * * *" which means it runs every
// second. Retry due times are computed with exponential backoff, so most
// sweeps find nothing to do; a tight schedule only bounds how late a due
// retry can fire.
//
// # Error Handling
//
// Sweep errors are logged and the next tick runs normally; per-delivery
// failures are recorded on their retry records and never abort the sweep.
package jobs
