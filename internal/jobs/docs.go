// Package jobs provides scheduled background tasks for the payment service.
//
// Jobs are cron-based (github.com/robfig/cron/v3, six-field schedules with seconds).
//
// # Available Jobs
//
// SessionPurgeJob removes payment sessions that expired or whose post-payment
// grace period ran out. Session stores already hide such sessions on read, so the
// job only reclaims space; skipping a run never changes what clients observe.
//
// # Usage
//
//	jobManager := jobs.NewJobManager(purgeHandler, cfg.SessionPurgeSchedule, logger)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// Purge failures are logged and retried on the next tick.
package jobs
