// Package jobs provides scheduled background tasks for the supply service.
//
// Jobs are built on github.com/robfig/cron/v3 with the six-field format
// (seconds first).
//
// # Available Jobs
//
// 1. ShortageDigestJob - logs unavailable and short items of the previous
// 24 hours, grouped by warehouse. Runs daily at 07:00 unless
// SHORTAGE_DIGEST_SCHEDULE overrides it.
//
// # Usage
//
//	jobManager := jobs.NewJobManager(shortageDigestHandler, config.ShortageDigestSchedule, logger)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatalf("failed to start jobs: %v", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// A failed digest is logged and counted in supply_shortage_digest_runs_total
// with result="error". The next scheduled run is not affected.
package jobs
