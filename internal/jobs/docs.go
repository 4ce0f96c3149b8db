// Package jobs provides scheduled background tasks for the order system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic maintenance operations.
//
// # Available Jobs
//
// 1. ConversationArchivalJob - Archives negotiation threads with no recent
// activity so staff dashboards only show live conversations. Archived
// threads reactivate automatically when a new message arrives.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(archiveHandler, idleFor, schedule, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Error Handling
//
// Archival failures are logged and retried on the next scheduled run; a
// failed run never stops the scheduler.
package jobs
