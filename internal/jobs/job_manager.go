package jobs

import (
	"fmt"
	"log/slog"
	"time"

	"craftorders/internal/core/application/usecases/commands"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	conversationArchivalJob *ConversationArchivalJob
}

// NewJobManager creates a job manager with all required jobs.
// Takes command handlers as dependencies to wire up the job execution.
func NewJobManager(
	archiveHandler commands.ArchiveIdleConversationsCommandHandler,
	archiveIdleFor time.Duration,
	archiveSchedule string,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		conversationArchivalJob: NewConversationArchivalJob(archiveHandler, archiveIdleFor, archiveSchedule, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.conversationArchivalJob.Start(); err != nil {
		return fmt.Errorf("failed to start conversation archival job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.conversationArchivalJob.Stop()
}
