package jobs

import (
	"context"
	"log/slog"
	"time"

	"craftorders/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// ConversationArchivalJob periodically archives conversations with no recent
// activity. Archived conversations stay readable and reactivate on the next
// message.
type ConversationArchivalJob struct {
	handler  commands.ArchiveIdleConversationsCommandHandler
	idleFor  time.Duration
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewConversationArchivalJob creates the archival job. idleFor is the
// inactivity window after which a conversation is archived; schedule is a
// standard five-field cron expression.
func NewConversationArchivalJob(
	handler commands.ArchiveIdleConversationsCommandHandler,
	idleFor time.Duration,
	schedule string,
	logger *slog.Logger,
) *ConversationArchivalJob {
	return &ConversationArchivalJob{
		handler:  handler,
		idleFor:  idleFor,
		schedule: schedule,
		cron:     cron.New(),
		logger:   logger.With("component", "conversation_archival_job"),
	}
}

// Start schedules the archival run.
func (j *ConversationArchivalJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx := context.Background()

		cmd, cmdErr := commands.NewArchiveIdleConversationsCommand(j.idleFor)
		if cmdErr != nil {
			j.logger.ErrorContext(ctx, "Conversation archival job misconfigured", "error", cmdErr)
			return
		}

		archived, runErr := j.handler.Handle(ctx, cmd)
		if runErr != nil {
			j.logger.ErrorContext(ctx, "Conversation archival job failed", "error", runErr)
			return
		}

		if archived > 0 {
			j.logger.InfoContext(ctx, "Conversation archival run finished", "archived", archived)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Conversation archival job started",
		"schedule", j.schedule, "idle_for", j.idleFor)
	return nil
}

// Stop stops the job.
func (j *ConversationArchivalJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Conversation archival job stopped")
}
