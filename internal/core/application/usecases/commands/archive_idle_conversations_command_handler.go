package commands

import (
	"context"
	"log/slog"
	"time"
)

// ArchiveIdleConversationsCommandHandler archives conversations whose last
// activity is older than the command's inactivity window. Runs on a schedule.
type ArchiveIdleConversationsCommandHandler struct {
	uowFactory ConversationUoWFactory
	logger     *slog.Logger
}

// NewArchiveIdleConversationsCommandHandler creates a handler for the archival sweep.
func NewArchiveIdleConversationsCommandHandler(
	uowFactory ConversationUoWFactory,
	logger *slog.Logger,
) ArchiveIdleConversationsCommandHandler {
	return ArchiveIdleConversationsCommandHandler{
		uowFactory: uowFactory,
		logger:     logger.With("component", "archive_idle_conversations_handler"),
	}
}

// Handle archives every active conversation idle past the cutoff and returns
// how many were archived.
func (h *ArchiveIdleConversationsCommandHandler) Handle(ctx context.Context, cmd ArchiveIdleConversationsCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	cutoff := time.Now().UTC().Add(-cmd.IdleFor())

	repo := uow.ConversationRepository()
	idle, err := repo.GetActiveIdleSince(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	if len(idle) == 0 {
		return 0, nil
	}

	for _, aggregate := range idle {
		aggregate.Archive()
		if err = repo.Update(ctx, aggregate); err != nil {
			return 0, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	h.logger.InfoContext(ctx, "Archived idle conversations",
		"count", len(idle), "cutoff", cutoff)

	return len(idle), nil
}
