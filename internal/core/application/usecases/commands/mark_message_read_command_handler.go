package commands

import (
	"context"

	"craftorders/internal/core/domain/model/conversation"
)

// MarkMessageReadCommandHandler flips the read flag on a conversation message.
type MarkMessageReadCommandHandler struct {
	uowFactory ConversationUoWFactory
}

// NewMarkMessageReadCommandHandler creates a handler for read acknowledgements.
func NewMarkMessageReadCommandHandler(uowFactory ConversationUoWFactory) MarkMessageReadCommandHandler {
	return MarkMessageReadCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle marks the message as read when the reader is not its author and
// returns the updated message. Fails with errs.ObjectNotFoundError when the
// order has no conversation or the message is not in it.
func (h *MarkMessageReadCommandHandler) Handle(ctx context.Context, cmd MarkMessageReadCommand) (conversation.Message, error) {
	if err := cmd.Validate(); err != nil {
		return conversation.Message{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return conversation.Message{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.ConversationRepository()
	aggregate, err := repo.GetByOrderID(ctx, cmd.OrderID())
	if err != nil {
		return conversation.Message{}, err
	}

	msg, err := aggregate.MarkMessageRead(cmd.MessageID(), cmd.Reader())
	if err != nil {
		return conversation.Message{}, err
	}

	if err = repo.Update(ctx, aggregate); err != nil {
		return conversation.Message{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return conversation.Message{}, err
	}

	return msg, nil
}
