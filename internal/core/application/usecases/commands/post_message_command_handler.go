package commands

import (
	"context"
	"errors"

	"craftorders/internal/core/domain/model/conversation"
	"craftorders/internal/core/domain/model/kernel"
	"craftorders/internal/pkg/errs"
)

// PostMessageResult carries the durably persisted message back to the caller,
// ready to fan out to connected peers.
type PostMessageResult struct {
	ConversationID kernel.UUID
	Message        conversation.Message
}

// PostMessageCommandHandler appends a message to an order's conversation,
// creating the conversation lazily on first message. The write is durable
// before any realtime fan-out happens.
type PostMessageCommandHandler struct {
	uowFactory UoWFactory
}

// NewPostMessageCommandHandler creates a handler for message posting.
func NewPostMessageCommandHandler(uowFactory UoWFactory) PostMessageCommandHandler {
	return PostMessageCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle persists the message. Fails with errs.ObjectNotFoundError when the
// order does not exist; a missing conversation is created on the fly.
func (h *PostMessageCommandHandler) Handle(ctx context.Context, cmd PostMessageCommand) (PostMessageResult, error) {
	if err := cmd.Validate(); err != nil {
		return PostMessageResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return PostMessageResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	// The order must exist before its thread accepts messages.
	if _, err := uow.OrderRepository().Get(ctx, cmd.OrderID()); err != nil {
		return PostMessageResult{}, err
	}

	convRepo := uow.ConversationRepository()
	conv, err := convRepo.GetByOrderID(ctx, cmd.OrderID())
	created := false
	if err != nil {
		if !errors.Is(err, errs.ErrObjectNotFound) {
			return PostMessageResult{}, err
		}
		conv, err = conversation.NewConversation(kernel.NewUUID(), cmd.OrderID())
		if err != nil {
			return PostMessageResult{}, err
		}
		created = true
	}

	var message conversation.Message
	if cmd.IsQuote() {
		message, err = conv.PostQuote(cmd.Sender(), cmd.Content(), *cmd.QuoteAmount())
	} else {
		message, err = conv.PostMessage(cmd.Sender(), cmd.Content())
	}
	if err != nil {
		return PostMessageResult{}, err
	}

	if created {
		err = convRepo.Add(ctx, conv)
	} else {
		err = convRepo.Update(ctx, conv)
	}
	if err != nil {
		return PostMessageResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return PostMessageResult{}, err
	}

	return PostMessageResult{
		ConversationID: conv.ID(),
		Message:        message,
	}, nil
}
