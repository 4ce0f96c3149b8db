package commands_test

import (
	"errors"
	"testing"

	"craftorders/internal/core/application/usecases/commands"
	"craftorders/internal/core/domain/model/conversation"
	"craftorders/internal/core/domain/model/kernel"
	"craftorders/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestPostMessageCommandHandler_Handle_AppendsToExistingConversation(t *testing.T) {
	ctx := t.Context()
	aggregate := quoteNeededOrder(t)
	conv, err := conversation.NewConversation(kernel.NewUUID(), aggregate.ID())
	require.NoError(t, err)

	cmd, err := commands.NewPostMessageCommand(aggregate.ID(), conversation.SenderCustomer, "Can you use walnut instead?", false, nil)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	convRepo := new(MockConversationRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once(),
		uow.On("ConversationRepository").Return(convRepo).Once(),
		convRepo.On("GetByOrderID", mock.Anything, aggregate.ID()).Return(conv, nil).Once(),
		convRepo.On("Update", mock.Anything, conv).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewPostMessageCommandHandler(factory)
	result, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.True(t, result.ConversationID.IsEqual(conv.ID()))
	assert.Equal(t, "Can you use walnut instead?", result.Message.Content())
	assert.Equal(t, conversation.SenderCustomer, result.Message.Sender())
	assert.False(t, result.Message.IsRead())
	require.Len(t, conv.Messages(), 1)
	convRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestPostMessageCommandHandler_Handle_CreatesConversationOnFirstMessage(t *testing.T) {
	ctx := t.Context()
	aggregate := pendingOrder(t)

	cmd, err := commands.NewPostMessageCommand(aggregate.ID(), conversation.SenderCustomer, "Is gift wrapping available?", false, nil)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	convRepo := new(MockConversationRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once(),
		uow.On("ConversationRepository").Return(convRepo).Once(),
		convRepo.On("GetByOrderID", mock.Anything, aggregate.ID()).
			Return(nil, errs.NewObjectNotFoundError("orderID", aggregate.ID().String())).Once(),
		convRepo.On("Add", mock.Anything, mock.AnythingOfType("*conversation.Conversation")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewPostMessageCommandHandler(factory)
	result, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.NoError(t, result.ConversationID.Validate())
	convRepo.AssertExpectations(t)
}

func TestPostMessageCommandHandler_Handle_OrderNotFound(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()

	cmd, err := commands.NewPostMessageCommand(orderID, conversation.SenderCustomer, "hello", false, nil)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	convRepo := new(MockConversationRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", mock.Anything, orderID).
			Return(nil, errs.NewObjectNotFoundError("orderID", orderID.String())).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewPostMessageCommandHandler(factory)
	_, err = h.Handle(ctx, cmd)

	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrObjectNotFound)
	convRepo.AssertNotCalled(t, "GetByOrderID", mock.Anything, mock.Anything)
}

func TestPostMessageCommandHandler_Handle_ConversationRepositoryError(t *testing.T) {
	ctx := t.Context()
	aggregate := pendingOrder(t)

	cmd, err := commands.NewPostMessageCommand(aggregate.ID(), conversation.SenderStaff, "status update", false, nil)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	convRepo := new(MockConversationRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once(),
		uow.On("ConversationRepository").Return(convRepo).Once(),
		convRepo.On("GetByOrderID", mock.Anything, aggregate.ID()).
			Return(nil, errors.New("connection reset")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewPostMessageCommandHandler(factory)
	_, err = h.Handle(ctx, cmd)

	require.Error(t, err)
	convRepo.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
	convRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestPostMessageCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.PostMessageCommand{} // not constructed properly

	factory := new(MockUoWFactory)
	h := commands.NewPostMessageCommandHandler(factory)
	_, err := h.Handle(ctx, cmd)

	require.Error(t, err)
	factory.AssertNotCalled(t, "Create")
}
