package commands_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"craftorders/internal/core/application/usecases/commands"
	"craftorders/internal/core/domain/model/catalog"
	"craftorders/internal/core/domain/model/conversation"
	"craftorders/internal/core/domain/model/kernel"
	"craftorders/internal/core/domain/model/order"
	"craftorders/internal/core/domain/services"
	"craftorders/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

type MockConversationRepository struct{ mock.Mock }

func (m *MockConversationRepository) Add(ctx context.Context, aggregate *conversation.Conversation) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockConversationRepository) Update(ctx context.Context, aggregate *conversation.Conversation) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockConversationRepository) Get(ctx context.Context, id kernel.UUID) (*conversation.Conversation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*conversation.Conversation), args.Error(1)
}

func (m *MockConversationRepository) GetByOrderID(ctx context.Context, orderID kernel.UUID) (*conversation.Conversation, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*conversation.Conversation), args.Error(1)
}

func (m *MockConversationRepository) GetActiveIdleSince(ctx context.Context, cutoff time.Time) ([]*conversation.Conversation, error) {
	args := m.Called(ctx, cutoff)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*conversation.Conversation), args.Error(1)
}

type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) ConversationRepository() ports.ConversationRepository {
	args := m.Called()
	return args.Get(0).(ports.ConversationRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockCatalogReader struct{ mock.Mock }

func (m *MockCatalogReader) FindByIDs(ctx context.Context, ids []kernel.UUID) ([]*catalog.Item, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*catalog.Item), args.Error(1)
}

type MockNotifier struct{ mock.Mock }

func (m *MockNotifier) Notify(ctx context.Context, event string, aggregate *order.Order) error {
	args := m.Called(ctx, event, aggregate)
	return args.Error(0)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestCreateOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	itemID := kernel.NewUUID()
	item, err := catalog.NewFixedPriceItem(itemID, "Walnut cutting board", 45.0, true, []string{"natural"})
	require.NoError(t, err)

	cmd, err := commands.NewCreateOrderCommand(kernel.NewUUID(), validCustomer(t),
		[]services.LineRequest{{ItemID: itemID, Quantity: 2, SelectedColor: "natural"}})
	require.NoError(t, err)

	catalogReader := new(MockCatalogReader)
	catalogReader.On("FindByIDs", ctx, mock.Anything).Return([]*catalog.Item{item}, nil).Once()

	repo := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Add", mock.Anything, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	notifier := new(MockNotifier)
	notifier.On("Notify", ctx, ports.OrderCreatedEvent, mock.AnythingOfType("*order.Order")).Return(nil).Once()

	h := commands.NewCreateOrderCommandHandler(factory, catalogReader, notifier, testLogger())
	result, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	require.NotNil(t, result.Order)
	assert.False(t, result.RequiresQuote)
	assert.Equal(t, order.Pending, result.Order.Status())
	require.NotNil(t, result.Order.TotalAmount())
	assert.InDelta(t, 90.0, *result.Order.TotalAmount(), 0.001)
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_CustomItemSeedsConversation(t *testing.T) {
	ctx := t.Context()
	itemID := kernel.NewUUID()
	item, err := catalog.NewCustomPriceItem(itemID, "Engraved sign", true, nil)
	require.NoError(t, err)

	cmd, err := commands.NewCreateOrderCommand(kernel.NewUUID(), validCustomer(t),
		[]services.LineRequest{{ItemID: itemID, Quantity: 1, CustomRequirements: "Family name in oak"}})
	require.NoError(t, err)

	catalogReader := new(MockCatalogReader)
	catalogReader.On("FindByIDs", ctx, mock.Anything).Return([]*catalog.Item{item}, nil).Once()

	orderRepo := new(MockOrderRepository)
	convRepo := new(MockConversationRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Add", mock.Anything, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("ConversationRepository").Return(convRepo).Once(),
		convRepo.On("Add", mock.Anything, mock.AnythingOfType("*conversation.Conversation")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	notifier := new(MockNotifier)
	notifier.On("Notify", ctx, ports.OrderCreatedEvent, mock.AnythingOfType("*order.Order")).Return(nil).Once()

	h := commands.NewCreateOrderCommandHandler(factory, catalogReader, notifier, testLogger())
	result, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.True(t, result.RequiresQuote)
	assert.Equal(t, order.QuoteNeeded, result.Order.Status())
	assert.Nil(t, result.Order.TotalAmount())
	orderRepo.AssertExpectations(t)
	convRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.CreateOrderCommand{} // not constructed properly

	h := commands.NewCreateOrderCommandHandler(new(MockUoWFactory), new(MockCatalogReader), new(MockNotifier), testLogger())
	_, err := h.Handle(ctx, cmd)

	require.Error(t, err)
}

func TestCreateOrderCommandHandler_Handle_UnknownItemsRejectedBeforePersistence(t *testing.T) {
	ctx := t.Context()
	missingA := kernel.NewUUID()
	missingB := kernel.NewUUID()

	cmd, err := commands.NewCreateOrderCommand(kernel.NewUUID(), validCustomer(t),
		[]services.LineRequest{
			{ItemID: missingA, Quantity: 1},
			{ItemID: missingB, Quantity: 1},
		})
	require.NoError(t, err)

	catalogReader := new(MockCatalogReader)
	catalogReader.On("FindByIDs", ctx, mock.Anything).Return([]*catalog.Item{}, nil).Once()

	factory := new(MockUoWFactory)

	h := commands.NewCreateOrderCommandHandler(factory, catalogReader, new(MockNotifier), testLogger())
	_, err = h.Handle(ctx, cmd)

	require.Error(t, err)
	var notFound *services.ItemsNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.ElementsMatch(t, []string{missingA.String(), missingB.String()}, notFound.ItemIDs)
	factory.AssertNotCalled(t, "Create")
}

func TestCreateOrderCommandHandler_Handle_CatalogError(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewCreateOrderCommand(kernel.NewUUID(), validCustomer(t),
		[]services.LineRequest{{ItemID: kernel.NewUUID(), Quantity: 1}})
	require.NoError(t, err)

	catalogReader := new(MockCatalogReader)
	catalogReader.On("FindByIDs", ctx, mock.Anything).Return(nil, errors.New("catalog unreachable")).Once()

	h := commands.NewCreateOrderCommandHandler(new(MockUoWFactory), catalogReader, new(MockNotifier), testLogger())
	_, err = h.Handle(ctx, cmd)

	require.Error(t, err)
}

func TestCreateOrderCommandHandler_Handle_AddError(t *testing.T) {
	ctx := t.Context()
	itemID := kernel.NewUUID()
	item, err := catalog.NewFixedPriceItem(itemID, "Walnut cutting board", 45.0, true, nil)
	require.NoError(t, err)

	cmd, err := commands.NewCreateOrderCommand(kernel.NewUUID(), validCustomer(t),
		[]services.LineRequest{{ItemID: itemID, Quantity: 1}})
	require.NoError(t, err)

	catalogReader := new(MockCatalogReader)
	catalogReader.On("FindByIDs", ctx, mock.Anything).Return([]*catalog.Item{item}, nil).Once()

	repo := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Add", mock.Anything, mock.AnythingOfType("*order.Order")).Return(errors.New("add error")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	notifier := new(MockNotifier)

	h := commands.NewCreateOrderCommandHandler(factory, catalogReader, notifier, testLogger())
	_, err = h.Handle(ctx, cmd)

	require.Error(t, err)
	notifier.AssertNotCalled(t, "Notify")
	uow.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_CommitError(t *testing.T) {
	ctx := t.Context()
	itemID := kernel.NewUUID()
	item, err := catalog.NewFixedPriceItem(itemID, "Walnut cutting board", 45.0, true, nil)
	require.NoError(t, err)

	cmd, err := commands.NewCreateOrderCommand(kernel.NewUUID(), validCustomer(t),
		[]services.LineRequest{{ItemID: itemID, Quantity: 1}})
	require.NoError(t, err)

	catalogReader := new(MockCatalogReader)
	catalogReader.On("FindByIDs", ctx, mock.Anything).Return([]*catalog.Item{item}, nil).Once()

	repo := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Add", mock.Anything, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(errors.New("commit error")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateOrderCommandHandler(factory, catalogReader, new(MockNotifier), testLogger())
	_, err = h.Handle(ctx, cmd)

	require.Error(t, err)
	uow.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_NotificationFailureDoesNotFailCommand(t *testing.T) {
	ctx := t.Context()
	itemID := kernel.NewUUID()
	item, err := catalog.NewFixedPriceItem(itemID, "Walnut cutting board", 45.0, true, nil)
	require.NoError(t, err)

	cmd, err := commands.NewCreateOrderCommand(kernel.NewUUID(), validCustomer(t),
		[]services.LineRequest{{ItemID: itemID, Quantity: 1}})
	require.NoError(t, err)

	catalogReader := new(MockCatalogReader)
	catalogReader.On("FindByIDs", ctx, mock.Anything).Return([]*catalog.Item{item}, nil).Once()

	repo := new(MockOrderRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(repo).Once()
	repo.On("Add", mock.Anything, mock.AnythingOfType("*order.Order")).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	notifier := new(MockNotifier)
	notifier.On("Notify", ctx, ports.OrderCreatedEvent, mock.AnythingOfType("*order.Order")).
		Return(errors.New("broker down")).Once()

	h := commands.NewCreateOrderCommandHandler(factory, catalogReader, notifier, testLogger())
	result, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	require.NotNil(t, result.Order)
	notifier.AssertExpectations(t)
}
