package commands

import (
	"context"
	"log/slog"

	"craftorders/internal/core/domain/model/conversation"
	"craftorders/internal/core/domain/model/kernel"
	"craftorders/internal/core/domain/model/order"
	"craftorders/internal/core/domain/services"
	"craftorders/internal/core/ports"
)

// CreateOrderResult is returned to the HTTP layer after successful placement.
// RequiresQuote mirrors the order's hasCustomItems flag so clients can route
// the customer into the negotiation flow immediately.
type CreateOrderResult struct {
	Order         *order.Order
	RequiresQuote bool
}

// CreateOrderCommandHandler handles the business logic for order placement.
// Prices the requested lines against a single catalog snapshot, derives the
// initial status, and seeds a conversation when custom items are present.
type CreateOrderCommandHandler struct {
	uowFactory UoWFactory
	catalog    ports.CatalogReader
	calculator services.PricingCalculator
	notifier   ports.Notifier
	logger     *slog.Logger
}

// NewCreateOrderCommandHandler creates a handler for order placement.
func NewCreateOrderCommandHandler(
	uowFactory UoWFactory,
	catalogReader ports.CatalogReader,
	notifier ports.Notifier,
	logger *slog.Logger,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		catalog:    catalogReader,
		calculator: services.NewPricingCalculator(),
		notifier:   notifier,
		logger:     logger.With("component", "create_order_handler"),
	}
}

// Handle processes the order placement command.
//
// The catalog is read once; validation and pricing observe that single
// snapshot, and nothing is persisted unless every line prices successfully.
// For orders with custom items an empty conversation is created in the same
// transaction.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (CreateOrderResult, error) {
	if err := cmd.Validate(); err != nil {
		return CreateOrderResult{}, err
	}

	ids := make([]kernel.UUID, 0, len(cmd.Lines()))
	for _, line := range cmd.Lines() {
		ids = append(ids, line.ItemID)
	}

	items, err := h.catalog.FindByIDs(ctx, ids)
	if err != nil {
		return CreateOrderResult{}, err
	}

	pricing, err := h.calculator.Price(cmd.Lines(), items)
	if err != nil {
		return CreateOrderResult{}, err
	}

	newOrder, err := order.NewOrder(
		cmd.OrderID(),
		cmd.Customer(),
		pricing.Lines,
		pricing.TotalAmount,
		pricing.EstimatedAmount,
		pricing.HasCustomItems,
	)
	if err != nil {
		return CreateOrderResult{}, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return CreateOrderResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, newOrder); err != nil {
		return CreateOrderResult{}, err
	}

	if pricing.HasCustomItems {
		conv, convErr := conversation.NewConversation(kernel.NewUUID(), newOrder.ID())
		if convErr != nil {
			return CreateOrderResult{}, convErr
		}
		if convErr = uow.ConversationRepository().Add(ctx, conv); convErr != nil {
			return CreateOrderResult{}, convErr
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return CreateOrderResult{}, err
	}

	if notifyErr := h.notifier.Notify(ctx, ports.OrderCreatedEvent, newOrder); notifyErr != nil {
		h.logger.WarnContext(ctx, "Order creation notification failed",
			"order_id", newOrder.ID().String(), "error", notifyErr)
	}

	return CreateOrderResult{
		Order:         newOrder,
		RequiresQuote: pricing.HasCustomItems,
	}, nil
}
