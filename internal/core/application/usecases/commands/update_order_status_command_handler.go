package commands

import (
	"context"
	"log/slog"

	"craftorders/internal/core/domain/model/order"
	"craftorders/internal/core/ports"
)

// UpdateOrderStatusCommandHandler moves an order along its lifecycle.
// Illegal transitions surface as conflicts and leave the order unchanged.
type UpdateOrderStatusCommandHandler struct {
	uowFactory OrderUoWFactory
	notifier   ports.Notifier
	logger     *slog.Logger
}

// NewUpdateOrderStatusCommandHandler creates a handler for status changes.
func NewUpdateOrderStatusCommandHandler(
	uowFactory OrderUoWFactory,
	notifier ports.Notifier,
	logger *slog.Logger,
) UpdateOrderStatusCommandHandler {
	return UpdateOrderStatusCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		logger:     logger.With("component", "update_order_status_handler"),
	}
}

// Handle loads the order, delegates the transition to the state machine, and
// persists the result. Returns errs.ObjectNotFoundError when the order does
// not exist and *order.InvalidStatusTransitionError on conflict.
func (h *UpdateOrderStatusCommandHandler) Handle(ctx context.Context, cmd UpdateOrderStatusCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()
	aggregate, err := repo.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	if err = aggregate.ChangeStatus(cmd.NewStatus()); err != nil {
		return nil, err
	}

	if err = repo.Update(ctx, aggregate); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	if notifyErr := h.notifier.Notify(ctx, ports.StatusChangedEvent, aggregate); notifyErr != nil {
		h.logger.WarnContext(ctx, "Status change notification failed",
			"order_id", aggregate.ID().String(), "status", aggregate.Status().String(), "error", notifyErr)
	}

	return aggregate, nil
}
