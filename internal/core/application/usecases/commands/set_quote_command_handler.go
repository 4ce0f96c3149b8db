package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"craftorders/internal/core/domain/model/conversation"
	"craftorders/internal/core/domain/model/kernel"
	"craftorders/internal/core/domain/model/order"
	"craftorders/internal/core/ports"
	"craftorders/internal/pkg/errs"
)

// SetQuoteResult is returned after a quote is successfully issued.
// Flagged marks amounts above the plausibility threshold; the quote is
// accepted either way.
type SetQuoteResult struct {
	Order   *order.Order
	Flagged bool
}

// SetQuoteCommandHandler issues a staff quote: moves the order from
// quote_needed to quoted, sets its amounts, and records the quote as a
// flagged message in the order's conversation.
type SetQuoteCommandHandler struct {
	uowFactory UoWFactory
	notifier   ports.Notifier
	logger     *slog.Logger
}

// NewSetQuoteCommandHandler creates a handler for quote issuance.
func NewSetQuoteCommandHandler(uowFactory UoWFactory, notifier ports.Notifier, logger *slog.Logger) SetQuoteCommandHandler {
	return SetQuoteCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		logger:     logger.With("component", "set_quote_handler"),
	}
}

// Handle processes the quote command. Quoting an order that is not in
// quote_needed status fails with *order.QuoteNotRequiredError and changes
// nothing. The quote message is appended to the order's conversation, which
// is created lazily if the order never had one.
func (h *SetQuoteCommandHandler) Handle(ctx context.Context, cmd SetQuoteCommand) (SetQuoteResult, error) {
	if err := cmd.Validate(); err != nil {
		return SetQuoteResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return SetQuoteResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return SetQuoteResult{}, err
	}

	flagged, err := aggregate.SetQuote(cmd.Amount())
	if err != nil {
		return SetQuoteResult{}, err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return SetQuoteResult{}, err
	}

	if err = h.recordQuoteMessage(ctx, uow, aggregate, cmd); err != nil {
		return SetQuoteResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return SetQuoteResult{}, err
	}

	if flagged {
		h.logger.WarnContext(ctx, "Quote flagged as implausibly high",
			"order_id", aggregate.ID().String(), "amount", cmd.Amount())
	}

	if notifyErr := h.notifier.Notify(ctx, ports.QuoteIssuedEvent, aggregate); notifyErr != nil {
		h.logger.WarnContext(ctx, "Quote notification failed",
			"order_id", aggregate.ID().String(), "error", notifyErr)
	}

	return SetQuoteResult{Order: aggregate, Flagged: flagged}, nil
}

// recordQuoteMessage appends the quote to the order's conversation as a
// flagged message, creating the conversation when the order never had one.
func (h *SetQuoteCommandHandler) recordQuoteMessage(
	ctx context.Context,
	uow UoW,
	aggregate *order.Order,
	cmd SetQuoteCommand,
) error {
	convRepo := uow.ConversationRepository()

	conv, err := convRepo.GetByOrderID(ctx, aggregate.ID())
	created := false
	if err != nil {
		if !errors.Is(err, errs.ErrObjectNotFound) {
			return err
		}
		conv, err = conversation.NewConversation(kernel.NewUUID(), aggregate.ID())
		if err != nil {
			return err
		}
		created = true
	}

	content := cmd.Notes()
	if content == "" {
		content = fmt.Sprintf("Quote issued: %.2f", cmd.Amount())
	}

	if _, err = conv.PostQuote(conversation.SenderStaff, content, cmd.Amount()); err != nil {
		return err
	}

	if created {
		return convRepo.Add(ctx, conv)
	}
	return convRepo.Update(ctx, conv)
}
