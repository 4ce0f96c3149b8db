package commands

import (
	"errors"
	"fmt"
	"strings"

	"craftorders/internal/core/domain/model/conversation"
	"craftorders/internal/core/domain/model/kernel"
	"craftorders/internal/pkg/errs"
	"craftorders/internal/pkg/guard"
)

var ErrPostMessageCommandIsNotConstructed = errors.New(
	"PostMessageCommand must be created via NewPostMessageCommand constructor",
)

// PostMessageCommand represents one side of the negotiation appending a
// message to an order's conversation. Both the realtime coordinator and the
// HTTP layer issue this command; durability always goes through here.
type PostMessageCommand struct { //nolint:recvcheck //using for validation
	orderID     kernel.UUID
	sender      conversation.Sender
	content     string
	isQuote     bool
	quoteAmount *float64

	guard guard.ConstructorGuard
}

// NewPostMessageCommand creates a command to append a message.
// Content must be non-empty after trimming; quote messages additionally
// require a positive amount.
func NewPostMessageCommand(
	orderID kernel.UUID,
	sender conversation.Sender,
	content string,
	isQuote bool,
	quoteAmount *float64,
) (PostMessageCommand, error) {
	cmd := PostMessageCommand{
		isQuote: isQuote,
		guard:   guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setSender(sender),
		cmd.setContent(content),
		cmd.setQuoteAmount(isQuote, quoteAmount),
	); err != nil {
		return PostMessageCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c PostMessageCommand) Validate() error {
	return c.guard.Validate(ErrPostMessageCommandIsNotConstructed)
}

// OrderID returns the order whose conversation receives the message.
func (c PostMessageCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Sender returns which side wrote the message.
func (c PostMessageCommand) Sender() conversation.Sender {
	return c.sender
}

// Content returns the trimmed message text.
func (c PostMessageCommand) Content() string {
	return c.content
}

// IsQuote reports whether the message proposes a total.
func (c PostMessageCommand) IsQuote() bool {
	return c.isQuote
}

// QuoteAmount returns the proposed total for quote messages, nil otherwise.
func (c PostMessageCommand) QuoteAmount() *float64 {
	return c.quoteAmount
}

func (c *PostMessageCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *PostMessageCommand) setSender(sender conversation.Sender) error {
	if err := sender.Validate(); err != nil {
		return err
	}
	c.sender = sender
	return nil
}

func (c *PostMessageCommand) setContent(content string) error {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return errs.NewValueIsRequiredError("content")
	}
	c.content = trimmed
	return nil
}

func (c *PostMessageCommand) setQuoteAmount(isQuote bool, amount *float64) error {
	if !isQuote {
		if amount != nil {
			return errs.NewValueIsInvalidErrorWithCause("quoteAmount",
				errors.New("only quote messages carry an amount"))
		}
		return nil
	}

	if amount == nil || *amount <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quoteAmount",
			fmt.Errorf("quote messages require a positive amount"))
	}

	c.quoteAmount = amount
	return nil
}
