package commands

import (
	"errors"
	"fmt"

	"craftorders/internal/core/domain/model/kernel"
	"craftorders/internal/pkg/errs"
	"craftorders/internal/pkg/guard"
)

var ErrSetQuoteCommandIsNotConstructed = errors.New(
	"SetQuoteCommand must be created via NewSetQuoteCommand constructor",
)

// SetQuoteCommand represents a staff member issuing a definitive total for an
// order that is waiting in the quoting flow.
type SetQuoteCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	amount  float64
	notes   string

	guard guard.ConstructorGuard
}

// NewSetQuoteCommand creates a command to quote an order. The amount must be
// positive; plausibility flagging (implausibly high amounts) happens in the
// aggregate, not here.
func NewSetQuoteCommand(orderID kernel.UUID, amount float64, notes string) (SetQuoteCommand, error) {
	cmd := SetQuoteCommand{
		notes: notes,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setAmount(amount),
	); err != nil {
		return SetQuoteCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c SetQuoteCommand) Validate() error {
	return c.guard.Validate(ErrSetQuoteCommandIsNotConstructed)
}

// OrderID returns the target order's identifier.
func (c SetQuoteCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Amount returns the proposed definitive total.
func (c SetQuoteCommand) Amount() float64 {
	return c.amount
}

// Notes returns optional staff context shown alongside the quote message.
func (c SetQuoteCommand) Notes() string {
	return c.notes
}

func (c *SetQuoteCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *SetQuoteCommand) setAmount(amount float64) error {
	if amount <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quoteAmount",
			fmt.Errorf("%v is not greater than 0", amount))
	}
	c.amount = amount
	return nil
}
