package commands

import (
	"errors"

	"craftorders/internal/core/domain/model/kernel"
	"craftorders/internal/core/domain/model/order"
	"craftorders/internal/core/domain/services"
	"craftorders/internal/pkg/errs"
	"craftorders/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrLinesAreRequired = errors.New("at least one order line is required")
)

// CreateOrderCommand represents a customer's request to place an order.
// It carries validated contact details and the requested lines; item
// resolution and pricing happen in the handler.
//
// Customer-field and line validation happens here, before any catalog lookup,
// so malformed input never reaches the pricing flow.
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID  kernel.UUID
	customer order.Customer
	lines    []services.LineRequest

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to place a new order.
// Validates the order id, the customer value object, and each line's item id
// and quantity range. Returns an error if any validation fails.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	customer order.Customer,
	lines []services.LineRequest,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setCustomer(customer),
		cmd.setLines(lines),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the identifier the new order will carry.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Customer returns the validated customer contact details.
func (c CreateOrderCommand) Customer() order.Customer {
	return c.customer
}

// Lines returns the requested order lines.
func (c CreateOrderCommand) Lines() []services.LineRequest {
	return c.lines
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setCustomer(customer order.Customer) error {
	if err := customer.Validate(); err != nil {
		return err
	}
	c.customer = customer
	return nil
}

func (c *CreateOrderCommand) setLines(lines []services.LineRequest) error {
	if len(lines) == 0 {
		return ErrLinesAreRequired
	}

	for _, line := range lines {
		if err := line.ItemID.Validate(); err != nil {
			return err
		}
		if line.Quantity < order.MinLineQuantity || line.Quantity > order.MaxLineQuantity {
			return errs.NewValueIsOutOfRangeError("quantity", line.Quantity, order.MinLineQuantity, order.MaxLineQuantity)
		}
	}

	c.lines = lines
	return nil
}
