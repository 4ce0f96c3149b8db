package commands

import (
	"errors"

	"craftorders/internal/core/domain/model/conversation"
	"craftorders/internal/core/domain/model/kernel"
	"craftorders/internal/pkg/guard"
)

var ErrMarkMessageReadCommandIsNotConstructed = errors.New(
	"MarkMessageReadCommand must be created via NewMarkMessageReadCommand constructor",
)

// MarkMessageReadCommand represents one side acknowledging that it has read a
// message written by the other side.
type MarkMessageReadCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	messageID kernel.UUID
	reader    conversation.Sender

	guard guard.ConstructorGuard
}

// NewMarkMessageReadCommand creates a command to flip a message's read flag.
func NewMarkMessageReadCommand(
	orderID kernel.UUID,
	messageID kernel.UUID,
	reader conversation.Sender,
) (MarkMessageReadCommand, error) {
	cmd := MarkMessageReadCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setMessageID(messageID),
		cmd.setReader(reader),
	); err != nil {
		return MarkMessageReadCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c MarkMessageReadCommand) Validate() error {
	return c.guard.Validate(ErrMarkMessageReadCommandIsNotConstructed)
}

// OrderID returns the order whose conversation holds the message.
func (c MarkMessageReadCommand) OrderID() kernel.UUID {
	return c.orderID
}

// MessageID returns the message being acknowledged.
func (c MarkMessageReadCommand) MessageID() kernel.UUID {
	return c.messageID
}

// Reader returns the side that read the message.
func (c MarkMessageReadCommand) Reader() conversation.Sender {
	return c.reader
}

func (c *MarkMessageReadCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *MarkMessageReadCommand) setMessageID(messageID kernel.UUID) error {
	if err := messageID.Validate(); err != nil {
		return err
	}
	c.messageID = messageID
	return nil
}

func (c *MarkMessageReadCommand) setReader(reader conversation.Sender) error {
	if err := reader.Validate(); err != nil {
		return err
	}
	c.reader = reader
	return nil
}
