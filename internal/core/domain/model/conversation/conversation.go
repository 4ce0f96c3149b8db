package conversation

import (
	"errors"
	"time"

	"craftorders/internal/core/domain/model/kernel"
	"craftorders/internal/pkg/errs"
)

// ErrConversationIsNotConstructed is returned when a Conversation instance was
// not created through NewConversation or RestoreConversation.
var ErrConversationIsNotConstructed = errors.New("Conversation must be created via NewConversation constructor")

// Conversation is the per-order negotiation thread between staff and
// customer. It is the aggregate root owning the append-only message log and
// its read/unread bookkeeping.
//
// A conversation is 1:1 with an order that has custom items. It is created
// either when such an order is placed or lazily on the first message, is
// archived or reactivated by staff action, and is never deleted.
type Conversation struct {
	id      kernel.UUID
	orderID kernel.UUID

	// messages in posting order; appended only
	messages []Message

	isActive      bool
	lastMessageAt time.Time
	createdAt     time.Time

	isConstructed bool
}

// NewConversation creates an empty, active conversation for the given order.
func NewConversation(id kernel.UUID, orderID kernel.UUID) (*Conversation, error) {
	if err := errors.Join(id.Validate(), orderID.Validate()); err != nil {
		return nil, err
	}

	return &Conversation{
		id:            id,
		orderID:       orderID,
		isActive:      true,
		createdAt:     time.Now().UTC(),
		isConstructed: true,
	}, nil
}

// RestoreConversation reconstructs a conversation from persistence.
// Used by repository adapters only.
func RestoreConversation(
	id kernel.UUID,
	orderID kernel.UUID,
	messages []Message,
	isActive bool,
	lastMessageAt time.Time,
	createdAt time.Time,
) (*Conversation, error) {
	if err := errors.Join(id.Validate(), orderID.Validate()); err != nil {
		return nil, err
	}

	for _, m := range messages {
		if err := m.Validate(); err != nil {
			return nil, err
		}
	}

	c := &Conversation{
		id:            id,
		orderID:       orderID,
		messages:      make([]Message, len(messages)),
		isActive:      isActive,
		lastMessageAt: lastMessageAt,
		createdAt:     createdAt,
		isConstructed: true,
	}
	copy(c.messages, messages)
	return c, nil
}

// Validate ensures the Conversation was properly constructed.
func (c *Conversation) Validate() error {
	if c == nil || !c.isConstructed {
		return ErrConversationIsNotConstructed
	}
	return nil
}

// ID returns the conversation's unique identifier.
func (c *Conversation) ID() kernel.UUID {
	return c.id
}

// OrderID returns the order this conversation belongs to.
func (c *Conversation) OrderID() kernel.UUID {
	return c.orderID
}

// Messages returns the message log in posting order. The slice is a copy.
func (c *Conversation) Messages() []Message {
	out := make([]Message, len(c.messages))
	copy(out, c.messages)
	return out
}

// IsActive reports whether the conversation accepts display in active views.
// Archived conversations still accept messages and reactivate on post.
func (c *Conversation) IsActive() bool {
	return c.isActive
}

// LastMessageAt returns the timestamp of the latest message, or the zero time
// when no message has been posted yet.
func (c *Conversation) LastMessageAt() time.Time {
	return c.lastMessageAt
}

// CreatedAt returns the creation timestamp.
func (c *Conversation) CreatedAt() time.Time {
	return c.createdAt
}

// LastActivityAt returns the latest of creation and last message time.
// The archival job uses this to find idle conversations.
func (c *Conversation) LastActivityAt() time.Time {
	if c.lastMessageAt.After(c.createdAt) {
		return c.lastMessageAt
	}
	return c.createdAt
}

// PostMessage appends a plain message to the log. Posting to an archived
// conversation reactivates it.
//
// Returns the appended message so callers can fan it out to connected peers.
func (c *Conversation) PostMessage(sender Sender, content string) (Message, error) {
	return c.post(sender, content, false, nil)
}

// PostQuote appends a quote message carrying a proposed total.
// The amount must be positive.
func (c *Conversation) PostQuote(sender Sender, content string, amount float64) (Message, error) {
	return c.post(sender, content, true, &amount)
}

func (c *Conversation) post(sender Sender, content string, isQuote bool, quoteAmount *float64) (Message, error) {
	now := time.Now().UTC()
	m, err := newMessage(kernel.NewUUID(), sender, content, isQuote, quoteAmount, now)
	if err != nil {
		return Message{}, err
	}

	c.messages = append(c.messages, m)
	c.lastMessageAt = now
	c.isActive = true
	return m, nil
}

// MarkMessageRead flips the isRead flag of the identified message, recording
// that reader has seen it. Only messages written by the opposite side are
// affected; a reader cannot mark its own messages.
//
// Returns:
//   - the updated message on success
//   - errs.ObjectNotFoundError when no such message exists in this conversation
func (c *Conversation) MarkMessageRead(messageID kernel.UUID, reader Sender) (Message, error) {
	if err := reader.Validate(); err != nil {
		return Message{}, err
	}

	for i := range c.messages {
		if !c.messages[i].id.IsEqual(messageID) {
			continue
		}

		if c.messages[i].sender != reader {
			c.messages[i].isRead = true
		}
		return c.messages[i], nil
	}

	return Message{}, errs.NewObjectNotFoundError("messageId", messageID.String())
}

// UnreadCountFor returns how many messages written by the opposite side the
// reader has not yet read.
func (c *Conversation) UnreadCountFor(reader Sender) int {
	count := 0
	for _, m := range c.messages {
		if m.sender == reader.Other() && !m.isRead {
			count++
		}
	}
	return count
}

// Archive deactivates the conversation. Staff action; idempotent.
func (c *Conversation) Archive() {
	c.isActive = false
}

// Reactivate reopens an archived conversation. Staff action; idempotent.
func (c *Conversation) Reactivate() {
	c.isActive = true
}
