package ports

import (
	"context"
	"time"

	"craftorders/internal/core/domain/model/conversation"
	"craftorders/internal/core/domain/model/kernel"
)

// ConversationRepository defines the persistence contract for conversation
// aggregates and their append-only message logs.
type ConversationRepository interface {
	// Add persists a new conversation aggregate to storage.
	Add(ctx context.Context, aggregate *conversation.Conversation) error

	// Update persists changes to an existing conversation, including newly
	// appended messages and read-flag flips.
	Update(ctx context.Context, aggregate *conversation.Conversation) error

	// Get retrieves a conversation by its unique identifier.
	// Returns errs.ObjectNotFoundError when no such conversation exists.
	Get(ctx context.Context, id kernel.UUID) (*conversation.Conversation, error)

	// GetByOrderID retrieves the conversation attached to an order.
	// Returns errs.ObjectNotFoundError when the order has no conversation,
	// which callers use to create one lazily on first message.
	GetByOrderID(ctx context.Context, orderID kernel.UUID) (*conversation.Conversation, error)

	// GetActiveIdleSince retrieves all active conversations whose last
	// activity is older than the cutoff. Used by the archival job.
	GetActiveIdleSince(ctx context.Context, cutoff time.Time) ([]*conversation.Conversation, error)
}
