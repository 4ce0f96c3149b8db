package queries

import (
	"errors"
	"time"

	"craftorders/internal/core/domain/model/kernel"
	"craftorders/internal/pkg/guard"
)

var ErrGetConversationHistoryQueryIsNotConstructed = errors.New(
	"GetConversationHistoryQuery must be created via NewGetConversationHistoryQuery constructor",
)

// GetConversationHistoryQuery retrieves an order's full message history in
// chronological order. Connecting clients replay this before receiving live
// events.
type GetConversationHistoryQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetConversationHistoryQuery creates a query for an order's conversation
// history.
func NewGetConversationHistoryQuery(orderID kernel.UUID) (GetConversationHistoryQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetConversationHistoryQuery{}, err
	}

	return GetConversationHistoryQuery{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetConversationHistoryQuery) Validate() error {
	return q.guard.Validate(ErrGetConversationHistoryQueryIsNotConstructed)
}

// OrderID returns the order whose conversation is requested.
func (q GetConversationHistoryQuery) OrderID() kernel.UUID {
	return q.orderID
}

// MessageResponse represents one message in the history.
type MessageResponse struct {
	ID          kernel.UUID
	Sender      string
	Content     string
	IsQuote     bool
	QuoteAmount *float64
	IsRead      bool
	SentAt      time.Time
}

// GetConversationHistoryQueryResponse represents the conversation and its
// messages, oldest first.
type GetConversationHistoryQueryResponse struct {
	ConversationID kernel.UUID
	OrderID        kernel.UUID
	IsActive       bool
	Messages       []MessageResponse
}
