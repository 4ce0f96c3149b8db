package queries

import (
	"context"

	"craftorders/internal/core/domain/model/kernel"
	"craftorders/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetConversationHistoryQueryHandler retrieves an order's conversation and
// message log from the database.
type GetConversationHistoryQueryHandler struct {
	db *gorm.DB
}

// NewGetConversationHistoryQueryHandler creates a handler for conversation
// history queries.
func NewGetConversationHistoryQueryHandler(db *gorm.DB) GetConversationHistoryQueryHandler {
	return GetConversationHistoryQueryHandler{db: db}
}

// Handle executes the query. Returns errs.ObjectNotFoundError when the order
// has no conversation; an order without messages simply has none yet.
func (h GetConversationHistoryQueryHandler) Handle(
	ctx context.Context,
	query GetConversationHistoryQuery,
) (GetConversationHistoryQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetConversationHistoryQueryResponse{}, err
	}

	var convRow struct {
		ID       uuid.UUID
		IsActive bool
	}

	result := h.db.WithContext(ctx).Raw(`
		SELECT id, is_active
		FROM conversations
		WHERE order_id = ?
	`, query.OrderID().Bytes()).Scan(&convRow)
	if result.Error != nil {
		return GetConversationHistoryQueryResponse{}, result.Error
	}
	if result.RowsAffected == 0 {
		return GetConversationHistoryQueryResponse{},
			errs.NewObjectNotFoundError("conversation for order", query.OrderID().String())
	}

	conversationID, err := kernel.UUIDFromBytes(convRow.ID[:])
	if err != nil {
		return GetConversationHistoryQueryResponse{}, err
	}

	messages, err := h.loadMessages(ctx, convRow.ID)
	if err != nil {
		return GetConversationHistoryQueryResponse{}, err
	}

	return GetConversationHistoryQueryResponse{
		ConversationID: conversationID,
		OrderID:        query.OrderID(),
		IsActive:       convRow.IsActive,
		Messages:       messages,
	}, nil
}

func (h GetConversationHistoryQueryHandler) loadMessages(
	ctx context.Context, conversationID uuid.UUID,
) ([]MessageResponse, error) {
	messages := make([]MessageResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			sender,
			content,
			is_quote,
			quote_amount,
			is_read,
			sent_at
		FROM messages
		WHERE conversation_id = ?
		ORDER BY sent_at, id
	`, conversationID).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var message MessageResponse
		var id uuid.UUID

		err = rows.Scan(
			&id,
			&message.Sender,
			&message.Content,
			&message.IsQuote,
			&message.QuoteAmount,
			&message.IsRead,
			&message.SentAt,
		)
		if err != nil {
			return nil, err
		}

		messageID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		message.ID = messageID
		messages = append(messages, message)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return messages, nil
}
