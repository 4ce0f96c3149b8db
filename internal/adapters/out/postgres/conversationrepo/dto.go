// Package conversationrepo provides data transfer objects and mapping
// functions for conversation persistence. A conversation row owns an
// append-only set of message rows.
package conversationrepo

import (
	"time"

	"craftorders/internal/core/domain/model/conversation"
	"craftorders/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// ConversationDTO represents the database structure for persisting
// conversation aggregates. One conversation per order, enforced by the unique
// index on OrderID.
type ConversationDTO struct {
	ID            uuid.UUID    `gorm:"type:uuid;primaryKey"`
	OrderID       uuid.UUID    `gorm:"type:uuid;not null;uniqueIndex"`
	IsActive      bool         `gorm:"not null;index"`
	LastMessageAt time.Time    `gorm:"not null"`
	CreatedAt     time.Time    `gorm:"not null"`
	Messages      []MessageDTO `gorm:"foreignKey:ConversationID;constraint:OnDelete:CASCADE"`
}

// TableName overrides GORM's default naming convention to use "conversations".
func (ConversationDTO) TableName() string {
	return "conversations"
}

// MessageDTO represents one persisted conversation message.
type MessageDTO struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	ConversationID uuid.UUID `gorm:"type:uuid;not null;index"`
	Sender         string    `gorm:"type:varchar(16);not null"`
	Content        string    `gorm:"type:text;not null"`
	IsQuote        bool      `gorm:"not null"`
	QuoteAmount    *float64  `gorm:"type:numeric(12,2)"`
	IsRead         bool      `gorm:"not null"`
	SentAt         time.Time `gorm:"not null;index"`
}

// TableName overrides GORM's default naming convention to use "messages".
func (MessageDTO) TableName() string {
	return "messages"
}

// fromDomain converts a conversation domain aggregate to its database
// representation.
func fromDomain(aggregate *conversation.Conversation) ConversationDTO {
	conversationID := aggregate.ID().Bytes()
	messages := make([]MessageDTO, 0, len(aggregate.Messages()))

	for _, m := range aggregate.Messages() {
		messages = append(messages, MessageDTO{
			ID:             m.ID().Bytes(),
			ConversationID: conversationID,
			Sender:         m.Sender().String(),
			Content:        m.Content(),
			IsQuote:        m.IsQuote(),
			QuoteAmount:    m.QuoteAmount(),
			IsRead:         m.IsRead(),
			SentAt:         m.SentAt(),
		})
	}

	return ConversationDTO{
		ID:            conversationID,
		OrderID:       aggregate.OrderID().Bytes(),
		IsActive:      aggregate.IsActive(),
		LastMessageAt: aggregate.LastMessageAt(),
		CreatedAt:     aggregate.CreatedAt(),
		Messages:      messages,
	}
}

// toDomain converts a database DTO to a conversation domain aggregate using
// RestoreConversation.
func toDomain(dto ConversationDTO) (*conversation.Conversation, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	messages := make([]conversation.Message, 0, len(dto.Messages))
	for _, msgDto := range dto.Messages {
		m, msgErr := messageToDomain(msgDto)
		if msgErr != nil {
			return nil, msgErr
		}
		messages = append(messages, m)
	}

	return conversation.RestoreConversation(id, orderID, messages, dto.IsActive, dto.LastMessageAt, dto.CreatedAt)
}

func messageToDomain(dto MessageDTO) (conversation.Message, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return conversation.Message{}, err
	}

	sender, err := conversation.SenderFromString(dto.Sender)
	if err != nil {
		return conversation.Message{}, err
	}

	return conversation.RestoreMessage(id, sender, dto.Content, dto.IsQuote, dto.QuoteAmount, dto.IsRead, dto.SentAt)
}
