// Package realtime coordinates websocket connections for order negotiation.
//
// Each order maps to one room. Clients authenticate with a signed token at
// handshake, join rooms explicitly, and exchange typed events. Messages are
// persisted through the command layer before any fan-out, so a delivered
// event always refers to a durable message.
package realtime

import (
	"encoding/json"
	"time"
)

// Inbound event types sent by clients.
const (
	EventJoin         = "join"
	EventLeave        = "leave"
	EventSendMessage  = "send_message"
	EventMessageRead  = "message_read"
	EventTypingStart  = "typing_start"
	EventTypingStop   = "typing_stop"
	EventStatusUpdate = "status_update"
)

// Outbound event types sent to clients.
const (
	EventNewMessage       = "new_message"
	EventMessageSent      = "message_sent"
	EventMessageDelivered = "message_delivered"
	EventMessageError     = "message_error"
	EventUserTypingStart  = "user_typing_start"
	EventUserTypingStop   = "user_typing_stop"
	EventUserStatusUpdate = "user_status_update"
	EventUserJoined       = "user_joined"
	EventUserLeft         = "user_left"
	EventError            = "error"
)

// InboundEnvelope is the wire frame read from a client. The payload stays raw
// until the event type selects a concrete shape.
type InboundEnvelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// OutboundEnvelope is the wire frame written to a client.
type OutboundEnvelope struct {
	Type    string `json:"type"`
	Payload any    `json:"payload,omitempty"`
}

// RoomPayload carries the room reference of join, leave and typing events.
type RoomPayload struct {
	OrderID string `json:"order_id"`
}

// SendMessagePayload is the body of a send_message event.
type SendMessagePayload struct {
	OrderID     string   `json:"order_id"`
	Content     string   `json:"content"`
	IsQuote     bool     `json:"is_quote,omitempty"`
	QuoteAmount *float64 `json:"quote_amount,omitempty"`
}

// MessageReadPayload is the body of a message_read event.
type MessageReadPayload struct {
	OrderID   string `json:"order_id"`
	MessageID string `json:"message_id"`
}

// StatusUpdatePayload is the body of a status_update presence event.
type StatusUpdatePayload struct {
	OrderID string `json:"order_id"`
	Status  string `json:"status"`
}

// MessagePayload is the persisted message as fanned out to a room. ClientID
// echoes the sender's connection id so clients can correlate their own echo.
type MessagePayload struct {
	ID             string    `json:"id"`
	ConversationID string    `json:"conversation_id"`
	OrderID        string    `json:"order_id"`
	Sender         string    `json:"sender"`
	SenderID       string    `json:"sender_id"`
	SenderName     string    `json:"sender_name"`
	Content        string    `json:"content"`
	IsQuote        bool      `json:"is_quote"`
	QuoteAmount    *float64  `json:"quote_amount,omitempty"`
	SentAt         time.Time `json:"sent_at"`
}

// MessageSentPayload acknowledges durable persistence back to the sender.
// Delivered reports whether at least one other participant was connected to
// the room at fan-out time.
type MessageSentPayload struct {
	MessageID string    `json:"message_id"`
	OrderID   string    `json:"order_id"`
	Delivered bool      `json:"delivered"`
	Timestamp time.Time `json:"timestamp"`
}

// MessageDeliveredPayload is the delivery receipt fanned out to room peers,
// kept separate from new_message so clients can render receipts without
// re-rendering content.
type MessageDeliveredPayload struct {
	MessageID string    `json:"message_id"`
	OrderID   string    `json:"order_id"`
	Timestamp time.Time `json:"timestamp"`
}

// MessageReadBroadcast notifies a room, reader included, that a participant
// read a message.
type MessageReadBroadcast struct {
	OrderID   string    `json:"order_id"`
	MessageID string    `json:"message_id"`
	ReadBy    string    `json:"read_by"`
	ReadAt    time.Time `json:"read_at"`
}

// PresencePayload describes a participant entering, leaving or updating
// presence in a room. Status and Timestamp are set only on user_status_update.
type PresencePayload struct {
	OrderID     string    `json:"order_id"`
	UserID      string    `json:"user_id"`
	DisplayName string    `json:"display_name"`
	Role        string    `json:"role"`
	Status      string    `json:"status,omitempty"`
	Timestamp   time.Time `json:"timestamp,omitzero"`
}

// ErrorPayload reports a rejected event back to its sender.
type ErrorPayload struct {
	Event   string `json:"event"`
	Message string `json:"message"`
}
