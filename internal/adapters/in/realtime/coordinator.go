package realtime

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"craftorders/internal/core/application/usecases/commands"
	"craftorders/internal/core/domain/model/kernel"
)

// Coordinator dispatches inbound client events: it persists messages through
// the command layer, then fans the durable result out to room members. The
// room snapshot is taken after persistence, so only participants connected at
// commit time receive the broadcast.
type Coordinator struct {
	registry    *Registry
	postMessage commands.PostMessageCommandHandler
	markRead    commands.MarkMessageReadCommandHandler
	logger      *slog.Logger
}

// NewCoordinator creates a coordinator around the shared registry and the
// message command handlers.
func NewCoordinator(
	registry *Registry,
	postMessage commands.PostMessageCommandHandler,
	markRead commands.MarkMessageReadCommandHandler,
	logger *slog.Logger,
) *Coordinator {
	return &Coordinator{
		registry:    registry,
		postMessage: postMessage,
		markRead:    markRead,
		logger:      logger.With("component", "realtime_coordinator"),
	}
}

// Serve registers the client and pumps its inbound events until the
// connection drops. Always announces the departure from every joined room on
// the way out.
func (co *Coordinator) Serve(ctx context.Context, client *Client) {
	co.registry.Register(client)
	go client.WritePump()

	defer co.Disconnect(client)

	for {
		env, err := client.Read()
		if err != nil {
			return
		}
		co.Dispatch(ctx, client, env)
	}
}

// Dispatch routes one inbound event to its handler.
func (co *Coordinator) Dispatch(ctx context.Context, client *Client, env InboundEnvelope) {
	switch env.Type {
	case EventJoin:
		co.handleJoin(client, env.Payload)
	case EventLeave:
		co.handleLeave(client, env.Payload)
	case EventSendMessage:
		co.handleSendMessage(ctx, client, env.Payload)
	case EventMessageRead:
		co.handleMessageRead(ctx, client, env.Payload)
	case EventTypingStart:
		co.relayTyping(client, env.Payload, EventUserTypingStart)
	case EventTypingStop:
		co.relayTyping(client, env.Payload, EventUserTypingStop)
	case EventStatusUpdate:
		co.handleStatusUpdate(client, env.Payload)
	default:
		co.sendError(client, env.Type, "unknown event type")
	}
}

// Disconnect removes the client from the registry and announces its
// departure in every room it had joined.
func (co *Coordinator) Disconnect(client *Client) {
	left := co.registry.Unregister(client)
	client.Close()

	for _, roomID := range left {
		co.broadcastPresence(roomID, client, EventUserLeft)
	}
}

func (co *Coordinator) handleJoin(client *Client, payload json.RawMessage) {
	var req RoomPayload
	if err := json.Unmarshal(payload, &req); err != nil || req.OrderID == "" {
		co.sendError(client, EventJoin, "order_id is required")
		return
	}

	co.registry.Join(req.OrderID, client)
	co.broadcastPresence(req.OrderID, client, EventUserJoined)
}

func (co *Coordinator) handleLeave(client *Client, payload json.RawMessage) {
	var req RoomPayload
	if err := json.Unmarshal(payload, &req); err != nil || req.OrderID == "" {
		co.sendError(client, EventLeave, "order_id is required")
		return
	}

	co.registry.Leave(req.OrderID, client)
	co.broadcastPresence(req.OrderID, client, EventUserLeft)
}

func (co *Coordinator) handleSendMessage(ctx context.Context, client *Client, payload json.RawMessage) {
	var req SendMessagePayload
	if err := json.Unmarshal(payload, &req); err != nil {
		co.sendMessageError(client, "malformed payload")
		return
	}

	orderID, err := kernel.UUIDFromString(req.OrderID)
	if err != nil {
		co.sendMessageError(client, "order_id is not a valid id")
		return
	}

	cmd, err := commands.NewPostMessageCommand(orderID, client.Identity().Role, req.Content, req.IsQuote, req.QuoteAmount)
	if err != nil {
		co.sendMessageError(client, err.Error())
		return
	}

	result, err := co.postMessage.Handle(ctx, cmd)
	if err != nil {
		co.logger.WarnContext(ctx, "Message persistence failed",
			"order_id", req.OrderID, "sender", client.ID(), "error", err)
		co.sendMessageError(client, err.Error())
		return
	}

	msg := result.Message
	broadcast := OutboundEnvelope{
		Type: EventNewMessage,
		Payload: MessagePayload{
			ID:             msg.ID().String(),
			ConversationID: result.ConversationID.String(),
			OrderID:        req.OrderID,
			Sender:         msg.Sender().String(),
			SenderID:       client.ID(),
			SenderName:     client.Identity().DisplayName,
			Content:        msg.Content(),
			IsQuote:        msg.IsQuote(),
			QuoteAmount:    msg.QuoteAmount(),
			SentAt:         msg.SentAt(),
		},
	}

	// Snapshot after the commit: only peers connected once the message is
	// durable count as recipients.
	delivered := co.broadcastToOthers(req.OrderID, client, broadcast) > 0

	client.Enqueue(OutboundEnvelope{
		Type: EventMessageSent,
		Payload: MessageSentPayload{
			MessageID: msg.ID().String(),
			OrderID:   req.OrderID,
			Delivered: delivered,
			Timestamp: msg.SentAt(),
		},
	})

	if delivered {
		co.broadcastToOthers(req.OrderID, client, OutboundEnvelope{
			Type: EventMessageDelivered,
			Payload: MessageDeliveredPayload{
				MessageID: msg.ID().String(),
				OrderID:   req.OrderID,
				Timestamp: msg.SentAt(),
			},
		})
	}
}

func (co *Coordinator) handleMessageRead(ctx context.Context, client *Client, payload json.RawMessage) {
	var req MessageReadPayload
	if err := json.Unmarshal(payload, &req); err != nil || req.OrderID == "" || req.MessageID == "" {
		co.sendError(client, EventMessageRead, "order_id and message_id are required")
		return
	}

	orderID, err := kernel.UUIDFromString(req.OrderID)
	if err != nil {
		co.sendError(client, EventMessageRead, "order_id is not a valid id")
		return
	}

	messageID, err := kernel.UUIDFromString(req.MessageID)
	if err != nil {
		co.sendError(client, EventMessageRead, "message_id is not a valid id")
		return
	}

	cmd, err := commands.NewMarkMessageReadCommand(orderID, messageID, client.Identity().Role)
	if err != nil {
		co.sendError(client, EventMessageRead, err.Error())
		return
	}

	if _, err := co.markRead.Handle(ctx, cmd); err != nil {
		co.sendError(client, EventMessageRead, err.Error())
		return
	}

	// The receipt goes to the whole room, the reader included, so every
	// participant's unread counters stay in sync.
	receipt := OutboundEnvelope{
		Type: EventMessageRead,
		Payload: MessageReadBroadcast{
			OrderID:   req.OrderID,
			MessageID: req.MessageID,
			ReadBy:    client.Identity().Role.String(),
			ReadAt:    time.Now().UTC(),
		},
	}
	co.broadcastToOthers(req.OrderID, client, receipt)
	client.Enqueue(receipt)
}

func (co *Coordinator) relayTyping(client *Client, payload json.RawMessage, event string) {
	var req RoomPayload
	if err := json.Unmarshal(payload, &req); err != nil || req.OrderID == "" {
		return
	}
	if !co.registry.InRoom(req.OrderID, client) {
		return
	}

	co.broadcastPresence(req.OrderID, client, event)
}

func (co *Coordinator) handleStatusUpdate(client *Client, payload json.RawMessage) {
	var req StatusUpdatePayload
	if err := json.Unmarshal(payload, &req); err != nil || req.OrderID == "" || req.Status == "" {
		return
	}
	if !co.registry.InRoom(req.OrderID, client) {
		return
	}

	co.broadcastToOthers(req.OrderID, client, OutboundEnvelope{
		Type: EventUserStatusUpdate,
		Payload: PresencePayload{
			OrderID:     req.OrderID,
			UserID:      client.ID(),
			DisplayName: client.Identity().DisplayName,
			Role:        client.Identity().Role.String(),
			Status:      req.Status,
			Timestamp:   time.Now().UTC(),
		},
	})
}

// broadcastToOthers fans an event out to every room member but the sender.
// Members whose buffers are full are disconnected. Returns the number of
// members reached.
func (co *Coordinator) broadcastToOthers(roomID string, sender *Client, env OutboundEnvelope) int {
	reached := 0
	for _, member := range co.registry.RoomMembers(roomID) {
		if member.ID() == sender.ID() {
			continue
		}
		if member.Enqueue(env) {
			reached++
		} else {
			member.Close()
		}
	}
	return reached
}

func (co *Coordinator) broadcastPresence(roomID string, subject *Client, event string) {
	co.broadcastToOthers(roomID, subject, OutboundEnvelope{
		Type: event,
		Payload: PresencePayload{
			OrderID:     roomID,
			UserID:      subject.ID(),
			DisplayName: subject.Identity().DisplayName,
			Role:        subject.Identity().Role.String(),
		},
	})
}

func (co *Coordinator) sendError(client *Client, event, message string) {
	client.Enqueue(OutboundEnvelope{
		Type:    EventError,
		Payload: ErrorPayload{Event: event, Message: message},
	})
}

func (co *Coordinator) sendMessageError(client *Client, message string) {
	client.Enqueue(OutboundEnvelope{
		Type:    EventMessageError,
		Payload: ErrorPayload{Event: EventSendMessage, Message: message},
	})
}
