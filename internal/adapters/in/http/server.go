// Package http exposes the order lifecycle over a REST API.
package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"craftorders/internal/core/application/usecases/commands"
	"craftorders/internal/core/application/usecases/queries"
	"craftorders/internal/core/domain/model/conversation"
	"craftorders/internal/core/domain/model/kernel"
	"craftorders/internal/core/domain/model/order"
	"craftorders/internal/core/domain/services"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createOrderHandler       commands.CreateOrderCommandHandler
	updateOrderStatusHandler commands.UpdateOrderStatusCommandHandler
	setQuoteHandler          commands.SetQuoteCommandHandler
	postMessageHandler       commands.PostMessageCommandHandler

	// Query handlers
	getOrderTotalsHandler            queries.GetOrderTotalsQueryHandler
	getValidStatusTransitionsHandler queries.GetValidStatusTransitionsQueryHandler
	getConversationHistoryHandler    queries.GetConversationHistoryQueryHandler
}

// NewServer creates an HTTP server with the required command and query handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	updateOrderStatusHandler commands.UpdateOrderStatusCommandHandler,
	setQuoteHandler commands.SetQuoteCommandHandler,
	postMessageHandler commands.PostMessageCommandHandler,
	getOrderTotalsHandler queries.GetOrderTotalsQueryHandler,
	getValidStatusTransitionsHandler queries.GetValidStatusTransitionsQueryHandler,
	getConversationHistoryHandler queries.GetConversationHistoryQueryHandler,
) *Server {
	return &Server{
		createOrderHandler:               createOrderHandler,
		updateOrderStatusHandler:         updateOrderStatusHandler,
		setQuoteHandler:                  setQuoteHandler,
		postMessageHandler:               postMessageHandler,
		getOrderTotalsHandler:            getOrderTotalsHandler,
		getValidStatusTransitionsHandler: getValidStatusTransitionsHandler,
		getConversationHistoryHandler:    getConversationHistoryHandler,
	}
}

// RegisterRoutes attaches every endpoint under /api/v1.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	v1 := e.Group("/api/v1")

	v1.POST("/orders", s.CreateOrder)
	v1.GET("/orders/:orderID", s.GetOrderTotals)
	v1.GET("/orders/:orderID/transitions", s.GetValidStatusTransitions)
	v1.POST("/orders/:orderID/status", s.UpdateOrderStatus)
	v1.POST("/orders/:orderID/quote", s.SetQuote)
	v1.GET("/orders/:orderID/messages", s.GetConversationHistory)
	v1.POST("/orders/:orderID/messages", s.PostMessage)
}

// CreateOrder handles POST /api/v1/orders - places a new order.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var req CreateOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	customer, err := order.NewCustomer(req.Customer.Name, req.Customer.Email, req.Customer.Address)
	if err != nil {
		return respondError(ctx, err)
	}

	lines := make([]services.LineRequest, len(req.Lines))
	for i, line := range req.Lines {
		itemID, parseErr := kernel.UUIDFromString(line.ItemID)
		if parseErr != nil {
			return badRequest(ctx, "Invalid item id: "+line.ItemID)
		}

		lines[i] = services.LineRequest{
			ItemID:             itemID,
			Quantity:           line.Quantity,
			SelectedColor:      line.SelectedColor,
			CustomRequirements: line.CustomRequirements,
		}
	}

	cmd, err := commands.NewCreateOrderCommand(kernel.NewUUID(), customer, lines)
	if err != nil {
		return respondError(ctx, err)
	}

	result, err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, CreateOrderResponse{
		OrderID:         result.Order.ID().String(),
		Status:          result.Order.Status().String(),
		TotalAmount:     result.Order.TotalAmount(),
		EstimatedAmount: result.Order.EstimatedAmount(),
		RequiresQuote:   result.RequiresQuote,
	})
}

// UpdateOrderStatus handles POST /api/v1/orders/{orderID}/status - moves an
// order along its lifecycle.
func (s *Server) UpdateOrderStatus(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderID"))
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	var req UpdateStatusRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	newStatus, err := order.StatusFromString(req.Status)
	if err != nil {
		return badRequest(ctx, "Unknown status: "+req.Status)
	}

	cmd, err := commands.NewUpdateOrderStatusCommand(orderID, newStatus, req.Notes)
	if err != nil {
		return respondError(ctx, err)
	}

	updated, err := s.updateOrderStatusHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, UpdateStatusResponse{
		OrderID: updated.ID().String(),
		Status:  updated.Status().String(),
	})
}

// SetQuote handles POST /api/v1/orders/{orderID}/quote - issues a staff quote
// for a custom order.
func (s *Server) SetQuote(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderID"))
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	var req SetQuoteRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewSetQuoteCommand(orderID, req.Amount, req.Notes)
	if err != nil {
		return respondError(ctx, err)
	}

	result, err := s.setQuoteHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, SetQuoteResponse{
		OrderID:     result.Order.ID().String(),
		Status:      result.Order.Status().String(),
		TotalAmount: result.Order.TotalAmount(),
		Flagged:     result.Flagged,
	})
}

// PostMessage handles POST /api/v1/orders/{orderID}/messages - appends a
// message to the order's conversation. Fallback for clients without a
// realtime connection.
func (s *Server) PostMessage(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderID"))
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	var req PostMessageRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	sender, err := conversation.SenderFromString(req.Sender)
	if err != nil {
		return badRequest(ctx, "Unknown sender: "+req.Sender)
	}

	cmd, err := commands.NewPostMessageCommand(orderID, sender, req.Content, req.IsQuote, req.QuoteAmount)
	if err != nil {
		return respondError(ctx, err)
	}

	result, err := s.postMessageHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	msg := result.Message

	return ctx.JSON(http.StatusCreated, Message{
		ID:          msg.ID().String(),
		Sender:      msg.Sender().String(),
		Content:     msg.Content(),
		IsQuote:     msg.IsQuote(),
		QuoteAmount: msg.QuoteAmount(),
		IsRead:      msg.IsRead(),
		SentAt:      msg.SentAt(),
	})
}

// GetOrderTotals handles GET /api/v1/orders/{orderID} - returns the order's
// pricing summary.
func (s *Server) GetOrderTotals(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderID"))
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	query, err := queries.NewGetOrderTotalsQuery(orderID)
	if err != nil {
		return respondError(ctx, err)
	}

	totals, err := s.getOrderTotalsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	lines := make([]LineTotal, len(totals.Lines))
	for i, line := range totals.Lines {
		lines[i] = LineTotal{
			ItemID:             line.ItemID.String(),
			ItemName:           line.ItemName,
			Quantity:           line.Quantity,
			SelectedColor:      line.SelectedColor,
			UnitPrice:          line.UnitPrice,
			Subtotal:           line.Subtotal,
			CustomRequirements: line.CustomRequirements,
		}
	}

	return ctx.JSON(http.StatusOK, OrderTotalsResponse{
		OrderID:         totals.OrderID.String(),
		Status:          totals.Status,
		TotalAmount:     totals.TotalAmount,
		EstimatedAmount: totals.EstimatedAmount,
		HasCustomItems:  totals.HasCustomItems,
		CreatedAt:       totals.CreatedAt,
		UpdatedAt:       totals.UpdatedAt,
		Lines:           lines,
	})
}

// GetValidStatusTransitions handles GET /api/v1/orders/{orderID}/transitions -
// lists the statuses the order may legally move to.
func (s *Server) GetValidStatusTransitions(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderID"))
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	query, err := queries.NewGetValidStatusTransitionsQuery(orderID)
	if err != nil {
		return respondError(ctx, err)
	}

	transitions, err := s.getValidStatusTransitionsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	options := make([]StatusOption, len(transitions.Transitions))
	for i, t := range transitions.Transitions {
		options[i] = StatusOption{Status: t.Status, Description: t.Description}
	}

	return ctx.JSON(http.StatusOK, TransitionsResponse{
		OrderID: transitions.OrderID.String(),
		Current: StatusOption{
			Status:      transitions.Current.Status,
			Description: transitions.Current.Description,
		},
		Transitions: options,
	})
}

// GetConversationHistory handles GET /api/v1/orders/{orderID}/messages -
// returns the order's conversation, oldest message first.
func (s *Server) GetConversationHistory(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderID"))
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	query, err := queries.NewGetConversationHistoryQuery(orderID)
	if err != nil {
		return respondError(ctx, err)
	}

	history, err := s.getConversationHistoryHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	messages := make([]Message, len(history.Messages))
	for i, msg := range history.Messages {
		messages[i] = Message{
			ID:          msg.ID.String(),
			Sender:      msg.Sender,
			Content:     msg.Content,
			IsQuote:     msg.IsQuote,
			QuoteAmount: msg.QuoteAmount,
			IsRead:      msg.IsRead,
			SentAt:      msg.SentAt,
		}
	}

	return ctx.JSON(http.StatusOK, ConversationResponse{
		ConversationID: history.ConversationID.String(),
		OrderID:        history.OrderID.String(),
		IsActive:       history.IsActive,
		Messages:       messages,
	})
}
