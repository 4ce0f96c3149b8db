package http

import "time"

// Error is the uniform error body returned by every endpoint.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// CustomerRequest carries customer contact details on order placement.
type CustomerRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Address string `json:"address"`
}

// LineRequest is one requested order line.
type LineRequest struct {
	ItemID             string `json:"item_id"`
	Quantity           int    `json:"quantity"`
	SelectedColor      string `json:"selected_color,omitempty"`
	CustomRequirements string `json:"custom_requirements,omitempty"`
}

// CreateOrderRequest is the body of POST /api/v1/orders.
type CreateOrderRequest struct {
	Customer CustomerRequest `json:"customer"`
	Lines    []LineRequest   `json:"lines"`
}

// CreateOrderResponse reports the placed order and whether the customer must
// wait for a staff quote before confirming.
type CreateOrderResponse struct {
	OrderID         string   `json:"order_id"`
	Status          string   `json:"status"`
	TotalAmount     *float64 `json:"total_amount"`
	EstimatedAmount *float64 `json:"estimated_amount"`
	RequiresQuote   bool     `json:"requires_quote"`
}

// UpdateStatusRequest is the body of POST /api/v1/orders/{orderID}/status.
type UpdateStatusRequest struct {
	Status string `json:"status"`
	Notes  string `json:"notes,omitempty"`
}

// UpdateStatusResponse reports the order's status after the transition.
type UpdateStatusResponse struct {
	OrderID string `json:"order_id"`
	Status  string `json:"status"`
}

// SetQuoteRequest is the body of POST /api/v1/orders/{orderID}/quote.
type SetQuoteRequest struct {
	Amount float64 `json:"amount"`
	Notes  string  `json:"notes,omitempty"`
}

// SetQuoteResponse reports the quoted order. Flagged quotes are accepted but
// marked for review.
type SetQuoteResponse struct {
	OrderID     string   `json:"order_id"`
	Status      string   `json:"status"`
	TotalAmount *float64 `json:"total_amount"`
	Flagged     bool     `json:"flagged"`
}

// LineTotal is one priced line in the order summary.
type LineTotal struct {
	ItemID             string   `json:"item_id"`
	ItemName           string   `json:"item_name"`
	Quantity           int      `json:"quantity"`
	SelectedColor      string   `json:"selected_color,omitempty"`
	UnitPrice          *float64 `json:"unit_price"`
	Subtotal           *float64 `json:"subtotal"`
	CustomRequirements string   `json:"custom_requirements,omitempty"`
}

// OrderTotalsResponse is the pricing summary of GET /api/v1/orders/{orderID}.
type OrderTotalsResponse struct {
	OrderID         string      `json:"order_id"`
	Status          string      `json:"status"`
	TotalAmount     *float64    `json:"total_amount"`
	EstimatedAmount *float64    `json:"estimated_amount"`
	HasCustomItems  bool        `json:"has_custom_items"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
	Lines           []LineTotal `json:"lines"`
}

// StatusOption describes one lifecycle status by wire name and description.
type StatusOption struct {
	Status      string `json:"status"`
	Description string `json:"description"`
}

// TransitionsResponse lists the statuses an order may legally move to.
type TransitionsResponse struct {
	OrderID     string         `json:"order_id"`
	Current     StatusOption   `json:"current"`
	Transitions []StatusOption `json:"transitions"`
}

// PostMessageRequest is the body of POST /api/v1/orders/{orderID}/messages.
type PostMessageRequest struct {
	Sender      string   `json:"sender"`
	Content     string   `json:"content"`
	IsQuote     bool     `json:"is_quote,omitempty"`
	QuoteAmount *float64 `json:"quote_amount,omitempty"`
}

// Message is one message in a conversation, oldest first in listings.
type Message struct {
	ID          string    `json:"id"`
	Sender      string    `json:"sender"`
	Content     string    `json:"content"`
	IsQuote     bool      `json:"is_quote"`
	QuoteAmount *float64  `json:"quote_amount,omitempty"`
	IsRead      bool      `json:"is_read"`
	SentAt      time.Time `json:"sent_at"`
}

// ConversationResponse is the body of GET /api/v1/orders/{orderID}/messages.
type ConversationResponse struct {
	ConversationID string    `json:"conversation_id"`
	OrderID        string    `json:"order_id"`
	IsActive       bool      `json:"is_active"`
	Messages       []Message `json:"messages"`
}
