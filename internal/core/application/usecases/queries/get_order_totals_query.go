package queries

import (
	"errors"
	"time"

	"craftorders/internal/core/domain/model/kernel"
	"craftorders/internal/pkg/guard"
)

var ErrGetOrderTotalsQueryIsNotConstructed = errors.New(
	"GetOrderTotalsQuery must be created via NewGetOrderTotalsQuery constructor",
)

// GetOrderTotalsQuery retrieves an order's pricing summary: per-line amounts
// and the order-level totals, with nil amounts for lines still awaiting a
// quote.
type GetOrderTotalsQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrderTotalsQuery creates a query for an order's pricing summary.
func NewGetOrderTotalsQuery(orderID kernel.UUID) (GetOrderTotalsQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderTotalsQuery{}, err
	}

	return GetOrderTotalsQuery{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderTotalsQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderTotalsQueryIsNotConstructed)
}

// OrderID returns the order whose totals are requested.
func (q GetOrderTotalsQuery) OrderID() kernel.UUID {
	return q.orderID
}

// LineTotalResponse represents one priced line in the summary. UnitPrice and
// Subtotal are nil for custom lines that have no computable price.
type LineTotalResponse struct {
	ItemID             kernel.UUID
	ItemName           string
	Quantity           int
	SelectedColor      string
	UnitPrice          *float64
	Subtotal           *float64
	CustomRequirements string
}

// GetOrderTotalsQueryResponse represents an order's pricing summary.
// TotalAmount is nil while any line awaits a quote; EstimatedAmount is nil
// when no line could be priced at all.
type GetOrderTotalsQueryResponse struct {
	OrderID         kernel.UUID
	Status          string
	TotalAmount     *float64
	EstimatedAmount *float64
	HasCustomItems  bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
	Lines           []LineTotalResponse
}
