// Package queries contains read-only operations for the CQRS read side.
// Query handlers bypass the domain repositories and read the database
// directly, returning lightweight response structs.
package queries

import (
	"errors"

	"craftorders/internal/core/domain/model/kernel"
	"craftorders/internal/pkg/guard"
)

var ErrGetValidStatusTransitionsQueryIsNotConstructed = errors.New(
	"GetValidStatusTransitionsQuery must be created via NewGetValidStatusTransitionsQuery constructor",
)

// GetValidStatusTransitionsQuery retrieves the lifecycle moves an order can
// make from its current status. Staff tooling uses this to render only the
// actions that will not be rejected.
type GetValidStatusTransitionsQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetValidStatusTransitionsQuery creates a query for an order's legal
// status transitions.
func NewGetValidStatusTransitionsQuery(orderID kernel.UUID) (GetValidStatusTransitionsQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetValidStatusTransitionsQuery{}, err
	}

	return GetValidStatusTransitionsQuery{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetValidStatusTransitionsQuery) Validate() error {
	return q.guard.Validate(ErrGetValidStatusTransitionsQueryIsNotConstructed)
}

// OrderID returns the order whose transitions are requested.
func (q GetValidStatusTransitionsQuery) OrderID() kernel.UUID {
	return q.orderID
}

// StatusResponse describes one lifecycle status by wire name and
// customer-facing description.
type StatusResponse struct {
	Status      string
	Description string
}

// GetValidStatusTransitionsQueryResponse lists the order's current status and
// every status it may legally move to. Terminal statuses yield an empty
// Transitions slice.
type GetValidStatusTransitionsQueryResponse struct {
	OrderID     kernel.UUID
	Current     StatusResponse
	Transitions []StatusResponse
}
