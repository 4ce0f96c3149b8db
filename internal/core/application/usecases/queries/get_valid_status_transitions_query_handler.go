package queries

import (
	"context"

	"craftorders/internal/core/domain/model/order"
	"craftorders/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetValidStatusTransitionsQueryHandler reads an order's status from the
// database and resolves its legal moves against the domain state machine.
type GetValidStatusTransitionsQueryHandler struct {
	db *gorm.DB
}

// NewGetValidStatusTransitionsQueryHandler creates a handler for transition
// lookups.
func NewGetValidStatusTransitionsQueryHandler(db *gorm.DB) GetValidStatusTransitionsQueryHandler {
	return GetValidStatusTransitionsQueryHandler{db: db}
}

// Handle returns the order's current status and the statuses it may move to.
// Returns errs.ObjectNotFoundError when the order does not exist.
func (h GetValidStatusTransitionsQueryHandler) Handle(
	ctx context.Context,
	query GetValidStatusTransitionsQuery,
) (GetValidStatusTransitionsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetValidStatusTransitionsQueryResponse{}, err
	}

	var rawStatus int
	result := h.db.WithContext(ctx).Raw(`
		SELECT status
		FROM orders
		WHERE id = ?
	`, query.OrderID().Bytes()).Scan(&rawStatus)
	if result.Error != nil {
		return GetValidStatusTransitionsQueryResponse{}, result.Error
	}
	if result.RowsAffected == 0 {
		return GetValidStatusTransitionsQueryResponse{},
			errs.NewObjectNotFoundError("order", query.OrderID().String())
	}

	status := order.Status(rawStatus)
	if err := status.Validate(); err != nil {
		return GetValidStatusTransitionsQueryResponse{}, err
	}

	targets := status.ValidTransitions()
	transitions := make([]StatusResponse, 0, len(targets))
	for _, target := range targets {
		transitions = append(transitions, StatusResponse{
			Status:      target.String(),
			Description: target.Description(),
		})
	}

	return GetValidStatusTransitionsQueryResponse{
		OrderID: query.OrderID(),
		Current: StatusResponse{
			Status:      status.String(),
			Description: status.Description(),
		},
		Transitions: transitions,
	}, nil
}
