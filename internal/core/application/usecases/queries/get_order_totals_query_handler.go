package queries

import (
	"context"
	"time"

	"craftorders/internal/core/domain/model/kernel"
	"craftorders/internal/core/domain/model/order"
	"craftorders/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrderTotalsQueryHandler retrieves an order's pricing summary from the
// database.
type GetOrderTotalsQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderTotalsQueryHandler creates a handler for pricing summary
// queries.
func NewGetOrderTotalsQueryHandler(db *gorm.DB) GetOrderTotalsQueryHandler {
	return GetOrderTotalsQueryHandler{db: db}
}

// Handle executes the query. Returns errs.ObjectNotFoundError when the order
// does not exist.
func (h GetOrderTotalsQueryHandler) Handle(
	ctx context.Context,
	query GetOrderTotalsQuery,
) (GetOrderTotalsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderTotalsQueryResponse{}, err
	}

	response, err := h.loadOrder(ctx, query.OrderID())
	if err != nil {
		return GetOrderTotalsQueryResponse{}, err
	}

	lines, err := h.loadLines(ctx, query.OrderID())
	if err != nil {
		return GetOrderTotalsQueryResponse{}, err
	}
	response.Lines = lines

	return response, nil
}

func (h GetOrderTotalsQueryHandler) loadOrder(
	ctx context.Context, orderID kernel.UUID,
) (GetOrderTotalsQueryResponse, error) {
	var row struct {
		Status          int
		TotalAmount     *float64
		EstimatedAmount *float64
		HasCustomItems  bool
		CreatedAt       time.Time
		UpdatedAt       time.Time
	}

	result := h.db.WithContext(ctx).Raw(`
		SELECT
			status,
			total_amount,
			estimated_amount,
			has_custom_items,
			created_at,
			updated_at
		FROM orders
		WHERE id = ?
	`, orderID.Bytes()).Scan(&row)
	if result.Error != nil {
		return GetOrderTotalsQueryResponse{}, result.Error
	}
	if result.RowsAffected == 0 {
		return GetOrderTotalsQueryResponse{}, errs.NewObjectNotFoundError("order", orderID.String())
	}

	return GetOrderTotalsQueryResponse{
		OrderID:         orderID,
		Status:          order.Status(row.Status).String(),
		TotalAmount:     row.TotalAmount,
		EstimatedAmount: row.EstimatedAmount,
		HasCustomItems:  row.HasCustomItems,
		CreatedAt:       row.CreatedAt,
		UpdatedAt:       row.UpdatedAt,
	}, nil
}

func (h GetOrderTotalsQueryHandler) loadLines(
	ctx context.Context, orderID kernel.UUID,
) ([]LineTotalResponse, error) {
	lines := make([]LineTotalResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			item_id,
			item_name,
			quantity,
			selected_color,
			unit_price,
			subtotal,
			custom_requirements
		FROM order_lines
		WHERE order_id = ?
		ORDER BY position
	`, orderID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var line LineTotalResponse
		var itemID uuid.UUID

		err = rows.Scan(
			&itemID,
			&line.ItemName,
			&line.Quantity,
			&line.SelectedColor,
			&line.UnitPrice,
			&line.Subtotal,
			&line.CustomRequirements,
		)
		if err != nil {
			return nil, err
		}

		id, idErr := kernel.UUIDFromBytes(itemID[:])
		if idErr != nil {
			return nil, idErr
		}
		line.ItemID = id
		lines = append(lines, line)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return lines, nil
}
