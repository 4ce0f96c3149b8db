package ports

import (
	"context"

	"craftorders/internal/core/domain/model/order"
)

// Order lifecycle events published through the Notifier.
const (
	OrderCreatedEvent  = "order_created"
	StatusChangedEvent = "status_changed"
	QuoteIssuedEvent   = "quote_issued"
)

// Notifier dispatches fire-and-forget notifications about order lifecycle
// events (creation, status change, quote issuance). Delivery is best-effort:
// command handlers log failures but never roll back on them.
type Notifier interface {
	Notify(ctx context.Context, event string, aggregate *order.Order) error
}
