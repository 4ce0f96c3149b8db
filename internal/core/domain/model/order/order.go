package order

import (
	"errors"
	"fmt"
	"time"

	"craftorders/internal/core/domain/model/kernel"
	"craftorders/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created
	// through the NewOrder factory method. This ensures all orders are properly
	// validated.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrQuoteNotRequired is the sentinel wrapped when a quote is issued for an
	// order that is not waiting for one. This is a conflict, not a validation
	// failure.
	ErrQuoteNotRequired = errors.New("order does not require a quote")

	// ErrLinesAreRequired is returned when an order is created with no lines.
	ErrLinesAreRequired = errors.New("order must contain at least one line")
)

// QuoteFlagThreshold is the amount above which a quote is flagged as
// implausibly high. Flagged quotes are accepted; the flag only surfaces
// for review.
const QuoteFlagThreshold = 10_000.0

// QuoteNotRequiredError reports a quote issued while the order is not in
// QuoteNeeded status. The order is left unchanged.
type QuoteNotRequiredError struct {
	Status Status
}

func (e *QuoteNotRequiredError) Error() string {
	return fmt.Sprintf("order does not require a quote: status is %s", e.Status)
}

func (e *QuoteNotRequiredError) Unwrap() error {
	return ErrQuoteNotRequired
}

// Order represents a customer order for custom goods. It is the aggregate root
// that manages the order lifecycle from placement through quoting, production,
// and delivery.
//
// Order follows these invariants:
//   - Must have a valid unique identifier and a constructed Customer
//   - Must contain at least one line; line order is display order
//   - hasCustomItems == true implies the order starts in QuoteNeeded status
//     with a nil totalAmount
//   - totalAmount is non-nil only when every line is definitively priced
//   - Status transitions follow the table defined on Status
//   - Can only be created through NewOrder or RestoreOrder
//
// The struct uses private fields to ensure encapsulation and maintains its
// invariants through validated methods.
type Order struct {
	id kernel.UUID

	customer Customer

	// lines in insertion order; never empty
	lines []PricedLine

	// totalAmount is nil until every line is definitively priced
	totalAmount *float64

	// estimatedAmount is the sum of computable subtotals
	estimatedAmount *float64

	status Status

	// hasCustomItems is true iff any line's item has custom pricing
	hasCustomItems bool

	createdAt time.Time
	updatedAt time.Time

	isConstructed bool
}

// NewOrder creates a new Order with validation. This is the only way to create
// an order during placement; the initial status is derived from hasCustomItems
// (QuoteNeeded for custom orders, Pending otherwise).
//
// The amounts come from the pricing calculator: totalAmount must be nil when
// hasCustomItems is true.
func NewOrder(
	id kernel.UUID,
	customer Customer,
	lines []PricedLine,
	totalAmount *float64,
	estimatedAmount *float64,
	hasCustomItems bool,
) (*Order, error) {
	status := Pending
	if hasCustomItems {
		status = QuoteNeeded
	}

	now := time.Now().UTC()
	o := &Order{
		status:         status,
		hasCustomItems: hasCustomItems,
		createdAt:      now,
		updatedAt:      now,
		isConstructed:  true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomer(customer),
		o.setLines(lines),
		o.setAmounts(totalAmount, estimatedAmount),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder reconstructs an Order from persistence without re-deriving the
// initial status. Used by repository adapters only.
func RestoreOrder(
	id kernel.UUID,
	customer Customer,
	lines []PricedLine,
	totalAmount *float64,
	estimatedAmount *float64,
	status Status,
	hasCustomItems bool,
	createdAt time.Time,
	updatedAt time.Time,
) (*Order, error) {
	if err := status.Validate(); err != nil {
		return nil, err
	}

	o := &Order{
		status:         status,
		hasCustomItems: hasCustomItems,
		createdAt:      createdAt,
		updatedAt:      updatedAt,
		isConstructed:  true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomer(customer),
		o.setLines(lines),
	); err != nil {
		return nil, err
	}

	o.totalAmount = copyAmount(totalAmount)
	o.estimatedAmount = copyAmount(estimatedAmount)
	return o, nil
}

// Validate ensures the Order instance was properly constructed.
// Returns ErrOrderIsNotConstructed otherwise.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// Customer returns the customer contact details.
func (o *Order) Customer() Customer {
	return o.customer
}

// Lines returns the order's lines in display order. The slice is a copy.
func (o *Order) Lines() []PricedLine {
	out := make([]PricedLine, len(o.lines))
	copy(out, o.lines)
	return out
}

// TotalAmount returns the definitive total, or nil while any line awaits a quote.
func (o *Order) TotalAmount() *float64 {
	return copyAmount(o.totalAmount)
}

// EstimatedAmount returns the best-effort total usable for display before a
// definitive total is computable.
func (o *Order) EstimatedAmount() *float64 {
	return copyAmount(o.estimatedAmount)
}

// Status returns the current lifecycle status.
func (o *Order) Status() Status {
	return o.status
}

// HasCustomItems reports whether any line's item has custom pricing.
func (o *Order) HasCustomItems() bool {
	return o.hasCustomItems
}

// CreatedAt returns the creation timestamp.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// UpdatedAt returns the last mutation timestamp.
func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

// ChangeStatus moves the order to newStatus if the transition table allows it.
//
// Returns:
//   - nil on success; the status and updatedAt are changed
//   - *InvalidStatusTransitionError on conflict; the order is left unchanged
func (o *Order) ChangeStatus(newStatus Status) error {
	next, err := o.status.TransitionTo(newStatus)
	if err != nil {
		return err
	}

	o.status = next
	o.touch()
	return nil
}

// ValidTransitions returns the statuses this order may move to from its
// current status. Read-only, no side effects.
func (o *Order) ValidTransitions() []Status {
	return o.status.ValidTransitions()
}

// SetQuote records a staff-issued definitive total for a custom order.
//
// Rules:
//   - only permitted while the order is in QuoteNeeded status, otherwise a
//     *QuoteNotRequiredError conflict is returned and nothing changes
//   - amount must be positive
//   - amounts above QuoteFlagThreshold are accepted but flagged
//
// On success the order moves to Quoted and both totalAmount and
// estimatedAmount are set to the quoted amount.
//
// Returns:
//   - flagged: true when the amount exceeds QuoteFlagThreshold
//   - error: conflict or validation failure
func (o *Order) SetQuote(amount float64) (bool, error) {
	if o.status != QuoteNeeded {
		return false, &QuoteNotRequiredError{Status: o.status}
	}

	if amount <= 0 {
		return false, errs.NewValueIsInvalidErrorWithCause("quoteAmount",
			fmt.Errorf("%v is not greater than 0", amount))
	}

	o.status = Quoted
	o.totalAmount = &amount
	o.estimatedAmount = copyAmount(&amount)
	o.touch()

	return amount > QuoteFlagThreshold, nil
}

func (o *Order) touch() {
	o.updatedAt = time.Now().UTC()
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setCustomer(customer Customer) error {
	if err := customer.Validate(); err != nil {
		return err
	}
	o.customer = customer
	return nil
}

func (o *Order) setLines(lines []PricedLine) error {
	if len(lines) == 0 {
		return ErrLinesAreRequired
	}

	for _, line := range lines {
		if err := line.Validate(); err != nil {
			return err
		}
	}

	o.lines = make([]PricedLine, len(lines))
	copy(o.lines, lines)
	return nil
}

func (o *Order) setAmounts(totalAmount, estimatedAmount *float64) error {
	if o.hasCustomItems && totalAmount != nil {
		return errs.NewValueIsInvalidErrorWithCause("totalAmount",
			errors.New("orders with custom items cannot carry a definitive total before quoting"))
	}

	o.totalAmount = copyAmount(totalAmount)
	o.estimatedAmount = copyAmount(estimatedAmount)
	return nil
}
