package order

import (
	"errors"
	"fmt"

	"craftorders/internal/pkg/errs"
)

// ErrInvalidStatusTransition is the sentinel wrapped by every illegal status
// transition. It marks a conflict: the order exists and the input is
// well-formed, but the operation is not allowed right now.
var ErrInvalidStatusTransition = errors.New("invalid status transition")

// InvalidStatusTransitionError reports an attempt to move an order between two
// statuses not connected in the transition table. The order is left unchanged.
type InvalidStatusTransitionError struct {
	From Status
	To   Status
}

func (e *InvalidStatusTransitionError) Error() string {
	return fmt.Sprintf("invalid status transition: %s -> %s", e.From, e.To)
}

func (e *InvalidStatusTransitionError) Unwrap() error {
	return ErrInvalidStatusTransition
}

// Status represents the lifecycle state of an order.
// It implements a state machine with defined transitions to ensure orders
// follow the correct business workflow.
//
// State transitions:
//
//	pending      ──> confirmed, cancelled
//	quote_needed ──> quoted, cancelled
//	quoted       ──> confirmed, cancelled
//	confirmed    ──> processing, cancelled
//	processing   ──> shipped, cancelled
//	shipped      ──> delivered
//	delivered    ──> (terminal)
//	cancelled    ──> (terminal)
//
// Pending and QuoteNeeded are the two initial states, chosen at creation by
// whether the order contains custom-priced items.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status for orders without custom items,
	// awaiting customer confirmation.
	Pending

	// QuoteNeeded is the initial status for orders containing custom items;
	// staff must issue a quote before the order can proceed.
	QuoteNeeded

	// Quoted indicates staff have issued a total for a custom order.
	Quoted

	// Confirmed indicates the customer has accepted the order or quote.
	Confirmed

	// Processing indicates the goods are being made.
	Processing

	// Shipped indicates the order has left the workshop.
	Shipped

	// Delivered is the successful terminal state.
	Delivered

	// Cancelled is the abandoned terminal state.
	Cancelled
)

// getStatusStrings returns a map of Status values to their wire names.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:     "unknown",
		Pending:     "pending",
		QuoteNeeded: "quote_needed",
		Quoted:      "quoted",
		Confirmed:   "confirmed",
		Processing:  "processing",
		Shipped:     "shipped",
		Delivered:   "delivered",
		Cancelled:   "cancelled",
	}
}

// getStatusDescriptions returns human-readable descriptions for every valid status.
func getStatusDescriptions() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:     "Order received and awaiting confirmation",
		QuoteNeeded: "Order contains custom items and needs a staff quote",
		Quoted:      "A quote has been issued and awaits customer confirmation",
		Confirmed:   "Order confirmed and queued for production",
		Processing:  "Order is being made",
		Shipped:     "Order has been shipped",
		Delivered:   "Order was delivered to the customer",
		Cancelled:   "Order was cancelled",
	}
}

// getStatusTransitions returns the complete legal transition table.
// Any pair absent from this table is a conflict.
func getStatusTransitions() map[Status][]Status {
	//nolint:exhaustive // terminal states map to empty target sets
	return map[Status][]Status{
		Pending:     {Confirmed, Cancelled},
		QuoteNeeded: {Quoted, Cancelled},
		Quoted:      {Confirmed, Cancelled},
		Confirmed:   {Processing, Cancelled},
		Processing:  {Shipped, Cancelled},
		Shipped:     {Delivered},
		Delivered:   {},
		Cancelled:   {},
	}
}

// StatusFromString parses a wire name ("pending", "quote_needed", ...) into a
// Status. Returns an error for unrecognized names.
func StatusFromString(s string) (Status, error) {
	for status, name := range getStatusStrings() {
		if name == s && status != Unknown {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

// Validate checks if the Status value is valid.
// Unknown (0) and any out-of-range values are invalid.
func (s Status) Validate() error {
	if _, ok := getStatusTransitions()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire name of the status. It implements fmt.Stringer and
// is safe to call on any Status value, including invalid ones.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// Description returns a human-readable explanation of the status, suitable
// for display alongside transition options.
func (s Status) Description() string {
	return getStatusDescriptions()[s]
}

// IsTerminal reports whether the status admits no outgoing transitions.
func (s Status) IsTerminal() bool {
	return len(getStatusTransitions()[s]) == 0 && s.Validate() == nil
}

// ValidTransitions returns the set of statuses this status may move to.
// The slice is a copy; callers may modify it freely.
func (s Status) ValidTransitions() []Status {
	targets := getStatusTransitions()[s]
	out := make([]Status, len(targets))
	copy(out, targets)
	return out
}

// CanTransitionTo reports whether moving to target is listed in the
// transition table.
func (s Status) CanTransitionTo(target Status) bool {
	for _, t := range getStatusTransitions()[s] {
		if t == target {
			return true
		}
	}
	return false
}

// TransitionTo validates and performs a transition.
//
// Returns:
//   - (target, nil) when the transition is listed in the table
//   - (0, *InvalidStatusTransitionError) otherwise; the conflict leaves the
//     caller's status untouched
func (s Status) TransitionTo(target Status) (Status, error) {
	if err := target.Validate(); err != nil {
		return 0, err
	}

	if !s.CanTransitionTo(target) {
		return 0, &InvalidStatusTransitionError{From: s, To: target}
	}

	return target, nil
}
