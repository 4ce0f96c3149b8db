package services

import (
	"errors"
	"fmt"
	"strings"

	"craftorders/internal/core/domain/model/catalog"
	"craftorders/internal/core/domain/model/kernel"
	"craftorders/internal/core/domain/model/order"
	"craftorders/internal/pkg/errs"
)

var (
	// ErrItemNotAvailable is the sentinel wrapped when a requested item exists
	// but cannot currently be ordered.
	ErrItemNotAvailable = errors.New("item is not available")

	// ErrColorNotAvailable is the sentinel wrapped when a requested color is
	// not offered by the item.
	ErrColorNotAvailable = errors.New("color is not available")
)

// ItemsNotFoundError reports every requested item id that could not be
// resolved against the catalog. All missing ids are collected before failing
// so the caller can report every bad reference at once.
type ItemsNotFoundError struct {
	ItemIDs []string
}

func (e *ItemsNotFoundError) Error() string {
	return fmt.Sprintf("items not found: %s", strings.Join(e.ItemIDs, ", "))
}

func (e *ItemsNotFoundError) Unwrap() error {
	return errs.ErrObjectNotFound
}

// ItemNotAvailableError reports a resolved but unorderable item.
type ItemNotAvailableError struct {
	ItemID string
}

func (e *ItemNotAvailableError) Error() string {
	return fmt.Sprintf("item is not available: %s", e.ItemID)
}

func (e *ItemNotAvailableError) Unwrap() error {
	return ErrItemNotAvailable
}

// ColorNotAvailableError reports a color the item does not offer.
type ColorNotAvailableError struct {
	ItemID string
	Color  string
}

func (e *ColorNotAvailableError) Error() string {
	return fmt.Sprintf("color is not available: %q for item %s", e.Color, e.ItemID)
}

func (e *ColorNotAvailableError) Unwrap() error {
	return ErrColorNotAvailable
}

// LineRequest is the ephemeral input of the pricing calculator: one requested
// order position before pricing.
type LineRequest struct {
	ItemID             kernel.UUID
	Quantity           int
	SelectedColor      string
	CustomRequirements string
}

// PricingResult is the calculator's output, ready to seed a new order.
//
// TotalAmount is non-nil iff no line is custom-priced; range-priced lines
// count toward it using their midpoint. EstimatedAmount is the sum of all
// computable subtotals regardless of custom lines, or nil when no line is
// computable.
type PricingResult struct {
	Lines           []order.PricedLine
	TotalAmount     *float64
	EstimatedAmount *float64
	HasCustomItems  bool
}

// PricingCalculator converts requested lines plus their catalog records into
// priced lines and order-level totals.
//
// Pricing rules per catalog mode:
//   - fixed: unit price is the catalog price; contributes to total and estimate
//   - range: unit price is the (min+max)/2 midpoint; contributes to total and estimate
//   - custom: no unit price; forces the order total to nil and the order into
//     the quoting flow
type PricingCalculator struct{}

// NewPricingCalculator creates a new PricingCalculator instance.
func NewPricingCalculator() PricingCalculator {
	return PricingCalculator{}
}

// Price resolves and prices every requested line against the supplied catalog
// records. The items slice is the batch the caller fetched for the request;
// results observe that single snapshot.
//
// Validation order:
//  1. all item references are resolved; every unresolved id is collected into
//     one *ItemsNotFoundError before failing
//  2. each line's item must be available (*ItemNotAvailableError)
//  3. a selected color must match one of the item's colors case-insensitively
//     (*ColorNotAvailableError); the stored color keeps the submitted casing
//
// No partial result is ever returned: any failure prices nothing.
func (pc PricingCalculator) Price(requests []LineRequest, items []*catalog.Item) (PricingResult, error) {
	if len(requests) == 0 {
		return PricingResult{}, errs.NewValueIsRequiredError("lines")
	}

	index := make(map[kernel.UUID]*catalog.Item, len(items))
	for _, item := range items {
		index[item.ID()] = item
	}

	var missing []string
	for _, req := range requests {
		if _, ok := index[req.ItemID]; !ok {
			missing = append(missing, req.ItemID.String())
		}
	}
	if len(missing) > 0 {
		return PricingResult{}, &ItemsNotFoundError{ItemIDs: missing}
	}

	result := PricingResult{
		Lines: make([]order.PricedLine, 0, len(requests)),
	}

	var estimate float64
	estimable := false

	for _, req := range requests {
		item := index[req.ItemID]

		if !item.IsAvailable() {
			return PricingResult{}, &ItemNotAvailableError{ItemID: item.ID().String()}
		}

		if req.SelectedColor != "" && !item.OffersColor(req.SelectedColor) {
			return PricingResult{}, &ColorNotAvailableError{ItemID: item.ID().String(), Color: req.SelectedColor}
		}

		var unitPrice *float64
		switch item.PricingMode() {
		case catalog.PricingModeFixed:
			p := item.FixedPrice()
			unitPrice = &p
		case catalog.PricingModeRange:
			minPrice, maxPrice := item.PriceRange()
			p := (minPrice + maxPrice) / 2
			unitPrice = &p
		case catalog.PricingModeCustom:
			result.HasCustomItems = true
		default:
			return PricingResult{}, errs.NewValueIsInvalidErrorWithCause("pricingMode",
				fmt.Errorf("item %s has no valid pricing mode", item.ID()))
		}

		var subtotal *float64
		if unitPrice != nil {
			s := *unitPrice * float64(req.Quantity)
			subtotal = &s
			estimate += s
			estimable = true
		}

		line, err := order.NewPricedLine(
			req.ItemID,
			item.Name(),
			req.Quantity,
			req.SelectedColor,
			unitPrice,
			subtotal,
			req.CustomRequirements,
		)
		if err != nil {
			return PricingResult{}, err
		}

		result.Lines = append(result.Lines, line)
	}

	if estimable {
		e := estimate
		result.EstimatedAmount = &e
	}
	if !result.HasCustomItems && estimable {
		total := estimate
		result.TotalAmount = &total
	}

	return result, nil
}
