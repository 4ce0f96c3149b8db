package order

import (
	"errors"
	"fmt"

	"craftorders/internal/core/domain/model/kernel"
	"craftorders/internal/pkg/errs"
)

// ErrLineIsNotConstructed is returned when a PricedLine was not created
// through the NewPricedLine factory function.
var ErrLineIsNotConstructed = errors.New("PricedLine must be created via NewPricedLine constructor")

const (
	// MinLineQuantity is the smallest quantity a single order line may carry.
	MinLineQuantity = 1

	// MaxLineQuantity is the largest quantity a single order line may carry.
	MaxLineQuantity = 100
)

// PricedLine is one priced position of an order. Lines keep insertion order,
// which is also display order.
//
// UnitPrice and Subtotal are nil exactly when the source catalog item has
// custom pricing; such lines only receive an amount once staff issue a quote
// for the whole order.
type PricedLine struct {
	itemID             kernel.UUID
	itemName           string
	quantity           int
	selectedColor      string
	unitPrice          *float64
	subtotal           *float64
	customRequirements string

	isConstructed bool
}

// NewPricedLine creates a validated order line.
//
// Rules:
//   - quantity must lie in [MinLineQuantity, MaxLineQuantity]
//   - unitPrice and subtotal must both be set or both be nil
//   - selectedColor and customRequirements are optional (empty means absent)
func NewPricedLine(
	itemID kernel.UUID,
	itemName string,
	quantity int,
	selectedColor string,
	unitPrice *float64,
	subtotal *float64,
	customRequirements string,
) (PricedLine, error) {
	if err := itemID.Validate(); err != nil {
		return PricedLine{}, err
	}

	if quantity < MinLineQuantity || quantity > MaxLineQuantity {
		return PricedLine{}, errs.NewValueIsOutOfRangeError("quantity", quantity, MinLineQuantity, MaxLineQuantity)
	}

	if (unitPrice == nil) != (subtotal == nil) {
		return PricedLine{}, errs.NewValueIsInvalidErrorWithCause("subtotal",
			errors.New("unit price and subtotal must be set together"))
	}

	if unitPrice != nil && *unitPrice <= 0 {
		return PricedLine{}, errs.NewValueIsInvalidErrorWithCause("unitPrice",
			fmt.Errorf("%v is not greater than 0", *unitPrice))
	}

	return PricedLine{
		itemID:             itemID,
		itemName:           itemName,
		quantity:           quantity,
		selectedColor:      selectedColor,
		unitPrice:          copyAmount(unitPrice),
		subtotal:           copyAmount(subtotal),
		customRequirements: customRequirements,
		isConstructed:      true,
	}, nil
}

// Validate ensures the line was created through NewPricedLine.
func (l PricedLine) Validate() error {
	if !l.isConstructed {
		return ErrLineIsNotConstructed
	}
	return nil
}

// ItemID returns the catalog item this line refers to.
func (l PricedLine) ItemID() kernel.UUID {
	return l.itemID
}

// ItemName returns the catalog item's display name captured at pricing time.
func (l PricedLine) ItemName() string {
	return l.itemName
}

// Quantity returns the ordered quantity.
func (l PricedLine) Quantity() int {
	return l.quantity
}

// SelectedColor returns the color exactly as the customer submitted it,
// or empty when no color was chosen.
func (l PricedLine) SelectedColor() string {
	return l.selectedColor
}

// UnitPrice returns the per-unit price, or nil for custom-priced lines.
func (l PricedLine) UnitPrice() *float64 {
	return copyAmount(l.unitPrice)
}

// Subtotal returns quantity times unit price, or nil for custom-priced lines.
func (l PricedLine) Subtotal() *float64 {
	return copyAmount(l.subtotal)
}

// CustomRequirements returns the customer's free-form notes for custom items.
func (l PricedLine) CustomRequirements() string {
	return l.customRequirements
}

// IsPriced reports whether the line carries a definitive subtotal.
func (l PricedLine) IsPriced() bool {
	return l.subtotal != nil
}

// copyAmount clones a nullable amount so aggregate internals stay immutable.
func copyAmount(v *float64) *float64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
