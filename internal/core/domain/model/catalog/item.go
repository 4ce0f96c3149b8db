package catalog

import (
	"fmt"
	"strings"

	"craftorders/internal/core/domain/model/kernel"
	"craftorders/internal/pkg/errs"
)

// PricingMode determines how a catalog item is priced.
type PricingMode int

const (
	// PricingModeUnknown represents an invalid or undefined pricing mode.
	PricingModeUnknown PricingMode = iota

	// PricingModeFixed items carry a single definitive unit price.
	PricingModeFixed

	// PricingModeRange items carry a min/max estimate; the midpoint is used
	// as the working unit price.
	PricingModeRange

	// PricingModeCustom items cannot be priced automatically and require a
	// staff-issued quote.
	PricingModeCustom
)

// String returns the human-readable name of the pricing mode.
func (m PricingMode) String() string {
	switch m {
	case PricingModeFixed:
		return "fixed"
	case PricingModeRange:
		return "range"
	case PricingModeCustom:
		return "custom"
	default:
		return "unknown"
	}
}

// Item is a read-only view of a catalog record. The catalog itself is an
// external collaborator; this core only resolves items to price order lines.
//
// Invariant: exactly one pricing field-set is populated, matching the pricing
// mode. The three constructors are the only way to build a valid Item.
type Item struct {
	id          kernel.UUID
	name        string
	pricingMode PricingMode
	fixedPrice  float64
	minPrice    float64
	maxPrice    float64
	isAvailable bool
	colors      []string
}

// NewFixedPriceItem creates a catalog item with a definitive unit price.
func NewFixedPriceItem(id kernel.UUID, name string, price float64, available bool, colors []string) (*Item, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if price <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("fixedPrice",
			fmt.Errorf("%v is not greater than 0", price))
	}

	return &Item{
		id:          id,
		name:        name,
		pricingMode: PricingModeFixed,
		fixedPrice:  price,
		isAvailable: available,
		colors:      colors,
	}, nil
}

// NewRangePriceItem creates a catalog item priced as an estimate between
// minPrice and maxPrice.
func NewRangePriceItem(id kernel.UUID, name string, minPrice, maxPrice float64, available bool, colors []string) (*Item, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if minPrice <= 0 || maxPrice < minPrice {
		return nil, errs.NewValueIsInvalidErrorWithCause("priceRange",
			fmt.Errorf("[%v, %v] is not a valid price range", minPrice, maxPrice))
	}

	return &Item{
		id:          id,
		name:        name,
		pricingMode: PricingModeRange,
		minPrice:    minPrice,
		maxPrice:    maxPrice,
		isAvailable: available,
		colors:      colors,
	}, nil
}

// NewCustomPriceItem creates a catalog item that carries no price and must be
// quoted by staff.
func NewCustomPriceItem(id kernel.UUID, name string, available bool, colors []string) (*Item, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	return &Item{
		id:          id,
		name:        name,
		pricingMode: PricingModeCustom,
		isAvailable: available,
		colors:      colors,
	}, nil
}

// ID returns the item's unique identifier.
func (i *Item) ID() kernel.UUID {
	return i.id
}

// Name returns the item's display name.
func (i *Item) Name() string {
	return i.name
}

// PricingMode returns how the item is priced.
func (i *Item) PricingMode() PricingMode {
	return i.pricingMode
}

// FixedPrice returns the definitive unit price of a fixed-mode item.
// Only meaningful when PricingMode() is PricingModeFixed.
func (i *Item) FixedPrice() float64 {
	return i.fixedPrice
}

// PriceRange returns the min/max estimate of a range-mode item.
// Only meaningful when PricingMode() is PricingModeRange.
func (i *Item) PriceRange() (float64, float64) {
	return i.minPrice, i.maxPrice
}

// IsAvailable reports whether the item can currently be ordered.
func (i *Item) IsAvailable() bool {
	return i.isAvailable
}

// Colors returns the item's offered colors.
func (i *Item) Colors() []string {
	return i.colors
}

// OffersColor reports whether the item offers the given color. Matching is
// case-insensitive; callers keep the submitted casing.
func (i *Item) OffersColor(color string) bool {
	for _, c := range i.colors {
		if strings.EqualFold(c, color) {
			return true
		}
	}
	return false
}
