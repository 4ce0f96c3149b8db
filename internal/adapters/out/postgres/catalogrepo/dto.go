// Package catalogrepo provides a read-only gorm adapter over the items table.
// The catalog is maintained elsewhere; this side only resolves item records
// for pricing.
package catalogrepo

import (
	"fmt"
	"strings"

	"craftorders/internal/core/domain/model/catalog"
	"craftorders/internal/core/domain/model/kernel"
	"craftorders/internal/pkg/errs"

	"github.com/google/uuid"
)

// ItemDTO represents one catalog record. Colors are stored as a
// comma-separated list; the set is small and only ever matched in full.
type ItemDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name        string    `gorm:"type:varchar(255);not null"`
	PricingMode int       `gorm:"type:int;not null"`
	FixedPrice  *float64  `gorm:"type:numeric(12,2)"`
	MinPrice    *float64  `gorm:"type:numeric(12,2)"`
	MaxPrice    *float64  `gorm:"type:numeric(12,2)"`
	IsAvailable bool      `gorm:"not null;index"`
	Colors      string    `gorm:"type:varchar(512)"`
}

// TableName overrides GORM's default naming convention to use "items".
func (ItemDTO) TableName() string {
	return "items"
}

// FromDomain converts a catalog item to its database representation.
// Exported for seed tooling and tests.
func FromDomain(item *catalog.Item) ItemDTO {
	dto := ItemDTO{
		ID:          item.ID().Bytes(),
		Name:        item.Name(),
		PricingMode: int(item.PricingMode()),
		IsAvailable: item.IsAvailable(),
		Colors:      strings.Join(item.Colors(), ","),
	}

	switch item.PricingMode() {
	case catalog.PricingModeFixed:
		price := item.FixedPrice()
		dto.FixedPrice = &price
	case catalog.PricingModeRange:
		minPrice, maxPrice := item.PriceRange()
		dto.MinPrice = &minPrice
		dto.MaxPrice = &maxPrice
	default:
	}

	return dto
}

func toDomain(dto ItemDTO) (*catalog.Item, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var colors []string
	if dto.Colors != "" {
		colors = strings.Split(dto.Colors, ",")
	}

	switch catalog.PricingMode(dto.PricingMode) {
	case catalog.PricingModeFixed:
		if dto.FixedPrice == nil {
			return nil, errs.NewValueIsRequiredError("fixedPrice")
		}
		return catalog.NewFixedPriceItem(id, dto.Name, *dto.FixedPrice, dto.IsAvailable, colors)
	case catalog.PricingModeRange:
		if dto.MinPrice == nil || dto.MaxPrice == nil {
			return nil, errs.NewValueIsRequiredError("priceRange")
		}
		return catalog.NewRangePriceItem(id, dto.Name, *dto.MinPrice, *dto.MaxPrice, dto.IsAvailable, colors)
	case catalog.PricingModeCustom:
		return catalog.NewCustomPriceItem(id, dto.Name, dto.IsAvailable, colors)
	default:
		return nil, errs.NewValueIsInvalidErrorWithCause("pricingMode",
			fmt.Errorf("%d is not a known pricing mode", dto.PricingMode))
	}
}
