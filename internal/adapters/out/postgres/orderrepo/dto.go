// Package orderrepo provides data transfer objects and mapping functions for
// order persistence. It implements the repository pattern for the order
// aggregate, converting between domain entities and database rows.
package orderrepo

import (
	"time"

	"craftorders/internal/core/domain/model/kernel"
	"craftorders/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Customer contact details are embedded; priced lines live in a child table.
type OrderDTO struct {
	ID              uuid.UUID   `gorm:"type:uuid;primaryKey"`
	Customer        CustomerDTO `gorm:"embedded;embeddedPrefix:customer_"`
	Status          int         `gorm:"type:int;not null;index"`
	TotalAmount     *float64    `gorm:"type:numeric(12,2)"`
	EstimatedAmount *float64    `gorm:"type:numeric(12,2)"`
	HasCustomItems  bool        `gorm:"not null"`
	CreatedAt       time.Time   `gorm:"not null"`
	UpdatedAt       time.Time   `gorm:"not null"`
	Lines           []LineDTO   `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// CustomerDTO represents the embedded customer contact details within the
// order table.
type CustomerDTO struct {
	Name    string `gorm:"type:varchar(255);not null"`
	Email   string `gorm:"type:varchar(255);not null"`
	Address string `gorm:"type:varchar(512);not null"`
}

// LineDTO represents one priced order line. Position preserves the submitted
// line order across round trips.
type LineDTO struct {
	ID                 uint      `gorm:"primaryKey;autoIncrement"`
	OrderID            uuid.UUID `gorm:"type:uuid;not null;index"`
	Position           int       `gorm:"type:int;not null"`
	ItemID             uuid.UUID `gorm:"type:uuid;not null"`
	ItemName           string    `gorm:"type:varchar(255);not null"`
	Quantity           int       `gorm:"type:int;not null"`
	SelectedColor      string    `gorm:"type:varchar(64)"`
	UnitPrice          *float64  `gorm:"type:numeric(12,2)"`
	Subtotal           *float64  `gorm:"type:numeric(12,2)"`
	CustomRequirements string    `gorm:"type:text"`
}

// TableName overrides GORM's default naming convention to use "order_lines".
func (LineDTO) TableName() string {
	return "order_lines"
}

// fromDomain converts an order domain aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	orderID := aggregate.ID().Bytes()
	lines := make([]LineDTO, 0, len(aggregate.Lines()))

	for i, line := range aggregate.Lines() {
		lines = append(lines, LineDTO{
			OrderID:            orderID,
			Position:           i,
			ItemID:             line.ItemID().Bytes(),
			ItemName:           line.ItemName(),
			Quantity:           line.Quantity(),
			SelectedColor:      line.SelectedColor(),
			UnitPrice:          line.UnitPrice(),
			Subtotal:           line.Subtotal(),
			CustomRequirements: line.CustomRequirements(),
		})
	}

	return OrderDTO{
		ID: orderID,
		Customer: CustomerDTO{
			Name:    aggregate.Customer().Name(),
			Email:   aggregate.Customer().Email(),
			Address: aggregate.Customer().Address(),
		},
		Status:          int(aggregate.Status()),
		TotalAmount:     aggregate.TotalAmount(),
		EstimatedAmount: aggregate.EstimatedAmount(),
		HasCustomItems:  aggregate.HasCustomItems(),
		CreatedAt:       aggregate.CreatedAt(),
		UpdatedAt:       aggregate.UpdatedAt(),
		Lines:           lines,
	}
}

// toDomain converts a database DTO to an order domain aggregate using
// RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	customer, err := order.NewCustomer(dto.Customer.Name, dto.Customer.Email, dto.Customer.Address)
	if err != nil {
		return nil, err
	}

	lines := make([]order.PricedLine, 0, len(dto.Lines))
	for _, lineDto := range dto.Lines {
		line, lineErr := lineToDomain(lineDto)
		if lineErr != nil {
			return nil, lineErr
		}
		lines = append(lines, line)
	}

	return order.RestoreOrder(
		id,
		customer,
		lines,
		dto.TotalAmount,
		dto.EstimatedAmount,
		order.Status(dto.Status),
		dto.HasCustomItems,
		dto.CreatedAt,
		dto.UpdatedAt,
	)
}

func lineToDomain(dto LineDTO) (order.PricedLine, error) {
	itemID, err := kernel.UUIDFromBytes(dto.ItemID[:])
	if err != nil {
		return order.PricedLine{}, err
	}

	return order.NewPricedLine(
		itemID,
		dto.ItemName,
		dto.Quantity,
		dto.SelectedColor,
		dto.UnitPrice,
		dto.Subtotal,
		dto.CustomRequirements,
	)
}
