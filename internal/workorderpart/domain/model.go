package domain

import "github.com/shopspring/decimal"

// WorkOrderPart is a billed part line on an order. UnitPrice is the price
// actually charged; IncrementPerUnit is an optional per-unit markup
// percentage applied on top of it. Subtotal is derived, never taken from
// the caller.
type WorkOrderPart struct {
	ID               int64               `gorm:"primaryKey" json:"id"`
	WorkOrderID      int64               `gorm:"not null;index" json:"work_order_id"`
	PartID           int64               `gorm:"not null;index" json:"part_id"`
	Quantity         int                 `gorm:"not null" json:"quantity"`
	IncrementPerUnit decimal.NullDecimal `gorm:"type:decimal(10,2)" json:"increment_per_unit,omitempty"`
	UnitPrice        decimal.Decimal     `gorm:"type:decimal(10,2);not null" json:"unit_price"`
	Subtotal         decimal.Decimal     `gorm:"type:decimal(10,2);not null" json:"subtotal"`
}
