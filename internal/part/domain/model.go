package domain

import "github.com/shopspring/decimal"

// Part is a catalog entry; Price is what the shop charges, Cost what it
// pays the supplier.
type Part struct {
	ID          int64           `gorm:"primaryKey" json:"id"`
	Name        string          `gorm:"size:100;not null" json:"name"`
	Description string          `gorm:"size:255" json:"description,omitempty"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	Cost        decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"cost"`
}
