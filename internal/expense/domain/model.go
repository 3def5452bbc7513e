package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type ExpenseType struct {
	ID   int64  `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:100;not null;uniqueIndex" json:"name"`
}

// Expense is an outgoing cash movement. ExpenseTypeID is nullable; the
// type row may be removed without orphaning history.
type Expense struct {
	ID            int64           `gorm:"primaryKey" json:"id"`
	Date          time.Time       `gorm:"type:date;not null" json:"date"`
	Amount        decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"amount"`
	Description   string          `gorm:"size:255" json:"description,omitempty"`
	ExpenseTypeID *int64          `gorm:"index" json:"expense_type_id,omitempty"`
	CreatedAt     time.Time       `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}
