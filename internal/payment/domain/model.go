package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type PaymentMethod struct {
	ID   int64  `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:50;not null" json:"name"`
}

// CheckType tells a paper check from an electronic (echeq) one.
type CheckType string

const (
	CheckPhysical   CheckType = "PHYSICAL"
	CheckElectronic CheckType = "ELECTRONIC"
)

func (t CheckType) Valid() bool {
	return t == CheckPhysical || t == CheckElectronic
}

// BankCheck is a check received as (part of) a payment. ExchangeDate is
// set once, when the check is cashed; there is no reversal.
type BankCheck struct {
	ID           int64           `gorm:"primaryKey" json:"id"`
	PaymentID    int64           `gorm:"not null;index" json:"payment_id"`
	BankName     string          `gorm:"size:100;not null" json:"bank_name"`
	CheckNumber  string          `gorm:"size:50;not null" json:"check_number"`
	Amount       decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"amount"`
	Type         CheckType       `gorm:"type:varchar(20);not null" json:"type"`
	IssuedAt     time.Time       `gorm:"not null;default:CURRENT_TIMESTAMP" json:"issued_at"`
	DueDate      *time.Time      `json:"due_date,omitempty"`
	ExchangeDate *time.Time      `json:"exchange_date,omitempty"`
}

// Payment is immutable after creation except for its checks' exchange
// dates.
type Payment struct {
	ID        int64           `gorm:"primaryKey" json:"id"`
	InvoiceID int64           `gorm:"not null;index" json:"invoice_id"`
	MethodID  int64           `gorm:"not null" json:"method_id"`
	Amount    decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"amount"`
	Date      time.Time       `gorm:"not null;default:CURRENT_TIMESTAMP" json:"date"`
	Reference string          `gorm:"size:100" json:"reference,omitempty"`
	Notes     string          `gorm:"size:255" json:"notes,omitempty"`

	Method     *PaymentMethod `gorm:"foreignKey:MethodID" json:"method,omitempty"`
	BankChecks []BankCheck    `gorm:"foreignKey:PaymentID" json:"bank_checks"`
}
