package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type InvoiceStatus struct {
	ID   int64  `gorm:"primaryKey" json:"id"`
	Name string `gorm:"uniqueIndex" json:"name"`
}

// Seeded invoice statuses.
const (
	StatusPendingID  int64 = 1
	StatusAcceptedID int64 = 2
)

// InvoiceType carries the fiscal code ("A", "B", ...) and the surcharge
// percentage that type adds on top of the base total.
type InvoiceType struct {
	ID        int64               `gorm:"primaryKey" json:"id"`
	Code      string              `gorm:"size:2;uniqueIndex" json:"code"`
	Surcharge decimal.NullDecimal `gorm:"type:decimal(10,2)" json:"surcharge,omitempty"`
}

type Invoice struct {
	ID            int64           `gorm:"primaryKey" json:"id"`
	WorkOrderID   int64           `gorm:"not null;index" json:"work_order_id"`
	ClientID      int64           `gorm:"not null;index" json:"client_id"`
	InvoiceTypeID int64           `gorm:"not null" json:"invoice_type_id"`
	StatusID      int64           `gorm:"not null" json:"status_id"`
	LaborTotal    decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"labor_total"`
	PartsTotal    decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"parts_total"`
	IVA           decimal.Decimal `gorm:"column:iva;type:decimal(10,2);not null" json:"iva"`
	Total         decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"total"`
	IssuedAt      time.Time       `gorm:"not null;default:CURRENT_TIMESTAMP" json:"issued_at"`
	Paid          decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"paid"`
	InvoiceNumber string          `gorm:"size:30" json:"invoice_number,omitempty"`
}
