package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// WorkOrderTask is a unit of labor performed on an order. External marks
// work subcontracted outside the shop; Paid tracks whether the mechanic
// has been settled for it.
type WorkOrderTask struct {
	ID          int64           `gorm:"primaryKey" json:"id"`
	WorkOrderID int64           `gorm:"not null;index" json:"work_order_id"`
	UserID      int64           `gorm:"not null;index" json:"user_id"`
	Description string          `gorm:"not null" json:"description"`
	AreaID      int64           `gorm:"not null;index" json:"area_id"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	External    bool            `gorm:"not null;default:false" json:"external"`
	Paid        bool            `gorm:"not null;default:false" json:"paid"`
	PaidAt      *time.Time      `json:"paid_at,omitempty"`
	CreatedAt   time.Time       `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}
