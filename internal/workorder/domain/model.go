package domain

import "time"

type WorkOrderStatus struct {
	ID          int64  `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"not null;uniqueIndex" json:"name"`
	Description string `json:"description,omitempty"`
}

// StatusFinalizedID is the seeded terminal status. Earnings queries use it
// to restrict tasks to closed orders.
const StatusFinalizedID int64 = 3

type WorkOrder struct {
	ID         int64     `gorm:"primaryKey" json:"id"`
	ClientID   int64     `gorm:"not null;index" json:"client_id"`
	TruckID    int64     `gorm:"not null;index" json:"truck_id"`
	StatusID   int64     `gorm:"not null;index" json:"status_id"`
	ReviewedBy *int64    `gorm:"index" json:"reviewed_by,omitempty"`
	Notes      string    `json:"notes,omitempty"`
	CreatedAt  time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`

	// IsEditable is derived on read: true until an invoice references the
	// order. Never persisted.
	IsEditable bool `gorm:"-" json:"is_editable"`
}
