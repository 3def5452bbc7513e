package domain

import "time"

// WorkArea groups labor by shop section (engine, electrics, paint, ...).
type WorkArea struct {
	ID          int64  `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"size:50;not null;uniqueIndex" json:"name"`
	Description string `json:"description,omitempty"`
}

// WorkOrderMechanic records a mechanic working an order within an area.
type WorkOrderMechanic struct {
	ID          int64     `gorm:"primaryKey" json:"id"`
	WorkOrderID int64     `gorm:"not null;index" json:"work_order_id"`
	UserID      int64     `gorm:"not null;index" json:"user_id"`
	AreaID      int64     `gorm:"not null;index" json:"area_id"`
	JoinedAt    time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"joined_at"`
	Notes       string    `json:"notes,omitempty"`
}
