package domain

import "time"

type Truck struct {
	ID           int64     `gorm:"primaryKey" json:"id"`
	ClientID     int64     `gorm:"not null;index" json:"client_id"`
	LicensePlate string    `gorm:"size:20;not null;uniqueIndex" json:"license_plate"`
	Brand        string    `gorm:"size:50" json:"brand,omitempty"`
	Model        string    `gorm:"size:50" json:"model,omitempty"`
	Year         int       `json:"year,omitempty"`
	CreatedAt    time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}
