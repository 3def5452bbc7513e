package domain

import (
	"time"

	authdomain "github.com/fleetline/taller/internal/auth/domain"
)

type User struct {
	ID        int64           `gorm:"primaryKey" json:"id"`
	Name      string          `gorm:"size:100;not null" json:"name"`
	Email     string          `gorm:"size:100;not null;uniqueIndex" json:"email"`
	Password  string          `gorm:"size:255;not null" json:"-"`
	Role      authdomain.Role `gorm:"type:varchar(20);not null" json:"role"`
	Active    bool            `gorm:"not null;default:true" json:"active"`
	CreatedAt time.Time       `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}
