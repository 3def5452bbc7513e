package domain

import "time"

// ClientType distinguishes individuals from companies for invoicing.
type ClientType string

const (
	ClientTypePersona ClientType = "persona"
	ClientTypeEmpresa ClientType = "empresa"
)

func (t ClientType) Valid() bool {
	return t == ClientTypePersona || t == ClientTypeEmpresa
}

type Client struct {
	ID             int64      `gorm:"primaryKey" json:"id"`
	Type           ClientType `gorm:"type:varchar(20);not null" json:"type"`
	Name           string     `gorm:"size:100;not null" json:"name"`
	DocumentNumber string     `gorm:"size:30" json:"document_number,omitempty"`
	Phone          string     `gorm:"size:30" json:"phone,omitempty"`
	CreatedAt      time.Time  `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}
