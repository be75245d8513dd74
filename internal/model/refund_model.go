package model

import (
	"time"

	"github.com/google/uuid"
)

type Refund struct {
	ID               uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	BookingID        string    `gorm:"type:char(24);not null;index"`
	UserID           uuid.UUID `gorm:"type:uuid;not null;index"`
	OriginalAmount   float64   `gorm:"type:decimal(12,2);not null"`
	RefundAmount     float64   `gorm:"type:decimal(12,2);not null"`
	RefundPercentage int       `gorm:"not null"` // 0, 50 or 100
	RefundReason     string    `gorm:"type:text;not null"`
	BankAccount      string    `gorm:"type:varchar(50)"`
	BankName         string    `gorm:"type:varchar(255)"`
	Status           string    `gorm:"type:varchar(20);not null;default:'Pending'"`
	ProcessedAt      *time.Time
	ProcessedBy      *uuid.UUID `gorm:"type:uuid"`
	AdminNote        string     `gorm:"type:text"`
	CreatedAt        time.Time
	UpdatedAt        time.Time

	Booking Booking `gorm:"foreignKey:BookingID"`
	User    User    `gorm:"foreignKey:UserID"`
}

func (Refund) TableName() string {
	return "refunds"
}
