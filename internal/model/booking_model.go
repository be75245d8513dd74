package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Booking persistence model. The partial unique index is the load-bearing
// guard against double booking: two concurrent creates for the same slot can
// both pass the application pre-check, but the second insert fails with a
// duplicate-key error. Cancelled rows are excluded so a freed slot can be
// rebooked.
type Booking struct {
	ID            string    `gorm:"type:char(24);primaryKey"`
	UserID        uuid.UUID `gorm:"type:uuid;not null;index:idx_bookings_user_day,priority:1"`
	LawyerID      uuid.UUID `gorm:"type:uuid;not null;index:idx_bookings_user_day,priority:2;uniqueIndex:uniq_lawyer_slot,priority:1,where:status <> 'Cancelled'"`
	Date          string    `gorm:"type:varchar(10);not null;index:idx_bookings_user_day,priority:3;uniqueIndex:uniq_lawyer_slot,priority:2"`
	SlotStart     string    `gorm:"type:varchar(5);not null;uniqueIndex:uniq_lawyer_slot,priority:3"`
	SlotEnd       string    `gorm:"type:varchar(5);not null;uniqueIndex:uniq_lawyer_slot,priority:4"`
	Status        string    `gorm:"type:varchar(20);not null;default:'Pending'"`
	PaymentStatus string    `gorm:"type:varchar(20);not null;default:'Unpaid'"`
	Price         float64   `gorm:"type:decimal(12,2);not null;default:0"`

	AddressMeeting string         `gorm:"type:text"`
	Documents      datatypes.JSON `gorm:"type:jsonb"`
	ActualPhone    string         `gorm:"type:varchar(20);not null"`
	ReminderSent   bool           `gorm:"not null;default:false"`

	CommissionAmount   float64 `gorm:"type:decimal(12,2);not null;default:0"`
	LawyerPayoutAmount float64 `gorm:"type:decimal(12,2);not null;default:0"`
	PayoutStatus       string  `gorm:"type:varchar(10);default:'N/A'"`

	// Gateway transaction snapshot, captured verbatim at webhook time.
	PaymentTransactionID string         `gorm:"type:varchar(100);index"`
	PaymentGateway       string         `gorm:"type:varchar(100)"`
	PaymentContent       string         `gorm:"type:text"`
	PaymentDescription   string         `gorm:"type:text"`
	PaymentSenderAccount string         `gorm:"type:varchar(50)"`
	PaymentSenderName    string         `gorm:"type:varchar(255)"`
	PaymentRawPayload    datatypes.JSON `gorm:"type:jsonb"`

	CancelReason string `gorm:"type:text"`

	CreatedAt time.Time
	UpdatedAt time.Time

	User   User   `gorm:"foreignKey:UserID"`
	Lawyer Lawyer `gorm:"foreignKey:LawyerID"`
}

func (Booking) TableName() string {
	return "bookings"
}
