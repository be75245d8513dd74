package entity

import (
	"time"

	"github.com/google/uuid"
)

// RefundStatus is owned by the back-office process after creation.
type RefundStatus string

const (
	RefundStatusPending   RefundStatus = "Pending"
	RefundStatusProcessed RefundStatus = "Processed"
	RefundStatusRejected  RefundStatus = "Rejected"
)

// Refund is the immutable audit record created once per successful-refund
// cancellation.
type Refund struct {
	ID               uuid.UUID
	BookingID        string
	UserID           uuid.UUID
	OriginalAmount   float64
	RefundAmount     float64
	RefundPercentage int
	RefundReason     string
	BankAccount      string
	BankName         string
	Status           RefundStatus
	ProcessedAt      *time.Time
	ProcessedBy      *uuid.UUID
	AdminNote        string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
