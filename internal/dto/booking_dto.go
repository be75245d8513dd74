package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateBookingRequest struct {
	LawyerID       uuid.UUID   `json:"lawyer_id" validate:"required"`
	Date           string      `json:"date" validate:"required"`
	TimeSlot       TimeSlotDTO `json:"time_slot" validate:"required"`
	Price          float64     `json:"price" validate:"omitempty,gte=0"`
	AddressMeeting string      `json:"address_meeting"`
	ActualPhone    string      `json:"actual_phone" validate:"required"`
	Documents      []string    `json:"documents"`
}

type CreateBookingResponse struct {
	Booking      BookingDTO `json:"booking"`
	PaymentQRURL string     `json:"payment_qr_url"`
}

type BookingDTO struct {
	ID             string      `json:"id"`
	UserID         uuid.UUID   `json:"user_id"`
	LawyerID       uuid.UUID   `json:"lawyer_id"`
	Date           string      `json:"date"`
	TimeSlot       TimeSlotDTO `json:"time_slot"`
	Status         string      `json:"status"`
	PaymentStatus  string      `json:"payment_status"`
	Price          float64     `json:"price"`
	AddressMeeting string      `json:"address_meeting,omitempty"`
	ActualPhone    string      `json:"actual_phone,omitempty"`
	Documents      []string    `json:"documents,omitempty"`
	CancelReason   string      `json:"cancel_reason,omitempty"`
	CreatedAt      time.Time   `json:"created_at"`

	User   *UserDTO          `json:"user,omitempty"`
	Lawyer *LawyerProfileDTO `json:"lawyer,omitempty"`
}

// LawyerBookingDTO is the provider-side view, which additionally exposes the
// revenue split.
type LawyerBookingDTO struct {
	BookingDTO
	CommissionAmount   float64 `json:"commission_amount"`
	LawyerPayoutAmount float64 `json:"lawyer_payout_amount"`
	PayoutStatus       string  `json:"payout_status"`
}

type CancelBookingRequest struct {
	Reason      string `json:"reason" validate:"required"`
	BankAccount string `json:"bank_account"`
	BankName    string `json:"bank_name"`
}

type CancelBookingResponse struct {
	BookingID        string     `json:"booking_id"`
	Status           string     `json:"status"`
	RefundPercentage int        `json:"refund_percentage"`
	RefundAmount     float64    `json:"refund_amount"`
	RefundReason     string     `json:"refund_reason,omitempty"`
	RefundID         *uuid.UUID `json:"refund_id,omitempty"`
}

// BookingCreatedMessage is the payload queued for the confirmation-email
// worker.
type BookingCreatedMessage struct {
	BookingID string `json:"booking_id"`
}
