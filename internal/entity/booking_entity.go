package entity

import (
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "Pending"
	BookingStatusConfirmed BookingStatus = "Confirmed"
	BookingStatusCancelled BookingStatus = "Cancelled"
	BookingStatusCompleted BookingStatus = "Completed"
)

type PaymentStatus string

const (
	PaymentStatusUnpaid   PaymentStatus = "Unpaid"
	PaymentStatusPaid     PaymentStatus = "Paid"
	PaymentStatusFailed   PaymentStatus = "Failed"
	PaymentStatusRefunded PaymentStatus = "Refunded"
)

type PayoutStatus string

const (
	PayoutStatusPending PayoutStatus = "Pending"
	PayoutStatusNA      PayoutStatus = "N/A"
)

// PaymentInfo is the gateway transaction snapshot stored on a paid booking.
type PaymentInfo struct {
	TransactionID string
	Gateway       string
	Content       string
	Description   string
	SenderAccount string
	SenderName    string
	RawPayload    map[string]interface{}
}

// Booking is an appointment reservation for one lawyer slot. The ID is a
// 24-character hex string so it survives round-tripping through a bank
// transfer description, where the payment webhook extracts it back out.
type Booking struct {
	ID       string
	UserID   uuid.UUID
	LawyerID uuid.UUID
	Date     CalendarDate
	TimeSlot TimeSlot

	Status        BookingStatus
	PaymentStatus PaymentStatus
	Price         float64

	AddressMeeting string
	Documents      []string
	ActualPhone    string
	ReminderSent   bool

	CommissionAmount   float64
	LawyerPayoutAmount float64
	PayoutStatus       PayoutStatus

	PaymentInfo  *PaymentInfo
	CancelReason string

	CreatedAt time.Time
	UpdatedAt time.Time

	// Populated only by the WithDetails repository reads.
	User   *User
	Lawyer *Lawyer
}

// NewBookingID returns a random 24-character lowercase hex id.
func NewBookingID() string {
	var buf [12]byte
	if _, err := rand.Read(buf[:]); err != nil {
		panic(err)
	}
	return hex.EncodeToString(buf[:])
}

// AppointmentStart resolves the booking's start instant.
func (b *Booking) AppointmentStart() (time.Time, error) {
	return Combine(b.Date, b.TimeSlot.Start)
}

// AppointmentEnd resolves the booking's end instant.
func (b *Booking) AppointmentEnd() (time.Time, error) {
	return Combine(b.Date, b.TimeSlot.End)
}

// Terminal reports whether no further lifecycle transitions are allowed.
func (b *Booking) Terminal() bool {
	return b.Status == BookingStatusCancelled || b.Status == BookingStatusCompleted
}
