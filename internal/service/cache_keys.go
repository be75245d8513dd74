package service

import (
	"time"

	"github.com/google/uuid"
)

// Cache key builders. The invalidation sets in booking and payment flows must
// cover every key that embeds the affected booking's data.

const (
	bookingListTTL   = 10 * time.Minute
	bookingDetailTTL = time.Hour
	scheduleTTL      = time.Hour
	lawyerDetailTTL  = time.Hour
)

func userBookingsKey(userID uuid.UUID) string {
	return "user_bookings:" + userID.String()
}

func bookingDetailKey(bookingID string) string {
	return "booking_detail:" + bookingID
}

func lawyerBookingsKey(lawyerID uuid.UUID) string {
	return "lawyer_bookings:" + lawyerID.String()
}

func lawyerBookingDetailKey(bookingID string) string {
	return "lawyer_booking_detail:" + bookingID
}

func myScheduleKey(userID uuid.UUID) string {
	return "my_schedule:" + userID.String()
}

func lawyerScheduleKey(lawyerID uuid.UUID) string {
	return "lawyer_schedule_id:" + lawyerID.String()
}

func lawyerDetailKey(userID uuid.UUID) string {
	return "lawyer_detail:" + userID.String()
}
