// Package refundpolicy computes the refund entitlement for a cancelled
// booking from the time remaining until the appointment.
package refundpolicy

import "time"

// Entitlement is the outcome of applying the cancellation policy.
type Entitlement struct {
	// Percentage of the paid price to refund: 100, 50 or 0.
	Percentage int
	// Amount in the booking currency, derived from Percentage.
	Amount float64
	// Reason is the policy bucket, recorded on the Refund for audit. It is
	// separate from whatever free-text reason the user gave for cancelling.
	Reason string
}

// Policy bucket reasons.
const (
	ReasonFullRefund = "cancelled 2+ days ahead, full refund"
	ReasonHalfRefund = "cancelled 1-2 days ahead, half refund"
	ReasonNoRefund   = "late cancellation, no refund"
)

// Evaluate applies the time-bucket policy:
//
//	2 or more full days before the appointment  -> 100%
//	1 or more full days before the appointment  -> 50%
//	less than 1 day (or past)                   -> 0%
//
// The day count is fractional, so 47h before the slot counts as 1 day.
func Evaluate(price float64, appointmentStart, now time.Time) Entitlement {
	daysUntil := appointmentStart.Sub(now).Hours() / 24

	var pct int
	var reason string
	switch {
	case daysUntil >= 2:
		pct, reason = 100, ReasonFullRefund
	case daysUntil >= 1:
		pct, reason = 50, ReasonHalfRefund
	default:
		pct, reason = 0, ReasonNoRefund
	}

	return Entitlement{
		Percentage: pct,
		Amount:     price * float64(pct) / 100,
		Reason:     reason,
	}
}
