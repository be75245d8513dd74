package service

import "errors"

// Domain errors mapped to HTTP statuses by the controllers.
var (
	ErrSlotTaken        = errors.New("this time slot is already booked")
	ErrDuplicateSameDay = errors.New("you already have a booking with this lawyer on this day")
	ErrBookingNotFound  = errors.New("booking not found")
	ErrForbidden        = errors.New("you do not have access to this resource")
	ErrAlreadyCancelled = errors.New("booking is already cancelled")
	ErrAlreadyCompleted = errors.New("booking is already completed")
	ErrAlreadyPaid      = errors.New("booking is already paid")

	ErrLawyerNotFound    = errors.New("lawyer not found")
	ErrLawyerNotApproved = errors.New("lawyer is not approved yet")
	ErrInvalidSlot       = errors.New("invalid date or time slot")

	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already registered")
	ErrEmailNotVerified   = errors.New("email not verified. please check your inbox for the otp code")
	ErrInvalidOtp         = errors.New("invalid otp code")
	ErrInvalidRefresh     = errors.New("invalid refresh token")

	ErrConversationNotFound = errors.New("conversation not found")
)
