package dto

// CreateQRRequest builds a bank-transfer QR from an amount and a transfer
// description. booking_id is a convenience variant that derives both from an
// unpaid booking owned by the caller.
type CreateQRRequest struct {
	Amount      float64 `json:"amount" validate:"required_without=BookingID,omitempty,gt=0"`
	Description string  `json:"description" validate:"required_without=BookingID"`
	BookingID   string  `json:"booking_id" validate:"omitempty,len=24,hexadecimal"`
}

type PaymentQRResponse struct {
	BookingID   string  `json:"booking_id,omitempty"`
	Amount      float64 `json:"amount"`
	Description string  `json:"description,omitempty"`
	QRURL       string  `json:"qr_url"`
}

type WebhookAckResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// PaymentSuccessEvent is pushed to websocket subscribers of booking:<id>.
type PaymentSuccessEvent struct {
	BookingID     string  `json:"booking_id"`
	Amount        float64 `json:"amount"`
	TransactionID string  `json:"transaction_id"`
}
