package sepay

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// Webhook verification errors, mapped to HTTP statuses by the controller.
var (
	ErrMissingConfig          = errors.New("sepay webhook api key is not configured")
	ErrMissingOrMalformedAuth = errors.New("missing or malformed authorization header")
	ErrInvalidApiKey          = errors.New("invalid api key")
)

var (
	bookingRefPattern    = regexp.MustCompile(`[0-9a-fA-F]{24}`)
	senderAccountPattern = regexp.MustCompile(`\b\d{8,15}\b`)
)

// WebhookPayload is the transaction notification SePay posts on inbound
// bank transfers.
type WebhookPayload struct {
	Id              int64   `json:"id"`
	Gateway         string  `json:"gateway"`
	TransactionDate string  `json:"transactionDate"`
	AccountNumber   string  `json:"accountNumber"`
	Code            *string `json:"code"`
	Content         string  `json:"content"`
	TransferType    string  `json:"transferType"`
	TransferAmount  float64 `json:"transferAmount"`
	Accumulated     float64 `json:"accumulated"`
	SubAccount      *string `json:"subAccount"`
	ReferenceCode   string  `json:"referenceCode"`
	Description     string  `json:"description"`
}

// Config carries the merchant-side SePay settings.
type Config struct {
	ApiKey        string
	BankCode      string
	AccountNumber string
	AccountName   string
}

// VerifyAuthorization checks the webhook Authorization header against the
// configured api key. The header format is "Apikey <key>".
func (c Config) VerifyAuthorization(header string) error {
	if c.ApiKey == "" {
		return ErrMissingConfig
	}
	const prefix = "Apikey "
	if !strings.HasPrefix(header, prefix) {
		return ErrMissingOrMalformedAuth
	}
	if header[len(prefix):] != c.ApiKey {
		return ErrInvalidApiKey
	}
	return nil
}

// QRURL builds the SePay QR image url for a bank transfer. Booking payments
// put the booking id in the description so the webhook can extract it back
// out.
func (c Config) QRURL(amount float64, description string) string {
	q := url.Values{}
	q.Set("acc", c.AccountNumber)
	q.Set("bank", c.BankCode)
	q.Set("amount", fmt.Sprintf("%.0f", amount))
	q.Set("des", description)
	return "https://qr.sepay.vn/img?" + q.Encode()
}

// ExtractBookingReference finds the first 24-character hex booking id in the
// transfer content, falling back to the description. Returns "" when no
// reference is present.
func ExtractBookingReference(p WebhookPayload) string {
	if ref := bookingRefPattern.FindString(p.Content); ref != "" {
		return ref
	}
	return bookingRefPattern.FindString(p.Description)
}

// ExtractSenderAccount scans the transfer text for an 8 to 15 digit account
// number that is not the merchant's own. Banks format this differently per
// gateway, so this is best effort and may return "".
func ExtractSenderAccount(p WebhookPayload, merchantAccount string) string {
	for _, text := range []string{p.Content, p.Description} {
		for _, candidate := range senderAccountPattern.FindAllString(text, -1) {
			if candidate != merchantAccount {
				return candidate
			}
		}
	}
	return ""
}
