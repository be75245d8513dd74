package sepay

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVerifyAuthorization(t *testing.T) {
	cfg := Config{ApiKey: "secret-key"}

	tests := []struct {
		name    string
		cfg     Config
		header  string
		wantErr error
	}{
		{name: "valid header", cfg: cfg, header: "Apikey secret-key", wantErr: nil},
		{name: "missing header", cfg: cfg, header: "", wantErr: ErrMissingOrMalformedAuth},
		{name: "bearer scheme rejected", cfg: cfg, header: "Bearer secret-key", wantErr: ErrMissingOrMalformedAuth},
		{name: "wrong key", cfg: cfg, header: "Apikey other-key", wantErr: ErrInvalidApiKey},
		{name: "unconfigured key", cfg: Config{}, header: "Apikey secret-key", wantErr: ErrMissingConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.VerifyAuthorization(tt.header)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestExtractBookingReference(t *testing.T) {
	tests := []struct {
		name    string
		payload WebhookPayload
		want    string
	}{
		{
			name:    "reference in content",
			payload: WebhookPayload{Content: "CT DEN 507f1f77bcf86cd799439011 thanh toan"},
			want:    "507f1f77bcf86cd799439011",
		},
		{
			name: "falls back to description",
			payload: WebhookPayload{
				Content:     "CT DEN thanh toan lich hen",
				Description: "MBVCB ref 65a1b2c3d4e5f6a7b8c9d0e1",
			},
			want: "65a1b2c3d4e5f6a7b8c9d0e1",
		},
		{
			name: "content wins over description",
			payload: WebhookPayload{
				Content:     "aaaaaaaaaaaaaaaaaaaaaaaa x",
				Description: "bbbbbbbbbbbbbbbbbbbbbbbb",
			},
			want: "aaaaaaaaaaaaaaaaaaaaaaaa",
		},
		{
			name:    "mixed case hex accepted",
			payload: WebhookPayload{Content: "ref 507F1F77BCF86CD799439011"},
			want:    "507F1F77BCF86CD799439011",
		},
		{
			name:    "too short hex ignored",
			payload: WebhookPayload{Content: "ref 507f1f77bcf86cd79943901"},
			want:    "",
		},
		{
			name:    "no reference",
			payload: WebhookPayload{Content: "chuyen tien", Description: "khong ro"},
			want:    "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractBookingReference(tt.payload))
		})
	}
}

func TestExtractSenderAccount(t *testing.T) {
	merchant := "0123456789"

	tests := []struct {
		name    string
		payload WebhookPayload
		want    string
	}{
		{
			name:    "sender account in content",
			payload: WebhookPayload{Content: "tu 99887766554 den 0123456789"},
			want:    "99887766554",
		},
		{
			name:    "skips merchant account",
			payload: WebhookPayload{Content: "den 0123456789", Description: "tu 5544332211"},
			want:    "5544332211",
		},
		{
			name:    "short digit runs ignored",
			payload: WebhookPayload{Content: "ma 1234567 giao dich"},
			want:    "",
		},
		{
			name:    "nothing to extract",
			payload: WebhookPayload{Content: "chuyen khoan"},
			want:    "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractSenderAccount(tt.payload, merchant))
		})
	}
}

func TestQRURL(t *testing.T) {
	cfg := Config{
		BankCode:      "MB",
		AccountNumber: "0123456789",
	}

	got := cfg.QRURL(150000, "507f1f77bcf86cd799439011")

	assert.Contains(t, got, "https://qr.sepay.vn/img?")
	assert.Contains(t, got, "acc=0123456789")
	assert.Contains(t, got, "bank=MB")
	assert.Contains(t, got, "amount=150000")
	assert.Contains(t, got, "des=507f1f77bcf86cd799439011")
}
