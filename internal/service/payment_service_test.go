package service

import (
	"context"
	"testing"
	"time"

	"legal-consult-be/internal/entity"
	"legal-consult-be/pkg/cache"
	"legal-consult-be/pkg/sepay"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPaymentServiceForTest(store *fakeStore) IPaymentService {
	return NewPaymentService(
		&fakeUow{store: store},
		cache.NewMemoryStore(),
		sepay.Config{ApiKey: "secret", BankCode: "MB", AccountNumber: "0123456789"},
		nil,
		nil,
		nopLogger{},
	)
}

func TestHandleWebhookSettlesBooking(t *testing.T) {
	lawyer := &entity.Lawyer{
		Id:             uuid.New(),
		UserID:         uuid.New(),
		IsApproved:     true,
		IsCollaborator: true,
		CommissionRate: 20,
	}
	store := &fakeStore{lawyers: []*entity.Lawyer{lawyer}}
	svc := newPaymentServiceForTest(store)

	booking := seedBooking(store, uuid.New(), lawyer.Id, time.Now().Add(48*time.Hour), entity.BookingStatusPending, entity.PaymentStatusUnpaid)

	// The transfer arrives short of the booking price (bank fees). The
	// booking still settles; the difference is a back-office concern.
	msg, err := svc.HandleWebhook(context.Background(), sepay.WebhookPayload{
		Id:             101,
		Gateway:        "MBBank",
		Content:        "CT DEN " + booking.ID,
		TransferType:   "in",
		TransferAmount: booking.Price - 5000,
		ReferenceCode:  "FT26083012345",
	})
	require.NoError(t, err)
	assert.Equal(t, "ok: payment recorded", msg)

	assert.Equal(t, entity.BookingStatusConfirmed, booking.Status)
	assert.Equal(t, entity.PaymentStatusPaid, booking.PaymentStatus)
	require.NotNil(t, booking.PaymentInfo)
	assert.Equal(t, "FT26083012345", booking.PaymentInfo.TransactionID)
	assert.Equal(t, "MBBank", booking.PaymentInfo.Gateway)
	assert.Equal(t, float64(100000), booking.CommissionAmount)
	assert.Equal(t, float64(400000), booking.LawyerPayoutAmount)
	assert.Equal(t, entity.PayoutStatusPending, booking.PayoutStatus)
}

func TestHandleWebhookIsIdempotent(t *testing.T) {
	lawyer := &entity.Lawyer{Id: uuid.New(), UserID: uuid.New(), IsApproved: true}
	store := &fakeStore{lawyers: []*entity.Lawyer{lawyer}}
	svc := newPaymentServiceForTest(store)

	booking := seedBooking(store, uuid.New(), lawyer.Id, time.Now().Add(48*time.Hour), entity.BookingStatusPending, entity.PaymentStatusUnpaid)

	payload := sepay.WebhookPayload{
		Id:             102,
		Gateway:        "MBBank",
		Content:        "CT DEN " + booking.ID,
		TransferType:   "in",
		TransferAmount: booking.Price,
		ReferenceCode:  "FT26083099999",
	}

	msg, err := svc.HandleWebhook(context.Background(), payload)
	require.NoError(t, err)
	assert.Equal(t, "ok: payment recorded", msg)

	// A gateway retry with the same transaction id is acked without
	// double-processing.
	msg, err = svc.HandleWebhook(context.Background(), payload)
	require.NoError(t, err)
	assert.Equal(t, "ok: already processed", msg)
	assert.Equal(t, entity.PaymentStatusPaid, booking.PaymentStatus)
}

func TestHandleWebhookDropsUnmatchableTransfers(t *testing.T) {
	store := &fakeStore{}
	svc := newPaymentServiceForTest(store)

	msg, err := svc.HandleWebhook(context.Background(), sepay.WebhookPayload{
		TransferType: "out", TransferAmount: 100000,
	})
	require.NoError(t, err)
	assert.Equal(t, "ignored: outbound transfer", msg)

	msg, err = svc.HandleWebhook(context.Background(), sepay.WebhookPayload{
		Id: 103, Content: "no reference here", TransferType: "in", TransferAmount: 100000,
	})
	require.NoError(t, err)
	assert.Equal(t, "ignored: no booking reference", msg)

	msg, err = svc.HandleWebhook(context.Background(), sepay.WebhookPayload{
		Id: 104, Content: "CT DEN 507f1f77bcf86cd799439011", TransferType: "in", TransferAmount: 100000,
	})
	require.NoError(t, err)
	assert.Equal(t, "ignored: booking not found", msg)
}

func TestTransactionID(t *testing.T) {
	withRef := sepay.WebhookPayload{Id: 42, ReferenceCode: "FT26031012345"}
	assert.Equal(t, "FT26031012345", transactionID(withRef))

	// Some gateways omit the reference code, the numeric id still dedups.
	withoutRef := sepay.WebhookPayload{Id: 42}
	assert.Equal(t, "42", transactionID(withoutRef))
}

func TestRawPayloadMap(t *testing.T) {
	p := sepay.WebhookPayload{
		Id:             7,
		Gateway:        "MBBank",
		Content:        "CT DEN 507f1f77bcf86cd799439011",
		TransferType:   "in",
		TransferAmount: 150000,
	}

	m := rawPayloadMap(p)
	assert.Equal(t, "MBBank", m["gateway"])
	assert.Equal(t, "in", m["transferType"])
	assert.Equal(t, float64(150000), m["transferAmount"])
}
