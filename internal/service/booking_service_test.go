package service

import (
	"context"
	"testing"
	"time"

	"legal-consult-be/internal/dto"
	"legal-consult-be/internal/entity"
	"legal-consult-be/pkg/cache"
	"legal-consult-be/pkg/refundpolicy"
	"legal-consult-be/pkg/sepay"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBookingServiceForTest(store *fakeStore) IBookingService {
	return NewBookingService(
		&fakeUow{store: store},
		cache.NewMemoryStore(),
		sepay.Config{BankCode: "MB", AccountNumber: "0123456789"},
		nil,
		nil,
		&fakeEmailService{},
		nopLogger{},
	)
}

// slotAt formats an instant into the booking's date and one-hour time slot.
func slotAt(t time.Time) (entity.CalendarDate, entity.TimeSlot) {
	return entity.CalendarDate(t.Format("2006-01-02")), entity.TimeSlot{
		Start: entity.ClockTime(t.Format("15:04")),
		End:   entity.ClockTime(t.Add(time.Hour).Format("15:04")),
	}
}

func seedBooking(store *fakeStore, userID, lawyerID uuid.UUID, start time.Time, status entity.BookingStatus, payment entity.PaymentStatus) *entity.Booking {
	date, slot := slotAt(start)
	b := &entity.Booking{
		ID:            entity.NewBookingID(),
		UserID:        userID,
		LawyerID:      lawyerID,
		Date:          date,
		TimeSlot:      slot,
		Status:        status,
		PaymentStatus: payment,
		Price:         500000,
		PayoutStatus:  entity.PayoutStatusNA,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}
	store.bookings = append(store.bookings, b)
	return b
}

func TestCancelRejectsTerminalStates(t *testing.T) {
	userID := uuid.New()
	store := &fakeStore{}
	svc := newBookingServiceForTest(store)
	req := &dto.CancelBookingRequest{Reason: "changed my mind"}

	cancelled := seedBooking(store, userID, uuid.New(), time.Now().Add(96*time.Hour), entity.BookingStatusCancelled, entity.PaymentStatusUnpaid)
	_, err := svc.Cancel(context.Background(), userID, cancelled.ID, req)
	assert.ErrorIs(t, err, ErrAlreadyCancelled)

	completed := seedBooking(store, userID, uuid.New(), time.Now().Add(-96*time.Hour), entity.BookingStatusCompleted, entity.PaymentStatusPaid)
	_, err = svc.Cancel(context.Background(), userID, completed.ID, req)
	assert.ErrorIs(t, err, ErrAlreadyCompleted)

	// Neither attempt may leave a refund behind.
	assert.Empty(t, store.refunds)
}

func TestCancelRejectsNonOwner(t *testing.T) {
	store := &fakeStore{}
	svc := newBookingServiceForTest(store)

	booking := seedBooking(store, uuid.New(), uuid.New(), time.Now().Add(96*time.Hour), entity.BookingStatusPending, entity.PaymentStatusUnpaid)

	_, err := svc.Cancel(context.Background(), uuid.New(), booking.ID, &dto.CancelBookingRequest{Reason: "not mine"})
	assert.ErrorIs(t, err, ErrForbidden)
	assert.Equal(t, entity.BookingStatusPending, booking.Status)
}

func TestCancelPaidEarlyRefundsAndRecordsAudit(t *testing.T) {
	userID := uuid.New()
	store := &fakeStore{}
	svc := newBookingServiceForTest(store)

	booking := seedBooking(store, userID, uuid.New(), time.Now().Add(80*time.Hour), entity.BookingStatusConfirmed, entity.PaymentStatusPaid)

	resp, err := svc.Cancel(context.Background(), userID, booking.ID, &dto.CancelBookingRequest{
		Reason:      "schedule conflict",
		BankAccount: "9704221234567",
		BankName:    "Vietcombank",
	})
	require.NoError(t, err)

	assert.Equal(t, 100, resp.RefundPercentage)
	assert.Equal(t, float64(500000), resp.RefundAmount)
	assert.Equal(t, refundpolicy.ReasonFullRefund, resp.RefundReason)
	assert.Equal(t, entity.BookingStatusCancelled, booking.Status)
	assert.Equal(t, entity.PaymentStatusRefunded, booking.PaymentStatus)
	assert.Equal(t, "schedule conflict", booking.CancelReason)

	require.Len(t, store.refunds, 1)
	refund := store.refunds[0]
	assert.Equal(t, booking.ID, refund.BookingID)
	assert.Equal(t, float64(500000), refund.OriginalAmount)
	assert.Equal(t, float64(500000), refund.RefundAmount)
	// The audit record keeps the policy bucket, not the user's free text.
	assert.Equal(t, refundpolicy.ReasonFullRefund, refund.RefundReason)
	assert.Equal(t, "9704221234567", refund.BankAccount)
	assert.Equal(t, "Vietcombank", refund.BankName)
	require.NotNil(t, resp.RefundID)
	assert.Equal(t, refund.ID, *resp.RefundID)
}

func TestCancelPaidFallsBackToSenderAccount(t *testing.T) {
	userID := uuid.New()
	store := &fakeStore{}
	svc := newBookingServiceForTest(store)

	booking := seedBooking(store, userID, uuid.New(), time.Now().Add(80*time.Hour), entity.BookingStatusConfirmed, entity.PaymentStatusPaid)
	booking.PaymentInfo = &entity.PaymentInfo{
		TransactionID: "FT99001122",
		Gateway:       "MBBank",
		SenderAccount: "8887776665",
	}

	_, err := svc.Cancel(context.Background(), userID, booking.ID, &dto.CancelBookingRequest{Reason: "no longer needed"})
	require.NoError(t, err)

	require.Len(t, store.refunds, 1)
	assert.Equal(t, "8887776665", store.refunds[0].BankAccount)
	assert.Equal(t, "MBBank", store.refunds[0].BankName)
}

func TestCancelPaidLateCancelsWithoutRefund(t *testing.T) {
	userID := uuid.New()
	store := &fakeStore{}
	svc := newBookingServiceForTest(store)

	booking := seedBooking(store, userID, uuid.New(), time.Now().Add(2*time.Hour), entity.BookingStatusConfirmed, entity.PaymentStatusPaid)

	resp, err := svc.Cancel(context.Background(), userID, booking.ID, &dto.CancelBookingRequest{Reason: "last minute"})
	require.NoError(t, err)

	assert.Equal(t, 0, resp.RefundPercentage)
	assert.Equal(t, float64(0), resp.RefundAmount)
	assert.Equal(t, refundpolicy.ReasonNoRefund, resp.RefundReason)
	assert.Nil(t, resp.RefundID)
	assert.Equal(t, entity.BookingStatusCancelled, booking.Status)
	// No refund money moved, so the payment stays Paid.
	assert.Equal(t, entity.PaymentStatusPaid, booking.PaymentStatus)
	assert.Empty(t, store.refunds)
}

func TestCancelUnpaidNeverCreatesRefund(t *testing.T) {
	userID := uuid.New()
	store := &fakeStore{}
	svc := newBookingServiceForTest(store)

	booking := seedBooking(store, userID, uuid.New(), time.Now().Add(80*time.Hour), entity.BookingStatusPending, entity.PaymentStatusUnpaid)

	resp, err := svc.Cancel(context.Background(), userID, booking.ID, &dto.CancelBookingRequest{Reason: "found another lawyer"})
	require.NoError(t, err)

	assert.Equal(t, 0, resp.RefundPercentage)
	assert.Nil(t, resp.RefundID)
	assert.Equal(t, entity.BookingStatusCancelled, booking.Status)
	assert.Equal(t, entity.PaymentStatusUnpaid, booking.PaymentStatus)
	assert.Empty(t, store.refunds)
}

func TestConfirmPaymentTransitions(t *testing.T) {
	lawyerUserID := uuid.New()
	lawyer := &entity.Lawyer{
		Id:             uuid.New(),
		UserID:         lawyerUserID,
		IsApproved:     true,
		IsCollaborator: true,
		CommissionRate: 20,
	}
	store := &fakeStore{lawyers: []*entity.Lawyer{lawyer}}
	svc := newBookingServiceForTest(store)

	booking := seedBooking(store, uuid.New(), lawyer.Id, time.Now().Add(48*time.Hour), entity.BookingStatusPending, entity.PaymentStatusUnpaid)

	res, err := svc.ConfirmPayment(context.Background(), lawyerUserID, booking.ID)
	require.NoError(t, err)

	assert.Equal(t, string(entity.BookingStatusConfirmed), res.Status)
	assert.Equal(t, string(entity.PaymentStatusPaid), res.PaymentStatus)
	assert.Equal(t, float64(100000), res.CommissionAmount)
	assert.Equal(t, float64(400000), res.LawyerPayoutAmount)
	assert.Equal(t, string(entity.PayoutStatusPending), res.PayoutStatus)

	// Re-confirming an already-paid booking must be rejected.
	_, err = svc.ConfirmPayment(context.Background(), lawyerUserID, booking.ID)
	assert.ErrorIs(t, err, ErrAlreadyPaid)
}

func TestConfirmPaymentRejectsTerminalStates(t *testing.T) {
	lawyerUserID := uuid.New()
	lawyer := &entity.Lawyer{Id: uuid.New(), UserID: lawyerUserID, IsApproved: true}
	store := &fakeStore{lawyers: []*entity.Lawyer{lawyer}}
	svc := newBookingServiceForTest(store)

	cancelled := seedBooking(store, uuid.New(), lawyer.Id, time.Now().Add(48*time.Hour), entity.BookingStatusCancelled, entity.PaymentStatusUnpaid)
	_, err := svc.ConfirmPayment(context.Background(), lawyerUserID, cancelled.ID)
	assert.ErrorIs(t, err, ErrAlreadyCancelled)

	completed := seedBooking(store, uuid.New(), lawyer.Id, time.Now().Add(-48*time.Hour), entity.BookingStatusCompleted, entity.PaymentStatusUnpaid)
	_, err = svc.ConfirmPayment(context.Background(), lawyerUserID, completed.ID)
	assert.ErrorIs(t, err, ErrAlreadyCompleted)
}

func TestConfirmPaymentHidesOtherLawyersBookings(t *testing.T) {
	lawyerUserID := uuid.New()
	lawyer := &entity.Lawyer{Id: uuid.New(), UserID: lawyerUserID, IsApproved: true}
	store := &fakeStore{lawyers: []*entity.Lawyer{lawyer}}
	svc := newBookingServiceForTest(store)

	other := seedBooking(store, uuid.New(), uuid.New(), time.Now().Add(48*time.Hour), entity.BookingStatusPending, entity.PaymentStatusUnpaid)

	_, err := svc.ConfirmPayment(context.Background(), lawyerUserID, other.ID)
	assert.ErrorIs(t, err, ErrBookingNotFound)
	assert.Equal(t, entity.PaymentStatusUnpaid, other.PaymentStatus)
}
