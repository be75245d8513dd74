package service

import (
	"context"
	"encoding/json"
	"time"

	"legal-consult-be/internal/dto"
	"legal-consult-be/internal/entity"
	"legal-consult-be/internal/pkg/logger"
	"legal-consult-be/internal/repository/specification"
	"legal-consult-be/internal/repository/unitofwork"
	"legal-consult-be/internal/websocket"
	"legal-consult-be/pkg/cache"
	"legal-consult-be/pkg/events"
	pktNats "legal-consult-be/pkg/nats"
	"legal-consult-be/pkg/sepay"

	"github.com/google/uuid"
)

type IPaymentService interface {
	// BuildQR returns the bank-transfer QR for an arbitrary amount and
	// transfer description. Pure URL construction, nothing is read or
	// written.
	BuildQR(amount float64, description string) *dto.PaymentQRResponse
	// CreateQR returns the bank-transfer QR for an unpaid booking.
	CreateQR(ctx context.Context, userID uuid.UUID, bookingID string) (*dto.PaymentQRResponse, error)
	// HandleWebhook reconciles an inbound transfer notification against a
	// booking. The returned message is echoed to the gateway; a nil error
	// always acks so the gateway stops retrying non-retriable payloads.
	HandleWebhook(ctx context.Context, payload sepay.WebhookPayload) (string, error)
}

type paymentService struct {
	uowFactory     unitofwork.RepositoryFactory
	cacheStore     cache.Store
	sepayCfg       sepay.Config
	eventPublisher *pktNats.Publisher
	hub            *websocket.Hub
	logger         logger.ILogger
}

func NewPaymentService(
	uowFactory unitofwork.RepositoryFactory,
	cacheStore cache.Store,
	sepayCfg sepay.Config,
	eventPublisher *pktNats.Publisher,
	hub *websocket.Hub,
	sysLogger logger.ILogger,
) IPaymentService {
	return &paymentService{
		uowFactory:     uowFactory,
		cacheStore:     cacheStore,
		sepayCfg:       sepayCfg,
		eventPublisher: eventPublisher,
		hub:            hub,
		logger:         sysLogger,
	}
}

func (s *paymentService) BuildQR(amount float64, description string) *dto.PaymentQRResponse {
	return &dto.PaymentQRResponse{
		Amount:      amount,
		Description: description,
		QRURL:       s.sepayCfg.QRURL(amount, description),
	}
}

func (s *paymentService) CreateQR(ctx context.Context, userID uuid.UUID, bookingID string) (*dto.PaymentQRResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	booking, err := uow.BookingRepository().FindOne(ctx, specification.ByStringID{ID: bookingID})
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, ErrBookingNotFound
	}
	if booking.UserID != userID {
		return nil, ErrForbidden
	}
	if booking.PaymentStatus == entity.PaymentStatusPaid {
		return nil, ErrAlreadyPaid
	}
	if booking.Terminal() {
		return nil, ErrAlreadyCancelled
	}

	return &dto.PaymentQRResponse{
		BookingID: booking.ID,
		Amount:    booking.Price,
		QRURL:     s.sepayCfg.QRURL(booking.Price, booking.ID),
	}, nil
}

func (s *paymentService) HandleWebhook(ctx context.Context, payload sepay.WebhookPayload) (string, error) {
	if payload.TransferType != "in" {
		return "ignored: outbound transfer", nil
	}

	ref := sepay.ExtractBookingReference(payload)
	if ref == "" {
		s.logger.Warn("Payment", "Webhook without booking reference", map[string]interface{}{
			"transaction_id": payload.Id,
			"content":        payload.Content,
		})
		return "ignored: no booking reference", nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	booking, err := uow.BookingRepository().FindOne(ctx, specification.ByStringID{ID: ref})
	if err != nil {
		return "", err
	}
	if booking == nil {
		s.logger.Warn("Payment", "Webhook references unknown booking", map[string]interface{}{
			"booking_ref":    ref,
			"transaction_id": payload.Id,
		})
		return "ignored: booking not found", nil
	}

	txID := transactionID(payload)

	// Gateway retries deliver the same transaction id. First write wins,
	// repeats are acked without side effects.
	if booking.PaymentInfo != nil && booking.PaymentInfo.TransactionID == txID {
		return "ok: already processed", nil
	}
	if booking.PaymentStatus == entity.PaymentStatusPaid {
		s.logger.Warn("Payment", "Transfer for already-paid booking", map[string]interface{}{
			"booking_id":     booking.ID,
			"transaction_id": txID,
		})
		return "ignored: booking already paid", nil
	}
	if booking.Terminal() {
		return "ignored: booking is " + string(booking.Status), nil
	}

	// Amount mismatches (bank fees, rounding) are logged but still settle
	// the booking; reconciling the difference is a back-office concern.
	if payload.TransferAmount != booking.Price {
		s.logger.Warn("Payment", "Transfer amount differs from booking price", map[string]interface{}{
			"booking_id": booking.ID,
			"expected":   booking.Price,
			"received":   payload.TransferAmount,
		})
	}

	lawyer, err := uow.LawyerRepository().FindOne(ctx, specification.ByID{ID: booking.LawyerID})
	if err != nil {
		return "", err
	}

	booking.PaymentStatus = entity.PaymentStatusPaid
	booking.Status = entity.BookingStatusConfirmed
	booking.PaymentInfo = &entity.PaymentInfo{
		TransactionID: txID,
		Gateway:       payload.Gateway,
		Content:       payload.Content,
		Description:   payload.Description,
		SenderAccount: sepay.ExtractSenderAccount(payload, s.sepayCfg.AccountNumber),
		RawPayload:    rawPayloadMap(payload),
	}

	// Revenue split is snapshotted at payment time so later rate changes do
	// not rewrite settled bookings.
	if lawyer != nil && lawyer.IsCollaborator {
		booking.CommissionAmount = booking.Price * lawyer.CommissionRate / 100
		booking.LawyerPayoutAmount = booking.Price - booking.CommissionAmount
		booking.PayoutStatus = entity.PayoutStatusPending
	} else {
		booking.CommissionAmount = 0
		booking.LawyerPayoutAmount = booking.Price
		booking.PayoutStatus = entity.PayoutStatusNA
	}

	if err := uow.BookingRepository().Update(ctx, booking); err != nil {
		return "", err
	}

	err = s.cacheStore.Delete(ctx,
		userBookingsKey(booking.UserID),
		bookingDetailKey(booking.ID),
		lawyerBookingsKey(booking.LawyerID),
		lawyerBookingDetailKey(booking.ID),
	)
	if err != nil {
		s.logger.Warn("Payment", "Cache invalidation failed", map[string]interface{}{
			"booking_id": booking.ID, "error": err.Error(),
		})
	}

	if s.hub != nil {
		s.hub.Publish("booking:"+booking.ID, "payment_success", dto.PaymentSuccessEvent{
			BookingID:     booking.ID,
			Amount:        payload.TransferAmount,
			TransactionID: txID,
		})
	}

	if s.eventPublisher != nil {
		event := events.NewEvent(events.TypePaymentSucceeded, map[string]interface{}{
			"booking_id":     booking.ID,
			"user_id":        booking.UserID,
			"lawyer_id":      booking.LawyerID,
			"amount":         payload.TransferAmount,
			"transaction_id": txID,
			"time":           time.Now().Format(time.RFC3339),
		})
		if err := s.eventPublisher.Publish(ctx, event); err != nil {
			s.logger.Warn("Payment", "Failed to publish event", map[string]interface{}{
				"event": events.TypePaymentSucceeded, "error": err.Error(),
			})
		}
	}

	s.logger.Info("Payment", "Booking paid and confirmed", map[string]interface{}{
		"booking_id":     booking.ID,
		"transaction_id": txID,
		"amount":         payload.TransferAmount,
	})

	return "ok: payment recorded", nil
}

// transactionID prefers the gateway reference code and falls back to the
// numeric webhook id.
func transactionID(p sepay.WebhookPayload) string {
	if p.ReferenceCode != "" {
		return p.ReferenceCode
	}
	raw, _ := json.Marshal(p.Id)
	return string(raw)
}

func rawPayloadMap(p sepay.WebhookPayload) map[string]interface{} {
	raw, _ := json.Marshal(p)
	var m map[string]interface{}
	_ = json.Unmarshal(raw, &m)
	return m
}
