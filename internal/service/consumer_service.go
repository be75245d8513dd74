package service

import (
	"context"
	"encoding/json"
	"log"

	"legal-consult-be/internal/dto"
	"legal-consult-be/internal/pkg/mailer"
	"legal-consult-be/internal/repository/specification"
	"legal-consult-be/internal/repository/unitofwork"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// consumerService drains the booking-created topic and sends confirmation
// emails off the request path.
type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	pubSub       *gochannel.GoChannel
	topicName    string
	uowFactory   unitofwork.RepositoryFactory
	emailService mailer.IEmailService
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	emailService mailer.IEmailService,
) IConsumerService {
	return &consumerService{
		pubSub:       pubSub,
		topicName:    topicName,
		uowFactory:   uowFactory,
		emailService: emailService,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.BookingCreatedMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("[ERROR] Failed to unmarshal message: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	uow := cs.uowFactory.NewUnitOfWork(ctx)

	booking, err := uow.BookingRepository().FindOneWithDetails(ctx, specification.ByStringID{ID: payload.BookingID})
	if err != nil {
		log.Printf("[ERROR] Failed to load booking %s: %v", payload.BookingID, err)
		msg.Nack()
		return
	}
	if booking == nil {
		log.Printf("[WARN] Booking %s vanished before email, skipping", payload.BookingID)
		msg.Ack()
		return
	}

	lawyerName := ""
	if booking.Lawyer != nil && booking.Lawyer.User != nil {
		lawyerName = booking.Lawyer.User.FullName
	}
	if booking.User == nil || booking.User.Email == "" {
		msg.Ack()
		return
	}

	slot := string(booking.TimeSlot.Start) + " - " + string(booking.TimeSlot.End)
	if err := cs.emailService.SendBookingConfirmation(
		booking.User.Email, booking.ID, lawyerName, string(booking.Date), slot,
	); err != nil {
		log.Printf("[ERROR] Failed to send confirmation for booking %s: %v", booking.ID, err)
		msg.Nack()
		return
	}

	msg.Ack()
}
