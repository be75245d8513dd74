package service

import (
	"context"
	"time"

	"legal-consult-be/internal/entity"
	"legal-consult-be/internal/pkg/logger"
	"legal-consult-be/internal/pkg/mailer"
	"legal-consult-be/internal/repository/specification"
	"legal-consult-be/internal/repository/unitofwork"
	"legal-consult-be/pkg/cache"
	"legal-consult-be/pkg/events"
	pktNats "legal-consult-be/pkg/nats"
)

const (
	sweepInterval = 5 * time.Minute

	// Reminders go out when the appointment starts within this window.
	// The window is wider than the sweep interval so a slow tick cannot
	// skip a booking.
	reminderWindowMin = 55 * time.Minute
	reminderWindowMax = 65 * time.Minute
)

// ISchedulerService runs the periodic booking sweeps: hour-before reminders
// and moving past Confirmed bookings to Completed.
type ISchedulerService interface {
	Start(ctx context.Context)
}

type schedulerService struct {
	uowFactory     unitofwork.RepositoryFactory
	cacheStore     cache.Store
	emailService   mailer.IEmailService
	eventPublisher *pktNats.Publisher
	logger         logger.ILogger
}

func NewSchedulerService(
	uowFactory unitofwork.RepositoryFactory,
	cacheStore cache.Store,
	emailService mailer.IEmailService,
	eventPublisher *pktNats.Publisher,
	sysLogger logger.ILogger,
) ISchedulerService {
	return &schedulerService{
		uowFactory:     uowFactory,
		cacheStore:     cacheStore,
		emailService:   emailService,
		eventPublisher: eventPublisher,
		logger:         sysLogger,
	}
}

func (s *schedulerService) Start(ctx context.Context) {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.sendReminders(ctx)
			s.completePastBookings(ctx)
		}
	}
}

func (s *schedulerService) sendReminders(ctx context.Context) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	bookings, err := uow.BookingRepository().FindAllWithDetails(ctx, specification.DueForReminder{})
	if err != nil {
		s.logger.Error("Scheduler", "Reminder sweep query failed", map[string]interface{}{"error": err.Error()})
		return
	}

	now := time.Now()
	for _, booking := range bookings {
		start, err := booking.AppointmentStart()
		if err != nil {
			continue
		}
		until := start.Sub(now)
		if until < reminderWindowMin || until > reminderWindowMax {
			continue
		}

		booking.ReminderSent = true
		if err := uow.BookingRepository().Update(ctx, booking); err != nil {
			s.logger.Error("Scheduler", "Failed to mark reminder sent", map[string]interface{}{
				"booking_id": booking.ID, "error": err.Error(),
			})
			continue
		}

		if booking.User != nil && booking.User.Email != "" {
			lawyerName := ""
			if booking.Lawyer != nil && booking.Lawyer.User != nil {
				lawyerName = booking.Lawyer.User.FullName
			}
			slot := string(booking.TimeSlot.Start) + " - " + string(booking.TimeSlot.End)
			if err := s.emailService.SendBookingReminder(booking.User.Email, lawyerName, string(booking.Date), slot); err != nil {
				s.logger.Warn("Scheduler", "Reminder email failed", map[string]interface{}{
					"booking_id": booking.ID, "error": err.Error(),
				})
			}
		}

		s.logger.Info("Scheduler", "Reminder sent", map[string]interface{}{"booking_id": booking.ID})
	}
}

func (s *schedulerService) completePastBookings(ctx context.Context) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	bookings, err := uow.BookingRepository().FindAll(ctx,
		specification.Filter("status", string(entity.BookingStatusConfirmed)),
	)
	if err != nil {
		s.logger.Error("Scheduler", "Completion sweep query failed", map[string]interface{}{"error": err.Error()})
		return
	}

	now := time.Now()
	for _, booking := range bookings {
		end, err := booking.AppointmentEnd()
		if err != nil || now.Before(end) {
			continue
		}

		booking.Status = entity.BookingStatusCompleted
		if err := uow.BookingRepository().Update(ctx, booking); err != nil {
			s.logger.Error("Scheduler", "Failed to complete booking", map[string]interface{}{
				"booking_id": booking.ID, "error": err.Error(),
			})
			continue
		}

		_ = s.cacheStore.Delete(ctx,
			userBookingsKey(booking.UserID),
			bookingDetailKey(booking.ID),
			lawyerBookingsKey(booking.LawyerID),
			lawyerBookingDetailKey(booking.ID),
		)

		if s.eventPublisher != nil {
			event := events.NewEvent(events.TypeBookingCompleted, map[string]interface{}{
				"booking_id": booking.ID,
				"lawyer_id":  booking.LawyerID,
			})
			if err := s.eventPublisher.Publish(ctx, event); err != nil {
				s.logger.Warn("Scheduler", "Failed to publish event", map[string]interface{}{
					"event": events.TypeBookingCompleted, "error": err.Error(),
				})
			}
		}
	}
}
