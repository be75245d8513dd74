package service

import (
	"context"
	"encoding/json"
	"time"

	"legal-consult-be/internal/dto"
	"legal-consult-be/internal/entity"
	"legal-consult-be/internal/pkg/logger"
	"legal-consult-be/internal/pkg/mailer"
	"legal-consult-be/internal/repository/implementation"
	"legal-consult-be/internal/repository/specification"
	"legal-consult-be/internal/repository/unitofwork"
	"legal-consult-be/pkg/cache"
	"legal-consult-be/pkg/events"
	pktNats "legal-consult-be/pkg/nats"
	"legal-consult-be/pkg/refundpolicy"
	"legal-consult-be/pkg/sepay"

	"github.com/google/uuid"
)

type IBookingService interface {
	Reserve(ctx context.Context, userID uuid.UUID, req *dto.CreateBookingRequest) (*dto.CreateBookingResponse, error)
	GetUserBookings(ctx context.Context, userID uuid.UUID) ([]*dto.BookingDTO, error)
	GetBookingDetail(ctx context.Context, userID uuid.UUID, bookingID string) (*dto.BookingDTO, error)
	GetLawyerBookings(ctx context.Context, lawyerUserID uuid.UUID) ([]*dto.LawyerBookingDTO, error)
	GetLawyerBookingDetail(ctx context.Context, lawyerUserID uuid.UUID, bookingID string) (*dto.LawyerBookingDTO, error)
	ConfirmPayment(ctx context.Context, lawyerUserID uuid.UUID, bookingID string) (*dto.LawyerBookingDTO, error)
	Cancel(ctx context.Context, userID uuid.UUID, bookingID string, req *dto.CancelBookingRequest) (*dto.CancelBookingResponse, error)
}

type bookingService struct {
	uowFactory       unitofwork.RepositoryFactory
	cacheStore       cache.Store
	sepayCfg         sepay.Config
	publisherService IPublisherService
	eventPublisher   *pktNats.Publisher
	emailService     mailer.IEmailService
	logger           logger.ILogger
}

func NewBookingService(
	uowFactory unitofwork.RepositoryFactory,
	cacheStore cache.Store,
	sepayCfg sepay.Config,
	publisherService IPublisherService,
	eventPublisher *pktNats.Publisher,
	emailService mailer.IEmailService,
	sysLogger logger.ILogger,
) IBookingService {
	return &bookingService{
		uowFactory:       uowFactory,
		cacheStore:       cacheStore,
		sepayCfg:         sepayCfg,
		publisherService: publisherService,
		eventPublisher:   eventPublisher,
		emailService:     emailService,
		logger:           sysLogger,
	}
}

func (s *bookingService) Reserve(ctx context.Context, userID uuid.UUID, req *dto.CreateBookingRequest) (*dto.CreateBookingResponse, error) {
	date, err := entity.ParseCalendarDate(req.Date)
	if err != nil {
		return nil, ErrInvalidSlot
	}
	slot := entity.TimeSlot{
		Start: entity.ClockTime(req.TimeSlot.Start),
		End:   entity.ClockTime(req.TimeSlot.End),
	}
	if !slot.Valid() {
		return nil, ErrInvalidSlot
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	lawyer, err := uow.LawyerRepository().FindOne(ctx, specification.ByID{ID: req.LawyerID})
	if err != nil {
		return nil, err
	}
	if lawyer == nil {
		return nil, ErrLawyerNotFound
	}
	if !lawyer.IsApproved {
		return nil, ErrLawyerNotApproved
	}

	// One active booking per user, lawyer and day.
	sameDay, err := uow.BookingRepository().FindOne(ctx,
		specification.ByUserLawyerDay{UserID: userID, LawyerID: lawyer.Id, Date: req.Date},
		specification.NotCancelled{},
	)
	if err != nil {
		return nil, err
	}
	if sameDay != nil {
		return nil, ErrDuplicateSameDay
	}

	// Fast-path slot check. The partial unique index is the real guard,
	// this only gives a nicer error without a failed insert.
	taken, err := uow.BookingRepository().FindOne(ctx,
		specification.BySlot{
			LawyerID:  lawyer.Id,
			Date:      req.Date,
			SlotStart: req.TimeSlot.Start,
			SlotEnd:   req.TimeSlot.End,
		},
		specification.NotCancelled{},
	)
	if err != nil {
		return nil, err
	}
	if taken != nil {
		return nil, ErrSlotTaken
	}

	booking := &entity.Booking{
		ID:             entity.NewBookingID(),
		UserID:         userID,
		LawyerID:       lawyer.Id,
		Date:           date,
		TimeSlot:       slot,
		Status:         entity.BookingStatusPending,
		PaymentStatus:  entity.PaymentStatusUnpaid,
		Price:          req.Price,
		AddressMeeting: req.AddressMeeting,
		ActualPhone:    req.ActualPhone,
		Documents:      req.Documents,
		PayoutStatus:   entity.PayoutStatusNA,
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}

	if err := uow.BookingRepository().Create(ctx, booking); err != nil {
		if implementation.IsDuplicateKeyError(err) {
			return nil, ErrSlotTaken
		}
		return nil, err
	}

	s.invalidateBookingCaches(ctx, booking)

	// Confirmation email goes through the worker queue.
	if s.publisherService != nil {
		msgJson, _ := json.Marshal(dto.BookingCreatedMessage{BookingID: booking.ID})
		if err := s.publisherService.Publish(ctx, msgJson); err != nil {
			s.logger.Warn("Booking", "Failed to queue confirmation email", map[string]interface{}{
				"booking_id": booking.ID, "error": err.Error(),
			})
		}
	}

	s.publishEvent(ctx, events.TypeBookingCreated, map[string]interface{}{
		"booking_id": booking.ID,
		"user_id":    userID,
		"lawyer_id":  lawyer.Id,
		"date":       req.Date,
	})

	return &dto.CreateBookingResponse{
		Booking:      *mapBookingToDTO(booking),
		PaymentQRURL: s.sepayCfg.QRURL(booking.Price, booking.ID),
	}, nil
}

func (s *bookingService) GetUserBookings(ctx context.Context, userID uuid.UUID) ([]*dto.BookingDTO, error) {
	key := userBookingsKey(userID)
	var cached []*dto.BookingDTO
	if found, _ := cache.GetJSON(ctx, s.cacheStore, key, &cached); found {
		return cached, nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	bookings, err := uow.BookingRepository().FindAllWithDetails(ctx,
		specification.UserOwnedBy{UserID: userID},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.BookingDTO, 0, len(bookings))
	for _, b := range bookings {
		result = append(result, mapBookingToDTO(b))
	}

	_ = cache.SetJSON(ctx, s.cacheStore, key, result, bookingListTTL)
	return result, nil
}

func (s *bookingService) GetBookingDetail(ctx context.Context, userID uuid.UUID, bookingID string) (*dto.BookingDTO, error) {
	key := bookingDetailKey(bookingID)
	var cached dto.BookingDTO
	if found, _ := cache.GetJSON(ctx, s.cacheStore, key, &cached); found {
		if cached.UserID != userID {
			return nil, ErrForbidden
		}
		return &cached, nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	booking, err := uow.BookingRepository().FindOneWithDetails(ctx, specification.ByStringID{ID: bookingID})
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, ErrBookingNotFound
	}
	if booking.UserID != userID {
		return nil, ErrForbidden
	}

	result := mapBookingToDTO(booking)
	_ = cache.SetJSON(ctx, s.cacheStore, key, result, bookingDetailTTL)
	return result, nil
}

func (s *bookingService) GetLawyerBookings(ctx context.Context, lawyerUserID uuid.UUID) ([]*dto.LawyerBookingDTO, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	lawyer, err := uow.LawyerRepository().FindOne(ctx, specification.Filter("user_id", lawyerUserID))
	if err != nil {
		return nil, err
	}
	if lawyer == nil {
		return nil, ErrLawyerNotFound
	}

	key := lawyerBookingsKey(lawyer.Id)
	var cached []*dto.LawyerBookingDTO
	if found, _ := cache.GetJSON(ctx, s.cacheStore, key, &cached); found {
		return cached, nil
	}

	bookings, err := uow.BookingRepository().FindAllWithDetails(ctx,
		specification.LawyerOwnedBy{LawyerID: lawyer.Id},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.LawyerBookingDTO, 0, len(bookings))
	for _, b := range bookings {
		result = append(result, mapBookingToLawyerDTO(b))
	}

	_ = cache.SetJSON(ctx, s.cacheStore, key, result, bookingListTTL)
	return result, nil
}

func (s *bookingService) GetLawyerBookingDetail(ctx context.Context, lawyerUserID uuid.UUID, bookingID string) (*dto.LawyerBookingDTO, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	lawyer, err := uow.LawyerRepository().FindOne(ctx, specification.Filter("user_id", lawyerUserID))
	if err != nil {
		return nil, err
	}
	if lawyer == nil {
		return nil, ErrLawyerNotFound
	}

	key := lawyerBookingDetailKey(bookingID)
	var cached dto.LawyerBookingDTO
	if found, _ := cache.GetJSON(ctx, s.cacheStore, key, &cached); found {
		if cached.LawyerID != lawyer.Id {
			return nil, ErrForbidden
		}
		return &cached, nil
	}

	booking, err := uow.BookingRepository().FindOneWithDetails(ctx, specification.ByStringID{ID: bookingID})
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, ErrBookingNotFound
	}
	if booking.LawyerID != lawyer.Id {
		return nil, ErrForbidden
	}

	result := mapBookingToLawyerDTO(booking)
	_ = cache.SetJSON(ctx, s.cacheStore, key, result, bookingDetailTTL)
	return result, nil
}

// ConfirmPayment is the manual fallback for transfers the webhook never saw,
// e.g. the customer paid cash or the gateway dropped the notification. Only
// the booked lawyer may confirm.
func (s *bookingService) ConfirmPayment(ctx context.Context, lawyerUserID uuid.UUID, bookingID string) (*dto.LawyerBookingDTO, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	lawyer, err := uow.LawyerRepository().FindOne(ctx, specification.Filter("user_id", lawyerUserID))
	if err != nil {
		return nil, err
	}
	if lawyer == nil {
		return nil, ErrLawyerNotFound
	}

	booking, err := uow.BookingRepository().FindOne(ctx, specification.ByStringID{ID: bookingID})
	if err != nil {
		return nil, err
	}
	// Not-owned reads as not-found so the endpoint does not leak other
	// lawyers' booking ids.
	if booking == nil || booking.LawyerID != lawyer.Id {
		return nil, ErrBookingNotFound
	}
	if booking.PaymentStatus == entity.PaymentStatusPaid {
		return nil, ErrAlreadyPaid
	}
	switch booking.Status {
	case entity.BookingStatusCancelled:
		return nil, ErrAlreadyCancelled
	case entity.BookingStatusCompleted:
		return nil, ErrAlreadyCompleted
	}

	booking.Status = entity.BookingStatusConfirmed
	booking.PaymentStatus = entity.PaymentStatusPaid
	if lawyer.IsCollaborator {
		booking.CommissionAmount = booking.Price * lawyer.CommissionRate / 100
		booking.LawyerPayoutAmount = booking.Price - booking.CommissionAmount
		booking.PayoutStatus = entity.PayoutStatusPending
	} else {
		booking.CommissionAmount = 0
		booking.LawyerPayoutAmount = booking.Price
		booking.PayoutStatus = entity.PayoutStatusNA
	}

	if err := uow.BookingRepository().Update(ctx, booking); err != nil {
		return nil, err
	}

	s.invalidateBookingCaches(ctx, booking)

	s.publishEvent(ctx, events.TypePaymentSucceeded, map[string]interface{}{
		"booking_id": booking.ID,
		"user_id":    booking.UserID,
		"lawyer_id":  booking.LawyerID,
		"amount":     booking.Price,
		"manual":     true,
	})

	return mapBookingToLawyerDTO(booking), nil
}

func (s *bookingService) Cancel(ctx context.Context, userID uuid.UUID, bookingID string, req *dto.CancelBookingRequest) (*dto.CancelBookingResponse, error) {
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
	switch booking.Status {
	case entity.BookingStatusCancelled:
		return nil, ErrAlreadyCancelled
	case entity.BookingStatusCompleted:
		return nil, ErrAlreadyCompleted
	}

	// Refund entitlement is computed once, at cancellation time.
	var entitlement refundpolicy.Entitlement
	if booking.PaymentStatus == entity.PaymentStatusPaid {
		start, err := booking.AppointmentStart()
		if err != nil {
			return nil, ErrInvalidSlot
		}
		entitlement = refundpolicy.Evaluate(booking.Price, start, time.Now())
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	wasPaid := booking.PaymentStatus == entity.PaymentStatusPaid

	booking.Status = entity.BookingStatusCancelled
	booking.CancelReason = req.Reason
	if wasPaid && entitlement.Amount > 0 {
		booking.PaymentStatus = entity.PaymentStatusRefunded
	}
	if err := uow.BookingRepository().Update(ctx, booking); err != nil {
		return nil, err
	}

	resp := &dto.CancelBookingResponse{
		BookingID:        booking.ID,
		Status:           string(entity.BookingStatusCancelled),
		RefundPercentage: entitlement.Percentage,
		RefundAmount:     entitlement.Amount,
		RefundReason:     entitlement.Reason,
	}

	if wasPaid && entitlement.Amount > 0 {
		bankAccount, bankName := refundDestination(req, booking)
		refund := &entity.Refund{
			ID:               uuid.New(),
			BookingID:        booking.ID,
			UserID:           userID,
			OriginalAmount:   booking.Price,
			RefundAmount:     entitlement.Amount,
			RefundPercentage: entitlement.Percentage,
			RefundReason:     entitlement.Reason,
			BankAccount:      bankAccount,
			BankName:         bankName,
			Status:           entity.RefundStatusPending,
		}
		if err := uow.RefundRepository().Create(ctx, refund); err != nil {
			return nil, err
		}
		resp.RefundID = &refund.ID
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.invalidateBookingCaches(ctx, booking)

	s.publishEvent(ctx, events.TypeBookingCancelled, map[string]interface{}{
		"booking_id":        booking.ID,
		"user_id":           userID,
		"refund_percentage": entitlement.Percentage,
		"refund_amount":     entitlement.Amount,
	})

	go func() {
		user, err := s.uowFactory.NewUnitOfWork(context.Background()).
			UserRepository().FindOne(context.Background(), specification.ByID{ID: userID})
		if err != nil || user == nil {
			return
		}
		if emailErr := s.emailService.SendBookingCancelled(user.Email, booking.ID, entitlement.Percentage); emailErr != nil {
			s.logger.Warn("Booking", "Failed to send cancellation email", map[string]interface{}{
				"booking_id": booking.ID, "error": emailErr.Error(),
			})
		}
	}()

	return resp, nil
}

// refundDestination picks the payout account: the caller's explicit bank
// details win, then the sender snapshot captured from the payment webhook.
func refundDestination(req *dto.CancelBookingRequest, booking *entity.Booking) (string, string) {
	account, bank := req.BankAccount, req.BankName
	if account == "" && booking.PaymentInfo != nil {
		account = booking.PaymentInfo.SenderAccount
		if bank == "" {
			bank = booking.PaymentInfo.Gateway
		}
	}
	return account, bank
}

func (s *bookingService) invalidateBookingCaches(ctx context.Context, booking *entity.Booking) {
	err := s.cacheStore.Delete(ctx,
		userBookingsKey(booking.UserID),
		bookingDetailKey(booking.ID),
		lawyerBookingsKey(booking.LawyerID),
		lawyerBookingDetailKey(booking.ID),
	)
	if err != nil {
		s.logger.Warn("Booking", "Cache invalidation failed", map[string]interface{}{
			"booking_id": booking.ID, "error": err.Error(),
		})
	}
}

func (s *bookingService) publishEvent(ctx context.Context, eventType string, data map[string]interface{}) {
	if s.eventPublisher == nil {
		return
	}
	if err := s.eventPublisher.Publish(ctx, events.NewEvent(eventType, data)); err != nil {
		s.logger.Warn("Booking", "Failed to publish event", map[string]interface{}{
			"event": eventType, "error": err.Error(),
		})
	}
}

func mapBookingToDTO(b *entity.Booking) *dto.BookingDTO {
	d := &dto.BookingDTO{
		ID:       b.ID,
		UserID:   b.UserID,
		LawyerID: b.LawyerID,
		Date:     string(b.Date),
		TimeSlot: dto.TimeSlotDTO{
			Start: string(b.TimeSlot.Start),
			End:   string(b.TimeSlot.End),
		},
		Status:         string(b.Status),
		PaymentStatus:  string(b.PaymentStatus),
		Price:          b.Price,
		AddressMeeting: b.AddressMeeting,
		ActualPhone:    b.ActualPhone,
		Documents:      b.Documents,
		CancelReason:   b.CancelReason,
		CreatedAt:      b.CreatedAt,
	}
	if b.User != nil {
		d.User = &dto.UserDTO{
			Id:       b.User.Id,
			Email:    b.User.Email,
			FullName: b.User.FullName,
			Phone:    b.User.Phone,
		}
	}
	if b.Lawyer != nil {
		d.Lawyer = mapLawyerToDTO(b.Lawyer, false)
	}
	return d
}

func mapBookingToLawyerDTO(b *entity.Booking) *dto.LawyerBookingDTO {
	return &dto.LawyerBookingDTO{
		BookingDTO:         *mapBookingToDTO(b),
		CommissionAmount:   b.CommissionAmount,
		LawyerPayoutAmount: b.LawyerPayoutAmount,
		PayoutStatus:       string(b.PayoutStatus),
	}
}

// mapLawyerToDTO hides bank details unless the caller owns the profile.
func mapLawyerToDTO(l *entity.Lawyer, includeBank bool) *dto.LawyerProfileDTO {
	d := &dto.LawyerProfileDTO{
		Id:             l.Id,
		UserID:         l.UserID,
		LicenseNo:      l.LicenseNo,
		Specialty:      l.Specialty,
		FirmName:       l.FirmName,
		Avatar:         l.Avatar,
		IsApproved:     l.IsApproved,
		IsCollaborator: l.IsCollaborator,
		CommissionRate: l.CommissionRate,
		CreatedAt:      l.CreatedAt,
	}
	if l.User != nil {
		d.FullName = l.User.FullName
	}
	if includeBank && l.BankInfo != nil {
		d.BankInfo = &dto.BankInfoDTO{
			BankName:      l.BankInfo.BankName,
			AccountNumber: l.BankInfo.AccountNumber,
			AccountName:   l.BankInfo.AccountName,
		}
	}
	return d
}
