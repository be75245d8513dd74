package implementation

import (
	"context"
	"encoding/json"

	"legal-consult-be/internal/entity"
	"legal-consult-be/internal/model"
	"legal-consult-be/internal/repository/contract"
	"legal-consult-be/internal/repository/specification"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type bookingRepositoryImpl struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) contract.BookingRepository {
	return &bookingRepositoryImpl{db: db}
}

func (r *bookingRepositoryImpl) Create(ctx context.Context, booking *entity.Booking) error {
	// Returned unwrapped on purpose: the service maps 23505 to SlotConflict.
	return r.db.WithContext(ctx).Create(r.mapToModel(booking)).Error
}

func (r *bookingRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Booking, error) {
	var mb model.Booking
	query := r.db.WithContext(ctx)
	for _, spec := range specs {
		query = spec.Apply(query)
	}
	if err := query.First(&mb).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return r.mapToEntity(&mb), nil
}

func (r *bookingRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Booking, error) {
	var mbs []*model.Booking
	query := r.db.WithContext(ctx)
	for _, spec := range specs {
		query = spec.Apply(query)
	}
	if err := query.Find(&mbs).Error; err != nil {
		return nil, err
	}
	var bookings []*entity.Booking
	for _, mb := range mbs {
		bookings = append(bookings, r.mapToEntity(mb))
	}
	return bookings, nil
}

func (r *bookingRepositoryImpl) FindOneWithDetails(ctx context.Context, specs ...specification.Specification) (*entity.Booking, error) {
	var mb model.Booking
	query := r.db.WithContext(ctx).
		Preload("User").
		Preload("Lawyer").
		Preload("Lawyer.User")
	for _, spec := range specs {
		query = spec.Apply(query)
	}
	if err := query.First(&mb).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	booking := r.mapToEntity(&mb)
	r.attachDetails(booking, &mb)
	return booking, nil
}

func (r *bookingRepositoryImpl) FindAllWithDetails(ctx context.Context, specs ...specification.Specification) ([]*entity.Booking, error) {
	var mbs []*model.Booking
	query := r.db.WithContext(ctx).
		Preload("User").
		Preload("Lawyer").
		Preload("Lawyer.User")
	for _, spec := range specs {
		query = spec.Apply(query)
	}
	if err := query.Find(&mbs).Error; err != nil {
		return nil, err
	}
	var bookings []*entity.Booking
	for _, mb := range mbs {
		booking := r.mapToEntity(mb)
		r.attachDetails(booking, mb)
		bookings = append(bookings, booking)
	}
	return bookings, nil
}

func (r *bookingRepositoryImpl) Update(ctx context.Context, booking *entity.Booking) error {
	mb := r.mapToModel(booking)
	return r.db.WithContext(ctx).Model(&model.Booking{}).
		Where("id = ?", booking.ID).
		Updates(map[string]interface{}{
			"status":                 mb.Status,
			"payment_status":         mb.PaymentStatus,
			"price":                  mb.Price,
			"reminder_sent":          mb.ReminderSent,
			"commission_amount":      mb.CommissionAmount,
			"lawyer_payout_amount":   mb.LawyerPayoutAmount,
			"payout_status":          mb.PayoutStatus,
			"payment_transaction_id": mb.PaymentTransactionID,
			"payment_gateway":        mb.PaymentGateway,
			"payment_content":        mb.PaymentContent,
			"payment_description":    mb.PaymentDescription,
			"payment_sender_account": mb.PaymentSenderAccount,
			"payment_sender_name":    mb.PaymentSenderName,
			"payment_raw_payload":    mb.PaymentRawPayload,
			"cancel_reason":          mb.CancelReason,
		}).Error
}

func (r *bookingRepositoryImpl) mapToModel(b *entity.Booking) *model.Booking {
	mb := &model.Booking{
		ID:                 b.ID,
		UserID:             b.UserID,
		LawyerID:           b.LawyerID,
		Date:               string(b.Date),
		SlotStart:          string(b.TimeSlot.Start),
		SlotEnd:            string(b.TimeSlot.End),
		Status:             string(b.Status),
		PaymentStatus:      string(b.PaymentStatus),
		Price:              b.Price,
		AddressMeeting:     b.AddressMeeting,
		ActualPhone:        b.ActualPhone,
		ReminderSent:       b.ReminderSent,
		CommissionAmount:   b.CommissionAmount,
		LawyerPayoutAmount: b.LawyerPayoutAmount,
		PayoutStatus:       string(b.PayoutStatus),
		CancelReason:       b.CancelReason,
	}
	if len(b.Documents) > 0 {
		if raw, err := json.Marshal(b.Documents); err == nil {
			mb.Documents = datatypes.JSON(raw)
		}
	}
	if b.PaymentInfo != nil {
		mb.PaymentTransactionID = b.PaymentInfo.TransactionID
		mb.PaymentGateway = b.PaymentInfo.Gateway
		mb.PaymentContent = b.PaymentInfo.Content
		mb.PaymentDescription = b.PaymentInfo.Description
		mb.PaymentSenderAccount = b.PaymentInfo.SenderAccount
		mb.PaymentSenderName = b.PaymentInfo.SenderName
		if raw, err := json.Marshal(b.PaymentInfo.RawPayload); err == nil {
			mb.PaymentRawPayload = datatypes.JSON(raw)
		}
	}
	return mb
}

func (r *bookingRepositoryImpl) mapToEntity(mb *model.Booking) *entity.Booking {
	b := &entity.Booking{
		ID:       mb.ID,
		UserID:   mb.UserID,
		LawyerID: mb.LawyerID,
		Date:     entity.CalendarDate(mb.Date),
		TimeSlot: entity.TimeSlot{
			Start: entity.ClockTime(mb.SlotStart),
			End:   entity.ClockTime(mb.SlotEnd),
		},
		Status:             entity.BookingStatus(mb.Status),
		PaymentStatus:      entity.PaymentStatus(mb.PaymentStatus),
		Price:              mb.Price,
		AddressMeeting:     mb.AddressMeeting,
		ActualPhone:        mb.ActualPhone,
		ReminderSent:       mb.ReminderSent,
		CommissionAmount:   mb.CommissionAmount,
		LawyerPayoutAmount: mb.LawyerPayoutAmount,
		PayoutStatus:       entity.PayoutStatus(mb.PayoutStatus),
		CancelReason:       mb.CancelReason,
		CreatedAt:          mb.CreatedAt,
		UpdatedAt:          mb.UpdatedAt,
	}
	if len(mb.Documents) > 0 {
		_ = json.Unmarshal(mb.Documents, &b.Documents)
	}
	if mb.PaymentTransactionID != "" || len(mb.PaymentRawPayload) > 0 {
		info := &entity.PaymentInfo{
			TransactionID: mb.PaymentTransactionID,
			Gateway:       mb.PaymentGateway,
			Content:       mb.PaymentContent,
			Description:   mb.PaymentDescription,
			SenderAccount: mb.PaymentSenderAccount,
			SenderName:    mb.PaymentSenderName,
		}
		if len(mb.PaymentRawPayload) > 0 {
			_ = json.Unmarshal(mb.PaymentRawPayload, &info.RawPayload)
		}
		b.PaymentInfo = info
	}
	return b
}

func (r *bookingRepositoryImpl) attachDetails(b *entity.Booking, mb *model.Booking) {
	b.User = &entity.User{
		Id:       mb.User.Id,
		Email:    mb.User.Email,
		FullName: mb.User.FullName,
		Phone:    mb.User.Phone,
	}
	lawyer := &entity.Lawyer{
		Id:             mb.Lawyer.Id,
		UserID:         mb.Lawyer.UserID,
		LicenseNo:      mb.Lawyer.LicenseNo,
		Specialty:      mb.Lawyer.Specialty,
		FirmName:       mb.Lawyer.FirmName,
		Avatar:         mb.Lawyer.Avatar,
		IsApproved:     mb.Lawyer.IsApproved,
		IsCollaborator: mb.Lawyer.IsCollaborator,
		CommissionRate: mb.Lawyer.CommissionRate,
	}
	lawyer.User = &entity.User{
		Id:       mb.Lawyer.User.Id,
		Email:    mb.Lawyer.User.Email,
		FullName: mb.Lawyer.User.FullName,
		Phone:    mb.Lawyer.User.Phone,
	}
	b.Lawyer = lawyer
}
