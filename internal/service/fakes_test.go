package service

import (
	"context"
	"sync"

	"legal-consult-be/internal/entity"
	"legal-consult-be/internal/repository/contract"
	"legal-consult-be/internal/repository/specification"
	"legal-consult-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

// In-memory repositories backing service tests. FindOne interprets the
// specification values directly instead of building SQL, so only the
// specifications the services actually pass are understood here.

type fakeStore struct {
	mu       sync.Mutex
	users    []*entity.User
	lawyers  []*entity.Lawyer
	bookings []*entity.Booking
	refunds  []*entity.Refund
}

type fakeUow struct {
	store *fakeStore
}

func (f *fakeUow) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork { return f }

func (f *fakeUow) Begin(ctx context.Context) error { return nil }
func (f *fakeUow) Commit() error                   { return nil }
func (f *fakeUow) Rollback() error                 { return nil }

func (f *fakeUow) UserRepository() contract.UserRepository       { return &fakeUserRepo{f.store} }
func (f *fakeUow) LawyerRepository() contract.LawyerRepository   { return &fakeLawyerRepo{f.store} }
func (f *fakeUow) BookingRepository() contract.BookingRepository { return &fakeBookingRepo{f.store} }
func (f *fakeUow) RefundRepository() contract.RefundRepository   { return &fakeRefundRepo{f.store} }
func (f *fakeUow) ScheduleRepository() contract.ScheduleRepository {
	panic("not used in these tests")
}
func (f *fakeUow) ChatConversationRepository() contract.ChatConversationRepository {
	panic("not used in these tests")
}
func (f *fakeUow) ChatMessageRepository() contract.ChatMessageRepository {
	panic("not used in these tests")
}

type fakeBookingRepo struct{ store *fakeStore }

func (r *fakeBookingRepo) Create(ctx context.Context, b *entity.Booking) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.bookings = append(r.store.bookings, b)
	return nil
}

func (r *fakeBookingRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Booking, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, b := range r.store.bookings {
		if bookingMatches(b, specs) {
			return b, nil
		}
	}
	return nil, nil
}

func (r *fakeBookingRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Booking, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []*entity.Booking
	for _, b := range r.store.bookings {
		if bookingMatches(b, specs) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *fakeBookingRepo) FindOneWithDetails(ctx context.Context, specs ...specification.Specification) (*entity.Booking, error) {
	return r.FindOne(ctx, specs...)
}

func (r *fakeBookingRepo) FindAllWithDetails(ctx context.Context, specs ...specification.Specification) ([]*entity.Booking, error) {
	return r.FindAll(ctx, specs...)
}

func (r *fakeBookingRepo) Update(ctx context.Context, b *entity.Booking) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for i, existing := range r.store.bookings {
		if existing.ID == b.ID {
			r.store.bookings[i] = b
			return nil
		}
	}
	return nil
}

func bookingMatches(b *entity.Booking, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByStringID:
			if b.ID != s.ID {
				return false
			}
		case specification.NotCancelled:
			if b.Status == entity.BookingStatusCancelled {
				return false
			}
		case specification.ByUserLawyerDay:
			if b.UserID != s.UserID || b.LawyerID != s.LawyerID || string(b.Date) != s.Date {
				return false
			}
		case specification.BySlot:
			if b.LawyerID != s.LawyerID || string(b.Date) != s.Date ||
				string(b.TimeSlot.Start) != s.SlotStart || string(b.TimeSlot.End) != s.SlotEnd {
				return false
			}
		case specification.UserOwnedBy:
			if b.UserID != s.UserID {
				return false
			}
		case specification.LawyerOwnedBy:
			if b.LawyerID != s.LawyerID {
				return false
			}
		case specification.OrderBy, specification.Pagination:
			// Ordering is irrelevant for these assertions.
		}
	}
	return true
}

type fakeLawyerRepo struct{ store *fakeStore }

func (r *fakeLawyerRepo) Create(ctx context.Context, l *entity.Lawyer) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.lawyers = append(r.store.lawyers, l)
	return nil
}

func (r *fakeLawyerRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Lawyer, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, l := range r.store.lawyers {
		if lawyerMatches(l, specs) {
			return l, nil
		}
	}
	return nil, nil
}

func (r *fakeLawyerRepo) FindOneWithUser(ctx context.Context, specs ...specification.Specification) (*entity.Lawyer, error) {
	return r.FindOne(ctx, specs...)
}

func (r *fakeLawyerRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Lawyer, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []*entity.Lawyer
	for _, l := range r.store.lawyers {
		if lawyerMatches(l, specs) {
			out = append(out, l)
		}
	}
	return out, nil
}

func (r *fakeLawyerRepo) Update(ctx context.Context, l *entity.Lawyer) error { return nil }

func lawyerMatches(l *entity.Lawyer, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByID:
			if l.Id != s.ID {
				return false
			}
		case specification.FilterBy:
			if s.Field == "user_id" {
				if id, ok := s.Value.(uuid.UUID); !ok || l.UserID != id {
					return false
				}
			}
		}
	}
	return true
}

type fakeRefundRepo struct{ store *fakeStore }

func (r *fakeRefundRepo) Create(ctx context.Context, refund *entity.Refund) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.refunds = append(r.store.refunds, refund)
	return nil
}

func (r *fakeRefundRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Refund, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if len(r.store.refunds) == 0 {
		return nil, nil
	}
	return r.store.refunds[0], nil
}

func (r *fakeRefundRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Refund, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return append([]*entity.Refund(nil), r.store.refunds...), nil
}

func (r *fakeRefundRepo) Update(ctx context.Context, refund *entity.Refund) error { return nil }

type fakeUserRepo struct{ store *fakeStore }

func (r *fakeUserRepo) Create(ctx context.Context, u *entity.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.users = append(r.store.users, u)
	return nil
}

func (r *fakeUserRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, u := range r.store.users {
		match := true
		for _, spec := range specs {
			switch s := spec.(type) {
			case specification.ByID:
				if u.Id != s.ID {
					match = false
				}
			case specification.ByEmail:
				if u.Email != s.Email {
					match = false
				}
			}
		}
		if match {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.User, error) {
	return nil, nil
}

func (r *fakeUserRepo) Update(ctx context.Context, u *entity.User) error { return nil }

func (r *fakeUserRepo) Count(ctx context.Context) (int64, error) { return 0, nil }

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

type fakeEmailService struct {
	mu        sync.Mutex
	cancelled []string
}

func (f *fakeEmailService) SendOTP(toEmail, otp string) error { return nil }

func (f *fakeEmailService) SendBookingConfirmation(toEmail, bookingID, lawyerName, date, slot string) error {
	return nil
}

func (f *fakeEmailService) SendBookingReminder(toEmail, lawyerName, date, slot string) error {
	return nil
}

func (f *fakeEmailService) SendBookingCancelled(toEmail, bookingID string, refundPercentage int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cancelled = append(f.cancelled, bookingID)
	return nil
}
