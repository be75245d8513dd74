package unitofwork

import (
	"context"

	"legal-consult-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	LawyerRepository() contract.LawyerRepository
	BookingRepository() contract.BookingRepository
	RefundRepository() contract.RefundRepository
	ScheduleRepository() contract.ScheduleRepository
	ChatConversationRepository() contract.ChatConversationRepository
	ChatMessageRepository() contract.ChatMessageRepository
}
