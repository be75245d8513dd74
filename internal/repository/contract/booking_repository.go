package contract

import (
	"context"

	"legal-consult-be/internal/entity"
	"legal-consult-be/internal/repository/specification"
)

type BookingRepository interface {
	// Create persists a new booking. A duplicate-key error from the partial
	// unique slot index must be surfaced unwrapped so callers can map it to a
	// slot conflict (see implementation.IsDuplicateKeyError).
	Create(ctx context.Context, booking *entity.Booking) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Booking, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Booking, error)
	// FindOneWithDetails preloads the lawyer profile (with its user) and the
	// booking user for detail views.
	FindOneWithDetails(ctx context.Context, specs ...specification.Specification) (*entity.Booking, error)
	FindAllWithDetails(ctx context.Context, specs ...specification.Specification) ([]*entity.Booking, error)
	Update(ctx context.Context, booking *entity.Booking) error
}
