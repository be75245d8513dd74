package contract

import (
	"context"

	"legal-consult-be/internal/entity"
	"legal-consult-be/internal/repository/specification"
)

type ScheduleRepository interface {
	// Upsert creates or replaces the weekly schedule of a lawyer.
	Upsert(ctx context.Context, schedule *entity.Schedule) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Schedule, error)
}
