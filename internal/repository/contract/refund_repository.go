package contract

import (
	"context"

	"legal-consult-be/internal/entity"
	"legal-consult-be/internal/repository/specification"
)

type RefundRepository interface {
	Create(ctx context.Context, refund *entity.Refund) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Refund, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Refund, error)
	Update(ctx context.Context, refund *entity.Refund) error
}
