package contract

import (
	"context"

	"legal-consult-be/internal/entity"
	"legal-consult-be/internal/repository/specification"
)

type LawyerRepository interface {
	Create(ctx context.Context, lawyer *entity.Lawyer) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Lawyer, error)
	// FindOneWithUser preloads the backing user account.
	FindOneWithUser(ctx context.Context, specs ...specification.Specification) (*entity.Lawyer, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Lawyer, error)
	Update(ctx context.Context, lawyer *entity.Lawyer) error
}
