package implementation

import (
	"context"

	"legal-consult-be/internal/entity"
	"legal-consult-be/internal/model"
	"legal-consult-be/internal/repository/contract"
	"legal-consult-be/internal/repository/specification"

	"gorm.io/gorm"
)

type refundRepositoryImpl struct {
	db *gorm.DB
}

func NewRefundRepository(db *gorm.DB) contract.RefundRepository {
	return &refundRepositoryImpl{db: db}
}

func (r *refundRepositoryImpl) Create(ctx context.Context, refund *entity.Refund) error {
	mr := &model.Refund{
		ID:               refund.ID,
		BookingID:        refund.BookingID,
		UserID:           refund.UserID,
		OriginalAmount:   refund.OriginalAmount,
		RefundAmount:     refund.RefundAmount,
		RefundPercentage: refund.RefundPercentage,
		RefundReason:     refund.RefundReason,
		BankAccount:      refund.BankAccount,
		BankName:         refund.BankName,
		Status:           string(refund.Status),
	}
	return r.db.WithContext(ctx).Create(mr).Error
}

func (r *refundRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Refund, error) {
	var mr model.Refund
	query := r.db.WithContext(ctx)
	for _, spec := range specs {
		query = spec.Apply(query)
	}
	if err := query.First(&mr).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return r.mapToEntity(&mr), nil
}

func (r *refundRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Refund, error) {
	var mrs []*model.Refund
	query := r.db.WithContext(ctx)
	for _, spec := range specs {
		query = spec.Apply(query)
	}
	if err := query.Find(&mrs).Error; err != nil {
		return nil, err
	}
	var refunds []*entity.Refund
	for _, mr := range mrs {
		refunds = append(refunds, r.mapToEntity(mr))
	}
	return refunds, nil
}

func (r *refundRepositoryImpl) Update(ctx context.Context, refund *entity.Refund) error {
	return r.db.WithContext(ctx).Model(&model.Refund{}).
		Where("id = ?", refund.ID).
		Updates(map[string]interface{}{
			"status":       string(refund.Status),
			"processed_at": refund.ProcessedAt,
			"processed_by": refund.ProcessedBy,
			"admin_note":   refund.AdminNote,
		}).Error
}

func (r *refundRepositoryImpl) mapToEntity(mr *model.Refund) *entity.Refund {
	return &entity.Refund{
		ID:               mr.ID,
		BookingID:        mr.BookingID,
		UserID:           mr.UserID,
		OriginalAmount:   mr.OriginalAmount,
		RefundAmount:     mr.RefundAmount,
		RefundPercentage: mr.RefundPercentage,
		RefundReason:     mr.RefundReason,
		BankAccount:      mr.BankAccount,
		BankName:         mr.BankName,
		Status:           entity.RefundStatus(mr.Status),
		ProcessedAt:      mr.ProcessedAt,
		ProcessedBy:      mr.ProcessedBy,
		AdminNote:        mr.AdminNote,
		CreatedAt:        mr.CreatedAt,
		UpdatedAt:        mr.UpdatedAt,
	}
}
