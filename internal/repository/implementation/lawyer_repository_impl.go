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

type lawyerRepositoryImpl struct {
	db *gorm.DB
}

func NewLawyerRepository(db *gorm.DB) contract.LawyerRepository {
	return &lawyerRepositoryImpl{db: db}
}

func (r *lawyerRepositoryImpl) Create(ctx context.Context, lawyer *entity.Lawyer) error {
	return r.db.WithContext(ctx).Create(r.mapToModel(lawyer)).Error
}

func (r *lawyerRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Lawyer, error) {
	var ml model.Lawyer
	query := r.db.WithContext(ctx)
	for _, spec := range specs {
		query = spec.Apply(query)
	}
	if err := query.First(&ml).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return r.mapToEntity(&ml), nil
}

func (r *lawyerRepositoryImpl) FindOneWithUser(ctx context.Context, specs ...specification.Specification) (*entity.Lawyer, error) {
	var ml model.Lawyer
	query := r.db.WithContext(ctx).Preload("User")
	for _, spec := range specs {
		query = spec.Apply(query)
	}
	if err := query.First(&ml).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	lawyer := r.mapToEntity(&ml)
	lawyer.User = &entity.User{
		Id:       ml.User.Id,
		Email:    ml.User.Email,
		FullName: ml.User.FullName,
		Phone:    ml.User.Phone,
		Role:     entity.UserRole(ml.User.Role),
	}
	return lawyer, nil
}

func (r *lawyerRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Lawyer, error) {
	var mls []*model.Lawyer
	query := r.db.WithContext(ctx)
	for _, spec := range specs {
		query = spec.Apply(query)
	}
	if err := query.Find(&mls).Error; err != nil {
		return nil, err
	}
	var lawyers []*entity.Lawyer
	for _, ml := range mls {
		lawyers = append(lawyers, r.mapToEntity(ml))
	}
	return lawyers, nil
}

func (r *lawyerRepositoryImpl) Update(ctx context.Context, lawyer *entity.Lawyer) error {
	ml := r.mapToModel(lawyer)
	return r.db.WithContext(ctx).Model(&model.Lawyer{}).
		Where("id = ?", lawyer.Id).
		Updates(map[string]interface{}{
			"license_no":        ml.LicenseNo,
			"specialty":         ml.Specialty,
			"firm_name":         ml.FirmName,
			"avatar":            ml.Avatar,
			"lawyer_card_image": ml.LawyerCardImage,
			"is_approved":       ml.IsApproved,
			"is_collaborator":   ml.IsCollaborator,
			"commission_rate":   ml.CommissionRate,
			"bank_info":         ml.BankInfo,
		}).Error
}

func (r *lawyerRepositoryImpl) mapToModel(l *entity.Lawyer) *model.Lawyer {
	ml := &model.Lawyer{
		Id:              l.Id,
		UserID:          l.UserID,
		LicenseNo:       l.LicenseNo,
		Specialty:       l.Specialty,
		FirmName:        l.FirmName,
		Avatar:          l.Avatar,
		LawyerCardImage: l.LawyerCardImage,
		IsApproved:      l.IsApproved,
		IsCollaborator:  l.IsCollaborator,
		CommissionRate:  l.CommissionRate,
	}
	if l.BankInfo != nil {
		if raw, err := json.Marshal(l.BankInfo); err == nil {
			ml.BankInfo = datatypes.JSON(raw)
		}
	}
	return ml
}

func (r *lawyerRepositoryImpl) mapToEntity(ml *model.Lawyer) *entity.Lawyer {
	l := &entity.Lawyer{
		Id:              ml.Id,
		UserID:          ml.UserID,
		LicenseNo:       ml.LicenseNo,
		Specialty:       ml.Specialty,
		FirmName:        ml.FirmName,
		Avatar:          ml.Avatar,
		LawyerCardImage: ml.LawyerCardImage,
		IsApproved:      ml.IsApproved,
		IsCollaborator:  ml.IsCollaborator,
		CommissionRate:  ml.CommissionRate,
		CreatedAt:       ml.CreatedAt,
		UpdatedAt:       ml.UpdatedAt,
	}
	if len(ml.BankInfo) > 0 {
		var info entity.BankInfo
		if err := json.Unmarshal(ml.BankInfo, &info); err == nil {
			l.BankInfo = &info
		}
	}
	return l
}
