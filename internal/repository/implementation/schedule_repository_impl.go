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
	"gorm.io/gorm/clause"
)

type scheduleRepositoryImpl struct {
	db *gorm.DB
}

func NewScheduleRepository(db *gorm.DB) contract.ScheduleRepository {
	return &scheduleRepositoryImpl{db: db}
}

func (r *scheduleRepositoryImpl) Upsert(ctx context.Context, schedule *entity.Schedule) error {
	ms := &model.Schedule{
		Id:       schedule.Id,
		LawyerID: schedule.LawyerID,
	}
	if raw, err := json.Marshal(schedule.WorkingDays); err == nil {
		ms.WorkingDays = datatypes.JSON(raw)
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "lawyer_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"working_days", "updated_at"}),
	}).Create(ms).Error
}

func (r *scheduleRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Schedule, error) {
	var ms model.Schedule
	query := r.db.WithContext(ctx)
	for _, spec := range specs {
		query = spec.Apply(query)
	}
	if err := query.First(&ms).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	schedule := &entity.Schedule{
		Id:        ms.Id,
		LawyerID:  ms.LawyerID,
		CreatedAt: ms.CreatedAt,
		UpdatedAt: ms.UpdatedAt,
	}
	if len(ms.WorkingDays) > 0 {
		_ = json.Unmarshal(ms.WorkingDays, &schedule.WorkingDays)
	}
	return schedule, nil
}
