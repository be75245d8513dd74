package service

import (
	"context"
	"time"

	"legal-consult-be/internal/dto"
	"legal-consult-be/internal/entity"
	"legal-consult-be/internal/pkg/logger"
	"legal-consult-be/internal/repository/specification"
	"legal-consult-be/internal/repository/unitofwork"
	"legal-consult-be/pkg/cache"
	"legal-consult-be/pkg/events"
	pktNats "legal-consult-be/pkg/nats"

	"github.com/google/uuid"
)

// Collaborators hand this share of each paid booking to the platform.
const collaboratorCommissionRate = 20.0

type ILawyerService interface {
	RegisterLawyer(ctx context.Context, userID uuid.UUID, req *dto.RegisterLawyerRequest) (*dto.LawyerProfileDTO, error)
	ApproveLawyer(ctx context.Context, req *dto.ApproveLawyerRequest) error
	ListLawyers(ctx context.Context) ([]*dto.LawyerProfileDTO, error)
	GetLawyerDetail(ctx context.Context, lawyerUserID uuid.UUID) (*dto.LawyerProfileDTO, error)
	UpsertSchedule(ctx context.Context, lawyerUserID uuid.UUID, req *dto.UpsertScheduleRequest) (*dto.ScheduleResponse, error)
	GetMySchedule(ctx context.Context, lawyerUserID uuid.UUID) (*dto.ScheduleResponse, error)
	GetScheduleByLawyerID(ctx context.Context, lawyerID uuid.UUID) (*dto.ScheduleResponse, error)
}

type lawyerService struct {
	uowFactory     unitofwork.RepositoryFactory
	cacheStore     cache.Store
	eventPublisher *pktNats.Publisher
	logger         logger.ILogger
}

func NewLawyerService(
	uowFactory unitofwork.RepositoryFactory,
	cacheStore cache.Store,
	eventPublisher *pktNats.Publisher,
	sysLogger logger.ILogger,
) ILawyerService {
	return &lawyerService{
		uowFactory:     uowFactory,
		cacheStore:     cacheStore,
		eventPublisher: eventPublisher,
		logger:         sysLogger,
	}
}

func (s *lawyerService) RegisterLawyer(ctx context.Context, userID uuid.UUID, req *dto.RegisterLawyerRequest) (*dto.LawyerProfileDTO, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userID})
	if err != nil || user == nil {
		return nil, ErrUserNotFound
	}

	existing, err := uow.LawyerRepository().FindOne(ctx, specification.Filter("user_id", userID))
	if err != nil {
		return nil, err
	}
	if existing != nil {
		lawyer := existing
		lawyer.User = user
		return mapLawyerToDTO(lawyer, true), nil
	}

	lawyer := &entity.Lawyer{
		Id:              uuid.New(),
		UserID:          userID,
		LicenseNo:       req.LicenseNo,
		Specialty:       req.Specialty,
		FirmName:        req.FirmName,
		Avatar:          req.Avatar,
		LawyerCardImage: req.LawyerCardImage,
		IsApproved:      false,
		IsCollaborator:  req.IsCollaborator,
		CreatedAt:       time.Now(),
		UpdatedAt:       time.Now(),
	}
	if req.IsCollaborator {
		lawyer.CommissionRate = collaboratorCommissionRate
	}
	if req.BankInfo != nil {
		lawyer.BankInfo = &entity.BankInfo{
			BankName:      req.BankInfo.BankName,
			AccountNumber: req.BankInfo.AccountNumber,
			AccountName:   req.BankInfo.AccountName,
		}
	}

	if err := uow.LawyerRepository().Create(ctx, lawyer); err != nil {
		return nil, err
	}

	lawyer.User = user
	return mapLawyerToDTO(lawyer, true), nil
}

func (s *lawyerService) ApproveLawyer(ctx context.Context, req *dto.ApproveLawyerRequest) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	lawyer, err := uow.LawyerRepository().FindOne(ctx, specification.ByID{ID: req.LawyerID})
	if err != nil {
		return err
	}
	if lawyer == nil {
		return ErrLawyerNotFound
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	lawyer.IsApproved = req.Approved
	if err := uow.LawyerRepository().Update(ctx, lawyer); err != nil {
		return err
	}

	if req.Approved {
		user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: lawyer.UserID})
		if err != nil {
			return err
		}
		if user != nil && user.Role != entity.UserRoleLawyer {
			user.Role = entity.UserRoleLawyer
			if err := uow.UserRepository().Update(ctx, user); err != nil {
				return err
			}
		}
	}

	if err := uow.Commit(); err != nil {
		return err
	}

	if err := s.cacheStore.Delete(ctx, lawyerDetailKey(lawyer.UserID)); err != nil {
		s.logger.Warn("Lawyer", "Cache invalidation failed", map[string]interface{}{
			"lawyer_id": lawyer.Id, "error": err.Error(),
		})
	}

	if req.Approved && s.eventPublisher != nil {
		event := events.NewEvent(events.TypeLawyerApproved, map[string]interface{}{
			"lawyer_id": lawyer.Id,
			"user_id":   lawyer.UserID,
		})
		if err := s.eventPublisher.Publish(ctx, event); err != nil {
			s.logger.Warn("Lawyer", "Failed to publish event", map[string]interface{}{
				"event": events.TypeLawyerApproved, "error": err.Error(),
			})
		}
	}

	return nil
}

func (s *lawyerService) ListLawyers(ctx context.Context) ([]*dto.LawyerProfileDTO, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	lawyers, err := uow.LawyerRepository().FindAll(ctx,
		specification.Filter("is_approved", true),
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.LawyerProfileDTO, 0, len(lawyers))
	for _, l := range lawyers {
		result = append(result, mapLawyerToDTO(l, false))
	}
	return result, nil
}

func (s *lawyerService) GetLawyerDetail(ctx context.Context, lawyerUserID uuid.UUID) (*dto.LawyerProfileDTO, error) {
	key := lawyerDetailKey(lawyerUserID)
	var cached dto.LawyerProfileDTO
	if found, _ := cache.GetJSON(ctx, s.cacheStore, key, &cached); found {
		return &cached, nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	lawyer, err := uow.LawyerRepository().FindOneWithUser(ctx, specification.Filter("user_id", lawyerUserID))
	if err != nil {
		return nil, err
	}
	if lawyer == nil {
		return nil, ErrLawyerNotFound
	}

	result := mapLawyerToDTO(lawyer, false)
	_ = cache.SetJSON(ctx, s.cacheStore, key, result, lawyerDetailTTL)
	return result, nil
}

func (s *lawyerService) UpsertSchedule(ctx context.Context, lawyerUserID uuid.UUID, req *dto.UpsertScheduleRequest) (*dto.ScheduleResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	lawyer, err := uow.LawyerRepository().FindOne(ctx, specification.Filter("user_id", lawyerUserID))
	if err != nil {
		return nil, err
	}
	if lawyer == nil {
		return nil, ErrLawyerNotFound
	}

	workingDays := make([]entity.WorkingDay, 0, len(req.WorkingDays))
	for _, wd := range req.WorkingDays {
		slots := make([]entity.TimeSlot, 0, len(wd.Slots))
		for _, sl := range wd.Slots {
			slot := entity.TimeSlot{Start: entity.ClockTime(sl.Start), End: entity.ClockTime(sl.End)}
			if !slot.Valid() {
				return nil, ErrInvalidSlot
			}
			slots = append(slots, slot)
		}
		workingDays = append(workingDays, entity.WorkingDay{Day: wd.Day, Slots: slots})
	}

	schedule := &entity.Schedule{
		Id:          uuid.New(),
		LawyerID:    lawyer.Id,
		WorkingDays: workingDays,
	}
	if err := uow.ScheduleRepository().Upsert(ctx, schedule); err != nil {
		return nil, err
	}

	if err := s.cacheStore.Delete(ctx, myScheduleKey(lawyerUserID), lawyerScheduleKey(lawyer.Id)); err != nil {
		s.logger.Warn("Lawyer", "Schedule cache invalidation failed", map[string]interface{}{
			"lawyer_id": lawyer.Id, "error": err.Error(),
		})
	}

	stored, err := uow.ScheduleRepository().FindOne(ctx, specification.Filter("lawyer_id", lawyer.Id))
	if err != nil {
		return nil, err
	}
	return mapScheduleToDTO(stored), nil
}

func (s *lawyerService) GetMySchedule(ctx context.Context, lawyerUserID uuid.UUID) (*dto.ScheduleResponse, error) {
	key := myScheduleKey(lawyerUserID)
	var cached dto.ScheduleResponse
	if found, _ := cache.GetJSON(ctx, s.cacheStore, key, &cached); found {
		return &cached, nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	lawyer, err := uow.LawyerRepository().FindOne(ctx, specification.Filter("user_id", lawyerUserID))
	if err != nil {
		return nil, err
	}
	if lawyer == nil {
		return nil, ErrLawyerNotFound
	}

	schedule, err := uow.ScheduleRepository().FindOne(ctx, specification.Filter("lawyer_id", lawyer.Id))
	if err != nil {
		return nil, err
	}
	if schedule == nil {
		return nil, nil
	}

	result := mapScheduleToDTO(schedule)
	_ = cache.SetJSON(ctx, s.cacheStore, key, result, scheduleTTL)
	return result, nil
}

func (s *lawyerService) GetScheduleByLawyerID(ctx context.Context, lawyerID uuid.UUID) (*dto.ScheduleResponse, error) {
	key := lawyerScheduleKey(lawyerID)
	var cached dto.ScheduleResponse
	if found, _ := cache.GetJSON(ctx, s.cacheStore, key, &cached); found {
		return &cached, nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	schedule, err := uow.ScheduleRepository().FindOne(ctx, specification.Filter("lawyer_id", lawyerID))
	if err != nil {
		return nil, err
	}
	if schedule == nil {
		return nil, nil
	}

	result := mapScheduleToDTO(schedule)
	_ = cache.SetJSON(ctx, s.cacheStore, key, result, scheduleTTL)
	return result, nil
}

func mapScheduleToDTO(schedule *entity.Schedule) *dto.ScheduleResponse {
	if schedule == nil {
		return nil
	}
	days := make([]dto.WorkingDayDTO, 0, len(schedule.WorkingDays))
	for _, wd := range schedule.WorkingDays {
		slots := make([]dto.TimeSlotDTO, 0, len(wd.Slots))
		for _, sl := range wd.Slots {
			slots = append(slots, dto.TimeSlotDTO{Start: string(sl.Start), End: string(sl.End)})
		}
		days = append(days, dto.WorkingDayDTO{Day: wd.Day, Slots: slots})
	}
	return &dto.ScheduleResponse{
		Id:          schedule.Id,
		LawyerID:    schedule.LawyerID,
		WorkingDays: days,
		UpdatedAt:   schedule.UpdatedAt,
	}
}
