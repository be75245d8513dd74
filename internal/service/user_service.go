package service

import (
	"context"

	"legal-consult-be/internal/dto"
	"legal-consult-be/internal/entity"
	"legal-consult-be/internal/repository/specification"
	"legal-consult-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type IUserService interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*dto.ProfileResponse, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, req *dto.UpdateProfileRequest) error
}

type userService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewUserService(uowFactory unitofwork.RepositoryFactory) IUserService {
	return &userService{uowFactory: uowFactory}
}

func (s *userService) GetProfile(ctx context.Context, userID uuid.UUID) (*dto.ProfileResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userID})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	resp := &dto.ProfileResponse{
		User: dto.UserDTO{
			Id:       user.Id,
			Email:    user.Email,
			FullName: user.FullName,
			Phone:    user.Phone,
			Role:     string(user.Role),
		},
	}

	if user.Role == entity.UserRoleLawyer {
		lawyer, err := uow.LawyerRepository().FindOne(ctx, specification.Filter("user_id", userID))
		if err != nil {
			return nil, err
		}
		if lawyer != nil {
			lawyer.User = user
			resp.Lawyer = mapLawyerToDTO(lawyer, true)
		}
	}

	return resp, nil
}

func (s *userService) UpdateProfile(ctx context.Context, userID uuid.UUID, req *dto.UpdateProfileRequest) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userID})
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}

	user.FullName = req.FullName
	user.Phone = req.Phone
	return uow.UserRepository().Update(ctx, user)
}
