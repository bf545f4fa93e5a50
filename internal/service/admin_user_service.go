package service

import (
	"context"

	"github.com/Fusion-Mind-co/worklog-system/internal/dto"
	"github.com/Fusion-Mind-co/worklog-system/internal/entity"
	"github.com/Fusion-Mind-co/worklog-system/internal/pkg/apperrors"
	"github.com/Fusion-Mind-co/worklog-system/internal/repository/unitofwork"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type IAdminUserService interface {
	List(ctx context.Context) ([]dto.UserResponse, error)
	Create(ctx context.Context, req *dto.CreateUserRequest) (*dto.UserResponse, error)
	Update(ctx context.Context, req *dto.UpdateUserRequest) (*dto.UserResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type adminUserService struct {
	uowFactory       unitofwork.RepositoryFactory
	publisherService IPublisherService
}

func NewAdminUserService(
	uowFactory unitofwork.RepositoryFactory,
	publisherService IPublisherService,
) IAdminUserService {
	return &adminUserService{
		uowFactory:       uowFactory,
		publisherService: publisherService,
	}
}

func (s *adminUserService) List(ctx context.Context) ([]dto.UserResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	users, err := uow.UserRepository().FindAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, 0, len(users))
	for _, user := range users {
		out = append(out, userResponseFromEntity(user))
	}
	return out, nil
}

func (s *adminUserService) Create(ctx context.Context, req *dto.CreateUserRequest) (*dto.UserResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	existing, err := uow.UserRepository().FindByEmployeeId(ctx, req.EmployeeId)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperrors.NewValidation("employee id already in use")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &entity.User{
		Id:             uuid.New(),
		EmployeeId:     req.EmployeeId,
		Name:           req.Name,
		DepartmentName: req.DepartmentName,
		Position:       req.Position,
		Email:          req.Email,
		PasswordHash:   string(hash),
		RoleLevel:      req.RoleLevel,
	}
	if err := uow.UserRepository().Create(ctx, user); err != nil {
		return nil, apperrors.WrapPersistence(err, "create user")
	}

	s.audit(ctx, "admin.user_created", user.EmployeeId, map[string]interface{}{"user_id": user.Id.String()})
	resp := userResponseFromEntity(user)
	return &resp, nil
}

func (s *adminUserService) Update(ctx context.Context, req *dto.UpdateUserRequest) (*dto.UserResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindById(ctx, req.Id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperrors.NewNotFound("user")
	}

	if req.EmployeeId != user.EmployeeId {
		existing, err := uow.UserRepository().FindByEmployeeId(ctx, req.EmployeeId)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, apperrors.NewValidation("employee id already in use")
		}
	}

	user.EmployeeId = req.EmployeeId
	user.Name = req.Name
	user.DepartmentName = req.DepartmentName
	user.Position = req.Position
	user.Email = req.Email
	if req.RoleLevel != nil {
		user.RoleLevel = *req.RoleLevel
	}
	if req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}

	if err := uow.UserRepository().Update(ctx, user); err != nil {
		return nil, apperrors.WrapPersistence(err, "update user")
	}

	s.audit(ctx, "admin.user_updated", user.EmployeeId, map[string]interface{}{"user_id": user.Id.String()})
	resp := userResponseFromEntity(user)
	return &resp, nil
}

func (s *adminUserService) Delete(ctx context.Context, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindById(ctx, id)
	if err != nil {
		return err
	}
	if user == nil {
		return apperrors.NewNotFound("user")
	}
	if err := uow.UserRepository().Delete(ctx, id); err != nil {
		return apperrors.WrapPersistence(err, "delete user")
	}

	s.audit(ctx, "admin.user_deleted", user.EmployeeId, map[string]interface{}{"user_id": id.String()})
	return nil
}

func (s *adminUserService) audit(ctx context.Context, eventType, actor string, data map[string]interface{}) {
	if s.publisherService == nil {
		return
	}
	_ = s.publisherService.Publish(ctx, eventType, actor, data)
}
