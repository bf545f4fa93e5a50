package service

import (
	"context"
	"os"
	"time"

	"github.com/Fusion-Mind-co/worklog-system/internal/dto"
	"github.com/Fusion-Mind-co/worklog-system/internal/entity"
	"github.com/Fusion-Mind-co/worklog-system/internal/pkg/apperrors"
	"github.com/Fusion-Mind-co/worklog-system/internal/pkg/logger"
	"github.com/Fusion-Mind-co/worklog-system/internal/pkg/mailer"
	"github.com/Fusion-Mind-co/worklog-system/internal/repository/unitofwork"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	sessionTTL       = 8 * time.Hour
	rememberedTTL    = 30 * 24 * time.Hour
	resetTokenTTL    = time.Hour
	invalidLoginText = "invalid employee id or password"
)

type IAuthService interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
	Me(ctx context.Context, userId uuid.UUID) (*dto.MeResponse, error)
	ChangePassword(ctx context.Context, userId uuid.UUID, req *dto.ChangePasswordRequest) error
	RequestPasswordReset(ctx context.Context, req *dto.PasswordResetRequest) error
	ConfirmPasswordReset(ctx context.Context, req *dto.PasswordResetConfirmRequest) error
	UpdateSoundEnabled(ctx context.Context, userId uuid.UUID, enabled bool) error
	UpdateLastActivePage(ctx context.Context, userId uuid.UUID, page string) error
}

type authService struct {
	uowFactory       unitofwork.RepositoryFactory
	emailService     mailer.IEmailService
	publisherService IPublisherService
	logger           logger.ILogger
}

func NewAuthService(
	uowFactory unitofwork.RepositoryFactory,
	emailService mailer.IEmailService,
	publisherService IPublisherService,
	log logger.ILogger,
) IAuthService {
	return &authService{
		uowFactory:       uowFactory,
		emailService:     emailService,
		publisherService: publisherService,
		logger:           log,
	}
}

func userResponseFromEntity(user *entity.User) dto.UserResponse {
	resp := dto.UserResponse{
		Id:             user.Id,
		EmployeeId:     user.EmployeeId,
		Name:           user.Name,
		DepartmentName: user.DepartmentName,
		Position:       user.Position,
		Email:          user.Email,
		RoleLevel:      user.RoleLevel,
		DefaultUnit:    user.DefaultUnit,
		SoundEnabled:   user.SoundEnabled,
		LastActivePage: user.LastActivePage,
	}
	if !user.CreatedAt.IsZero() {
		created := user.CreatedAt.Format(time.RFC3339)
		resp.CreatedAt = &created
	}
	return resp
}

func signToken(user *entity.User, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"user_id":    user.Id.String(),
		"role_level": user.RoleLevel,
		"exp":        time.Now().Add(ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}

// Login authenticates by employee id. Remembered sessions get a 30 day token
// instead of the standard 8 hours.
func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindByEmployeeId(ctx, req.EmployeeId)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperrors.NewForbidden(invalidLoginText)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, apperrors.NewForbidden(invalidLoginText)
	}

	ttl := sessionTTL
	if req.RememberMe {
		ttl = rememberedTTL
	}
	accessToken, err := signToken(user, ttl)
	if err != nil {
		return nil, err
	}

	s.audit(ctx, "auth.login", user.EmployeeId, map[string]interface{}{
		"remembered": req.RememberMe,
	})

	return &dto.LoginResponse{
		AccessToken: accessToken,
		User:        userResponseFromEntity(user),
		ExpiresIn:   int(ttl.Seconds()),
	}, nil
}

func (s *authService) Me(ctx context.Context, userId uuid.UUID) (*dto.MeResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindById(ctx, userId)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperrors.NewNotFound("user")
	}
	return &dto.MeResponse{User: userResponseFromEntity(user)}, nil
}

func (s *authService) ChangePassword(ctx context.Context, userId uuid.UUID, req *dto.ChangePasswordRequest) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindById(ctx, userId)
	if err != nil {
		return err
	}
	if user == nil {
		return apperrors.NewNotFound("user")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		return apperrors.NewForbidden("current password is incorrect")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.PasswordHash = string(hash)
	if err := uow.UserRepository().Update(ctx, user); err != nil {
		return apperrors.WrapPersistence(err, "change password")
	}

	s.audit(ctx, "auth.password_changed", user.EmployeeId, nil)
	return nil
}

// RequestPasswordReset issues a one hour token when the employee id and email
// match an account. Mismatches return success so the endpoint cannot be used
// to probe which accounts exist.
func (s *authService) RequestPasswordReset(ctx context.Context, req *dto.PasswordResetRequest) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindByEmployeeId(ctx, req.EmployeeId)
	if err != nil {
		return err
	}
	if user == nil || user.Email == nil || *user.Email != req.Email {
		s.logger.Warn("Auth", "Reset requested for unknown account", map[string]interface{}{
			"employee_id": req.EmployeeId,
		})
		return nil
	}

	token := &entity.PasswordResetToken{
		Id:        uuid.New(),
		UserId:    user.Id,
		Token:     uuid.NewString(),
		ExpiresAt: time.Now().Add(resetTokenTTL),
	}
	if err := uow.UserRepository().CreatePasswordResetToken(ctx, token); err != nil {
		return apperrors.WrapPersistence(err, "create reset token")
	}

	if err := s.emailService.SendResetToken(*user.Email, token.Token); err != nil {
		s.logger.Error("Auth", "Failed to send reset email", map[string]interface{}{
			"employee_id": user.EmployeeId,
			"error":       err.Error(),
		})
		return err
	}

	s.audit(ctx, "auth.password_reset_requested", user.EmployeeId, nil)
	return nil
}

func (s *authService) ConfirmPasswordReset(ctx context.Context, req *dto.PasswordResetConfirmRequest) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	token, err := uow.UserRepository().FindPasswordResetToken(ctx, req.Token)
	if err != nil {
		return err
	}
	if token == nil || token.Used || time.Now().After(token.ExpiresAt) {
		return apperrors.NewValidation("reset token is invalid or expired")
	}

	user, err := uow.UserRepository().FindById(ctx, token.UserId)
	if err != nil {
		return err
	}
	if user == nil {
		return apperrors.NewNotFound("user")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	user.PasswordHash = string(hash)
	if err := uow.UserRepository().Update(ctx, user); err != nil {
		return apperrors.WrapPersistence(err, "reset password")
	}
	if err := uow.UserRepository().MarkPasswordResetTokenUsed(ctx, token.Id); err != nil {
		return apperrors.WrapPersistence(err, "consume reset token")
	}
	if err := uow.Commit(); err != nil {
		return err
	}

	s.audit(ctx, "auth.password_reset", user.EmployeeId, nil)
	return nil
}

func (s *authService) UpdateSoundEnabled(ctx context.Context, userId uuid.UUID, enabled bool) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindById(ctx, userId)
	if err != nil {
		return err
	}
	if user == nil {
		return apperrors.NewNotFound("user")
	}
	user.SoundEnabled = enabled
	return uow.UserRepository().Update(ctx, user)
}

func (s *authService) UpdateLastActivePage(ctx context.Context, userId uuid.UUID, page string) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindById(ctx, userId)
	if err != nil {
		return err
	}
	if user == nil {
		return apperrors.NewNotFound("user")
	}
	user.LastActivePage = &page
	return uow.UserRepository().Update(ctx, user)
}

func (s *authService) audit(ctx context.Context, eventType, actor string, data map[string]interface{}) {
	if s.publisherService == nil {
		return
	}
	_ = s.publisherService.Publish(ctx, eventType, actor, data)
}
