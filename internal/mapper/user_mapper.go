package mapper

import (
	"github.com/Fusion-Mind-co/worklog-system/internal/entity"
	"github.com/Fusion-Mind-co/worklog-system/internal/model"
)

type UserMapper struct{}

func NewUserMapper() *UserMapper {
	return &UserMapper{}
}

func (m *UserMapper) ToEntity(u *model.User) *entity.User {
	if u == nil {
		return nil
	}

	return &entity.User{
		Id:             u.Id,
		EmployeeId:     u.EmployeeId,
		Name:           u.Name,
		DepartmentName: u.DepartmentName,
		Position:       u.Position,
		Email:          u.Email,
		PasswordHash:   u.PasswordHash,
		RoleLevel:      u.RoleLevel,
		DefaultUnit:    u.DefaultUnit,
		SoundEnabled:   u.SoundEnabled,
		LastActivePage: u.LastActivePage,
		CreatedAt:      u.CreatedAt,
	}
}

func (m *UserMapper) ToModel(u *entity.User) *model.User {
	if u == nil {
		return nil
	}

	return &model.User{
		Id:             u.Id,
		EmployeeId:     u.EmployeeId,
		Name:           u.Name,
		DepartmentName: u.DepartmentName,
		Position:       u.Position,
		Email:          u.Email,
		PasswordHash:   u.PasswordHash,
		RoleLevel:      u.RoleLevel,
		DefaultUnit:    u.DefaultUnit,
		SoundEnabled:   u.SoundEnabled,
		LastActivePage: u.LastActivePage,
		CreatedAt:      u.CreatedAt,
	}
}

func (m *UserMapper) ToEntities(users []*model.User) []*entity.User {
	entities := make([]*entity.User, len(users))
	for i, u := range users {
		entities[i] = m.ToEntity(u)
	}
	return entities
}

func (m *UserMapper) TokenToEntity(t *model.PasswordResetToken) *entity.PasswordResetToken {
	if t == nil {
		return nil
	}

	return &entity.PasswordResetToken{
		Id:        t.Id,
		UserId:    t.UserId,
		Token:     t.Token,
		ExpiresAt: t.ExpiresAt,
		Used:      t.Used,
		CreatedAt: t.CreatedAt,
	}
}

func (m *UserMapper) TokenToModel(t *entity.PasswordResetToken) *model.PasswordResetToken {
	if t == nil {
		return nil
	}

	return &model.PasswordResetToken{
		Id:        t.Id,
		UserId:    t.UserId,
		Token:     t.Token,
		ExpiresAt: t.ExpiresAt,
		Used:      t.Used,
		CreatedAt: t.CreatedAt,
	}
}
