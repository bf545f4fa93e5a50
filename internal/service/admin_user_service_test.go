package service

import (
	"context"
	"testing"

	"github.com/Fusion-Mind-co/worklog-system/internal/dto"
	"github.com/Fusion-Mind-co/worklog-system/internal/pkg/apperrors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newAdminUserService(env *testEnv) IAdminUserService {
	return NewAdminUserService(env.factory, nil)
}

func TestCreateUser(t *testing.T) {
	env := newTestEnv()
	svc := newAdminUserService(env)

	res, err := svc.Create(context.Background(), &dto.CreateUserRequest{
		EmployeeId:     "emp010",
		Name:           "Jiro Tanaka",
		DepartmentName: "Production",
		Position:       "Operator",
		Password:       "password123",
		RoleLevel:      1,
	})
	require.NoError(t, err)
	assert.Equal(t, "emp010", res.EmployeeId)

	stored, _ := env.factory.Users.FindByEmployeeId(context.Background(), "emp010")
	require.NotNil(t, stored)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("password123")))
}

func TestCreateUserDuplicateEmployeeId(t *testing.T) {
	env := newTestEnv()
	svc := newAdminUserService(env)
	env.seedUser("emp001", "Taro", 1, nil)

	_, err := svc.Create(context.Background(), &dto.CreateUserRequest{
		EmployeeId:     "emp001",
		Name:           "Impostor",
		DepartmentName: "Production",
		Position:       "Operator",
		Password:       "password123",
	})
	var validationErr *apperrors.ValidationError
	require.ErrorAs(t, err, &validationErr)
}

func TestUpdateUser(t *testing.T) {
	env := newTestEnv()
	svc := newAdminUserService(env)
	user := env.seedUser("emp001", "Taro", 1, nil)
	env.setPassword(user, "password123")

	role := 2
	res, err := svc.Update(context.Background(), &dto.UpdateUserRequest{
		Id:             user.Id,
		EmployeeId:     "emp001",
		Name:           "Taro Yamada",
		DepartmentName: "Quality",
		Position:       "Lead",
		RoleLevel:      &role,
	})
	require.NoError(t, err)
	assert.Equal(t, "Taro Yamada", res.Name)
	assert.Equal(t, 2, res.RoleLevel)

	// Leaving the password blank keeps the old hash.
	stored, _ := env.factory.Users.FindById(context.Background(), user.Id)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("password123")))
}

func TestUpdateUserEmployeeIdCollision(t *testing.T) {
	env := newTestEnv()
	svc := newAdminUserService(env)
	env.seedUser("emp001", "Taro", 1, nil)
	other := env.seedUser("emp002", "Hanako", 1, nil)

	_, err := svc.Update(context.Background(), &dto.UpdateUserRequest{
		Id:             other.Id,
		EmployeeId:     "emp001",
		Name:           "Hanako",
		DepartmentName: "Production",
		Position:       "Operator",
	})
	var validationErr *apperrors.ValidationError
	require.ErrorAs(t, err, &validationErr)
}

func TestDeleteUser(t *testing.T) {
	env := newTestEnv()
	svc := newAdminUserService(env)
	user := env.seedUser("emp001", "Taro", 1, nil)

	require.NoError(t, svc.Delete(context.Background(), user.Id))

	stored, _ := env.factory.Users.FindById(context.Background(), user.Id)
	assert.Nil(t, stored)

	err := svc.Delete(context.Background(), uuid.New())
	var notFoundErr *apperrors.NotFoundError
	require.ErrorAs(t, err, &notFoundErr)
}
