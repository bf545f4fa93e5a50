package dto

import "github.com/google/uuid"

type LoginRequest struct {
	EmployeeId string `json:"employeeId" validate:"required"`
	Password   string `json:"password" validate:"required"`
	RememberMe bool   `json:"rememberMe"`
}

type UserResponse struct {
	Id             uuid.UUID `json:"id"`
	EmployeeId     string    `json:"employee_id"`
	Name           string    `json:"name"`
	DepartmentName string    `json:"department_name"`
	Position       string    `json:"position"`
	Email          *string   `json:"email"`
	RoleLevel      int       `json:"role_level"`
	DefaultUnit    *string   `json:"default_unit"`
	SoundEnabled   bool      `json:"sound_enabled"`
	LastActivePage *string   `json:"last_active_page"`
	CreatedAt      *string   `json:"created_at"`
}

type LoginResponse struct {
	AccessToken string       `json:"access_token"`
	User        UserResponse `json:"user"`
	ExpiresIn   int          `json:"expires_in"`
}

type MeResponse struct {
	User UserResponse `json:"user"`
}

type PasswordResetRequest struct {
	EmployeeId string `json:"employeeId" validate:"required"`
	Email      string `json:"email" validate:"required,email"`
}

type PasswordResetConfirmRequest struct {
	Token       string `json:"token" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=8"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=8"`
}
