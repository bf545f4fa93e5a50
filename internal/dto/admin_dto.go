package dto

import "github.com/google/uuid"

type CreateUserRequest struct {
	EmployeeId     string  `json:"employee_id" validate:"required"`
	Name           string  `json:"name" validate:"required"`
	DepartmentName string  `json:"department_name" validate:"required"`
	Position       string  `json:"position" validate:"required"`
	Email          *string `json:"email"`
	Password       string  `json:"password" validate:"required"`
	RoleLevel      int     `json:"role_level"`
}

type UpdateUserRequest struct {
	Id             uuid.UUID
	EmployeeId     string  `json:"employee_id" validate:"required"`
	Name           string  `json:"name" validate:"required"`
	DepartmentName string  `json:"department_name" validate:"required"`
	Position       string  `json:"position" validate:"required"`
	Email          *string `json:"email"`
	Password       string  `json:"password"`
	RoleLevel      *int    `json:"role_level"`
}

type UnitNameRequest struct {
	Name        string      `json:"name" validate:"required"`
	WorkTypeIds []uuid.UUID `json:"work_type_ids"`
}

type UnitNameResponse struct {
	Id          uuid.UUID   `json:"id"`
	Name        string      `json:"name"`
	WorkTypeIds []uuid.UUID `json:"work_type_ids"`
}

type WorkTypeRequest struct {
	Name string `json:"name" validate:"required"`
}

type WorkTypeResponse struct {
	Id   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}
