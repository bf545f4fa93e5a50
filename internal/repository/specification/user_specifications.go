package specification

import "gorm.io/gorm"

type ByEmployeeId struct {
	EmployeeId string
}

func (s ByEmployeeId) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("employee_id = ?", s.EmployeeId)
}

type ByEmail struct {
	Email string
}

func (s ByEmail) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("email = ?", s.Email)
}

// AdminsOnly selects users who see the approval surface.
type AdminsOnly struct{}

func (s AdminsOnly) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("role_level >= ?", 2)
}
