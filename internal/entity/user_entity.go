package entity

import (
	"time"

	"github.com/google/uuid"
)

// RoleLevelAdmin is the threshold above which a user sees the approval surface.
const RoleLevelAdmin = 2

type User struct {
	Id             uuid.UUID
	EmployeeId     string
	Name           string
	DepartmentName string
	Position       string
	Email          *string
	PasswordHash   string
	RoleLevel      int
	DefaultUnit    *string
	SoundEnabled   bool
	LastActivePage *string
	CreatedAt      time.Time
}

func (u *User) IsAdmin() bool {
	return u.RoleLevel >= RoleLevelAdmin
}

// WatchesUnit reports whether the administrator should be notified about
// activity in the given unit. A nil DefaultUnit means all units.
func (u *User) WatchesUnit(unitName string) bool {
	return u.DefaultUnit == nil || *u.DefaultUnit == unitName
}

type PasswordResetToken struct {
	Id        uuid.UUID
	UserId    uuid.UUID
	Token     string
	ExpiresAt time.Time
	Used      bool
	CreatedAt time.Time
}
