package model

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	Id             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeId     string    `gorm:"type:varchar(20);uniqueIndex;not null"`
	Name           string    `gorm:"type:varchar(100);not null"`
	DepartmentName string    `gorm:"type:varchar(100)"`
	Position       string    `gorm:"type:varchar(100)"`
	Email          *string   `gorm:"type:varchar(255);uniqueIndex"`
	PasswordHash   string    `gorm:"type:varchar(255);not null"`
	RoleLevel      int       `gorm:"not null;default:1"`
	DefaultUnit    *string   `gorm:"type:varchar(100)"`
	SoundEnabled   bool      `gorm:"default:true"`
	LastActivePage *string   `gorm:"type:varchar(100)"`
	CreatedAt      time.Time `gorm:"autoCreateTime"`
}

func (User) TableName() string {
	return "users"
}

type PasswordResetToken struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId    uuid.UUID `gorm:"type:uuid;not null;index"`
	Token     string    `gorm:"type:varchar(255);not null;index"`
	ExpiresAt time.Time `gorm:"not null"`
	Used      bool      `gorm:"default:false"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (PasswordResetToken) TableName() string {
	return "password_reset_tokens"
}
