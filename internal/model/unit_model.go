package model

import (
	"time"

	"github.com/google/uuid"
)

type UnitName struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name      string    `gorm:"type:varchar(100);uniqueIndex;not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (UnitName) TableName() string {
	return "unit_names"
}

type WorkType struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name      string    `gorm:"type:varchar(100);uniqueIndex;not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (WorkType) TableName() string {
	return "work_types"
}

type UnitWorkType struct {
	Id         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UnitNameId uuid.UUID `gorm:"type:uuid;not null;index:idx_unit_work_types_link,priority:1"`
	WorkTypeId uuid.UUID `gorm:"type:uuid;not null;index:idx_unit_work_types_link,priority:2"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
}

func (UnitWorkType) TableName() string {
	return "unit_work_types"
}
