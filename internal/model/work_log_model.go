package model

import (
	"time"

	"github.com/google/uuid"
)

type WorkLog struct {
	Id           uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeId   string     `gorm:"type:varchar(20);not null;index"`
	RowNumber    int        `gorm:"not null;default:0"`
	Date         time.Time  `gorm:"type:date;not null;index"`
	Model        string     `gorm:"type:varchar(100)"`
	SerialNumber string     `gorm:"type:varchar(100)"`
	WorkOrder    string     `gorm:"type:varchar(100)"`
	PartNumber   string     `gorm:"type:varchar(100)"`
	OrderNumber  string     `gorm:"type:varchar(100)"`
	Quantity     *int
	UnitName     string     `gorm:"type:varchar(100);not null;index"`
	WorkType     string     `gorm:"type:varchar(100);not null"`
	Minutes      int        `gorm:"not null"`
	Remarks      string     `gorm:"type:text"`
	Status       string     `gorm:"type:varchar(20);not null;index"`
	EditReason   *string    `gorm:"type:text"`
	OriginalId   *uuid.UUID `gorm:"type:uuid;index"`
	CreatedAt    time.Time  `gorm:"autoCreateTime"`
	UpdatedAt    time.Time  `gorm:"autoUpdateTime"`
}

func (WorkLog) TableName() string {
	return "work_logs"
}
