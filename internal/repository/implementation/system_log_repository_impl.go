package implementation

import (
	"context"

	"github.com/Fusion-Mind-co/worklog-system/internal/model"
	"github.com/Fusion-Mind-co/worklog-system/internal/repository/contract"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type SystemLogRepositoryImpl struct {
	db *gorm.DB
}

func NewSystemLogRepository(db *gorm.DB) contract.SystemLogRepository {
	return &SystemLogRepositoryImpl{db: db}
}

func (r *SystemLogRepositoryImpl) Create(ctx context.Context, eventType, actor string, payload []byte) error {
	m := &model.SystemLog{
		EventType: eventType,
		Actor:     actor,
		Payload:   datatypes.JSON(payload),
	}
	return r.db.WithContext(ctx).Create(m).Error
}
