package implementation

import (
	"context"
	"errors"

	"github.com/Fusion-Mind-co/worklog-system/internal/entity"
	"github.com/Fusion-Mind-co/worklog-system/internal/mapper"
	"github.com/Fusion-Mind-co/worklog-system/internal/model"
	"github.com/Fusion-Mind-co/worklog-system/internal/repository/contract"
	"github.com/Fusion-Mind-co/worklog-system/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ChatPermissionRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ChatMapper
}

func NewChatPermissionRepository(db *gorm.DB) contract.ChatPermissionRepository {
	return &ChatPermissionRepositoryImpl{
		db:     db,
		mapper: mapper.NewChatMapper(),
	}
}

func (r *ChatPermissionRepositoryImpl) Create(ctx context.Context, permission *entity.ChatPermission) error {
	m := r.mapper.PermissionToModel(permission)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*permission = *r.mapper.PermissionToEntity(m)
	return nil
}

func (r *ChatPermissionRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.ChatPermission{}, id).Error
}

func (r *ChatPermissionRepositoryImpl) DeletePair(ctx context.Context, userId, partnerId uuid.UUID) error {
	query := specification.PermissionBetween{UserID: userId, PartnerID: partnerId}.Apply(r.db.WithContext(ctx))
	return query.Delete(&model.ChatPermission{}).Error
}

func (r *ChatPermissionRepositoryImpl) FindBetween(ctx context.Context, userId, partnerId uuid.UUID) (*entity.ChatPermission, error) {
	var m model.ChatPermission
	query := specification.PermissionBetween{UserID: userId, PartnerID: partnerId}.Apply(r.db.WithContext(ctx))
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.PermissionToEntity(&m), nil
}

func (r *ChatPermissionRepositoryImpl) FindByUser(ctx context.Context, userId uuid.UUID) ([]*entity.ChatPermission, error) {
	var models []*model.ChatPermission
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userId).
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return r.mapper.PermissionsToEntities(models), nil
}

func (r *ChatPermissionRepositoryImpl) FindAll(ctx context.Context) ([]*entity.ChatPermission, error) {
	var models []*model.ChatPermission
	if err := r.db.WithContext(ctx).Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.PermissionsToEntities(models), nil
}
