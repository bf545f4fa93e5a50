package contract

import (
	"context"

	"github.com/Fusion-Mind-co/worklog-system/internal/entity"

	"github.com/google/uuid"
)

type ChatPermissionRepository interface {
	Create(ctx context.Context, permission *entity.ChatPermission) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeletePair(ctx context.Context, userId, partnerId uuid.UUID) error
	FindBetween(ctx context.Context, userId, partnerId uuid.UUID) (*entity.ChatPermission, error)
	FindByUser(ctx context.Context, userId uuid.UUID) ([]*entity.ChatPermission, error)
	FindAll(ctx context.Context) ([]*entity.ChatPermission, error)
}
