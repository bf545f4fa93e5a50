package unitofwork

import (
	"context"

	"github.com/Fusion-Mind-co/worklog-system/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	WorkLogRepository() contract.WorkLogRepository
	UserRepository() contract.UserRepository
	ChatPermissionRepository() contract.ChatPermissionRepository
	ChatMessageRepository() contract.ChatMessageRepository
	UnitRepository() contract.UnitRepository
	SystemLogRepository() contract.SystemLogRepository
}
