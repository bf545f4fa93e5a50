package memory

import (
	"context"

	"github.com/Fusion-Mind-co/worklog-system/internal/repository/contract"
	"github.com/Fusion-Mind-co/worklog-system/internal/repository/unitofwork"
)

// Factory hands out units of work that all share the same backing stores, so
// a test can seed data and then assert on what a service wrote.
type Factory struct {
	WorkLogs    *WorkLogRepository
	Users       *UserRepository
	Permissions *ChatPermissionRepository
	Messages    *ChatMessageRepository
	Units       *UnitRepository
	SystemLogs  *SystemLogRepository
}

func NewFactory() *Factory {
	return &Factory{
		WorkLogs:    NewWorkLogRepository(),
		Users:       NewUserRepository(),
		Permissions: NewChatPermissionRepository(),
		Messages:    NewChatMessageRepository(),
		Units:       NewUnitRepository(),
		SystemLogs:  NewSystemLogRepository(),
	}
}

func (f *Factory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return &unitOfWork{factory: f}
}

type unitOfWork struct {
	factory *Factory
}

func (u *unitOfWork) Begin(ctx context.Context) error { return nil }
func (u *unitOfWork) Commit() error                   { return nil }
func (u *unitOfWork) Rollback() error                 { return nil }

func (u *unitOfWork) WorkLogRepository() contract.WorkLogRepository {
	return u.factory.WorkLogs
}

func (u *unitOfWork) UserRepository() contract.UserRepository {
	return u.factory.Users
}

func (u *unitOfWork) ChatPermissionRepository() contract.ChatPermissionRepository {
	return u.factory.Permissions
}

func (u *unitOfWork) ChatMessageRepository() contract.ChatMessageRepository {
	return u.factory.Messages
}

func (u *unitOfWork) UnitRepository() contract.UnitRepository {
	return u.factory.Units
}

func (u *unitOfWork) SystemLogRepository() contract.SystemLogRepository {
	return u.factory.SystemLogs
}
