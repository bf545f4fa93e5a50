package memory

import (
	"context"
	"sync"
	"time"

	"github.com/Fusion-Mind-co/worklog-system/internal/entity"

	"github.com/google/uuid"
)

type ChatPermissionRepository struct {
	mu          sync.Mutex
	permissions map[uuid.UUID]*entity.ChatPermission
}

func NewChatPermissionRepository() *ChatPermissionRepository {
	return &ChatPermissionRepository{permissions: map[uuid.UUID]*entity.ChatPermission{}}
}

func pairMatches(p *entity.ChatPermission, userId, partnerId uuid.UUID) bool {
	return (p.UserId == userId && p.PartnerId == partnerId) ||
		(p.UserId == partnerId && p.PartnerId == userId)
}

func (r *ChatPermissionRepository) Create(ctx context.Context, permission *entity.ChatPermission) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if permission.Id == uuid.Nil {
		permission.Id = uuid.New()
	}
	if permission.CreatedAt.IsZero() {
		permission.CreatedAt = time.Now()
	}
	c := *permission
	r.permissions[permission.Id] = &c
	return nil
}

func (r *ChatPermissionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.permissions, id)
	return nil
}

func (r *ChatPermissionRepository) DeletePair(ctx context.Context, userId, partnerId uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, p := range r.permissions {
		if pairMatches(p, userId, partnerId) {
			delete(r.permissions, id)
		}
	}
	return nil
}

func (r *ChatPermissionRepository) FindBetween(ctx context.Context, userId, partnerId uuid.UUID) (*entity.ChatPermission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.permissions {
		if pairMatches(p, userId, partnerId) {
			c := *p
			return &c, nil
		}
	}
	return nil, nil
}

func (r *ChatPermissionRepository) FindByUser(ctx context.Context, userId uuid.UUID) ([]*entity.ChatPermission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.ChatPermission
	for _, p := range r.permissions {
		if p.UserId == userId {
			c := *p
			out = append(out, &c)
		}
	}
	return out, nil
}

func (r *ChatPermissionRepository) FindAll(ctx context.Context) ([]*entity.ChatPermission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.ChatPermission
	for _, p := range r.permissions {
		c := *p
		out = append(out, &c)
	}
	return out, nil
}
