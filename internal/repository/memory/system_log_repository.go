package memory

import (
	"context"
	"sync"
)

type SystemLogEntry struct {
	EventType string
	Actor     string
	Payload   []byte
}

type SystemLogRepository struct {
	mu      sync.Mutex
	Entries []SystemLogEntry
}

func NewSystemLogRepository() *SystemLogRepository {
	return &SystemLogRepository{}
}

func (r *SystemLogRepository) Create(ctx context.Context, eventType, actor string, payload []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Entries = append(r.Entries, SystemLogEntry{EventType: eventType, Actor: actor, Payload: payload})
	return nil
}
