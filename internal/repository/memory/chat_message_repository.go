package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/Fusion-Mind-co/worklog-system/internal/entity"

	"github.com/google/uuid"
)

type ChatMessageRepository struct {
	mu       sync.Mutex
	messages map[uuid.UUID]*entity.ChatMessage
	seq      int
	order    map[uuid.UUID]int
}

func NewChatMessageRepository() *ChatMessageRepository {
	return &ChatMessageRepository{
		messages: map[uuid.UUID]*entity.ChatMessage{},
		order:    map[uuid.UUID]int{},
	}
}

func cloneMessage(m *entity.ChatMessage) *entity.ChatMessage {
	c := *m
	if m.UpdatedAt != nil {
		t := *m.UpdatedAt
		c.UpdatedAt = &t
	}
	return &c
}

func betweenUsers(m *entity.ChatMessage, userId, partnerId uuid.UUID) bool {
	return (m.SenderId == userId && m.ReceiverId == partnerId) ||
		(m.SenderId == partnerId && m.ReceiverId == userId)
}

func (r *ChatMessageRepository) Create(ctx context.Context, message *entity.ChatMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if message.Id == uuid.Nil {
		message.Id = uuid.New()
	}
	if message.CreatedAt.IsZero() {
		message.CreatedAt = time.Now()
	}
	r.seq++
	r.order[message.Id] = r.seq
	r.messages[message.Id] = cloneMessage(message)
	return nil
}

func (r *ChatMessageRepository) Update(ctx context.Context, message *entity.ChatMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages[message.Id] = cloneMessage(message)
	return nil
}

func (r *ChatMessageRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.messages, id)
	return nil
}

func (r *ChatMessageRepository) FindById(ctx context.Context, id uuid.UUID) (*entity.ChatMessage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if m, ok := r.messages[id]; ok {
		return cloneMessage(m), nil
	}
	return nil, nil
}

func (r *ChatMessageRepository) conversation(userId, partnerId uuid.UUID) []*entity.ChatMessage {
	var out []*entity.ChatMessage
	for _, m := range r.messages {
		if betweenUsers(m, userId, partnerId) {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return r.order[out[i].Id] < r.order[out[j].Id] })
	return out
}

func (r *ChatMessageRepository) FindConversation(ctx context.Context, userId, partnerId uuid.UUID) ([]*entity.ChatMessage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.ChatMessage
	for _, m := range r.conversation(userId, partnerId) {
		out = append(out, cloneMessage(m))
	}
	return out, nil
}

func (r *ChatMessageRepository) FindLatestBetween(ctx context.Context, userId, partnerId uuid.UUID) (*entity.ChatMessage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	msgs := r.conversation(userId, partnerId)
	if len(msgs) == 0 {
		return nil, nil
	}
	return cloneMessage(msgs[len(msgs)-1]), nil
}

func (r *ChatMessageRepository) MarkReadBySender(ctx context.Context, senderId, receiverId uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var changed int64
	for _, m := range r.messages {
		if m.SenderId == senderId && m.ReceiverId == receiverId && !m.IsRead {
			m.IsRead = true
			changed++
		}
	}
	return changed, nil
}

func (r *ChatMessageRepository) CountUnread(ctx context.Context, receiverId uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, m := range r.messages {
		if m.ReceiverId == receiverId && !m.IsRead {
			count++
		}
	}
	return count, nil
}

func (r *ChatMessageRepository) CountUnreadFrom(ctx context.Context, senderId, receiverId uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, m := range r.messages {
		if m.SenderId == senderId && m.ReceiverId == receiverId && !m.IsRead {
			count++
		}
	}
	return count, nil
}
