package contract

import (
	"context"

	"github.com/Fusion-Mind-co/worklog-system/internal/entity"

	"github.com/google/uuid"
)

type ChatMessageRepository interface {
	Create(ctx context.Context, message *entity.ChatMessage) error
	Update(ctx context.Context, message *entity.ChatMessage) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindById(ctx context.Context, id uuid.UUID) (*entity.ChatMessage, error)

	// FindConversation returns messages between two users in creation order.
	FindConversation(ctx context.Context, userId, partnerId uuid.UUID) ([]*entity.ChatMessage, error)
	FindLatestBetween(ctx context.Context, userId, partnerId uuid.UUID) (*entity.ChatMessage, error)

	// MarkReadBySender flips every unread message from sender to receiver and
	// returns how many rows changed.
	MarkReadBySender(ctx context.Context, senderId, receiverId uuid.UUID) (int64, error)
	CountUnread(ctx context.Context, receiverId uuid.UUID) (int64, error)
	CountUnreadFrom(ctx context.Context, senderId, receiverId uuid.UUID) (int64, error)
}
