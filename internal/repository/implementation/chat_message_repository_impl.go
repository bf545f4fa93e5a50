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

type ChatMessageRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ChatMapper
}

func NewChatMessageRepository(db *gorm.DB) contract.ChatMessageRepository {
	return &ChatMessageRepositoryImpl{
		db:     db,
		mapper: mapper.NewChatMapper(),
	}
}

func (r *ChatMessageRepositoryImpl) Create(ctx context.Context, message *entity.ChatMessage) error {
	m := r.mapper.MessageToModel(message)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*message = *r.mapper.MessageToEntity(m)
	return nil
}

func (r *ChatMessageRepositoryImpl) Update(ctx context.Context, message *entity.ChatMessage) error {
	m := r.mapper.MessageToModel(message)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*message = *r.mapper.MessageToEntity(m)
	return nil
}

func (r *ChatMessageRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.ChatMessage{}, id).Error
}

func (r *ChatMessageRepositoryImpl) FindById(ctx context.Context, id uuid.UUID) (*entity.ChatMessage, error) {
	var m model.ChatMessage
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.MessageToEntity(&m), nil
}

func (r *ChatMessageRepositoryImpl) FindConversation(ctx context.Context, userId, partnerId uuid.UUID) ([]*entity.ChatMessage, error) {
	var models []*model.ChatMessage
	query := specification.ConversationBetween{UserID: userId, PartnerID: partnerId}.Apply(r.db.WithContext(ctx))
	if err := query.Order("created_at").Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.MessagesToEntities(models), nil
}

func (r *ChatMessageRepositoryImpl) FindLatestBetween(ctx context.Context, userId, partnerId uuid.UUID) (*entity.ChatMessage, error) {
	var m model.ChatMessage
	query := specification.ConversationBetween{UserID: userId, PartnerID: partnerId}.Apply(r.db.WithContext(ctx))
	if err := query.Order("created_at DESC").First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.MessageToEntity(&m), nil
}

func (r *ChatMessageRepositoryImpl) MarkReadBySender(ctx context.Context, senderId, receiverId uuid.UUID) (int64, error) {
	result := specification.UnreadFrom{SenderID: senderId, ReceiverID: receiverId}.
		Apply(r.db.WithContext(ctx).Model(&model.ChatMessage{})).
		Update("is_read", true)
	return result.RowsAffected, result.Error
}

func (r *ChatMessageRepositoryImpl) CountUnread(ctx context.Context, receiverId uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.ChatMessage{}).
		Where("receiver_id = ? AND is_read = ?", receiverId, false).
		Count(&count).Error
	return count, err
}

func (r *ChatMessageRepositoryImpl) CountUnreadFrom(ctx context.Context, senderId, receiverId uuid.UUID) (int64, error) {
	var count int64
	query := specification.UnreadFrom{SenderID: senderId, ReceiverID: receiverId}.
		Apply(r.db.WithContext(ctx).Model(&model.ChatMessage{}))
	err := query.Count(&count).Error
	return count, err
}
