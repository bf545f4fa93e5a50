package mapper

import (
	"github.com/Fusion-Mind-co/worklog-system/internal/entity"
	"github.com/Fusion-Mind-co/worklog-system/internal/model"
)

type ChatMapper struct{}

func NewChatMapper() *ChatMapper {
	return &ChatMapper{}
}

func (m *ChatMapper) PermissionToEntity(p *model.ChatPermission) *entity.ChatPermission {
	if p == nil {
		return nil
	}

	return &entity.ChatPermission{
		Id:        p.Id,
		UserId:    p.UserId,
		PartnerId: p.PartnerId,
		CreatedAt: p.CreatedAt,
	}
}

func (m *ChatMapper) PermissionToModel(p *entity.ChatPermission) *model.ChatPermission {
	if p == nil {
		return nil
	}

	return &model.ChatPermission{
		Id:        p.Id,
		UserId:    p.UserId,
		PartnerId: p.PartnerId,
		CreatedAt: p.CreatedAt,
	}
}

func (m *ChatMapper) PermissionsToEntities(perms []*model.ChatPermission) []*entity.ChatPermission {
	entities := make([]*entity.ChatPermission, len(perms))
	for i, p := range perms {
		entities[i] = m.PermissionToEntity(p)
	}
	return entities
}

func (m *ChatMapper) MessageToEntity(msg *model.ChatMessage) *entity.ChatMessage {
	if msg == nil {
		return nil
	}

	return &entity.ChatMessage{
		Id:           msg.Id,
		PermissionId: msg.PermissionId,
		SenderId:     msg.SenderId,
		ReceiverId:   msg.ReceiverId,
		Message:      msg.Message,
		IsRead:       msg.IsRead,
		IsEdited:     msg.IsEdited,
		CreatedAt:    msg.CreatedAt,
		UpdatedAt:    msg.UpdatedAt,
	}
}

func (m *ChatMapper) MessageToModel(msg *entity.ChatMessage) *model.ChatMessage {
	if msg == nil {
		return nil
	}

	return &model.ChatMessage{
		Id:           msg.Id,
		PermissionId: msg.PermissionId,
		SenderId:     msg.SenderId,
		ReceiverId:   msg.ReceiverId,
		Message:      msg.Message,
		IsRead:       msg.IsRead,
		IsEdited:     msg.IsEdited,
		CreatedAt:    msg.CreatedAt,
		UpdatedAt:    msg.UpdatedAt,
	}
}

func (m *ChatMapper) MessagesToEntities(msgs []*model.ChatMessage) []*entity.ChatMessage {
	entities := make([]*entity.ChatMessage, len(msgs))
	for i, msg := range msgs {
		entities[i] = m.MessageToEntity(msg)
	}
	return entities
}
