package model

import (
	"time"

	"github.com/google/uuid"
)

type ChatPermission struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId    uuid.UUID `gorm:"type:uuid;not null;index:idx_chat_permissions_pair,priority:1"`
	PartnerId uuid.UUID `gorm:"type:uuid;not null;index:idx_chat_permissions_pair,priority:2"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (ChatPermission) TableName() string {
	return "chat_permissions"
}

type ChatMessage struct {
	Id           uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PermissionId uuid.UUID  `gorm:"type:uuid;not null;index"`
	SenderId     uuid.UUID  `gorm:"type:uuid;not null;index:idx_chat_messages_unread,priority:1"`
	ReceiverId   uuid.UUID  `gorm:"type:uuid;not null;index:idx_chat_messages_unread,priority:2"`
	Message      string     `gorm:"type:text;not null"`
	IsRead       bool       `gorm:"default:false;index:idx_chat_messages_unread,priority:3"`
	IsEdited     bool       `gorm:"default:false"`
	CreatedAt    time.Time  `gorm:"autoCreateTime;index"`
	UpdatedAt    *time.Time
}

func (ChatMessage) TableName() string {
	return "chat_messages"
}
