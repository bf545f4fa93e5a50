package entity

import (
	"time"

	"github.com/google/uuid"
)

// ChatPermission allows one user to message another. A bidirectional
// allowance is stored as two rows, one per direction.
type ChatPermission struct {
	Id        uuid.UUID
	UserId    uuid.UUID
	PartnerId uuid.UUID
	CreatedAt time.Time
}

type ChatMessage struct {
	Id           uuid.UUID
	PermissionId uuid.UUID
	SenderId     uuid.UUID
	ReceiverId   uuid.UUID
	Message      string
	IsRead       bool
	IsEdited     bool
	CreatedAt    time.Time
	UpdatedAt    *time.Time
}
