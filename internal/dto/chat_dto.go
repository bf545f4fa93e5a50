package dto

import "github.com/google/uuid"

type SendMessageRequest struct {
	ReceiverId uuid.UUID `json:"receiver_id" validate:"required"`
	Message    string    `json:"message" validate:"required"`
}

type UpdateMessageRequest struct {
	Id      uuid.UUID
	Message string `json:"message" validate:"required"`
}

type ChatMessageResponse struct {
	Id         uuid.UUID `json:"id"`
	SenderId   uuid.UUID `json:"sender_id"`
	ReceiverId uuid.UUID `json:"receiver_id"`
	Message    string    `json:"message"`
	IsRead     bool      `json:"is_read"`
	IsEdited   bool      `json:"is_edited"`
	CreatedAt  string    `json:"created_at"`
	UpdatedAt  *string   `json:"updated_at"`
}

// ChatThread is one conversation partner with the unread count and the most
// recent message, used to render the thread sidebar.
type ChatThread struct {
	Id              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	DepartmentName  string    `json:"department_name"`
	Position        string    `json:"position"`
	Unread          int64     `json:"unread"`
	LastMessage     *string   `json:"lastMessage"`
	LastMessageTime *string   `json:"lastMessageTime"`
}

type ConversationResponse struct {
	Messages []ChatMessageResponse `json:"messages"`
	Threads  []ChatThread          `json:"threads"`
}

type UnreadCountResponse struct {
	UnreadCount int64 `json:"unread_count"`
}

type ChatPairRequest struct {
	UserId    uuid.UUID `json:"user_id" validate:"required"`
	PartnerId uuid.UUID `json:"partner_id" validate:"required"`
}

type ChatPairResponse struct {
	UserId    uuid.UUID `json:"user_id"`
	PartnerId uuid.UUID `json:"partner_id"`
}
