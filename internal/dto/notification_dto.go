package dto

import (
	"github.com/Fusion-Mind-co/worklog-system/internal/entity"

	"github.com/google/uuid"
)

// Event type tags pushed over the websocket. Payloads stay light; clients
// re-fetch the full data they need.
const (
	EventWorklogRequest     = "worklog_request"
	EventWorklogApproved    = "worklog_approved"
	EventWorklogRejected    = "worklog_rejected"
	EventChatUpdated        = "chat_messages_updated"
	EventUnreadCountUpdated = "unread_count_updated"
)

// Request type tags carried inside worklog_request events.
const (
	RequestTypeAdd            = "add"
	RequestTypeEdit           = "edit"
	RequestTypeDelete         = "delete"
	RequestTypeCancel         = "cancel"
	RequestTypeRejectedCancel = "rejected_cancel"
)

// WorklogRequestEvent goes to every watching admin when a submitter files or
// withdraws a request. PendingCount is scoped to the recipient's default unit.
type WorklogRequestEvent struct {
	WorklogId    uuid.UUID            `json:"worklog_id"`
	UnitName     string               `json:"unit_name"`
	Type         string               `json:"type"`
	PendingCount entity.PendingCounts `json:"pending_count"`
	EmployeeName string               `json:"employee_name"`
	Message      string               `json:"message"`
}

type WorklogApprovedEvent struct {
	WorklogId uuid.UUID `json:"worklog_id"`
	UnitName  string    `json:"unit_name"`
	Type      string    `json:"type"`
	Message   string    `json:"message"`
}

type WorklogRejectedEvent struct {
	WorklogId    uuid.UUID             `json:"worklog_id"`
	UnitName     string                `json:"unit_name"`
	Type         string                `json:"type"`
	RejectReason string                `json:"reject_reason"`
	RejectCount  entity.RejectedCounts `json:"reject_count"`
	Message      string                `json:"message"`
}

type ChatMessagesUpdatedEvent struct {
	ChatPartnerId string                `json:"chat_partner_id"`
	Messages      []ChatMessageResponse `json:"messages"`
	Threads       []ChatThread          `json:"threads"`
}

type UnreadCountUpdatedEvent struct {
	UnreadCount int64        `json:"unread_count"`
	Threads     []ChatThread `json:"threads"`
}
