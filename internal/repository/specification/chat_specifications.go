package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ConversationBetween selects messages exchanged between two users in either
// direction.
type ConversationBetween struct {
	UserID    uuid.UUID
	PartnerID uuid.UUID
}

func (s ConversationBetween) Apply(db *gorm.DB) *gorm.DB {
	return db.Where(
		"(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
		s.UserID, s.PartnerID, s.PartnerID, s.UserID,
	)
}

// UnreadFrom selects unread messages a sender has pending at a receiver.
type UnreadFrom struct {
	SenderID   uuid.UUID
	ReceiverID uuid.UUID
}

func (s UnreadFrom) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("sender_id = ? AND receiver_id = ? AND is_read = ?", s.SenderID, s.ReceiverID, false)
}

// PermissionBetween selects the permission row joining two users in either
// direction.
type PermissionBetween struct {
	UserID    uuid.UUID
	PartnerID uuid.UUID
}

func (s PermissionBetween) Apply(db *gorm.DB) *gorm.DB {
	return db.Where(
		"(user_id = ? AND partner_id = ?) OR (user_id = ? AND partner_id = ?)",
		s.UserID, s.PartnerID, s.PartnerID, s.UserID,
	)
}
