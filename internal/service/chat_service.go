package service

import (
	"context"
	"sort"
	"time"

	"github.com/Fusion-Mind-co/worklog-system/internal/dto"
	"github.com/Fusion-Mind-co/worklog-system/internal/entity"
	"github.com/Fusion-Mind-co/worklog-system/internal/pkg/apperrors"
	"github.com/Fusion-Mind-co/worklog-system/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type IChatService interface {
	GetConversation(ctx context.Context, userId, partnerId uuid.UUID) (*dto.ConversationResponse, error)
	SendMessage(ctx context.Context, userId uuid.UUID, req *dto.SendMessageRequest) (*dto.ConversationResponse, error)
	UpdateMessage(ctx context.Context, userId uuid.UUID, req *dto.UpdateMessageRequest) (*dto.ConversationResponse, error)
	DeleteMessage(ctx context.Context, userId, messageId uuid.UUID) (*dto.ConversationResponse, error)
	MarkRead(ctx context.Context, userId, senderId uuid.UUID) error
	Threads(ctx context.Context, userId uuid.UUID) ([]dto.ChatThread, error)
	UnreadCount(ctx context.Context, userId uuid.UUID) (*dto.UnreadCountResponse, error)

	ListPairs(ctx context.Context) ([]dto.ChatPairResponse, error)
	AddPair(ctx context.Context, req *dto.ChatPairRequest) error
	RemovePair(ctx context.Context, req *dto.ChatPairRequest) error
}

type chatService struct {
	uowFactory          unitofwork.RepositoryFactory
	notificationService INotificationService
}

func NewChatService(
	uowFactory unitofwork.RepositoryFactory,
	notificationService INotificationService,
) IChatService {
	return &chatService{
		uowFactory:          uowFactory,
		notificationService: notificationService,
	}
}

func chatMessageResponse(m *entity.ChatMessage) dto.ChatMessageResponse {
	resp := dto.ChatMessageResponse{
		Id:         m.Id,
		SenderId:   m.SenderId,
		ReceiverId: m.ReceiverId,
		Message:    m.Message,
		IsRead:     m.IsRead,
		IsEdited:   m.IsEdited,
		CreatedAt:  m.CreatedAt.Format(time.RFC3339),
	}
	if m.UpdatedAt != nil {
		formatted := m.UpdatedAt.Format(time.RFC3339)
		resp.UpdatedAt = &formatted
	}
	return resp
}

func (s *chatService) requirePermission(ctx context.Context, uow unitofwork.UnitOfWork, userId, partnerId uuid.UUID) (*entity.ChatPermission, error) {
	permission, err := uow.ChatPermissionRepository().FindBetween(ctx, userId, partnerId)
	if err != nil {
		return nil, err
	}
	if permission == nil {
		return nil, apperrors.NewForbidden("no chat permission with this user")
	}
	return permission, nil
}

func (s *chatService) conversationMessages(ctx context.Context, uow unitofwork.UnitOfWork, userId, partnerId uuid.UUID) ([]dto.ChatMessageResponse, error) {
	messages, err := uow.ChatMessageRepository().FindConversation(ctx, userId, partnerId)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ChatMessageResponse, 0, len(messages))
	for _, m := range messages {
		out = append(out, chatMessageResponse(m))
	}
	return out, nil
}

// threads builds the sidebar for one user: every permitted partner with the
// unread count and latest message, most recent conversation first.
func (s *chatService) threads(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID) ([]dto.ChatThread, error) {
	permissions, err := uow.ChatPermissionRepository().FindByUser(ctx, userId)
	if err != nil {
		return nil, err
	}

	type threadSort struct {
		thread dto.ChatThread
		at     time.Time
	}
	items := make([]threadSort, 0, len(permissions))
	for _, permission := range permissions {
		partner, err := uow.UserRepository().FindById(ctx, permission.PartnerId)
		if err != nil {
			return nil, err
		}
		if partner == nil {
			continue
		}
		unread, err := uow.ChatMessageRepository().CountUnreadFrom(ctx, partner.Id, userId)
		if err != nil {
			return nil, err
		}
		thread := dto.ChatThread{
			Id:             partner.Id,
			Name:           partner.Name,
			DepartmentName: partner.DepartmentName,
			Position:       partner.Position,
			Unread:         unread,
		}
		var at time.Time
		latest, err := uow.ChatMessageRepository().FindLatestBetween(ctx, userId, partner.Id)
		if err != nil {
			return nil, err
		}
		if latest != nil {
			text := latest.Message
			formatted := latest.CreatedAt.Format(time.RFC3339)
			thread.LastMessage = &text
			thread.LastMessageTime = &formatted
			at = latest.CreatedAt
		}
		items = append(items, threadSort{thread: thread, at: at})
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].at.After(items[j].at)
	})

	out := make([]dto.ChatThread, 0, len(items))
	for _, item := range items {
		out = append(out, item.thread)
	}
	return out, nil
}

func (s *chatService) conversationView(ctx context.Context, uow unitofwork.UnitOfWork, userId, partnerId uuid.UUID) (*dto.ConversationResponse, error) {
	messages, err := s.conversationMessages(ctx, uow, userId, partnerId)
	if err != nil {
		return nil, err
	}
	threads, err := s.threads(ctx, uow, userId)
	if err != nil {
		return nil, err
	}
	return &dto.ConversationResponse{Messages: messages, Threads: threads}, nil
}

// pushConversation refreshes the counterpart's open conversation view.
func (s *chatService) pushConversation(ctx context.Context, uow unitofwork.UnitOfWork, toUserId, chatPartnerId uuid.UUID) {
	view, err := s.conversationView(ctx, uow, toUserId, chatPartnerId)
	if err != nil {
		return
	}
	s.notificationService.PushChatUpdate(toUserId, dto.ChatMessagesUpdatedEvent{
		ChatPartnerId: chatPartnerId.String(),
		Messages:      view.Messages,
		Threads:       view.Threads,
	})
}

func (s *chatService) pushUnread(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID) {
	unread, err := uow.ChatMessageRepository().CountUnread(ctx, userId)
	if err != nil {
		return
	}
	threads, err := s.threads(ctx, uow, userId)
	if err != nil {
		return
	}
	s.notificationService.PushUnreadCount(userId, dto.UnreadCountUpdatedEvent{
		UnreadCount: unread,
		Threads:     threads,
	})
}

// GetConversation returns the full exchange with a partner and marks the
// partner's unread messages read. When anything was marked, the partner's
// open view is refreshed so their read receipts update live.
func (s *chatService) GetConversation(ctx context.Context, userId, partnerId uuid.UUID) (*dto.ConversationResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if _, err := s.requirePermission(ctx, uow, userId, partnerId); err != nil {
		return nil, err
	}

	marked, err := uow.ChatMessageRepository().MarkReadBySender(ctx, partnerId, userId)
	if err != nil {
		return nil, apperrors.WrapPersistence(err, "mark conversation read")
	}

	view, err := s.conversationView(ctx, uow, userId, partnerId)
	if err != nil {
		return nil, err
	}

	if marked > 0 {
		s.pushConversation(ctx, uow, partnerId, userId)
	}
	return view, nil
}

func (s *chatService) SendMessage(ctx context.Context, userId uuid.UUID, req *dto.SendMessageRequest) (*dto.ConversationResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	permission, err := s.requirePermission(ctx, uow, userId, req.ReceiverId)
	if err != nil {
		return nil, err
	}

	message := &entity.ChatMessage{
		Id:           uuid.New(),
		PermissionId: permission.Id,
		SenderId:     userId,
		ReceiverId:   req.ReceiverId,
		Message:      req.Message,
		CreatedAt:    time.Now(),
	}
	if err := uow.ChatMessageRepository().Create(ctx, message); err != nil {
		return nil, apperrors.WrapPersistence(err, "create chat message")
	}

	view, err := s.conversationView(ctx, uow, userId, req.ReceiverId)
	if err != nil {
		return nil, err
	}

	s.pushConversation(ctx, uow, req.ReceiverId, userId)
	s.pushUnread(ctx, uow, req.ReceiverId)
	return view, nil
}

func (s *chatService) requireOwnMessage(ctx context.Context, uow unitofwork.UnitOfWork, userId, messageId uuid.UUID) (*entity.ChatMessage, error) {
	message, err := uow.ChatMessageRepository().FindById(ctx, messageId)
	if err != nil {
		return nil, err
	}
	if message == nil {
		return nil, apperrors.NewNotFound("chat message")
	}
	if message.SenderId != userId {
		return nil, apperrors.NewForbidden("only the sender can change a message")
	}
	return message, nil
}

func (s *chatService) UpdateMessage(ctx context.Context, userId uuid.UUID, req *dto.UpdateMessageRequest) (*dto.ConversationResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	message, err := s.requireOwnMessage(ctx, uow, userId, req.Id)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	message.Message = req.Message
	message.IsEdited = true
	message.UpdatedAt = &now
	if err := uow.ChatMessageRepository().Update(ctx, message); err != nil {
		return nil, apperrors.WrapPersistence(err, "update chat message")
	}

	view, err := s.conversationView(ctx, uow, userId, message.ReceiverId)
	if err != nil {
		return nil, err
	}
	s.pushConversation(ctx, uow, message.ReceiverId, userId)
	return view, nil
}

func (s *chatService) DeleteMessage(ctx context.Context, userId, messageId uuid.UUID) (*dto.ConversationResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	message, err := s.requireOwnMessage(ctx, uow, userId, messageId)
	if err != nil {
		return nil, err
	}
	if err := uow.ChatMessageRepository().Delete(ctx, message.Id); err != nil {
		return nil, apperrors.WrapPersistence(err, "delete chat message")
	}

	view, err := s.conversationView(ctx, uow, userId, message.ReceiverId)
	if err != nil {
		return nil, err
	}
	s.pushConversation(ctx, uow, message.ReceiverId, userId)
	s.pushUnread(ctx, uow, message.ReceiverId)
	return view, nil
}

func (s *chatService) MarkRead(ctx context.Context, userId, senderId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	marked, err := uow.ChatMessageRepository().MarkReadBySender(ctx, senderId, userId)
	if err != nil {
		return apperrors.WrapPersistence(err, "mark messages read")
	}
	if marked > 0 {
		s.pushConversation(ctx, uow, senderId, userId)
	}
	return nil
}

func (s *chatService) Threads(ctx context.Context, userId uuid.UUID) ([]dto.ChatThread, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return s.threads(ctx, uow, userId)
}

func (s *chatService) UnreadCount(ctx context.Context, userId uuid.UUID) (*dto.UnreadCountResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	count, err := uow.ChatMessageRepository().CountUnread(ctx, userId)
	if err != nil {
		return nil, err
	}
	return &dto.UnreadCountResponse{UnreadCount: count}, nil
}

func (s *chatService) ListPairs(ctx context.Context) ([]dto.ChatPairResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	permissions, err := uow.ChatPermissionRepository().FindAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ChatPairResponse, 0, len(permissions))
	for _, p := range permissions {
		out = append(out, dto.ChatPairResponse{UserId: p.UserId, PartnerId: p.PartnerId})
	}
	return out, nil
}

// AddPair grants messaging in both directions by inserting one row per
// direction. Granting an existing pair is a no-op.
func (s *chatService) AddPair(ctx context.Context, req *dto.ChatPairRequest) error {
	if req.UserId == req.PartnerId {
		return apperrors.NewValidation("a user cannot be paired with themselves")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	for _, u := range []uuid.UUID{req.UserId, req.PartnerId} {
		user, err := uow.UserRepository().FindById(ctx, u)
		if err != nil {
			return err
		}
		if user == nil {
			return apperrors.NewNotFound("user")
		}
	}

	existing, err := uow.ChatPermissionRepository().FindBetween(ctx, req.UserId, req.PartnerId)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	now := time.Now()
	forward := &entity.ChatPermission{Id: uuid.New(), UserId: req.UserId, PartnerId: req.PartnerId, CreatedAt: now}
	backward := &entity.ChatPermission{Id: uuid.New(), UserId: req.PartnerId, PartnerId: req.UserId, CreatedAt: now}
	if err := uow.ChatPermissionRepository().Create(ctx, forward); err != nil {
		return apperrors.WrapPersistence(err, "create chat pair")
	}
	if err := uow.ChatPermissionRepository().Create(ctx, backward); err != nil {
		return apperrors.WrapPersistence(err, "create chat pair")
	}
	return uow.Commit()
}

func (s *chatService) RemovePair(ctx context.Context, req *dto.ChatPairRequest) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.ChatPermissionRepository().DeletePair(ctx, req.UserId, req.PartnerId); err != nil {
		return apperrors.WrapPersistence(err, "remove chat pair")
	}
	if err := uow.ChatPermissionRepository().DeletePair(ctx, req.PartnerId, req.UserId); err != nil {
		return apperrors.WrapPersistence(err, "remove chat pair")
	}
	return uow.Commit()
}
