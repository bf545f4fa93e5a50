package service

import (
	"context"
	"fmt"

	"github.com/Fusion-Mind-co/worklog-system/internal/dto"
	"github.com/Fusion-Mind-co/worklog-system/internal/entity"
	"github.com/Fusion-Mind-co/worklog-system/internal/pkg/logger"
	"github.com/Fusion-Mind-co/worklog-system/internal/repository/unitofwork"

	"github.com/google/uuid"
)

// NotificationDelivery pushes a realtime event to one user's connected
// devices. Implemented by the websocket Hub.
type NotificationDelivery interface {
	Send(userID uuid.UUID, eventType string, data interface{}) error
}

type INotificationService interface {
	NotifyWorklogRequest(ctx context.Context, actor *entity.User, worklogId uuid.UUID, unitName, requestType string)
	NotifyApproved(ctx context.Context, submitter *entity.User, worklogId uuid.UUID, unitName, requestType string)
	NotifyRejected(ctx context.Context, submitter *entity.User, worklogId uuid.UUID, unitName, requestType, rejectReason string)
	PushChatUpdate(userID uuid.UUID, event dto.ChatMessagesUpdatedEvent)
	PushUnreadCount(userID uuid.UUID, event dto.UnreadCountUpdatedEvent)
}

type notificationService struct {
	uowFactory unitofwork.RepositoryFactory
	delivery   NotificationDelivery
	logger     logger.ILogger
}

func NewNotificationService(
	uowFactory unitofwork.RepositoryFactory,
	delivery NotificationDelivery,
	log logger.ILogger,
) INotificationService {
	return &notificationService{
		uowFactory: uowFactory,
		delivery:   delivery,
		logger:     log,
	}
}

// WatchingAdmins returns the admins that see requests for a unit: those with
// no default unit watch everything.
func WatchingAdmins(admins []*entity.User, unitName string) []*entity.User {
	var out []*entity.User
	for _, admin := range admins {
		if admin.WatchesUnit(unitName) {
			out = append(out, admin)
		}
	}
	return out
}

func requestMessage(actorName, requestType string) string {
	switch requestType {
	case dto.RequestTypeAdd:
		return fmt.Sprintf("%s submitted an add request", actorName)
	case dto.RequestTypeEdit:
		return fmt.Sprintf("%s submitted an edit request", actorName)
	case dto.RequestTypeDelete:
		return fmt.Sprintf("%s submitted a delete request", actorName)
	case dto.RequestTypeCancel:
		return fmt.Sprintf("%s withdrew a request", actorName)
	case dto.RequestTypeRejectedCancel:
		return fmt.Sprintf("%s dismissed a rejection", actorName)
	}
	return fmt.Sprintf("%s updated a request", actorName)
}

// NotifyWorklogRequest fans a request event out to every watching admin.
// Pending counts are computed per recipient so the badge matches what that
// admin's default-unit filter will show. Delivery is best effort.
func (s *notificationService) NotifyWorklogRequest(ctx context.Context, actor *entity.User, worklogId uuid.UUID, unitName, requestType string) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	admins, err := uow.UserRepository().FindAdmins(ctx)
	if err != nil {
		s.logger.Error("Notification", "Failed to load admins for fan-out", map[string]interface{}{"error": err.Error()})
		return
	}

	for _, admin := range WatchingAdmins(admins, unitName) {
		counts, err := uow.WorkLogRepository().PendingCounts(ctx, admin.DefaultUnit)
		if err != nil {
			s.logger.Error("Notification", "Failed to compute pending counts", map[string]interface{}{
				"admin": admin.Id.String(),
				"error": err.Error(),
			})
			continue
		}
		event := dto.WorklogRequestEvent{
			WorklogId:    worklogId,
			UnitName:     unitName,
			Type:         requestType,
			PendingCount: counts,
			EmployeeName: actor.Name,
			Message:      requestMessage(actor.Name, requestType),
		}
		if err := s.delivery.Send(admin.Id, dto.EventWorklogRequest, event); err != nil {
			s.logger.Warn("Notification", "Request fan-out delivery failed", map[string]interface{}{
				"admin": admin.Id.String(),
				"error": err.Error(),
			})
		}
	}
}

func (s *notificationService) NotifyApproved(ctx context.Context, submitter *entity.User, worklogId uuid.UUID, unitName, requestType string) {
	event := dto.WorklogApprovedEvent{
		WorklogId: worklogId,
		UnitName:  unitName,
		Type:      requestType,
		Message:   fmt.Sprintf("Your %s request was approved", requestType),
	}
	if err := s.delivery.Send(submitter.Id, dto.EventWorklogApproved, event); err != nil {
		s.logger.Warn("Notification", "Approval delivery failed", map[string]interface{}{
			"user":  submitter.Id.String(),
			"error": err.Error(),
		})
	}
}

func (s *notificationService) NotifyRejected(ctx context.Context, submitter *entity.User, worklogId uuid.UUID, unitName, requestType, rejectReason string) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	counts, err := uow.WorkLogRepository().RejectedCounts(ctx, submitter.EmployeeId)
	if err != nil {
		s.logger.Error("Notification", "Failed to compute rejected counts", map[string]interface{}{
			"employee": submitter.EmployeeId,
			"error":    err.Error(),
		})
	}

	event := dto.WorklogRejectedEvent{
		WorklogId:    worklogId,
		UnitName:     unitName,
		Type:         requestType,
		RejectReason: rejectReason,
		RejectCount:  counts,
		Message:      fmt.Sprintf("Your %s request was rejected", requestType),
	}
	if err := s.delivery.Send(submitter.Id, dto.EventWorklogRejected, event); err != nil {
		s.logger.Warn("Notification", "Rejection delivery failed", map[string]interface{}{
			"user":  submitter.Id.String(),
			"error": err.Error(),
		})
	}
}

func (s *notificationService) PushChatUpdate(userID uuid.UUID, event dto.ChatMessagesUpdatedEvent) {
	if err := s.delivery.Send(userID, dto.EventChatUpdated, event); err != nil {
		s.logger.Warn("Notification", "Chat update delivery failed", map[string]interface{}{
			"user":  userID.String(),
			"error": err.Error(),
		})
	}
}

func (s *notificationService) PushUnreadCount(userID uuid.UUID, event dto.UnreadCountUpdatedEvent) {
	if err := s.delivery.Send(userID, dto.EventUnreadCountUpdated, event); err != nil {
		s.logger.Warn("Notification", "Unread count delivery failed", map[string]interface{}{
			"user":  userID.String(),
			"error": err.Error(),
		})
	}
}
