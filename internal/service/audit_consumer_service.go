package service

import (
	"context"
	"encoding/json"

	"github.com/Fusion-Mind-co/worklog-system/internal/pkg/logger"
	"github.com/Fusion-Mind-co/worklog-system/internal/repository/unitofwork"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IAuditConsumerService interface {
	Consume(ctx context.Context) error
}

// auditConsumerService drains the in-process event bus into the system_logs
// table. Audit writes never block or fail the request that produced them.
type auditConsumerService struct {
	pubSub     *gochannel.GoChannel
	topicName  string
	uowFactory unitofwork.RepositoryFactory
	logger     logger.ILogger
}

func NewAuditConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	log logger.ILogger,
) IAuditConsumerService {
	return &auditConsumerService{
		pubSub:     pubSub,
		topicName:  topicName,
		uowFactory: uowFactory,
		logger:     log,
	}
}

func (s *auditConsumerService) Consume(ctx context.Context) error {
	messages, err := s.pubSub.Subscribe(ctx, s.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			s.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (s *auditConsumerService) processMessage(ctx context.Context, msg *message.Message) {
	defer msg.Ack()

	var envelope auditEnvelope
	if err := json.Unmarshal(msg.Payload, &envelope); err != nil {
		s.logger.Warn("Audit", "Discarding malformed audit event", map[string]interface{}{"error": err.Error()})
		return
	}

	payload, err := json.Marshal(envelope.Data)
	if err != nil {
		s.logger.Warn("Audit", "Failed to marshal audit payload", map[string]interface{}{"error": err.Error()})
		return
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.SystemLogRepository().Create(ctx, envelope.EventType, envelope.Actor, payload); err != nil {
		s.logger.Error("Audit", "Failed to persist audit event", map[string]interface{}{
			"event_type": envelope.EventType,
			"error":      err.Error(),
		})
	}
}
