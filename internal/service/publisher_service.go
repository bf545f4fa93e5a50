package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Fusion-Mind-co/worklog-system/pkg/events"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// auditEnvelope is the wire form of an audit event on the in-process bus.
type auditEnvelope struct {
	EventType  string                 `json:"event_type"`
	Actor      string                 `json:"actor"`
	OccurredAt time.Time              `json:"occurred_at"`
	Data       map[string]interface{} `json:"data"`
}

type IPublisherService interface {
	Publish(ctx context.Context, eventType, actor string, data map[string]interface{}) error
}

type publisherService struct {
	pubSub    *gochannel.GoChannel
	topicName string
}

func NewPublisherService(pubSub *gochannel.GoChannel, topicName string) IPublisherService {
	return &publisherService{
		pubSub:    pubSub,
		topicName: topicName,
	}
}

func (s *publisherService) Publish(ctx context.Context, eventType, actor string, data map[string]interface{}) error {
	event := events.New(eventType, data)
	envelope := auditEnvelope{
		EventType:  event.EventType(),
		Actor:      actor,
		OccurredAt: event.Timestamp(),
		Data:       event.Payload(),
	}
	payload, err := json.Marshal(envelope)
	if err != nil {
		return err
	}
	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.SetContext(ctx)
	return s.pubSub.Publish(s.topicName, msg)
}
