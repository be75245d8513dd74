package service

import (
	"context"
	"strings"

	"legal-consult-be/internal/pkg/logger"
	"legal-consult-be/internal/websocket"
	"legal-consult-be/pkg/events"
	pktNats "legal-consult-be/pkg/nats"

	"github.com/google/uuid"
)

// INotificationService fans domain events out to connected websocket users.
type INotificationService interface {
	Start() error
}

type notificationService struct {
	subscriber *pktNats.Subscriber
	hub        *websocket.Hub
	logger     logger.ILogger
}

func NewNotificationService(subscriber *pktNats.Subscriber, hub *websocket.Hub, wsLogger logger.ILogger) INotificationService {
	return &notificationService{
		subscriber: subscriber,
		hub:        hub,
		logger:     wsLogger,
	}
}

func (s *notificationService) Start() error {
	return s.subscriber.Subscribe("events.>", "notification-worker", s.handleEvent)
}

func (s *notificationService) handleEvent(_ context.Context, event events.Event) error {
	data := event.Payload()

	userID, ok := extractUserID(data, "user_id")
	if !ok {
		return nil
	}

	// The subject arrives as "events.<TYPE>", keep only the type.
	eventType := event.EventType()
	if idx := strings.LastIndex(eventType, "."); idx >= 0 {
		eventType = eventType[idx+1:]
	}

	s.hub.Send(userID, "notification", map[string]interface{}{
		"type": eventType,
		"data": data,
	})

	s.logger.Info("Notification", "Event delivered", map[string]interface{}{
		"type": eventType, "user_id": userID,
	})
	return nil
}

func extractUserID(data map[string]interface{}, key string) (uuid.UUID, bool) {
	raw, ok := data[key]
	if !ok {
		return uuid.Nil, false
	}
	str, ok := raw.(string)
	if !ok {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(str)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}
