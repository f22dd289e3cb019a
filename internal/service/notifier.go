package service

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/colson89/ambulance-planning-sub001/internal/model"
	"github.com/colson89/ambulance-planning-sub001/internal/repository"
)

// EventPublisher sends a serialized domain event to a channel.
type EventPublisher interface {
	Publish(ctx context.Context, channel string, payload []byte) error
}

// Notifier persists per-user notifications and publishes domain events
// for downstream subscribers (push delivery, cache invalidation). All
// failures are logged and swallowed; a notification must never fail the
// transition that produced it.
type Notifier struct {
	notifications repository.NotificationRepository
	events        EventPublisher
	channel       string
	logger        *zap.Logger
}

func NewNotifier(notifications repository.NotificationRepository, events EventPublisher, channel string, logger *zap.Logger) *Notifier {
	return &Notifier{
		notifications: notifications,
		events:        events,
		channel:       channel,
		logger:        logger,
	}
}

type domainEvent struct {
	Type        string `json:"type"`
	UserID      string `json:"user_id,omitempty"`
	RelatedType string `json:"related_type,omitempty"`
	RelatedID   string `json:"related_id,omitempty"`
	OccurredAt  string `json:"occurred_at"`
}

// Notify records a notification for one user and publishes the matching
// event.
func (n *Notifier) Notify(ctx context.Context, userID, eventType, title, content, relatedType, relatedID string) {
	notif := &model.Notification{
		UserID:  userID,
		Type:    eventType,
		Title:   title,
		Content: content,
	}
	if relatedType != "" {
		notif.RelatedType = &relatedType
	}
	if relatedID != "" {
		notif.RelatedID = &relatedID
	}
	if err := n.notifications.Create(ctx, notif); err != nil {
		n.logger.Warn("storing notification failed",
			zap.String("user_id", userID),
			zap.String("type", eventType),
			zap.Error(err))
	}
	n.Event(ctx, eventType, userID, relatedType, relatedID)
}

// Event publishes a domain event without persisting a per-user record.
// Used for transitions that concern no single party.
func (n *Notifier) Event(ctx context.Context, eventType, userID, relatedType, relatedID string) {
	if n.events == nil {
		return
	}
	payload, err := json.Marshal(domainEvent{
		Type:        eventType,
		UserID:      userID,
		RelatedType: relatedType,
		RelatedID:   relatedID,
		OccurredAt:  time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return
	}
	if err := n.events.Publish(ctx, n.channel, payload); err != nil {
		n.logger.Warn("publishing event failed",
			zap.String("type", eventType),
			zap.Error(err))
	}
}
