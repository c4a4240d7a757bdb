package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/telecom-triage/internal/config"
	"github.com/spec-kit/telecom-triage/internal/events"
)

// NotificationService handles emitting notifications for domain events.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	cfg        config.NotificationConfig
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger, cfg config.NotificationConfig) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		logger:     logger,
		cfg:        cfg,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventConversationRecorded, n.handleConversationRecorded)
	n.dispatcher.Subscribe(events.EventQueryRecorded, n.handleQueryRecorded)
	n.dispatcher.Subscribe(events.EventGrievanceOpened, n.handleGrievanceOpened)
	n.dispatcher.Subscribe(events.EventGrievanceStatusChanged, n.handleGrievanceStatusChanged)
}

func (n *NotificationService) handleConversationRecorded(ctx context.Context, event events.Event) error {
	n.logger.Info("ConversationRecorded", zap.Int64("conversation_id", event.ConversationID), zap.Any("payload", event.Payload))
	return nil
}

func (n *NotificationService) handleQueryRecorded(ctx context.Context, event events.Event) error {
	n.logger.Info("QueryRecorded", zap.Int64("record_id", event.RecordID), zap.Any("payload", event.Payload))
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleGrievanceOpened(ctx context.Context, event events.Event) error {
	n.logger.Info("GrievanceOpened", zap.Int64("record_id", event.RecordID), zap.Any("payload", event.Payload))
	n.sendEmailNotificationStub(ctx, event)
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleGrievanceStatusChanged(ctx context.Context, event events.Event) error {
	n.logger.Info("GrievanceStatusChanged", zap.Int64("record_id", event.RecordID), zap.Any("payload", event.Payload))
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) sendEmailNotificationStub(ctx context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.EmailFrom) == "" {
		return
	}
	n.logger.Debug("sendEmailNotificationStub",
		zap.String("from", n.cfg.EmailFrom),
		zap.Int64("record_id", event.RecordID),
		zap.String("event_type", string(event.Type)))
}

func (n *NotificationService) sendWebhookNotificationStub(ctx context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.WebhookURL) == "" {
		return
	}
	n.logger.Debug("sendWebhookNotificationStub",
		zap.String("url", n.cfg.WebhookURL),
		zap.Int64("record_id", event.RecordID),
		zap.String("event_type", string(event.Type)))
}
