// FILE: internal/service/notification_service.go
package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"fitbook-be/internal/pkg/logger"
	"fitbook-be/internal/pkg/mailer"
	"fitbook-be/internal/repository/specification"
	"fitbook-be/internal/repository/unitofwork"
	"fitbook-be/pkg/events"
	pktNats "fitbook-be/pkg/nats" // Renamed to avoid collision

	"github.com/google/uuid"
)

// NotificationService turns bus events into member emails. It consumes the
// durable event stream so a bounced SMTP call is retried instead of lost.
type NotificationService struct {
	uowFactory unitofwork.RepositoryFactory
	subscriber *pktNats.Subscriber
	mailer     mailer.IEmailService
	logger     logger.ILogger
}

func NewNotificationService(uowFactory unitofwork.RepositoryFactory, sub *pktNats.Subscriber, mail mailer.IEmailService, log logger.ILogger) *NotificationService {
	return &NotificationService{
		uowFactory: uowFactory,
		subscriber: sub,
		mailer:     mail,
		logger:     log,
	}
}

// Start begins listening to the event bus.
func (s *NotificationService) Start() {
	if s.subscriber == nil {
		s.logger.Warn("NotificationService", "No event bus connection, notifications disabled", nil)
		return
	}
	err := s.subscriber.Subscribe("events.>", "notif-service-worker", s.handleEvent)
	if err != nil {
		s.logger.Error("NotificationService", "Failed to start notification subscriber", map[string]interface{}{"error": err})
		return
	}
	s.logger.Info("NotificationService", "Notification service started, listening to events.>", nil)
}

func (s *NotificationService) handleEvent(ctx context.Context, event events.Event) error {
	// NATS subjects carry the stream prefix.
	typeCode := strings.TrimPrefix(event.EventType(), "events.")
	payload := event.Payload()

	email, err := s.resolveEmail(ctx, payload)
	if err != nil {
		s.logger.Warn("NotificationService", "Failed to resolve recipient", map[string]interface{}{"error": err.Error(), "type": typeCode})
		return err
	}
	if email == "" {
		// Event without a member recipient, nothing to send.
		return nil
	}

	switch typeCode {
	case events.TypeBookingCreated:
		className, _ := payload["class"].(string)
		start := parseEventTime(payload["start_time"])
		if err := s.mailer.SendBookingConfirmation(email, className, start); err != nil {
			return err
		}

	case events.TypeBookingCancelled:
		className, _ := payload["class"].(string)
		refund := parseEventAmount(payload["refund"])
		if err := s.mailer.SendBookingCancelled(email, className, refund); err != nil {
			return err
		}

	case events.TypeCreditsGranted:
		amount := parseEventAmount(payload["amount"])
		if err := s.mailer.SendCreditsReceived(email, amount); err != nil {
			return err
		}

	default:
		s.logger.Debug("NotificationService", fmt.Sprintf("No mail template for event %s", typeCode), nil)
	}

	return nil
}

func (s *NotificationService) resolveEmail(ctx context.Context, payload map[string]interface{}) (string, error) {
	raw, ok := payload["user_id"]
	if !ok {
		return "", nil
	}
	idStr, ok := raw.(string)
	if !ok {
		return "", nil
	}
	userId, err := uuid.Parse(idStr)
	if err != nil {
		return "", nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", nil
	}
	return user.Email, nil
}

// Payloads arrive as decoded JSON, so numbers are float64 and times are
// RFC3339 strings.
func parseEventAmount(v interface{}) int64 {
	if f, ok := v.(float64); ok {
		return int64(f)
	}
	return 0
}

func parseEventTime(v interface{}) time.Time {
	if s, ok := v.(string); ok {
		if t, err := time.Parse(time.RFC3339, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
