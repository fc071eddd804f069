package services

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"arrurru-functions/internal/metrics"
	"arrurru-functions/internal/models"
)

// notificationService implements the NotificationService interface
type notificationService struct {
	sender    MessageSender
	chatID    string
	validator *validator.Validate
}

// NewNotificationService creates a notification service. A nil sender or an
// empty chatID is allowed; requests then fail with ErrNotConfigured.
func NewNotificationService(sender MessageSender, chatID string) NotificationService {
	return &notificationService{
		sender:    sender,
		chatID:    chatID,
		validator: validator.New(),
	}
}

// SubmitApplication posts the access request to the configured chat
func (s *notificationService) SubmitApplication(ctx context.Context, req *models.ApplicationRequest) error {
	if req == nil {
		req = &models.ApplicationRequest{}
	}

	if err := s.validator.Struct(req); err != nil {
		metrics.NotificationsTotal.WithLabelValues(metrics.ResultInvalid).Inc()
		return fmt.Errorf("%w: %v", ErrMissingFields, err)
	}

	if s.sender == nil || s.chatID == "" {
		metrics.NotificationsTotal.WithLabelValues(metrics.ResultNotConfigured).Inc()
		return ErrNotConfigured
	}

	start := time.Now()
	err := s.sender.SendMessage(ctx, s.chatID, req.NotificationText())
	metrics.ExternalCallDuration.WithLabelValues("telegram").Observe(time.Since(start).Seconds())

	if err != nil {
		metrics.NotificationsTotal.WithLabelValues(metrics.ResultFailed).Inc()
		logrus.WithError(err).Warn("Failed to deliver access request notification")
		return &DeliveryError{Target: "telegram", Err: err}
	}

	metrics.NotificationsTotal.WithLabelValues(metrics.ResultSuccess).Inc()
	logrus.WithField("restaurant", req.Restaurant).Info("Access request notification sent")
	return nil
}
