package notificationService

import (
	"AssistantGolang/internal/api/notification"
	"AssistantGolang/internal/entity"
	contextPkg "AssistantGolang/pkg/context"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

// Notify fans a notification out to every channel the user has available.
// Delivery runs in the background so callers never block on it; a failed
// channel is logged and skipped.
func (s *notificationService) Notify(userID string, notificationType entity.NotificationType, title string, message string) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		id, err := s.utils.NewULIDFromTimestamp(time.Now())
		if err != nil {
			s.log.WithFields(logrus.Fields{
				"user_id": userID,
				"error":   err.Error(),
			}).Error("Failed to generate notification id")
			return
		}

		repo, err := s.notificationRepository.NewClient(false)
		if err != nil {
			s.log.WithFields(logrus.Fields{
				"user_id": userID,
				"error":   err.Error(),
			}).Error("Failed to create repository client for notification")
			return
		}

		n := entity.Notification{
			ID:      id,
			UserID:  userID,
			Type:    notificationType,
			Title:   title,
			Message: message,
		}

		if err := repo.Notifications.CreateNotification(ctx, n); err != nil {
			s.log.WithFields(logrus.Fields{
				"user_id": userID,
				"error":   err.Error(),
			}).Error("Failed to persist notification")
			return
		}

		s.hub.Push(userID, notification.MakeNotificationResponse(n))

		user, err := s.users.GetByID(ctx, userID)
		if err != nil {
			s.log.WithFields(logrus.Fields{
				"user_id": userID,
				"error":   err.Error(),
			}).Warn("Cannot resolve user for notification delivery")
			return
		}

		if user.Email != "" {
			if err := s.mailer.SendMail(user.Email, title, message); err != nil {
				s.log.WithFields(logrus.Fields{
					"user_id": userID,
					"error":   err.Error(),
				}).Warn("Email notification delivery failed")
			}
		}

		if user.PhoneNumber != "" && s.whatsappSender != nil && s.whatsappSender.IsConnected() {
			if err := s.whatsappSender.SendMessage(ctx, user.PhoneNumber, title+": "+message); err != nil {
				s.log.WithFields(logrus.Fields{
					"user_id": userID,
					"error":   err.Error(),
				}).Warn("WhatsApp notification delivery failed")
			}
		}
	}()
}

func (s *notificationService) ListNotifications(ctx context.Context, userID string) ([]notification.NotificationResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.notificationRepository.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return nil, err
	}

	notifications, err := repo.Notifications.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	res := make([]notification.NotificationResponse, 0, len(notifications))
	for _, n := range notifications {
		res = append(res, notification.MakeNotificationResponse(n))
	}

	return res, nil
}

func (s *notificationService) MarkRead(ctx context.Context, userID string, id string) error {
	repo, err := s.notificationRepository.NewClient(false)
	if err != nil {
		return err
	}

	return repo.Notifications.MarkRead(ctx, userID, id)
}

func (s *notificationService) MarkAllRead(ctx context.Context, userID string) error {
	repo, err := s.notificationRepository.NewClient(false)
	if err != nil {
		return err
	}

	return repo.Notifications.MarkAllRead(ctx, userID)
}
