package notificationService

import (
	"AssistantGolang/internal/api/notification"
	notificationRepository "AssistantGolang/internal/api/notification/repository"
	"AssistantGolang/internal/entity"
	"AssistantGolang/pkg/smtp"
	"AssistantGolang/pkg/utils"
	websocketPkg "AssistantGolang/pkg/websocket"
	"AssistantGolang/pkg/whatsapp"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

type INotificationService interface {
	Notify(userID string, notificationType entity.NotificationType, title string, message string)
	ListNotifications(ctx context.Context, userID string) ([]notification.NotificationResponse, error)
	MarkRead(ctx context.Context, userID string, id string) error
	MarkAllRead(ctx context.Context, userID string) error
}

// UserReader resolves contact details for the delivery channels.
type UserReader interface {
	GetByID(c context.Context, id string) (entity.User, error)
}

type notificationService struct {
	log                    *logrus.Logger
	notificationRepository notificationRepository.Repository
	users                  UserReader
	hub                    websocketPkg.IHub
	mailer                 smtp.ItfSmtp
	whatsappSender         whatsapp.IWhatsappSender
	utils                  utils.IUtils
}

func NewNotificationService(
	log *logrus.Logger,
	nr notificationRepository.Repository,
	users UserReader,
	hub websocketPkg.IHub,
	mailer smtp.ItfSmtp,
	whatsappSender whatsapp.IWhatsappSender,
	utils utils.IUtils,
) INotificationService {
	return &notificationService{
		log:                    log,
		notificationRepository: nr,
		users:                  users,
		hub:                    hub,
		mailer:                 mailer,
		whatsappSender:         whatsappSender,
		utils:                  utils,
	}
}
