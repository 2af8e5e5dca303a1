package notificationHandler

import (
	notificationService "AssistantGolang/internal/api/notification/service"
	"AssistantGolang/internal/middleware"
	jwtPkg "AssistantGolang/pkg/jwt"
	websocketPkg "AssistantGolang/pkg/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type NotificationHandler struct {
	log                 *logrus.Logger
	notificationService notificationService.INotificationService
	hub                 websocketPkg.IHub
	middleware          middleware.Middleware
}

func New(
	log *logrus.Logger,
	ns notificationService.INotificationService,
	hub websocketPkg.IHub,
	middleware middleware.Middleware,
) *NotificationHandler {
	return &NotificationHandler{
		log:                 log,
		notificationService: ns,
		hub:                 hub,
		middleware:          middleware,
	}
}

func (h *NotificationHandler) Start(srv fiber.Router) {
	notifications := srv.Group("/notifications", h.middleware.NewTokenMiddleware)
	notifications.Get("/", h.HandleListNotifications)
	notifications.Patch("/:id/read", h.HandleMarkRead)
	notifications.Patch("/read-all", h.HandleMarkAllRead)

	srv.Use("/ws", websocketPkg.UpgradeRequired)
	srv.Get("/ws", h.middleware.NewTokenMiddleware, setConnUserID, h.hub.Serve())
}

// setConnUserID copies the authenticated user id into locals so the hub can
// read it after the connection is upgraded.
func setConnUserID(c *fiber.Ctx) error {
	userData, err := jwtPkg.GetUserLoginData(c)
	if err != nil {
		return fiber.ErrUnauthorized
	}
	c.Locals("user_id", userData.ID)
	return c.Next()
}
