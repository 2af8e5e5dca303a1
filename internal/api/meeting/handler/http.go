package meetingHandler

import (
	meetingService "AssistantGolang/internal/api/meeting/service"
	"AssistantGolang/internal/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type MeetingHandler struct {
	log            *logrus.Logger
	meetingService meetingService.IMeetingService
	validator      *validator.Validate
	middleware     middleware.Middleware
}

func New(
	log *logrus.Logger,
	ms meetingService.IMeetingService,
	validate *validator.Validate,
	middleware middleware.Middleware,
) *MeetingHandler {
	return &MeetingHandler{
		log:            log,
		meetingService: ms,
		validator:      validate,
		middleware:     middleware,
	}
}

func (h *MeetingHandler) Start(srv fiber.Router) {
	meetings := srv.Group("/meetings", h.middleware.NewTokenMiddleware)
	meetings.Post("/", h.HandleScheduleMeeting)
	meetings.Get("/", h.HandleListMeetings)
	meetings.Get("/events", h.HandleListEvents)
	meetings.Delete("/:id", h.HandleDeleteMeeting)
}
