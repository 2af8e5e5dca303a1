package voiceHandler

import (
	voiceService "AssistantGolang/internal/api/voice/service"
	"AssistantGolang/internal/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type VoiceHandler struct {
	log          *logrus.Logger
	voiceService voiceService.IVoiceService
	validator    *validator.Validate
	middleware   middleware.Middleware
}

func New(
	log *logrus.Logger,
	vs voiceService.IVoiceService,
	validate *validator.Validate,
	middleware middleware.Middleware,
) *VoiceHandler {
	return &VoiceHandler{
		log:          log,
		voiceService: vs,
		validator:    validate,
		middleware:   middleware,
	}
}

func (h *VoiceHandler) Start(srv fiber.Router) {
	voice := srv.Group("/voice", h.middleware.NewTokenMiddleware)
	voice.Post("/command", h.HandleCommand)
	voice.Post("/transcribe", h.HandleTranscribe)
}
