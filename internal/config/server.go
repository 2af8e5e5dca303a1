package config

import (
	"AssistantGolang/database/postgres"
	authHandler "AssistantGolang/internal/api/auth/handler"
	authRepository "AssistantGolang/internal/api/auth/repository"
	authService "AssistantGolang/internal/api/auth/service"
	meetingHandler "AssistantGolang/internal/api/meeting/handler"
	meetingRepository "AssistantGolang/internal/api/meeting/repository"
	meetingService "AssistantGolang/internal/api/meeting/service"
	notificationHandler "AssistantGolang/internal/api/notification/handler"
	notificationRepository "AssistantGolang/internal/api/notification/repository"
	notificationService "AssistantGolang/internal/api/notification/service"
	taskHandler "AssistantGolang/internal/api/task/handler"
	taskRepository "AssistantGolang/internal/api/task/repository"
	taskService "AssistantGolang/internal/api/task/service"
	voiceHandler "AssistantGolang/internal/api/voice/handler"
	voiceService "AssistantGolang/internal/api/voice/service"
	"AssistantGolang/internal/middleware"
	"AssistantGolang/pkg/audio"
	"AssistantGolang/pkg/bcrypt"
	"AssistantGolang/pkg/gemini"
	"AssistantGolang/pkg/google"
	"AssistantGolang/pkg/redis"
	"AssistantGolang/pkg/s3"
	"AssistantGolang/pkg/smtp"
	"AssistantGolang/pkg/utils"
	websocketPkg "AssistantGolang/pkg/websocket"
	"AssistantGolang/pkg/whatsapp"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

type ServerOption func(*Server) error

type Server struct {
	engine         *fiber.App
	db             *sqlx.DB
	log            *logrus.Logger
	middleware     middleware.Middleware
	validator      *validator.Validate
	utils          utils.IUtils
	bcryptUtils    bcrypt.IBcrypt
	handlers       []handler
	googleProvider google.ItfGoogle
	redisServer    redis.IRedis
	smtpMailer     smtp.ItfSmtp
	hub            websocketPkg.IHub
	whatsappClient whatsapp.IWhatsappSender
	geminiClient   gemini.IGemini
	s3Client       s3.ItfS3
	transcriber    audio.ITranscriber
}

type handler interface {
	Start(srv fiber.Router)
}

func NewServer(options ...ServerOption) (*Server, error) {
	server := &Server{}

	for _, option := range options {
		if err := option(server); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	if server.engine == nil {
		return nil, fmt.Errorf("fiber app is required")
	}
	if server.log == nil {
		return nil, fmt.Errorf("logger is required")
	}

	return server, nil
}

func WithFiber(fiberApp *fiber.App) ServerOption {
	return func(s *Server) error {
		s.engine = fiberApp
		return nil
	}
}

func WithLogger(logger *logrus.Logger) ServerOption {
	return func(s *Server) error {
		s.log = logger
		return nil
	}
}

func WithValidator(validator *validator.Validate) ServerOption {
	return func(s *Server) error {
		s.validator = validator
		return nil
	}
}

func WithDatabase() ServerOption {
	return func(s *Server) error {
		db, err := postgres.New()
		if err != nil {
			if s.log != nil {
				s.log.Errorf("Failed to connect to database: %v", err)
			}
			return fmt.Errorf("failed to create database connection: %w", err)
		}
		s.db = db
		return nil
	}
}

func WithGoogleProvider(provider google.ItfGoogle) ServerOption {
	return func(s *Server) error {
		s.googleProvider = provider
		return nil
	}
}

func WithRedisServer(redisServer redis.IRedis) ServerOption {
	return func(s *Server) error {
		s.redisServer = redisServer
		return nil
	}
}

func WithSMTPMailer(smtpMailer smtp.ItfSmtp) ServerOption {
	return func(s *Server) error {
		s.smtpMailer = smtpMailer
		return nil
	}
}

func WithNotificationHub() ServerOption {
	return func(s *Server) error {
		if s.log == nil {
			return fmt.Errorf("logger must be initialized before the notification hub")
		}
		s.hub = websocketPkg.NewHub(s.log)
		return nil
	}
}

func WithMiddleware() ServerOption {
	return func(s *Server) error {
		if s.log == nil {
			return fmt.Errorf("logger must be initialized before middleware")
		}
		s.middleware = middleware.New(s.log)
		return nil
	}
}

func WithS3Client() ServerOption {
	return func(s *Server) error {
		client, err := s3.New()
		if err != nil {
			if s.log != nil {
				s.log.Errorf("Failed to initialize S3 client: %v", err)
			}
			return fmt.Errorf("failed to create S3 client: %w", err)
		}
		s.s3Client = client
		return nil
	}
}

func WithWhatsappClient() ServerOption {
	return func(s *Server) error {
		client, err := whatsapp.New()
		if err != nil {
			if s.log != nil {
				s.log.Errorf("Failed to initialize WhatsApp client: %v", err)
			}
			return fmt.Errorf("failed to create WhatsApp client: %w", err)
		}
		s.whatsappClient = client
		return nil
	}
}

func WithGeminiClient() ServerOption {
	return func(s *Server) error {
		client, err := gemini.NewGeminiClient()
		if err != nil {
			if s.log != nil {
				s.log.Errorf("Failed to create Gemini client: %v", err)
			}
			return fmt.Errorf("failed to create Gemini client: %w", err)
		}
		s.geminiClient = client
		return nil
	}
}

func WithTranscriber() ServerOption {
	return func(s *Server) error {
		s.transcriber = audio.NewTranscriptionService()
		return nil
	}
}

func WithUtils() ServerOption {
	return func(s *Server) error {
		s.utils = utils.New()
		return nil
	}
}

func WithBcryptUtils() ServerOption {
	return func(s *Server) error {
		s.bcryptUtils = bcrypt.New()
		return nil
	}
}

func (s *Server) RegisterHandler() {
	// Auth and the identity directory
	authRepo := authRepository.New(s.db, s.log)
	authServices := authService.New(s.log, authRepo, s.googleProvider, s.bcryptUtils, s.utils)
	authHandlers := authHandler.New(s.log, authServices, s.validator, s.middleware)

	// Notifications fan out from task and meeting mutations
	notificationRepo := notificationRepository.New(s.db, s.log)
	notificationServices := notificationService.NewNotificationService(
		s.log, notificationRepo, authServices.Directory(), s.hub, s.smtpMailer, s.whatsappClient, s.utils)
	notificationHandlers := notificationHandler.New(s.log, notificationServices, s.hub, s.middleware)

	// Tasks
	taskRepo := taskRepository.New(s.db, s.log)
	taskServices := taskService.NewTaskService(s.log, taskRepo, notificationServices, s.utils)
	taskHandlers := taskHandler.New(s.log, taskServices, s.validator, s.middleware)

	// Meetings and the merged calendar view
	meetingRepo := meetingRepository.New(s.db, s.log)
	meetingServices := meetingService.NewMeetingService(
		s.log, meetingRepo, s.googleProvider, authServices.Directory(), notificationServices)
	meetingHandlers := meetingHandler.New(s.log, meetingServices, s.validator, s.middleware)

	// Voice command engine on top of everything above
	voiceServices := voiceService.NewVoiceService(
		s.log, authServices.Directory(), taskServices, meetingServices,
		s.googleProvider, s.smtpMailer, s.geminiClient, s.redisServer,
		s.transcriber, s.s3Client, s.utils)
	voiceHandlers := voiceHandler.New(s.log, voiceServices, s.validator, s.middleware)

	s.setupHealthCheck()
	s.handlers = append(s.handlers, authHandlers, notificationHandlers, taskHandlers, meetingHandlers, voiceHandlers)
}

func (s *Server) Run() error {
	router := s.engine.Group("/api/v1")
	s.engine.Use(s.middleware.NewRequestIDMiddleware())

	for _, h := range s.handlers {
		h.Start(router)
	}

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "3000"
	}

	if err := s.engine.Listen(fmt.Sprintf(":%s", port)); err != nil {
		s.Shutdown()
		return err
	}

	return nil
}

func (s *Server) Shutdown() {
	if s.hub != nil {
		s.hub.CloseAll()
	}
	if s.whatsappClient != nil {
		s.whatsappClient.Disconnect()
	}
	if s.db != nil {
		s.db.Close()
	}
}

func (s *Server) setupHealthCheck() {
	s.engine.Get("/", func(ctx *fiber.Ctx) error {
		return ctx.JSON(fiber.Map{
			"message": "Server is Healthy!",
		})
	})
}
