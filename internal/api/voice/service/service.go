package voiceService

import (
	"mime/multipart"

	authService "AssistantGolang/internal/api/auth/service"
	meetingService "AssistantGolang/internal/api/meeting/service"
	taskService "AssistantGolang/internal/api/task/service"
	"AssistantGolang/internal/api/voice"
	"AssistantGolang/internal/entity"
	"AssistantGolang/pkg/audio"
	"AssistantGolang/pkg/gemini"
	"AssistantGolang/pkg/google"
	"AssistantGolang/pkg/redis"
	"AssistantGolang/pkg/s3"
	"AssistantGolang/pkg/smtp"
	"AssistantGolang/pkg/utils"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

type IVoiceService interface {
	ProcessCommand(ctx context.Context, user entity.UserLoginData, req voice.CommandRequest) (*voice.CommandResponse, error)
	Transcribe(ctx context.Context, userID string, file *multipart.FileHeader) (*voice.TranscribeResponse, error)
}

type voiceService struct {
	log            *logrus.Logger
	directory      authService.DirectoryDomain
	tasks          taskService.ITaskService
	meetings       meetingService.IMeetingService
	googleProvider google.ItfGoogle
	mailer         smtp.ItfSmtp
	gemini         gemini.IGemini
	redis          redis.IRedis
	transcriber    audio.ITranscriber
	s3             s3.ItfS3
	utils          utils.IUtils
}

func NewVoiceService(
	log *logrus.Logger,
	directory authService.DirectoryDomain,
	tasks taskService.ITaskService,
	meetings meetingService.IMeetingService,
	googleProvider google.ItfGoogle,
	mailer smtp.ItfSmtp,
	geminiClient gemini.IGemini,
	redisClient redis.IRedis,
	transcriber audio.ITranscriber,
	s3Client s3.ItfS3,
	utils utils.IUtils,
) IVoiceService {
	return &voiceService{
		log:            log,
		directory:      directory,
		tasks:          tasks,
		meetings:       meetings,
		googleProvider: googleProvider,
		mailer:         mailer,
		gemini:         geminiClient,
		redis:          redisClient,
		transcriber:    transcriber,
		s3:             s3Client,
		utils:          utils,
	}
}
