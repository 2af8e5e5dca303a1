package meetingService

import (
	"time"

	"AssistantGolang/internal/api/meeting"
	meetingRepository "AssistantGolang/internal/api/meeting/repository"
	"AssistantGolang/internal/entity"
	"AssistantGolang/pkg/google"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

type IMeetingService interface {
	ScheduleMeeting(ctx context.Context, userID string, req meeting.ScheduleMeetingRequest) (entity.Meeting, error)
	ListMeetings(ctx context.Context, userID string, start *time.Time, end *time.Time) ([]entity.Meeting, error)
	ListEvents(ctx context.Context, userID string, start *time.Time, end *time.Time) ([]entity.CalendarEvent, error)
	DeleteMeeting(ctx context.Context, userID string, id int64) error
}

// UserReader looks up the account a calendar token is stored on. The auth
// directory satisfies this.
type UserReader interface {
	GetByID(c context.Context, id string) (entity.User, error)
}

// Notifier delivers meeting notifications without blocking the caller.
type Notifier interface {
	Notify(userID string, notificationType entity.NotificationType, title string, message string)
}

type meetingService struct {
	log               *logrus.Logger
	meetingRepository meetingRepository.Repository
	googleProvider    google.ItfGoogle
	users             UserReader
	notifier          Notifier
}

func NewMeetingService(
	log *logrus.Logger,
	mr meetingRepository.Repository,
	googleProvider google.ItfGoogle,
	users UserReader,
	notifier Notifier,
) IMeetingService {
	return &meetingService{
		log:               log,
		meetingRepository: mr,
		googleProvider:    googleProvider,
		users:             users,
		notifier:          notifier,
	}
}
