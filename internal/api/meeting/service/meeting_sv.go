package meetingService

import (
	"AssistantGolang/internal/api/meeting"
	"AssistantGolang/internal/entity"
	contextPkg "AssistantGolang/pkg/context"
	"fmt"
	"sort"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

const defaultMeetingDuration = 30

func (s *meetingService) ScheduleMeeting(ctx context.Context, userID string, req meeting.ScheduleMeetingRequest) (entity.Meeting, error) {
	requestID := contextPkg.GetRequestID(ctx)

	if req.StartTime.Before(time.Now()) {
		return entity.Meeting{}, meeting.ErrMeetingInPast
	}

	duration := req.Duration
	if duration == 0 {
		duration = defaultMeetingDuration
	}

	repo, err := s.meetingRepository.NewClient(true)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return entity.Meeting{}, err
	}
	defer repo.Rollback()

	newMeeting := entity.Meeting{
		UserID:    userID,
		TaskID:    req.TaskID,
		Topic:     req.Topic,
		StartTime: req.StartTime,
		Duration:  duration,
		Source:    "local",
	}

	id, err := repo.Meetings.CreateMeeting(ctx, newMeeting)
	if err != nil {
		return entity.Meeting{}, err
	}
	newMeeting.ID = id

	if err := repo.Commit(); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to commit meeting creation")
		return entity.Meeting{}, err
	}

	s.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"meeting_id": id,
		"start_time": req.StartTime,
	}).Info("Meeting scheduled")

	s.notifier.Notify(userID, entity.NotificationMeetingScheduled,
		"Meeting scheduled",
		fmt.Sprintf("%q at %s", req.Topic, req.StartTime.Format("Mon Jan 2 15:04")))

	return newMeeting, nil
}

func (s *meetingService) ListMeetings(ctx context.Context, userID string, start *time.Time, end *time.Time) ([]entity.Meeting, error) {
	repo, err := s.meetingRepository.NewClient(false)
	if err != nil {
		return nil, err
	}

	return repo.Meetings.ListByUser(ctx, userID, start, end)
}

// ListEvents merges locally scheduled meetings with the user's Google
// Calendar entries. A user without a connected calendar gets local
// meetings only.
func (s *meetingService) ListEvents(ctx context.Context, userID string, start *time.Time, end *time.Time) ([]entity.CalendarEvent, error) {
	requestID := contextPkg.GetRequestID(ctx)

	meetings, err := s.ListMeetings(ctx, userID, start, end)
	if err != nil {
		return nil, err
	}

	events := make([]entity.CalendarEvent, 0, len(meetings))
	for _, m := range meetings {
		events = append(events, entity.CalendarEvent{
			Title:  m.Topic,
			Start:  m.StartTime,
			Source: m.Source,
		})
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if user.GoogleCalendarToken != "" {
		from := time.Now()
		if start != nil {
			from = *start
		}
		googleEvents, err := s.googleProvider.ListCalendarEvents(ctx, user.GoogleCalendarToken, from, end)
		if err != nil {
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"error":      err.Error(),
			}).Warn("Google Calendar lookup failed, returning local meetings only")
		} else {
			for _, e := range googleEvents {
				events = append(events, entity.CalendarEvent{
					Title:  e.Title,
					Start:  e.Start,
					Source: "google",
				})
			}
		}
	}

	sort.Slice(events, func(i, j int) bool {
		return events[i].Start.Before(events[j].Start)
	})

	return events, nil
}

func (s *meetingService) DeleteMeeting(ctx context.Context, userID string, id int64) error {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.meetingRepository.NewClient(true)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return err
	}
	defer repo.Rollback()

	existing, err := repo.Meetings.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing.UserID != userID {
		return meeting.ErrMeetingNotFound
	}

	if err := repo.Meetings.DeleteMeeting(ctx, id); err != nil {
		return err
	}

	return repo.Commit()
}
