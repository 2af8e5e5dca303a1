package meetingService

import (
	"context"
	"errors"
	"testing"
	"time"

	"AssistantGolang/internal/api/meeting"
	meetingRepository "AssistantGolang/internal/api/meeting/repository"
	"AssistantGolang/internal/entity"
	"AssistantGolang/pkg/google"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

type meetingStore struct {
	meetings map[int64]entity.Meeting
	nextID   int64
	commits  int
}

func newMeetingStore(seed ...entity.Meeting) *meetingStore {
	s := &meetingStore{meetings: map[int64]entity.Meeting{}, nextID: 1}
	for _, m := range seed {
		s.meetings[m.ID] = m
		if m.ID >= s.nextID {
			s.nextID = m.ID + 1
		}
	}
	return s
}

type storeMeetings struct{ store *meetingStore }

func (r *storeMeetings) CreateMeeting(_ context.Context, m entity.Meeting) (int64, error) {
	m.ID = r.store.nextID
	r.store.nextID++
	r.store.meetings[m.ID] = m
	return m.ID, nil
}

func (r *storeMeetings) GetByID(_ context.Context, id int64) (entity.Meeting, error) {
	m, ok := r.store.meetings[id]
	if !ok {
		return entity.Meeting{}, meeting.ErrMeetingNotFound
	}
	return m, nil
}

func (r *storeMeetings) ListByUser(_ context.Context, userID string, _ *time.Time, _ *time.Time) ([]entity.Meeting, error) {
	var out []entity.Meeting
	for _, m := range r.store.meetings {
		if m.UserID == userID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *storeMeetings) DeleteMeeting(_ context.Context, id int64) error {
	delete(r.store.meetings, id)
	return nil
}

type storeRepository struct{ store *meetingStore }

func (r *storeRepository) NewClient(_ bool) (meetingRepository.Client, error) {
	return meetingRepository.Client{
		Meetings: &storeMeetings{store: r.store},
		Commit: func() error {
			r.store.commits++
			return nil
		},
		Rollback: func() error { return nil },
	}, nil
}

type fakeUsers struct {
	user entity.User
}

func (f *fakeUsers) GetByID(_ context.Context, _ string) (entity.User, error) {
	return f.user, nil
}

type fakeCalendar struct {
	events []google.Event
	err    error
	calls  int
}

func (f *fakeCalendar) AuthURL(_ string) string { return "" }

func (f *fakeCalendar) ExchangeCode(_ context.Context, _ string) (string, error) { return "", nil }

func (f *fakeCalendar) ListCalendarEvents(_ context.Context, _ string, _ time.Time, _ *time.Time) ([]google.Event, error) {
	f.calls++
	return f.events, f.err
}

func (f *fakeCalendar) SendGmail(_ context.Context, _ string, _ string, _ string, _ string) error {
	return nil
}

func (f *fakeCalendar) GetConfig() *oauth2.Config { return nil }

type recordedNotification struct {
	userID string
	kind   entity.NotificationType
}

type recordingNotifier struct {
	sent []recordedNotification
}

func (n *recordingNotifier) Notify(userID string, kind entity.NotificationType, _ string, _ string) {
	n.sent = append(n.sent, recordedNotification{userID: userID, kind: kind})
}

func newService(store *meetingStore, cal *fakeCalendar, users *fakeUsers, notifier *recordingNotifier) IMeetingService {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return NewMeetingService(logger, &storeRepository{store: store}, cal, users, notifier)
}

func TestScheduleMeeting(t *testing.T) {
	store := newMeetingStore()
	notifier := &recordingNotifier{}
	svc := newService(store, &fakeCalendar{}, &fakeUsers{}, notifier)

	start := time.Now().Add(24 * time.Hour)
	created, err := svc.ScheduleMeeting(context.Background(), "u-me", meeting.ScheduleMeetingRequest{
		Topic:     "Sprint review",
		StartTime: start,
	})

	require.NoError(t, err)
	assert.Equal(t, "local", created.Source)
	assert.Equal(t, defaultMeetingDuration, created.Duration)
	assert.Equal(t, 1, store.commits)

	require.Len(t, notifier.sent, 1)
	assert.Equal(t, "u-me", notifier.sent[0].userID)
	assert.Equal(t, entity.NotificationMeetingScheduled, notifier.sent[0].kind)
}

func TestScheduleMeetingRejectsPastStart(t *testing.T) {
	store := newMeetingStore()
	svc := newService(store, &fakeCalendar{}, &fakeUsers{}, &recordingNotifier{})

	_, err := svc.ScheduleMeeting(context.Background(), "u-me", meeting.ScheduleMeetingRequest{
		Topic:     "Retro",
		StartTime: time.Now().Add(-time.Hour),
	})

	assert.ErrorIs(t, err, meeting.ErrMeetingInPast)
	assert.Empty(t, store.meetings)
}

func TestScheduleMeetingKeepsExplicitDuration(t *testing.T) {
	svc := newService(newMeetingStore(), &fakeCalendar{}, &fakeUsers{}, &recordingNotifier{})

	created, err := svc.ScheduleMeeting(context.Background(), "u-me", meeting.ScheduleMeetingRequest{
		Topic:     "Planning",
		StartTime: time.Now().Add(time.Hour),
		Duration:  90,
	})

	require.NoError(t, err)
	assert.Equal(t, 90, created.Duration)
}

func TestListEventsMergesAndSortsSources(t *testing.T) {
	now := time.Now()
	store := newMeetingStore(
		entity.Meeting{ID: 1, UserID: "u-me", Topic: "Standup", StartTime: now.Add(3 * time.Hour), Source: "local"},
	)
	cal := &fakeCalendar{events: []google.Event{
		{Title: "1:1", Start: now.Add(time.Hour)},
		{Title: "All hands", Start: now.Add(5 * time.Hour)},
	}}
	users := &fakeUsers{user: entity.User{ID: "u-me", GoogleCalendarToken: `{"access_token":"tok"}`}}
	svc := newService(store, cal, users, &recordingNotifier{})

	events, err := svc.ListEvents(context.Background(), "u-me", nil, nil)

	require.NoError(t, err)
	require.Len(t, events, 3)
	assert.Equal(t, "1:1", events[0].Title)
	assert.Equal(t, "google", events[0].Source)
	assert.Equal(t, "Standup", events[1].Title)
	assert.Equal(t, "local", events[1].Source)
	assert.Equal(t, "All hands", events[2].Title)
}

func TestListEventsWithoutCalendarSkipsGoogle(t *testing.T) {
	store := newMeetingStore(
		entity.Meeting{ID: 1, UserID: "u-me", Topic: "Standup", StartTime: time.Now(), Source: "local"},
	)
	cal := &fakeCalendar{}
	svc := newService(store, cal, &fakeUsers{user: entity.User{ID: "u-me"}}, &recordingNotifier{})

	events, err := svc.ListEvents(context.Background(), "u-me", nil, nil)

	require.NoError(t, err)
	assert.Len(t, events, 1)
	assert.Zero(t, cal.calls)
}

func TestListEventsCalendarFailureFallsBackToLocal(t *testing.T) {
	store := newMeetingStore(
		entity.Meeting{ID: 1, UserID: "u-me", Topic: "Standup", StartTime: time.Now(), Source: "local"},
	)
	cal := &fakeCalendar{err: errors.New("calendar unreachable")}
	users := &fakeUsers{user: entity.User{ID: "u-me", GoogleCalendarToken: `{"access_token":"tok"}`}}
	svc := newService(store, cal, users, &recordingNotifier{})

	events, err := svc.ListEvents(context.Background(), "u-me", nil, nil)

	require.NoError(t, err)
	assert.Len(t, events, 1)
	assert.Equal(t, "local", events[0].Source)
}

func TestDeleteMeetingRequiresOwnership(t *testing.T) {
	store := newMeetingStore(entity.Meeting{ID: 4, UserID: "u-owner", Topic: "Standup"})
	svc := newService(store, &fakeCalendar{}, &fakeUsers{}, &recordingNotifier{})

	err := svc.DeleteMeeting(context.Background(), "u-stranger", 4)
	assert.ErrorIs(t, err, meeting.ErrMeetingNotFound)
	assert.Contains(t, store.meetings, int64(4))

	err = svc.DeleteMeeting(context.Background(), "u-owner", 4)
	require.NoError(t, err)
	assert.NotContains(t, store.meetings, int64(4))
}
