package voiceService

import (
	"context"
	"errors"
	"mime/multipart"
	"net/http"
	"strings"
	"testing"
	"time"

	"AssistantGolang/internal/api/auth"
	"AssistantGolang/internal/api/meeting"
	"AssistantGolang/internal/api/task"
	"AssistantGolang/internal/api/voice"
	"AssistantGolang/internal/entity"
	"AssistantGolang/pkg/google"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

type fakeDirectory struct {
	users     []entity.User
	listCalls int
}

func (f *fakeDirectory) ResolveByName(_ context.Context, name string) (entity.User, error) {
	lower := strings.ToLower(name)
	for _, u := range f.users {
		if strings.Contains(strings.ToLower(u.Name), lower) {
			return u, nil
		}
	}
	for _, u := range f.users {
		if strings.EqualFold(u.Name, name) {
			return u, nil
		}
	}
	return entity.User{}, auth.ErrUserNotFound
}

func (f *fakeDirectory) ListNames(_ context.Context) ([]string, error) {
	f.listCalls++
	names := make([]string, 0, len(f.users))
	for _, u := range f.users {
		names = append(names, u.Name)
	}
	return names, nil
}

func (f *fakeDirectory) GetByID(_ context.Context, id string) (entity.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return entity.User{}, auth.ErrUserNotFound
}

type statusChange struct {
	id     int64
	status entity.TaskStatus
}

type fakeTasks struct {
	getByID func(userID string, id int64) (entity.Task, error)
	search  func(userID string, q string) ([]entity.Task, error)
	list    func(userID string, f task.ListFilter) ([]entity.Task, error)
	stats   task.Stats

	created []task.CreateTaskRequest
	updated []statusChange
	deleted []int64
}

func (f *fakeTasks) CreateTask(_ context.Context, _ string, req task.CreateTaskRequest) (entity.Task, error) {
	f.created = append(f.created, req)
	return entity.Task{
		ID:         int64(len(f.created)),
		Title:      req.Title,
		AssigneeID: req.AssigneeID,
		Status:     entity.TaskStatusPending,
		Priority:   entity.ParseTaskPriority(req.Priority),
		DueDate:    req.DueDate,
	}, nil
}

func (f *fakeTasks) GetTaskByID(_ context.Context, userID string, id int64) (entity.Task, error) {
	if f.getByID != nil {
		return f.getByID(userID, id)
	}
	return entity.Task{}, task.ErrTaskNotFound
}

func (f *fakeTasks) SearchTasks(_ context.Context, userID string, q string) ([]entity.Task, error) {
	if f.search != nil {
		return f.search(userID, q)
	}
	return nil, nil
}

func (f *fakeTasks) ListTasks(_ context.Context, userID string, filter task.ListFilter) ([]entity.Task, error) {
	if f.list != nil {
		return f.list(userID, filter)
	}
	return nil, nil
}

func (f *fakeTasks) UpdateTask(_ context.Context, _ string, id int64, _ task.UpdateTaskRequest) (entity.Task, error) {
	return entity.Task{ID: id}, nil
}

func (f *fakeTasks) UpdateTaskStatus(_ context.Context, _ string, id int64, status entity.TaskStatus) (entity.Task, error) {
	f.updated = append(f.updated, statusChange{id: id, status: status})
	return entity.Task{ID: id, Title: "Review report", Status: status}, nil
}

func (f *fakeTasks) DeleteTask(_ context.Context, _ string, id int64) (entity.Task, error) {
	f.deleted = append(f.deleted, id)
	return entity.Task{ID: id, Title: "Review report"}, nil
}

func (f *fakeTasks) TaskStats(_ context.Context, _ string) (task.Stats, error) {
	return f.stats, nil
}

func (f *fakeTasks) ListActivities(_ context.Context, _ string, _ int64) ([]entity.TaskActivity, error) {
	return nil, nil
}

type fakeMeetings struct {
	events    []entity.CalendarEvent
	meetings  []entity.Meeting
	scheduled []meeting.ScheduleMeetingRequest
}

func (f *fakeMeetings) ScheduleMeeting(_ context.Context, _ string, req meeting.ScheduleMeetingRequest) (entity.Meeting, error) {
	f.scheduled = append(f.scheduled, req)
	return entity.Meeting{ID: 1, Topic: req.Topic, StartTime: req.StartTime, Source: "local"}, nil
}

func (f *fakeMeetings) ListMeetings(_ context.Context, _ string, _ *time.Time, _ *time.Time) ([]entity.Meeting, error) {
	return f.meetings, nil
}

func (f *fakeMeetings) ListEvents(_ context.Context, _ string, _ *time.Time, _ *time.Time) ([]entity.CalendarEvent, error) {
	return f.events, nil
}

func (f *fakeMeetings) DeleteMeeting(_ context.Context, _ string, _ int64) error {
	return nil
}

type sentMail struct {
	to      string
	subject string
	body    string
}

type fakeMailer struct {
	sent []sentMail
	err  error
}

func (f *fakeMailer) SendMail(to string, subject string, body string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, sentMail{to: to, subject: subject, body: body})
	return nil
}

type fakeGoogle struct {
	gmailSent []sentMail
}

func (f *fakeGoogle) AuthURL(_ string) string { return "https://accounts.google.com/o/oauth2/auth" }

func (f *fakeGoogle) ExchangeCode(_ context.Context, _ string) (string, error) { return "", nil }

func (f *fakeGoogle) ListCalendarEvents(_ context.Context, _ string, _ time.Time, _ *time.Time) ([]google.Event, error) {
	return nil, nil
}

func (f *fakeGoogle) SendGmail(_ context.Context, _ string, to string, subject string, body string) error {
	f.gmailSent = append(f.gmailSent, sentMail{to: to, subject: subject, body: body})
	return nil
}

func (f *fakeGoogle) GetConfig() *oauth2.Config { return nil }

type fakeGemini struct {
	reply string
	err   error
}

func (f *fakeGemini) GenerateReply(_ context.Context, _ string) (string, error) {
	return f.reply, f.err
}

type fakeRedis struct {
	allowed bool
	err     error
	cache   map[string]string
}

func (f *fakeRedis) AllowVoiceCommand(_ context.Context, _ string) (bool, error) {
	return f.allowed, f.err
}

func (f *fakeRedis) SetCache(_ context.Context, key string, value string, _ time.Duration) error {
	if f.cache == nil {
		f.cache = map[string]string{}
	}
	f.cache[key] = value
	return nil
}

func (f *fakeRedis) GetCache(_ context.Context, key string) (string, error) {
	return f.cache[key], nil
}

type fakeTranscriber struct {
	text string
	err  error
}

func (f *fakeTranscriber) TranscribeFile(_ context.Context, _ *multipart.FileHeader) (string, error) {
	return f.text, f.err
}

type fakeS3 struct {
	uploadErr error
	deleted   []string
}

func (f *fakeS3) UploadFile(_ *multipart.FileHeader) (string, error) {
	if f.uploadErr != nil {
		return "", f.uploadErr
	}
	return "https://bucket.s3.amazonaws.com/audio.mp3", nil
}

func (f *fakeS3) PresignUrl(fileName string) (string, error) {
	return fileName + "?signature=abc", nil
}

func (f *fakeS3) DeleteFile(fileName string) error {
	f.deleted = append(f.deleted, fileName)
	return nil
}

type fakeUtils struct {
	audioErr error
}

func (f *fakeUtils) NewULIDFromTimestamp(_ time.Time) (string, error) { return "01TESTULID", nil }

func (f *fakeUtils) ValidateAudioFile(_ *multipart.FileHeader) error { return f.audioErr }

type fixture struct {
	svc         IVoiceService
	directory   *fakeDirectory
	tasks       *fakeTasks
	meetings    *fakeMeetings
	mailer      *fakeMailer
	gmail       *fakeGoogle
	gemini      *fakeGemini
	redis       *fakeRedis
	transcriber *fakeTranscriber
	s3          *fakeS3
}

func newFixture() *fixture {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	f := &fixture{
		directory: &fakeDirectory{users: []entity.User{
			{ID: "u-caleb", Name: "Caleb", Email: "caleb@example.com"},
			{ID: "u-sarah", Name: "Sarah", Email: "sarah@example.com"},
			{ID: "u-me", Name: "Morgan", Email: "morgan@example.com"},
		}},
		tasks:       &fakeTasks{},
		meetings:    &fakeMeetings{},
		mailer:      &fakeMailer{},
		gmail:       &fakeGoogle{},
		gemini:      &fakeGemini{reply: "Hello there!"},
		redis:       &fakeRedis{allowed: true},
		transcriber: &fakeTranscriber{text: "create a task for Caleb"},
		s3:          &fakeS3{},
	}

	f.svc = NewVoiceService(
		logger, f.directory, f.tasks, f.meetings,
		f.gmail, f.mailer, f.gemini, f.redis,
		f.transcriber, f.s3, &fakeUtils{})

	return f
}

var testUser = entity.UserLoginData{ID: "u-me", Username: "Morgan", Email: "morgan@example.com"}

func TestProcessCommandCreateTaskForCaleb(t *testing.T) {
	f := newFixture()

	res, err := f.svc.ProcessCommand(context.Background(), testUser,
		voice.CommandRequest{Text: "Create a task for Caleb to review the report due tomorrow"})

	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, res.Status)
	assert.True(t, res.Recognized)
	assert.False(t, res.Incomplete)

	require.Len(t, f.tasks.created, 1)
	created := f.tasks.created[0]
	assert.Equal(t, "u-caleb", created.AssigneeID)
	assert.Equal(t, "medium", created.Priority)
	require.NotNil(t, created.DueDate)
	assert.Equal(t, time.Now().AddDate(0, 0, 1).Day(), created.DueDate.Day())
	assert.NotEmpty(t, created.Title)
	assert.Equal(t, "Create a task for Caleb to review the report due tomorrow", created.Description)
}

func TestProcessCommandUnknownAssigneeListsIdentities(t *testing.T) {
	f := newFixture()

	res, err := f.svc.ProcessCommand(context.Background(), testUser,
		voice.CommandRequest{Text: "Create a task for Xavier"})

	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, res.Status)
	assert.Contains(t, res.Error, "Xavier")
	assert.Equal(t, []string{"Caleb", "Sarah", "Morgan"}, res.AvailableUsers)
	assert.Empty(t, f.tasks.created)
}

func TestProcessCommandClarificationIsIdempotent(t *testing.T) {
	f := newFixture()
	req := voice.CommandRequest{Text: "Create a task"}

	first, err := f.svc.ProcessCommand(context.Background(), testUser, req)
	require.NoError(t, err)
	second, err := f.svc.ProcessCommand(context.Background(), testUser, req)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, first.Status)
	assert.True(t, first.Recognized)
	assert.True(t, first.Incomplete)
	assert.Equal(t, first.Message, second.Message)
	assert.Empty(t, f.tasks.created)
}

func TestProcessCommandStatusUpdateResolvesExactID(t *testing.T) {
	f := newFixture()
	f.tasks.getByID = func(userID string, id int64) (entity.Task, error) {
		return entity.Task{ID: id, Title: "Review report", AssigneeID: userID}, nil
	}

	res, err := f.svc.ProcessCommand(context.Background(), testUser,
		voice.CommandRequest{Text: "Mark task 42 as completed"})

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, res.Status)
	require.Len(t, f.tasks.updated, 1)
	assert.Equal(t, int64(42), f.tasks.updated[0].id)
	assert.Equal(t, entity.TaskStatusCompleted, f.tasks.updated[0].status)
}

func TestProcessCommandUnauthorizedTaskIsNotMutated(t *testing.T) {
	f := newFixture()
	f.tasks.getByID = func(_ string, _ int64) (entity.Task, error) {
		return entity.Task{}, task.ErrTaskNotOwned
	}

	res, err := f.svc.ProcessCommand(context.Background(), testUser,
		voice.CommandRequest{Text: "Mark task 42 as completed"})

	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, res.Status)
	assert.NotEmpty(t, res.Error)
	assert.Empty(t, f.tasks.updated)
}

func TestProcessCommandUnknownTaskID(t *testing.T) {
	f := newFixture()

	res, err := f.svc.ProcessCommand(context.Background(), testUser,
		voice.CommandRequest{Text: "Mark task 42 as completed"})

	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, res.Status)
	assert.Contains(t, res.Error, "42")
	assert.Empty(t, f.tasks.updated)
}

func TestProcessCommandAmbiguousTitleMatch(t *testing.T) {
	f := newFixture()
	f.tasks.search = func(_ string, _ string) ([]entity.Task, error) {
		return []entity.Task{{ID: 1, Title: "Review report"}, {ID: 2, Title: "Review budget"}}, nil
	}

	res, err := f.svc.ProcessCommand(context.Background(), testUser,
		voice.CommandRequest{Text: "Delete task \"Review\""})

	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, res.Status)
	assert.Contains(t, res.Error, "task number")
	assert.Empty(t, f.tasks.deleted)
}

func TestProcessCommandEmptyTaskQueryIsSuccess(t *testing.T) {
	f := newFixture()
	f.tasks.list = func(_ string, filter task.ListFilter) ([]entity.Task, error) {
		assert.NotNil(t, filter.DueAfter)
		assert.NotNil(t, filter.DueBefore)
		return nil, nil
	}

	res, err := f.svc.ProcessCommand(context.Background(), testUser,
		voice.CommandRequest{Text: "What tasks do I have today"})

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, res.Status)
	assert.Equal(t, "You have no tasks due today.", res.Message)
	require.NotNil(t, res.Tasks)
	assert.Empty(t, res.Tasks)
	assert.Empty(t, res.Error)
}

func TestProcessCommandEventQueryWithNameNeverCreates(t *testing.T) {
	f := newFixture()
	f.meetings.events = []entity.CalendarEvent{{Title: "Standup", Start: time.Now(), Source: "local"}}

	res, err := f.svc.ProcessCommand(context.Background(), testUser,
		voice.CommandRequest{Text: "What events do I have with John"})

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, res.Status)
	assert.Len(t, res.Events, 1)
	assert.Empty(t, f.tasks.created)
}

func TestProcessCommandEmailByAddress(t *testing.T) {
	f := newFixture()

	res, err := f.svc.ProcessCommand(context.Background(), testUser,
		voice.CommandRequest{Text: "Send an email to alice@example.com about the launch"})

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, res.Status)
	require.NotNil(t, res.Email)
	assert.Equal(t, "alice@example.com", res.Email.To)

	// Sender has no Gmail grant, so the shared SMTP account is used.
	require.Len(t, f.mailer.sent, 1)
	assert.Equal(t, "alice@example.com", f.mailer.sent[0].to)
	assert.Empty(t, f.gmail.gmailSent)
}

func TestProcessCommandScheduleMeeting(t *testing.T) {
	f := newFixture()

	res, err := f.svc.ProcessCommand(context.Background(), testUser,
		voice.CommandRequest{Text: "Schedule a meeting with Sarah tomorrow at 3pm"})

	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, res.Status)
	require.Len(t, f.meetings.scheduled, 1)
	scheduled := f.meetings.scheduled[0]
	assert.Equal(t, "Meeting with Sarah", scheduled.Topic)
	assert.Equal(t, 15, scheduled.StartTime.Hour())
	assert.Equal(t, time.Now().AddDate(0, 0, 1).Day(), scheduled.StartTime.Day())
}

func TestProcessCommandCompletionReport(t *testing.T) {
	f := newFixture()
	f.tasks.stats = task.Stats{Total: 10, Pending: 2, InProgress: 1, Completed: 7}

	res, err := f.svc.ProcessCommand(context.Background(), testUser,
		voice.CommandRequest{Text: "What is my task completion rate"})

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, res.Status)
	assert.Contains(t, res.Message, "7 of 10")
	assert.Contains(t, res.Message, "70%")
}

func TestProcessCommandStatusLookupByID(t *testing.T) {
	f := newFixture()
	f.tasks.getByID = func(userID string, id int64) (entity.Task, error) {
		return entity.Task{ID: id, Title: "Review report", AssigneeID: userID, Status: entity.TaskStatusPending}, nil
	}

	res, err := f.svc.ProcessCommand(context.Background(), testUser,
		voice.CommandRequest{Text: "Check task 42"})

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, res.Status)
	assert.Equal(t, `Task "Review report" is currently pending.`, res.Message)
	require.NotNil(t, res.Task)
	assert.Equal(t, int64(42), res.Task.ID)
}

func TestProcessCommandStatusLookupUnauthorized(t *testing.T) {
	f := newFixture()
	f.tasks.getByID = func(_ string, _ int64) (entity.Task, error) {
		return entity.Task{}, task.ErrTaskNotOwned
	}

	res, err := f.svc.ProcessCommand(context.Background(), testUser,
		voice.CommandRequest{Text: "Check task 42"})

	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, res.Status)
	assert.NotEmpty(t, res.Error)
}

func TestProcessCommandStatusLookupByAssignee(t *testing.T) {
	f := newFixture()
	f.tasks.list = func(userID string, _ task.ListFilter) ([]entity.Task, error) {
		assert.Equal(t, "u-caleb", userID)
		return []entity.Task{
			{ID: 1, Title: "Review report", AssigneeID: "u-caleb", Status: entity.TaskStatusPending},
			{ID: 2, Title: "Draft budget", AssigneeID: "u-caleb", Status: entity.TaskStatusInProgress},
		}, nil
	}

	res, err := f.svc.ProcessCommand(context.Background(), testUser,
		voice.CommandRequest{Text: "What is the status for Caleb"})

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, res.Status)
	assert.Equal(t, "Caleb has 2 open tasks.", res.Message)
	assert.Len(t, res.Tasks, 2)
}

func TestProcessCommandStatusLookupAggregate(t *testing.T) {
	f := newFixture()
	f.tasks.stats = task.Stats{Total: 5, Pending: 2, InProgress: 1, Completed: 2}

	res, err := f.svc.ProcessCommand(context.Background(), testUser,
		voice.CommandRequest{Text: "What is the status of the release"})

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, res.Status)
	assert.Equal(t, "You have 2 pending and 1 in-progress tasks.", res.Message)
}

func TestProcessCommandDirectoryNamesServedFromCache(t *testing.T) {
	f := newFixture()
	req := voice.CommandRequest{Text: "Create a task for Xavier"}

	first, err := f.svc.ProcessCommand(context.Background(), testUser, req)
	require.NoError(t, err)
	second, err := f.svc.ProcessCommand(context.Background(), testUser, req)
	require.NoError(t, err)

	assert.Equal(t, 1, f.directory.listCalls)
	assert.Equal(t, first.AvailableUsers, second.AvailableUsers)
	assert.Equal(t, []string{"Caleb", "Sarah", "Morgan"}, second.AvailableUsers)
}

func TestProcessCommandRecognizedUnclear(t *testing.T) {
	f := newFixture()

	res, err := f.svc.ProcessCommand(context.Background(), testUser,
		voice.CommandRequest{Text: "something about my todo stuff"})

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, res.Status)
	assert.True(t, res.Recognized)
	assert.True(t, res.Incomplete)
}

func TestProcessCommandSmallTalk(t *testing.T) {
	f := newFixture()

	res, err := f.svc.ProcessCommand(context.Background(), testUser,
		voice.CommandRequest{Text: "sing me a song"})

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, res.Status)
	assert.Equal(t, "Hello there!", res.Message)
}

func TestProcessCommandSmallTalkFallback(t *testing.T) {
	f := newFixture()
	f.gemini.err = errors.New("model unavailable")

	res, err := f.svc.ProcessCommand(context.Background(), testUser,
		voice.CommandRequest{Text: "sing me a song"})

	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, res.Status)
	assert.NotEmpty(t, res.Error)
	assert.NotEmpty(t, res.Examples)
}

func TestProcessCommandRateLimited(t *testing.T) {
	f := newFixture()
	f.redis.allowed = false

	_, err := f.svc.ProcessCommand(context.Background(), testUser,
		voice.CommandRequest{Text: "What tasks do I have today"})

	assert.ErrorIs(t, err, voice.ErrTooManyCommands)
}

func TestProcessCommandQuotaCheckFailsOpen(t *testing.T) {
	f := newFixture()
	f.redis.err = errors.New("redis down")

	res, err := f.svc.ProcessCommand(context.Background(), testUser,
		voice.CommandRequest{Text: "What tasks do I have today"})

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, res.Status)
}

func TestTranscribe(t *testing.T) {
	f := newFixture()
	file := &multipart.FileHeader{Filename: "note.mp3", Size: 1024}

	res, err := f.svc.Transcribe(context.Background(), testUser.ID, file)

	require.NoError(t, err)
	assert.Equal(t, "create a task for Caleb", res.Text)
	assert.Equal(t, "https://bucket.s3.amazonaws.com/audio.mp3?signature=abc", res.AudioURL)
	assert.Empty(t, f.s3.deleted)
}

func TestTranscribeFailureRemovesArchivedAudio(t *testing.T) {
	f := newFixture()
	f.transcriber.err = errors.New("model overloaded")
	file := &multipart.FileHeader{Filename: "note.mp3", Size: 1024}

	_, err := f.svc.Transcribe(context.Background(), testUser.ID, file)

	assert.ErrorIs(t, err, voice.ErrTranscriptionFailed)
	assert.Equal(t, []string{"https://bucket.s3.amazonaws.com/audio.mp3"}, f.s3.deleted)
}
