package taskService

import (
	"context"
	"mime/multipart"
	"testing"
	"time"

	"AssistantGolang/internal/api/task"
	taskRepository "AssistantGolang/internal/api/task/repository"
	"AssistantGolang/internal/entity"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// taskStore is an in-memory stand-in for the postgres repository. Writes
// apply immediately; commit and rollback are counted so tests can assert
// the transaction was closed.
type taskStore struct {
	tasks      map[int64]entity.Task
	activities []entity.TaskActivity
	nextID     int64
	commits    int
}

func newTaskStore(seed ...entity.Task) *taskStore {
	s := &taskStore{tasks: map[int64]entity.Task{}, nextID: 1}
	for _, t := range seed {
		s.tasks[t.ID] = t
		if t.ID >= s.nextID {
			s.nextID = t.ID + 1
		}
	}
	return s
}

type storeTasks struct{ store *taskStore }

func (r *storeTasks) CreateTask(_ context.Context, t entity.Task) (int64, error) {
	t.ID = r.store.nextID
	r.store.nextID++
	r.store.tasks[t.ID] = t
	return t.ID, nil
}

func (r *storeTasks) GetByID(_ context.Context, id int64) (entity.Task, error) {
	t, ok := r.store.tasks[id]
	if !ok {
		return entity.Task{}, task.ErrTaskNotFound
	}
	return t, nil
}

func (r *storeTasks) SearchByTitle(_ context.Context, userID string, title string) ([]entity.Task, error) {
	var out []entity.Task
	for _, t := range r.store.tasks {
		if t.AssigneeID == userID || t.CreatedByID == userID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *storeTasks) ListByUser(_ context.Context, userID string, _ task.ListFilter) ([]entity.Task, error) {
	var out []entity.Task
	for _, t := range r.store.tasks {
		if t.AssigneeID == userID || t.CreatedByID == userID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *storeTasks) UpdateTask(_ context.Context, t entity.Task) error {
	if _, ok := r.store.tasks[t.ID]; !ok {
		return task.ErrTaskNotFound
	}
	r.store.tasks[t.ID] = t
	return nil
}

func (r *storeTasks) UpdateStatus(_ context.Context, id int64, status entity.TaskStatus) error {
	t, ok := r.store.tasks[id]
	if !ok {
		return task.ErrTaskNotFound
	}
	t.Status = status
	r.store.tasks[id] = t
	return nil
}

func (r *storeTasks) DeleteTask(_ context.Context, id int64) error {
	if _, ok := r.store.tasks[id]; !ok {
		return task.ErrTaskNotFound
	}
	delete(r.store.tasks, id)
	return nil
}

func (r *storeTasks) CountByStatus(_ context.Context, userID string) (task.Stats, error) {
	var stats task.Stats
	for _, t := range r.store.tasks {
		if t.AssigneeID != userID && t.CreatedByID != userID {
			continue
		}
		stats.Total++
		switch t.Status {
		case entity.TaskStatusPending:
			stats.Pending++
		case entity.TaskStatusInProgress:
			stats.InProgress++
		case entity.TaskStatusCompleted:
			stats.Completed++
		case entity.TaskStatusCancelled:
			stats.Cancelled++
		}
	}
	return stats, nil
}

type storeActivities struct{ store *taskStore }

func (r *storeActivities) CreateActivity(_ context.Context, a entity.TaskActivity) error {
	r.store.activities = append(r.store.activities, a)
	return nil
}

func (r *storeActivities) ListByTask(_ context.Context, taskID int64) ([]entity.TaskActivity, error) {
	var out []entity.TaskActivity
	for _, a := range r.store.activities {
		if a.TaskID == taskID {
			out = append(out, a)
		}
	}
	return out, nil
}

type storeRepository struct{ store *taskStore }

func (r *storeRepository) NewClient(_ bool) (taskRepository.Client, error) {
	return taskRepository.Client{
		Tasks:      &storeTasks{store: r.store},
		Activities: &storeActivities{store: r.store},
		Commit: func() error {
			r.store.commits++
			return nil
		},
		Rollback: func() error { return nil },
	}, nil
}

type notification struct {
	userID string
	kind   entity.NotificationType
	title  string
}

type recordingNotifier struct {
	sent []notification
}

func (n *recordingNotifier) Notify(userID string, kind entity.NotificationType, title string, _ string) {
	n.sent = append(n.sent, notification{userID: userID, kind: kind, title: title})
}

type ulidUtils struct{}

func (ulidUtils) NewULIDFromTimestamp(_ time.Time) (string, error) { return "01ACTIVITYID", nil }

func (ulidUtils) ValidateAudioFile(_ *multipart.FileHeader) error { return nil }

func newService(store *taskStore, notifier *recordingNotifier) ITaskService {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return NewTaskService(logger, &storeRepository{store: store}, notifier, ulidUtils{})
}

func TestCreateTaskNotifiesAssignee(t *testing.T) {
	store := newTaskStore()
	notifier := &recordingNotifier{}
	svc := newService(store, notifier)

	created, err := svc.CreateTask(context.Background(), "u-creator", task.CreateTaskRequest{
		Title:      "Review report",
		AssigneeID: "u-assignee",
		Priority:   "high",
	})

	require.NoError(t, err)
	assert.Equal(t, entity.TaskStatusPending, created.Status)
	assert.Equal(t, entity.TaskPriorityHigh, created.Priority)
	assert.Equal(t, "u-creator", store.tasks[created.ID].CreatedByID)
	assert.Equal(t, 1, store.commits)

	require.Len(t, store.activities, 1)
	assert.Equal(t, "created", store.activities[0].ActivityType)

	require.Len(t, notifier.sent, 1)
	assert.Equal(t, "u-assignee", notifier.sent[0].userID)
	assert.Equal(t, entity.NotificationTaskAssigned, notifier.sent[0].kind)
}

func TestCreateTaskSelfAssignedSkipsNotification(t *testing.T) {
	store := newTaskStore()
	notifier := &recordingNotifier{}
	svc := newService(store, notifier)

	_, err := svc.CreateTask(context.Background(), "u-creator", task.CreateTaskRequest{
		Title:      "Write minutes",
		AssigneeID: "u-creator",
	})

	require.NoError(t, err)
	assert.Empty(t, notifier.sent)
}

func TestCreateTaskUnknownPriorityDefaultsToMedium(t *testing.T) {
	store := newTaskStore()
	svc := newService(store, &recordingNotifier{})

	created, err := svc.CreateTask(context.Background(), "u-creator", task.CreateTaskRequest{
		Title:      "Budget draft",
		AssigneeID: "u-assignee",
		Priority:   "whenever",
	})

	require.NoError(t, err)
	assert.Equal(t, entity.TaskPriorityMedium, created.Priority)
}

func TestGetTaskByIDAccess(t *testing.T) {
	store := newTaskStore(entity.Task{ID: 7, Title: "Review report", AssigneeID: "u-assignee", CreatedByID: "u-creator"})
	svc := newService(store, &recordingNotifier{})

	tests := []struct {
		name    string
		userID  string
		wantErr error
	}{
		{"assignee can read", "u-assignee", nil},
		{"creator can read", "u-creator", nil},
		{"stranger is denied", "u-stranger", task.ErrTaskNotOwned},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.GetTaskByID(context.Background(), tt.userID, 7)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestGetTaskByIDMissing(t *testing.T) {
	svc := newService(newTaskStore(), &recordingNotifier{})

	_, err := svc.GetTaskByID(context.Background(), "u-any", 99)

	assert.ErrorIs(t, err, task.ErrTaskNotFound)
}

func TestUpdateTaskStatusRejectsUnknownStatus(t *testing.T) {
	store := newTaskStore(entity.Task{ID: 7, AssigneeID: "u-assignee", Status: entity.TaskStatusPending})
	svc := newService(store, &recordingNotifier{})

	_, err := svc.UpdateTaskStatus(context.Background(), "u-assignee", 7, "archived")

	assert.ErrorIs(t, err, task.ErrInvalidStatus)
	assert.Equal(t, entity.TaskStatusPending, store.tasks[7].Status)
}

func TestUpdateTaskStatusCompletionNotifiesCreator(t *testing.T) {
	store := newTaskStore(entity.Task{
		ID: 7, Title: "Review report",
		AssigneeID: "u-assignee", CreatedByID: "u-creator",
		Status: entity.TaskStatusInProgress,
	})
	notifier := &recordingNotifier{}
	svc := newService(store, notifier)

	updated, err := svc.UpdateTaskStatus(context.Background(), "u-assignee", 7, entity.TaskStatusCompleted)

	require.NoError(t, err)
	assert.Equal(t, entity.TaskStatusCompleted, updated.Status)
	assert.Equal(t, entity.TaskStatusCompleted, store.tasks[7].Status)

	require.Len(t, notifier.sent, 1)
	assert.Equal(t, "u-creator", notifier.sent[0].userID)
	assert.Equal(t, entity.NotificationTaskCompleted, notifier.sent[0].kind)

	require.Len(t, store.activities, 1)
	assert.Equal(t, "status_changed", store.activities[0].ActivityType)
}

func TestUpdateTaskStatusByCreatorSkipsNotification(t *testing.T) {
	store := newTaskStore(entity.Task{
		ID: 7, AssigneeID: "u-assignee", CreatedByID: "u-creator",
		Status: entity.TaskStatusInProgress,
	})
	notifier := &recordingNotifier{}
	svc := newService(store, notifier)

	_, err := svc.UpdateTaskStatus(context.Background(), "u-creator", 7, entity.TaskStatusCompleted)

	require.NoError(t, err)
	assert.Empty(t, notifier.sent)
}

func TestUpdateTaskStatusDeniedLeavesTaskUntouched(t *testing.T) {
	store := newTaskStore(entity.Task{
		ID: 7, AssigneeID: "u-assignee", CreatedByID: "u-creator",
		Status: entity.TaskStatusPending,
	})
	svc := newService(store, &recordingNotifier{})

	_, err := svc.UpdateTaskStatus(context.Background(), "u-stranger", 7, entity.TaskStatusCompleted)

	assert.ErrorIs(t, err, task.ErrTaskNotOwned)
	assert.Equal(t, entity.TaskStatusPending, store.tasks[7].Status)
	assert.Empty(t, store.activities)
}

func TestUpdateTaskMergesOnlyProvidedFields(t *testing.T) {
	due := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
	store := newTaskStore(entity.Task{
		ID: 7, Title: "Review report", Description: "First pass",
		AssigneeID: "u-assignee", CreatedByID: "u-creator",
		Priority: entity.TaskPriorityLow,
	})
	notifier := &recordingNotifier{}
	svc := newService(store, notifier)

	updated, err := svc.UpdateTask(context.Background(), "u-creator", 7, task.UpdateTaskRequest{
		Title:   "Review final report",
		DueDate: &due,
	})

	require.NoError(t, err)
	assert.Equal(t, "Review final report", updated.Title)
	assert.Equal(t, "First pass", updated.Description)
	assert.Equal(t, entity.TaskPriorityLow, updated.Priority)
	require.NotNil(t, updated.DueDate)
	assert.Equal(t, due, *updated.DueDate)

	require.Len(t, notifier.sent, 1)
	assert.Equal(t, "u-assignee", notifier.sent[0].userID)
	assert.Equal(t, entity.NotificationTaskUpdated, notifier.sent[0].kind)
}

func TestDeleteTaskDenied(t *testing.T) {
	store := newTaskStore(entity.Task{ID: 7, AssigneeID: "u-assignee", CreatedByID: "u-creator"})
	svc := newService(store, &recordingNotifier{})

	_, err := svc.DeleteTask(context.Background(), "u-stranger", 7)

	assert.ErrorIs(t, err, task.ErrTaskNotOwned)
	assert.Contains(t, store.tasks, int64(7))
}

func TestDeleteTaskReturnsDeletedTask(t *testing.T) {
	store := newTaskStore(entity.Task{ID: 7, Title: "Review report", AssigneeID: "u-assignee"})
	svc := newService(store, &recordingNotifier{})

	deleted, err := svc.DeleteTask(context.Background(), "u-assignee", 7)

	require.NoError(t, err)
	assert.Equal(t, "Review report", deleted.Title)
	assert.NotContains(t, store.tasks, int64(7))
}

func TestTaskStats(t *testing.T) {
	store := newTaskStore(
		entity.Task{ID: 1, AssigneeID: "u-me", Status: entity.TaskStatusCompleted},
		entity.Task{ID: 2, AssigneeID: "u-me", Status: entity.TaskStatusPending},
		entity.Task{ID: 3, AssigneeID: "u-me", Status: entity.TaskStatusInProgress},
		entity.Task{ID: 4, AssigneeID: "u-other", Status: entity.TaskStatusCompleted},
	)
	svc := newService(store, &recordingNotifier{})

	stats, err := svc.TaskStats(context.Background(), "u-me")

	require.NoError(t, err)
	assert.Equal(t, task.Stats{Total: 3, Pending: 1, InProgress: 1, Completed: 1}, stats)
}

func TestListActivitiesRequiresAccess(t *testing.T) {
	store := newTaskStore(entity.Task{ID: 7, AssigneeID: "u-assignee", CreatedByID: "u-creator"})
	store.activities = []entity.TaskActivity{{ID: "a1", TaskID: 7, ActivityType: "created"}}
	svc := newService(store, &recordingNotifier{})

	_, err := svc.ListActivities(context.Background(), "u-stranger", 7)
	assert.ErrorIs(t, err, task.ErrTaskNotOwned)

	activities, err := svc.ListActivities(context.Background(), "u-assignee", 7)
	require.NoError(t, err)
	assert.Len(t, activities, 1)
}
