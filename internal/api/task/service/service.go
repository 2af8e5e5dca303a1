package taskService

import (
	"AssistantGolang/internal/api/task"
	taskRepository "AssistantGolang/internal/api/task/repository"
	"AssistantGolang/internal/entity"
	"AssistantGolang/pkg/utils"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

type ITaskService interface {
	CreateTask(ctx context.Context, creatorID string, req task.CreateTaskRequest) (entity.Task, error)
	GetTaskByID(ctx context.Context, userID string, id int64) (entity.Task, error)
	SearchTasks(ctx context.Context, userID string, titleQuery string) ([]entity.Task, error)
	ListTasks(ctx context.Context, userID string, filter task.ListFilter) ([]entity.Task, error)
	UpdateTask(ctx context.Context, userID string, id int64, req task.UpdateTaskRequest) (entity.Task, error)
	UpdateTaskStatus(ctx context.Context, userID string, id int64, status entity.TaskStatus) (entity.Task, error)
	DeleteTask(ctx context.Context, userID string, id int64) (entity.Task, error)
	TaskStats(ctx context.Context, userID string) (task.Stats, error)
	ListActivities(ctx context.Context, userID string, taskID int64) ([]entity.TaskActivity, error)
}

// Notifier delivers task notifications without blocking the caller. The
// notification service satisfies this.
type Notifier interface {
	Notify(userID string, notificationType entity.NotificationType, title string, message string)
}

type taskService struct {
	log            *logrus.Logger
	taskRepository taskRepository.Repository
	notifier       Notifier
	utils          utils.IUtils
}

func NewTaskService(log *logrus.Logger, tr taskRepository.Repository, notifier Notifier, utils utils.IUtils) ITaskService {
	return &taskService{
		log:            log,
		taskRepository: tr,
		notifier:       notifier,
		utils:          utils,
	}
}
