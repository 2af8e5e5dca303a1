package taskService

import (
	"AssistantGolang/internal/api/task"
	"AssistantGolang/internal/entity"
	contextPkg "AssistantGolang/pkg/context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

func (s *taskService) CreateTask(ctx context.Context, creatorID string, req task.CreateTaskRequest) (entity.Task, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.taskRepository.NewClient(true)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return entity.Task{}, err
	}
	defer repo.Rollback()

	newTask := entity.Task{
		Title:       req.Title,
		Description: req.Description,
		AssigneeID:  req.AssigneeID,
		CreatedByID: creatorID,
		Status:      entity.TaskStatusPending,
		Priority:    entity.ParseTaskPriority(req.Priority),
		DueDate:     req.DueDate,
	}

	id, err := repo.Tasks.CreateTask(ctx, newTask)
	if err != nil {
		return entity.Task{}, err
	}
	newTask.ID = id
	newTask.CreatedAt = time.Now()

	if err := s.recordActivity(ctx, repo.Activities, id, creatorID, "created",
		fmt.Sprintf("Task %q created", req.Title)); err != nil {
		return entity.Task{}, err
	}

	if err := repo.Commit(); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to commit task creation")
		return entity.Task{}, err
	}

	s.log.WithFields(logrus.Fields{
		"request_id":  requestID,
		"task_id":     id,
		"assignee_id": req.AssigneeID,
	}).Info("Task created")

	if req.AssigneeID != creatorID {
		s.notifier.Notify(req.AssigneeID, entity.NotificationTaskAssigned,
			"New task assigned",
			fmt.Sprintf("You have been assigned: %s", req.Title))
	}

	return newTask, nil
}

func (s *taskService) GetTaskByID(ctx context.Context, userID string, id int64) (entity.Task, error) {
	repo, err := s.taskRepository.NewClient(false)
	if err != nil {
		return entity.Task{}, err
	}

	found, err := repo.Tasks.GetByID(ctx, id)
	if err != nil {
		return entity.Task{}, err
	}

	if !canAccess(found, userID) {
		s.log.WithFields(logrus.Fields{
			"request_id": contextPkg.GetRequestID(ctx),
			"task_id":    id,
			"user_id":    userID,
		}).Warn("Task access denied")
		return entity.Task{}, task.ErrTaskNotOwned
	}

	return found, nil
}

func (s *taskService) SearchTasks(ctx context.Context, userID string, titleQuery string) ([]entity.Task, error) {
	repo, err := s.taskRepository.NewClient(false)
	if err != nil {
		return nil, err
	}

	return repo.Tasks.SearchByTitle(ctx, userID, titleQuery)
}

func (s *taskService) ListTasks(ctx context.Context, userID string, filter task.ListFilter) ([]entity.Task, error) {
	repo, err := s.taskRepository.NewClient(false)
	if err != nil {
		return nil, err
	}

	return repo.Tasks.ListByUser(ctx, userID, filter)
}

func (s *taskService) UpdateTask(ctx context.Context, userID string, id int64, req task.UpdateTaskRequest) (entity.Task, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.taskRepository.NewClient(true)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return entity.Task{}, err
	}
	defer repo.Rollback()

	existing, err := repo.Tasks.GetByID(ctx, id)
	if err != nil {
		return entity.Task{}, err
	}
	if !canAccess(existing, userID) {
		return entity.Task{}, task.ErrTaskNotOwned
	}

	if req.Title != "" {
		existing.Title = req.Title
	}
	if req.Description != "" {
		existing.Description = req.Description
	}
	if req.Priority != "" {
		existing.Priority = entity.ParseTaskPriority(req.Priority)
	}
	if req.DueDate != nil {
		existing.DueDate = req.DueDate
	}

	if err := repo.Tasks.UpdateTask(ctx, existing); err != nil {
		return entity.Task{}, err
	}

	if err := s.recordActivity(ctx, repo.Activities, id, userID, "updated",
		fmt.Sprintf("Task %q updated", existing.Title)); err != nil {
		return entity.Task{}, err
	}

	if err := repo.Commit(); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to commit task update")
		return entity.Task{}, err
	}

	if existing.AssigneeID != userID {
		s.notifier.Notify(existing.AssigneeID, entity.NotificationTaskUpdated,
			"Task updated",
			fmt.Sprintf("%q has been updated", existing.Title))
	}

	return existing, nil
}

func (s *taskService) UpdateTaskStatus(ctx context.Context, userID string, id int64, status entity.TaskStatus) (entity.Task, error) {
	requestID := contextPkg.GetRequestID(ctx)

	switch status {
	case entity.TaskStatusPending, entity.TaskStatusInProgress,
		entity.TaskStatusCompleted, entity.TaskStatusCancelled:
	default:
		return entity.Task{}, task.ErrInvalidStatus
	}

	repo, err := s.taskRepository.NewClient(true)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return entity.Task{}, err
	}
	defer repo.Rollback()

	existing, err := repo.Tasks.GetByID(ctx, id)
	if err != nil {
		return entity.Task{}, err
	}
	if !canAccess(existing, userID) {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"task_id":    id,
			"user_id":    userID,
		}).Warn("Status change denied for task not owned by user")
		return entity.Task{}, task.ErrTaskNotOwned
	}

	if err := repo.Tasks.UpdateStatus(ctx, id, status); err != nil {
		return entity.Task{}, err
	}
	existing.Status = status

	if err := s.recordActivity(ctx, repo.Activities, id, userID, "status_changed",
		fmt.Sprintf("Status changed to %s", status)); err != nil {
		return entity.Task{}, err
	}

	if err := repo.Commit(); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to commit status update")
		return entity.Task{}, err
	}

	if status == entity.TaskStatusCompleted && existing.CreatedByID != userID {
		s.notifier.Notify(existing.CreatedByID, entity.NotificationTaskCompleted,
			"Task completed",
			fmt.Sprintf("%q has been completed", existing.Title))
	}

	return existing, nil
}

func (s *taskService) DeleteTask(ctx context.Context, userID string, id int64) (entity.Task, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.taskRepository.NewClient(true)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return entity.Task{}, err
	}
	defer repo.Rollback()

	existing, err := repo.Tasks.GetByID(ctx, id)
	if err != nil {
		return entity.Task{}, err
	}
	if !canAccess(existing, userID) {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"task_id":    id,
			"user_id":    userID,
		}).Warn("Delete denied for task not owned by user")
		return entity.Task{}, task.ErrTaskNotOwned
	}

	if err := repo.Tasks.DeleteTask(ctx, id); err != nil {
		return entity.Task{}, err
	}

	if err := repo.Commit(); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to commit task deletion")
		return entity.Task{}, err
	}

	s.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"task_id":    id,
	}).Info("Task deleted")

	return existing, nil
}

func (s *taskService) TaskStats(ctx context.Context, userID string) (task.Stats, error) {
	repo, err := s.taskRepository.NewClient(false)
	if err != nil {
		return task.Stats{}, err
	}

	return repo.Tasks.CountByStatus(ctx, userID)
}

func (s *taskService) ListActivities(ctx context.Context, userID string, taskID int64) ([]entity.TaskActivity, error) {
	repo, err := s.taskRepository.NewClient(false)
	if err != nil {
		return nil, err
	}

	existing, err := repo.Tasks.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if !canAccess(existing, userID) {
		return nil, task.ErrTaskNotOwned
	}

	return repo.Activities.ListByTask(ctx, taskID)
}

func canAccess(t entity.Task, userID string) bool {
	return t.AssigneeID == userID || t.CreatedByID == userID
}
