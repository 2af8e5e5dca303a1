package taskService

import (
	"AssistantGolang/internal/entity"
	"time"

	"golang.org/x/net/context"
)

type activityWriter interface {
	CreateActivity(ctx context.Context, a entity.TaskActivity) error
	ListByTask(ctx context.Context, taskID int64) ([]entity.TaskActivity, error)
}

func (s *taskService) recordActivity(ctx context.Context, activities activityWriter, taskID int64, userID string, activityType string, description string) error {
	id, err := s.utils.NewULIDFromTimestamp(time.Now())
	if err != nil {
		return err
	}

	return activities.CreateActivity(ctx, entity.TaskActivity{
		ID:           id,
		TaskID:       taskID,
		UserID:       userID,
		ActivityType: activityType,
		Description:  description,
	})
}
