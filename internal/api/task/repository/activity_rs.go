package taskRepository

import (
	"AssistantGolang/internal/entity"
	contextPkg "AssistantGolang/pkg/context"
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

type TaskActivityDB struct {
	ID           sql.NullString `db:"id"`
	TaskID       sql.NullInt64  `db:"task_id"`
	UserID       sql.NullString `db:"user_id"`
	ActivityType sql.NullString `db:"activity_type"`
	Description  sql.NullString `db:"description"`
	CreatedAt    sql.NullTime   `db:"created_at"`
}

func (r *activityRepository) CreateActivity(c context.Context, a entity.TaskActivity) error {
	requestID := contextPkg.GetRequestID(c)
	argsKV := map[string]interface{}{
		"id":            a.ID,
		"task_id":       a.TaskID,
		"user_id":       a.UserID,
		"activity_type": a.ActivityType,
		"description":   a.Description,
		"created_at":    time.Now(),
	}

	query, args, err := sqlx.Named(queryCreateActivity, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to build SQL query for CreateActivity")
		return err
	}
	query = r.q.Rebind(query)

	if _, err := r.q.ExecContext(c, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when creating task activity")
		return err
	}

	return nil
}

func (r *activityRepository) ListByTask(c context.Context, taskID int64) ([]entity.TaskActivity, error) {
	requestID := contextPkg.GetRequestID(c)
	var rows []TaskActivityDB

	argsKV := map[string]interface{}{
		"task_id": taskID,
	}

	query, args, err := sqlx.Named(queryListActivitiesByTask, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("ListByTask named query preparation err")
		return nil, err
	}
	query = r.q.Rebind(query)

	if err := r.q.SelectContext(c, &rows, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when listing task activities")
		return nil, err
	}

	activities := make([]entity.TaskActivity, 0, len(rows))
	for _, row := range rows {
		activities = append(activities, entity.TaskActivity{
			ID:           row.ID.String,
			TaskID:       row.TaskID.Int64,
			UserID:       row.UserID.String,
			ActivityType: row.ActivityType.String,
			Description:  row.Description.String,
			CreatedAt:    row.CreatedAt.Time,
		})
	}

	return activities, nil
}
