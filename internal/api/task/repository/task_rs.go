package taskRepository

import (
	"AssistantGolang/internal/api/task"
	"AssistantGolang/internal/entity"
	contextPkg "AssistantGolang/pkg/context"
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

type TaskDB struct {
	ID          sql.NullInt64  `db:"id"`
	Title       sql.NullString `db:"title"`
	Description sql.NullString `db:"description"`
	AssigneeID  sql.NullString `db:"assignee_id"`
	CreatedByID sql.NullString `db:"created_by_id"`
	Status      sql.NullString `db:"status"`
	Priority    sql.NullString `db:"priority"`
	DueDate     sql.NullTime   `db:"due_date"`
	CreatedAt   sql.NullTime   `db:"created_at"`
	UpdatedAt   sql.NullTime   `db:"updated_at"`
}

func (r *taskRepository) CreateTask(c context.Context, t entity.Task) (int64, error) {
	requestID := contextPkg.GetRequestID(c)
	now := time.Now()
	argsKV := map[string]interface{}{
		"title":         t.Title,
		"description":   t.Description,
		"assignee_id":   t.AssigneeID,
		"created_by_id": t.CreatedByID,
		"status":        t.Status,
		"priority":      t.Priority,
		"due_date":      t.DueDate,
		"created_at":    now,
		"updated_at":    now,
	}

	query, args, err := sqlx.Named(queryCreateTask, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to build SQL query for CreateTask")
		return 0, err
	}
	query = r.q.Rebind(query)

	var id int64
	if err := r.q.QueryRowxContext(c, query, args...).Scan(&id); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when creating task")
		return 0, err
	}

	return id, nil
}

func (r *taskRepository) GetByID(c context.Context, id int64) (entity.Task, error) {
	requestID := contextPkg.GetRequestID(c)
	var row TaskDB

	argsKV := map[string]interface{}{
		"id": id,
	}

	query, args, err := sqlx.Named(queryGetTaskByID, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetByID named query preparation err")
		return entity.Task{}, err
	}
	query = r.q.Rebind(query)

	if err := r.q.QueryRowxContext(c, query, args...).StructScan(&row); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"task_id":    id,
			}).Warn("GetByID no task found")
			return entity.Task{}, task.ErrTaskNotFound
		}

		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when getting task by id")
		return entity.Task{}, err
	}

	return makeTask(row), nil
}

func (r *taskRepository) SearchByTitle(c context.Context, userID string, title string) ([]entity.Task, error) {
	requestID := contextPkg.GetRequestID(c)
	var rows []TaskDB

	argsKV := map[string]interface{}{
		"user_id": userID,
		"pattern": "%" + title + "%",
	}

	query, args, err := sqlx.Named(querySearchTasksByTitle, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("SearchByTitle named query preparation err")
		return nil, err
	}
	query = r.q.Rebind(query)

	if err := r.q.SelectContext(c, &rows, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when searching tasks by title")
		return nil, err
	}

	tasks := make([]entity.Task, 0, len(rows))
	for _, row := range rows {
		tasks = append(tasks, makeTask(row))
	}

	return tasks, nil
}

func (r *taskRepository) ListByUser(c context.Context, userID string, filter task.ListFilter) ([]entity.Task, error) {
	requestID := contextPkg.GetRequestID(c)
	var rows []TaskDB

	argsKV := map[string]interface{}{
		"user_id":    userID,
		"status":     filter.Status,
		"due_before": filter.DueBefore,
		"due_after":  filter.DueAfter,
	}

	query, args, err := sqlx.Named(queryListTasksByUser, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("ListByUser named query preparation err")
		return nil, err
	}
	query = r.q.Rebind(query)

	if err := r.q.SelectContext(c, &rows, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when listing tasks")
		return nil, err
	}

	tasks := make([]entity.Task, 0, len(rows))
	for _, row := range rows {
		tasks = append(tasks, makeTask(row))
	}

	return tasks, nil
}

func (r *taskRepository) UpdateTask(c context.Context, t entity.Task) error {
	requestID := contextPkg.GetRequestID(c)
	argsKV := map[string]interface{}{
		"id":          t.ID,
		"title":       t.Title,
		"description": t.Description,
		"priority":    t.Priority,
		"due_date":    t.DueDate,
		"updated_at":  time.Now(),
	}

	query, args, err := sqlx.Named(queryUpdateTask, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to build SQL query for UpdateTask")
		return err
	}
	query = r.q.Rebind(query)

	result, err := r.q.ExecContext(c, query, args...)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when updating task")
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return task.ErrTaskNotFound
	}

	return nil
}

func (r *taskRepository) UpdateStatus(c context.Context, id int64, status entity.TaskStatus) error {
	requestID := contextPkg.GetRequestID(c)
	argsKV := map[string]interface{}{
		"id":         id,
		"status":     status,
		"updated_at": time.Now(),
	}

	query, args, err := sqlx.Named(queryUpdateTaskStatus, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to build SQL query for UpdateStatus")
		return err
	}
	query = r.q.Rebind(query)

	result, err := r.q.ExecContext(c, query, args...)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when updating task status")
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return task.ErrTaskNotFound
	}

	return nil
}

func (r *taskRepository) DeleteTask(c context.Context, id int64) error {
	requestID := contextPkg.GetRequestID(c)
	argsKV := map[string]interface{}{
		"id": id,
	}

	query, args, err := sqlx.Named(queryDeleteTask, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to build SQL query for DeleteTask")
		return err
	}
	query = r.q.Rebind(query)

	result, err := r.q.ExecContext(c, query, args...)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when deleting task")
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return task.ErrTaskNotFound
	}

	return nil
}

func (r *taskRepository) CountByStatus(c context.Context, userID string) (task.Stats, error) {
	requestID := contextPkg.GetRequestID(c)

	type statusCount struct {
		Status sql.NullString `db:"status"`
		Total  int            `db:"total"`
	}
	var rows []statusCount

	argsKV := map[string]interface{}{
		"user_id": userID,
	}

	query, args, err := sqlx.Named(queryCountTasksByStatus, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("CountByStatus named query preparation err")
		return task.Stats{}, err
	}
	query = r.q.Rebind(query)

	if err := r.q.SelectContext(c, &rows, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when counting tasks by status")
		return task.Stats{}, err
	}

	var stats task.Stats
	for _, row := range rows {
		stats.Total += row.Total
		switch entity.TaskStatus(row.Status.String) {
		case entity.TaskStatusPending:
			stats.Pending = row.Total
		case entity.TaskStatusInProgress:
			stats.InProgress = row.Total
		case entity.TaskStatusCompleted:
			stats.Completed = row.Total
		case entity.TaskStatusCancelled:
			stats.Cancelled = row.Total
		}
	}

	return stats, nil
}

func makeTask(row TaskDB) entity.Task {
	t := entity.Task{
		ID:          row.ID.Int64,
		Title:       row.Title.String,
		Description: row.Description.String,
		AssigneeID:  row.AssigneeID.String,
		CreatedByID: row.CreatedByID.String,
		Status:      entity.TaskStatus(row.Status.String),
		Priority:    entity.TaskPriority(row.Priority.String),
		CreatedAt:   row.CreatedAt.Time,
		UpdatedAt:   row.UpdatedAt.Time,
	}
	if row.DueDate.Valid {
		due := row.DueDate.Time
		t.DueDate = &due
	}
	return t
}
