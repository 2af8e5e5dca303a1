package notificationRepository

import (
	"AssistantGolang/internal/api/notification"
	"AssistantGolang/internal/entity"
	contextPkg "AssistantGolang/pkg/context"
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

type NotificationDB struct {
	ID        sql.NullString `db:"id"`
	UserID    sql.NullString `db:"user_id"`
	Type      sql.NullString `db:"type"`
	Title     sql.NullString `db:"title"`
	Message   sql.NullString `db:"message"`
	Read      sql.NullBool   `db:"read"`
	CreatedAt sql.NullTime   `db:"created_at"`
}

func (r *notificationRepository) CreateNotification(c context.Context, n entity.Notification) error {
	requestID := contextPkg.GetRequestID(c)
	argsKV := map[string]interface{}{
		"id":         n.ID,
		"user_id":    n.UserID,
		"type":       n.Type,
		"title":      n.Title,
		"message":    n.Message,
		"created_at": time.Now(),
	}

	query, args, err := sqlx.Named(queryCreateNotification, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to build SQL query for CreateNotification")
		return err
	}
	query = r.q.Rebind(query)

	if _, err := r.q.ExecContext(c, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when creating notification")
		return err
	}

	return nil
}

func (r *notificationRepository) ListByUser(c context.Context, userID string) ([]entity.Notification, error) {
	requestID := contextPkg.GetRequestID(c)
	var rows []NotificationDB

	argsKV := map[string]interface{}{
		"user_id": userID,
	}

	query, args, err := sqlx.Named(queryListNotificationsByUser, argsKV)
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
		}).Error("Database error when listing notifications")
		return nil, err
	}

	notifications := make([]entity.Notification, 0, len(rows))
	for _, row := range rows {
		notifications = append(notifications, entity.Notification{
			ID:        row.ID.String,
			UserID:    row.UserID.String,
			Type:      entity.NotificationType(row.Type.String),
			Title:     row.Title.String,
			Message:   row.Message.String,
			Read:      row.Read.Bool,
			CreatedAt: row.CreatedAt.Time,
		})
	}

	return notifications, nil
}

func (r *notificationRepository) MarkRead(c context.Context, userID string, id string) error {
	requestID := contextPkg.GetRequestID(c)
	argsKV := map[string]interface{}{
		"id":      id,
		"user_id": userID,
	}

	query, args, err := sqlx.Named(queryMarkNotificationRead, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to build SQL query for MarkRead")
		return err
	}
	query = r.q.Rebind(query)

	result, err := r.q.ExecContext(c, query, args...)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when marking notification read")
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return notification.ErrNotificationNotFound
	}

	return nil
}

func (r *notificationRepository) MarkAllRead(c context.Context, userID string) error {
	requestID := contextPkg.GetRequestID(c)
	argsKV := map[string]interface{}{
		"user_id": userID,
	}

	query, args, err := sqlx.Named(queryMarkAllNotificationsRead, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to build SQL query for MarkAllRead")
		return err
	}
	query = r.q.Rebind(query)

	if _, err := r.q.ExecContext(c, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when marking all notifications read")
		return err
	}

	return nil
}
