package meetingRepository

import (
	"AssistantGolang/internal/api/meeting"
	"AssistantGolang/internal/entity"
	contextPkg "AssistantGolang/pkg/context"
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

type MeetingDB struct {
	ID        sql.NullInt64  `db:"id"`
	UserID    sql.NullString `db:"user_id"`
	TaskID    sql.NullInt64  `db:"task_id"`
	Topic     sql.NullString `db:"topic"`
	StartTime sql.NullTime   `db:"start_time"`
	Duration  sql.NullInt64  `db:"duration"`
	JoinURL   sql.NullString `db:"join_url"`
	Source    sql.NullString `db:"source"`
	CreatedAt sql.NullTime   `db:"created_at"`
}

func (r *meetingRepository) CreateMeeting(c context.Context, m entity.Meeting) (int64, error) {
	requestID := contextPkg.GetRequestID(c)
	argsKV := map[string]interface{}{
		"user_id":    m.UserID,
		"task_id":    m.TaskID,
		"topic":      m.Topic,
		"start_time": m.StartTime,
		"duration":   m.Duration,
		"join_url":   m.JoinURL,
		"source":     m.Source,
		"created_at": time.Now(),
	}

	query, args, err := sqlx.Named(queryCreateMeeting, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to build SQL query for CreateMeeting")
		return 0, err
	}
	query = r.q.Rebind(query)

	var id int64
	if err := r.q.QueryRowxContext(c, query, args...).Scan(&id); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when creating meeting")
		return 0, err
	}

	return id, nil
}

func (r *meetingRepository) GetByID(c context.Context, id int64) (entity.Meeting, error) {
	requestID := contextPkg.GetRequestID(c)
	var row MeetingDB

	argsKV := map[string]interface{}{
		"id": id,
	}

	query, args, err := sqlx.Named(queryGetMeetingByID, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetByID named query preparation err")
		return entity.Meeting{}, err
	}
	query = r.q.Rebind(query)

	if err := r.q.QueryRowxContext(c, query, args...).StructScan(&row); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"meeting_id": id,
			}).Warn("GetByID no meeting found")
			return entity.Meeting{}, meeting.ErrMeetingNotFound
		}

		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when getting meeting by id")
		return entity.Meeting{}, err
	}

	return makeMeeting(row), nil
}

func (r *meetingRepository) ListByUser(c context.Context, userID string, start *time.Time, end *time.Time) ([]entity.Meeting, error) {
	requestID := contextPkg.GetRequestID(c)
	var rows []MeetingDB

	argsKV := map[string]interface{}{
		"user_id": userID,
		"start":   start,
		"end":     end,
	}

	query, args, err := sqlx.Named(queryListMeetingsByUser, argsKV)
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
		}).Error("Database error when listing meetings")
		return nil, err
	}

	meetings := make([]entity.Meeting, 0, len(rows))
	for _, row := range rows {
		meetings = append(meetings, makeMeeting(row))
	}

	return meetings, nil
}

func (r *meetingRepository) DeleteMeeting(c context.Context, id int64) error {
	requestID := contextPkg.GetRequestID(c)
	argsKV := map[string]interface{}{
		"id": id,
	}

	query, args, err := sqlx.Named(queryDeleteMeeting, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to build SQL query for DeleteMeeting")
		return err
	}
	query = r.q.Rebind(query)

	result, err := r.q.ExecContext(c, query, args...)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when deleting meeting")
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return meeting.ErrMeetingNotFound
	}

	return nil
}

func makeMeeting(row MeetingDB) entity.Meeting {
	m := entity.Meeting{
		ID:        row.ID.Int64,
		UserID:    row.UserID.String,
		Topic:     row.Topic.String,
		StartTime: row.StartTime.Time,
		Duration:  int(row.Duration.Int64),
		JoinURL:   row.JoinURL.String,
		Source:    row.Source.String,
		CreatedAt: row.CreatedAt.Time,
	}
	if row.TaskID.Valid {
		taskID := row.TaskID.Int64
		m.TaskID = &taskID
	}
	return m
}
