package taskRepository

import (
	"AssistantGolang/internal/api/task"
	"AssistantGolang/internal/entity"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

type SQLExecutor interface {
	sqlx.ExtContext
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	QueryRowxContext(ctx context.Context, query string, args ...interface{}) *sqlx.Row
	Rebind(query string) string
}

func New(db *sqlx.DB, log *logrus.Logger) Repository {
	return &repository{
		DB:  db,
		log: log,
	}
}

type repository struct {
	DB  *sqlx.DB
	log *logrus.Logger
}

type Repository interface {
	NewClient(tx bool) (Client, error)
}

func (r *repository) NewClient(tx bool) (Client, error) {
	var sqlExecutor SQLExecutor
	var commitFunc, rollbackFunc func() error

	sqlExecutor = r.DB

	if tx {
		txx, err := r.DB.Beginx()
		if err != nil {
			return Client{}, err
		}

		sqlExecutor = txx
		commitFunc = txx.Commit
		rollbackFunc = txx.Rollback
	} else {
		commitFunc = func() error { return nil }
		rollbackFunc = func() error { return nil }
	}

	return Client{
		Tasks:      &taskRepository{q: sqlExecutor, log: r.log},
		Activities: &activityRepository{q: sqlExecutor, log: r.log},
		Commit:     commitFunc,
		Rollback:   rollbackFunc,
	}, nil
}

type Client struct {
	Tasks interface {
		CreateTask(ctx context.Context, t entity.Task) (int64, error)
		GetByID(ctx context.Context, id int64) (entity.Task, error)
		SearchByTitle(ctx context.Context, userID string, title string) ([]entity.Task, error)
		ListByUser(ctx context.Context, userID string, filter task.ListFilter) ([]entity.Task, error)
		UpdateTask(ctx context.Context, t entity.Task) error
		UpdateStatus(ctx context.Context, id int64, status entity.TaskStatus) error
		DeleteTask(ctx context.Context, id int64) error
		CountByStatus(ctx context.Context, userID string) (task.Stats, error)
	}

	Activities interface {
		CreateActivity(ctx context.Context, a entity.TaskActivity) error
		ListByTask(ctx context.Context, taskID int64) ([]entity.TaskActivity, error)
	}

	Commit   func() error
	Rollback func() error
}

type taskRepository struct {
	q   SQLExecutor
	log *logrus.Logger
}

type activityRepository struct {
	q   SQLExecutor
	log *logrus.Logger
}
