package entity

import "time"

type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusCompleted  TaskStatus = "completed"
	TaskStatusCancelled  TaskStatus = "cancelled"
)

type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "low"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityHigh   TaskPriority = "high"
	TaskPriorityUrgent TaskPriority = "urgent"
)

func ParseTaskPriority(s string) TaskPriority {
	switch TaskPriority(s) {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh, TaskPriorityUrgent:
		return TaskPriority(s)
	default:
		return TaskPriorityMedium
	}
}

type Task struct {
	ID          int64        `db:"id"`
	Title       string       `db:"title"`
	Description string       `db:"description"`
	AssigneeID  string       `db:"assignee_id"`
	CreatedByID string       `db:"created_by_id"`
	Status      TaskStatus   `db:"status"`
	Priority    TaskPriority `db:"priority"`
	DueDate     *time.Time   `db:"due_date"`
	CreatedAt   time.Time    `db:"created_at"`
	UpdatedAt   time.Time    `db:"updated_at"`
}

type TaskActivity struct {
	ID           string    `db:"id"`
	TaskID       int64     `db:"task_id"`
	UserID       string    `db:"user_id"`
	ActivityType string    `db:"activity_type"`
	Description  string    `db:"description"`
	CreatedAt    time.Time `db:"created_at"`
}
