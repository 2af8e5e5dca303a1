package entity

import "time"

type NotificationType string

const (
	NotificationTaskAssigned     NotificationType = "task_assigned"
	NotificationTaskUpdated      NotificationType = "task_updated"
	NotificationTaskCompleted    NotificationType = "task_completed"
	NotificationMeetingScheduled NotificationType = "meeting_scheduled"
)

type Notification struct {
	ID        string           `db:"id"`
	UserID    string           `db:"user_id"`
	Type      NotificationType `db:"type"`
	Title     string           `db:"title"`
	Message   string           `db:"message"`
	Read      bool             `db:"read"`
	CreatedAt time.Time        `db:"created_at"`
}
