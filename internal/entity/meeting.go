package entity

import "time"

type Meeting struct {
	ID        int64     `db:"id"`
	UserID    string    `db:"user_id"`
	TaskID    *int64    `db:"task_id"`
	Topic     string    `db:"topic"`
	StartTime time.Time `db:"start_time"`
	Duration  int       `db:"duration"`
	JoinURL   string    `db:"join_url"`
	Source    string    `db:"source"`
	CreatedAt time.Time `db:"created_at"`
}

// CalendarEvent is a merged view over local meetings and Google Calendar
// entries, used by event queries.
type CalendarEvent struct {
	Title  string    `json:"title"`
	Start  time.Time `json:"start"`
	Source string    `json:"source"`
}
