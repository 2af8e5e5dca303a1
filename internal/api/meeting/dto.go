package meeting

import (
	"time"

	"AssistantGolang/internal/entity"
)

type ScheduleMeetingRequest struct {
	Topic     string    `json:"topic" validate:"required,min=1,max=200"`
	StartTime time.Time `json:"start_time" validate:"required"`
	Duration  int       `json:"duration" validate:"omitempty,min=5,max=480"`
	TaskID    *int64    `json:"task_id"`
}

type MeetingResponse struct {
	ID        int64     `json:"id"`
	Topic     string    `json:"topic"`
	StartTime time.Time `json:"start_time"`
	Duration  int       `json:"duration"`
	JoinURL   string    `json:"join_url,omitempty"`
	Source    string    `json:"source"`
}

func MakeMeetingResponse(m entity.Meeting) MeetingResponse {
	return MeetingResponse{
		ID:        m.ID,
		Topic:     m.Topic,
		StartTime: m.StartTime,
		Duration:  m.Duration,
		JoinURL:   m.JoinURL,
		Source:    m.Source,
	}
}
