package voice

import (
	"AssistantGolang/internal/api/meeting"
	"AssistantGolang/internal/api/task"
	"AssistantGolang/internal/entity"
)

type CommandRequest struct {
	Text string `json:"text" validate:"required,min=1,max=500"`
}

// CommandResponse is the single response shape for every voice command
// outcome. Status drives the HTTP code and is never serialized; a
// clarification is a success-shaped body with Incomplete set so the client
// keeps the conversation open, while rejections carry Error plus whatever
// context helps the user correct themselves (valid names, example
// phrasings).
type CommandResponse struct {
	Status int `json:"-"`

	Message    string `json:"message,omitempty"`
	Error      string `json:"error,omitempty"`
	Recognized bool   `json:"recognized,omitempty"`
	Incomplete bool   `json:"incomplete,omitempty"`
	Intent     string `json:"intent,omitempty"`

	// The query result lists serialize even when empty: a zero-task day is
	// a successful answer with an empty list, not a missing key.
	Task           *task.TaskResponse        `json:"task,omitempty"`
	Tasks          []task.TaskResponse       `json:"tasks"`
	Meeting        *meeting.MeetingResponse  `json:"meeting,omitempty"`
	Meetings       []meeting.MeetingResponse `json:"meetings"`
	Events         []entity.CalendarEvent    `json:"events"`
	Stats          *task.Stats               `json:"stats,omitempty"`
	Email          *EmailSummary            `json:"email,omitempty"`
	AvailableUsers []string                 `json:"available_users,omitempty"`
	Examples       []string                 `json:"examples,omitempty"`
}

type EmailSummary struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
}

type TranscribeResponse struct {
	Text string `json:"text"`

	// AudioURL is a time-limited link to the archived recording, present
	// only when the archive upload succeeded.
	AudioURL string `json:"audio_url,omitempty"`
}
