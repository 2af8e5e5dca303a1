// Package nlp implements the lexical layer of the voice command engine:
// intent classification over a fixed detector cascade and stateless
// extraction of slots (assignee, dates, priorities, task references,
// email targets) from free text. It never touches storage; resolution
// against the identity directory and task store happens in the voice
// service on top of these primitives.
package nlp

import (
	"strings"
	"time"
)

type Intent string

const (
	IntentQueryEvents       Intent = "query_events"
	IntentQueryMeetings     Intent = "query_meetings"
	IntentQueryTasks        Intent = "query_tasks"
	IntentCreateTask        Intent = "create_task"
	IntentUpdateTaskStatus  Intent = "update_task_status"
	IntentDeleteTask        Intent = "delete_task"
	IntentScheduleMeeting   Intent = "schedule_meeting"
	IntentSendEmail         Intent = "send_email"
	IntentCompletionReport  Intent = "completion_report"
	IntentStatusLookup      Intent = "status_lookup"
	IntentRecognizedUnclear Intent = "recognized_unclear"
	IntentUnrecognized      Intent = "unrecognized"
)

// Utterance is the immutable per-request input: the raw transcript plus a
// lowercased form used for keyword matching. Extractors that rely on
// capitalization (person names) read Raw; everything else reads Lower.
type Utterance struct {
	Raw   string
	Lower string
}

func NewUtterance(text string) Utterance {
	return Utterance{Raw: text, Lower: strings.ToLower(text)}
}

// TaskReference points at a target task either by explicit numeric id or by
// a title fragment suitable for fuzzy matching. HasID reports which.
type TaskReference struct {
	ID         int64
	TitleQuery string
	HasID      bool
}

// EmailTarget is either a literal address or a bare name to resolve against
// the identity directory.
type EmailTarget struct {
	Address string
	Name    string
}

// SlotSet carries every parameter the resolver filled for the active
// intent. Unused slots stay zero-valued; the resolver decides which are
// mandatory per intent.
type SlotSet struct {
	AssigneeName    string
	TaskTitle       string
	TaskDescription string
	Priority        string
	DueDate         *time.Time
	TaskRef         TaskReference
	RecipientEmail  string
	RecipientName   string
	EmailSubject    string
	EmailBody       string
	PersonName      string
	MeetingTime     time.Time
	StatusKeyword   string
	Window          QueryWindow
}

// QueryWindow is the time filter extracted from query utterances
// ("today", "this week"); Label feeds response templates.
type QueryWindow struct {
	Start   time.Time
	End     time.Time
	Label   string
	Bounded bool
}
