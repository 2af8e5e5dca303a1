package nlp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyPriorityOrder(t *testing.T) {
	tests := []struct {
		name string
		text string
		want Intent
	}{
		{"event query", "What events do I have today?", IntentQueryEvents},
		{"event query with person name", "What events do I have with John", IntentQueryEvents},
		{"meeting query", "Show me my meetings this week", IntentQueryMeetings},
		{"meeting query not creation", "What meetings do I have", IntentQueryMeetings},
		{"task query", "What tasks do I have today", IntentQueryTasks},
		{"task query any", "Do I have any tasks pending", IntentQueryTasks},
		{"create with assignee", "Create a task for Caleb to review the report due tomorrow", IntentCreateTask},
		{"create natural phrasing", "I'm supposed to meet Scott tomorrow", IntentCreateTask},
		{"create strong verb no assignee", "Create a task", IntentCreateTask},
		{"status update by id", "Mark task 42 as completed", IntentUpdateTaskStatus},
		{"status update start", "Start task 7", IntentUpdateTaskStatus},
		{"delete task", "Delete task 5", IntentDeleteTask},
		{"delete by title", "Remove task Review report", IntentDeleteTask},
		{"schedule meeting", "Schedule meeting tomorrow at 3pm", IntentScheduleMeeting},
		{"schedule meeting with name", "Schedule a meeting with Sarah tomorrow at 3pm", IntentScheduleMeeting},
		{"send email", "Send an email to alice@example.com about the launch", IntentSendEmail},
		{"completion report", "What is my task completion rate", IntentCompletionReport},
		{"status lookup", "What is the status of the release", IntentStatusLookup},
		{"recognized but unclear", "something about my todo stuff", IntentRecognizedUnclear},
		{"unrecognized", "sing me a song", IntentUnrecognized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(NewUtterance(tt.text))
			assert.Equal(t, tt.want, got)
		})
	}
}

// Query detectors outrank creation: a person name in an event query must
// never flip the intent to task creation.
func TestClassifyEventQueryNeverCreates(t *testing.T) {
	texts := []string{
		"What events do I have with John",
		"Any events this week with Sarah",
		"Show events for today",
	}
	for _, text := range texts {
		assert.NotEqual(t, IntentCreateTask, Classify(NewUtterance(text)), text)
	}
}

// Weak creation indicators without an assignee or strong creation phrase
// fall through rather than producing a half-formed creation intent.
func TestClassifyWeakCreationFallsThrough(t *testing.T) {
	got := Classify(NewUtterance("i need something"))
	assert.NotEqual(t, IntentCreateTask, got)
}

func TestClassifyStatusVerbRequiresTaskWord(t *testing.T) {
	// "start" without the literal word "task" must not classify as an
	// update.
	got := Classify(NewUtterance("let's start the show"))
	assert.NotEqual(t, IntentUpdateTaskStatus, got)
}

func TestClassifyIsDeterministic(t *testing.T) {
	u := NewUtterance("Create a task for Caleb to review the report")
	first := Classify(u)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, Classify(u))
	}
}
