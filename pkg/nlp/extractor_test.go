package nlp

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractPersonName(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
		ok   bool
	}{
		{"prepositional for", "Create a task for Caleb to review the report", "Caleb", true},
		{"meet phrasing", "I'm supposed to meet Scott tomorrow", "Scott", true},
		{"assign to", "Assign to Maria the quarterly audit", "Maria", true},
		{"lowercase transcript", "create a task for caleb", "caleb", true},
		{"multi word truncates to first", "Schedule a call for Mary Johnson", "Mary", true},
		{"capitalized fallback", "Caleb needs the report by Friday", "Caleb", true},
		{"stop word never a name", "Create a new task for today", "", false},
		{"leading imperative ignored", "Schedule meeting tomorrow at 3pm", "", false},
		{"too short rejected", "give it to Al", "", false},
		{"nothing to find", "mark everything as done", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractPersonName(NewUtterance(tt.text))
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtractPriorityIsTotal(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"this is urgent, do it asap", "urgent"},
		{"high priority task for the demo", "high"},
		{"an important deliverable", "high"},
		{"low priority, whenever you get to it", "low"},
		{"create a task for Caleb", "medium"},
		{"", "medium"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ExtractPriority(NewUtterance(tt.text)), tt.text)
	}
}

func TestExtractRelativeDate(t *testing.T) {
	now := time.Date(2025, 3, 12, 15, 30, 0, 0, time.UTC)

	d, ok := ExtractRelativeDate(NewUtterance("finish the report due tomorrow"), now)
	require.True(t, ok)
	assert.Equal(t, time.Date(2025, 3, 13, 0, 0, 0, 0, time.UTC), *d)

	d, ok = ExtractRelativeDate(NewUtterance("due today please"), now)
	require.True(t, ok)
	assert.Equal(t, time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC), *d)

	d, ok = ExtractRelativeDate(NewUtterance("sometime next week"), now)
	require.True(t, ok)
	assert.Equal(t, time.Date(2025, 3, 19, 0, 0, 0, 0, time.UTC), *d)

	_, ok = ExtractRelativeDate(NewUtterance("no date mentioned"), now)
	assert.False(t, ok)
}

func TestExtractTaskReference(t *testing.T) {
	ref, ok := ExtractTaskReference(NewUtterance("Mark task 42 as completed"))
	require.True(t, ok)
	assert.True(t, ref.HasID)
	assert.Equal(t, int64(42), ref.ID)

	ref, ok = ExtractTaskReference(NewUtterance(`Complete task "Review the Q3 report"`))
	require.True(t, ok)
	assert.False(t, ref.HasID)
	assert.Equal(t, "Review the Q3 report", ref.TitleQuery)

	ref, ok = ExtractTaskReference(NewUtterance("Finish the budget review task please"))
	require.True(t, ok)
	assert.False(t, ref.HasID)
	assert.NotEmpty(t, ref.TitleQuery)

	_, ok = ExtractTaskReference(NewUtterance("hello there"))
	assert.False(t, ok)
}

func TestExtractTaskReferencePrefersID(t *testing.T) {
	// When both an id and a quoted title appear the id wins.
	ref, ok := ExtractTaskReference(NewUtterance(`Mark task 7 "old title" as done`))
	require.True(t, ok)
	assert.True(t, ref.HasID)
	assert.Equal(t, int64(7), ref.ID)
}

func TestExtractTitle(t *testing.T) {
	u := NewUtterance("Create a task: Ship the onboarding flow.")
	assert.Equal(t, "Ship the onboarding flow", ExtractTitle(u, ""))

	u = NewUtterance("Create a task for Caleb to review the quarterly report due tomorrow")
	title := ExtractTitle(u, "Caleb")
	assert.NotContains(t, title, "Caleb")
	assert.Contains(t, title, "quarterly report")

	// Nothing meaningful left after stripping noise.
	u = NewUtterance("Create a task for Caleb")
	assert.Equal(t, "Task for Caleb", ExtractTitle(u, "Caleb"))

	u = NewUtterance("Create a task")
	assert.Equal(t, "Voice task", ExtractTitle(u, ""))
}

func TestExtractEmailTarget(t *testing.T) {
	target, ok := ExtractEmailTarget(NewUtterance("Send an email to alice@example.com about the launch"))
	require.True(t, ok)
	assert.Equal(t, "alice@example.com", target.Address)
	assert.Empty(t, target.Name)

	target, ok = ExtractEmailTarget(NewUtterance("Send an email to bob about the launch"))
	require.True(t, ok)
	assert.Empty(t, target.Address)
	assert.Equal(t, "bob", target.Name)

	_, ok = ExtractEmailTarget(NewUtterance("what tasks do I have"))
	assert.False(t, ok)
}

func TestExtractEmailSubjectAndBody(t *testing.T) {
	u := NewUtterance("Send an email to bob about the launch timeline")
	assert.Equal(t, "the launch timeline", ExtractEmailSubject(u))

	u = NewUtterance("email bob saying the demo moved to Friday")
	assert.Equal(t, "the demo moved to Friday", ExtractEmailBody(u))

	u = NewUtterance("Send an email to bob")
	assert.Equal(t, "Voice Message", ExtractEmailSubject(u))
	assert.Equal(t, "Sent via voice command", ExtractEmailBody(u))
}

func TestExtractStatusKeyword(t *testing.T) {
	tests := []struct {
		text string
		want string
		ok   bool
	}{
		{"mark task 42 as completed", "completed", true},
		{"finish task 3", "completed", true},
		{"start working on task 9", "in_progress", true},
		{"put task 2 on hold", "pending", true},
		{"cancel task 4", "cancelled", true},
		{"rename task 4", "", false},
	}

	for _, tt := range tests {
		got, ok := ExtractStatusKeyword(NewUtterance(tt.text))
		assert.Equal(t, tt.ok, ok, tt.text)
		assert.Equal(t, tt.want, got, tt.text)
	}
}

func TestExtractMeetingTime(t *testing.T) {
	now := time.Date(2025, 3, 12, 9, 0, 0, 0, time.UTC)

	got := ExtractMeetingTime(NewUtterance("Schedule meeting tomorrow at 3pm"), now)
	assert.Equal(t, time.Date(2025, 3, 13, 15, 0, 0, 0, time.UTC), got)

	got = ExtractMeetingTime(NewUtterance("Schedule meeting today at 10:30 am"), now)
	assert.Equal(t, time.Date(2025, 3, 12, 10, 30, 0, 0, time.UTC), got)

	got = ExtractMeetingTime(NewUtterance("Schedule a meeting at 12pm today"), now)
	assert.Equal(t, 12, got.Hour())

	// No time reference defaults to tomorrow.
	got = ExtractMeetingTime(NewUtterance("Schedule a meeting"), now)
	assert.Equal(t, now.AddDate(0, 0, 1), got)
}

func TestExtractQueryWindow(t *testing.T) {
	// A Wednesday.
	now := time.Date(2025, 3, 12, 14, 0, 0, 0, time.UTC)

	w := ExtractQueryWindow(NewUtterance("what events do I have today"), now)
	assert.True(t, w.Bounded)
	assert.Equal(t, "today", w.Label)
	assert.Equal(t, time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC), w.Start)
	assert.Equal(t, time.Date(2025, 3, 13, 0, 0, 0, 0, time.UTC), w.End)

	w = ExtractQueryWindow(NewUtterance("show my meetings this week"), now)
	assert.True(t, w.Bounded)
	assert.Equal(t, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), w.Start)
	assert.Equal(t, time.Date(2025, 3, 17, 0, 0, 0, 0, w.Start.Location()), w.End)

	w = ExtractQueryWindow(NewUtterance("what do I have coming up"), now)
	assert.False(t, w.Bounded)
	assert.Equal(t, "upcoming", w.Label)
	assert.Equal(t, now, w.Start)
}
