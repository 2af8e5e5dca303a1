package nlp

import "strings"

// The classifier is a strict priority cascade: each detector only sees the
// utterance if every detector above it declined. The order is load-bearing:
// "what meetings do I have" matches both the meeting-query and task-creation
// keyword sets, and only the ordering keeps the query answer user-visible.
// Detectors are kept as an explicit ordered slice so each one stays
// independently testable.

var (
	eventQueryKeywords = []string{
		"what events", "my events", "events today", "events this week",
		"show events", "list events", "do i have events", "any events",
		"events do i have",
	}

	meetingQueryKeywords = []string{
		"what meetings", "my meetings", "upcoming meetings", "meetings today",
		"meetings this week", "show meetings", "list meetings",
	}

	// Query-shaped phrasings only. Bare status words ("completed",
	// "pending") are deliberately absent: they would steal "mark task 42
	// as completed" from the status-update detector below.
	taskQueryIndicators = []string{
		"what tasks", "my tasks", "show tasks", "list tasks", "due today",
		"what do i have", "what are my", "tell me about", "show me",
		"do i have any", "are there any", "what are",
	}

	taskCreationIndicators = []string{
		"create task", "create a task", "new task", "add task", "make task",
		"task for", "task to", "add a task", "make a task",
		"i need", "i want", "can you create", "please create", "create",
		"i have to", "i should", "supposed to", "meet", "meeting with",
		"have a meeting",
	}

	// Strong creation phrases finalize a creation intent even when no
	// assignee was extracted; weaker indicators need a name to back them up.
	strongCreationPhrases = []string{
		"create task", "create a task", "new task", "add task", "make task",
		"add a task", "make a task", "task for", "task to",
	}

	queryPhrases = []string{"what", "show", "list", "tell me", "do i have"}

	statusUpdateVerbs = []string{
		"mark", "complete", "finish", "start", "update", "change", "move", "set",
	}

	deletionVerbs = []string{"delete", "remove", "cancel", "erase"}

	meetingScheduleKeywords = []string{
		"schedule meeting", "create meeting", "meeting with", "zoom meeting",
	}

	emailKeywords = []string{
		"send email", "send an email", "email to", "send a message to", "email",
	}

	completionReportKeywords = []string{
		"completion rate", "task completion", "how many tasks", "task report",
	}

	statusLookupKeywords = []string{
		"where are we", "what is the status", "how is", "check task", "status",
	}

	// Any of these makes an otherwise unmatched utterance "recognized but
	// unclear" instead of fully unrecognized, so the caller can answer with
	// example phrasings rather than a hard error.
	taskDomainKeywords = []string{
		"task", "todo", "meeting", "email", "schedule", "create", "add",
		"list", "show", "what",
	}
)

type detector struct {
	intent Intent
	match  func(u Utterance) bool
}

var detectors = []detector{
	{IntentQueryEvents, isEventQuery},
	{IntentQueryMeetings, isMeetingQuery},
	{IntentQueryTasks, isTaskQuery},
	{IntentCreateTask, wantsTaskCreation},
	{IntentUpdateTaskStatus, isStatusUpdate},
	{IntentDeleteTask, isDeletion},
	{IntentScheduleMeeting, isMeetingScheduling},
	{IntentSendEmail, isEmailSend},
	{IntentCompletionReport, isCompletionReport},
	{IntentStatusLookup, isStatusLookup},
}

// Classify maps an utterance to exactly one intent. It never returns more
// than one: the first detector in priority order that matches wins.
func Classify(u Utterance) Intent {
	for _, d := range detectors {
		if d.match(u) {
			return d.intent
		}
	}

	if containsAny(u.Lower, taskDomainKeywords) {
		return IntentRecognizedUnclear
	}

	return IntentUnrecognized
}

func isEventQuery(u Utterance) bool {
	return containsAny(u.Lower, eventQueryKeywords)
}

func isMeetingQuery(u Utterance) bool {
	return containsAny(u.Lower, meetingQueryKeywords)
}

func isTaskQuery(u Utterance) bool {
	// Requires a literal task-domain word so generic queries like
	// "what do i have" don't match unrelated sentences.
	if !strings.Contains(u.Lower, "task") && !strings.Contains(u.Lower, "todo") {
		return false
	}
	return containsAny(u.Lower, taskQueryIndicators)
}

func wantsTaskCreation(u Utterance) bool {
	// An explicit scheduling verb always means a meeting, even though
	// "meeting with" is also a creation indicator.
	if strings.Contains(u.Lower, "schedule") {
		return false
	}

	matched := containsAny(u.Lower, taskCreationIndicators)

	if !matched && !containsAny(u.Lower, queryPhrases) {
		// "I'm supposed to meet Scott" style phrasing, unless the leading
		// words already read as a meeting reference.
		if strings.Contains(u.Lower, "supposed to") {
			matched = true
		} else if strings.Contains(u.Lower, "meet") && !startsWithMeeting(u.Lower) {
			matched = true
		}
	}

	if !matched {
		return false
	}

	// Finalize only with an assignee name or a strong creation phrase;
	// otherwise fall through to the lower-priority detectors.
	if containsAny(u.Lower, strongCreationPhrases) {
		return true
	}
	_, ok := ExtractPersonName(u)
	return ok
}

func startsWithMeeting(lower string) bool {
	words := strings.Fields(lower)
	limit := 3
	if len(words) < limit {
		limit = len(words)
	}
	for _, w := range words[:limit] {
		if w == "meeting" {
			return true
		}
	}
	return false
}

func isStatusUpdate(u Utterance) bool {
	// "task completion rate" contains the verb "complete" but asks for a
	// report, not a transition.
	if containsAny(u.Lower, completionReportKeywords) {
		return false
	}
	return strings.Contains(u.Lower, "task") && containsAny(u.Lower, statusUpdateVerbs)
}

func isDeletion(u Utterance) bool {
	return strings.Contains(u.Lower, "task") && containsAny(u.Lower, deletionVerbs)
}

func isMeetingScheduling(u Utterance) bool {
	return containsAny(u.Lower, meetingScheduleKeywords)
}

func isEmailSend(u Utterance) bool {
	return containsAny(u.Lower, emailKeywords)
}

func isCompletionReport(u Utterance) bool {
	return containsAny(u.Lower, completionReportKeywords)
}

func isStatusLookup(u Utterance) bool {
	return containsAny(u.Lower, statusLookupKeywords)
}

func containsAny(text string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(text, k) {
			return true
		}
	}
	return false
}
