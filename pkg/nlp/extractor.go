package nlp

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Every extractor returns a typed value plus an ok flag and never errors:
// absence of a slot is a normal outcome whose severity only the resolver
// knows. Fallback chains run in declaration order and short-circuit on the
// first hit, which keeps each extractor deterministic and testable.

var (
	// Ordered from most to least reliable. Capitalized groups run against
	// the raw text; the lowercase preposition pattern is a last resort for
	// transcripts that lost their casing.
	namePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?:meet|meeting with|meeting)\s+([A-Z][a-z]+(?:\s+[A-Z][a-z]+)?)`),
		regexp.MustCompile(`supposed to\s+meet\s+([A-Z][a-z]+)`),
		regexp.MustCompile(`(?:for|to|assign to|give to)\s+([A-Z][a-z]+(?:\s+[A-Z][a-z]+)?)`),
		regexp.MustCompile(`(?:for|to)\s+([a-z]+)`),
		regexp.MustCompile(`([A-Z][a-z]+)\s+(?:should|needs to|has to|to do|to review)`),
	}

	capitalizedWord = regexp.MustCompile(`\b([A-Z][a-z]+)\b`)

	// Task-domain verbs, articles and date words that the name heuristics
	// must never mistake for a person.
	nameStopWords = map[string]bool{
		"task": true, "tasks": true, "the": true, "a": true, "an": true,
		"today": true, "tomorrow": true, "me": true, "i": true, "you": true,
		"create": true, "add": true, "new": true, "make": true, "do": true,
		"meeting": true, "meet": true, "review": true, "and": true,
		"urgent": true, "high": true, "low": true, "priority": true,
		"please": true, "need": true, "want": true, "week": true,
		"schedule": true, "send": true, "email": true, "show": true,
		"list": true, "what": true, "check": true, "status": true,
		"zoom": true,
	}

	taskIDPattern    = regexp.MustCompile(`task\s+(\d+)`)
	quotedTitle      = regexp.MustCompile(`(?i)(?:task|to|mark|complete|start|finish|delete|remove)\s+"([^"]+)"`)
	looseTitle       = regexp.MustCompile(`(?i)(?:task|mark|complete|start|finish|delete|remove)\s+([a-zA-Z][^.!?]*)`)
	titleAfterColon  = regexp.MustCompile(`:\s*(.+?)(?:\.|$)`)
	titleNoiseWords  = regexp.MustCompile(`(?i)\b(create|add|new|make|a|an|the|task|for|to|i|am|is|my|supposed|meet|meeting|urgent|asap|important|high|low|later|priority|assign|please|due|today|tomorrow|next|week)\b`)
	emailAddrPattern = regexp.MustCompile(`(?i)(?:to|email|send to)\s+([a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,})`)

	emailNamePatterns = []*regexp.Regexp{
		regexp.MustCompile(`send\s+(?:an?\s+)?email\s+to\s+([a-z]+)`),
		regexp.MustCompile(`email\s+([a-z]+)\s+(?:about|regarding|that)`),
		regexp.MustCompile(`(?:to|email|send to)\s+([a-z]+)`),
	}

	emailSubjectPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:subject|about|regarding|re:)\s+(.+?)(?:\s+body|\s+message|\s+saying|$)`),
		regexp.MustCompile(`(?i)email\s+to\s+\S+\s+(?:about|regarding)\s+(.+?)(?:\s+body|\s+message|$)`),
	}

	emailBodyPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:body|message|saying|content)\s+(.+?)$`),
		regexp.MustCompile(`(?i)about\s+\S+\s+(.+?)$`),
	}

	clockPattern = regexp.MustCompile(`(\d{1,2})(?::(\d{2}))?\s*(am|pm)?`)
)

// ExtractPersonName pulls a candidate person name from the utterance. It
// tries prepositional and verb-adjacent patterns first, then falls back to
// the first non-stop-word capitalized token. Multi-word names are truncated
// to their first word; callers resolve the fragment against the identity
// directory, so a partial name is still useful. This truncation is a known,
// deliberate limitation.
func ExtractPersonName(u Utterance) (string, bool) {
	for _, p := range namePatterns {
		if m := p.FindStringSubmatch(u.Raw); m != nil {
			candidate := strings.TrimSpace(m[1])
			if name, ok := acceptName(candidate); ok {
				return name, true
			}
		}
	}

	for _, m := range capitalizedWord.FindAllStringSubmatch(u.Raw, -1) {
		if name, ok := acceptName(m[1]); ok {
			return name, true
		}
	}

	return "", false
}

func acceptName(candidate string) (string, bool) {
	first := strings.Fields(candidate)
	if len(first) == 0 {
		return "", false
	}
	name := first[0]
	if len(name) <= 2 || nameStopWords[strings.ToLower(name)] {
		return "", false
	}
	return name, true
}

// ExtractPriority is total: every input yields exactly one priority,
// defaulting to medium when no keyword family matches.
func ExtractPriority(u Utterance) string {
	switch {
	case containsAny(u.Lower, []string{"urgent", "asap", "immediately", "critical"}):
		return "urgent"
	case containsAny(u.Lower, []string{"high priority", "important", "high"}):
		return "high"
	case containsAny(u.Lower, []string{"low priority", "low", "later", "whenever"}):
		return "low"
	default:
		return "medium"
	}
}

// ExtractRelativeDate maps today/tomorrow/next week keywords to absolute
// dates computed against now. No keyword means no due date.
func ExtractRelativeDate(u Utterance, now time.Time) (*time.Time, bool) {
	var d time.Time
	switch {
	case strings.Contains(u.Lower, "today"):
		d = startOfDay(now)
	case strings.Contains(u.Lower, "tomorrow"):
		d = startOfDay(now.AddDate(0, 0, 1))
	case strings.Contains(u.Lower, "next week"):
		d = startOfDay(now.AddDate(0, 0, 7))
	default:
		return nil, false
	}
	return &d, true
}

// ExtractTaskReference prefers a numeric id after the word "task"; failing
// that it falls back to a quoted title, then a loosely delimited fragment
// for fuzzy matching.
func ExtractTaskReference(u Utterance) (TaskReference, bool) {
	if m := taskIDPattern.FindStringSubmatch(u.Lower); m != nil {
		id, err := strconv.ParseInt(m[1], 10, 64)
		if err == nil {
			return TaskReference{ID: id, HasID: true}, true
		}
	}

	if m := quotedTitle.FindStringSubmatch(u.Raw); m != nil {
		return TaskReference{TitleQuery: strings.TrimSpace(m[1])}, true
	}

	if m := looseTitle.FindStringSubmatch(u.Raw); m != nil {
		q := strings.TrimSpace(m[1])
		if q != "" {
			return TaskReference{TitleQuery: q}, true
		}
	}

	return TaskReference{}, false
}

// ExtractTitle derives a task title: text after a colon wins; otherwise the
// utterance is stripped of the assignee name and task-domain noise words and
// the remainder is used. A remainder too short to be meaningful yields a
// synthesized "Task for {assignee}" title.
func ExtractTitle(u Utterance, assignee string) string {
	if m := titleAfterColon.FindStringSubmatch(u.Raw); m != nil {
		if t := strings.TrimSpace(m[1]); t != "" {
			return t
		}
	}

	cleaned := u.Raw
	if assignee != "" {
		namePattern := regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(assignee) + `\b`)
		cleaned = namePattern.ReplaceAllString(cleaned, "")
	}
	cleaned = titleNoiseWords.ReplaceAllString(cleaned, "")
	cleaned = strings.Join(strings.Fields(cleaned), " ")
	cleaned = strings.Trim(cleaned, " ,.!?")

	if len(cleaned) < 5 {
		if assignee != "" {
			return "Task for " + assignee
		}
		return "Voice task"
	}

	return cleaned
}

// ExtractEmailTarget prefers a literal address; otherwise it returns a bare
// name for the caller to resolve against the identity directory.
func ExtractEmailTarget(u Utterance) (EmailTarget, bool) {
	if m := emailAddrPattern.FindStringSubmatch(u.Raw); m != nil {
		return EmailTarget{Address: m[1]}, true
	}

	for _, p := range emailNamePatterns {
		if m := p.FindStringSubmatch(u.Lower); m != nil {
			name := strings.TrimSpace(m[1])
			if name != "" && !nameStopWords[name] {
				return EmailTarget{Name: name}, true
			}
		}
	}

	return EmailTarget{}, false
}

func ExtractEmailSubject(u Utterance) string {
	for _, p := range emailSubjectPatterns {
		if m := p.FindStringSubmatch(u.Raw); m != nil {
			if s := strings.TrimSpace(m[1]); s != "" {
				return s
			}
		}
	}
	return "Voice Message"
}

func ExtractEmailBody(u Utterance) string {
	for _, p := range emailBodyPatterns {
		if m := p.FindStringSubmatch(u.Raw); m != nil {
			if b := strings.TrimSpace(m[1]); b != "" {
				return b
			}
		}
	}

	cleaned := regexp.MustCompile(`(?i)(?:send\s+)?(?:an?\s+)?email\s+to\s+\S+\s*`).ReplaceAllString(u.Raw, "")
	cleaned = regexp.MustCompile(`(?i)(?:subject|about|regarding)\s+\S+\s*`).ReplaceAllString(cleaned, "")
	cleaned = strings.TrimSpace(cleaned)
	if len(cleaned) > 5 {
		return cleaned
	}
	return "Sent via voice command"
}

// ExtractStatusKeyword maps update phrasing to a target task status.
func ExtractStatusKeyword(u Utterance) (string, bool) {
	switch {
	case containsAny(u.Lower, []string{"complete", "completed", "done", "finish", "finished", "close", "closed"}):
		return "completed", true
	case containsAny(u.Lower, []string{"progress", "working", "start", "started", "begin", "begun"}):
		return "in_progress", true
	case containsAny(u.Lower, []string{"pending", "wait", "pause", "paused", "hold"}):
		return "pending", true
	case containsAny(u.Lower, []string{"cancel", "cancelled"}):
		return "cancelled", true
	default:
		return "", false
	}
}

// ExtractMeetingTime combines a relative day reference with an optional
// clock time. With neither present it defaults to this hour tomorrow, which
// mirrors how the assistant has always behaved for bare "schedule a meeting".
func ExtractMeetingTime(u Utterance, now time.Time) time.Time {
	day := now.AddDate(0, 0, 1)
	if strings.Contains(u.Lower, "today") {
		day = now
	}

	if m := clockPattern.FindStringSubmatch(u.Lower); m != nil {
		hour, _ := strconv.Atoi(m[1])
		minute := 0
		if m[2] != "" {
			minute, _ = strconv.Atoi(m[2])
		}
		if m[3] == "pm" && hour != 12 {
			hour += 12
		}
		if hour >= 0 && hour <= 23 {
			return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, day.Location())
		}
	}

	return day
}

// ExtractQueryWindow derives the time filter for event/meeting/task
// queries: today, this week, or unbounded upcoming.
func ExtractQueryWindow(u Utterance, now time.Time) QueryWindow {
	switch {
	case strings.Contains(u.Lower, "today"):
		start := startOfDay(now)
		return QueryWindow{Start: start, End: start.AddDate(0, 0, 1), Label: "today", Bounded: true}
	case strings.Contains(u.Lower, "this week"):
		start := startOfDay(now.AddDate(0, 0, -int(weekdayIndex(now))))
		return QueryWindow{Start: start, End: start.AddDate(0, 0, 7), Label: "this week", Bounded: true}
	default:
		return QueryWindow{Start: now, Label: "upcoming"}
	}
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// weekdayIndex treats Monday as the first day of the week.
func weekdayIndex(t time.Time) int {
	wd := int(t.Weekday())
	if wd == 0 {
		return 6
	}
	return wd - 1
}
