package voiceService

import (
	"AssistantGolang/internal/api/meeting"
	"AssistantGolang/internal/api/task"
	"AssistantGolang/internal/api/voice"
	"AssistantGolang/internal/entity"
	contextPkg "AssistantGolang/pkg/context"
	"AssistantGolang/pkg/nlp"
	"fmt"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

// dispatch executes exactly one collaborator call for the resolved intent
// and wraps the result in a templated confirmation. Notification fan-out
// happens inside the collaborators; nothing here retries.
func (s *voiceService) dispatch(ctx context.Context, user entity.UserLoginData, intent nlp.Intent, res resolution) (*voice.CommandResponse, error) {
	switch intent {
	case nlp.IntentQueryEvents:
		return s.dispatchEventQuery(ctx, user.ID, res.slots.Window)
	case nlp.IntentQueryMeetings:
		return s.dispatchMeetingQuery(ctx, user.ID, res.slots.Window)
	case nlp.IntentQueryTasks:
		return s.dispatchTaskQuery(ctx, user.ID, res.slots.Window)
	case nlp.IntentCreateTask:
		return s.dispatchTaskCreation(ctx, user.ID, res)
	case nlp.IntentUpdateTaskStatus:
		return s.dispatchStatusUpdate(ctx, user.ID, res)
	case nlp.IntentDeleteTask:
		return s.dispatchDeletion(ctx, user.ID, res)
	case nlp.IntentScheduleMeeting:
		return s.dispatchMeetingCreation(ctx, user.ID, res.slots)
	case nlp.IntentSendEmail:
		return s.dispatchEmail(ctx, user.ID, res.slots)
	case nlp.IntentCompletionReport:
		return s.dispatchCompletionReport(ctx, user.ID)
	case nlp.IntentStatusLookup:
		return s.dispatchStatusLookup(ctx, user.ID, res)
	default:
		return nil, fmt.Errorf("no dispatcher for intent %s", intent)
	}
}

func windowBounds(w nlp.QueryWindow) (*time.Time, *time.Time) {
	start := w.Start
	if !w.Bounded {
		return &start, nil
	}
	end := w.End
	return &start, &end
}

func (s *voiceService) dispatchEventQuery(ctx context.Context, userID string, w nlp.QueryWindow) (*voice.CommandResponse, error) {
	start, end := windowBounds(w)

	events, err := s.meetings.ListEvents(ctx, userID, start, end)
	if err != nil {
		return nil, err
	}
	if events == nil {
		events = []entity.CalendarEvent{}
	}

	message := fmt.Sprintf("You have %d events %s.", len(events), w.Label)
	if len(events) == 0 {
		message = fmt.Sprintf("You have no events %s.", w.Label)
	}

	return &voice.CommandResponse{
		Status:     http.StatusOK,
		Message:    message,
		Recognized: true,
		Intent:     string(nlp.IntentQueryEvents),
		Events:     events,
	}, nil
}

func (s *voiceService) dispatchMeetingQuery(ctx context.Context, userID string, w nlp.QueryWindow) (*voice.CommandResponse, error) {
	start, end := windowBounds(w)

	meetings, err := s.meetings.ListMeetings(ctx, userID, start, end)
	if err != nil {
		return nil, err
	}

	res := make([]meeting.MeetingResponse, 0, len(meetings))
	for _, m := range meetings {
		res = append(res, meeting.MakeMeetingResponse(m))
	}

	message := fmt.Sprintf("You have %d meetings %s.", len(res), w.Label)
	if len(res) == 0 {
		message = fmt.Sprintf("You have no meetings %s.", w.Label)
	}

	return &voice.CommandResponse{
		Status:     http.StatusOK,
		Message:    message,
		Recognized: true,
		Intent:     string(nlp.IntentQueryMeetings),
		Meetings:   res,
	}, nil
}

func (s *voiceService) dispatchTaskQuery(ctx context.Context, userID string, w nlp.QueryWindow) (*voice.CommandResponse, error) {
	filter := task.ListFilter{}
	if w.Bounded {
		start, end := windowBounds(w)
		filter.DueAfter = start
		filter.DueBefore = end
	}

	tasks, err := s.tasks.ListTasks(ctx, userID, filter)
	if err != nil {
		return nil, err
	}

	res := make([]task.TaskResponse, 0, len(tasks))
	for _, t := range tasks {
		res = append(res, task.MakeTaskResponse(t))
	}

	message := fmt.Sprintf("You have %d tasks %s.", len(res), w.Label)
	if len(res) == 0 {
		if w.Bounded {
			message = fmt.Sprintf("You have no tasks due %s.", w.Label)
		} else {
			message = "You have no tasks."
		}
	}

	return &voice.CommandResponse{
		Status:     http.StatusOK,
		Message:    message,
		Recognized: true,
		Intent:     string(nlp.IntentQueryTasks),
		Tasks:      res,
	}, nil
}

func (s *voiceService) dispatchTaskCreation(ctx context.Context, userID string, res resolution) (*voice.CommandResponse, error) {
	created, err := s.tasks.CreateTask(ctx, userID, task.CreateTaskRequest{
		Title:       res.slots.TaskTitle,
		Description: res.slots.TaskDescription,
		AssigneeID:  res.assignee.ID,
		Priority:    res.slots.Priority,
		DueDate:     res.slots.DueDate,
	})
	if err != nil {
		return nil, err
	}

	message := fmt.Sprintf("Created task %q for %s.", created.Title, res.assignee.Name)
	if created.DueDate != nil {
		message = fmt.Sprintf("Created task %q for %s, due %s.",
			created.Title, res.assignee.Name, created.DueDate.Format("Monday, Jan 2"))
	}

	s.log.WithFields(logrus.Fields{
		"request_id": contextPkg.GetRequestID(ctx),
		"task_id":    created.ID,
	}).Info("Voice command created task")

	taskRes := task.MakeTaskResponse(created)
	taskRes.AssigneeName = res.assignee.Name

	return &voice.CommandResponse{
		Status:     http.StatusCreated,
		Message:    message,
		Recognized: true,
		Intent:     string(nlp.IntentCreateTask),
		Task:       &taskRes,
	}, nil
}

func (s *voiceService) dispatchStatusUpdate(ctx context.Context, userID string, res resolution) (*voice.CommandResponse, error) {
	updated, err := s.tasks.UpdateTaskStatus(ctx, userID, res.target.ID, entity.TaskStatus(res.slots.StatusKeyword))
	if err != nil {
		return nil, err
	}

	taskRes := task.MakeTaskResponse(updated)

	return &voice.CommandResponse{
		Status:     http.StatusOK,
		Message:    fmt.Sprintf("Marked task %q as %s.", updated.Title, res.slots.StatusKeyword),
		Recognized: true,
		Intent:     string(nlp.IntentUpdateTaskStatus),
		Task:       &taskRes,
	}, nil
}

func (s *voiceService) dispatchDeletion(ctx context.Context, userID string, res resolution) (*voice.CommandResponse, error) {
	deleted, err := s.tasks.DeleteTask(ctx, userID, res.target.ID)
	if err != nil {
		return nil, err
	}

	return &voice.CommandResponse{
		Status:     http.StatusOK,
		Message:    fmt.Sprintf("Deleted task %q.", deleted.Title),
		Recognized: true,
		Intent:     string(nlp.IntentDeleteTask),
	}, nil
}

func (s *voiceService) dispatchMeetingCreation(ctx context.Context, userID string, slots nlp.SlotSet) (*voice.CommandResponse, error) {
	topic := "Voice Meeting"
	if slots.PersonName != "" {
		topic = fmt.Sprintf("Meeting with %s", slots.PersonName)
	}

	created, err := s.meetings.ScheduleMeeting(ctx, userID, meeting.ScheduleMeetingRequest{
		Topic:     topic,
		StartTime: slots.MeetingTime,
	})
	if err != nil {
		return nil, err
	}

	meetingRes := meeting.MakeMeetingResponse(created)

	return &voice.CommandResponse{
		Status:     http.StatusCreated,
		Message:    fmt.Sprintf("Scheduled %q for %s.", created.Topic, created.StartTime.Format("Monday, Jan 2 at 15:04")),
		Recognized: true,
		Intent:     string(nlp.IntentScheduleMeeting),
		Meeting:    &meetingRes,
	}, nil
}

func (s *voiceService) dispatchEmail(ctx context.Context, userID string, slots nlp.SlotSet) (*voice.CommandResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	sender, err := s.directory.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	// Prefer the sender's own Gmail account when connected so replies land
	// in their thread; the shared SMTP account is the fallback.
	if sender.GmailToken != "" {
		err = s.googleProvider.SendGmail(ctx, sender.GmailToken, slots.RecipientEmail, slots.EmailSubject, slots.EmailBody)
	} else {
		err = s.mailer.SendMail(slots.RecipientEmail, slots.EmailSubject, slots.EmailBody)
	}
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Voice email dispatch failed")
		return nil, voice.ErrEmailProviderFailure
	}

	displayName := slots.RecipientName
	if displayName == "" {
		displayName = slots.RecipientEmail
	}

	return &voice.CommandResponse{
		Status:     http.StatusOK,
		Message:    fmt.Sprintf("Email sent to %s.", displayName),
		Recognized: true,
		Intent:     string(nlp.IntentSendEmail),
		Email: &voice.EmailSummary{
			To:      slots.RecipientEmail,
			Subject: slots.EmailSubject,
		},
	}, nil
}

func (s *voiceService) dispatchCompletionReport(ctx context.Context, userID string) (*voice.CommandResponse, error) {
	stats, err := s.tasks.TaskStats(ctx, userID)
	if err != nil {
		return nil, err
	}

	message := "You have no tasks yet."
	if stats.Total > 0 {
		rate := stats.Completed * 100 / stats.Total
		message = fmt.Sprintf("You have completed %d of %d tasks (%d%%).", stats.Completed, stats.Total, rate)
	}

	return &voice.CommandResponse{
		Status:     http.StatusOK,
		Message:    message,
		Recognized: true,
		Intent:     string(nlp.IntentCompletionReport),
		Stats:      &stats,
	}, nil
}

// dispatchStatusLookup answers three shapes of question: a specific task
// ("check task 42"), a person's workload ("what is the status for Caleb"),
// or the requester's own aggregate when neither was referenced.
func (s *voiceService) dispatchStatusLookup(ctx context.Context, userID string, res resolution) (*voice.CommandResponse, error) {
	if res.target.ID != 0 {
		taskRes := task.MakeTaskResponse(res.target)
		return &voice.CommandResponse{
			Status:     http.StatusOK,
			Message:    fmt.Sprintf("Task %q is currently %s.", res.target.Title, res.target.Status),
			Recognized: true,
			Intent:     string(nlp.IntentStatusLookup),
			Task:       &taskRes,
		}, nil
	}

	if res.assignee.ID != "" {
		tasks, err := s.tasks.ListTasks(ctx, res.assignee.ID, task.ListFilter{})
		if err != nil {
			return nil, err
		}

		list := make([]task.TaskResponse, 0, len(tasks))
		for _, t := range tasks {
			list = append(list, task.MakeTaskResponse(t))
		}

		message := fmt.Sprintf("%s has %d open tasks.", res.assignee.Name, len(list))
		if len(list) == 0 {
			message = fmt.Sprintf("%s has no open tasks.", res.assignee.Name)
		}

		return &voice.CommandResponse{
			Status:     http.StatusOK,
			Message:    message,
			Recognized: true,
			Intent:     string(nlp.IntentStatusLookup),
			Tasks:      list,
		}, nil
	}

	stats, err := s.tasks.TaskStats(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &voice.CommandResponse{
		Status:     http.StatusOK,
		Message:    fmt.Sprintf("You have %d pending and %d in-progress tasks.", stats.Pending, stats.InProgress),
		Recognized: true,
		Intent:     string(nlp.IntentStatusLookup),
		Stats:      &stats,
	}, nil
}
