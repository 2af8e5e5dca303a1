package voiceService

import (
	"AssistantGolang/internal/api/auth"
	"AssistantGolang/internal/api/task"
	"AssistantGolang/internal/entity"
	contextPkg "AssistantGolang/pkg/context"
	"AssistantGolang/pkg/nlp"
	"errors"
	"fmt"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

// outcome is the terminal state of slot resolution for one request. There
// is no slot accumulation across requests; every utterance is resolved
// from scratch against its full text.
type outcome int

const (
	outcomeProceed outcome = iota
	outcomeClarify
	outcomeNotFound
	outcomeUnauthorized
)

type resolution struct {
	outcome outcome

	// prompt is the clarifying question for outcomeClarify; reason is the
	// corrective message for outcomeNotFound/outcomeUnauthorized.
	prompt string
	reason string

	// availableUsers rides along on identity misses so the client can
	// offer corrections. The directory is visible to any authenticated
	// user, so listing it leaks nothing.
	availableUsers []string

	slots     nlp.SlotSet
	assignee  entity.User
	recipient entity.User
	target    entity.Task
}

func clarify(prompt string) resolution {
	return resolution{outcome: outcomeClarify, prompt: prompt}
}

func notFound(reason string) resolution {
	return resolution{outcome: outcomeNotFound, reason: reason}
}

func (s *voiceService) resolve(ctx context.Context, userID string, intent nlp.Intent, u nlp.Utterance) (resolution, error) {
	switch intent {
	case nlp.IntentCreateTask:
		return s.resolveCreateTask(ctx, u)
	case nlp.IntentUpdateTaskStatus:
		return s.resolveStatusUpdate(ctx, userID, u)
	case nlp.IntentDeleteTask:
		return s.resolveDeletion(ctx, userID, u)
	case nlp.IntentSendEmail:
		return s.resolveEmail(ctx, u)
	case nlp.IntentScheduleMeeting:
		return s.resolveMeeting(u)
	case nlp.IntentStatusLookup:
		return s.resolveStatusLookup(ctx, userID, u)
	default:
		// Query intents and report lookups have no mandatory slots; the
		// window extractor is total.
		now := time.Now()
		return resolution{
			outcome: outcomeProceed,
			slots:   nlp.SlotSet{Window: nlp.ExtractQueryWindow(u, now)},
		}, nil
	}
}

func (s *voiceService) resolveCreateTask(ctx context.Context, u nlp.Utterance) (resolution, error) {
	name, ok := nlp.ExtractPersonName(u)
	if !ok {
		return clarify("Who should this task be assigned to? Try something like \"Create a task for John to review the report\"."), nil
	}

	assignee, err := s.resolveIdentity(ctx, name)
	if err != nil {
		if errors.Is(err, errIdentityNotFound) {
			return s.identityMiss(ctx, name)
		}
		return resolution{}, err
	}

	now := time.Now()
	due, _ := nlp.ExtractRelativeDate(u, now)

	return resolution{
		outcome:  outcomeProceed,
		assignee: assignee,
		slots: nlp.SlotSet{
			AssigneeName: assignee.Name,
			TaskTitle:    nlp.ExtractTitle(u, assignee.Name),
			// The raw utterance survives as the description so nothing the
			// title extraction dropped is lost.
			TaskDescription: u.Raw,
			Priority:        nlp.ExtractPriority(u),
			DueDate:         due,
		},
	}, nil
}

// resolveStatusLookup picks the most specific reading available: an explicit
// task reference, then a named person's workload, then the requester's own
// aggregate. No slot is mandatory.
func (s *voiceService) resolveStatusLookup(ctx context.Context, userID string, u nlp.Utterance) (resolution, error) {
	if _, ok := nlp.ExtractTaskReference(u); ok {
		return s.resolveTargetTask(ctx, userID, u)
	}

	if name, ok := nlp.ExtractPersonName(u); ok {
		assignee, err := s.resolveIdentity(ctx, name)
		if err != nil {
			if errors.Is(err, errIdentityNotFound) {
				return s.identityMiss(ctx, name)
			}
			return resolution{}, err
		}
		return resolution{outcome: outcomeProceed, assignee: assignee}, nil
	}

	return resolution{outcome: outcomeProceed}, nil
}

func (s *voiceService) resolveStatusUpdate(ctx context.Context, userID string, u nlp.Utterance) (resolution, error) {
	status, ok := nlp.ExtractStatusKeyword(u)
	if !ok {
		return clarify("What should the task status become? For example \"Mark task 42 as completed\"."), nil
	}

	res, err := s.resolveTargetTask(ctx, userID, u)
	if err != nil || res.outcome != outcomeProceed {
		return res, err
	}

	res.slots.StatusKeyword = status
	return res, nil
}

func (s *voiceService) resolveDeletion(ctx context.Context, userID string, u nlp.Utterance) (resolution, error) {
	return s.resolveTargetTask(ctx, userID, u)
}

// resolveTargetTask finds the one task an update or delete refers to: an
// explicit numeric id wins, otherwise a fuzzy title match scoped to tasks
// the requester is assignee or creator of. Authorization is checked only
// after the target is known, so a real task the requester cannot touch
// comes back Unauthorized rather than NotFound.
func (s *voiceService) resolveTargetTask(ctx context.Context, userID string, u nlp.Utterance) (resolution, error) {
	ref, ok := nlp.ExtractTaskReference(u)
	if !ok {
		return clarify("Which task do you mean? Give me a task number or its title."), nil
	}

	if ref.HasID {
		target, err := s.tasks.GetTaskByID(ctx, userID, ref.ID)
		if err != nil {
			if errors.Is(err, task.ErrTaskNotFound) {
				return notFound(fmt.Sprintf("I couldn't find task %d.", ref.ID)), nil
			}
			if errors.Is(err, task.ErrTaskNotOwned) {
				return resolution{
					outcome: outcomeUnauthorized,
					reason:  fmt.Sprintf("You don't have access to task %d.", ref.ID),
				}, nil
			}
			return resolution{}, err
		}
		return resolution{outcome: outcomeProceed, target: target, slots: nlp.SlotSet{TaskRef: ref}}, nil
	}

	matches, err := s.tasks.SearchTasks(ctx, userID, ref.TitleQuery)
	if err != nil {
		return resolution{}, err
	}

	switch len(matches) {
	case 0:
		return notFound(fmt.Sprintf("I couldn't find a task matching %q.", ref.TitleQuery)), nil
	case 1:
		return resolution{outcome: outcomeProceed, target: matches[0], slots: nlp.SlotSet{TaskRef: ref}}, nil
	default:
		return notFound(fmt.Sprintf("I found %d tasks matching %q. Please use the task number instead.", len(matches), ref.TitleQuery)), nil
	}
}

func (s *voiceService) resolveEmail(ctx context.Context, u nlp.Utterance) (resolution, error) {
	target, ok := nlp.ExtractEmailTarget(u)
	if !ok {
		return clarify("Who should I send the email to?"), nil
	}

	res := resolution{
		outcome: outcomeProceed,
		slots: nlp.SlotSet{
			EmailSubject: nlp.ExtractEmailSubject(u),
			EmailBody:    nlp.ExtractEmailBody(u),
		},
	}

	if target.Address != "" {
		res.slots.RecipientEmail = target.Address
		return res, nil
	}

	recipient, err := s.resolveIdentity(ctx, target.Name)
	if err != nil {
		if errors.Is(err, errIdentityNotFound) {
			return s.identityMiss(ctx, target.Name)
		}
		return resolution{}, err
	}

	res.recipient = recipient
	res.slots.RecipientEmail = recipient.Email
	res.slots.RecipientName = recipient.Name
	return res, nil
}

func (s *voiceService) resolveMeeting(u nlp.Utterance) (resolution, error) {
	now := time.Now()
	slots := nlp.SlotSet{MeetingTime: nlp.ExtractMeetingTime(u, now)}

	if name, ok := nlp.ExtractPersonName(u); ok {
		slots.PersonName = name
	}

	return resolution{outcome: outcomeProceed, slots: slots}, nil
}

var errIdentityNotFound = errors.New("identity not found")

// resolveIdentity maps a spoken name to exactly one account: partial
// case-insensitive match first, exact match as the stronger fallback.
func (s *voiceService) resolveIdentity(ctx context.Context, name string) (entity.User, error) {
	user, err := s.directory.ResolveByName(ctx, name)
	if err != nil {
		if errors.Is(err, auth.ErrUserNotFound) {
			s.log.WithFields(logrus.Fields{
				"request_id": contextPkg.GetRequestID(ctx),
				"name":       name,
			}).Warn("Voice command referenced unknown identity")
			return entity.User{}, errIdentityNotFound
		}
		return entity.User{}, err
	}

	return user, nil
}

func (s *voiceService) identityMiss(ctx context.Context, name string) (resolution, error) {
	names, err := s.directoryNames(ctx)
	if err != nil {
		return resolution{}, err
	}

	return resolution{
		outcome:        outcomeNotFound,
		reason:         fmt.Sprintf("I couldn't find anyone named %q.", name),
		availableUsers: names,
	}, nil
}

const (
	directoryNamesCacheKey = "voice:directory_names"
	directoryNamesCacheTTL = 5 * time.Minute
)

// directoryNames serves the identity-name list through a short redis cache;
// every identity miss would otherwise hit the users table for a list that
// barely changes. A broken cache degrades to the direct lookup.
func (s *voiceService) directoryNames(ctx context.Context) ([]string, error) {
	if cached, err := s.redis.GetCache(ctx, directoryNamesCacheKey); err == nil && cached != "" {
		var names []string
		if err := jsoniter.UnmarshalFromString(cached, &names); err == nil {
			return names, nil
		}
	}

	names, err := s.directory.ListNames(ctx)
	if err != nil {
		return nil, err
	}

	if raw, err := jsoniter.MarshalToString(names); err == nil {
		if err := s.redis.SetCache(ctx, directoryNamesCacheKey, raw, directoryNamesCacheTTL); err != nil {
			s.log.WithFields(logrus.Fields{
				"request_id": contextPkg.GetRequestID(ctx),
				"error":      err.Error(),
			}).Warn("Failed to cache directory names")
		}
	}

	return names, nil
}
