package google

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	calendar "google.golang.org/api/calendar/v3"
	gmail "google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"
)

type Event struct {
	Title string
	Start time.Time
}

type ItfGoogle interface {
	AuthURL(state string) string
	ExchangeCode(ctx context.Context, code string) (string, error)
	ListCalendarEvents(ctx context.Context, tokenJSON string, start time.Time, end *time.Time) ([]Event, error)
	SendGmail(ctx context.Context, tokenJSON string, to string, subject string, body string) error
	GetConfig() *oauth2.Config
}

type googleProvider struct {
	config *oauth2.Config
}

func New() ItfGoogle {
	oauthCfg := &oauth2.Config{
		ClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
		ClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
		RedirectURL:  os.Getenv("GOOGLE_REDIRECT_URL"),
		Scopes: []string{
			calendar.CalendarReadonlyScope,
			gmail.GmailSendScope,
		},
		Endpoint: google.Endpoint,
	}

	return &googleProvider{config: oauthCfg}
}

func (g *googleProvider) AuthURL(state string) string {
	return g.config.AuthCodeURL(state, oauth2.AccessTypeOffline, oauth2.ApprovalForce)
}

// ExchangeCode trades the OAuth code for a token and returns it serialized
// for storage on the user row.
func (g *googleProvider) ExchangeCode(ctx context.Context, code string) (string, error) {
	token, err := g.config.Exchange(ctx, code)
	if err != nil {
		return "", fmt.Errorf("exchanging google oauth code: %w", err)
	}

	raw, err := json.Marshal(token)
	if err != nil {
		return "", err
	}

	return string(raw), nil
}

func (g *googleProvider) ListCalendarEvents(ctx context.Context, tokenJSON string, start time.Time, end *time.Time) ([]Event, error) {
	svc, err := g.calendarService(ctx, tokenJSON)
	if err != nil {
		return nil, err
	}

	call := svc.Events.List("primary").
		SingleEvents(true).
		OrderBy("startTime").
		TimeMin(start.Format(time.RFC3339)).
		MaxResults(50)
	if end != nil {
		call = call.TimeMax(end.Format(time.RFC3339))
	}

	res, err := call.Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("listing calendar events: %w", err)
	}

	var events []Event
	for _, item := range res.Items {
		events = append(events, Event{
			Title: item.Summary,
			Start: parseEventStart(item),
		})
	}

	return events, nil
}

func (g *googleProvider) SendGmail(ctx context.Context, tokenJSON string, to string, subject string, body string) error {
	token, err := parseToken(tokenJSON)
	if err != nil {
		return err
	}

	svc, err := gmail.NewService(ctx, option.WithTokenSource(g.config.TokenSource(ctx, token)))
	if err != nil {
		return fmt.Errorf("creating gmail service: %w", err)
	}

	raw := fmt.Sprintf("To: %s\r\nSubject: %s\r\n\r\n%s", to, subject, body)
	msg := &gmail.Message{
		Raw: base64.URLEncoding.EncodeToString([]byte(raw)),
	}

	if _, err := svc.Users.Messages.Send("me", msg).Context(ctx).Do(); err != nil {
		return fmt.Errorf("sending gmail message: %w", err)
	}

	return nil
}

func (g *googleProvider) GetConfig() *oauth2.Config {
	return g.config
}

func (g *googleProvider) calendarService(ctx context.Context, tokenJSON string) (*calendar.Service, error) {
	token, err := parseToken(tokenJSON)
	if err != nil {
		return nil, err
	}

	svc, err := calendar.NewService(ctx, option.WithTokenSource(g.config.TokenSource(ctx, token)))
	if err != nil {
		return nil, fmt.Errorf("creating calendar service: %w", err)
	}

	return svc, nil
}

func parseToken(tokenJSON string) (*oauth2.Token, error) {
	var token oauth2.Token
	if err := json.Unmarshal([]byte(tokenJSON), &token); err != nil {
		return nil, fmt.Errorf("parsing stored google token: %w", err)
	}
	return &token, nil
}

// All-day events carry only a date, timed events a full datetime.
func parseEventStart(item *calendar.Event) time.Time {
	if item.Start == nil {
		return time.Time{}
	}
	if item.Start.DateTime != "" {
		t, _ := time.Parse(time.RFC3339, item.Start.DateTime)
		return t
	}
	t, _ := time.Parse("2006-01-02", item.Start.Date)
	return t
}
