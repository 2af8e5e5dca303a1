package meeting

import (
	"net/http"

	"AssistantGolang/pkg/response"
)

var (
	ErrMeetingNotFound    = response.NewError(http.StatusNotFound, "meeting not found")
	ErrMeetingInPast      = response.NewError(http.StatusBadRequest, "meeting time is in the past")
	ErrCalendarUnavailable = response.NewError(http.StatusBadGateway, "calendar provider unavailable")
)
