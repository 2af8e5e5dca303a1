package notification

import (
	"net/http"

	"AssistantGolang/pkg/response"
)

var (
	ErrNotificationNotFound = response.NewError(http.StatusNotFound, "notification not found")
)
