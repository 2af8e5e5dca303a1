package voice

import (
	"net/http"

	"AssistantGolang/pkg/response"
)

var (
	ErrTooManyCommands      = response.NewError(http.StatusTooManyRequests, "too many voice commands, slow down")
	ErrTranscriptionFailed  = response.NewError(http.StatusBadGateway, "could not transcribe audio")
	ErrEmailProviderFailure = response.NewError(http.StatusBadGateway, "could not send email")
)
