package task

import (
	"net/http"

	"AssistantGolang/pkg/response"
)

var (
	ErrTaskNotFound  = response.NewError(http.StatusNotFound, "task not found")
	ErrTaskNotOwned  = response.NewError(http.StatusForbidden, "you do not have access to this task")
	ErrInvalidStatus = response.NewError(http.StatusBadRequest, "invalid task status")
)
