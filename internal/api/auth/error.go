package auth

import (
	"AssistantGolang/pkg/response"
	"net/http"
)

var (
	ErrEmailAlreadyExists     = response.NewError(http.StatusConflict, "email already exists")
	ErrInvalidEmailOrPassword = response.NewError(http.StatusBadRequest, "email or password is wrong")
	ErrUserNotFound           = response.NewError(http.StatusNotFound, "user not found")
	ErrInvalidToken           = response.NewError(http.StatusUnauthorized, "invalid token")
	ErrInvalidOAuthState      = response.NewError(http.StatusBadRequest, "invalid oauth state")
	ErrGoogleNotConnected     = response.NewError(http.StatusBadRequest, "google account not connected")
)
