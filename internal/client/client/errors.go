package client

import (
	"errors"
	"net/http"
	"strings"
)

var (
	ErrUnavailable    = errors.New("server unavailable")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrConflict       = errors.New("conflict")
	ErrSessionExpired = errors.New("session expired")
	ErrNoRefreshToken = errors.New("no refresh token")
	ErrRefreshFailed  = errors.New("token refresh failed")
)

// Codes the client reacts to.
const (
	CodeBookmarkAlreadyExists = "BOOKMARK_ALREADY_EXISTS"
	CodePasswordPolicy        = "PASSWORD_POLICY_VIOLATION"
)

// APIError is a failed backend call. Message is already resolved for
// display; Code is the backend machine code and may be empty.
type APIError struct {
	Status  int
	Code    string
	Message string

	cause error
}

func (e *APIError) Error() string {
	return e.Message
}

func (e *APIError) Unwrap() error {
	return e.cause
}

func (e *APIError) Is(target error) bool {
	switch target {
	case ErrUnauthorized:
		return e.Status == http.StatusUnauthorized
	case ErrConflict:
		return e.Status == http.StatusConflict || strings.HasSuffix(e.Code, "_ALREADY_EXISTS")
	}
	return false
}
